// file: internals/helpers/apierror/apierror.go
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

/* =========================
   Taksonomi error terketik
   ========================= */

type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR" // input salah bentuk / hilang
	KindNotFound   Kind = "NOT_FOUND"        // entitas referensi tidak ada / nonaktif
	KindConflict   Kind = "CONFLICT"         // double-booking, nama/overlap bentrok
	KindInUse      Kind = "IN_USE"           // edit struktural pada slot yang dipakai
	KindOverload   Kind = "OVERLOAD"         // beban melebihi cap tanpa force
	KindState      Kind = "STATE_ERROR"      // aksi terhadap student/subject nonaktif
)

type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	// Details wajib cukup terstruktur untuk pesan yang actionable
	// (entry mana yang bentrok, kelebihan berapa kredit, dst).
	Details any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) WithDetails(d any) *Error {
	e.Details = d
	return e
}

/* =========================
   Konstruktor per jenis
   ========================= */

func Validation(msg string) *Error { return New(KindValidation, msg) }
func NotFound(msg string) *Error   { return New(KindNotFound, msg) }
func Conflict(msg string) *Error   { return New(KindConflict, msg) }
func InUse(msg string) *Error      { return New(KindInUse, msg) }
func Overload(msg string) *Error   { return New(KindOverload, msg) }
func State(msg string) *Error      { return New(KindState, msg) }

/* =========================
   Introspeksi
   ========================= */

func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	if ae, ok := As(err); ok {
		return ae.Kind == kind
	}
	return false
}

// SoftReject: boleh dikirim ulang dengan override eksplisit setelah warning.
func (e *Error) SoftReject() bool {
	return e.Kind == KindConflict || e.Kind == KindOverload
}

// HTTPStatus memetakan jenis error ke status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInUse, KindOverload:
		return http.StatusConflict
	case KindState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
