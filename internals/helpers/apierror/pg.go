// file: internals/helpers/apierror/pg.go
package apierror

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// pgx menaruh SQLSTATE di interface ini; lib/pq punya tipe errornya sendiri.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// FromPG menerjemahkan error driver/gorm ke taksonomi.
// Unique violation adalah sinyal konflik yang otoritatif: constraint di DB
// adalah backstop untuk check-then-write.
func FromPG(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("data tidak ditemukan")
	}

	state := ""
	var pqErr *pq.Error
	var pgErr pgSQLErr
	switch {
	case errors.As(err, &pqErr):
		state = string(pqErr.Code)
	case errors.As(err, &pgErr):
		state = pgErr.SQLState()
	}

	switch state {
	case "23505": // unique_violation
		return Conflict("data duplikat (unique violation)")
	case "23P01": // exclusion_violation
		return Conflict("bentrok rentang waktu (exclusion violation)")
	case "23503": // foreign_key_violation
		return NotFound("referensi tidak ditemukan (FK violation)")
	}
	return &Error{Kind: "INTERNAL", Message: err.Error()}
}
