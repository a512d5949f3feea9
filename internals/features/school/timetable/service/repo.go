// file: internals/features/school/timetable/service/repo.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/timetable/model"
)

/* =========================
   Repo (store via interface)
   ========================= */

type EntryRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*m.TimetableEntryModel, error)

	// Query governance per slot (untuk conflict detector)
	ListActiveBySlotDOW(ctx context.Context, slotID uuid.UUID, dow int) ([]m.TimetableEntryModel, error)
	ListActiveBySlotDate(ctx context.Context, slotID uuid.UUID, date time.Time) ([]m.TimetableEntryModel, error)
	ListActiveDateRowsBySlotDOW(ctx context.Context, slotID uuid.UUID, dow int) ([]m.TimetableEntryModel, error)

	// Query per batch (untuk resolver)
	ListActiveByBatchDate(ctx context.Context, batchID uuid.UUID, date time.Time) ([]m.TimetableEntryModel, error)
	ListActiveByBatchDOW(ctx context.Context, batchID uuid.UUID, dow int) ([]m.TimetableEntryModel, error)
	FindActiveException(ctx context.Context, batchID, slotID uuid.UUID, date time.Time) (*m.TimetableEntryModel, error)

	Insert(ctx context.Context, e *m.TimetableEntryModel) error
	Save(ctx context.Context, e *m.TimetableEntryModel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	// HasAttendance: ada history absensi utk (batch, subject[, date])?
	// Menentukan soft vs hard delete.
	HasAttendance(ctx context.Context, batchID uuid.UUID, subjectID *uuid.UUID, date *time.Time) (bool, error)

	// InTx menjalankan fn dalam satu transaksi serializable; repo yang
	// diberikan ke fn terikat ke transaksi itu. Check-then-write WAJIB
	// lewat sini.
	InTx(ctx context.Context, fn func(txRepo EntryRepo) error) error
}

// RefResolver memeriksa entitas referensi (hidup di fitur lain).
type RefResolver interface {
	SlotActive(ctx context.Context, id uuid.UUID) (bool, error)
	BatchActive(ctx context.Context, id uuid.UUID) (bool, error)
	FacultyActive(ctx context.Context, id uuid.UUID) (bool, error)
	// SubjectInBatch: subject ada, aktif, dan memang milik batch target.
	SubjectInBatch(ctx context.Context, subjectID, batchID uuid.UUID) (bool, error)
}
