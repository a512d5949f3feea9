// file: internals/features/school/timetable/service/fake_repo_test.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/timetable/model"
)

/* =========================
   Fake in-memory EntryRepo + RefResolver
   ========================= */

type fakeEntryRepo struct {
	entries map[uuid.UUID]*m.TimetableEntryModel
	// attendanceKeys: "batch|subject" → punya history absensi
	attendanceKeys map[string]bool
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{
		entries:        map[uuid.UUID]*m.TimetableEntryModel{},
		attendanceKeys: map[string]bool{},
	}
}

func (f *fakeEntryRepo) all(filter func(e *m.TimetableEntryModel) bool) []m.TimetableEntryModel {
	var out []m.TimetableEntryModel
	for _, e := range f.entries {
		if e.TimetableEntryIsActive && filter(e) {
			out = append(out, *e)
		}
	}
	return out
}

func (f *fakeEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*m.TimetableEntryModel, error) {
	if e, ok := f.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeEntryRepo) ListActiveBySlotDOW(_ context.Context, slotID uuid.UUID, dow int) ([]m.TimetableEntryModel, error) {
	return f.all(func(e *m.TimetableEntryModel) bool {
		return e.TimetableEntryTimeSlotID == slotID &&
			e.TimetableEntryDayOfWeek != nil && *e.TimetableEntryDayOfWeek == dow
	}), nil
}

func (f *fakeEntryRepo) ListActiveBySlotDate(_ context.Context, slotID uuid.UUID, date time.Time) ([]m.TimetableEntryModel, error) {
	return f.all(func(e *m.TimetableEntryModel) bool {
		return e.TimetableEntryTimeSlotID == slotID &&
			e.TimetableEntryDate != nil && sameDate(*e.TimetableEntryDate, date)
	}), nil
}

func (f *fakeEntryRepo) ListActiveDateRowsBySlotDOW(_ context.Context, slotID uuid.UUID, dow int) ([]m.TimetableEntryModel, error) {
	return f.all(func(e *m.TimetableEntryModel) bool {
		return e.TimetableEntryTimeSlotID == slotID &&
			e.TimetableEntryDate != nil && isoDOW(*e.TimetableEntryDate) == dow
	}), nil
}

func (f *fakeEntryRepo) ListActiveByBatchDate(_ context.Context, batchID uuid.UUID, date time.Time) ([]m.TimetableEntryModel, error) {
	return f.all(func(e *m.TimetableEntryModel) bool {
		return e.TimetableEntryBatchID == batchID &&
			e.TimetableEntryDate != nil && sameDate(*e.TimetableEntryDate, date)
	}), nil
}

func (f *fakeEntryRepo) ListActiveByBatchDOW(_ context.Context, batchID uuid.UUID, dow int) ([]m.TimetableEntryModel, error) {
	return f.all(func(e *m.TimetableEntryModel) bool {
		return e.TimetableEntryBatchID == batchID &&
			e.TimetableEntryDayOfWeek != nil && *e.TimetableEntryDayOfWeek == dow
	}), nil
}

func (f *fakeEntryRepo) FindActiveException(_ context.Context, batchID, slotID uuid.UUID, date time.Time) (*m.TimetableEntryModel, error) {
	for _, e := range f.entries {
		if e.TimetableEntryIsActive &&
			e.TimetableEntryBatchID == batchID &&
			e.TimetableEntryTimeSlotID == slotID &&
			e.TimetableEntryDate != nil && sameDate(*e.TimetableEntryDate, date) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) Insert(_ context.Context, e *m.TimetableEntryModel) error {
	if e.TimetableEntryID == uuid.Nil {
		e.TimetableEntryID = uuid.New()
	}
	cp := *e
	f.entries[e.TimetableEntryID] = &cp
	return nil
}

func (f *fakeEntryRepo) Save(_ context.Context, e *m.TimetableEntryModel) error {
	cp := *e
	f.entries[e.TimetableEntryID] = &cp
	return nil
}

func (f *fakeEntryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	f.entries[id].TimetableEntryIsActive = false
	return nil
}

func (f *fakeEntryRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(f.entries, id)
	return nil
}

func (f *fakeEntryRepo) HasAttendance(_ context.Context, batchID uuid.UUID, subjectID *uuid.UUID, _ *time.Time) (bool, error) {
	if subjectID == nil {
		return false, nil
	}
	return f.attendanceKeys[batchID.String()+"|"+subjectID.String()], nil
}

func (f *fakeEntryRepo) InTx(_ context.Context, fn func(EntryRepo) error) error {
	return fn(f)
}

// allowAllRefs: semua referensi dianggap valid.
type allowAllRefs struct{}

func (allowAllRefs) SlotActive(context.Context, uuid.UUID) (bool, error)       { return true, nil }
func (allowAllRefs) BatchActive(context.Context, uuid.UUID) (bool, error)      { return true, nil }
func (allowAllRefs) FacultyActive(context.Context, uuid.UUID) (bool, error)    { return true, nil }
func (allowAllRefs) SubjectInBatch(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return true, nil
}

// denySubjectRefs: subject dianggap bukan milik batch.
type denySubjectRefs struct{ allowAllRefs }

func (denySubjectRefs) SubjectInBatch(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
