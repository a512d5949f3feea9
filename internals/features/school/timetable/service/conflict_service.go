// file: internals/features/school/timetable/service/conflict_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/timetable/model"
)

/* =========================
   Jenis konflik
   ========================= */

const (
	ConflictBatchDoubleBooking = "BATCH_DOUBLE_BOOKING"
	ConflictFaculty            = "FACULTY_CONFLICT"
)

type ConflictDescriptor struct {
	Type    string                  `json:"type"`
	Message string                  `json:"message"`
	Details []m.TimetableEntryModel `json:"details"`
}

// Candidate: tuple (batch, faculty, slot, hari-atau-tanggal) yang mau ditulis.
type Candidate struct {
	EntryID    uuid.UUID // exclude diri sendiri saat update; uuid.Nil saat create
	BatchID    uuid.UUID
	FacultyID  *uuid.UUID
	TimeSlotID uuid.UUID
	DayOfWeek  *int       // recurring
	Date       *time.Time // exception / one-off
}

/* =========================
   Detector
   ========================= */

type ConflictService struct {
	Repo EntryRepo
}

func NewConflict(repo EntryRepo) *ConflictService { return &ConflictService{Repo: repo} }

// isoDOW: 1..7, Senin=1.
func isoDOW(t time.Time) int {
	return ((int(t.Weekday()) + 6) % 7) + 1
}

// Check mengumpulkan entry aktif yang berbagi slot + governance tanggal
// dengan kandidat, lalu mengklasifikasikannya. Hasil kosong = aman.
//
// Governance: baris ber-tanggal hanya menguasai tanggal itu; baris
// ber-day-of-week menguasai setiap minggu yang cocok, jadi keduanya bisa
// saling bentrok lintas bentuk. Pengecualian satu-satunya: pasangan
// (batch, slot) yang sama dengan bentuk berbeda adalah relasi override
// (exception menimpa recurring), bukan bentrok.
func (s *ConflictService) Check(ctx context.Context, cand Candidate) ([]ConflictDescriptor, error) {
	matches, err := s.governingMatches(ctx, cand)
	if err != nil {
		return nil, err
	}

	var batchHits, facultyHits []m.TimetableEntryModel
	for i := range matches {
		e := matches[i]
		if e.TimetableEntryID == cand.EntryID {
			continue
		}
		// relasi override recurring↔exception untuk (batch, slot) yang sama
		if e.TimetableEntryBatchID == cand.BatchID &&
			e.TimetableEntryTimeSlotID == cand.TimeSlotID &&
			e.IsRecurring() != (cand.Date == nil && cand.DayOfWeek != nil) {
			continue
		}

		if e.TimetableEntryBatchID == cand.BatchID {
			batchHits = append(batchHits, e)
		}
		if cand.FacultyID != nil && e.TimetableEntryFacultyID != nil &&
			*e.TimetableEntryFacultyID == *cand.FacultyID {
			facultyHits = append(facultyHits, e)
		}
	}

	var out []ConflictDescriptor
	if len(batchHits) > 0 {
		out = append(out, ConflictDescriptor{
			Type:    ConflictBatchDoubleBooking,
			Message: fmt.Sprintf("batch sudah punya %d entry aktif di slot yang sama", len(batchHits)),
			Details: batchHits,
		})
	}
	if len(facultyHits) > 0 {
		out = append(out, ConflictDescriptor{
			Type:    ConflictFaculty,
			Message: fmt.Sprintf("faculty sudah mengajar %d entry aktif di slot yang sama", len(facultyHits)),
			Details: facultyHits,
		})
	}
	return out, nil
}

// NeedsCheck: detector jalan saat create, atau saat update hanya kalau
// slot / day_of_week / date berubah.
func NeedsCheck(old *m.TimetableEntryModel, cand Candidate) bool {
	if old == nil {
		return true
	}
	if old.TimetableEntryTimeSlotID != cand.TimeSlotID {
		return true
	}
	if !intPtrEq(old.TimetableEntryDayOfWeek, cand.DayOfWeek) {
		return true
	}
	return !datePtrEq(old.TimetableEntryDate, cand.Date)
}

func (s *ConflictService) governingMatches(ctx context.Context, cand Candidate) ([]m.TimetableEntryModel, error) {
	var out []m.TimetableEntryModel

	switch {
	case cand.Date != nil:
		// Kandidat satu tanggal: bentrok dengan baris ber-tanggal sama…
		sameDate, err := s.Repo.ListActiveBySlotDate(ctx, cand.TimeSlotID, *cand.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, sameDate...)
		// …dan baris recurring yang dow-nya jatuh di tanggal itu.
		recurring, err := s.Repo.ListActiveBySlotDOW(ctx, cand.TimeSlotID, isoDOW(*cand.Date))
		if err != nil {
			return nil, err
		}
		out = append(out, recurring...)

	case cand.DayOfWeek != nil:
		// Kandidat recurring: bentrok dengan recurring dow sama…
		recurring, err := s.Repo.ListActiveBySlotDOW(ctx, cand.TimeSlotID, *cand.DayOfWeek)
		if err != nil {
			return nil, err
		}
		out = append(out, recurring...)
		// …dan baris ber-tanggal yang weekday-nya cocok (kandidat menguasai
		// setiap minggu, termasuk tanggal-tanggal itu).
		dated, err := s.Repo.ListActiveDateRowsBySlotDOW(ctx, cand.TimeSlotID, *cand.DayOfWeek)
		if err != nil {
			return nil, err
		}
		out = append(out, dated...)
	}
	return out, nil
}

func intPtrEq(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func datePtrEq(a, b *time.Time) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || sameDate(*a, *b)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
