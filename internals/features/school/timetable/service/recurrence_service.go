// file: internals/features/school/timetable/service/recurrence_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/timetable/model"
	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   RecurrenceResolver

   Baris recurring disimpan SEKALI dan berlaku tiap minggu yang cocok —
   tidak ada ekspansi per-tanggal. Baris exception (date terisi) menang
   atas pola recurring untuk tanggal itu, termasuk exception yang
   berstatus cancelled (tetap dikembalikan, flag-nya yang bicara).
   ========================= */

type EditScope string

const (
	ScopeOccurrence EditScope = "occurrence" // hanya tanggal ini → tulis/refresh baris exception
	ScopeFuture     EditScope = "future"     // semua minggu ke depan → mutasi baris recurring
)

type RecurrenceService struct {
	Repo   EntryRepo
	Refs   RefResolver
	Writer *EntryService
}

func NewRecurrence(repo EntryRepo, refs RefResolver) *RecurrenceService {
	return &RecurrenceService{Repo: repo, Refs: refs, Writer: NewEntry(repo, refs)}
}

/* =========================
   Resolve
   ========================= */

// ResolveDay: semua entry aktif yang menguasai (batch, date) — exception
// per slot menimpa recurring di slot yang sama.
func (s *RecurrenceService) ResolveDay(ctx context.Context, batchID uuid.UUID, date time.Time) ([]m.TimetableEntryModel, error) {
	exceptions, err := s.Repo.ListActiveByBatchDate(ctx, batchID, date)
	if err != nil {
		return nil, err
	}
	recurring, err := s.Repo.ListActiveByBatchDOW(ctx, batchID, isoDOW(date))
	if err != nil {
		return nil, err
	}

	bySlot := make(map[uuid.UUID]m.TimetableEntryModel, len(exceptions)+len(recurring))
	for i := range exceptions {
		bySlot[exceptions[i].TimetableEntryTimeSlotID] = exceptions[i]
	}
	for i := range recurring {
		if _, overridden := bySlot[recurring[i].TimetableEntryTimeSlotID]; !overridden {
			bySlot[recurring[i].TimetableEntryTimeSlotID] = recurring[i]
		}
	}

	out := make([]m.TimetableEntryModel, 0, len(bySlot))
	for _, e := range bySlot {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TimeSlot != nil && b.TimeSlot != nil && a.TimeSlot.TimeSlotStartMin != b.TimeSlot.TimeSlotStartMin {
			return a.TimeSlot.TimeSlotStartMin < b.TimeSlot.TimeSlotStartMin
		}
		return a.TimetableEntryTimeSlotID.String() < b.TimetableEntryTimeSlotID.String()
	})
	return out, nil
}

// ResolveSlotForDate: entry yang menguasai (batch, slot, date); nil kalau
// tidak ada kelas.
func (s *RecurrenceService) ResolveSlotForDate(ctx context.Context, batchID, slotID uuid.UUID, date time.Time) (*m.TimetableEntryModel, error) {
	if exc, err := s.Repo.FindActiveException(ctx, batchID, slotID, date); err != nil {
		return nil, err
	} else if exc != nil {
		return exc, nil
	}
	recurring, err := s.Repo.ListActiveByBatchDOW(ctx, batchID, isoDOW(date))
	if err != nil {
		return nil, err
	}
	for i := range recurring {
		if recurring[i].TimetableEntryTimeSlotID == slotID {
			return &recurring[i], nil
		}
	}
	return nil, nil
}

// ResolveWeek: peta tanggal (Senin..Minggu mulai weekStart) → entry harian.
func (s *RecurrenceService) ResolveWeek(ctx context.Context, batchID uuid.UUID, weekStart time.Time) (map[string][]m.TimetableEntryModel, error) {
	out := make(map[string][]m.TimetableEntryModel, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		entries, err := s.ResolveDay(ctx, batchID, day)
		if err != nil {
			return nil, err
		}
		out[day.Format("2006-01-02")] = entries
	}
	return out, nil
}

/* =========================
   ApplyEdit (edit-scope)
   ========================= */

type EditPatch struct {
	SubjectID  *uuid.UUID
	FacultyID  *uuid.UUID
	TimeSlotID *uuid.UUID
	EntryType  *m.EntryType
	Cancelled  *bool
	Notes      *string

	// OccurrenceDate: tanggal konkret yang diedit; wajib untuk scope
	// occurrence pada baris recurring.
	OccurrenceDate *time.Time
	Override       bool
}

// ApplyEdit menerapkan patch sesuai scope:
//   - occurrence → baris recurring tidak disentuh; exception untuk tanggal
//     itu ditulis (atau di-refresh kalau sudah ada).
//   - future → baris recurring dimutasi langsung; semua tanggal ke depan
//     tanpa exception sendiri ikut berubah.
func (s *RecurrenceService) ApplyEdit(ctx context.Context, entryID uuid.UUID, patch EditPatch, scope EditScope) (*WriteResult, error) {
	if scope != ScopeOccurrence && scope != ScopeFuture {
		return nil, apierror.Validation("scope harus 'occurrence' atau 'future'")
	}

	entry, err := s.Repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	if entry == nil || !entry.TimetableEntryIsActive {
		return nil, apierror.NotFound("timetable entry tidak ditemukan / nonaktif")
	}

	// Baris exception: scope tidak relevan, edit langsung.
	if !entry.IsRecurring() {
		in := patchedInput(entry, patch)
		return s.Writer.Update(ctx, entryID, in)
	}

	if scope == ScopeFuture {
		in := patchedInput(entry, patch)
		return s.Writer.Update(ctx, entryID, in)
	}

	// scope == occurrence
	if patch.OccurrenceDate == nil {
		return nil, apierror.Validation("occurrence_date wajib untuk scope 'occurrence'")
	}
	occDate := *patch.OccurrenceDate
	if isoDOW(occDate) != *entry.TimetableEntryDayOfWeek {
		return nil, apierror.Validation("occurrence_date tidak jatuh di day_of_week baris recurring")
	}

	existing, err := s.Repo.FindActiveException(ctx, entry.TimetableEntryBatchID, entry.TimetableEntryTimeSlotID, occDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		in := patchedInput(existing, patch)
		return s.Writer.Update(ctx, existing.TimetableEntryID, in)
	}

	// Exception baru: salin field recurring lalu timpa dengan patch.
	in := patchedInput(entry, patch)
	in.DayOfWeek = nil
	in.Date = &occDate
	if patch.EntryType == nil && in.EntryType == m.EntryRegular {
		in.EntryType = m.EntryMakeup
	}
	return s.Writer.Create(ctx, in)
}

func patchedInput(base *m.TimetableEntryModel, patch EditPatch) WriteInput {
	in := WriteInput{
		BatchID:    base.TimetableEntryBatchID,
		SubjectID:  base.TimetableEntrySubjectID,
		FacultyID:  base.TimetableEntryFacultyID,
		TimeSlotID: base.TimetableEntryTimeSlotID,
		DayOfWeek:  base.TimetableEntryDayOfWeek,
		Date:       base.TimetableEntryDate,
		EntryType:  base.TimetableEntryType,
		Cancelled:  base.TimetableEntryIsCancelled,
		Notes:      base.TimetableEntryNotes,
		Override:   patch.Override,
	}
	if patch.SubjectID != nil {
		in.SubjectID = patch.SubjectID
	}
	if patch.FacultyID != nil {
		in.FacultyID = patch.FacultyID
	}
	if patch.TimeSlotID != nil {
		in.TimeSlotID = *patch.TimeSlotID
	}
	if patch.EntryType != nil {
		in.EntryType = *patch.EntryType
	}
	if patch.Cancelled != nil {
		in.Cancelled = *patch.Cancelled
	}
	if patch.Notes != nil {
		in.Notes = patch.Notes
	}
	return in
}
