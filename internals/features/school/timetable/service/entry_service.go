// file: internals/features/school/timetable/service/entry_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/timetable/model"
	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   Write path
   validate → resolve refs → detect → persist
   ========================= */

type EntryService struct {
	Repo EntryRepo
	Refs RefResolver
}

func NewEntry(repo EntryRepo, refs RefResolver) *EntryService {
	return &EntryService{Repo: repo, Refs: refs}
}

type WriteInput struct {
	BatchID    uuid.UUID
	SubjectID  *uuid.UUID
	FacultyID  *uuid.UUID
	TimeSlotID uuid.UUID
	DayOfWeek  *int       // XOR dengan Date
	Date       *time.Time // XOR dengan DayOfWeek
	EntryType  m.EntryType
	Cancelled  bool
	Notes      *string

	// Override: konflik turun jadi warning, tulis tetap jalan.
	Override bool
}

type WriteResult struct {
	Entry *m.TimetableEntryModel
	// Warnings terisi hanya saat override dipakai menembus konflik.
	Warnings []ConflictDescriptor
}

func (in *WriteInput) validate() error {
	if (in.DayOfWeek == nil) == (in.Date == nil) {
		return apierror.Validation("isi tepat satu: day_of_week (recurring) ATAU date (exception)")
	}
	if in.DayOfWeek != nil && (*in.DayOfWeek < 1 || *in.DayOfWeek > 7) {
		return apierror.Validation("day_of_week harus 1..7 (Senin=1)")
	}
	if in.EntryType == "" {
		in.EntryType = m.EntryRegular
	}
	if _, ok := m.ParseEntryType(string(in.EntryType)); !ok {
		return apierror.Validation("entry_type tidak dikenal")
	}
	if in.BatchID == uuid.Nil || in.TimeSlotID == uuid.Nil {
		return apierror.Validation("batch_id dan time_slot_id wajib")
	}
	return nil
}

func (s *EntryService) resolveRefs(ctx context.Context, in *WriteInput) error {
	if ok, err := s.Refs.BatchActive(ctx, in.BatchID); err != nil {
		return err
	} else if !ok {
		return apierror.NotFound("batch tidak ditemukan / nonaktif")
	}
	if ok, err := s.Refs.SlotActive(ctx, in.TimeSlotID); err != nil {
		return err
	} else if !ok {
		return apierror.NotFound("time slot tidak ditemukan / nonaktif")
	}
	if in.FacultyID != nil {
		if ok, err := s.Refs.FacultyActive(ctx, *in.FacultyID); err != nil {
			return err
		} else if !ok {
			return apierror.NotFound("faculty tidak ditemukan / nonaktif")
		}
	}
	if in.SubjectID != nil {
		if ok, err := s.Refs.SubjectInBatch(ctx, *in.SubjectID, in.BatchID); err != nil {
			return err
		} else if !ok {
			return apierror.Validation("subject bukan milik batch target / nonaktif")
		}
	}
	return nil
}

func (in *WriteInput) toCandidate(entryID uuid.UUID) Candidate {
	return Candidate{
		EntryID:    entryID,
		BatchID:    in.BatchID,
		FacultyID:  in.FacultyID,
		TimeSlotID: in.TimeSlotID,
		DayOfWeek:  in.DayOfWeek,
		Date:       in.Date,
	}
}

func (in *WriteInput) apply(e *m.TimetableEntryModel) {
	e.TimetableEntryBatchID = in.BatchID
	e.TimetableEntrySubjectID = in.SubjectID
	e.TimetableEntryFacultyID = in.FacultyID
	e.TimetableEntryTimeSlotID = in.TimeSlotID
	e.TimetableEntryDayOfWeek = in.DayOfWeek
	e.TimetableEntryDate = in.Date
	e.TimetableEntryType = in.EntryType
	e.TimetableEntryIsCancelled = in.Cancelled || in.EntryType == m.EntryCancelled
	e.TimetableEntryNotes = in.Notes
}

// Create: seluruh check-then-write dalam satu transaksi serializable;
// unique index governance jadi backstop kalau ada race yang lolos.
func (s *EntryService) Create(ctx context.Context, in WriteInput) (*WriteResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	res := &WriteResult{}
	err := s.Repo.InTx(ctx, func(tx EntryRepo) error {
		inner := &EntryService{Repo: tx, Refs: s.Refs}
		if err := inner.resolveRefs(ctx, &in); err != nil {
			return err
		}

		conflicts, err := NewConflict(tx).Check(ctx, in.toCandidate(uuid.Nil))
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			if !in.Override {
				return apierror.Conflict("jadwal bentrok").WithDetails(conflicts)
			}
			res.Warnings = conflicts
		}

		entry := &m.TimetableEntryModel{TimetableEntryIsActive: true}
		in.apply(entry)
		if err := tx.Insert(ctx, entry); err != nil {
			return apierror.FromPG(err)
		}
		res.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update: detector hanya jalan kalau slot / day_of_week / date berubah.
func (s *EntryService) Update(ctx context.Context, id uuid.UUID, in WriteInput) (*WriteResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	res := &WriteResult{}
	err := s.Repo.InTx(ctx, func(tx EntryRepo) error {
		old, err := tx.FindByID(ctx, id)
		if err != nil {
			return apierror.FromPG(err)
		}
		if old == nil || !old.TimetableEntryIsActive {
			return apierror.NotFound("timetable entry tidak ditemukan / nonaktif")
		}

		inner := &EntryService{Repo: tx, Refs: s.Refs}
		if err := inner.resolveRefs(ctx, &in); err != nil {
			return err
		}

		cand := in.toCandidate(id)
		if NeedsCheck(old, cand) {
			conflicts, err := NewConflict(tx).Check(ctx, cand)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				if !in.Override {
					return apierror.Conflict("jadwal bentrok").WithDetails(conflicts)
				}
				res.Warnings = conflicts
			}
		}

		in.apply(old)
		if err := tx.Save(ctx, old); err != nil {
			return apierror.FromPG(err)
		}
		res.Entry = old
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Delete: soft kalau sudah ada history absensi utk (batch, subject[, date]),
// hard kalau belum pernah dipakai.
func (s *EntryService) Delete(ctx context.Context, id uuid.UUID) (softDeleted bool, err error) {
	err = s.Repo.InTx(ctx, func(tx EntryRepo) error {
		entry, err := tx.FindByID(ctx, id)
		if err != nil {
			return apierror.FromPG(err)
		}
		if entry == nil {
			return apierror.NotFound("timetable entry tidak ditemukan")
		}

		has, err := tx.HasAttendance(ctx, entry.TimetableEntryBatchID, entry.TimetableEntrySubjectID, entry.TimetableEntryDate)
		if err != nil {
			return err
		}
		if has {
			softDeleted = true
			return tx.SoftDelete(ctx, id)
		}
		return tx.HardDelete(ctx, id)
	})
	return softDeleted, err
}
