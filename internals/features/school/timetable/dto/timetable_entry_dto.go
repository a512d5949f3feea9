// file: internals/features/school/timetable/dto/timetable_entry_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	slotDTO "kampusku_backend/internals/features/school/time_slots/dto"
	m "kampusku_backend/internals/features/school/timetable/model"
	s "kampusku_backend/internals/features/school/timetable/service"
)

/* =========================================================
   Helpers
   ========================================================= */

func parseDateYYYYMMDD(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   1) REQUESTS
   ========================================================= */

type WriteTimetableEntryRequest struct {
	TimetableEntryBatchID   string  `json:"timetable_entry_batch_id"   validate:"required,uuid"`
	TimetableEntrySubjectID *string `json:"timetable_entry_subject_id" validate:"omitempty,uuid"`
	TimetableEntryFacultyID *string `json:"timetable_entry_faculty_id" validate:"omitempty,uuid"`
	TimetableEntrySlotID    string  `json:"timetable_entry_time_slot_id" validate:"required,uuid"`

	// tepat satu dari dua ini (recurring XOR exception)
	TimetableEntryDayOfWeek *int    `json:"timetable_entry_day_of_week" validate:"omitempty,min=1,max=7"`
	TimetableEntryDate      *string `json:"timetable_entry_date"        validate:"omitempty,datetime=2006-01-02"`

	TimetableEntryType      *string `json:"timetable_entry_type"         validate:"omitempty,oneof=REGULAR MAKEUP EXTRA EXAM CANCELLED"`
	TimetableEntryCancelled *bool   `json:"timetable_entry_is_cancelled" validate:"omitempty"`
	TimetableEntryNotes     *string `json:"timetable_entry_notes"        validate:"omitempty,max=2000"`
}

func (r WriteTimetableEntryRequest) ToInput(override bool) s.WriteInput {
	in := s.WriteInput{Override: override}

	if id, err := uuid.Parse(strings.TrimSpace(r.TimetableEntryBatchID)); err == nil {
		in.BatchID = id
	}
	if id, err := uuid.Parse(strings.TrimSpace(r.TimetableEntrySlotID)); err == nil {
		in.TimeSlotID = id
	}
	if r.TimetableEntrySubjectID != nil {
		if id, err := uuid.Parse(strings.TrimSpace(*r.TimetableEntrySubjectID)); err == nil {
			in.SubjectID = &id
		}
	}
	if r.TimetableEntryFacultyID != nil {
		if id, err := uuid.Parse(strings.TrimSpace(*r.TimetableEntryFacultyID)); err == nil {
			in.FacultyID = &id
		}
	}
	in.DayOfWeek = r.TimetableEntryDayOfWeek
	if r.TimetableEntryDate != nil {
		if t, ok := parseDateYYYYMMDD(*r.TimetableEntryDate); ok {
			in.Date = &t
		}
	}
	if r.TimetableEntryType != nil {
		in.EntryType = m.EntryType(strings.ToUpper(strings.TrimSpace(*r.TimetableEntryType)))
	}
	if r.TimetableEntryCancelled != nil {
		in.Cancelled = *r.TimetableEntryCancelled
	}
	in.Notes = trimPtr(r.TimetableEntryNotes)
	return in
}

type ApplyEditRequest struct {
	Scope string `json:"scope" validate:"required,oneof=occurrence future"`

	TimetableEntrySubjectID *string `json:"timetable_entry_subject_id" validate:"omitempty,uuid"`
	TimetableEntryFacultyID *string `json:"timetable_entry_faculty_id" validate:"omitempty,uuid"`
	TimetableEntrySlotID    *string `json:"timetable_entry_time_slot_id" validate:"omitempty,uuid"`
	TimetableEntryType      *string `json:"timetable_entry_type"         validate:"omitempty,oneof=REGULAR MAKEUP EXTRA EXAM CANCELLED"`
	TimetableEntryCancelled *bool   `json:"timetable_entry_is_cancelled" validate:"omitempty"`
	TimetableEntryNotes     *string `json:"timetable_entry_notes"        validate:"omitempty,max=2000"`

	// wajib saat scope=occurrence pada baris recurring
	OccurrenceDate *string `json:"occurrence_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r ApplyEditRequest) ToPatch(override bool) s.EditPatch {
	p := s.EditPatch{Override: override}
	if r.TimetableEntrySubjectID != nil {
		if id, err := uuid.Parse(strings.TrimSpace(*r.TimetableEntrySubjectID)); err == nil {
			p.SubjectID = &id
		}
	}
	if r.TimetableEntryFacultyID != nil {
		if id, err := uuid.Parse(strings.TrimSpace(*r.TimetableEntryFacultyID)); err == nil {
			p.FacultyID = &id
		}
	}
	if r.TimetableEntrySlotID != nil {
		if id, err := uuid.Parse(strings.TrimSpace(*r.TimetableEntrySlotID)); err == nil {
			p.TimeSlotID = &id
		}
	}
	if r.TimetableEntryType != nil {
		t := m.EntryType(strings.ToUpper(strings.TrimSpace(*r.TimetableEntryType)))
		p.EntryType = &t
	}
	p.Cancelled = r.TimetableEntryCancelled
	p.Notes = trimPtr(r.TimetableEntryNotes)
	if r.OccurrenceDate != nil {
		if t, ok := parseDateYYYYMMDD(*r.OccurrenceDate); ok {
			p.OccurrenceDate = &t
		}
	}
	return p
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type TimetableEntryResponse struct {
	TimetableEntryID          uuid.UUID                 `json:"timetable_entry_id"`
	TimetableEntryBatchID     uuid.UUID                 `json:"timetable_entry_batch_id"`
	TimetableEntrySubjectID   *uuid.UUID                `json:"timetable_entry_subject_id,omitempty"`
	TimetableEntryFacultyID   *uuid.UUID                `json:"timetable_entry_faculty_id,omitempty"`
	TimetableEntrySlotID      uuid.UUID                 `json:"timetable_entry_time_slot_id"`
	TimeSlot                  *slotDTO.TimeSlotResponse `json:"time_slot,omitempty"`
	TimetableEntryDayOfWeek   *int                      `json:"timetable_entry_day_of_week,omitempty"`
	TimetableEntryDate        *string                   `json:"timetable_entry_date,omitempty"` // YYYY-MM-DD
	TimetableEntryType        m.EntryType               `json:"timetable_entry_type"`
	TimetableEntryIsCancelled bool                      `json:"timetable_entry_is_cancelled"`
	TimetableEntryIsActive    bool                      `json:"timetable_entry_is_active"`
	TimetableEntryNotes       *string                   `json:"timetable_entry_notes,omitempty"`
}

func FromModel(e *m.TimetableEntryModel) TimetableEntryResponse {
	resp := TimetableEntryResponse{
		TimetableEntryID:          e.TimetableEntryID,
		TimetableEntryBatchID:     e.TimetableEntryBatchID,
		TimetableEntrySubjectID:   e.TimetableEntrySubjectID,
		TimetableEntryFacultyID:   e.TimetableEntryFacultyID,
		TimetableEntrySlotID:      e.TimetableEntryTimeSlotID,
		TimetableEntryDayOfWeek:   e.TimetableEntryDayOfWeek,
		TimetableEntryType:        e.TimetableEntryType,
		TimetableEntryIsCancelled: e.TimetableEntryIsCancelled,
		TimetableEntryIsActive:    e.TimetableEntryIsActive,
		TimetableEntryNotes:       e.TimetableEntryNotes,
	}
	if e.TimetableEntryDate != nil {
		d := e.TimetableEntryDate.Format("2006-01-02")
		resp.TimetableEntryDate = &d
	}
	if e.TimeSlot != nil {
		slot := slotDTO.FromModel(e.TimeSlot)
		resp.TimeSlot = &slot
	}
	return resp
}

func FromModels(list []m.TimetableEntryModel) []TimetableEntryResponse {
	out := make([]TimetableEntryResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

type WriteResultResponse struct {
	Entry    TimetableEntryResponse `json:"entry"`
	Warnings []s.ConflictDescriptor `json:"warnings,omitempty"`
}

func FromWriteResult(res *s.WriteResult) WriteResultResponse {
	return WriteResultResponse{
		Entry:    FromModel(res.Entry),
		Warnings: res.Warnings,
	}
}
