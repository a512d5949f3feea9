// file: internals/features/school/time_slots/dto/time_slot_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/time_slots/model"
	s "kampusku_backend/internals/features/school/time_slots/service"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CreateTimeSlotRequest struct {
	TimeSlotName      string `json:"time_slot_name"       validate:"required,max=80"`
	TimeSlotStartTime string `json:"time_slot_start_time" validate:"required"`
	TimeSlotEndTime   string `json:"time_slot_end_time"   validate:"required"`
	TimeSlotSortOrder *int   `json:"time_slot_sort_order" validate:"omitempty,min=0"`
}

func (r CreateTimeSlotRequest) ToInput() s.CreateSlotInput {
	return s.CreateSlotInput{
		Name:      r.TimeSlotName,
		StartTime: r.TimeSlotStartTime,
		EndTime:   r.TimeSlotEndTime,
		SortOrder: r.TimeSlotSortOrder,
	}
}

// Update (partial)
type UpdateTimeSlotRequest struct {
	TimeSlotName      *string `json:"time_slot_name"       validate:"omitempty,max=80"`
	TimeSlotStartTime *string `json:"time_slot_start_time" validate:"omitempty"`
	TimeSlotEndTime   *string `json:"time_slot_end_time"   validate:"omitempty"`
	TimeSlotSortOrder *int    `json:"time_slot_sort_order" validate:"omitempty,min=0"`
}

func (r UpdateTimeSlotRequest) ToInput() s.UpdateSlotInput {
	return s.UpdateSlotInput{
		Name:      r.TimeSlotName,
		StartTime: r.TimeSlotStartTime,
		EndTime:   r.TimeSlotEndTime,
		SortOrder: r.TimeSlotSortOrder,
	}
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type TimeSlotResponse struct {
	TimeSlotID              uuid.UUID `json:"time_slot_id"`
	TimeSlotName            string    `json:"time_slot_name"`
	TimeSlotStartTime       string    `json:"time_slot_start_time"` // HH:MM
	TimeSlotEndTime         string    `json:"time_slot_end_time"`   // HH:MM
	TimeSlotDurationMinutes int       `json:"time_slot_duration_minutes"`
	TimeSlotSortOrder       int       `json:"time_slot_sort_order"`
	TimeSlotIsActive        bool      `json:"time_slot_is_active"`
	TimeSlotInUse           *bool     `json:"time_slot_in_use,omitempty"`
	TimeSlotUsageCount      *int64    `json:"time_slot_usage_count,omitempty"`
	TimeSlotCreatedAt       time.Time `json:"time_slot_created_at"`
	TimeSlotUpdatedAt       time.Time `json:"time_slot_updated_at"`
}

func FromModel(slot *m.TimeSlotModel) TimeSlotResponse {
	return TimeSlotResponse{
		TimeSlotID:              slot.TimeSlotID,
		TimeSlotName:            slot.TimeSlotName,
		TimeSlotStartTime:       s.FormatClock(slot.TimeSlotStartMin),
		TimeSlotEndTime:         s.FormatClock(slot.TimeSlotEndMin),
		TimeSlotDurationMinutes: slot.DurationMinutes(),
		TimeSlotSortOrder:       slot.TimeSlotSortOrder,
		TimeSlotIsActive:        slot.TimeSlotIsActive,
		TimeSlotCreatedAt:       slot.TimeSlotCreatedAt,
		TimeSlotUpdatedAt:       slot.TimeSlotUpdatedAt,
	}
}

func FromSlotWithUsage(row s.SlotWithUsage) TimeSlotResponse {
	resp := FromModel(&row.Slot)
	inUse := row.InUse
	n := row.UsageCount
	resp.TimeSlotInUse = &inUse
	resp.TimeSlotUsageCount = &n
	return resp
}

type AdjacentSlotResponse struct {
	Slot     TimeSlotResponse `json:"slot"`
	Position string           `json:"position"` // before | after
}

type GapResponse struct {
	GapStartTime string `json:"gap_start_time"` // HH:MM
	GapEndTime   string `json:"gap_end_time"`   // HH:MM
	GapMinutes   int    `json:"gap_minutes"`
}

type ConflictReportResponse struct {
	Overlapping []TimeSlotResponse     `json:"overlapping"`
	Adjacent    []AdjacentSlotResponse `json:"adjacent"`
	Gaps        []GapResponse          `json:"gaps"`
}

func FromConflictReport(rep *s.ConflictReport) ConflictReportResponse {
	out := ConflictReportResponse{
		Overlapping: make([]TimeSlotResponse, 0, len(rep.Overlapping)),
		Adjacent:    make([]AdjacentSlotResponse, 0, len(rep.Adjacent)),
		Gaps:        make([]GapResponse, 0, len(rep.Gaps)),
	}
	for i := range rep.Overlapping {
		out.Overlapping = append(out.Overlapping, FromModel(&rep.Overlapping[i]))
	}
	for i := range rep.Adjacent {
		out.Adjacent = append(out.Adjacent, AdjacentSlotResponse{
			Slot:     FromModel(&rep.Adjacent[i].Slot),
			Position: rep.Adjacent[i].Position,
		})
	}
	for _, g := range rep.Gaps {
		out.Gaps = append(out.Gaps, GapResponse{
			GapStartTime: s.FormatClock(g.StartMin),
			GapEndTime:   s.FormatClock(g.EndMin),
			GapMinutes:   g.EndMin - g.StartMin,
		})
	}
	return out
}
