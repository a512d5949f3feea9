// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/attendance/model"
	s "kampusku_backend/internals/features/school/attendance/service"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type GetOrCreateSessionRequest struct {
	AttendanceSessionBatchID   string `json:"attendance_session_batch_id"   validate:"required,uuid"`
	AttendanceSessionSubjectID string `json:"attendance_session_subject_id" validate:"required,uuid"`
	AttendanceSessionDate      string `json:"attendance_session_date"       validate:"required,datetime=2006-01-02"`
}

type MarkRequest struct {
	AttendanceRecordStudentID string `json:"attendance_record_student_id" validate:"required,uuid"`
	// Kosakata publik: present | absent | medical (nilai internal legacy
	// juga diterima; status asing jatuh ke ABSENT di service).
	AttendanceRecordStatus string `json:"attendance_record_status" validate:"required,max=16"`
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type AttendanceSessionResponse struct {
	AttendanceSessionID          uuid.UUID  `json:"attendance_session_id"`
	AttendanceSessionBatchID     uuid.UUID  `json:"attendance_session_batch_id"`
	AttendanceSessionSubjectID   uuid.UUID  `json:"attendance_session_subject_id"`
	AttendanceSessionDate        string     `json:"attendance_session_date"` // YYYY-MM-DD
	AttendanceSessionMarkedBy    *uuid.UUID `json:"attendance_session_marked_by,omitempty"`
	AttendanceSessionIsCompleted bool       `json:"attendance_session_is_completed"`
	AttendanceSessionNotes       *string    `json:"attendance_session_notes,omitempty"`
	AttendanceSessionCreatedAt   time.Time  `json:"attendance_session_created_at"`
}

func FromSessionModel(sess *m.AttendanceSessionModel) AttendanceSessionResponse {
	return AttendanceSessionResponse{
		AttendanceSessionID:          sess.AttendanceSessionID,
		AttendanceSessionBatchID:     sess.AttendanceSessionBatchID,
		AttendanceSessionSubjectID:   sess.AttendanceSessionSubjectID,
		AttendanceSessionDate:        sess.AttendanceSessionDate.Format("2006-01-02"),
		AttendanceSessionMarkedBy:    sess.AttendanceSessionMarkedBy,
		AttendanceSessionIsCompleted: sess.AttendanceSessionIsCompleted,
		AttendanceSessionNotes:       sess.AttendanceSessionNotes,
		AttendanceSessionCreatedAt:   sess.AttendanceSessionCreatedAt,
	}
}

type AttendanceRecordResponse struct {
	AttendanceRecordID        uuid.UUID      `json:"attendance_record_id"`
	AttendanceRecordSessionID uuid.UUID      `json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID      `json:"attendance_record_student_id"`
	AttendanceRecordStatus    m.PublicStatus `json:"attendance_record_status"` // kosakata publik
	AttendanceRecordMarkedAt  time.Time      `json:"attendance_record_marked_at"`
}

func FromRecordModel(rec *m.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID:        rec.AttendanceRecordID,
		AttendanceRecordSessionID: rec.AttendanceRecordSessionID,
		AttendanceRecordStudentID: rec.AttendanceRecordStudentID,
		AttendanceRecordStatus:    rec.AttendanceRecordStatus.Public(),
		AttendanceRecordMarkedAt:  rec.AttendanceRecordMarkedAt,
	}
}

type SummaryResponse struct {
	StudentID      uuid.UUID              `json:"student_id"`
	SubjectID      uuid.UUID              `json:"subject_id"`
	MarkedSessions int                    `json:"marked_sessions"`
	Percentage     int                    `json:"percentage"`
	Breakdown      map[m.PublicStatus]int `json:"breakdown"`
}

func FromSummary(sum *s.AttendanceSummary) SummaryResponse {
	return SummaryResponse{
		StudentID:      sum.StudentID,
		SubjectID:      sum.SubjectID,
		MarkedSessions: sum.MarkedSessions,
		Percentage:     sum.Percentage,
		Breakdown:      sum.Breakdown,
	}
}
