// file: internals/features/school/attendance/model/attendance_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: AttendanceSessionModel

   Unit absensi per (batch, subject, date). Dibuat lazy saat mark
   pertama; kunci naturalnya unik sehingga getOrCreate konkuren tidak
   pernah duplikat.
   ========================= */

type AttendanceSessionModel struct {
	// PK
	AttendanceSessionID uuid.UUID `json:"attendance_session_id" gorm:"column:attendance_session_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// Kunci natural
	AttendanceSessionBatchID   uuid.UUID `json:"attendance_session_batch_id"   gorm:"column:attendance_session_batch_id;type:uuid;not null;uniqueIndex:uq_attendance_session_key"`
	AttendanceSessionSubjectID uuid.UUID `json:"attendance_session_subject_id" gorm:"column:attendance_session_subject_id;type:uuid;not null;uniqueIndex:uq_attendance_session_key"`
	AttendanceSessionDate      time.Time `json:"attendance_session_date"       gorm:"column:attendance_session_date;type:date;not null;uniqueIndex:uq_attendance_session_key"`

	AttendanceSessionMarkedBy    *uuid.UUID `json:"attendance_session_marked_by" gorm:"column:attendance_session_marked_by;type:uuid"`
	AttendanceSessionIsCompleted bool       `json:"attendance_session_is_completed" gorm:"column:attendance_session_is_completed;not null;default:false"`
	AttendanceSessionNotes       *string    `json:"attendance_session_notes" gorm:"column:attendance_session_notes;type:text"`

	// Timestamps
	AttendanceSessionCreatedAt time.Time      `json:"attendance_session_created_at" gorm:"column:attendance_session_created_at;type:timestamptz;not null;autoCreateTime"`
	AttendanceSessionUpdatedAt time.Time      `json:"attendance_session_updated_at" gorm:"column:attendance_session_updated_at;type:timestamptz;not null;autoUpdateTime"`
	AttendanceSessionDeletedAt gorm.DeletedAt `json:"attendance_session_deleted_at" gorm:"column:attendance_session_deleted_at;index"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

func (s *AttendanceSessionModel) BeforeCreate(tx *gorm.DB) error {
	if s.AttendanceSessionID == uuid.Nil {
		s.AttendanceSessionID = uuid.New()
	}
	return nil
}
