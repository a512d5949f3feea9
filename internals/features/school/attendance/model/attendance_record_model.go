// file: internals/features/school/attendance/model/attendance_record_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum status
   ========================= */

// AttendanceStatus: kosakata internal 4 nilai.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusExcused AttendanceStatus = "EXCUSED"
)

// PublicStatus: kosakata publik 3 nilai (+unmarked utk sesi kosong).
type PublicStatus string

const (
	PublicPresent  PublicStatus = "present"
	PublicAbsent   PublicStatus = "absent"
	PublicMedical  PublicStatus = "medical"
	PublicUnmarked PublicStatus = "unmarked"
)

// Public: SATU-SATUNYA titik pemetaan internal→publik. LATE sengaja
// dilipat ke "present" — mengubahnya di sini mengubah semua persentase
// downstream, jangan diduplikasi di tempat lain.
func (s AttendanceStatus) Public() PublicStatus {
	switch s {
	case StatusPresent, StatusLate:
		return PublicPresent
	case StatusExcused:
		return PublicMedical
	case StatusAbsent:
		return PublicAbsent
	default:
		return PublicAbsent
	}
}

// ParseInbound menerima kosakata publik maupun internal; status yang
// tidak dikenal jatuh ke ABSENT.
func ParseInbound(raw string) AttendanceStatus {
	switch strings.TrimSpace(raw) {
	case string(PublicPresent):
		return StatusPresent
	case string(PublicAbsent):
		return StatusAbsent
	case string(PublicMedical):
		return StatusExcused
	}
	switch AttendanceStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return AttendanceStatus(strings.ToUpper(strings.TrimSpace(raw)))
	}
	return StatusAbsent
}

/* =========================
   Model: AttendanceRecordModel
   ========================= */

type AttendanceRecordModel struct {
	// PK
	AttendanceRecordID uuid.UUID `json:"attendance_record_id" gorm:"column:attendance_record_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// Unik per (session, student) — semantik upsert
	AttendanceRecordSessionID uuid.UUID `json:"attendance_record_session_id" gorm:"column:attendance_record_session_id;type:uuid;not null;uniqueIndex:uq_attendance_record_key"`
	AttendanceRecordStudentID uuid.UUID `json:"attendance_record_student_id" gorm:"column:attendance_record_student_id;type:uuid;not null;uniqueIndex:uq_attendance_record_key"`

	AttendanceRecordStatus         AttendanceStatus `json:"attendance_record_status" gorm:"column:attendance_record_status;type:varchar(16);not null"`
	AttendanceRecordMarkedAt       time.Time        `json:"attendance_record_marked_at" gorm:"column:attendance_record_marked_at;type:timestamptz;not null"`
	AttendanceRecordLastModifiedBy uuid.UUID        `json:"attendance_record_last_modified_by" gorm:"column:attendance_record_last_modified_by;type:uuid;not null"`

	// Timestamps
	AttendanceRecordCreatedAt time.Time `json:"attendance_record_created_at" gorm:"column:attendance_record_created_at;type:timestamptz;not null;autoCreateTime"`
	AttendanceRecordUpdatedAt time.Time `json:"attendance_record_updated_at" gorm:"column:attendance_record_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

func (r *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if r.AttendanceRecordID == uuid.Nil {
		r.AttendanceRecordID = uuid.New()
	}
	return nil
}
