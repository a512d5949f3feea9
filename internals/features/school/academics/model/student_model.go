// file: internals/features/school/academics/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: StudentModel
   ========================= */

type StudentModel struct {
	StudentID uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	StudentBatchID uuid.UUID `json:"student_batch_id" gorm:"column:student_batch_id;type:uuid;not null;index;uniqueIndex:uq_student_batch_roll,priority:1"`

	StudentUserID *uuid.UUID `json:"student_user_id" gorm:"column:student_user_id;type:uuid;index"`

	StudentName string `json:"student_name" gorm:"column:student_name;type:varchar(120);not null"`
	// NIM unik per batch; kunci dedup bulk import.
	StudentRollNumber string  `json:"student_roll_number" gorm:"column:student_roll_number;type:varchar(40);not null;uniqueIndex:uq_student_batch_roll,priority:2"`
	StudentEmail      *string `json:"student_email"       gorm:"column:student_email;type:varchar(160)"`

	StudentIsActive bool `json:"student_is_active" gorm:"column:student_is_active;not null;default:true"`

	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;type:timestamptz;not null;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;type:timestamptz;not null;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"student_deleted_at" gorm:"column:student_deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}
