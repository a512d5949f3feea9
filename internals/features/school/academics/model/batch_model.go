// file: internals/features/school/academics/model/batch_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: BatchModel
   ========================= */

// Batch = satu angkatan/kohort mahasiswa pada program + semester tertentu.
type BatchModel struct {
	BatchID uuid.UUID `json:"batch_id" gorm:"column:batch_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	BatchDepartmentID uuid.UUID `json:"batch_department_id" gorm:"column:batch_department_id;type:uuid;not null;index"`

	BatchName     string `json:"batch_name"     gorm:"column:batch_name;type:varchar(120);not null"`
	BatchSemester int    `json:"batch_semester" gorm:"column:batch_semester;not null;default:1"`
	BatchYear     int    `json:"batch_year"     gorm:"column:batch_year;not null"`

	BatchIsActive bool `json:"batch_is_active" gorm:"column:batch_is_active;not null;default:true"`

	BatchCreatedAt time.Time      `json:"batch_created_at" gorm:"column:batch_created_at;type:timestamptz;not null;autoCreateTime"`
	BatchUpdatedAt time.Time      `json:"batch_updated_at" gorm:"column:batch_updated_at;type:timestamptz;not null;autoUpdateTime"`
	BatchDeletedAt gorm.DeletedAt `json:"batch_deleted_at" gorm:"column:batch_deleted_at;index"`
}

func (BatchModel) TableName() string { return "batches" }

func (b *BatchModel) BeforeCreate(tx *gorm.DB) error {
	if b.BatchID == uuid.Nil {
		b.BatchID = uuid.New()
	}
	return nil
}
