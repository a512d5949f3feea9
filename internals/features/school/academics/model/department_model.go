// file: internals/features/school/academics/model/department_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: DepartmentModel
   ========================= */

type DepartmentModel struct {
	DepartmentID uuid.UUID `json:"department_id" gorm:"column:department_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	DepartmentName string `json:"department_name" gorm:"column:department_name;type:varchar(120);not null"`
	DepartmentCode string `json:"department_code" gorm:"column:department_code;type:varchar(20);not null;uniqueIndex:uq_department_code"`

	// Override cap beban SKS per departemen; nil → pakai default 30.
	DepartmentMaxCredits *int `json:"department_max_credits" gorm:"column:department_max_credits"`

	DepartmentIsActive bool `json:"department_is_active" gorm:"column:department_is_active;not null;default:true"`

	DepartmentCreatedAt time.Time      `json:"department_created_at" gorm:"column:department_created_at;type:timestamptz;not null;autoCreateTime"`
	DepartmentUpdatedAt time.Time      `json:"department_updated_at" gorm:"column:department_updated_at;type:timestamptz;not null;autoUpdateTime"`
	DepartmentDeletedAt gorm.DeletedAt `json:"department_deleted_at" gorm:"column:department_deleted_at;index"`
}

func (DepartmentModel) TableName() string { return "departments" }

func (d *DepartmentModel) BeforeCreate(tx *gorm.DB) error {
	if d.DepartmentID == uuid.Nil {
		d.DepartmentID = uuid.New()
	}
	return nil
}
