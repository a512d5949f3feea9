// file: internals/features/school/academics/model/faculty_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: FacultyModel
   ========================= */

type FacultyModel struct {
	FacultyID uuid.UUID `json:"faculty_id" gorm:"column:faculty_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	FacultyDepartmentID uuid.UUID `json:"faculty_department_id" gorm:"column:faculty_department_id;type:uuid;not null;index"`

	// FacultyUserID opsional: tautan ke akun login (tabel users) bila dosen
	// punya akses aplikasi.
	FacultyUserID *uuid.UUID `json:"faculty_user_id" gorm:"column:faculty_user_id;type:uuid;index"`

	FacultyName  string  `json:"faculty_name"  gorm:"column:faculty_name;type:varchar(120);not null"`
	FacultyEmail *string `json:"faculty_email" gorm:"column:faculty_email;type:varchar(160)"`
	FacultyNIDN  *string `json:"faculty_nidn"  gorm:"column:faculty_nidn;type:varchar(30);uniqueIndex:uq_faculty_nidn"`

	FacultyIsActive bool `json:"faculty_is_active" gorm:"column:faculty_is_active;not null;default:true"`

	FacultyCreatedAt time.Time      `json:"faculty_created_at" gorm:"column:faculty_created_at;type:timestamptz;not null;autoCreateTime"`
	FacultyUpdatedAt time.Time      `json:"faculty_updated_at" gorm:"column:faculty_updated_at;type:timestamptz;not null;autoUpdateTime"`
	FacultyDeletedAt gorm.DeletedAt `json:"faculty_deleted_at" gorm:"column:faculty_deleted_at;index"`
}

func (FacultyModel) TableName() string { return "faculties" }

func (f *FacultyModel) BeforeCreate(tx *gorm.DB) error {
	if f.FacultyID == uuid.Nil {
		f.FacultyID = uuid.New()
	}
	return nil
}
