// file: internals/features/school/academics/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enum: SubjectType
   ========================= */

type SubjectType string

const (
	SubjectTheory    SubjectType = "THEORY"
	SubjectPractical SubjectType = "PRACTICAL"
	SubjectElective  SubjectType = "ELECTIVE"
)

func (t SubjectType) Valid() bool {
	switch t {
	case SubjectTheory, SubjectPractical, SubjectElective:
		return true
	}
	return false
}

/* =========================
   Model: SubjectModel
   ========================= */

// Subject membawa bobot SKS dan tautan dosen pengampu: primary penuh,
// co-faculty dihitung setengah bobot oleh agregator beban.
type SubjectModel struct {
	SubjectID uuid.UUID `json:"subject_id" gorm:"column:subject_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	SubjectBatchID uuid.UUID `json:"subject_batch_id" gorm:"column:subject_batch_id;type:uuid;not null;index"`

	SubjectName    string      `json:"subject_name"    gorm:"column:subject_name;type:varchar(120);not null"`
	SubjectCode    string      `json:"subject_code"    gorm:"column:subject_code;type:varchar(20);not null"`
	SubjectCredits int         `json:"subject_credits" gorm:"column:subject_credits;not null;default:0"`
	SubjectType    SubjectType `json:"subject_type"    gorm:"column:subject_type;type:varchar(16);not null;default:'THEORY'"`

	SubjectPrimaryFacultyID *uuid.UUID `json:"subject_primary_faculty_id" gorm:"column:subject_primary_faculty_id;type:uuid;index"`
	SubjectCoFacultyID      *uuid.UUID `json:"subject_co_faculty_id"      gorm:"column:subject_co_faculty_id;type:uuid;index"`

	// Silabus bebas bentuk (topik per pertemuan, rubrik, dst)
	SubjectSyllabus datatypes.JSON `json:"subject_syllabus,omitempty" gorm:"column:subject_syllabus;type:jsonb"`

	SubjectIsActive bool `json:"subject_is_active" gorm:"column:subject_is_active;not null;default:true"`

	SubjectCreatedAt time.Time      `json:"subject_created_at" gorm:"column:subject_created_at;type:timestamptz;not null;autoCreateTime"`
	SubjectUpdatedAt time.Time      `json:"subject_updated_at" gorm:"column:subject_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SubjectDeletedAt gorm.DeletedAt `json:"subject_deleted_at" gorm:"column:subject_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (s *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if s.SubjectID == uuid.Nil {
		s.SubjectID = uuid.New()
	}
	return nil
}
