// file: internals/features/school/academics/dto/academics_dto.go
package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	acModel "kampusku_backend/internals/features/school/academics/model"
	s "kampusku_backend/internals/features/school/academics/service"
)

/* =========================
   Department
   ========================= */

type CreateDepartmentRequest struct {
	Name       string `json:"department_name" validate:"required,min=2,max=120"`
	Code       string `json:"department_code" validate:"required,min=2,max=20"`
	MaxCredits *int   `json:"department_max_credits" validate:"omitempty,gt=0"`
}

type UpdateDepartmentRequest struct {
	Name       *string `json:"department_name" validate:"omitempty,min=2,max=120"`
	Code       *string `json:"department_code" validate:"omitempty,min=2,max=20"`
	MaxCredits *int    `json:"department_max_credits" validate:"omitempty,gt=0"`
	IsActive   *bool   `json:"department_is_active"`
}

/* =========================
   Batch
   ========================= */

type CreateBatchRequest struct {
	DepartmentID uuid.UUID `json:"batch_department_id" validate:"required"`
	Name         string    `json:"batch_name"     validate:"required,min=2,max=120"`
	Semester     int       `json:"batch_semester" validate:"required,min=1,max=14"`
	Year         int       `json:"batch_year"     validate:"required,min=2000"`
}

type UpdateBatchRequest struct {
	Name     *string `json:"batch_name"     validate:"omitempty,min=2,max=120"`
	Semester *int    `json:"batch_semester" validate:"omitempty,min=1,max=14"`
	Year     *int    `json:"batch_year"     validate:"omitempty,min=2000"`
	IsActive *bool   `json:"batch_is_active"`
}

/* =========================
   Faculty
   ========================= */

type CreateFacultyRequest struct {
	DepartmentID uuid.UUID `json:"faculty_department_id" validate:"required"`
	Name         string    `json:"faculty_name"  validate:"required,min=2,max=120"`
	Email        *string   `json:"faculty_email" validate:"omitempty,email"`
	NIDN         *string   `json:"faculty_nidn"  validate:"omitempty,max=30"`
}

type UpdateFacultyRequest struct {
	Name     *string `json:"faculty_name"  validate:"omitempty,min=2,max=120"`
	Email    *string `json:"faculty_email" validate:"omitempty,email"`
	NIDN     *string `json:"faculty_nidn"  validate:"omitempty,max=30"`
	IsActive *bool   `json:"faculty_is_active"`
}

/* =========================
   Student
   ========================= */

type CreateStudentRequest struct {
	BatchID    uuid.UUID `json:"student_batch_id" validate:"required"`
	Name       string    `json:"student_name"        validate:"required,min=2,max=120"`
	RollNumber string    `json:"student_roll_number" validate:"required,min=1,max=40"`
	Email      *string   `json:"student_email"       validate:"omitempty,email"`
}

type UpdateStudentRequest struct {
	Name     *string `json:"student_name"  validate:"omitempty,min=2,max=120"`
	Email    *string `json:"student_email" validate:"omitempty,email"`
	IsActive *bool   `json:"student_is_active"`
}

type BulkImportItemRequest struct {
	Name       string `json:"name"        validate:"required_without=RollNumber,max=120"`
	RollNumber string `json:"roll_number" validate:"max=40"`
	Email      string `json:"email"       validate:"omitempty,email"`
}

type BulkImportStudentsRequest struct {
	BatchID uuid.UUID               `json:"batch_id" validate:"required"`
	Items   []BulkImportItemRequest `json:"items"    validate:"required,min=1"`
}

func (r *BulkImportStudentsRequest) ToItems() []s.ImportItem {
	out := make([]s.ImportItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, s.ImportItem{
			Name:       it.Name,
			RollNumber: it.RollNumber,
			Email:      it.Email,
		})
	}
	return out
}

/* =========================
   Subject
   ========================= */

type CreateSubjectRequest struct {
	BatchID          uuid.UUID      `json:"subject_batch_id" validate:"required"`
	Name             string         `json:"subject_name"    validate:"required,min=2,max=120"`
	Code             string         `json:"subject_code"    validate:"required,min=2,max=20"`
	Credits          int            `json:"subject_credits" validate:"required,min=1,max=12"`
	Type             string         `json:"subject_type"    validate:"omitempty,oneof=THEORY PRACTICAL ELECTIVE"`
	PrimaryFacultyID *uuid.UUID     `json:"subject_primary_faculty_id"`
	CoFacultyID      *uuid.UUID     `json:"subject_co_faculty_id"`
	Syllabus         datatypes.JSON `json:"subject_syllabus"`
}

type UpdateSubjectRequest struct {
	Name             *string    `json:"subject_name"    validate:"omitempty,min=2,max=120"`
	Code             *string    `json:"subject_code"    validate:"omitempty,min=2,max=20"`
	Credits          *int       `json:"subject_credits" validate:"omitempty,min=1,max=12"`
	Type             *string    `json:"subject_type"    validate:"omitempty,oneof=THEORY PRACTICAL ELECTIVE"`
	PrimaryFacultyID *uuid.UUID     `json:"subject_primary_faculty_id"`
	CoFacultyID      *uuid.UUID     `json:"subject_co_faculty_id"`
	Syllabus         datatypes.JSON `json:"subject_syllabus"`
	IsActive         *bool          `json:"subject_is_active"`
}

func (r *CreateSubjectRequest) ToModel() *acModel.SubjectModel {
	st := acModel.SubjectType(r.Type)
	if !st.Valid() {
		st = acModel.SubjectTheory
	}
	return &acModel.SubjectModel{
		SubjectBatchID:          r.BatchID,
		SubjectName:             r.Name,
		SubjectCode:             r.Code,
		SubjectCredits:          r.Credits,
		SubjectType:             st,
		SubjectPrimaryFacultyID: r.PrimaryFacultyID,
		SubjectCoFacultyID:      r.CoFacultyID,
		SubjectSyllabus:         r.Syllabus,
		SubjectIsActive:         true,
	}
}
