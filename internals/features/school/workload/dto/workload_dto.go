// file: internals/features/school/workload/dto/workload_dto.go
package dto

import (
	"github.com/google/uuid"

	s "kampusku_backend/internals/features/school/workload/service"
)

/* =========================
   Request
   ========================= */

type AssignmentRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	FacultyID uuid.UUID `json:"faculty_id" validate:"required"`
	Role      string    `json:"role"       validate:"required,oneof=primary co"`
}

type BulkAllotRequest struct {
	Assignments []AssignmentRequest `json:"assignments" validate:"required,min=1,dive"`
}

func (r *BulkAllotRequest) ToAssignments() []s.Assignment {
	out := make([]s.Assignment, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		out = append(out, s.Assignment{
			SubjectID: a.SubjectID,
			FacultyID: a.FacultyID,
			Role:      s.AssignmentRole(a.Role),
		})
	}
	return out
}

/* =========================
   Response
   ========================= */

// FacultyLoad dan BulkAllotResult sudah membawa tag json sendiri;
// diekspos apa adanya lewat helper list/ok.
