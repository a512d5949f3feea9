// file: internals/features/school/academics/service/import_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	acModel "kampusku_backend/internals/features/school/academics/model"
	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   Dependencies (interface)
   ========================= */

type ImportRepo interface {
	BatchActive(ctx context.Context, id uuid.UUID) (bool, error)
	RollExists(ctx context.Context, batchID uuid.UUID, roll string) (bool, error)
	Insert(ctx context.Context, s *acModel.StudentModel) error
}

/* =========================
   Tipe hasil per item
   ========================= */

const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

type ImportItem struct {
	Name       string
	RollNumber string
	Email      string
}

type ImportOutcome struct {
	RollNumber string     `json:"roll_number"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	StudentID  *uuid.UUID `json:"student_id,omitempty"`
}

/* =========================
   Service
   ========================= */

type StudentImporter struct {
	Repo ImportRepo
}

func NewStudentImporter(repo ImportRepo) *StudentImporter {
	return &StudentImporter{Repo: repo}
}

// BulkImport memproses tiap baris sampai habis dan melaporkan hasil per
// item (created/skipped/failed+reason) — tidak berhenti di kegagalan
// pertama. NIM ganda (di DB maupun di payload yang sama) di-skip.
func (s *StudentImporter) BulkImport(ctx context.Context, batchID uuid.UUID, items []ImportItem) ([]ImportOutcome, error) {
	ok, err := s.Repo.BatchActive(ctx, batchID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	if !ok {
		return nil, apierror.NotFound("batch tidak ditemukan / nonaktif")
	}
	if len(items) == 0 {
		return nil, apierror.Validation("items kosong")
	}

	out := make([]ImportOutcome, 0, len(items))
	seen := map[string]bool{}
	for _, it := range items {
		roll := strings.TrimSpace(it.RollNumber)
		name := strings.TrimSpace(it.Name)

		switch {
		case roll == "":
			out = append(out, ImportOutcome{RollNumber: roll, Status: OutcomeFailed, Reason: "roll_number kosong"})
			continue
		case name == "":
			out = append(out, ImportOutcome{RollNumber: roll, Status: OutcomeFailed, Reason: "name kosong"})
			continue
		case seen[roll]:
			out = append(out, ImportOutcome{RollNumber: roll, Status: OutcomeSkipped, Reason: "NIM ganda di payload"})
			continue
		}
		seen[roll] = true

		exists, err := s.Repo.RollExists(ctx, batchID, roll)
		if err != nil {
			out = append(out, ImportOutcome{RollNumber: roll, Status: OutcomeFailed, Reason: err.Error()})
			continue
		}
		if exists {
			out = append(out, ImportOutcome{RollNumber: roll, Status: OutcomeSkipped, Reason: "NIM sudah terdaftar di batch"})
			continue
		}

		st := &acModel.StudentModel{
			StudentBatchID:    batchID,
			StudentName:       name,
			StudentRollNumber: roll,
		}
		if email := strings.TrimSpace(it.Email); email != "" {
			st.StudentEmail = &email
		}
		if err := s.Repo.Insert(ctx, st); err != nil {
			out = append(out, ImportOutcome{RollNumber: roll, Status: OutcomeFailed, Reason: err.Error()})
			continue
		}
		id := st.StudentID
		out = append(out, ImportOutcome{RollNumber: roll, Status: OutcomeCreated, StudentID: &id})
	}
	return out, nil
}
