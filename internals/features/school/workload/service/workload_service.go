// file: internals/features/school/workload/service/workload_service.go
package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   Konstanta & klasifikasi
   ========================= */

// DefaultMaxCredits: cap beban SKS bila departemen tidak menetapkan
// override sendiri.
const DefaultMaxCredits = 30

type LoadStatus string

const (
	LoadUnderutilized LoadStatus = "underutilized"
	LoadBalanced      LoadStatus = "balanced"
	LoadOverloaded    LoadStatus = "overloaded"
)

// Classify: total>max → overloaded; total≥80% max → balanced; sisanya
// underutilized. Co-teaching sudah dihitung setengah bobot oleh pemanggil.
func Classify(total float64, max int) LoadStatus {
	if total > float64(max) {
		return LoadOverloaded
	}
	if total >= 0.8*float64(max) {
		return LoadBalanced
	}
	return LoadUnderutilized
}

/* =========================
   Dependencies (interface)
   ========================= */

type Repo interface {
	// Credits: Σ SKS subject aktif di mana faculty jadi primary, dan Σ
	// di mana dia co-faculty (belum dikalikan 0.5).
	Credits(ctx context.Context, facultyID uuid.UUID) (primary, co int, err error)
	// SubjectCredits: SKS per subject utk id yang diminta; subject yang
	// tidak aktif / tidak ada tidak muncul di map.
	SubjectCredits(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
	FacultyActive(ctx context.Context, id uuid.UUID) (bool, error)
	// MaxCredits: cap ter-resolve (override departemen atau default).
	MaxCredits(ctx context.Context, facultyID uuid.UUID) (int, error)

	// InTx menjalankan fn dalam satu transaksi; commit bulk allot wajib
	// all-or-nothing.
	InTx(ctx context.Context, fn func(r Repo) error) error
	ClearFacultyLinks(ctx context.Context, facultyID uuid.UUID) error
	SetPrimary(ctx context.Context, subjectID, facultyID uuid.UUID) error
	SetCo(ctx context.Context, subjectID, facultyID uuid.UUID) error
}

/* =========================
   Tipe hasil
   ========================= */

// FacultyLoad: potret beban terhitung, tidak dipersist.
type FacultyLoad struct {
	FacultyID          uuid.UUID  `json:"faculty_id"`
	TeachingCredits    int        `json:"teaching_credits"`
	NonTeachingCredits float64    `json:"non_teaching_credits"`
	TotalCredits       float64    `json:"total_credits"`
	MaxCredits         int        `json:"max_credits"`
	UtilizationPercent int        `json:"utilization_percent"`
	Status             LoadStatus `json:"status"`
}

type AssignmentRole string

const (
	RolePrimary AssignmentRole = "primary"
	RoleCo      AssignmentRole = "co"
)

type Assignment struct {
	SubjectID uuid.UUID
	FacultyID uuid.UUID
	Role      AssignmentRole
}

type OverloadDetail struct {
	FacultyID uuid.UUID  `json:"faculty_id"`
	Projected float64    `json:"projected_credits"`
	Max       int        `json:"max_credits"`
	ExceedsBy float64    `json:"exceeds_by"`
	Status    LoadStatus `json:"status"`
}

type BulkAllotResult struct {
	Committed       bool             `json:"committed"`
	WorkloadImpacts []FacultyLoad    `json:"workload_impacts"`
	Overloaded      []OverloadDetail `json:"overloaded_faculty,omitempty"`
	Forced          bool             `json:"forced,omitempty"`
}

/* =========================
   Service
   ========================= */

type WorkloadService struct {
	Repo Repo
}

func NewWorkload(repo Repo) *WorkloadService { return &WorkloadService{Repo: repo} }

func (s *WorkloadService) load(ctx context.Context, r Repo, facultyID uuid.UUID, extra float64) (*FacultyLoad, error) {
	primary, co, err := r.Credits(ctx, facultyID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	max, err := r.MaxCredits(ctx, facultyID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}

	nonTeaching := 0.5 * float64(co)
	total := float64(primary) + nonTeaching + extra

	pct := 0
	if max > 0 {
		pct = int(math.Round(100 * total / float64(max)))
	}
	return &FacultyLoad{
		FacultyID:          facultyID,
		TeachingCredits:    primary,
		NonTeachingCredits: nonTeaching,
		TotalCredits:       total,
		MaxCredits:         max,
		UtilizationPercent: pct,
		Status:             Classify(total, max),
	}, nil
}

func (s *WorkloadService) CurrentLoad(ctx context.Context, facultyID uuid.UUID) (*FacultyLoad, error) {
	ok, err := s.Repo.FacultyActive(ctx, facultyID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	if !ok {
		return nil, apierror.NotFound("faculty tidak ditemukan / nonaktif")
	}
	return s.load(ctx, s.Repo, facultyID, 0)
}

// ProjectedLoad = beban sekarang + Σ SKS subject kandidat.
func (s *WorkloadService) ProjectedLoad(ctx context.Context, facultyID uuid.UUID, candidateSubjects []uuid.UUID) (*FacultyLoad, error) {
	ok, err := s.Repo.FacultyActive(ctx, facultyID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	if !ok {
		return nil, apierror.NotFound("faculty tidak ditemukan / nonaktif")
	}
	credits, err := s.Repo.SubjectCredits(ctx, candidateSubjects)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	var extra float64
	for _, id := range candidateSubjects {
		c, ok := credits[id]
		if !ok {
			return nil, apierror.NotFound(fmt.Sprintf("subject %s tidak ditemukan / nonaktif", id))
		}
		extra += float64(c)
	}
	return s.load(ctx, s.Repo, facultyID, extra)
}

/* =========================
   Bulk allot
   ========================= */

// BulkAllot memvalidasi lalu meng-commit satu batch penugasan:
//  1. subject yang diklaim dua faculty utk role yang sama → ConflictError
//     keras, tanpa tie-break prioritas;
//  2. proyeksi beban per faculty; ada yang overload → tolak seluruh batch
//     dgn detail exceedsBy per faculty, kecuali force;
//  3. commit = satu transaksi: bersihkan semua link primary/co tiap
//     faculty yang tersentuh, lalu terapkan set yang diminta (replacement
//     penuh, bukan patch aditif).
func (s *WorkloadService) BulkAllot(ctx context.Context, assignments []Assignment, force bool) (*BulkAllotResult, error) {
	if len(assignments) == 0 {
		return nil, apierror.Validation("assignments kosong")
	}

	// 1) klaim ganda (subject, role)
	claimed := map[string]uuid.UUID{}
	var duplicates []map[string]any
	for _, a := range assignments {
		if a.Role != RolePrimary && a.Role != RoleCo {
			return nil, apierror.Validation(fmt.Sprintf("role tidak dikenal: %s", a.Role))
		}
		key := a.SubjectID.String() + "|" + string(a.Role)
		if prev, ok := claimed[key]; ok {
			duplicates = append(duplicates, map[string]any{
				"subject_id": a.SubjectID,
				"role":       a.Role,
				"faculty":    []uuid.UUID{prev, a.FacultyID},
			})
			continue
		}
		claimed[key] = a.FacultyID
	}
	if len(duplicates) > 0 {
		return nil, apierror.Conflict("subject diklaim ganda dalam satu batch").
			WithDetails(duplicates)
	}

	// 2) resolve referensi
	bySubject := map[uuid.UUID]struct{}{}
	perFaculty := map[uuid.UUID][]Assignment{}
	for _, a := range assignments {
		bySubject[a.SubjectID] = struct{}{}
		perFaculty[a.FacultyID] = append(perFaculty[a.FacultyID], a)
	}
	subjectIDs := make([]uuid.UUID, 0, len(bySubject))
	for id := range bySubject {
		subjectIDs = append(subjectIDs, id)
	}
	credits, err := s.Repo.SubjectCredits(ctx, subjectIDs)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	for _, id := range subjectIDs {
		if _, ok := credits[id]; !ok {
			return nil, apierror.NotFound(fmt.Sprintf("subject %s tidak ditemukan / nonaktif", id))
		}
	}
	for facultyID := range perFaculty {
		ok, err := s.Repo.FacultyActive(ctx, facultyID)
		if err != nil {
			return nil, apierror.FromPG(err)
		}
		if !ok {
			return nil, apierror.NotFound(fmt.Sprintf("faculty %s tidak ditemukan / nonaktif", facultyID))
		}
	}

	// 3) proyeksi per faculty
	res := &BulkAllotResult{Forced: force}
	var overloaded []OverloadDetail
	for facultyID, list := range perFaculty {
		var extra float64
		for _, a := range list {
			extra += float64(credits[a.SubjectID])
		}
		fl, err := s.load(ctx, s.Repo, facultyID, extra)
		if err != nil {
			return nil, err
		}
		res.WorkloadImpacts = append(res.WorkloadImpacts, *fl)
		if fl.Status == LoadOverloaded {
			overloaded = append(overloaded, OverloadDetail{
				FacultyID: facultyID,
				Projected: fl.TotalCredits,
				Max:       fl.MaxCredits,
				ExceedsBy: fl.TotalCredits - float64(fl.MaxCredits),
				Status:    fl.Status,
			})
		}
	}
	res.Overloaded = overloaded
	if len(overloaded) > 0 && !force {
		return nil, apierror.Overload("beban melebihi cap").WithDetails(overloaded)
	}

	// 4) commit all-or-nothing
	err = s.Repo.InTx(ctx, func(r Repo) error {
		for facultyID := range perFaculty {
			if err := r.ClearFacultyLinks(ctx, facultyID); err != nil {
				return err
			}
		}
		for _, a := range assignments {
			var err error
			if a.Role == RolePrimary {
				err = r.SetPrimary(ctx, a.SubjectID, a.FacultyID)
			} else {
				err = r.SetCo(ctx, a.SubjectID, a.FacultyID)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	res.Committed = true
	return res, nil
}
