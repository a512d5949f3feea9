// file: internals/features/school/workload/service/workload_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   Fake repo in-memory
   ========================= */

type fakeSubject struct {
	credits int
	primary *uuid.UUID
	co      *uuid.UUID
}

type fakeWorkloadRepo struct {
	subjects map[uuid.UUID]*fakeSubject
	faculty  map[uuid.UUID]bool // id → aktif
	maxBy    map[uuid.UUID]int  // override per faculty; kosong → default

	txFailOnSet bool
}

func newFakeWorkloadRepo() *fakeWorkloadRepo {
	return &fakeWorkloadRepo{
		subjects: map[uuid.UUID]*fakeSubject{},
		faculty:  map[uuid.UUID]bool{},
		maxBy:    map[uuid.UUID]int{},
	}
}

func (f *fakeWorkloadRepo) addFaculty() uuid.UUID {
	id := uuid.New()
	f.faculty[id] = true
	return id
}

func (f *fakeWorkloadRepo) addSubject(credits int, primary, co *uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.subjects[id] = &fakeSubject{credits: credits, primary: primary, co: co}
	return id
}

func (f *fakeWorkloadRepo) Credits(_ context.Context, facultyID uuid.UUID) (int, int, error) {
	var primary, co int
	for _, s := range f.subjects {
		if s.primary != nil && *s.primary == facultyID {
			primary += s.credits
		}
		if s.co != nil && *s.co == facultyID {
			co += s.credits
		}
	}
	return primary, co, nil
}

func (f *fakeWorkloadRepo) SubjectCredits(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	out := map[uuid.UUID]int{}
	for _, id := range ids {
		if s, ok := f.subjects[id]; ok {
			out[id] = s.credits
		}
	}
	return out, nil
}

func (f *fakeWorkloadRepo) FacultyActive(_ context.Context, id uuid.UUID) (bool, error) {
	return f.faculty[id], nil
}

func (f *fakeWorkloadRepo) MaxCredits(_ context.Context, facultyID uuid.UUID) (int, error) {
	if max, ok := f.maxBy[facultyID]; ok {
		return max, nil
	}
	return DefaultMaxCredits, nil
}

func (f *fakeWorkloadRepo) InTx(_ context.Context, fn func(Repo) error) error {
	// Snapshot utk rollback: commit wajib all-or-nothing.
	snap := map[uuid.UUID]fakeSubject{}
	for id, s := range f.subjects {
		snap[id] = *s
	}
	if err := fn(f); err != nil {
		for id := range f.subjects {
			cp := snap[id]
			f.subjects[id] = &cp
		}
		return err
	}
	return nil
}

func (f *fakeWorkloadRepo) ClearFacultyLinks(_ context.Context, facultyID uuid.UUID) error {
	for _, s := range f.subjects {
		if s.primary != nil && *s.primary == facultyID {
			s.primary = nil
		}
		if s.co != nil && *s.co == facultyID {
			s.co = nil
		}
	}
	return nil
}

func (f *fakeWorkloadRepo) SetPrimary(_ context.Context, subjectID, facultyID uuid.UUID) error {
	if f.txFailOnSet {
		return assert.AnError
	}
	f.subjects[subjectID].primary = &facultyID
	return nil
}

func (f *fakeWorkloadRepo) SetCo(_ context.Context, subjectID, facultyID uuid.UUID) error {
	if f.txFailOnSet {
		return assert.AnError
	}
	f.subjects[subjectID].co = &facultyID
	return nil
}

/* =========================
   Classify
   ========================= */

func TestClassify(t *testing.T) {
	assert.Equal(t, LoadOverloaded, Classify(31, 30))
	assert.Equal(t, LoadOverloaded, Classify(30.5, 30))
	assert.Equal(t, LoadBalanced, Classify(30, 30))
	assert.Equal(t, LoadBalanced, Classify(24, 30)) // tepat 80%
	assert.Equal(t, LoadUnderutilized, Classify(23.5, 30))
	assert.Equal(t, LoadUnderutilized, Classify(0, 30))
}

/* =========================
   Current / projected load
   ========================= */

func TestCurrentLoad_CoFacultyHalfWeight(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	repo.addSubject(4, &fac, nil) // primary: penuh
	repo.addSubject(3, &fac, nil)
	repo.addSubject(4, nil, &fac) // co: setengah

	svc := NewWorkload(repo)
	load, err := svc.CurrentLoad(context.Background(), fac)
	require.NoError(t, err)

	assert.Equal(t, 7, load.TeachingCredits)
	assert.Equal(t, 2.0, load.NonTeachingCredits)
	assert.Equal(t, 9.0, load.TotalCredits)
	assert.Equal(t, DefaultMaxCredits, load.MaxCredits)
	assert.Equal(t, 30, load.UtilizationPercent)
	assert.Equal(t, LoadUnderutilized, load.Status)
}

func TestCurrentLoad_DepartmentOverride(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	repo.maxBy[fac] = 20
	repo.addSubject(18, &fac, nil)

	svc := NewWorkload(repo)
	load, err := svc.CurrentLoad(context.Background(), fac)
	require.NoError(t, err)
	assert.Equal(t, 20, load.MaxCredits)
	assert.Equal(t, LoadBalanced, load.Status) // 18 ≥ 16
}

func TestCurrentLoad_UnknownFaculty(t *testing.T) {
	svc := NewWorkload(newFakeWorkloadRepo())
	_, err := svc.CurrentLoad(context.Background(), uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestProjectedLoad(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	repo.addSubject(10, &fac, nil)
	candidate := repo.addSubject(5, nil, nil)

	svc := NewWorkload(repo)
	load, err := svc.ProjectedLoad(context.Background(), fac, []uuid.UUID{candidate})
	require.NoError(t, err)
	assert.Equal(t, 15.0, load.TotalCredits)

	_, err = svc.ProjectedLoad(context.Background(), fac, []uuid.UUID{uuid.New()})
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

/* =========================
   Scenario D: bulk allot
   ========================= */

func TestBulkAllot_OverloadRejected(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	repo.addSubject(28, &fac, nil) // beban berjalan 28, max 30
	extra := repo.addSubject(4, nil, nil)

	svc := NewWorkload(repo)
	_, err := svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: extra, FacultyID: fac, Role: RolePrimary},
	}, false)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindOverload))

	ae, ok := apierror.As(err)
	require.True(t, ok)
	assert.True(t, ae.SoftReject())
	details, ok := ae.Details.([]OverloadDetail)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, fac, details[0].FacultyID)
	assert.Equal(t, 32.0, details[0].Projected)
	assert.Equal(t, 2.0, details[0].ExceedsBy)

	// Ditolak utuh: link lama tidak tersentuh.
	assert.Nil(t, repo.subjects[extra].primary)
}

func TestBulkAllot_WithinCapCommitted(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	repo.addSubject(28, &fac, nil) // beban berjalan 28, max 30
	extra := repo.addSubject(1, nil, nil)

	svc := NewWorkload(repo)
	res, err := svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: extra, FacultyID: fac, Role: RolePrimary},
	}, false)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Empty(t, res.Overloaded)

	require.Len(t, res.WorkloadImpacts, 1)
	assert.Equal(t, 29.0, res.WorkloadImpacts[0].TotalCredits)
	assert.Equal(t, LoadBalanced, res.WorkloadImpacts[0].Status) // 29 ≥ 24

	require.NotNil(t, repo.subjects[extra].primary)
	assert.Equal(t, fac, *repo.subjects[extra].primary)
}

func TestBulkAllot_ForceOverridesOverload(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	repo.addSubject(28, &fac, nil)
	extra := repo.addSubject(4, nil, nil)

	svc := NewWorkload(repo)
	res, err := svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: extra, FacultyID: fac, Role: RolePrimary},
	}, true)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.True(t, res.Forced)
	require.Len(t, res.Overloaded, 1)
	assert.Equal(t, 2.0, res.Overloaded[0].ExceedsBy)
}

func TestBulkAllot_DuplicateClaimHardConflict(t *testing.T) {
	repo := newFakeWorkloadRepo()
	f1 := repo.addFaculty()
	f2 := repo.addFaculty()
	subj := repo.addSubject(3, nil, nil)

	svc := NewWorkload(repo)
	_, err := svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: subj, FacultyID: f1, Role: RolePrimary},
		{SubjectID: subj, FacultyID: f2, Role: RolePrimary},
	}, false)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	// force tidak menembus klaim ganda: ini hard reject.
	_, err = svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: subj, FacultyID: f1, Role: RolePrimary},
		{SubjectID: subj, FacultyID: f2, Role: RolePrimary},
	}, true)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	// primary + co utk subject yang sama bukan klaim ganda.
	res, err := svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: subj, FacultyID: f1, Role: RolePrimary},
		{SubjectID: subj, FacultyID: f2, Role: RoleCo},
	}, false)
	require.NoError(t, err)
	assert.True(t, res.Committed)
}

func TestBulkAllot_FullReplacementPerFaculty(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	old := repo.addSubject(5, &fac, nil)
	neu := repo.addSubject(6, nil, nil)

	svc := NewWorkload(repo)
	res, err := svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: neu, FacultyID: fac, Role: RolePrimary},
	}, false)
	require.NoError(t, err)
	assert.True(t, res.Committed)

	// Link lama dibersihkan, bukan ditambah.
	assert.Nil(t, repo.subjects[old].primary)
	require.NotNil(t, repo.subjects[neu].primary)
	assert.Equal(t, fac, *repo.subjects[neu].primary)
}

func TestBulkAllot_CommitAllOrNothing(t *testing.T) {
	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	old := repo.addSubject(5, &fac, nil)
	neu := repo.addSubject(6, nil, nil)
	repo.txFailOnSet = true

	svc := NewWorkload(repo)
	_, err := svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: neu, FacultyID: fac, Role: RolePrimary},
	}, false)
	require.Error(t, err)

	// Rollback: clear di awal transaksi tidak boleh bocor.
	require.NotNil(t, repo.subjects[old].primary)
	assert.Equal(t, fac, *repo.subjects[old].primary)
	assert.Nil(t, repo.subjects[neu].primary)
}

func TestBulkAllot_Validation(t *testing.T) {
	svc := NewWorkload(newFakeWorkloadRepo())

	_, err := svc.BulkAllot(context.Background(), nil, false)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	repo := newFakeWorkloadRepo()
	fac := repo.addFaculty()
	subj := repo.addSubject(3, nil, nil)
	svc = NewWorkload(repo)
	_, err = svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: subj, FacultyID: fac, Role: "lead"},
	}, false)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	_, err = svc.BulkAllot(context.Background(), []Assignment{
		{SubjectID: subj, FacultyID: uuid.New(), Role: RolePrimary},
	}, false)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
