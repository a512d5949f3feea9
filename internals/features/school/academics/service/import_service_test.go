// file: internals/features/school/academics/service/import_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	acModel "kampusku_backend/internals/features/school/academics/model"
	"kampusku_backend/internals/helpers/apierror"
)

type fakeImportRepo struct {
	batches  map[uuid.UUID]bool
	rolls    map[string]bool // batch|roll
	inserted []*acModel.StudentModel
	failRoll string
}

func newFakeImportRepo() *fakeImportRepo {
	return &fakeImportRepo{batches: map[uuid.UUID]bool{}, rolls: map[string]bool{}}
}

func (f *fakeImportRepo) BatchActive(_ context.Context, id uuid.UUID) (bool, error) {
	return f.batches[id], nil
}

func (f *fakeImportRepo) RollExists(_ context.Context, batchID uuid.UUID, roll string) (bool, error) {
	return f.rolls[batchID.String()+"|"+roll], nil
}

func (f *fakeImportRepo) Insert(_ context.Context, s *acModel.StudentModel) error {
	if s.StudentRollNumber == f.failRoll {
		return assert.AnError
	}
	s.StudentID = uuid.New()
	f.rolls[s.StudentBatchID.String()+"|"+s.StudentRollNumber] = true
	f.inserted = append(f.inserted, s)
	return nil
}

func TestBulkImport_PerItemOutcomes(t *testing.T) {
	repo := newFakeImportRepo()
	batch := uuid.New()
	repo.batches[batch] = true
	repo.rolls[batch.String()+"|2026001"] = true // sudah terdaftar
	repo.failRoll = "2026004"

	svc := NewStudentImporter(repo)
	out, err := svc.BulkImport(context.Background(), batch, []ImportItem{
		{Name: "Andi", RollNumber: "2026001"},  // skipped: sudah ada di DB
		{Name: "Budi", RollNumber: "2026002"},  // created
		{Name: "Citra", RollNumber: "2026002"}, // skipped: ganda di payload
		{Name: "", RollNumber: "2026003"},      // failed: nama kosong
		{Name: "Dewi", RollNumber: ""},         // failed: roll kosong
		{Name: "Eka", RollNumber: "2026004"},   // failed: insert error
		{Name: "Fajar", RollNumber: "2026005"}, // created, tetap jalan setelah failure
	})
	require.NoError(t, err)
	require.Len(t, out, 7)

	assert.Equal(t, OutcomeSkipped, out[0].Status)
	assert.Equal(t, OutcomeCreated, out[1].Status)
	require.NotNil(t, out[1].StudentID)
	assert.Equal(t, OutcomeSkipped, out[2].Status)
	assert.Equal(t, OutcomeFailed, out[3].Status)
	assert.NotEmpty(t, out[3].Reason)
	assert.Equal(t, OutcomeFailed, out[4].Status)
	assert.Equal(t, OutcomeFailed, out[5].Status)
	assert.Equal(t, OutcomeCreated, out[6].Status)

	assert.Len(t, repo.inserted, 2)
}

func TestBulkImport_Guards(t *testing.T) {
	repo := newFakeImportRepo()
	svc := NewStudentImporter(repo)

	_, err := svc.BulkImport(context.Background(), uuid.New(), []ImportItem{{Name: "X", RollNumber: "1"}})
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	batch := uuid.New()
	repo.batches[batch] = true
	_, err = svc.BulkImport(context.Background(), batch, nil)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}
