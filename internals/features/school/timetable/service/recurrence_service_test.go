// file: internals/features/school/timetable/service/recurrence_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "kampusku_backend/internals/features/school/timetable/model"
	"kampusku_backend/internals/helpers/apierror"
)

func newRecurrenceFixture(t *testing.T) (*fakeEntryRepo, *RecurrenceService) {
	t.Helper()
	repo := newFakeEntryRepo()
	return repo, NewRecurrence(repo, allowAllRefs{})
}

/* =========================
   Scenario C: exception menimpa recurring
   ========================= */

func TestResolveSlotForDate_ExceptionWins(t *testing.T) {
	repo, svc := newRecurrenceFixture(t)

	b1 := uuid.New()
	s1 := uuid.New()
	recurring := seedRecurring(t, svc.Writer, b1, nil, s1, 1) // tiap Senin

	// Exception cancelled utk Senin 2026-09-07.
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	cancelled := true
	res, err := svc.ApplyEdit(context.Background(), recurring.TimetableEntryID, EditPatch{
		Cancelled:      &cancelled,
		OccurrenceDate: &monday,
	}, ScopeOccurrence)
	require.NoError(t, err)
	exception := res.Entry
	require.NotNil(t, exception.TimetableEntryDate)
	assert.True(t, exception.TimetableEntryIsCancelled)

	// Tanggal itu → exception cancelled yang kembali.
	got, err := svc.ResolveSlotForDate(context.Background(), b1, s1, monday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, exception.TimetableEntryID, got.TimetableEntryID)
	assert.True(t, got.TimetableEntryIsCancelled)

	// Senin lain → baris recurring, tidak cancelled.
	nextMonday := monday.AddDate(0, 0, 7)
	got, err = svc.ResolveSlotForDate(context.Background(), b1, s1, nextMonday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, recurring.TimetableEntryID, got.TimetableEntryID)
	assert.False(t, got.TimetableEntryIsCancelled)

	// Baris recurring tidak tersentuh oleh edit occurrence.
	stored, _ := repo.FindByID(context.Background(), recurring.TimetableEntryID)
	assert.False(t, stored.TimetableEntryIsCancelled)
	assert.Nil(t, stored.TimetableEntryDate)

	// Hari tanpa jadwal → nil, bukan fabrikasi.
	tuesday := monday.AddDate(0, 0, 1)
	got, err = svc.ResolveSlotForDate(context.Background(), b1, s1, tuesday)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveDay_MergesExceptionsPerSlot(t *testing.T) {
	_, svc := newRecurrenceFixture(t)

	b1 := uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	seedRecurring(t, svc.Writer, b1, nil, s1, 1)
	recurring2 := seedRecurring(t, svc.Writer, b1, nil, s2, 1)

	// Slot kedua dapat exception di satu Senin.
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	cancelled := true
	res, err := svc.ApplyEdit(context.Background(), recurring2.TimetableEntryID, EditPatch{
		Cancelled:      &cancelled,
		OccurrenceDate: &monday,
	}, ScopeOccurrence)
	require.NoError(t, err)

	day, err := svc.ResolveDay(context.Background(), b1, monday)
	require.NoError(t, err)
	require.Len(t, day, 2)

	bySlot := map[uuid.UUID]m.TimetableEntryModel{}
	for _, e := range day {
		bySlot[e.TimetableEntryTimeSlotID] = e
	}
	assert.False(t, bySlot[s1].TimetableEntryIsCancelled)
	assert.Equal(t, res.Entry.TimetableEntryID, bySlot[s2].TimetableEntryID)
	assert.True(t, bySlot[s2].TimetableEntryIsCancelled)
}

/* =========================
   ApplyEdit scope
   ========================= */

func TestApplyEdit_FutureMutatesRecurringRow(t *testing.T) {
	repo, svc := newRecurrenceFixture(t)

	b1 := uuid.New()
	s1 := uuid.New()
	f1 := uuid.New()
	recurring := seedRecurring(t, svc.Writer, b1, nil, s1, 1)

	res, err := svc.ApplyEdit(context.Background(), recurring.TimetableEntryID, EditPatch{
		FacultyID: &f1,
	}, ScopeFuture)
	require.NoError(t, err)
	assert.Equal(t, recurring.TimetableEntryID, res.Entry.TimetableEntryID)
	require.NotNil(t, res.Entry.TimetableEntryFacultyID)
	assert.Equal(t, f1, *res.Entry.TimetableEntryFacultyID)

	// Tetap satu baris: tidak ada ekspansi per tanggal.
	assert.Len(t, repo.entries, 1)
}

func TestApplyEdit_OccurrenceRefreshesExistingException(t *testing.T) {
	repo, svc := newRecurrenceFixture(t)

	b1 := uuid.New()
	s1 := uuid.New()
	recurring := seedRecurring(t, svc.Writer, b1, nil, s1, 1)

	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	note1 := "pindah ruang"
	first, err := svc.ApplyEdit(context.Background(), recurring.TimetableEntryID, EditPatch{
		Notes:          &note1,
		OccurrenceDate: &monday,
	}, ScopeOccurrence)
	require.NoError(t, err)

	// Edit kedua di tanggal sama → refresh baris exception yang ada,
	// bukan menambah baris baru.
	note2 := "pindah ruang lagi"
	second, err := svc.ApplyEdit(context.Background(), recurring.TimetableEntryID, EditPatch{
		Notes:          &note2,
		OccurrenceDate: &monday,
	}, ScopeOccurrence)
	require.NoError(t, err)
	assert.Equal(t, first.Entry.TimetableEntryID, second.Entry.TimetableEntryID)
	assert.Len(t, repo.entries, 2) // recurring + satu exception
}

func TestApplyEdit_Validation(t *testing.T) {
	_, svc := newRecurrenceFixture(t)

	b1 := uuid.New()
	s1 := uuid.New()
	recurring := seedRecurring(t, svc.Writer, b1, nil, s1, 1)

	// scope asing
	_, err := svc.ApplyEdit(context.Background(), recurring.TimetableEntryID, EditPatch{}, EditScope("weekly"))
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	// occurrence tanpa tanggal
	_, err = svc.ApplyEdit(context.Background(), recurring.TimetableEntryID, EditPatch{}, ScopeOccurrence)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	// occurrence_date bukan hari recurring-nya (2026-09-08 = Selasa)
	tuesday := time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC)
	_, err = svc.ApplyEdit(context.Background(), recurring.TimetableEntryID, EditPatch{
		OccurrenceDate: &tuesday,
	}, ScopeOccurrence)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	// entry tidak ada
	_, err = svc.ApplyEdit(context.Background(), uuid.New(), EditPatch{}, ScopeFuture)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestResolveWeek_SevenDays(t *testing.T) {
	_, svc := newRecurrenceFixture(t)

	b1 := uuid.New()
	s1 := uuid.New()
	seedRecurring(t, svc.Writer, b1, nil, s1, 1) // Senin
	seedRecurring(t, svc.Writer, b1, nil, s1, 4) // Kamis

	weekStart := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC) // Senin
	week, err := svc.ResolveWeek(context.Background(), b1, weekStart)
	require.NoError(t, err)
	require.Len(t, week, 7)

	assert.Len(t, week["2026-09-07"], 1) // Senin
	assert.Len(t, week["2026-09-10"], 1) // Kamis
	assert.Empty(t, week["2026-09-08"])
	assert.Empty(t, week["2026-09-13"])
}
