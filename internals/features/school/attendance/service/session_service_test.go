// file: internals/features/school/attendance/service/session_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "kampusku_backend/internals/features/school/attendance/model"
	ttModel "kampusku_backend/internals/features/school/timetable/model"
	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   Fakes in-memory
   ========================= */

type fakeSessionRepo struct {
	byKey map[string]*m.AttendanceSessionModel
	byID  map[uuid.UUID]*m.AttendanceSessionModel
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		byKey: map[string]*m.AttendanceSessionModel{},
		byID:  map[uuid.UUID]*m.AttendanceSessionModel{},
	}
}

func sessKey(batchID, subjectID uuid.UUID, date time.Time) string {
	return batchID.String() + "|" + subjectID.String() + "|" + date.Format("2006-01-02")
}

func (f *fakeSessionRepo) GetOrCreate(_ context.Context, batchID, subjectID uuid.UUID, date time.Time) (*m.AttendanceSessionModel, error) {
	key := sessKey(batchID, subjectID, date)
	if sess, ok := f.byKey[key]; ok {
		cp := *sess
		return &cp, nil
	}
	sess := &m.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionBatchID:   batchID,
		AttendanceSessionSubjectID: subjectID,
		AttendanceSessionDate:      date,
	}
	f.byKey[key] = sess
	f.byID[sess.AttendanceSessionID] = sess
	cp := *sess
	return &cp, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*m.AttendanceSessionModel, error) {
	if sess, ok := f.byID[id]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, s *m.AttendanceSessionModel) error {
	cp := *s
	f.byID[s.AttendanceSessionID] = &cp
	f.byKey[sessKey(s.AttendanceSessionBatchID, s.AttendanceSessionSubjectID, s.AttendanceSessionDate)] = &cp
	return nil
}

type fakeRecordRepo struct {
	records map[string]*m.AttendanceRecordModel // session|student
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[string]*m.AttendanceRecordModel{}}
}

func (f *fakeRecordRepo) Upsert(_ context.Context, r *m.AttendanceRecordModel) error {
	key := r.AttendanceRecordSessionID.String() + "|" + r.AttendanceRecordStudentID.String()
	if existing, ok := f.records[key]; ok {
		existing.AttendanceRecordStatus = r.AttendanceRecordStatus
		existing.AttendanceRecordMarkedAt = r.AttendanceRecordMarkedAt
		existing.AttendanceRecordLastModifiedBy = r.AttendanceRecordLastModifiedBy
		*r = *existing
		return nil
	}
	if r.AttendanceRecordID == uuid.Nil {
		r.AttendanceRecordID = uuid.New()
	}
	cp := *r
	f.records[key] = &cp
	return nil
}

func (f *fakeRecordRepo) DeleteBySession(_ context.Context, sessionID uuid.UUID) (int64, error) {
	var n int64
	for key, r := range f.records {
		if r.AttendanceRecordSessionID == sessionID {
			delete(f.records, key)
			n++
		}
	}
	return n, nil
}

func (f *fakeRecordRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]m.AttendanceRecordModel, error) {
	var out []m.AttendanceRecordModel
	for _, r := range f.records {
		if r.AttendanceRecordSessionID == sessionID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByStudentSubject(_ context.Context, studentID, _ uuid.UUID) ([]m.AttendanceRecordModel, error) {
	// subject-filter diserahkan ke caller test: satu subject per fixture
	var out []m.AttendanceRecordModel
	for _, r := range f.records {
		if r.AttendanceRecordStudentID == studentID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeRoster struct {
	subjectBatch    map[uuid.UUID]uuid.UUID
	inactiveStudent map[uuid.UUID]bool
}

func newFakeRoster() *fakeRoster {
	return &fakeRoster{
		subjectBatch:    map[uuid.UUID]uuid.UUID{},
		inactiveStudent: map[uuid.UUID]bool{},
	}
}

func (f *fakeRoster) StudentActiveInBatch(_ context.Context, studentID, _ uuid.UUID) (bool, error) {
	return !f.inactiveStudent[studentID], nil
}

func (f *fakeRoster) SubjectBatch(_ context.Context, subjectID uuid.UUID) (uuid.UUID, bool, error) {
	batchID, ok := f.subjectBatch[subjectID]
	return batchID, ok, nil
}

type fakeSchedule struct {
	// days: tanggal YYYY-MM-DD → entries
	days map[string][]ttModel.TimetableEntryModel
}

func (f *fakeSchedule) ResolveDay(_ context.Context, _ uuid.UUID, date time.Time) ([]ttModel.TimetableEntryModel, error) {
	return f.days[date.Format("2006-01-02")], nil
}

type fixture struct {
	sessions *fakeSessionRepo
	records  *fakeRecordRepo
	roster   *fakeRoster
	schedule *fakeSchedule
	svc      *SessionService
	batchID  uuid.UUID
	subject  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sessions: newFakeSessionRepo(),
		records:  newFakeRecordRepo(),
		roster:   newFakeRoster(),
		schedule: &fakeSchedule{days: map[string][]ttModel.TimetableEntryModel{}},
		batchID:  uuid.New(),
		subject:  uuid.New(),
	}
	f.roster.subjectBatch[f.subject] = f.batchID
	f.svc = NewSession(f.sessions, f.records, f.roster, f.schedule)
	return f
}

/* =========================
   Mapping status
   ========================= */

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		internal m.AttendanceStatus
		public   m.PublicStatus
	}{
		{m.StatusPresent, m.PublicPresent},
		{m.StatusLate, m.PublicPresent}, // LATE dilipat ke present
		{m.StatusAbsent, m.PublicAbsent},
		{m.StatusExcused, m.PublicMedical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.public, tc.internal.Public(), "internal %s", tc.internal)
	}
}

func TestParseInbound(t *testing.T) {
	assert.Equal(t, m.StatusPresent, m.ParseInbound("present"))
	assert.Equal(t, m.StatusAbsent, m.ParseInbound("absent"))
	assert.Equal(t, m.StatusExcused, m.ParseInbound("medical"))
	assert.Equal(t, m.StatusLate, m.ParseInbound("LATE"))
	assert.Equal(t, m.StatusLate, m.ParseInbound("late"))
	// status asing → ABSENT
	assert.Equal(t, m.StatusAbsent, m.ParseInbound("dunno"))
	assert.Equal(t, m.StatusAbsent, m.ParseInbound(""))
}

/* =========================
   GetOrCreate idempoten
   ========================= */

func TestGetOrCreateSession_Idempotent(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	first, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, f.subject, date)
	require.NoError(t, err)
	second, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, f.subject, date)
	require.NoError(t, err)

	assert.Equal(t, first.AttendanceSessionID, second.AttendanceSessionID)
	assert.Len(t, f.sessions.byKey, 1)
}

func TestGetOrCreateSession_SubjectGuards(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	// subject asing
	_, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, uuid.New(), date)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	// subject milik batch lain
	otherSubject := uuid.New()
	f.roster.subjectBatch[otherSubject] = uuid.New()
	_, err = f.svc.GetOrCreateSession(context.Background(), f.batchID, otherSubject, date)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

/* =========================
   Mark: round-trip + guards
   ========================= */

func TestMark_RoundTrip(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	sess, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, f.subject, date)
	require.NoError(t, err)

	student := uuid.New()
	marker := uuid.New()

	rec, err := f.svc.Mark(context.Background(), sess.AttendanceSessionID, student, "medical", marker)
	require.NoError(t, err)
	assert.Equal(t, m.StatusExcused, rec.AttendanceRecordStatus)
	assert.Equal(t, m.PublicMedical, rec.AttendanceRecordStatus.Public())
	assert.Equal(t, marker, rec.AttendanceRecordLastModifiedBy)
	assert.False(t, rec.AttendanceRecordMarkedAt.IsZero())

	// Mark ulang student yang sama → upsert, bukan baris kedua.
	rec2, err := f.svc.Mark(context.Background(), sess.AttendanceSessionID, student, "present", marker)
	require.NoError(t, err)
	assert.Equal(t, rec.AttendanceRecordID, rec2.AttendanceRecordID)
	assert.Equal(t, m.StatusPresent, rec2.AttendanceRecordStatus)
	assert.Len(t, f.records.records, 1)
}

func TestMark_Guards(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	sess, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, f.subject, date)
	require.NoError(t, err)

	// sesi tidak ada
	_, err = f.svc.Mark(context.Background(), uuid.New(), uuid.New(), "present", uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	// student nonaktif → StateError
	dead := uuid.New()
	f.roster.inactiveStudent[dead] = true
	_, err = f.svc.Mark(context.Background(), sess.AttendanceSessionID, dead, "present", uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindState))
}

/* =========================
   Scenario E: reset
   ========================= */

func TestReset_DeletesRecordsAndKeepsSession(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	sess, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, f.subject, date)
	require.NoError(t, err)

	marker := uuid.New()
	for i := 0; i < 25; i++ {
		_, err := f.svc.Mark(context.Background(), sess.AttendanceSessionID, uuid.New(), "present", marker)
		require.NoError(t, err)
	}
	sess.AttendanceSessionIsCompleted = true
	require.NoError(t, f.sessions.Save(context.Background(), sess))

	deleted, err := f.svc.Reset(context.Background(), sess.AttendanceSessionID, marker)
	require.NoError(t, err)
	assert.Equal(t, int64(25), deleted)

	after, _ := f.sessions.FindByID(context.Background(), sess.AttendanceSessionID)
	require.NotNil(t, after)
	assert.False(t, after.AttendanceSessionIsCompleted)
	require.NotNil(t, after.AttendanceSessionNotes)
	assert.True(t, strings.Contains(*after.AttendanceSessionNotes, "[reset] 25 record"))

	// getOrCreate berikutnya → sesi yang sama, bukan baru.
	again, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, f.subject, date)
	require.NoError(t, err)
	assert.Equal(t, sess.AttendanceSessionID, again.AttendanceSessionID)
	assert.Empty(t, f.records.records)
}

/* =========================
   Occurrences
   ========================= */

func TestDeriveScheduledOccurrences(t *testing.T) {
	f := newFixture(t)
	weekStart := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	mkEntry := func(subject uuid.UUID, cancelled bool) ttModel.TimetableEntryModel {
		return ttModel.TimetableEntryModel{
			TimetableEntryID:          uuid.New(),
			TimetableEntryBatchID:     f.batchID,
			TimetableEntrySubjectID:   &subject,
			TimetableEntryTimeSlotID:  uuid.New(),
			TimetableEntryIsCancelled: cancelled,
			TimetableEntryType:        ttModel.EntryRegular,
			TimetableEntryIsActive:    true,
		}
	}
	otherSubject := uuid.New()

	f.schedule.days["2026-09-07"] = []ttModel.TimetableEntryModel{mkEntry(f.subject, false)}
	f.schedule.days["2026-09-09"] = []ttModel.TimetableEntryModel{mkEntry(otherSubject, false)}
	f.schedule.days["2026-09-10"] = []ttModel.TimetableEntryModel{mkEntry(f.subject, true)} // cancelled

	dates, err := f.svc.DeriveScheduledOccurrences(context.Background(), f.subject, weekStart)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "2026-09-07", dates[0].Format("2006-01-02"))
}

/* =========================
   Persentase
   ========================= */

func TestSummary_Percentage(t *testing.T) {
	f := newFixture(t)
	student := uuid.New()
	marker := uuid.New()

	// 4 sesi termark: present, LATE (→present), medical, absent → 75%.
	statuses := []string{"present", "LATE", "medical", "absent"}
	for i, st := range statuses {
		date := time.Date(2026, time.September, 7+i, 0, 0, 0, 0, time.UTC)
		sess, err := f.svc.GetOrCreateSession(context.Background(), f.batchID, f.subject, date)
		require.NoError(t, err)
		_, err = f.svc.Mark(context.Background(), sess.AttendanceSessionID, student, st, marker)
		require.NoError(t, err)
	}

	sum, err := f.svc.Summary(context.Background(), student, f.subject)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.MarkedSessions)
	assert.Equal(t, 75, sum.Percentage)
	assert.Equal(t, 2, sum.Breakdown[m.PublicPresent])
	assert.Equal(t, 1, sum.Breakdown[m.PublicMedical])
	assert.Equal(t, 1, sum.Breakdown[m.PublicAbsent])

	// Tanpa record sama sekali → 0, tanpa pembagian nol.
	empty, err := f.svc.Summary(context.Background(), uuid.New(), f.subject)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.MarkedSessions)
	assert.Equal(t, 0, empty.Percentage)
}
