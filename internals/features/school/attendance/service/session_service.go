// file: internals/features/school/attendance/service/session_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/attendance/model"
	ttModel "kampusku_backend/internals/features/school/timetable/model"
	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   Dependencies (interface)
   ========================= */

type SessionRepo interface {
	// GetOrCreate: upsert atomik pada kunci (batch, subject, date).
	// Panggilan konkuren dengan kunci sama wajib kembali ke baris yang
	// sama, tidak pernah dua.
	GetOrCreate(ctx context.Context, batchID, subjectID uuid.UUID, date time.Time) (*m.AttendanceSessionModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*m.AttendanceSessionModel, error)
	Save(ctx context.Context, s *m.AttendanceSessionModel) error
}

type RecordRepo interface {
	Upsert(ctx context.Context, r *m.AttendanceRecordModel) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) (int64, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]m.AttendanceRecordModel, error)
	// ListByStudentSubject: record si student lintas sesi utk satu subject.
	ListByStudentSubject(ctx context.Context, studentID, subjectID uuid.UUID) ([]m.AttendanceRecordModel, error)
}

type RosterResolver interface {
	// StudentActiveInBatch: student ada, aktif, dan anggota batch.
	StudentActiveInBatch(ctx context.Context, studentID, batchID uuid.UUID) (bool, error)
	// SubjectBatch: batch pemilik subject; ok=false kalau subject tidak
	// ada / nonaktif.
	SubjectBatch(ctx context.Context, subjectID uuid.UUID) (uuid.UUID, bool, error)
}

// ScheduleResolver: jadwal ter-resolve per hari (exception sudah menang
// atas recurring). Diimplementasikan timetable.RecurrenceService.
type ScheduleResolver interface {
	ResolveDay(ctx context.Context, batchID uuid.UUID, date time.Time) ([]ttModel.TimetableEntryModel, error)
}

/* =========================
   Service
   ========================= */

type SessionService struct {
	Sessions SessionRepo
	Records  RecordRepo
	Roster   RosterResolver
	Schedule ScheduleResolver

	// now dapat di-stub di test
	now func() time.Time
}

func NewSession(sessions SessionRepo, records RecordRepo, roster RosterResolver, schedule ScheduleResolver) *SessionService {
	return &SessionService{
		Sessions: sessions,
		Records:  records,
		Roster:   roster,
		Schedule: schedule,
		now:      time.Now,
	}
}

/* =========================
   GetOrCreate
   ========================= */

func (s *SessionService) GetOrCreateSession(ctx context.Context, batchID, subjectID uuid.UUID, date time.Time) (*m.AttendanceSessionModel, error) {
	ownerBatch, ok, err := s.Roster.SubjectBatch(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("subject tidak ditemukan / nonaktif")
	}
	if ownerBatch != batchID {
		return nil, apierror.Validation("subject bukan milik batch target")
	}

	sess, err := s.Sessions.GetOrCreate(ctx, batchID, subjectID, date)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	return sess, nil
}

/* =========================
   Mark (upsert per student)
   ========================= */

func (s *SessionService) Mark(ctx context.Context, sessionID, studentID uuid.UUID, rawStatus string, markedBy uuid.UUID) (*m.AttendanceRecordModel, error) {
	sess, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}
	if sess == nil {
		return nil, apierror.NotFound("attendance session tidak ditemukan")
	}

	ok, err := s.Roster.StudentActiveInBatch(ctx, studentID, sess.AttendanceSessionBatchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.State("student nonaktif atau bukan anggota batch sesi ini")
	}

	rec := &m.AttendanceRecordModel{
		AttendanceRecordSessionID:      sessionID,
		AttendanceRecordStudentID:      studentID,
		AttendanceRecordStatus:         m.ParseInbound(rawStatus),
		AttendanceRecordMarkedAt:       s.now(),
		AttendanceRecordLastModifiedBy: markedBy,
	}
	if err := s.Records.Upsert(ctx, rec); err != nil {
		return nil, apierror.FromPG(err)
	}

	sess.AttendanceSessionMarkedBy = &markedBy
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, apierror.FromPG(err)
	}
	return rec, nil
}

/* =========================
   Reset
   ========================= */

// Reset menghapus semua record sesi, menurunkan is_completed, dan
// menempelkan catatan audit. Baris sesi sendiri tetap hidup — key
// getOrCreate berikutnya kembali ke sesi (kosong) yang sama.
func (s *SessionService) Reset(ctx context.Context, sessionID, by uuid.UUID) (deleted int64, err error) {
	sess, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return 0, apierror.FromPG(err)
	}
	if sess == nil {
		return 0, apierror.NotFound("attendance session tidak ditemukan")
	}

	deleted, err = s.Records.DeleteBySession(ctx, sessionID)
	if err != nil {
		return 0, apierror.FromPG(err)
	}

	sess.AttendanceSessionIsCompleted = false
	audit := fmt.Sprintf("[reset] %d record dihapus oleh %s pada %s",
		deleted, by, s.now().Format(time.RFC3339))
	if sess.AttendanceSessionNotes != nil && *sess.AttendanceSessionNotes != "" {
		audit = *sess.AttendanceSessionNotes + "\n" + audit
	}
	sess.AttendanceSessionNotes = &audit

	if err := s.Sessions.Save(ctx, sess); err != nil {
		return 0, apierror.FromPG(err)
	}
	return deleted, nil
}

/* =========================
   Derivasi jadwal → occurrence
   ========================= */

// DeriveScheduledOccurrences: tanggal dalam minggu weekStart (7 hari)
// yang memang ter-resolve ada kelas utk subject tsb. Tidak pernah
// memfabrikasi sesi utk hari tanpa jadwal; resolusi yang cancelled
// dilewati.
func (s *SessionService) DeriveScheduledOccurrences(ctx context.Context, subjectID uuid.UUID, weekStart time.Time) ([]time.Time, error) {
	batchID, ok, err := s.Roster.SubjectBatch(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("subject tidak ditemukan / nonaktif")
	}

	var out []time.Time
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		entries, err := s.Schedule.ResolveDay(ctx, batchID, day)
		if err != nil {
			return nil, err
		}
		for j := range entries {
			e := entries[j]
			if e.TimetableEntryIsCancelled || e.TimetableEntryType == ttModel.EntryCancelled {
				continue
			}
			if e.TimetableEntrySubjectID != nil && *e.TimetableEntrySubjectID == subjectID {
				out = append(out, day)
				break
			}
		}
	}
	return out, nil
}

/* =========================
   Ringkasan persentase
   ========================= */

type AttendanceSummary struct {
	StudentID      uuid.UUID               `json:"student_id"`
	SubjectID      uuid.UUID               `json:"subject_id"`
	MarkedSessions int                     `json:"marked_sessions"`
	Percentage     int                     `json:"percentage"`
	Breakdown      map[m.PublicStatus]int  `json:"breakdown"`
	Records        []m.AttendanceRecordModel `json:"-"`
}

// Summary: persen = round(100 × (present+medical) / sesi yang termark).
// Sesi terjadwal yang belum ada record TIDAK masuk penyebut.
func (s *SessionService) Summary(ctx context.Context, studentID, subjectID uuid.UUID) (*AttendanceSummary, error) {
	records, err := s.Records.ListByStudentSubject(ctx, studentID, subjectID)
	if err != nil {
		return nil, apierror.FromPG(err)
	}

	sum := &AttendanceSummary{
		StudentID: studentID,
		SubjectID: subjectID,
		Breakdown: map[m.PublicStatus]int{},
		Records:   records,
	}
	if len(records) == 0 {
		return sum, nil
	}

	counted := 0
	for i := range records {
		pub := records[i].AttendanceRecordStatus.Public()
		sum.Breakdown[pub]++
		if pub == m.PublicPresent || pub == m.PublicMedical {
			counted++
		}
	}
	sum.MarkedSessions = len(records)
	sum.Percentage = int(math.Round(100 * float64(counted) / float64(len(records))))
	return sum, nil
}
