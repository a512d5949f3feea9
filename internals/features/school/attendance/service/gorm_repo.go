// file: internals/features/school/attendance/service/gorm_repo.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "kampusku_backend/internals/features/school/attendance/model"
)

/* =========================
   SessionRepo (GORM)
   ========================= */

type GormSessionRepo struct {
	DB *gorm.DB
}

func NewGormSessionRepo(db *gorm.DB) *GormSessionRepo { return &GormSessionRepo{DB: db} }

var _ SessionRepo = (*GormSessionRepo)(nil)

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetOrCreate: INSERT … ON CONFLICT DO NOTHING + re-read. Unique index
// (batch, subject, date) menjamin konkurensi tidak menghasilkan dua
// baris; kedua pemanggil berakhir membaca baris yang sama.
func (r *GormSessionRepo) GetOrCreate(ctx context.Context, batchID, subjectID uuid.UUID, date time.Time) (*m.AttendanceSessionModel, error) {
	sess := &m.AttendanceSessionModel{
		AttendanceSessionBatchID:   batchID,
		AttendanceSessionSubjectID: subjectID,
		AttendanceSessionDate:      dateOnly(date),
	}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_session_batch_id"},
				{Name: "attendance_session_subject_id"},
				{Name: "attendance_session_date"},
			},
			DoNothing: true,
		}).
		Create(sess).Error
	if err != nil {
		return nil, err
	}

	var row m.AttendanceSessionModel
	err = r.DB.WithContext(ctx).
		Where("attendance_session_batch_id = ? AND attendance_session_subject_id = ? AND attendance_session_date = ?",
			batchID, subjectID, dateOnly(date)).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*m.AttendanceSessionModel, error) {
	var row m.AttendanceSessionModel
	err := r.DB.WithContext(ctx).
		Where("attendance_session_id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormSessionRepo) Save(ctx context.Context, s *m.AttendanceSessionModel) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

/* =========================
   RecordRepo (GORM)
   ========================= */

type GormRecordRepo struct {
	DB *gorm.DB
}

func NewGormRecordRepo(db *gorm.DB) *GormRecordRepo { return &GormRecordRepo{DB: db} }

var _ RecordRepo = (*GormRecordRepo)(nil)

// Upsert pada (session, student): mark ulang menimpa status + stempel.
func (r *GormRecordRepo) Upsert(ctx context.Context, rec *m.AttendanceRecordModel) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_session_id"},
				{Name: "attendance_record_student_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_status",
				"attendance_record_marked_at",
				"attendance_record_last_modified_by",
			}),
		}).
		Create(rec).Error
}

func (r *GormRecordRepo) DeleteBySession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("attendance_record_session_id = ?", sessionID).
		Delete(&m.AttendanceRecordModel{})
	return res.RowsAffected, res.Error
}

func (r *GormRecordRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]m.AttendanceRecordModel, error) {
	var rows []m.AttendanceRecordModel
	err := r.DB.WithContext(ctx).
		Where("attendance_record_session_id = ?", sessionID).
		Order("attendance_record_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRecordRepo) ListByStudentSubject(ctx context.Context, studentID, subjectID uuid.UUID) ([]m.AttendanceRecordModel, error) {
	var rows []m.AttendanceRecordModel
	err := r.DB.WithContext(ctx).
		Joins("JOIN attendance_sessions s ON s.attendance_session_id = attendance_records.attendance_record_session_id").
		Where("attendance_records.attendance_record_student_id = ? AND s.attendance_session_subject_id = ? AND s.attendance_session_deleted_at IS NULL",
			studentID, subjectID).
		Order("s.attendance_session_date ASC").
		Find(&rows).Error
	return rows, err
}

/* =========================
   RosterResolver (GORM)
   ========================= */

type GormRoster struct {
	DB *gorm.DB
}

func NewGormRoster(db *gorm.DB) *GormRoster { return &GormRoster{DB: db} }

var _ RosterResolver = (*GormRoster)(nil)

func (r *GormRoster) StudentActiveInBatch(ctx context.Context, studentID, batchID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Table("students").
		Where("student_id = ? AND student_batch_id = ? AND student_is_active = TRUE AND student_deleted_at IS NULL",
			studentID, batchID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRoster) SubjectBatch(ctx context.Context, subjectID uuid.UUID) (uuid.UUID, bool, error) {
	var row struct {
		SubjectBatchID uuid.UUID `gorm:"column:subject_batch_id"`
	}
	err := r.DB.WithContext(ctx).Table("subjects").
		Select("subject_batch_id").
		Where("subject_id = ? AND subject_is_active = TRUE AND subject_deleted_at IS NULL", subjectID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return row.SubjectBatchID, true, nil
}
