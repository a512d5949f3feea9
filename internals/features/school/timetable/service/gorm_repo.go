// file: internals/features/school/timetable/service/gorm_repo.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "kampusku_backend/internals/features/school/timetable/model"
)

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo { return &GormRepo{DB: db} }

var _ EntryRepo = (*GormRepo)(nil)

func (r *GormRepo) activeScope(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&m.TimetableEntryModel{}).
		Preload("TimeSlot").
		Where("timetable_entry_is_active = TRUE")
}

func (r *GormRepo) FindByID(ctx context.Context, id uuid.UUID) (*m.TimetableEntryModel, error) {
	var row m.TimetableEntryModel
	err := r.DB.WithContext(ctx).
		Preload("TimeSlot").
		Where("timetable_entry_id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) ListActiveBySlotDOW(ctx context.Context, slotID uuid.UUID, dow int) ([]m.TimetableEntryModel, error) {
	var rows []m.TimetableEntryModel
	err := r.activeScope(ctx).
		Where("timetable_entry_time_slot_id = ? AND timetable_entry_day_of_week = ?", slotID, dow).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepo) ListActiveBySlotDate(ctx context.Context, slotID uuid.UUID, date time.Time) ([]m.TimetableEntryModel, error) {
	var rows []m.TimetableEntryModel
	err := r.activeScope(ctx).
		Where("timetable_entry_time_slot_id = ? AND timetable_entry_date = ?", slotID, dateOnly(date)).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepo) ListActiveDateRowsBySlotDOW(ctx context.Context, slotID uuid.UUID, dow int) ([]m.TimetableEntryModel, error) {
	var rows []m.TimetableEntryModel
	err := r.activeScope(ctx).
		Where("timetable_entry_time_slot_id = ? AND timetable_entry_date IS NOT NULL AND EXTRACT(ISODOW FROM timetable_entry_date) = ?", slotID, dow).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepo) ListActiveByBatchDate(ctx context.Context, batchID uuid.UUID, date time.Time) ([]m.TimetableEntryModel, error) {
	var rows []m.TimetableEntryModel
	err := r.activeScope(ctx).
		Where("timetable_entry_batch_id = ? AND timetable_entry_date = ?", batchID, dateOnly(date)).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepo) ListActiveByBatchDOW(ctx context.Context, batchID uuid.UUID, dow int) ([]m.TimetableEntryModel, error) {
	var rows []m.TimetableEntryModel
	err := r.activeScope(ctx).
		Where("timetable_entry_batch_id = ? AND timetable_entry_day_of_week = ?", batchID, dow).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepo) FindActiveException(ctx context.Context, batchID, slotID uuid.UUID, date time.Time) (*m.TimetableEntryModel, error) {
	var row m.TimetableEntryModel
	err := r.activeScope(ctx).
		Where("timetable_entry_batch_id = ? AND timetable_entry_time_slot_id = ? AND timetable_entry_date = ?",
			batchID, slotID, dateOnly(date)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) Insert(ctx context.Context, e *m.TimetableEntryModel) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *GormRepo) Save(ctx context.Context, e *m.TimetableEntryModel) error {
	return r.DB.WithContext(ctx).Save(e).Error
}

func (r *GormRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Model(&m.TimetableEntryModel{}).
		Where("timetable_entry_id = ?", id).
		Update("timetable_entry_is_active", false).Error
}

func (r *GormRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Unscoped().
		Where("timetable_entry_id = ?", id).
		Delete(&m.TimetableEntryModel{}).Error
}

func (r *GormRepo) HasAttendance(ctx context.Context, batchID uuid.UUID, subjectID *uuid.UUID, date *time.Time) (bool, error) {
	if subjectID == nil {
		return false, nil
	}
	q := r.DB.WithContext(ctx).
		Table("attendance_sessions").
		Where("attendance_session_batch_id = ? AND attendance_session_subject_id = ?", batchID, *subjectID)
	if date != nil {
		q = q.Where("attendance_session_date = ?", dateOnly(*date))
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// InTx: serializable — konflik serialisasi dari Postgres muncul sebagai
// error dan dipetakan caller; ini yang menutup race check-then-write.
func (r *GormRepo) InTx(ctx context.Context, fn func(txRepo EntryRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
