// file: internals/features/school/time_slots/service/gorm_repo.go
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "kampusku_backend/internals/features/school/time_slots/model"
)

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo { return &GormRepo{DB: db} }

var _ Repo = (*GormRepo)(nil)

func (r *GormRepo) ListActive(ctx context.Context) ([]m.TimeSlotModel, error) {
	var rows []m.TimeSlotModel
	err := r.DB.WithContext(ctx).
		Where("time_slot_is_active = TRUE").
		Order("time_slot_sort_order ASC, time_slot_start_min ASC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepo) FindByID(ctx context.Context, id uuid.UUID) (*m.TimeSlotModel, error) {
	var row m.TimeSlotModel
	err := r.DB.WithContext(ctx).
		Where("time_slot_id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) UsageCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Table("timetable_entries").
		Where("timetable_entry_time_slot_id = ?", id).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) ActiveUsageCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Table("timetable_entries").
		Where("timetable_entry_time_slot_id = ? AND timetable_entry_is_active = TRUE AND timetable_entry_deleted_at IS NULL", id).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) Insert(ctx context.Context, slot *m.TimeSlotModel) error {
	return r.DB.WithContext(ctx).Create(slot).Error
}

func (r *GormRepo) Save(ctx context.Context, slot *m.TimeSlotModel) error {
	return r.DB.WithContext(ctx).Save(slot).Error
}

func (r *GormRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Model(&m.TimeSlotModel{}).
		Where("time_slot_id = ?", id).
		Update("time_slot_is_active", false).Error
}

func (r *GormRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Unscoped().
		Where("time_slot_id = ?", id).
		Delete(&m.TimeSlotModel{}).Error
}

// InTx: serializable — exclusion constraint + unique index aktif jadi
// backstop kalau konflik serialisasi tidak terdeteksi duluan.
func (r *GormRepo) InTx(ctx context.Context, fn func(txRepo Repo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
