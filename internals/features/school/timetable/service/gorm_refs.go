// file: internals/features/school/timetable/service/gorm_refs.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRefs memeriksa entitas roster lewat tabelnya langsung; model roster
// hidup di fitur academics.
type GormRefs struct {
	DB *gorm.DB
}

func NewGormRefs(db *gorm.DB) *GormRefs { return &GormRefs{DB: db} }

var _ RefResolver = (*GormRefs)(nil)

func (r *GormRefs) SlotActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Table("time_slots").
		Where("time_slot_id = ? AND time_slot_is_active = TRUE AND time_slot_deleted_at IS NULL", id).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRefs) BatchActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Table("batches").
		Where("batch_id = ? AND batch_is_active = TRUE AND batch_deleted_at IS NULL", id).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRefs) FacultyActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Table("faculties").
		Where("faculty_id = ? AND faculty_is_active = TRUE AND faculty_deleted_at IS NULL", id).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRefs) SubjectInBatch(ctx context.Context, subjectID, batchID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Table("subjects").
		Where("subject_id = ? AND subject_batch_id = ? AND subject_is_active = TRUE AND subject_deleted_at IS NULL", subjectID, batchID).
		Count(&n).Error
	return n > 0, err
}
