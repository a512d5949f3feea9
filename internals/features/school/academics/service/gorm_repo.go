// file: internals/features/school/academics/service/gorm_repo.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	acModel "kampusku_backend/internals/features/school/academics/model"
)

type GormImportRepo struct {
	DB *gorm.DB
}

func NewGormImportRepo(db *gorm.DB) *GormImportRepo { return &GormImportRepo{DB: db} }

var _ ImportRepo = (*GormImportRepo)(nil)

func (r *GormImportRepo) BatchActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&acModel.BatchModel{}).
		Where("batch_id = ? AND batch_is_active = TRUE", id).
		Count(&n).Error
	return n > 0, err
}

func (r *GormImportRepo) RollExists(ctx context.Context, batchID uuid.UUID, roll string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&acModel.StudentModel{}).
		Where("student_batch_id = ? AND student_roll_number = ?", batchID, roll).
		Count(&n).Error
	return n > 0, err
}

func (r *GormImportRepo) Insert(ctx context.Context, s *acModel.StudentModel) error {
	return r.DB.WithContext(ctx).Create(s).Error
}
