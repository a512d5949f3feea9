// file: internals/features/school/workload/service/gorm_repo.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	acModel "kampusku_backend/internals/features/school/academics/model"
)

/* =========================
   Repo (GORM)
   ========================= */

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo { return &GormRepo{DB: db} }

var _ Repo = (*GormRepo)(nil)

func (r *GormRepo) Credits(ctx context.Context, facultyID uuid.UUID) (primary, co int, err error) {
	type row struct {
		Total *int
	}
	var p, c row
	if err := r.DB.WithContext(ctx).Model(&acModel.SubjectModel{}).
		Select("SUM(subject_credits) AS total").
		Where("subject_is_active = TRUE AND subject_primary_faculty_id = ?", facultyID).
		Take(&p).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, err
	}
	if err := r.DB.WithContext(ctx).Model(&acModel.SubjectModel{}).
		Select("SUM(subject_credits) AS total").
		Where("subject_is_active = TRUE AND subject_co_faculty_id = ?", facultyID).
		Take(&c).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, err
	}
	if p.Total != nil {
		primary = *p.Total
	}
	if c.Total != nil {
		co = *c.Total
	}
	return primary, co, nil
}

func (r *GormRepo) SubjectCredits(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]int{}, nil
	}
	type row struct {
		SubjectID      uuid.UUID `gorm:"column:subject_id"`
		SubjectCredits int       `gorm:"column:subject_credits"`
	}
	var rows []row
	err := r.DB.WithContext(ctx).Model(&acModel.SubjectModel{}).
		Select("subject_id, subject_credits").
		Where("subject_id IN ? AND subject_is_active = TRUE", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, rw := range rows {
		out[rw.SubjectID] = rw.SubjectCredits
	}
	return out, nil
}

func (r *GormRepo) FacultyActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&acModel.FacultyModel{}).
		Where("faculty_id = ? AND faculty_is_active = TRUE", id).
		Count(&n).Error
	return n > 0, err
}

// MaxCredits: override departemen si faculty, atau default bila kosong.
func (r *GormRepo) MaxCredits(ctx context.Context, facultyID uuid.UUID) (int, error) {
	var row struct {
		DepartmentMaxCredits *int `gorm:"column:department_max_credits"`
	}
	err := r.DB.WithContext(ctx).Table("faculties").
		Select("departments.department_max_credits").
		Joins("LEFT JOIN departments ON departments.department_id = faculties.faculty_department_id AND departments.department_deleted_at IS NULL").
		Where("faculties.faculty_id = ? AND faculties.faculty_deleted_at IS NULL", facultyID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultMaxCredits, nil
	}
	if err != nil {
		return 0, err
	}
	if row.DepartmentMaxCredits != nil && *row.DepartmentMaxCredits > 0 {
		return *row.DepartmentMaxCredits, nil
	}
	return DefaultMaxCredits, nil
}

func (r *GormRepo) InTx(ctx context.Context, fn func(tr Repo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) ClearFacultyLinks(ctx context.Context, facultyID uuid.UUID) error {
	if err := r.DB.WithContext(ctx).Model(&acModel.SubjectModel{}).
		Where("subject_primary_faculty_id = ?", facultyID).
		Update("subject_primary_faculty_id", nil).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&acModel.SubjectModel{}).
		Where("subject_co_faculty_id = ?", facultyID).
		Update("subject_co_faculty_id", nil).Error
}

func (r *GormRepo) SetPrimary(ctx context.Context, subjectID, facultyID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&acModel.SubjectModel{}).
		Where("subject_id = ?", subjectID).
		Update("subject_primary_faculty_id", facultyID).Error
}

func (r *GormRepo) SetCo(ctx context.Context, subjectID, facultyID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&acModel.SubjectModel{}).
		Where("subject_id = ?", subjectID).
		Update("subject_co_faculty_id", facultyID).Error
}
