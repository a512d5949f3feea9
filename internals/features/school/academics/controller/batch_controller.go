// file: internals/features/school/academics/controller/batch_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/academics/dto"
	acModel "kampusku_backend/internals/features/school/academics/model"
	helper "kampusku_backend/internals/helpers"
	"kampusku_backend/internals/helpers/apierror"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

type BatchController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBatch(db *gorm.DB, v *validator.Validate) *BatchController {
	return &BatchController{DB: db, Validate: v}
}

// GET /api/a/batches?department_id=
func (ctl *BatchController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&acModel.BatchModel{})
	if raw := strings.TrimSpace(c.Query("department_id")); raw != "" {
		q = q.Where("batch_department_id = ?", raw)
	}
	var rows []acModel.BatchModel
	if err := q.Order("batch_year DESC, batch_semester ASC").Find(&rows).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/a/batches
func (ctl *BatchController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&acModel.DepartmentModel{}).
		Where("department_id = ? AND department_is_active = TRUE", req.DepartmentID).
		Count(&n).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	if n == 0 {
		return helper.JsonFromError(c, apierror.NotFound("department tidak ditemukan / nonaktif"))
	}

	row := acModel.BatchModel{
		BatchDepartmentID: req.DepartmentID,
		BatchName:         strings.TrimSpace(req.Name),
		BatchSemester:     req.Semester,
		BatchYear:         req.Year,
		BatchIsActive:     true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonCreated(c, "Batch berhasil dibuat", row)
}

// PUT /api/a/batches/:id
func (ctl *BatchController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.UpdateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row acModel.BatchModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "batch_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}

	if req.Name != nil {
		row.BatchName = strings.TrimSpace(*req.Name)
	}
	if req.Semester != nil {
		row.BatchSemester = *req.Semester
	}
	if req.Year != nil {
		row.BatchYear = *req.Year
	}
	if req.IsActive != nil {
		row.BatchIsActive = *req.IsActive
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonUpdated(c, "Batch berhasil diperbarui", row)
}

// DELETE /api/a/batches/:id (soft)
func (ctl *BatchController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Delete(&acModel.BatchModel{}, "batch_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonDeleted(c, "Batch berhasil dihapus", fiber.Map{"batch_id": id})
}
