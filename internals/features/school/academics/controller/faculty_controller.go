// file: internals/features/school/academics/controller/faculty_controller.go
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

type FacultyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFaculty(db *gorm.DB, v *validator.Validate) *FacultyController {
	return &FacultyController{DB: db, Validate: v}
}

// GET /api/a/faculties?department_id=
func (ctl *FacultyController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&acModel.FacultyModel{})
	if raw := strings.TrimSpace(c.Query("department_id")); raw != "" {
		q = q.Where("faculty_department_id = ?", raw)
	}
	var rows []acModel.FacultyModel
	if err := q.Order("faculty_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/a/faculties
func (ctl *FacultyController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := acModel.FacultyModel{
		FacultyDepartmentID: req.DepartmentID,
		FacultyName:         strings.TrimSpace(req.Name),
		FacultyEmail:        req.Email,
		FacultyNIDN:         req.NIDN,
		FacultyIsActive:     true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonCreated(c, "Faculty berhasil dibuat", row)
}

// PUT /api/a/faculties/:id
func (ctl *FacultyController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row acModel.FacultyModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "faculty_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}

	if req.Name != nil {
		row.FacultyName = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		row.FacultyEmail = req.Email
	}
	if req.NIDN != nil {
		row.FacultyNIDN = req.NIDN
	}
	if req.IsActive != nil {
		row.FacultyIsActive = *req.IsActive
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonUpdated(c, "Faculty berhasil diperbarui", row)
}

// DELETE /api/a/faculties/:id (soft)
func (ctl *FacultyController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Delete(&acModel.FacultyModel{}, "faculty_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonDeleted(c, "Faculty berhasil dihapus", fiber.Map{"faculty_id": id})
}
