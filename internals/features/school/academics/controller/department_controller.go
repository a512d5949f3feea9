// file: internals/features/school/academics/controller/department_controller.go
package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/academics/dto"
	acModel "kampusku_backend/internals/features/school/academics/model"
	helper "kampusku_backend/internals/helpers"
	"kampusku_backend/internals/helpers/apierror"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

/* =========================
   Controller & Constructor
   ========================= */

type DepartmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDepartment(db *gorm.DB, v *validator.Validate) *DepartmentController {
	return &DepartmentController{DB: db, Validate: v}
}

// GET /api/a/departments
func (ctl *DepartmentController) List(c *fiber.Ctx) error {
	var rows []acModel.DepartmentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("department_code ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/a/departments
func (ctl *DepartmentController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := acModel.DepartmentModel{
		DepartmentName:       strings.TrimSpace(req.Name),
		DepartmentCode:       strings.ToUpper(strings.TrimSpace(req.Code)),
		DepartmentMaxCredits: req.MaxCredits,
		DepartmentIsActive:   true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonCreated(c, "Department berhasil dibuat", row)
}

// PUT /api/a/departments/:id
func (ctl *DepartmentController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row acModel.DepartmentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "department_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}

	if req.Name != nil {
		row.DepartmentName = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		row.DepartmentCode = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.MaxCredits != nil {
		row.DepartmentMaxCredits = req.MaxCredits
	}
	if req.IsActive != nil {
		row.DepartmentIsActive = *req.IsActive
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonUpdated(c, "Department berhasil diperbarui", row)
}

// DELETE /api/a/departments/:id (soft)
func (ctl *DepartmentController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Delete(&acModel.DepartmentModel{}, "department_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonDeleted(c, "Department berhasil dihapus", fiber.Map{"department_id": id})
}
