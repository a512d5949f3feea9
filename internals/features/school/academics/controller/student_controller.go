// file: internals/features/school/academics/controller/student_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/academics/dto"
	acModel "kampusku_backend/internals/features/school/academics/model"
	s "kampusku_backend/internals/features/school/academics/service"
	helper "kampusku_backend/internals/helpers"
	"kampusku_backend/internals/helpers/apierror"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Importer *s.StudentImporter
}

func NewStudent(db *gorm.DB, v *validator.Validate) *StudentController {
	return &StudentController{
		DB:       db,
		Validate: v,
		Importer: s.NewStudentImporter(s.NewGormImportRepo(db)),
	}
}

// GET /api/a/students?batch_id=&page=&per_page=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&acModel.StudentModel{})
	if raw := strings.TrimSpace(c.Query("batch_id")); raw != "" {
		q = q.Where("student_batch_id = ?", raw)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}

	var rows []acModel.StudentModel
	if err := q.Order("student_roll_number ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonList(c, "OK", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/a/students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := acModel.StudentModel{
		StudentBatchID:    req.BatchID,
		StudentName:       strings.TrimSpace(req.Name),
		StudentRollNumber: strings.TrimSpace(req.RollNumber),
		StudentEmail:      req.Email,
		StudentIsActive:   true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonCreated(c, "Student berhasil dibuat", row)
}

// POST /api/a/students/bulk
// Hasil per item (created/skipped/failed+reason); tidak berhenti di
// kegagalan pertama.
func (ctl *StudentController) BulkImport(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.BulkImportStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	outcomes, err := ctl.Importer.BulkImport(c.UserContext(), req.BatchID, req.ToItems())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Import selesai", fiber.Map{
		"batch_id": req.BatchID,
		"items":    outcomes,
	})
}

// PUT /api/a/students/:id
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row acModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "student_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}

	if req.Name != nil {
		row.StudentName = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		row.StudentEmail = req.Email
	}
	if req.IsActive != nil {
		row.StudentIsActive = *req.IsActive
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonUpdated(c, "Student berhasil diperbarui", row)
}

// DELETE /api/a/students/:id (soft)
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Delete(&acModel.StudentModel{}, "student_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonDeleted(c, "Student berhasil dihapus", fiber.Map{"student_id": id})
}
