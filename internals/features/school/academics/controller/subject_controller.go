// file: internals/features/school/academics/controller/subject_controller.go
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

type SubjectController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSubject(db *gorm.DB, v *validator.Validate) *SubjectController {
	return &SubjectController{DB: db, Validate: v}
}

// GET /api/a/subjects?batch_id=&faculty_id=
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&acModel.SubjectModel{})
	if raw := strings.TrimSpace(c.Query("batch_id")); raw != "" {
		q = q.Where("subject_batch_id = ?", raw)
	}
	if raw := strings.TrimSpace(c.Query("faculty_id")); raw != "" {
		q = q.Where("subject_primary_faculty_id = ? OR subject_co_faculty_id = ?", raw, raw)
	}
	var rows []acModel.SubjectModel
	if err := q.Order("subject_code ASC").Find(&rows).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/a/subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&acModel.BatchModel{}).
		Where("batch_id = ? AND batch_is_active = TRUE", req.BatchID).
		Count(&n).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	if n == 0 {
		return helper.JsonFromError(c, apierror.NotFound("batch tidak ditemukan / nonaktif"))
	}

	row := req.ToModel()
	row.SubjectName = strings.TrimSpace(row.SubjectName)
	row.SubjectCode = strings.ToUpper(strings.TrimSpace(row.SubjectCode))
	if err := ctl.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonCreated(c, "Subject berhasil dibuat", row)
}

// PUT /api/a/subjects/:id
func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row acModel.SubjectModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "subject_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}

	if req.Name != nil {
		row.SubjectName = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		row.SubjectCode = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Credits != nil {
		row.SubjectCredits = *req.Credits
	}
	if req.Type != nil {
		st := acModel.SubjectType(*req.Type)
		if !st.Valid() {
			return helper.JsonError(c, http.StatusBadRequest, "subject_type invalid")
		}
		row.SubjectType = st
	}
	if req.PrimaryFacultyID != nil {
		row.SubjectPrimaryFacultyID = req.PrimaryFacultyID
	}
	if req.CoFacultyID != nil {
		row.SubjectCoFacultyID = req.CoFacultyID
	}
	if len(req.Syllabus) > 0 {
		row.SubjectSyllabus = req.Syllabus
	}
	if req.IsActive != nil {
		row.SubjectIsActive = *req.IsActive
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonUpdated(c, "Subject berhasil diperbarui", row)
}

// DELETE /api/a/subjects/:id (soft)
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Delete(&acModel.SubjectModel{}, "subject_id = ?", id).Error; err != nil {
		return helper.JsonFromError(c, apierror.FromPG(err))
	}
	return helper.JsonDeleted(c, "Subject berhasil dihapus", fiber.Map{"subject_id": id})
}
