// file: internals/features/school/workload/controller/workload_controller.go
package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/workload/dto"
	s "kampusku_backend/internals/features/school/workload/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

/* =========================
   Controller & Constructor
   ========================= */

type WorkloadController struct {
	Service  *s.WorkloadService
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *WorkloadController {
	return &WorkloadController{
		Service:  s.NewWorkload(s.NewGormRepo(db)),
		Validate: v,
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

/* ========================= Current / projected ========================= */

// GET /api/a/workload/faculty/:id
// Opsional ?candidate_subject_ids=a,b,c utk proyeksi.
func (ctl *WorkloadController) FacultyLoad(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	raw := strings.TrimSpace(c.Query("candidate_subject_ids"))
	if raw == "" {
		load, err := ctl.Service.CurrentLoad(c.UserContext(), id)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		return helper.JsonOK(c, "OK", load)
	}

	var candidates []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		sid, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "candidate_subject_ids invalid")
		}
		candidates = append(candidates, sid)
	}
	load, err := ctl.Service.ProjectedLoad(c.UserContext(), id, candidates)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", load)
}

/* ========================= Bulk allot ========================= */

// POST /api/a/workload/bulk-allot?force=true
func (ctl *WorkloadController) BulkAllot(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.BulkAllotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Service.BulkAllot(c.UserContext(), req.ToAssignments(), c.QueryBool("force"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Penugasan berhasil di-commit", res)
}
