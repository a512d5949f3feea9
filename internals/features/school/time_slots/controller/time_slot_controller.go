// file: internals/features/school/time_slots/controller/time_slot_controller.go
package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/time_slots/dto"
	s "kampusku_backend/internals/features/school/time_slots/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

/* =========================
   Controller & Constructor
   ========================= */

type TimeSlotController struct {
	Service  *s.CatalogService
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *TimeSlotController {
	return &TimeSlotController{
		Service:  s.NewCatalog(s.NewGormRepo(db)),
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

/* ========================= Create ========================= */

// POST /api/a/time-slots
func (ctl *TimeSlotController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CreateTimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	slot, err := ctl.Service.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Time slot berhasil dibuat", d.FromModel(slot))
}

/* ========================= Update ========================= */

// PUT /api/a/time-slots/:id
func (ctl *TimeSlotController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.UpdateTimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	slot, err := ctl.Service.Update(c.UserContext(), id, req.ToInput())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Time slot berhasil diperbarui", d.FromModel(slot))
}

/* ========================= Delete ========================= */

// DELETE /api/a/time-slots/:id
// Soft delete kalau slot pernah direferensikan entry; hard delete kalau belum.
func (ctl *TimeSlotController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	soft, err := ctl.Service.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Time slot berhasil dihapus", fiber.Map{
		"time_slot_id": id,
		"soft_deleted": soft,
	})
}

/* ========================= List ========================= */

// GET /api/a/time-slots
func (ctl *TimeSlotController) List(c *fiber.Ctx) error {
	rows, err := ctl.Service.ListWithUsage(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out := make([]d.TimeSlotResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, d.FromSlotWithUsage(row))
	}
	return helper.JsonOK(c, "OK", out)
}

/* ========================= Check conflicts ========================= */

// GET /api/a/time-slots/check-conflicts?start=HH:MM&end=HH:MM&exclude_id=
func (ctl *TimeSlotController) CheckConflicts(c *fiber.Ctx) error {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))
	if start == "" || end == "" {
		return helper.JsonError(c, http.StatusBadRequest, "query start & end wajib (HH:MM)")
	}

	excludeID := uuid.Nil
	if raw := strings.TrimSpace(c.Query("exclude_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "exclude_id invalid")
		}
		excludeID = id
	}

	rep, err := ctl.Service.CheckConflicts(c.UserContext(), start, end, excludeID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", d.FromConflictReport(rep))
}

/* ========================= Adjacent ========================= */

// GET /api/a/time-slots/:id/adjacent
func (ctl *TimeSlotController) Adjacent(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	slot, err := ctl.Service.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if slot == nil {
		return helper.JsonError(c, http.StatusNotFound, "Time slot tidak ditemukan")
	}

	adj, err := ctl.Service.FindAdjacent(c.UserContext(), id, slot.TimeSlotStartMin, slot.TimeSlotEndMin)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out := make([]d.AdjacentSlotResponse, 0, len(adj))
	for i := range adj {
		out = append(out, d.AdjacentSlotResponse{
			Slot:     d.FromModel(&adj[i].Slot),
			Position: adj[i].Position,
		})
	}
	return helper.JsonOK(c, "OK", out)
}
