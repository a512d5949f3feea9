// file: internals/features/school/timetable/controller/timetable_controller.go
package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/timetable/dto"
	s "kampusku_backend/internals/features/school/timetable/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

/* =========================
   Controller & Constructor
   ========================= */

type TimetableController struct {
	Entries    *s.EntryService
	Recurrence *s.RecurrenceService
	Validate   *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *TimetableController {
	repo := s.NewGormRepo(db)
	refs := s.NewGormRefs(db)
	return &TimetableController{
		Entries:    s.NewEntry(repo, refs),
		Recurrence: s.NewRecurrence(repo, refs),
		Validate:   v,
	}
}

func parseLocalDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

/* ========================= Create ========================= */

// POST /api/a/timetable-entries?override=true
func (ctl *TimetableController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.WriteTimetableEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Entries.Create(c.UserContext(), req.ToInput(c.QueryBool("override")))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Timetable entry berhasil dibuat", d.FromWriteResult(res))
}

/* ========================= Update ========================= */

// PUT /api/a/timetable-entries/:id?override=true
func (ctl *TimetableController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.WriteTimetableEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Entries.Update(c.UserContext(), id, req.ToInput(c.QueryBool("override")))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Timetable entry berhasil diperbarui", d.FromWriteResult(res))
}

/* ========================= Delete ========================= */

// DELETE /api/a/timetable-entries/:id
func (ctl *TimetableController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	soft, err := ctl.Entries.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Timetable entry berhasil dihapus", fiber.Map{
		"timetable_entry_id": id,
		"soft_deleted":       soft,
	})
}

/* ========================= Apply edit (scope) ========================= */

// POST /api/a/timetable-entries/:id/apply-edit?override=true
// Body: { scope: "occurrence"|"future", ...patch }
func (ctl *TimetableController) ApplyEdit(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	var req d.ApplyEditRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Recurrence.ApplyEdit(c.UserContext(), id,
		req.ToPatch(c.QueryBool("override")), s.EditScope(req.Scope))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Edit jadwal diterapkan", d.FromWriteResult(res))
}

/* ========================= Resolve (public/user) ========================= */

// GET /api/u/timetable/resolve?batch_id=&date=YYYY-MM-DD
func (ctl *TimetableController) ResolveDay(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(strings.TrimSpace(c.Query("batch_id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "batch_id invalid")
	}
	date, err := parseLocalDate(c.Query("date"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "date invalid (YYYY-MM-DD)")
	}

	entries, err := ctl.Recurrence.ResolveDay(c.UserContext(), batchID, date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", d.FromModels(entries))
}

// GET /api/u/timetable/week?batch_id=&start=YYYY-MM-DD
func (ctl *TimetableController) ResolveWeek(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(strings.TrimSpace(c.Query("batch_id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "batch_id invalid")
	}
	start, err := parseLocalDate(c.Query("start"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "start invalid (YYYY-MM-DD)")
	}

	week, err := ctl.Recurrence.ResolveWeek(c.UserContext(), batchID, start)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	out := make(map[string][]d.TimetableEntryResponse, len(week))
	for day, entries := range week {
		out[day] = d.FromModels(entries)
	}
	return helper.JsonOK(c, "OK", out)
}
