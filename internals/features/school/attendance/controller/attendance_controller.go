// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/attendance/dto"
	s "kampusku_backend/internals/features/school/attendance/service"
	ttService "kampusku_backend/internals/features/school/timetable/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

/* =========================
   Controller & Constructor
   ========================= */

type AttendanceController struct {
	Service  *s.SessionService
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AttendanceController {
	resolver := ttService.NewRecurrence(ttService.NewGormRepo(db), ttService.NewGormRefs(db))
	return &AttendanceController{
		Service: s.NewSession(
			s.NewGormSessionRepo(db),
			s.NewGormRecordRepo(db),
			s.NewGormRoster(db),
			resolver,
		),
		Validate: v,
	}
}

func canMark(c *fiber.Ctx) bool {
	return helperAuth.IsAdmin(c) || helperAuth.IsFaculty(c)
}

/* ========================= GetOrCreate ========================= */

// POST /api/t/attendance-sessions
func (ctl *AttendanceController) GetOrCreate(c *fiber.Ctx) error {
	if !canMark(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.GetOrCreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	batchID, _ := uuid.Parse(req.AttendanceSessionBatchID)
	subjectID, _ := uuid.Parse(req.AttendanceSessionSubjectID)
	date, _ := time.Parse("2006-01-02", req.AttendanceSessionDate)

	sess, err := ctl.Service.GetOrCreateSession(c.UserContext(), batchID, subjectID, date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", d.FromSessionModel(sess))
}

/* ========================= Mark ========================= */

// POST /api/t/attendance-sessions/:id/mark
func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	if !canMark(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	sessionID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	markedBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req d.MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	studentID, _ := uuid.Parse(req.AttendanceRecordStudentID)
	rec, err := ctl.Service.Mark(c.UserContext(), sessionID, studentID, req.AttendanceRecordStatus, markedBy)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Absensi tersimpan", d.FromRecordModel(rec))
}

/* ========================= Reset ========================= */

// POST /api/t/attendance-sessions/:id/reset
func (ctl *AttendanceController) Reset(c *fiber.Ctx) error {
	if !canMark(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	sessionID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	by, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	deleted, err := ctl.Service.Reset(c.UserContext(), sessionID, by)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Sesi direset", fiber.Map{
		"attendance_session_id": sessionID,
		"records_deleted":       deleted,
	})
}

/* ========================= Records per sesi ========================= */

// GET /api/t/attendance-sessions/:id/records
func (ctl *AttendanceController) ListRecords(c *fiber.Ctx) error {
	if !canMark(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	sessionID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id invalid")
	}

	records, err := ctl.Service.Records.ListBySession(c.UserContext(), sessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out := make([]d.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, d.FromRecordModel(&records[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* ========================= Occurrences ========================= */

// GET /api/t/attendance/occurrences?subject_id=&week_start=YYYY-MM-DD
func (ctl *AttendanceController) Occurrences(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Query("subject_id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "subject_id invalid")
	}
	weekStart, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("week_start")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "week_start invalid (YYYY-MM-DD)")
	}

	dates, err := ctl.Service.DeriveScheduledOccurrences(c.UserContext(), subjectID, weekStart)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out := make([]string, 0, len(dates))
	for _, dte := range dates {
		out = append(out, dte.Format("2006-01-02"))
	}
	return helper.JsonOK(c, "OK", out)
}

/* ========================= Summary (student) ========================= */

// GET /api/u/attendance/summary?student_id=&subject_id=
func (ctl *AttendanceController) Summary(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "student_id invalid")
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Query("subject_id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "subject_id invalid")
	}

	sum, err := ctl.Service.Summary(c.UserContext(), studentID, subjectID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", d.FromSummary(sum))
}
