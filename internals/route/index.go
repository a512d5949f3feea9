// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	acRoutes "kampusku_backend/internals/features/school/academics/route"
	attRoutes "kampusku_backend/internals/features/school/attendance/route"
	slotRoutes "kampusku_backend/internals/features/school/time_slots/route"
	ttRoutes "kampusku_backend/internals/features/school/timetable/route"
	wlRoutes "kampusku_backend/internals/features/school/workload/route"
	authMw "kampusku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	jwt := authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	})

	// ===================== GROUPS =====================

	// ADMIN: tata usaha akademik (role dicek per-handler)
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", jwt)

	// USER: mahasiswa (jadwal ter-resolve, rekap kehadiran)
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", jwt)

	// TEACHER: dosen (sesi absensi)
	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api/t", jwt)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Academics routes...")
	acRoutes.AcademicsAdminRoutes(admin, db, v)

	log.Println("[INFO] Mounting TimeSlot routes...")
	slotRoutes.TimeSlotAdminRoutes(admin, db, v)

	log.Println("[INFO] Mounting Timetable routes...")
	ttRoutes.TimetableAdminRoutes(admin, db, v)
	ttRoutes.TimetableUserRoutes(user, db, v)

	log.Println("[INFO] Mounting Attendance routes...")
	attRoutes.AttendanceTeacherRoutes(teacher, db, v)
	attRoutes.AttendanceUserRoutes(user, db, v)

	log.Println("[INFO] Mounting Workload routes...")
	wlRoutes.WorkloadAdminRoutes(admin, db, v)
}
