// file: internals/features/school/attendance/route/teacher_route.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attctl "kampusku_backend/internals/features/school/attendance/controller"
)

// AttendanceTeacherRoutes: operasi mark/reset oleh faculty/admin.
func AttendanceTeacherRoutes(teacher fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := attctl.New(db, v)

	grp := teacher.Group("/attendance-sessions")
	grp.Post("/", ctl.GetOrCreate)
	grp.Post("/:id/mark", ctl.Mark)
	grp.Post("/:id/reset", ctl.Reset)
	grp.Get("/:id/records", ctl.ListRecords)

	teacher.Get("/attendance/occurrences", ctl.Occurrences)
}

// AttendanceUserRoutes: ringkasan kehadiran utk student.
func AttendanceUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := attctl.New(db, v)
	user.Get("/attendance/summary", ctl.Summary)
}
