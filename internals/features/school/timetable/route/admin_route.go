// file: internals/features/school/timetable/route/admin_route.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ttctl "kampusku_backend/internals/features/school/timetable/controller"
)

// TimetableAdminRoutes: CRUD entry + apply-edit (scope occurrence/future).
func TimetableAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ttctl.New(db, v)

	grp := admin.Group("/timetable-entries")
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
	grp.Post("/:id/apply-edit", ctl.ApplyEdit)
}

// TimetableUserRoutes: resolusi jadwal untuk kalender user.
func TimetableUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := ttctl.New(db, v)

	grp := user.Group("/timetable")
	grp.Get("/resolve", ctl.ResolveDay)
	grp.Get("/week", ctl.ResolveWeek)
}
