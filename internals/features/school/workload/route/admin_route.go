// file: internals/features/school/workload/route/admin_route.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	wlctl "kampusku_backend/internals/features/school/workload/controller"
)

// WorkloadAdminRoutes mendaftarkan route beban dosen untuk ADMIN.
func WorkloadAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := wlctl.New(db, v)

	grp := admin.Group("/workload")
	grp.Get("/faculty/:id", ctl.FacultyLoad)
	grp.Post("/bulk-allot", ctl.BulkAllot)
}
