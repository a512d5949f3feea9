// file: internals/features/school/time_slots/route/admin_route.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	slotctl "kampusku_backend/internals/features/school/time_slots/controller"
)

// TimeSlotAdminRoutes mendaftarkan route katalog slot untuk ADMIN.
func TimeSlotAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := slotctl.New(db, v)

	grp := admin.Group("/time-slots")
	grp.Get("/", ctl.List)
	grp.Get("/check-conflicts", ctl.CheckConflicts)
	grp.Get("/:id/adjacent", ctl.Adjacent)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
