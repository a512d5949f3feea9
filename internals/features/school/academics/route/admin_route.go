// file: internals/features/school/academics/route/admin_route.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	acctl "kampusku_backend/internals/features/school/academics/controller"
)

// AcademicsAdminRoutes mendaftarkan CRUD roster akademik untuk ADMIN.
func AcademicsAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	dept := acctl.NewDepartment(db, v)
	grp := admin.Group("/departments")
	grp.Get("/", dept.List)
	grp.Post("/", dept.Create)
	grp.Put("/:id", dept.Update)
	grp.Delete("/:id", dept.Delete)

	batch := acctl.NewBatch(db, v)
	grp = admin.Group("/batches")
	grp.Get("/", batch.List)
	grp.Post("/", batch.Create)
	grp.Put("/:id", batch.Update)
	grp.Delete("/:id", batch.Delete)

	fac := acctl.NewFaculty(db, v)
	grp = admin.Group("/faculties")
	grp.Get("/", fac.List)
	grp.Post("/", fac.Create)
	grp.Put("/:id", fac.Update)
	grp.Delete("/:id", fac.Delete)

	student := acctl.NewStudent(db, v)
	grp = admin.Group("/students")
	grp.Get("/", student.List)
	grp.Post("/", student.Create)
	grp.Post("/bulk", student.BulkImport)
	grp.Put("/:id", student.Update)
	grp.Delete("/:id", student.Delete)

	subject := acctl.NewSubject(db, v)
	grp = admin.Group("/subjects")
	grp.Get("/", subject.List)
	grp.Post("/", subject.Create)
	grp.Put("/:id", subject.Update)
	grp.Delete("/:id", subject.Delete)
}
