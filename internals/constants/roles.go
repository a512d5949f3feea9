package constants

import "fmt"

// Role yang dikenal aplikasi
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// Template pesan error role
const (
	ErrOnlyFacultyCanAccess = "❌ Hanya faculty atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorFaculty(feature string) string {
	return fmt.Sprintf(ErrOnlyFacultyCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleFaculty,
		RoleStudent,
	}

	FacultyAndAbove = []string{
		RoleFaculty,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
