// file: internals/helpers/auth/claims.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kampusku_backend/internals/constants"
)

/* ============================================
   Locals keys (diisi middleware JWT)
   ============================================ */

const (
	LocUserID = "user_id" // string UUID
	LocRole   = "role"    // "admin" | "faculty" | "student"
)

func Role(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool   { return Role(c) == constants.RoleAdmin }
func IsFaculty(c *fiber.Ctx) bool { return Role(c) == constants.RoleFaculty }
func IsStudent(c *fiber.Ctx) bool { return Role(c) == constants.RoleStudent }

// GetUserIDFromToken: UUID user dari locals; error kalau tidak ada/invalid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	switch v := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id di token invalid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
}
