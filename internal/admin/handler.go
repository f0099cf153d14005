package admin

import (
	"strings"

	"asociacion-backend/internal/auth"
	"asociacion-backend/internal/database"
	"asociacion-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateCuentaRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CuentaResponse struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// -------------------------------------------------
// POST /api/admin/cuentas
// Solo un administrador crea cuentas; los operadores cargan socios,
// documentos e ingresos pero no gestionan usuarios.
// -------------------------------------------------
func CreateCuentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCuentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, email y contraseña son obligatorios")
		}
		if len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres")
		}

		role := models.UserRole(body.Role)
		if role == "" {
			role = models.RoleOperador
		}
		if role != models.RoleAdmin && role != models.RoleOperador {
			return fiber.NewError(fiber.StatusBadRequest, "Rol inválido (valores: admin|operador)")
		}

		var existe models.User
		if err := database.DB.Where("email = ?", body.Email).First(&existe).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe una cuenta con ese email")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la cuenta")
		}

		return c.Status(fiber.StatusCreated).JSON(CuentaResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
	}
}

// -------------------------------------------------
// GET /api/admin/cuentas
// -------------------------------------------------
func ListCuentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("id asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las cuentas")
		}

		resp := make([]CuentaResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, CuentaResponse{
				ID:    u.ID,
				Name:  u.Name,
				Email: u.Email,
				Role:  u.Role,
			})
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// DELETE /api/admin/cuentas/:id
// -------------------------------------------------
func DeleteCuentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cuenta no encontrada")
		}

		// El administrador no puede eliminarse a sí mismo
		if selfID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok && selfID == user.ID {
			return fiber.NewError(fiber.StatusBadRequest, "No puedes eliminar tu propia cuenta")
		}

		if user.Role == models.RoleAdmin {
			var admins int64
			database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
			if admins <= 1 {
				return fiber.NewError(fiber.StatusBadRequest, "No se puede eliminar el único administrador")
			}
		}

		if err := database.DB.Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la cuenta")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
