package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/dto"
)

// ConfigHandler expone la configuración pública del frontend.
type ConfigHandler struct {
	adminAccessCode string
}

// NewConfigHandler construye el handler de configuración.
func NewConfigHandler(adminAccessCode string) *ConfigHandler {
	return &ConfigHandler{adminAccessCode: adminAccessCode}
}

// Get devuelve el código de acceso admin que habilita el registro con rol
// admin en el frontend.
// GET /api/config
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.ConfigResponse{AdminAccessCode: h.adminAccessCode})
}
