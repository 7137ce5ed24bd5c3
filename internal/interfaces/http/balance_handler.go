package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/application/ledger"
)

// BalanceHandler expone el balance corriente y su historial.
type BalanceHandler struct {
	uc *ledger.BalanceUseCase
}

// NewBalanceHandler construye el handler de balances.
func NewBalanceHandler(uc *ledger.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{uc: uc}
}

// Current devuelve el balance vigente del usuario (0 si no hay snapshots).
// GET /api/balance
func (h *BalanceHandler) Current(c *fiber.Ctx) error {
	balance, err := h.uc.Current(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindBalanceReadFailed, "error al leer el balance").WithDetails(err.Error()))
	}
	return c.JSON(dto.BalanceResponse{Balance: balance})
}

// History devuelve los snapshots del usuario, del más reciente al más antiguo.
// GET /api/balance/history?limit=N
func (h *BalanceHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	snaps, err := h.uc.History(c.Context(), GetUserID(c), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindBalanceReadFailed, "error al leer el historial de balances").WithDetails(err.Error()))
	}
	out := dto.BalanceHistoryResponse{History: make([]dto.BalanceHistoryEntry, 0, len(snaps))}
	for _, s := range snaps {
		out.History = append(out.History, dto.BalanceHistoryEntry{Balance: s.Balance, CreatedAt: s.CreatedAt})
	}
	return c.JSON(out)
}
