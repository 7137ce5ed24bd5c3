package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/application/ledger"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
)

const dateLayout = "2006-01-02"

// TransactionHandler maneja el CRUD de transacciones y sus estadísticas.
type TransactionHandler struct {
	ingest       *ledger.IngestUseCase
	transactions *ledger.TransactionUseCase
	kpi          *ledger.KPIUseCase
}

// NewTransactionHandler construye el handler de transacciones.
func NewTransactionHandler(ingest *ledger.IngestUseCase, transactions *ledger.TransactionUseCase, kpi *ledger.KPIUseCase) *TransactionHandler {
	return &TransactionHandler{ingest: ingest, transactions: transactions, kpi: kpi}
}

// Create registra una transacción y dispara la derivación de agregados.
// POST /api/transactions
//
// La respuesta es 201 en cuanto la transacción queda persistida, aunque
// balance o KPIs hayan fallado después del insert.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "date debe tener formato YYYY-MM-DD"))
	}

	result, err := h.ingest.Ingest(c.Context(), GetUserID(c), ledger.IngestInput{
		Amount:   in.Amount,
		Type:     in.Type,
		CostType: in.CostType,
		Category: in.Category,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "transacción inválida"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al registrar la transacción").WithDetails(err.Error()))
	}

	out := dto.IngestResponse{Transaction: toTransactionResponse(result.Transaction)}
	if result.Balance != nil {
		out.Balance = result.Balance.Balance
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve las transacciones del usuario autenticado.
// GET /api/transactions
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	txs, err := h.transactions.ListByUser(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al listar transacciones").WithDetails(err.Error()))
	}
	out := dto.TransactionListResponse{Transactions: make([]dto.TransactionResponse, 0, len(txs))}
	for _, tx := range txs {
		out.Transactions = append(out.Transactions, toTransactionResponse(tx))
	}
	return c.JSON(out)
}

// Update modifica una transacción del dueño y re-deriva los agregados.
// PUT /api/transactions/:id
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "date debe tener formato YYYY-MM-DD"))
	}

	tx, err := h.transactions.Update(c.Context(), GetUserID(c), c.Params("id"), ledger.UpdateInput{
		Amount:   in.Amount,
		Type:     in.Type,
		CostType: in.CostType,
		Category: in.Category,
		Date:     date,
	})
	if err != nil {
		return transactionError(c, err, "error al actualizar la transacción")
	}
	return c.JSON(toTransactionResponse(tx))
}

// Delete elimina una transacción del dueño y revierte su efecto.
// DELETE /api/transactions/:id
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.transactions.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return transactionError(c, err, "error al eliminar la transacción")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats agrega el mes en curso contra el anterior.
// GET /api/transactions/stats
func (h *TransactionHandler) Stats(c *fiber.Ctx) error {
	current, previous, top, err := h.kpi.Stats(c.Context(), GetUserID(c), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al calcular estadísticas").WithDetails(err.Error()))
	}

	k := finance.Compute(current, previous.Revenue)
	out := dto.StatsResponse{
		CurrentMonthRevenue:       current.Revenue,
		CurrentMonthExpenses:      current.Expenses,
		CurrentMonthFixedCosts:    current.FixedCosts,
		CurrentMonthVariableCosts: current.VariableCosts,
		LastMonthRevenue:          previous.Revenue,
		LastMonthExpenses:         previous.Expenses,
		CurrentGrossMargin:        k.MargenBruto,
		RevenueGrowth:             k.CrecimientoIngresos,
		TopExpenseCategories:      make([]dto.CategoryExpense, 0, len(top)),
	}
	for _, t := range top {
		out.TopExpenseCategories = append(out.TopExpenseCategories, dto.CategoryExpense{Category: t.Category, Total: t.Total})
	}
	return c.JSON(out)
}

func transactionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError(dto.KindNotFound, "transacción no encontrada"))
	case errors.Is(err, domain.ErrAuthorizationDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.NewError(dto.KindAuthorizationDenied, "la transacción pertenece a otro usuario"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "transacción inválida"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, fallback).WithDetails(err.Error()))
	}
}

func toTransactionResponse(tx *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Amount:    tx.Amount,
		Type:      tx.Type,
		CostType:  tx.CostType,
		Category:  tx.Category,
		Date:      tx.Date.Format(dateLayout),
		CreatedAt: tx.CreatedAt,
	}
}
