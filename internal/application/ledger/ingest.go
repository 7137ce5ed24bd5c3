// Package ledger implementa el protocolo de consistencia entre transacciones
// y sus agregados derivados: balance corriente y snapshot mensual de KPIs.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// Estados del protocolo de ingestión. Cada paso posterior a Received queda
// confirmado de forma durable antes de iniciar el siguiente; no existe
// transacción que los cubra en conjunto.
const (
	StateReceived       = "received"
	StatePersisted      = "persisted"
	StateBalanceUpdated = "balance_updated"
	StateKpiUpdated     = "kpi_updated"
	StateComplete       = "complete"
)

// IngestInput transacción a registrar, sin UserID (lo aporta la sesión).
type IngestInput struct {
	Amount   decimal.Decimal
	Type     string
	CostType string
	Category string
	Date     time.Time
}

// IngestResult transacción persistida más el balance resultante. Solo la
// transacción está garantizada; Balance es nil cuando el agregador falló.
type IngestResult struct {
	Transaction *entity.Transaction
	Balance     *entity.BalanceSnapshot
	KPI         *entity.KPISnapshot
}

// IngestUseCase orquesta la secuencia persistir → balance → KPIs.
type IngestUseCase struct {
	transactions repository.TransactionRepository
	balance      *BalanceUseCase
	kpi          *KPIUseCase
	log          zerolog.Logger
}

// NewIngestUseCase construye el orquestador.
func NewIngestUseCase(
	transactions repository.TransactionRepository,
	balance *BalanceUseCase,
	kpi *KPIUseCase,
	log zerolog.Logger,
) *IngestUseCase {
	return &IngestUseCase{transactions: transactions, balance: balance, kpi: kpi, log: log}
}

// Ingest ejecuta el protocolo completo para una transacción nueva.
//
// Contrato de fallos:
//   - Si el insert falla, no existe estado parcial y el error va al caller.
//   - Si el insert tiene éxito y balance o KPIs fallan, la transacción queda
//     confirmada y la respuesta al caller sigue siendo de éxito; la
//     inconsistencia se registra en el log y se sanea en la próxima escritura.
//     Se acepta esta deuda a cambio de no rechazar escrituras financieramente
//     válidas por fallos de cómputo de agregados.
func (uc *IngestUseCase) Ingest(ctx context.Context, userID string, in IngestInput) (*IngestResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	tx := &entity.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    in.Amount,
		Type:      in.Type,
		CostType:  in.CostType,
		Category:  in.Category,
		Date:      in.Date,
		CreatedAt: time.Now(),
	}

	log := uc.log.With().Str("transaction_id", tx.ID).Str("user_id", userID).Logger()
	log.Debug().Str("state", StateReceived).Msg("transacción recibida")

	// Received -> Persisted: único paso cuyo fallo aborta la petición.
	if err := uc.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("persistir transacción: %w", err)
	}
	log.Debug().Str("state", StatePersisted).Msg("transacción persistida")

	result := &IngestResult{Transaction: tx}

	// Persisted -> BalanceUpdated: fallo no fatal, la transacción ya está confirmada.
	snap, err := uc.balance.Recompute(ctx, userID, tx.Amount, tx.Type)
	if err != nil {
		log.Error().Err(err).Str("state", StatePersisted).
			Msg("balance no actualizado; agregado queda obsoleto hasta la próxima escritura")
	} else {
		result.Balance = snap
		log.Debug().Str("state", StateBalanceUpdated).Str("balance", snap.Balance.String()).Msg("balance actualizado")
	}

	// BalanceUpdated -> KpiUpdated: fallo no fatal.
	month := finance.MonthOf(tx.Date)
	kpiSnap, err := uc.kpi.CalculateAndUpdate(ctx, userID, month)
	if err != nil {
		log.Error().Err(err).Str("month", month.String()).
			Msg("KPIs no recalculados; snapshot queda obsoleto hasta la próxima escritura")
	} else {
		result.KPI = kpiSnap
		log.Debug().Str("state", StateKpiUpdated).Msg("KPIs recalculados")
	}

	log.Info().Str("state", StateComplete).Msg("ingestión completada")
	return result, nil
}

// Reprocess vuelve a derivar balance y KPIs tras modificar o eliminar una
// transacción existente. balanceDelta es el efecto neto a aplicar sobre el
// balance (puede ser cero); months son los meses afectados a recalcular.
func (uc *IngestUseCase) Reprocess(ctx context.Context, userID string, balanceDelta decimal.Decimal, months ...finance.MonthYear) {
	if !balanceDelta.IsZero() {
		txType := entity.TypeEntrada
		if balanceDelta.IsNegative() {
			txType = entity.TypeSaida
		}
		if _, err := uc.balance.Recompute(ctx, userID, balanceDelta, txType); err != nil {
			uc.log.Error().Err(err).Str("user_id", userID).Msg("reproceso de balance falló")
		}
	}
	seen := make(map[finance.MonthYear]bool, len(months))
	for _, m := range months {
		if seen[m] {
			continue
		}
		seen[m] = true
		if _, err := uc.kpi.CalculateAndUpdate(ctx, userID, m); err != nil {
			uc.log.Error().Err(err).Str("user_id", userID).Str("month", m.String()).Msg("reproceso de KPIs falló")
		}
	}
}

func validate(in IngestInput) error {
	switch in.Type {
	case entity.TypeEntrada, entity.TypeSaida:
	default:
		return domain.ErrInvalidInput
	}
	if in.Type == entity.TypeSaida {
		switch in.CostType {
		case entity.CostFijo, entity.CostVariable, "":
		default:
			return domain.ErrInvalidInput
		}
	}
	if in.Date.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}
