package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghsoft/finanzas-api/internal/application/ledger"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria con fallos programables
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRepo struct {
	txs       []*entity.Transaction
	createErr error
}

func (f *fakeTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *tx
	f.txs = append(f.txs, &cp)
	return nil
}

func (f *fakeTxRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	for _, tx := range f.txs {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTxRepo) ListByUser(_ context.Context, userID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) ListByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range f.txs {
		if tx.UserID == userID && !tx.Date.Before(start) && tx.Date.Before(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) Update(_ context.Context, tx *entity.Transaction) error {
	for i, existing := range f.txs {
		if existing.ID == tx.ID {
			cp := *tx
			f.txs[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTxRepo) Delete(_ context.Context, id string) error {
	for i, existing := range f.txs {
		if existing.ID == id {
			f.txs = append(f.txs[:i], f.txs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeBalanceRepo struct {
	snaps     []*entity.BalanceSnapshot
	latestErr error
	appendErr error
}

func (f *fakeBalanceRepo) GetLatest(_ context.Context, userID string) (*entity.BalanceSnapshot, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	var latest *entity.BalanceSnapshot
	for _, s := range f.snaps {
		if s.UserID == userID {
			latest = s
		}
	}
	return latest, nil
}

func (f *fakeBalanceRepo) Append(_ context.Context, snap *entity.BalanceSnapshot) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.snaps = append(f.snaps, snap)
	return nil
}

func (f *fakeBalanceRepo) History(_ context.Context, userID string, limit int) ([]*entity.BalanceSnapshot, error) {
	var out []*entity.BalanceSnapshot
	for i := len(f.snaps) - 1; i >= 0 && len(out) < limit; i-- {
		if f.snaps[i].UserID == userID {
			out = append(out, f.snaps[i])
		}
	}
	return out, nil
}

type fakeKPIRepo struct {
	snaps     map[string]*entity.KPISnapshot // clave user|month
	upsertErr error
}

func newFakeKPIRepo() *fakeKPIRepo {
	return &fakeKPIRepo{snaps: make(map[string]*entity.KPISnapshot)}
}

func (f *fakeKPIRepo) Upsert(_ context.Context, snap *entity.KPISnapshot) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.snaps[snap.UserID+"|"+snap.MonthYear] = snap
	return nil
}

func (f *fakeKPIRepo) GetByMonth(_ context.Context, userID string, month finance.MonthYear) (*entity.KPISnapshot, error) {
	return f.snaps[userID+"|"+month.String()], nil
}

type fixture struct {
	txRepo      *fakeTxRepo
	balanceRepo *fakeBalanceRepo
	kpiRepo     *fakeKPIRepo
	balance     *ledger.BalanceUseCase
	kpi         *ledger.KPIUseCase
	ingest      *ledger.IngestUseCase
	txUC        *ledger.TransactionUseCase
}

func newFixture() *fixture {
	f := &fixture{
		txRepo:      &fakeTxRepo{},
		balanceRepo: &fakeBalanceRepo{},
		kpiRepo:     newFakeKPIRepo(),
	}
	f.balance = ledger.NewBalanceUseCase(f.balanceRepo)
	f.kpi = ledger.NewKPIUseCase(f.txRepo, f.kpiRepo)
	f.ingest = ledger.NewIngestUseCase(f.txRepo, f.balance, f.kpi, zerolog.Nop())
	f.txUC = ledger.NewTransactionUseCase(f.txRepo, f.ingest, zerolog.Nop())
	return f
}

var fecha = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// BalanceUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestBalance_EntradaYSaida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	snap, err := f.balance.Recompute(ctx, "u1", dec("1000"), entity.TypeEntrada)
	require.NoError(t, err)
	assert.True(t, snap.Balance.Equal(dec("1000")), "balance: %s", snap.Balance)

	snap, err = f.balance.Recompute(ctx, "u1", dec("300"), entity.TypeSaida)
	require.NoError(t, err)
	assert.True(t, snap.Balance.Equal(dec("700")), "balance: %s", snap.Balance)

	// Append-only: cada recomputo agrega un snapshot, nunca muta el anterior.
	assert.Len(t, f.balanceRepo.snaps, 2)
	assert.True(t, f.balanceRepo.snaps[0].Balance.Equal(dec("1000")))
}

// La dirección la decide el tipo: un monto negativo de entrada suma igual.
func TestBalance_MontoNegativoConTipoEntrada(t *testing.T) {
	f := newFixture()
	snap, err := f.balance.Recompute(context.Background(), "u1", dec("-500"), entity.TypeEntrada)
	require.NoError(t, err)
	assert.True(t, snap.Balance.Equal(dec("500")))
}

func TestBalance_SinSnapshotsParteDeCero(t *testing.T) {
	f := newFixture()
	current, err := f.balance.Current(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, current.IsZero())
}

func TestBalance_ErroresTipificados(t *testing.T) {
	f := newFixture()
	f.balanceRepo.latestErr = errors.New("conexión perdida")
	_, err := f.balance.Recompute(context.Background(), "u1", dec("100"), entity.TypeEntrada)
	assert.ErrorIs(t, err, domain.ErrBalanceRead)

	f = newFixture()
	f.balanceRepo.appendErr = errors.New("conexión perdida")
	_, err = f.balance.Recompute(context.Background(), "u1", dec("100"), entity.TypeEntrada)
	assert.ErrorIs(t, err, domain.ErrBalanceWrite)
}

// ──────────────────────────────────────────────────────────────────────────────
// KPIUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestKPI_CalculateAndUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.txRepo.Create(ctx, &entity.Transaction{ID: "t1", UserID: "u1", Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha}))
	require.NoError(t, f.txRepo.Create(ctx, &entity.Transaction{ID: "t2", UserID: "u1", Amount: dec("300"), Type: entity.TypeSaida, CostType: entity.CostFijo, Date: fecha}))

	snap, err := f.kpi.CalculateAndUpdate(ctx, "u1", finance.MonthOf(fecha))
	require.NoError(t, err)
	assert.Equal(t, "2025-03", snap.MonthYear)
	assert.True(t, snap.MargenBruto.Equal(dec("70")), "margen: %s", snap.MargenBruto)
	assert.True(t, snap.PuntoEquilibrio.Equal(dec("300")), "punto de equilibrio: %s", snap.PuntoEquilibrio)
}

// El recálculo reemplaza el snapshot del mes, nunca acumula sobre el anterior.
func TestKPI_RecalculoReemplaza(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	month := finance.MonthOf(fecha)

	require.NoError(t, f.txRepo.Create(ctx, &entity.Transaction{ID: "t1", UserID: "u1", Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha}))

	first, err := f.kpi.CalculateAndUpdate(ctx, "u1", month)
	require.NoError(t, err)
	second, err := f.kpi.CalculateAndUpdate(ctx, "u1", month)
	require.NoError(t, err)

	assert.True(t, first.MargenBruto.Equal(second.MargenBruto), "sin escrituras intermedias el recálculo es idéntico")
	assert.Len(t, f.kpiRepo.snaps, 1, "a lo sumo un snapshot por (usuario, mes)")
}

func TestKPI_CrecimientoContraMesAnterior(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prevFecha := fecha.AddDate(0, -1, 0)

	require.NoError(t, f.txRepo.Create(ctx, &entity.Transaction{ID: "t1", UserID: "u1", Amount: dec("1000"), Type: entity.TypeEntrada, Date: prevFecha}))
	require.NoError(t, f.txRepo.Create(ctx, &entity.Transaction{ID: "t2", UserID: "u1", Amount: dec("1200"), Type: entity.TypeEntrada, Date: fecha}))

	snap, err := f.kpi.CalculateAndUpdate(ctx, "u1", finance.MonthOf(fecha))
	require.NoError(t, err)
	assert.True(t, snap.CrecimientoIngresos.Equal(dec("20")), "crecimiento: %s", snap.CrecimientoIngresos)
}

func TestKPI_GetByMonthInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.kpi.GetByMonth(context.Background(), "u1", finance.MonthYear("2025-01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKPI_StatsTopCategorias(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, c := range []struct {
		cat    string
		amount string
	}{
		{"alquiler", "800"}, {"comida", "200"}, {"comida", "150"}, {"transporte", "90"}, {"software", "50"},
	} {
		require.NoError(t, f.txRepo.Create(ctx, &entity.Transaction{
			ID: c.cat + c.amount, UserID: "u1", Amount: dec(c.amount),
			Type: entity.TypeSaida, CostType: entity.CostVariable, Category: c.cat, Date: fecha,
		}))
	}

	_, _, top, err := f.kpi.Stats(ctx, "u1", fecha)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "alquiler", top[0].Category)
	assert.True(t, top[0].Total.Equal(dec("800")))
	assert.Equal(t, "comida", top[1].Category)
	assert.True(t, top[1].Total.Equal(dec("350")), "comida acumula sus dos gastos: %s", top[1].Total)
	assert.Equal(t, "transporte", top[2].Category)
}

// ──────────────────────────────────────────────────────────────────────────────
// IngestUseCase — protocolo transacción → balance → KPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestIngest_ProtocoloCompleto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.ingest.Ingest(ctx, "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Category: "ventas", Date: fecha,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	require.NotNil(t, result.Balance)
	require.NotNil(t, result.KPI)

	assert.True(t, result.Balance.Balance.Equal(dec("1000")))
	assert.Equal(t, "2025-03", result.KPI.MonthYear)
	assert.Len(t, f.txRepo.txs, 1)
}

// Escenario completo: entrada de 1000 y luego gasto fijo de 300 en el mismo
// mes dejan balance 700, margen bruto 70% y punto de equilibrio 300.
func TestIngest_EscenarioEntradaYGasto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.ingest.Ingest(ctx, "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, first.Balance)
	assert.True(t, first.Balance.Balance.Equal(dec("1000")))

	second, err := f.ingest.Ingest(ctx, "u1", ledger.IngestInput{
		Amount: dec("300"), Type: entity.TypeSaida, CostType: entity.CostFijo,
		Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, second.Balance)
	assert.True(t, second.Balance.Balance.Equal(dec("700")))

	snap, err := f.kpiRepo.GetByMonth(ctx, "u1", finance.MonthYear("2024-03"))
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.True(t, snap.MargenBruto.Equal(dec("70")), "margen: %s", snap.MargenBruto)
	assert.True(t, snap.PuntoEquilibrio.Equal(dec("300")), "punto de equilibrio: %s", snap.PuntoEquilibrio)
}

// Si el insert falla no debe quedar ningún estado parcial.
func TestIngest_FalloDePersistenciaAborta(t *testing.T) {
	f := newFixture()
	f.txRepo.createErr = errors.New("conexión perdida")

	result, err := f.ingest.Ingest(context.Background(), "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha,
	})
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, f.balanceRepo.snaps, "no debe haber snapshot de balance")
	assert.Empty(t, f.kpiRepo.snaps, "no debe haber snapshot de KPIs")
}

// Un fallo del agregador de balance después del insert no falla la ingestión:
// la transacción queda confirmada y la respuesta es de éxito.
func TestIngest_FalloDeBalanceNoEsFatal(t *testing.T) {
	f := newFixture()
	f.balanceRepo.appendErr = errors.New("conexión perdida")

	result, err := f.ingest.Ingest(context.Background(), "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha,
	})
	require.NoError(t, err, "la transacción persistida manda: el fallo de balance no se propaga")
	require.NotNil(t, result.Transaction)
	assert.Nil(t, result.Balance)
	assert.NotNil(t, result.KPI, "el fallo de balance no impide recalcular KPIs")
	assert.Len(t, f.txRepo.txs, 1)
}

func TestIngest_FalloDeKPIsNoEsFatal(t *testing.T) {
	f := newFixture()
	f.kpiRepo.upsertErr = errors.New("conexión perdida")

	result, err := f.ingest.Ingest(context.Background(), "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	assert.NotNil(t, result.Balance)
	assert.Nil(t, result.KPI)
}

func TestIngest_ValidaTipo(t *testing.T) {
	f := newFixture()
	_, err := f.ingest.Ingest(context.Background(), "u1", ledger.IngestInput{
		Amount: dec("100"), Type: "transferencia", Date: fecha,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ingest.Ingest(context.Background(), "u1", ledger.IngestInput{
		Amount: dec("100"), Type: entity.TypeSaida, CostType: "otro", Date: fecha,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// TransactionUseCase — edición y borrado re-derivan agregados
// ──────────────────────────────────────────────────────────────────────────────

func TestTransactionUpdate_ReDerivaBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.ingest.Ingest(ctx, "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha,
	})
	require.NoError(t, err)

	_, err = f.txUC.Update(ctx, "u1", result.Transaction.ID, ledger.UpdateInput{
		Amount: dec("600"), Type: entity.TypeEntrada, Date: fecha,
	})
	require.NoError(t, err)

	current, err := f.balance.Current(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, current.Equal(dec("600")), "el balance recibe el efecto neto: %s", current)
}

func TestTransactionUpdate_DeOtroUsuario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.ingest.Ingest(ctx, "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha,
	})
	require.NoError(t, err)

	_, err = f.txUC.Update(ctx, "u2", result.Transaction.ID, ledger.UpdateInput{
		Amount: dec("600"), Type: entity.TypeEntrada, Date: fecha,
	})
	assert.ErrorIs(t, err, domain.ErrAuthorizationDenied)
}

func TestTransactionDelete_RevierteElEfecto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.ingest.Ingest(ctx, "u1", ledger.IngestInput{
		Amount: dec("1000"), Type: entity.TypeEntrada, Date: fecha,
	})
	require.NoError(t, err)

	require.NoError(t, f.txUC.Delete(ctx, "u1", result.Transaction.ID))

	current, err := f.balance.Current(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, current.IsZero(), "el borrado revierte el efecto: %s", current)
	assert.Empty(t, f.txRepo.txs)

	snap, err := f.kpiRepo.GetByMonth(ctx, "u1", finance.MonthOf(fecha))
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.True(t, snap.MargenBruto.IsZero(), "los KPIs del mes se recalculan sin la transacción")
}

func TestTransactionDelete_Inexistente(t *testing.T) {
	f := newFixture()
	err := f.txUC.Delete(context.Background(), "u1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
