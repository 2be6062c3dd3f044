package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labops-api/internal/application/orders"
	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

// memOrderRepo implementación en memoria del puerto de órdenes.
type memOrderRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{rows: make(map[string]*entity.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[order.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *order
	r.rows[order.ID] = &copied
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *memOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	row.Status = status
	row.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memOrderRepo) ListByLab(_ context.Context, labID string, _, _ int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, row := range r.rows {
		if row.LabID == labID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

// memStockRepo réplica en memoria del libro de existencias, con remaining
// acotado en cero. failAdjust fuerza el fallo del ajuste para probar la
// propagación de errores dentro de la transacción.
type memStockRepo struct {
	mu         sync.Mutex
	rows       map[string]*entity.Stock
	failAdjust bool
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{rows: make(map[string]*entity.Stock)}
}

func (r *memStockRepo) key(labID, consumableID string) string {
	return labID + "|" + consumableID
}

func (r *memStockRepo) Get(_ context.Context, labID, consumableID string) (*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[r.key(labID, consumableID)]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *memStockRepo) AdjustReceived(_ context.Context, labID, consumableID string, delta decimal.Decimal, unit string) (*entity.Stock, error) {
	if r.failAdjust {
		return nil, errors.New("ajuste de stock no disponible")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.key(labID, consumableID)
	row, ok := r.rows[key]
	if !ok {
		received := delta
		if received.IsNegative() {
			received = decimal.Zero
		}
		row = &entity.Stock{
			LabID:             labID,
			ConsumableID:      consumableID,
			ReceivedQuantity:  received,
			RemainingQuantity: received,
			Unit:              unit,
		}
		r.rows[key] = row
	} else {
		row.ReceivedQuantity = row.ReceivedQuantity.Add(delta)
		remaining := row.ReceivedQuantity.Sub(row.UsedQuantity)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		row.RemainingQuantity = remaining
	}
	copied := *row
	return &copied, nil
}

func (r *memStockRepo) AddUsage(_ context.Context, labID, consumableID string, qty decimal.Decimal) (*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[r.key(labID, consumableID)]
	if !ok {
		return nil, nil
	}
	row.UsedQuantity = row.UsedQuantity.Add(qty)
	remaining := row.ReceivedQuantity.Sub(row.UsedQuantity)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	row.RemainingQuantity = remaining
	copied := *row
	return &copied, nil
}

func (r *memStockRepo) UpsertConfig(_ context.Context, labID, consumableID string, minThreshold decimal.Decimal, expiry *time.Time, batchID string) (*entity.Stock, error) {
	return nil, errors.New("no usado en estas pruebas")
}

func (r *memStockRepo) ListByLab(_ context.Context, _ string) ([]*entity.Stock, error) {
	return nil, nil
}

func (r *memStockRepo) ListBelowThreshold(_ context.Context, _ string) ([]*entity.Stock, error) {
	return nil, nil
}

// memTxRunner invoca el cuerpo con los repositorios en memoria. No simula
// rollback; las pruebas de atomicidad real viven en el adaptador de PostgreSQL.
type memTxRunner struct {
	orderRepo repository.OrderRepository
	stockRepo repository.StockRepository
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.OrderRepository, repository.StockRepository) error) error {
	return fn(r.orderRepo, r.stockRepo)
}

func newFixture() (*orders.UseCase, *memOrderRepo, *memStockRepo) {
	orderRepo := newMemOrderRepo()
	stockRepo := newMemStockRepo()
	uc := orders.NewUseCase(&memTxRunner{orderRepo: orderRepo, stockRepo: stockRepo}, orderRepo)
	return uc, orderRepo, stockRepo
}

func mustStock(t *testing.T, repo *memStockRepo, labID, consumableID string) *entity.Stock {
	t.Helper()
	stock, err := repo.Get(context.Background(), labID, consumableID)
	require.NoError(t, err)
	require.NotNil(t, stock)
	return stock
}

func TestCreate_PendingNoMueveStock(t *testing.T) {
	uc, _, stockRepo := newFixture()

	order, err := uc.Create(context.Background(), orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status, "sin estado explícito la orden nace PENDING")

	stock, err := stockRepo.Get(context.Background(), "lab-1", "reactivo-a")
	require.NoError(t, err)
	assert.Nil(t, stock, "una orden PENDING no toca el libro")
}

func TestCreate_CompletedConciliaEnElActo(t *testing.T) {
	uc, _, stockRepo := newFixture()

	_, err := uc.Create(context.Background(), orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
		Status:       entity.OrderStatusCompleted,
	})
	require.NoError(t, err)

	stock := mustStock(t, stockRepo, "lab-1", "reactivo-a")
	assert.True(t, stock.ReceivedQuantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, stock.RemainingQuantity.Equal(decimal.NewFromInt(10)))
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	base := orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(1),
		Unit:         entity.UnitMl,
	}

	in := base
	in.LabID = ""
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.Quantity = decimal.Zero
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la cantidad debe ser positiva")

	in = base
	in.Unit = "GALONES"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.Status = "CERRADA"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_EntrarACompletedSuma(t *testing.T) {
	uc, _, stockRepo := newFixture()
	ctx := context.Background()

	order, err := uc.Create(ctx, orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(ctx, order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)

	stock := mustStock(t, stockRepo, "lab-1", "reactivo-a")
	assert.True(t, stock.ReceivedQuantity.Equal(decimal.NewFromInt(10)))
}

func TestUpdateStatus_SalirDeCompletedResta(t *testing.T) {
	uc, _, stockRepo := newFixture()
	ctx := context.Background()

	order, err := uc.Create(ctx, orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
		Status:       entity.OrderStatusCompleted,
	})
	require.NoError(t, err)

	// Degradar la orden revierte el aporte: el libro vuelve a cero.
	_, err = uc.UpdateStatus(ctx, order.ID, entity.OrderStatusValidated)
	require.NoError(t, err)

	stock := mustStock(t, stockRepo, "lab-1", "reactivo-a")
	assert.True(t, stock.ReceivedQuantity.IsZero())
	assert.True(t, stock.RemainingQuantity.IsZero())
}

func TestUpdateStatus_IdaYVueltaNoAcumula(t *testing.T) {
	uc, _, stockRepo := newFixture()
	ctx := context.Background()

	order, err := uc.Create(ctx, orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
	})
	require.NoError(t, err)

	for _, status := range []string{
		entity.OrderStatusCompleted,
		entity.OrderStatusPending,
		entity.OrderStatusCompleted,
		entity.OrderStatusDelivered,
		entity.OrderStatusCompleted,
	} {
		_, err = uc.UpdateStatus(ctx, order.ID, status)
		require.NoError(t, err)
	}

	// Tres entradas y dos salidas de COMPLETED: el aporte neto es una sola qty.
	stock := mustStock(t, stockRepo, "lab-1", "reactivo-a")
	assert.True(t, stock.ReceivedQuantity.Equal(decimal.NewFromInt(10)))
}

func TestUpdateStatus_OrdenInexistente(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.UpdateStatus(context.Background(), "no-existe", entity.OrderStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.UpdateStatus(context.Background(), "alguna", "CERRADA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_FalloDeAjustePropaga(t *testing.T) {
	uc, _, stockRepo := newFixture()
	ctx := context.Background()

	order, err := uc.Create(ctx, orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
	})
	require.NoError(t, err)

	stockRepo.failAdjust = true
	_, err = uc.UpdateStatus(ctx, order.ID, entity.OrderStatusCompleted)
	assert.Error(t, err, "un fallo del ajuste nunca se descarta en silencio")
}

func TestDelete_CompletedRevierteAporte(t *testing.T) {
	uc, orderRepo, stockRepo := newFixture()
	ctx := context.Background()

	order, err := uc.Create(ctx, orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
		Status:       entity.OrderStatusCompleted,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, order.ID))

	gone, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	stock := mustStock(t, stockRepo, "lab-1", "reactivo-a")
	assert.True(t, stock.ReceivedQuantity.IsZero(), "borrar una orden COMPLETED revierte su aporte")
}

func TestDelete_PendingNoMueveStock(t *testing.T) {
	uc, _, stockRepo := newFixture()
	ctx := context.Background()

	order, err := uc.Create(ctx, orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(10),
		Unit:         entity.UnitMl,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, order.ID))

	stock, err := stockRepo.Get(ctx, "lab-1", "reactivo-a")
	require.NoError(t, err)
	assert.Nil(t, stock)
}

func TestDelete_OrdenInexistente(t *testing.T) {
	uc, _, _ := newFixture()
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	order, err := uc.Create(ctx, orders.CreateInput{
		LabID:        "lab-1",
		ConsumableID: "reactivo-a",
		Quantity:     decimal.NewFromInt(3),
		Unit:         entity.UnitG,
	})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
