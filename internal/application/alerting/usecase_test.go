package alerting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labops-api/internal/application/alerting"
	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
)

func seedWithStatus(t *testing.T, repo *memAlertRepo, id, status string) {
	t.Helper()
	alert := pendingAlert(id, "tec-1")
	require.NoError(t, repo.Create(context.Background(), alert))
	if status != entity.AlertStatusPending {
		var sentAt *time.Time
		if status == entity.AlertStatusSent {
			now := time.Now()
			sentAt = &now
		}
		require.NoError(t, repo.UpdateStatus(context.Background(), id, status, sentAt))
	}
}

func TestMarkRead_SoloDesdeSent(t *testing.T) {
	repo := newMemAlertRepo()
	uc := alerting.NewUseCase(repo)
	ctx := context.Background()

	seedWithStatus(t, repo, "a1", entity.AlertStatusSent)
	require.NoError(t, uc.MarkRead(ctx, "a1"))

	alert, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusRead, alert.Status)
	assert.NotNil(t, alert.SentAt, "marcar leída conserva la fecha de envío")
}

func TestMarkRead_Conflictos(t *testing.T) {
	repo := newMemAlertRepo()
	uc := alerting.NewUseCase(repo)
	ctx := context.Background()

	seedWithStatus(t, repo, "pendiente", entity.AlertStatusPending)
	assert.ErrorIs(t, uc.MarkRead(ctx, "pendiente"), domain.ErrConflict)

	seedWithStatus(t, repo, "fallida", entity.AlertStatusFailed)
	assert.ErrorIs(t, uc.MarkRead(ctx, "fallida"), domain.ErrConflict)

	assert.ErrorIs(t, uc.MarkRead(ctx, "no-existe"), domain.ErrNotFound)
}

func TestReset_SoloDesdeFailed(t *testing.T) {
	repo := newMemAlertRepo()
	uc := alerting.NewUseCase(repo)
	ctx := context.Background()

	seedWithStatus(t, repo, "a1", entity.AlertStatusFailed)
	require.NoError(t, uc.Reset(ctx, "a1"))

	alert, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusPending, alert.Status, "el reset devuelve la alerta al despacho")

	seedWithStatus(t, repo, "enviada", entity.AlertStatusSent)
	assert.ErrorIs(t, uc.Reset(ctx, "enviada"), domain.ErrConflict)

	assert.ErrorIs(t, uc.Reset(ctx, "no-existe"), domain.ErrNotFound)
}

func TestListByStatus_ValidaEnum(t *testing.T) {
	repo := newMemAlertRepo()
	uc := alerting.NewUseCase(repo)
	ctx := context.Background()

	_, err := uc.ListByStatus(ctx, "ARCHIVADA", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	seedWithStatus(t, repo, "a1", entity.AlertStatusPending)
	seedWithStatus(t, repo, "a2", entity.AlertStatusFailed)

	list, err := uc.ListByStatus(ctx, entity.AlertStatusFailed, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a2", list[0].ID)
}
