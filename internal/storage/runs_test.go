package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/model"
)

func TestSQLiteStorage_Runs(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.GetLatestRun(ctx, model.StageExtract)
	require.ErrorIs(t, err, common.ErrNotFound)

	older := &model.Run{ID: "run-1", Stage: model.StageExtract, StartedAt: baseTime}
	newer := &model.Run{ID: "run-2", Stage: model.StageExtract, StartedAt: baseTime.Add(time.Hour)}
	other := &model.Run{ID: "run-3", Stage: model.StageCategorize, StartedAt: baseTime.Add(2 * time.Hour)}
	for _, r := range []*model.Run{older, newer, other} {
		require.NoError(t, store.SaveRun(ctx, r))
	}

	finished := baseTime.Add(90 * time.Minute)
	newer.FinishedAt = &finished
	newer.Total, newer.Processed, newer.Skipped, newer.Failed = 10, 7, 2, 1
	require.NoError(t, store.SaveRun(ctx, newer))

	got, err := store.GetLatestRun(ctx, model.StageExtract)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	assert.ErrorIs(t, store.SaveRun(ctx, &model.Run{ID: "x", Stage: "load", StartedAt: baseTime}), ErrInvalidRun)
}
