package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foxsportsgoon/goonbot/internal/domain/rawdata"
)

func TestPageArchive_UpsertReplacesByKindAndKey(t *testing.T) {
	repo := NewPageArchiveRepository()
	ctx := context.Background()

	first := rawdata.NewPayload("xperteleven", rawdata.KindMatchPage, "8001", "<html>v1</html>", time.Now())
	require.NoError(t, repo.Upsert(ctx, first))

	second := rawdata.NewPayload("xperteleven", rawdata.KindMatchPage, "8001", "<html>v2</html>", time.Now())
	require.NoError(t, repo.Upsert(ctx, second))

	got, ok, err := repo.Latest(ctx, rawdata.KindMatchPage, "8001")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "<html>v2</html>", got.Body)
	require.Equal(t, second.BodyHash, got.BodyHash)
}

func TestPageArchive_LatestMissing(t *testing.T) {
	repo := NewPageArchiveRepository()

	_, ok, err := repo.Latest(context.Background(), rawdata.KindStandingsPage, "nope")
	require.NoError(t, err)
	require.False(t, ok)
}
