package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/repo"
)

func tipFixture(destination, place string) domain.Tip {
	return domain.Tip{
		SessionID:   uuid.New(),
		Destination: destination,
		Place:       place,
		Text:        "Best ramen after 10pm",
		Rating:      5,
		IsLocal:     true,
		Author:      "Ana Lima",
	}
}

func TestTipRepo_Create(t *testing.T) {
	r := repo.NewTipRepo(beginTx(t))

	got, err := r.Create(context.Background(), tipFixture("Tokyo", "Golden Gai"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Golden Gai", got.Place)
	assert.Equal(t, 5, got.Rating)
	assert.True(t, got.IsLocal)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestTipRepo_ListByDestination(t *testing.T) {
	r := repo.NewTipRepo(beginTx(t))
	ctx := context.Background()

	for _, place := range []string{"Golden Gai", "Tsukiji", "Yanaka"} {
		_, err := r.Create(ctx, tipFixture("Tokyo", place))
		require.NoError(t, err)
	}
	_, err := r.Create(ctx, tipFixture("Osaka", "Dotonbori"))
	require.NoError(t, err)

	got, err := r.ListByDestination(ctx, "tokyo", 2)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, tip := range got {
		assert.Equal(t, "Tokyo", tip.Destination)
	}
}

func TestTipRepo_ListByDestination_Empty(t *testing.T) {
	r := repo.NewTipRepo(beginTx(t))

	got, err := r.ListByDestination(context.Background(), "Nowhere", 5)

	require.NoError(t, err)
	assert.Empty(t, got)
}
