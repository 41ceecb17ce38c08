package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_AppendAndList(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	first, err := repo.Append(ctx, Entry{Actor: "admin", Subject: "jdoe", Action: "Added User jdoe"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Timestamp.IsZero())
	assert.Equal(t, "Added User jdoe", first.Action)

	_, err = repo.Append(ctx, Entry{Actor: "admin", Subject: "jdoe", Action: "Deleted User jdoe"})
	require.NoError(t, err)

	history, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first.
	assert.Equal(t, "Deleted User jdoe", history[0].Action)
	assert.Equal(t, "Added User jdoe", history[1].Action)
}

func TestInMemoryRepository_EmptyList(t *testing.T) {
	repo := NewInMemoryRepository()

	history, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}
