package httpctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comfyui-plus/backend/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()

	identity := model.Identity{UserID: 42, Username: "alice"}
	ctx := m.SetIdentityToContext(context.Background(), identity)

	got, ok := m.GetIdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestManager_MissingIdentity(t *testing.T) {
	m := NewManager()

	_, ok := m.GetIdentityFromContext(context.Background())
	assert.False(t, ok)
}

func TestManager_OverwriteKeepsLatest(t *testing.T) {
	m := NewManager()

	ctx := m.SetIdentityToContext(context.Background(), model.Identity{UserID: 1, Username: "first"})
	ctx = m.SetIdentityToContext(ctx, model.Identity{UserID: 2, Username: "second"})

	got, ok := m.GetIdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.UserID)
	assert.Equal(t, "second", got.Username)
}
