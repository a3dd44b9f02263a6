package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotifier_PushNewestFirst(t *testing.T) {
	n := NewNotifier(zap.NewNop())
	n.Success("logged in", "Login")
	n.Error("server error", "Server")

	items := n.Items()
	require.Len(t, items, 2)
	assert.Equal(t, LevelError, items[0].Level)
	assert.Equal(t, LevelSuccess, items[1].Level)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestNotifier_Dismiss(t *testing.T) {
	n := NewNotifier(zap.NewNop())
	keep := n.Info("stays", "")
	gone := n.Warning("goes", "")

	n.Dismiss(gone.ID)

	items := n.Items()
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)

	// Dismissing an unknown id is a no-op.
	n.Dismiss("nope")
	assert.Len(t, n.Items(), 1)
}

func TestNotifier_Bounded(t *testing.T) {
	n := NewNotifier(zap.NewNop())
	for i := 0; i < maxItems+10; i++ {
		n.Info("msg", "")
	}
	assert.Len(t, n.Items(), maxItems)
}

func TestNotifier_MarkAllReadAndClear(t *testing.T) {
	n := NewNotifier(zap.NewNop())
	n.Info("a", "")
	n.Info("b", "")

	n.MarkAllRead()
	for _, item := range n.Items() {
		assert.True(t, item.Read)
	}

	n.Clear()
	assert.Empty(t, n.Items())
}
