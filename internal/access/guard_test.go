package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/narwhalmedia/requestbot/internal/access"
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		allowed map[int64]bool
		open    bool
	}{
		{
			name:    "open mode",
			owner:   "",
			open:    true,
			allowed: map[int64]bool{1: true, 42: true, 0: true},
		},
		{
			name:    "owner only",
			owner:   "42",
			allowed: map[int64]bool{42: true, 43: false, 0: false},
		},
		{
			name:    "non integer owner locks everyone out",
			owner:   "alice",
			allowed: map[int64]bool{42: false, 0: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := access.NewGuard(config.AccessConfig{OwnerID: tt.owner}, logger.NewNoop())
			assert.Equal(t, tt.open, g.Open())
			for id, want := range tt.allowed {
				assert.Equal(t, want, g.Allowed(id), "user %d", id)
			}
		})
	}
}

func TestGuard_WarnsOnBadOwner(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	access.NewGuard(config.AccessConfig{OwnerID: "12a"}, logger.NewFromZap(zap.New(core)))

	entries := logs.FilterMessageSnippet("owner id").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "12a", entries[0].ContextMap()["owner_id"])
	}
}
