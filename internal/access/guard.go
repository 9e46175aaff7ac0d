// Package access gates bot interactions to a single owner.
package access

import (
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
)

// Guard decides whether a chat user may talk to the bot.
//
// Without an owner every user is allowed. With an owner only that user id
// is; an owner value that does not parse as an integer allows nobody.
type Guard struct {
	ownerID    int64
	restricted bool
	locked     bool
}

// NewGuard builds a guard from the access configuration.
func NewGuard(cfg config.AccessConfig, log interfaces.Logger) *Guard {
	id, restricted, err := cfg.OwnerUserID()
	if err != nil {
		log.Warn("owner id is not an integer, every user will be refused",
			interfaces.String("owner_id", cfg.OwnerID),
			interfaces.Error(err))
		return &Guard{restricted: true, locked: true}
	}
	return &Guard{ownerID: id, restricted: restricted}
}

// Open reports whether the guard lets everyone in.
func (g *Guard) Open() bool {
	return !g.restricted
}

// Allowed reports whether userID may interact. Zero stands for an update
// without a sender.
func (g *Guard) Allowed(userID int64) bool {
	if !g.restricted {
		return true
	}
	if g.locked || userID == 0 {
		return false
	}
	return userID == g.ownerID
}
