package membership

import (
	"context"

	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
)

// Client is the membership collaborator: the engine only ever reads the
// requester's tier capability through this interface.
type Client interface {
	GetTier(ctx context.Context, memberID uint) (tier.Capability, error)
}
