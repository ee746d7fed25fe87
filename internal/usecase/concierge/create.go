package concierge

import (
	"context"

	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

const (
	KindPickup    = "pickup_order"
	KindConcierge = "concierge_request"
)

type CreateRequestInput struct {
	MemberID uint
	Kind     string
	Details  string
}

// CreateRequest issues pickup orders and concierge requests. They share
// the booking engine's reference generator, each kind under its own
// prefix.
type CreateRequest struct {
	repo   domain.Repository
	clock  clockpkg.Clock
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewCreateRequest(
	repo domain.Repository,
	clk clockpkg.Clock,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *CreateRequest {
	return &CreateRequest{
		repo:   repo,
		clock:  clk,
		audit:  auditDispatcher,
		logger: logger,
	}
}

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.ConciergeRequest, error) {

	var prefix string
	switch in.Kind {
	case KindPickup:
		prefix = domain.PrefixPickup
	case KindConcierge:
		prefix = domain.PrefixConcierge
	default:
		return nil, domain.NewValidation("invalid_kind", "unknown request kind")
	}
	if in.MemberID == 0 {
		return nil, domain.NewValidation("missing_member", "member id is required")
	}

	year := uc.clock.Now().Year()

	var created *models.ConciergeRequest
	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		seq, err := tx.NextReference(ctx, prefix, year)
		if err != nil {
			return err
		}

		cr := &models.ConciergeRequest{
			Reference: domain.FormatReference(prefix, year, seq),
			MemberID:  in.MemberID,
			Kind:      in.Kind,
			Details:   in.Details,
			Status:    "open",
		}
		if err := tx.CreateConciergeRequest(ctx, cr); err != nil {
			return err
		}
		created = cr
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		MemberID: &in.MemberID,
		Action:   "concierge_request_created",
		Entity:   "concierge_request",
		EntityID: &created.ID,
		Metadata: map[string]any{"reference": created.Reference, "kind": in.Kind},
	})
	uc.logger.Info("concierge request created",
		zap.String("reference", created.Reference),
		zap.String("kind", in.Kind),
	)
	return created, nil
}
