package concierge

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// fakeRepo implements only the surface the concierge flow touches;
// everything else panics if reached.
type fakeRepo struct {
	domain.Repository

	counters map[string]int64
	created  []models.ConciergeRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{counters: map[string]int64{}}
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) NextReference(ctx context.Context, prefix string, year int) (int64, error) {
	key := fmt.Sprintf("%s-%d", prefix, year)
	r.counters[key]++
	return r.counters[key], nil
}

func (r *fakeRepo) CreateConciergeRequest(ctx context.Context, cr *models.ConciergeRequest) error {
	cr.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *cr)
	return nil
}

type noopAudit struct{}

func (noopAudit) Log(memberID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func newUsecase(repo *fakeRepo) *CreateRequest {
	logger := zap.NewNop()
	return NewCreateRequest(
		repo,
		clockpkg.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)),
		audit.NewDispatcher(noopAudit{}, logger),
		logger,
	)
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("pickup orders get PO references", func(t *testing.T) {
		repo := newFakeRepo()
		uc := newUsecase(repo)

		cr, err := uc.Execute(ctx, CreateRequestInput{MemberID: 1, Kind: KindPickup, Details: "robe and slippers"})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if cr.Reference != "PO-2025-000001" {
			t.Fatalf("reference = %s", cr.Reference)
		}
		if cr.Status != "open" {
			t.Fatalf("status = %s", cr.Status)
		}
	})

	t.Run("concierge requests get CR references on their own sequence", func(t *testing.T) {
		repo := newFakeRepo()
		uc := newUsecase(repo)

		if _, err := uc.Execute(ctx, CreateRequestInput{MemberID: 1, Kind: KindPickup}); err != nil {
			t.Fatalf("pickup: %v", err)
		}
		cr, err := uc.Execute(ctx, CreateRequestInput{MemberID: 1, Kind: KindConcierge, Details: "dinner reservation"})
		if err != nil {
			t.Fatalf("concierge: %v", err)
		}
		// Each prefix counts independently.
		if cr.Reference != "CR-2025-000001" {
			t.Fatalf("reference = %s", cr.Reference)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		uc := newUsecase(newFakeRepo())
		_, err := uc.Execute(ctx, CreateRequestInput{MemberID: 1, Kind: "laundry"})
		if e := domain.AsError(err); e == nil || e.Code != "invalid_kind" {
			t.Fatalf("got %v, want invalid_kind", err)
		}
	})

	t.Run("missing member", func(t *testing.T) {
		uc := newUsecase(newFakeRepo())
		_, err := uc.Execute(ctx, CreateRequestInput{Kind: KindPickup})
		if e := domain.AsError(err); e == nil || e.Code != "missing_member" {
			t.Fatalf("got %v, want missing_member", err)
		}
	})
}
