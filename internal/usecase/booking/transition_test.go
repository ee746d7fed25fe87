package booking

import (
	"context"
	"testing"

	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

func TestTransitionBooking(t *testing.T) {
	ctx := context.Background()

	confirmedFixture := func(t *testing.T) (*fakeRepo, *engine, *models.Booking) {
		t.Helper()
		repo := newFakeRepo()
		seedSpa(repo)
		eng := newEngine(repo, testNow)

		b, err := eng.create.Execute(ctx, slotInput(1))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := eng.payment.Succeeded(ctx, b.Reference); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		return repo, eng, b
	}

	t.Run("begin then complete", func(t *testing.T) {
		_, eng, b := confirmedFixture(t)

		started, err := eng.transition.Begin(ctx, b.ID)
		if err != nil {
			t.Fatalf("begin: %v", err)
		}
		if started.Status != "in_progress" {
			t.Fatalf("status = %s", started.Status)
		}

		done, err := eng.transition.Complete(ctx, b.ID)
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if done.Status != "completed" || done.CompletedAt == nil {
			t.Fatalf("booking = %+v", done)
		}
	})

	t.Run("complete requires in_progress", func(t *testing.T) {
		_, eng, b := confirmedFixture(t)

		_, err := eng.transition.Complete(ctx, b.ID)
		if e := domain.AsError(err); e == nil || e.Code != "invalid_state" {
			t.Fatalf("got %v, want invalid_state", err)
		}
	})

	t.Run("no-show releases the seat", func(t *testing.T) {
		repo, eng, b := confirmedFixture(t)

		ns, err := eng.transition.NoShow(ctx, b.ID)
		if err != nil {
			t.Fatalf("no-show: %v", err)
		}
		if ns.Status != "no_show" {
			t.Fatalf("status = %s", ns.Status)
		}
		if repo.slots[1].CurrentBookings != 0 {
			t.Fatalf("slot usage = %d, want 0", repo.slots[1].CurrentBookings)
		}
	})

	t.Run("no-show on a pending booking is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		seedSpa(repo)
		eng := newEngine(repo, testNow)

		b, err := eng.create.Execute(ctx, slotInput(1))
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		_, err = eng.transition.NoShow(ctx, b.ID)
		if e := domain.AsError(err); e == nil || e.Code != "invalid_state" {
			t.Fatalf("got %v, want invalid_state", err)
		}
		if repo.slots[1].CurrentBookings != 1 {
			t.Fatal("failed no-show must not release the seat")
		}
	})
}
