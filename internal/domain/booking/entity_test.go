package booking

import (
	"testing"
	"time"

	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

func confirmedBooking(start time.Time) *models.Booking {
	return &models.Booking{
		Status:              string(StatusConfirmed),
		StartTime:           start,
		TierName:            string(tier.Member),
		TierIsMember:        true,
		TierDiscountPercent: 10,
	}
}

func TestTierSnapshot(t *testing.T) {
	b := confirmedBooking(time.Now())
	cap := TierSnapshot(b)

	if cap.TierName != tier.Member || !cap.IsMember || cap.DiscountPercent != 10 {
		t.Fatalf("snapshot mismatch: %+v", cap)
	}

	// Snapshot stays authoritative even if the stored tier name is junk.
	b.TierName = "something_else"
	if TierSnapshot(b).TierName != tier.NonMember {
		t.Fatal("unknown stored tier should parse to non_member")
	}
}

func TestCancel(t *testing.T) {
	policy := tier.DefaultPolicy()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("outside the cutoff", func(t *testing.T) {
		b := confirmedBooking(now.Add(72 * time.Hour))
		if err := Cancel(b, policy, now, "changed plans"); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if b.Status != string(StatusCancelled) {
			t.Fatalf("status = %s", b.Status)
		}
		if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
			t.Fatal("cancelled_at not stamped")
		}
		if b.CancellationReason != "changed plans" {
			t.Fatalf("reason = %q", b.CancellationReason)
		}
	})

	t.Run("inside the cutoff", func(t *testing.T) {
		b := confirmedBooking(now.Add(2 * time.Hour))
		err := Cancel(b, policy, now, "")
		if e := AsError(err); e == nil || e.Code != "cutoff_passed" {
			t.Fatalf("got %v, want cutoff_passed", err)
		}
		if b.Status != string(StatusConfirmed) {
			t.Fatal("failed cancel must not mutate the booking")
		}
	})
}

func TestForceCancelSkipsCutoff(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	b := confirmedBooking(now.Add(time.Hour))
	if err := ForceCancel(b, now, "payment_failed"); err != nil {
		t.Fatalf("force cancel failed: %v", err)
	}
	if b.Status != string(StatusCancelled) || b.CancellationReason != "payment_failed" {
		t.Fatalf("booking = %+v", b)
	}

	closed := confirmedBooking(now)
	closed.Status = string(StatusCompleted)
	if err := ForceCancel(closed, now, "x"); err == nil {
		t.Fatal("terminal booking should not be force-cancellable")
	}
}

func TestLifecycleActions(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	b := &models.Booking{Status: string(StatusPending)}
	if err := Confirm(b); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := Begin(b); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := Complete(b, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.CompletedAt == nil || !b.CompletedAt.Equal(now) {
		t.Fatal("completed_at not stamped")
	}

	if err := Confirm(b); err == nil {
		t.Fatal("completed booking should not re-confirm")
	}

	ns := &models.Booking{Status: string(StatusConfirmed)}
	if err := MarkNoShow(ns); err != nil {
		t.Fatalf("no-show: %v", err)
	}
	if err := MarkNoShow(&models.Booking{Status: string(StatusPending)}); err == nil {
		t.Fatal("pending booking cannot be a no-show")
	}
}
