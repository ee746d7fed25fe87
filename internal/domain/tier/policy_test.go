package tier

import (
	"testing"
	"time"
)

var (
	nonMember = Capability{TierName: NonMember}
	member    = Capability{TierName: Member, IsMember: true}
	premium   = Capability{TierName: Premium, IsMember: true, PriorityBooking: true}
	vip       = Capability{TierName: VIPUnlimited, IsMember: true, PriorityBooking: true}
)

func TestMaxAdvanceDays(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		name string
		cap  Capability
		want int
	}{
		{"non_member", nonMember, 3},
		{"member", member, 30},
		{"premium", premium, 60},
		{"vip", vip, 90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.MaxAdvanceDays(tc.cap); got != tc.want {
				t.Fatalf("MaxAdvanceDays(%s) = %d, want %d", tc.cap.TierName, got, tc.want)
			}
		})
	}
}

func TestWithinWindow(t *testing.T) {
	p := DefaultPolicy()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	day := func(offset int) time.Time {
		return time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	cases := []struct {
		name string
		cap  Capability
		date time.Time
		want bool
	}{
		{"non_member at limit", nonMember, day(3), true},
		{"non_member beyond limit", nonMember, day(4), false},
		{"member at limit", member, day(30), true},
		{"member beyond limit", member, day(31), false},
		{"premium at limit", premium, day(60), true},
		{"premium beyond limit", premium, day(61), false},
		{"vip at limit", vip, day(90), true},
		{"vip beyond limit", vip, day(91), false},
		{"past date rejected", vip, day(-2), false},
		{"same day allowed", nonMember, day(0), true},
		{"last day open until midnight", member, day(30).Add(9*time.Hour + 59*time.Minute), true},
		{"early hour past the limit still rejected", member, day(31).Add(-13 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.WithinWindow(tc.cap, now, tc.date); got != tc.want {
				t.Fatalf("WithinWindow = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCancelCutoff(t *testing.T) {
	p := DefaultPolicy()

	if got := p.CancelCutoff(member); got != 24*time.Hour {
		t.Fatalf("member cutoff = %v, want 24h", got)
	}
	if got := p.CancelCutoff(nonMember); got != 48*time.Hour {
		t.Fatalf("non-member cutoff = %v, want 48h", got)
	}
	if got := p.CancelCutoff(vip); got != 24*time.Hour {
		t.Fatalf("vip cutoff = %v, want 24h", got)
	}
}

func TestSlotOpenTo(t *testing.T) {
	until := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("member gate blocks non-members before the boundary", func(t *testing.T) {
		before := until.Add(-time.Second)
		if SlotOpenTo(nonMember, before, until, nil) {
			t.Fatal("non-member admitted one second before member_only_until")
		}
		if !SlotOpenTo(member, before, until, nil) {
			t.Fatal("member rejected by member-only gate")
		}
	})

	t.Run("gate opens exactly at the boundary instant", func(t *testing.T) {
		if !SlotOpenTo(nonMember, until, until, nil) {
			t.Fatal("non-member rejected at the boundary instant")
		}
		if !SlotOpenTo(nonMember, until.Add(time.Second), until, nil) {
			t.Fatal("non-member rejected after the boundary")
		}
	})

	t.Run("vip gate blocks everyone below vip", func(t *testing.T) {
		before := until.Add(-time.Minute)
		if SlotOpenTo(premium, before, time.Time{}, &until) {
			t.Fatal("premium admitted during vip-only period")
		}
		if !SlotOpenTo(vip, before, time.Time{}, &until) {
			t.Fatal("vip rejected by vip-only gate")
		}
	})

	t.Run("both gates stack", func(t *testing.T) {
		vipUntil := until.Add(-time.Hour)
		now := vipUntil.Add(-time.Minute)
		if SlotOpenTo(member, now, until, &vipUntil) {
			t.Fatal("member admitted while vip gate still closed")
		}
	})

	t.Run("zero gates admit everyone", func(t *testing.T) {
		if !SlotOpenTo(nonMember, until, time.Time{}, nil) {
			t.Fatal("ungated slot rejected a non-member")
		}
	})
}

func TestParse(t *testing.T) {
	if Parse("premium") != Premium {
		t.Fatal("premium did not round-trip")
	}
	if Parse("gold") != NonMember {
		t.Fatal("unknown tier should fall back to non_member")
	}
	if Parse("") != NonMember {
		t.Fatal("empty tier should fall back to non_member")
	}
}
