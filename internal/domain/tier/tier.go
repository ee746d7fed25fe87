package tier

// Name is a closed membership-tier enum.
type Name string

const (
	NonMember    Name = "non_member"
	Member       Name = "member"
	Premium      Name = "premium"
	VIPUnlimited Name = "vip_unlimited"
)

// Capability is the requester's tier snapshot as reported by the
// membership collaborator. DiscountPercent is expressed 0..100.
type Capability struct {
	TierName        Name    `json:"tier_name"`
	IsMember        bool    `json:"is_member"`
	PriorityBooking bool    `json:"priority_booking"`
	DiscountPercent float64 `json:"discount_percent"`
}

// IsVIP reports whether the capability grants VIP/unlimited access.
func (c Capability) IsVIP() bool {
	return c.TierName == VIPUnlimited
}

func Parse(s string) Name {
	switch Name(s) {
	case Member, Premium, VIPUnlimited:
		return Name(s)
	default:
		return NonMember
	}
}
