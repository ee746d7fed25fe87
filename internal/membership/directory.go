package membership

import (
	"context"
	"errors"

	"gorm.io/gorm"

	booking "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// GormDirectory resolves tiers from the members table.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) GetTier(ctx context.Context, memberID uint) (tier.Capability, error) {
	var m models.Member
	if err := d.db.WithContext(ctx).First(&m, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tier.Capability{}, booking.NewNotFound("member_not_found", "member not found")
		}
		return tier.Capability{}, err
	}

	if !m.Active {
		return tier.Capability{TierName: tier.NonMember}, nil
	}

	name := tier.Parse(m.TierName)
	return tier.Capability{
		TierName:        name,
		IsMember:        name != tier.NonMember,
		PriorityBooking: m.PriorityBooking,
		DiscountPercent: m.DiscountPercent,
	}, nil
}

var _ Client = (*GormDirectory)(nil)
