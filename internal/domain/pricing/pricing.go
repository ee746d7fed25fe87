package pricing

// Addon is a priced extra attached to a booking.
type Addon struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

func (a Addon) Total() float64 {
	return a.UnitPrice * float64(a.Quantity)
}

// Quote is the full price breakdown persisted on the booking and reused
// downstream for invoicing.
type Quote struct {
	BasePrice       float64
	AddonsTotal     float64
	DiscountApplied float64
	FinalTotal      float64
}

// Calculate is a pure function of its inputs: identical inputs always
// produce an identical quote. discountPercent is expressed 0..100.
func Calculate(basePrice float64, addons []Addon, discountPercent float64) Quote {
	addonsTotal := 0.0
	for _, a := range addons {
		addonsTotal += a.Total()
	}

	discount := (basePrice + addonsTotal) * discountPercent / 100

	final := basePrice + addonsTotal - discount
	if final < 0 {
		final = 0
	}

	return Quote{
		BasePrice:       basePrice,
		AddonsTotal:     addonsTotal,
		DiscountApplied: discount,
		FinalTotal:      final,
	}
}

// SlotPrice applies the room and slot modifiers to a tier base price.
func SlotPrice(servicePrice, roomMultiplier, slotModifier float64) float64 {
	if roomMultiplier <= 0 {
		roomMultiplier = 1
	}
	if slotModifier <= 0 {
		slotModifier = 1
	}
	return servicePrice * roomMultiplier * slotModifier
}
