package domain

// TierName identifies a sharing tier by its occupancy, e.g. "oneSharing".
type TierName string

const (
	TierOne   TierName = "oneSharing"
	TierTwo   TierName = "twoSharing"
	TierThree TierName = "threeSharing"
	TierFour  TierName = "fourSharing"
	TierFive  TierName = "fiveSharing"
)

// TierNames lists the tiers in occupancy order.
var TierNames = []TierName{TierOne, TierTwo, TierThree, TierFour, TierFive}

// Tier returns a pointer to the named tier, or nil for an unknown name.
func (s *Sharing) Tier(name TierName) *SharingTier {
	switch name {
	case TierOne:
		return &s.One
	case TierTwo:
		return &s.Two
	case TierThree:
		return &s.Three
	case TierFour:
		return &s.Four
	case TierFive:
		return &s.Five
	}
	return nil
}

// AvailablePrices returns the prices of the available tiers keyed by tier.
// Unavailable tiers are left out regardless of their stored price.
func (s Sharing) AvailablePrices() map[TierName]float64 {
	prices := make(map[TierName]float64, len(TierNames))
	for _, name := range TierNames {
		t := s.Tier(name)
		if t.Available {
			prices[name] = t.Price
		}
	}
	return prices
}

// MinPrice is the lowest positive price among available tiers. ok is false
// when no available tier carries a price.
func (s Sharing) MinPrice() (price float64, ok bool) {
	for _, name := range TierNames {
		t := s.Tier(name)
		if !t.Available || t.Price <= 0 {
			continue
		}
		if !ok || t.Price < price {
			price, ok = t.Price, true
		}
	}
	return price, ok
}
