package bulk

import (
	"math"
	"strings"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
)

// Row is one spreadsheet row keyed by header token. Values may be strings,
// numbers or absent.
type Row map[string]any

// TransformRow maps a flat row onto a fully defaulted listing. Unknown
// columns are ignored. Media lists start empty.
func TransformRow(row Row) domain.Listing {
	l := *domain.NewListing()

	l.Name = toText(row[ColName])
	l.OwnerName = toText(row[ColOwnerName])
	l.ContactPhone = toText(row[ColContactPhone])
	l.ContactEmail = toText(row[ColContactEmail])
	l.Gender = parseGender(row[ColGender])
	l.Address = toText(row[ColAddress])
	l.Location = toText(row[ColLocation])
	l.Pincode = toText(row[ColPincode])
	l.Description = toText(row[ColDescription])
	l.TotalBeds = toCount(row[ColTotalBeds])

	for _, name := range domain.TierNames {
		*l.Sharing.Tier(name) = domain.SharingTier{
			Available: StringToBoolean(row[string(name)+availableSuffix]),
			Price:     ToNumberOrZero(row[string(name)+priceSuffix]),
		}
	}

	if deposit := toText(row[ColDeposit]); deposit != "" {
		l.Deposit = deposit
	}
	l.LockInPeriod = ToNumberOrDefault(row[ColLockIn], domain.DefaultLockInMonths)
	l.Maintenance = ToNumberOrZero(row[ColMaintenance])

	for _, f := range amenityFlags {
		*f.ptr(&l.Amenities) = StringToBoolean(row[amenityPrefix+f.key])
	}
	l.Amenities.Washroom = parseWashroom(row[ColWashroomType])
	l.Amenities.Furnishing = parseFurnishing(row[ColFurnishing])

	for _, f := range nearbyFields {
		*f.ptr(&l.NearbyPlaces) = toText(row[nearbyPrefix+f.key])
	}
	return l
}

// toCount converts a cell to an int, truncating toward zero and clamping to
// the 32-bit range so oversized cells stay well defined.
func toCount(v any) int {
	n := math.Trunc(ToNumberOrZero(v))
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int(n)
}

func parseGender(v any) domain.Gender {
	switch g := domain.Gender(strings.ToLower(toText(v))); g {
	case domain.GenderMale, domain.GenderFemale, domain.GenderUnisex:
		return g
	}
	return domain.GenderUnisex
}

func parseWashroom(v any) domain.WashroomType {
	switch w := domain.WashroomType(strings.ToLower(toText(v))); w {
	case domain.WashroomAttached, domain.WashroomCommon, domain.WashroomBoth:
		return w
	}
	return domain.WashroomAttached
}

func parseFurnishing(v any) domain.Furnishing {
	switch f := domain.Furnishing(strings.ToLower(toText(v))); f {
	case domain.FurnishingFully, domain.FurnishingSemi, domain.FurnishingUnfurnished:
		return f
	}
	return domain.FurnishingFully
}
