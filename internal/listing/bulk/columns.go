package bulk

import "github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"

// Column tokens recognized in the import spreadsheet header.
const (
	ColName         = "name"
	ColOwnerName    = "ownerName"
	ColContactPhone = "contactPhone"
	ColContactEmail = "contactEmail"
	ColGender       = "gender"
	ColAddress      = "address"
	ColLocation     = "location"
	ColPincode      = "pincode"
	ColDescription  = "description"
	ColTotalBeds    = "totalBeds"
	ColDeposit      = "deposit"
	ColLockIn       = "lockInPeriod"
	ColMaintenance  = "maintenanceCharges"

	ColWashroomType = "amenities_washroomType"
	ColFurnishing   = "amenities_furnishing"

	availableSuffix = "_available"
	priceSuffix     = "_price"
	amenityPrefix   = "amenities_"
	nearbyPrefix    = "nearbyPlaces_"
)

// amenityFlags maps amenity column keys to their flag on domain.Amenities.
var amenityFlags = []struct {
	key string
	ptr func(*domain.Amenities) *bool
}{
	{"wifi", func(a *domain.Amenities) *bool { return &a.WiFi }},
	{"ac", func(a *domain.Amenities) *bool { return &a.AC }},
	{"tv", func(a *domain.Amenities) *bool { return &a.TV }},
	{"fridge", func(a *domain.Amenities) *bool { return &a.Fridge }},
	{"washingMachine", func(a *domain.Amenities) *bool { return &a.WashingMachine }},
	{"powerBackup", func(a *domain.Amenities) *bool { return &a.PowerBackup }},
	{"lift", func(a *domain.Amenities) *bool { return &a.Lift }},
	{"parking", func(a *domain.Amenities) *bool { return &a.Parking }},
	{"security", func(a *domain.Amenities) *bool { return &a.Security }},
	{"cctv", func(a *domain.Amenities) *bool { return &a.CCTV }},
	{"housekeeping", func(a *domain.Amenities) *bool { return &a.Housekeeping }},
	{"meals", func(a *domain.Amenities) *bool { return &a.Meals }},
	{"laundry", func(a *domain.Amenities) *bool { return &a.Laundry }},
	{"gym", func(a *domain.Amenities) *bool { return &a.Gym }},
	{"hotWater", func(a *domain.Amenities) *bool { return &a.HotWater }},
	{"studyTable", func(a *domain.Amenities) *bool { return &a.StudyTable }},
	{"wardrobe", func(a *domain.Amenities) *bool { return &a.Wardrobe }},
}

var nearbyFields = []struct {
	key string
	ptr func(*domain.NearbyPlaces) *string
}{
	{"busStop", func(n *domain.NearbyPlaces) *string { return &n.BusStop }},
	{"metroStation", func(n *domain.NearbyPlaces) *string { return &n.MetroStation }},
	{"railwayStation", func(n *domain.NearbyPlaces) *string { return &n.RailwayStation }},
	{"hospital", func(n *domain.NearbyPlaces) *string { return &n.Hospital }},
	{"market", func(n *domain.NearbyPlaces) *string { return &n.Market }},
	{"college", func(n *domain.NearbyPlaces) *string { return &n.College }},
	{"gym", func(n *domain.NearbyPlaces) *string { return &n.Gym }},
}

// Columns returns every recognized header token in template order.
func Columns() []string {
	cols := []string{
		ColName, ColOwnerName, ColContactPhone, ColContactEmail, ColGender,
		ColAddress, ColLocation, ColPincode, ColDescription, ColTotalBeds,
	}
	for _, tier := range domain.TierNames {
		cols = append(cols, string(tier)+availableSuffix, string(tier)+priceSuffix)
	}
	cols = append(cols, ColDeposit, ColLockIn, ColMaintenance)
	for _, f := range amenityFlags {
		cols = append(cols, amenityPrefix+f.key)
	}
	cols = append(cols, ColWashroomType, ColFurnishing)
	for _, f := range nearbyFields {
		cols = append(cols, nearbyPrefix+f.key)
	}
	return cols
}
