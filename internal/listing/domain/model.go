package domain

import "time"

type ListingStatus string

const (
	StatusInitial      ListingStatus = "initial"
	StatusVerification ListingStatus = "verification"
	StatusListing      ListingStatus = "listing"
	StatusActive       ListingStatus = "active"

	// StatusDraft only labels the unsaved form draft in listing tables.
	// It is never persisted.
	StatusDraft ListingStatus = "draft"
)

// Valid reports whether s is a persistable lifecycle status.
func (s ListingStatus) Valid() bool {
	switch s {
	case StatusInitial, StatusVerification, StatusListing, StatusActive:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

type WashroomType string

const (
	WashroomAttached WashroomType = "attached"
	WashroomCommon   WashroomType = "common"
	WashroomBoth     WashroomType = "both"
)

type Furnishing string

const (
	FurnishingFully       Furnishing = "fully"
	FurnishingSemi        Furnishing = "semi"
	FurnishingUnfurnished Furnishing = "unfurnished"
)

type MediaCategory string

const (
	CategoryRoom     MediaCategory = "room"
	CategoryWashroom MediaCategory = "washroom"
	CategoryExterior MediaCategory = "exterior"
	CategoryCommon   MediaCategory = "common"
	CategoryKitchen  MediaCategory = "kitchen"
	CategoryOther    MediaCategory = "other"
)

// Coordinates is a geocoded lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// SharingTier is one room-occupancy pricing option.
type SharingTier struct {
	Available bool    `json:"available" bson:"available"`
	Price     float64 `json:"price" bson:"price"`
}

// Sharing holds the five independent occupancy tiers. Every tier is a value,
// so an unavailable tier still reads as {false, 0}.
type Sharing struct {
	One   SharingTier `json:"oneSharing" bson:"oneSharing"`
	Two   SharingTier `json:"twoSharing" bson:"twoSharing"`
	Three SharingTier `json:"threeSharing" bson:"threeSharing"`
	Four  SharingTier `json:"fourSharing" bson:"fourSharing"`
	Five  SharingTier `json:"fiveSharing" bson:"fiveSharing"`
}

type AdditionalCharge struct {
	Name        string  `json:"name" bson:"name" validate:"required"`
	Amount      float64 `json:"amount" bson:"amount" validate:"gte=0"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Required    bool    `json:"required" bson:"required"`
}

type Amenities struct {
	WiFi           bool         `json:"wifi" bson:"wifi"`
	AC             bool         `json:"ac" bson:"ac"`
	TV             bool         `json:"tv" bson:"tv"`
	Fridge         bool         `json:"fridge" bson:"fridge"`
	WashingMachine bool         `json:"washingMachine" bson:"washingMachine"`
	PowerBackup    bool         `json:"powerBackup" bson:"powerBackup"`
	Lift           bool         `json:"lift" bson:"lift"`
	Parking        bool         `json:"parking" bson:"parking"`
	Security       bool         `json:"security" bson:"security"`
	CCTV           bool         `json:"cctv" bson:"cctv"`
	Housekeeping   bool         `json:"housekeeping" bson:"housekeeping"`
	Meals          bool         `json:"meals" bson:"meals"`
	Laundry        bool         `json:"laundry" bson:"laundry"`
	Gym            bool         `json:"gym" bson:"gym"`
	HotWater       bool         `json:"hotWater" bson:"hotWater"`
	StudyTable     bool         `json:"studyTable" bson:"studyTable"`
	Wardrobe       bool         `json:"wardrobe" bson:"wardrobe"`
	Washroom       WashroomType `json:"washroomType" bson:"washroomType"`
	Furnishing     Furnishing   `json:"furnishing" bson:"furnishing"`
}

// NearbyPlaces are free-text distance strings such as "500 m".
type NearbyPlaces struct {
	BusStop        string `json:"busStop" bson:"busStop"`
	MetroStation   string `json:"metroStation" bson:"metroStation"`
	RailwayStation string `json:"railwayStation" bson:"railwayStation"`
	Hospital       string `json:"hospital" bson:"hospital"`
	Market         string `json:"market" bson:"market"`
	College        string `json:"college" bson:"college"`
	Gym            string `json:"gym" bson:"gym"`
}

type Photo struct {
	URL      string        `json:"url" bson:"url"`
	Category MediaCategory `json:"category" bson:"category"`
	Caption  string        `json:"caption,omitempty" bson:"caption,omitempty"`
}

type Video struct {
	VideoURL     string        `json:"videoUrl" bson:"videoUrl"`
	ThumbnailURL string        `json:"thumbnailUrl" bson:"thumbnailUrl"`
	Category     MediaCategory `json:"category" bson:"category"`
	Caption      string        `json:"caption,omitempty" bson:"caption,omitempty"`
	Duration     float64       `json:"duration" bson:"duration"`
}

// Listing is a PG accommodation record.
type Listing struct {
	ID           string        `json:"id,omitempty" bson:"-"`
	Name         string        `json:"name" bson:"name" validate:"required"`
	OwnerName    string        `json:"ownerName" bson:"ownerName"`
	ContactPhone string        `json:"contactPhone" bson:"contactPhone"`
	ContactEmail string        `json:"contactEmail" bson:"contactEmail" validate:"omitempty,email"`
	Gender       Gender        `json:"gender" bson:"gender" validate:"oneof=male female unisex"`
	Address      string        `json:"address" bson:"address"`
	Location     string        `json:"location" bson:"location"`
	Pincode      string        `json:"pincode" bson:"pincode"`
	Coordinates  *Coordinates  `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Description  string        `json:"description" bson:"description"`
	Status       ListingStatus `json:"status" bson:"status"`

	TotalBeds int     `json:"totalBeds" bson:"totalBeds" validate:"gte=0"`
	Sharing   Sharing `json:"sharing" bson:"sharing"`

	Deposit           string             `json:"deposit" bson:"deposit"`
	LockInPeriod      float64            `json:"lockInPeriod" bson:"lockInPeriod" validate:"gte=0"`
	Maintenance       float64            `json:"maintenanceCharges" bson:"maintenanceCharges" validate:"gte=0"`
	AdditionalCharges []AdditionalCharge `json:"additionalCharges" bson:"additionalCharges" validate:"dive"`

	Amenities    Amenities    `json:"amenities" bson:"amenities"`
	NearbyPlaces NearbyPlaces `json:"nearbyPlaces" bson:"nearbyPlaces"`

	Photos []Photo `json:"photos" bson:"photos"`
	Videos []Video `json:"videos" bson:"videos"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// DefaultDeposit and DefaultLockInMonths apply to new and imported records.
const (
	DefaultDeposit      = "1 month"
	DefaultLockInMonths = 3
)

// NewListing returns an empty record with every default applied.
func NewListing() *Listing {
	return &Listing{
		Gender:            GenderUnisex,
		Status:            StatusInitial,
		Deposit:           DefaultDeposit,
		LockInPeriod:      DefaultLockInMonths,
		AdditionalCharges: []AdditionalCharge{},
		Amenities: Amenities{
			Washroom:   WashroomAttached,
			Furnishing: FurnishingFully,
		},
		Photos: []Photo{},
		Videos: []Video{},
	}
}

// Filter is used by the public search.
type Filter struct {
	Query    string
	Gender   Gender
	Status   ListingStatus
	MinPrice float64
	MaxPrice float64
	Page     int64
	Limit    int64
}

type CallbackType string

const (
	CallbackTypeCallback CallbackType = "callback"
	CallbackTypeVisit    CallbackType = "visit"
)

type CallbackStatus string

const (
	CallbackPending   CallbackStatus = "pending"
	CallbackContacted CallbackStatus = "contacted"
	CallbackCompleted CallbackStatus = "completed"
	CallbackCancelled CallbackStatus = "cancelled"
)

func (s CallbackStatus) Valid() bool {
	switch s {
	case CallbackPending, CallbackContacted, CallbackCompleted, CallbackCancelled:
		return true
	}
	return false
}

// CallbackRequest is a prospective tenant asking to be called back or to
// schedule a visit to a PG.
type CallbackRequest struct {
	ID            string         `json:"id,omitempty" bson:"-"`
	PGID          string         `json:"pgId" bson:"pgId" validate:"required"`
	PGName        string         `json:"pgName" bson:"pgName"`
	Name          string         `json:"name" bson:"name" validate:"required"`
	Phone         string         `json:"phone" bson:"phone" validate:"required,min=7,max=15"`
	PreferredTime string         `json:"preferredTime,omitempty" bson:"preferredTime,omitempty"`
	Message       string         `json:"message,omitempty" bson:"message,omitempty"`
	Type          CallbackType   `json:"type" bson:"type" validate:"oneof=callback visit"`
	Status        CallbackStatus `json:"status" bson:"status"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}
