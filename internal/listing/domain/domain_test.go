package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewListing_Defaults(t *testing.T) {
	l := NewListing()
	assert.Equal(t, StatusInitial, l.Status)
	assert.Equal(t, GenderUnisex, l.Gender)
	assert.Equal(t, DefaultDeposit, l.Deposit)
	assert.Equal(t, float64(DefaultLockInMonths), l.LockInPeriod)
	assert.NotNil(t, l.Photos)
	assert.NotNil(t, l.Videos)
	assert.NotNil(t, l.AdditionalCharges)
	for _, name := range TierNames {
		tier := l.Sharing.Tier(name)
		require.NotNil(t, tier)
		assert.Equal(t, SharingTier{}, *tier)
	}
}

func TestListingStatus_Valid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusVerification.Valid())
	assert.False(t, StatusDraft.Valid())
	assert.False(t, ListingStatus("sold").Valid())
}

func TestSharing_MinPriceIgnoresUnavailableTiers(t *testing.T) {
	s := Sharing{
		One:   SharingTier{Available: false, Price: 3000},
		Two:   SharingTier{Available: true, Price: 9000},
		Three: SharingTier{Available: true, Price: 7000},
		Four:  SharingTier{Available: true, Price: 0},
	}
	price, ok := s.MinPrice()
	assert.True(t, ok)
	assert.Equal(t, float64(7000), price)

	prices := s.AvailablePrices()
	assert.NotContains(t, prices, TierOne)
	assert.Equal(t, float64(9000), prices[TierTwo])
	assert.Contains(t, prices, TierFour)

	_, ok = Sharing{}.MinPrice()
	assert.False(t, ok)
}

func TestSharing_TierUnknown(t *testing.T) {
	var s Sharing
	assert.Nil(t, s.Tier("sixSharing"))
}

func TestStripUndefined(t *testing.T) {
	in := map[string]any{
		"name":        "Green Nest",
		"coordinates": nil,
		"amenities":   map[string]any{"wifi": true, "ac": nil},
		"photos": []any{
			map[string]any{"url": "u1", "caption": nil},
			nil,
			"plain",
		},
	}
	out := StripUndefined(in).(map[string]any)

	assert.NotContains(t, out, "coordinates")
	assert.Equal(t, map[string]any{"wifi": true}, out["amenities"])
	photos := out["photos"].([]any)
	require.Len(t, photos, 3)
	assert.Equal(t, map[string]any{"url": "u1"}, photos[0])
	assert.Nil(t, photos[1])
	assert.Equal(t, "plain", photos[2])

	// idempotent
	assert.Equal(t, out, StripUndefined(out))
	// input untouched
	assert.Contains(t, in, "coordinates")
}

func TestStripUndefined_BSONTypes(t *testing.T) {
	doc := bson.M{
		"deposit": nil,
		"sharing": bson.M{"oneSharing": bson.M{"available": true, "price": nil}},
		"videos":  bson.A{bson.M{"videoUrl": "v", "caption": nil}},
	}
	out, ok := StripUndefined(doc).(bson.M)
	require.True(t, ok)
	assert.NotContains(t, out, "deposit")
	assert.Equal(t, bson.M{"oneSharing": bson.M{"available": true}}, out["sharing"])
	assert.Equal(t, bson.A{bson.M{"videoUrl": "v"}}, out["videos"])
	assert.Equal(t, out, StripUndefined(out))
}

func TestStripUndefined_Scalars(t *testing.T) {
	assert.Nil(t, StripUndefined(nil))
	assert.Equal(t, 42, StripUndefined(42))
	assert.Equal(t, []string{"a"}, StripUndefined([]string{"a"}))
}
