package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvince(t *testing.T) {
	p, err := ParseProvince("on")
	require.NoError(t, err)
	assert.Equal(t, Ontario, p)

	p, err = ParseProvince(" QC ")
	require.NoError(t, err)
	assert.Equal(t, Quebec, p)

	_, err = ParseProvince("ZZ")
	assert.Error(t, err)

	_, err = ParseProvince("")
	assert.Error(t, err)
}

func TestProvinceTaxRates(t *testing.T) {
	cases := []struct {
		province Province
		rate     string
	}{
		{Alberta, "0.05"},
		{Ontario, "0.13"},
		{Quebec, "0.14975"},
		{NovaScotia, "0.15"},
		{BritishColumbia, "0.12"},
		{Saskatchewan, "0.11"},
	}
	for _, tc := range cases {
		want, _ := decimal.NewFromString(tc.rate)
		assert.True(t, tc.province.TaxRate().Equal(want),
			"%s: got %s want %s", tc.province, tc.province.TaxRate(), tc.rate)
	}
}

func TestProvinceShippingDays(t *testing.T) {
	// territories get the long estimate
	assert.Equal(t, 10, NorthwestTerritories.ShippingDays())
	assert.Equal(t, 10, Nunavut.ShippingDays())
	assert.Equal(t, 10, Yukon.ShippingDays())

	assert.Equal(t, 7, NewfoundlandAndLabrador.ShippingDays())
	assert.Equal(t, 5, Ontario.ShippingDays())
}

func TestProvinceName(t *testing.T) {
	assert.Equal(t, "Prince Edward Island", PrinceEdwardIsland.Name())
	assert.Equal(t, "British Columbia", BritishColumbia.Name())
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderShipped, st)

	st, err = ParseOrderStatus(" PENDING ")
	require.NoError(t, err)
	assert.Equal(t, OrderPending, st)

	_, err = ParseOrderStatus("LOST")
	assert.Error(t, err)
}

func TestAgeRatingDescription(t *testing.T) {
	assert.Equal(t, "Everyone 10+", RatingEveryoneTen.Description())
	assert.Equal(t, "Mature 17+", RatingMature.Description())
	// unknown codes fall back to the raw value
	assert.Equal(t, "X", AgeRating("X").Description())
}
