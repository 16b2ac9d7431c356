package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderReturned   OrderStatus = "RETURNED"
	OrderFailed     OrderStatus = "FAILED"
)

// ParseOrderStatus validates and normalizes an order status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered,
		OrderCancelled, OrderReturned, OrderFailed:
		return st, nil
	}
	return "", fmt.Errorf("invalid order status: %q", s)
}

// AgeRating is an ESRB content rating code.
type AgeRating string

const (
	RatingEveryone       AgeRating = "E"
	RatingEveryoneTen    AgeRating = "E10+"
	RatingTeen           AgeRating = "T"
	RatingMature         AgeRating = "M"
	RatingAdultsOnly     AgeRating = "AO"
	RatingPending        AgeRating = "RP"
	RatingPendingMature  AgeRating = "RPM"
)

// Description returns the human-readable ESRB label.
func (r AgeRating) Description() string {
	switch r {
	case RatingEveryone:
		return "Everyone"
	case RatingEveryoneTen:
		return "Everyone 10+"
	case RatingTeen:
		return "Teen"
	case RatingMature:
		return "Mature 17+"
	case RatingAdultsOnly:
		return "Adults Only 18+"
	case RatingPending:
		return "Rating Pending"
	case RatingPendingMature:
		return "Rating Pending - Likely Mature 17+"
	}
	return string(r)
}

// Province is a Canadian province or territory, stored as its two-letter code.
type Province string

const (
	Alberta                 Province = "AB"
	BritishColumbia         Province = "BC"
	Manitoba                Province = "MB"
	NewBrunswick            Province = "NB"
	NewfoundlandAndLabrador Province = "NL"
	NorthwestTerritories    Province = "NT"
	NovaScotia              Province = "NS"
	Nunavut                 Province = "NU"
	Ontario                 Province = "ON"
	PrinceEdwardIsland      Province = "PE"
	Quebec                  Province = "QC"
	Saskatchewan            Province = "SK"
	Yukon                   Province = "YT"
)

type provinceInfo struct {
	name         string
	taxRate      decimal.Decimal
	shippingDays int
}

// Combined GST/HST/PST rates and ground-shipping estimates. Territories get
// the longer estimate.
var provinces = map[Province]provinceInfo{
	Alberta:                 {"Alberta", decimal.NewFromFloat(0.05), 5},
	BritishColumbia:         {"British Columbia", decimal.NewFromFloat(0.12), 5},
	Manitoba:                {"Manitoba", decimal.NewFromFloat(0.12), 5},
	NewBrunswick:            {"New Brunswick", decimal.NewFromFloat(0.15), 5},
	NewfoundlandAndLabrador: {"Newfoundland and Labrador", decimal.NewFromFloat(0.15), 7},
	NorthwestTerritories:    {"Northwest Territories", decimal.NewFromFloat(0.05), 10},
	NovaScotia:              {"Nova Scotia", decimal.NewFromFloat(0.15), 5},
	Nunavut:                 {"Nunavut", decimal.NewFromFloat(0.05), 10},
	Ontario:                 {"Ontario", decimal.NewFromFloat(0.13), 5},
	PrinceEdwardIsland:      {"Prince Edward Island", decimal.NewFromFloat(0.15), 5},
	Quebec:                  {"Quebec", decimal.NewFromFloat(0.14975), 5},
	Saskatchewan:            {"Saskatchewan", decimal.NewFromFloat(0.11), 5},
	Yukon:                   {"Yukon", decimal.NewFromFloat(0.05), 10},
}

// ParseProvince accepts a two-letter code (any case) and validates it.
func ParseProvince(s string) (Province, error) {
	p := Province(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := provinces[p]; !ok {
		return "", fmt.Errorf("invalid province: %q", s)
	}
	return p, nil
}

// Name returns the full province or territory name.
func (p Province) Name() string {
	return provinces[p].name
}

// TaxRate returns the combined sales tax rate applied to orders shipped to
// this province.
func (p Province) TaxRate() decimal.Decimal {
	return provinces[p].taxRate
}

// ShippingDays returns the estimated number of days until delivery.
func (p Province) ShippingDays() int {
	return provinces[p].shippingDays
}
