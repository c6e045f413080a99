package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Delivery methods.
const (
	DeliveryNPBranch    = "np_branch"
	DeliveryCourierKyiv = "courier_kyiv"
)

// Payment methods.
const (
	PaymentOnline = "online"
	PaymentCOD    = "cod"
)

// ShippingRule prices one delivery method: free from FreeFrom, Cost below.
type ShippingRule struct {
	Method   string          `json:"method"`
	Title    string          `json:"title"`
	FreeFrom decimal.Decimal `json:"free_from"`
	Cost     decimal.Decimal `json:"cost"`
}

// ShippingRules is the delivery table, in display order.
var ShippingRules = []ShippingRule{
	{
		Method:   DeliveryNPBranch,
		Title:    "Nova Poshta branch",
		FreeFrom: decimal.NewFromInt(1500),
		Cost:     decimal.NewFromInt(70),
	},
	{
		Method:   DeliveryCourierKyiv,
		Title:    "Courier in Kyiv",
		FreeFrom: decimal.NewFromInt(2000),
		Cost:     decimal.NewFromInt(120),
	},
}

var deliveryAliases = map[string]string{
	"branch":      DeliveryNPBranch,
	"nova_poshta": DeliveryNPBranch,
	"courier":     DeliveryCourierKyiv,
}

// NormalizeDeliveryMethod maps legacy names onto current method codes.
// Unknown values are returned lower-cased and trimmed.
func NormalizeDeliveryMethod(method string) string {
	m := strings.ToLower(strings.TrimSpace(method))
	if alias, ok := deliveryAliases[m]; ok {
		return alias
	}
	return m
}

// ShippingRuleFor returns the rule for a (normalised) delivery method.
func ShippingRuleFor(method string) (ShippingRule, bool) {
	m := NormalizeDeliveryMethod(method)
	for _, rule := range ShippingRules {
		if rule.Method == m {
			return rule, true
		}
	}
	return ShippingRule{}, false
}

// ShippingCost prices delivery for an order subtotal. ok is false for an
// unknown method.
func ShippingCost(method string, subtotal decimal.Decimal) (decimal.Decimal, bool) {
	rule, ok := ShippingRuleFor(method)
	if !ok {
		return decimal.Zero, false
	}
	if subtotal.GreaterThanOrEqual(rule.FreeFrom) {
		return decimal.Zero, true
	}
	return rule.Cost, true
}
