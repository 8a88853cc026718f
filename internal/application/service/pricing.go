package service

import (
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DeliveryFeePolicy selects the delivery fee for an order type. The fee is a
// business policy, not engine logic, so it is injected.
type DeliveryFeePolicy func(orderType enum.OrderType) decimal.Decimal

// FlatDeliveryFee returns a policy that charges a fixed fee for delivery
// orders and nothing otherwise.
func FlatDeliveryFee(fee decimal.Decimal) DeliveryFeePolicy {
	return func(orderType enum.OrderType) decimal.Decimal {
		if orderType == enum.OrderTypeDelivery {
			return fee
		}
		return decimal.Zero
	}
}

// OrderTotals holds the computed money fields of an order
type OrderTotals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// PricingCalculator derives order totals from item totals and the business
// tax rate. All arithmetic is decimal; results are rounded to 2 places.
type PricingCalculator struct {
	deliveryFee DeliveryFeePolicy
}

// NewPricingCalculator creates a pricing calculator with the given delivery
// fee policy.
func NewPricingCalculator(deliveryFee DeliveryFeePolicy) *PricingCalculator {
	return &PricingCalculator{deliveryFee: deliveryFee}
}

// DeliveryFee returns the fee the injected policy assigns to the order type.
func (c *PricingCalculator) DeliveryFee(orderType enum.OrderType) decimal.Decimal {
	return c.deliveryFee(orderType)
}

// ItemTotal computes an order item's total price:
// (basePrice + sum of selected variant prices) * quantity, rounded to 2 places.
func ItemTotal(basePrice decimal.Decimal, variantPrices []decimal.Decimal, quantity int) decimal.Decimal {
	unit := basePrice
	for _, p := range variantPrices {
		unit = unit.Add(p)
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Calculate derives subtotal, tax and grand total from the given item totals.
//
//	subtotal   = sum(itemTotals)
//	tax        = subtotal * taxRate, rounded to 2 places
//	grandTotal = subtotal + tax + deliveryFee - discount + tipAmount,
//	             floored at 0, rounded to 2 places
//
// A negative item total fails with a validation error.
func (c *PricingCalculator) Calculate(taxRate decimal.Decimal, itemTotals []decimal.Decimal, discount, tipAmount, deliveryFee decimal.Decimal) (*OrderTotals, error) {
	subtotal := decimal.Zero
	for _, t := range itemTotals {
		if t.IsNegative() {
			return nil, apperror.NewValidationError("Invalid item price calculation")
		}
		subtotal = subtotal.Add(t)
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(taxRate).Round(2)

	grandTotal := subtotal.Add(tax).Add(deliveryFee).Sub(discount).Add(tipAmount).Round(2)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	return &OrderTotals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: grandTotal,
	}, nil
}
