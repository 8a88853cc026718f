package service

import (
	"testing"

	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

func TestItemTotal(t *testing.T) {
	// (10.00 + 1.50) * 2 = 23.00
	total := ItemTotal(dec("10.00"), []decimal.Decimal{dec("1.50")}, 2)
	requireDec(t, "23.00", total)

	// no variants
	requireDec(t, "27.00", ItemTotal(dec("9.00"), nil, 3))

	// multiple variants stack on the unit price
	requireDec(t, "12.75", ItemTotal(dec("10.00"), []decimal.Decimal{dec("1.50"), dec("1.25")}, 1))
}

func TestCalculateTotals(t *testing.T) {
	calc := NewPricingCalculator(FlatDeliveryFee(decimal.Zero))

	totals, err := calc.Calculate(dec("0.08"), []decimal.Decimal{dec("23.00")}, decimal.Zero, dec("2.00"), decimal.Zero)
	require.NoError(t, err)
	requireDec(t, "23.00", totals.Subtotal)
	requireDec(t, "1.84", totals.Tax)
	requireDec(t, "26.84", totals.GrandTotal)
}

func TestCalculateWithDeliveryFeeAndDiscount(t *testing.T) {
	calc := NewPricingCalculator(FlatDeliveryFee(dec("5.00")))

	fee := calc.DeliveryFee(enum.OrderTypeDelivery)
	requireDec(t, "5.00", fee)
	requireDec(t, "0", calc.DeliveryFee(enum.OrderTypeDineIn))
	requireDec(t, "0", calc.DeliveryFee(enum.OrderTypeTakeaway))

	totals, err := calc.Calculate(dec("0.10"), []decimal.Decimal{dec("20.00")}, dec("3.00"), decimal.Zero, fee)
	require.NoError(t, err)
	requireDec(t, "20.00", totals.Subtotal)
	requireDec(t, "2.00", totals.Tax)
	// 20.00 + 2.00 + 5.00 - 3.00
	requireDec(t, "24.00", totals.GrandTotal)
}

func TestCalculateFloorsGrandTotalAtZero(t *testing.T) {
	calc := NewPricingCalculator(FlatDeliveryFee(decimal.Zero))

	// discount exceeds subtotal + tax
	totals, err := calc.Calculate(dec("0.08"), []decimal.Decimal{dec("10.00")}, dec("50.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	requireDec(t, "0", totals.GrandTotal)
	requireDec(t, "10.00", totals.Subtotal)
	requireDec(t, "0.80", totals.Tax)
}

func TestCalculateRejectsNegativeItemTotal(t *testing.T) {
	calc := NewPricingCalculator(FlatDeliveryFee(decimal.Zero))

	_, err := calc.Calculate(dec("0.08"), []decimal.Decimal{dec("10.00"), dec("-1.00")}, decimal.Zero, decimal.Zero, decimal.Zero)
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))
}

func TestCalculateZeroTaxRate(t *testing.T) {
	calc := NewPricingCalculator(FlatDeliveryFee(decimal.Zero))

	totals, err := calc.Calculate(decimal.Zero, []decimal.Decimal{dec("15.50")}, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	requireDec(t, "0", totals.Tax)
	requireDec(t, "15.50", totals.GrandTotal)
}

func TestCalculateRoundsTaxToCents(t *testing.T) {
	calc := NewPricingCalculator(FlatDeliveryFee(decimal.Zero))

	// 19.99 * 0.0825 = 1.649175 -> 1.65
	totals, err := calc.Calculate(dec("0.0825"), []decimal.Decimal{dec("19.99")}, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	requireDec(t, "1.65", totals.Tax)
	requireDec(t, "21.64", totals.GrandTotal)
}
