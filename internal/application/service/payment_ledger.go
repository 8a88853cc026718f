package service

import (
	"time"

	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// paymentTolerance absorbs rounding differences when comparing paid sums
// against the grand total (0.01 currency unit).
var paymentTolerance = decimal.New(1, -2)

// PaymentLedger tracks payments against an order and derives its payment
// status. Ledger entries are append-only; refunds and voids are not handled
// here.
type PaymentLedger struct{}

// NewPaymentLedger creates a payment ledger
func NewPaymentLedger() *PaymentLedger {
	return &PaymentLedger{}
}

// TotalPaid sums the order's payments currently in PAID status
func (l *PaymentLedger) TotalPaid(order *entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, p := range order.Payments {
		if p.Status == enum.PaymentStatusPaid {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// RemainingBalance is the grand total minus the sum of paid payments
func (l *PaymentLedger) RemainingBalance(order *entity.Order) decimal.Decimal {
	return order.GrandTotal.Sub(l.TotalPaid(order))
}

// DerivePaymentStatus computes the order payment status as a pure function of
// the paid sum vs. the grand total.
func (l *PaymentLedger) DerivePaymentStatus(totalPaid, grandTotal decimal.Decimal) enum.PaymentStatus {
	switch {
	case totalPaid.GreaterThanOrEqual(grandTotal.Sub(paymentTolerance)):
		return enum.PaymentStatusPaid
	case totalPaid.IsPositive():
		return enum.PaymentStatusPartial
	default:
		return enum.PaymentStatusPending
	}
}

// Record validates and appends a payment to the order, then recomputes the
// order's derived payment fields. The caller is responsible for running this
// against a consistent snapshot of the order (the repository serializes
// concurrent mutations with a row lock).
func (l *PaymentLedger) Record(order *entity.Order, amount decimal.Decimal, method enum.PaymentMethod, transactionID, reference *string, now time.Time) (*entity.Payment, error) {
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewValidationError("Cannot add payment to cancelled order")
	}

	totalPaid := l.TotalPaid(order)
	remaining := order.GrandTotal.Sub(totalPaid)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewValidationError("Order is already fully paid")
	}
	if amount.GreaterThan(remaining.Add(paymentTolerance)) {
		return nil, apperror.NewValidationErrorf(
			"Payment amount (%s) exceeds remaining balance (%s)",
			amount.StringFixed(2), remaining.StringFixed(2))
	}

	processedAt := now
	payment := entity.Payment{
		OrderID:       order.ID,
		Amount:        amount,
		PaymentMethod: method,
		Status:        enum.PaymentStatusPaid,
		TransactionID: transactionID,
		Reference:     reference,
		ProcessedAt:   &processedAt,
	}
	order.Payments = append(order.Payments, payment)

	methodCopy := method
	order.PaymentStatus = l.DerivePaymentStatus(totalPaid.Add(amount), order.GrandTotal)
	order.PaymentMethod = &methodCopy

	return &order.Payments[len(order.Payments)-1], nil
}
