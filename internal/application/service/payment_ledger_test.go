package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testOrder(grandTotal string) *entity.Order {
	return &entity.Order{
		ID:            uuid.New(),
		Status:        enum.OrderStatusPending,
		GrandTotal:    dec(grandTotal),
		PaymentStatus: enum.PaymentStatusPending,
	}
}

func TestRecordPartialThenFull(t *testing.T) {
	ledger := NewPaymentLedger()
	order := testOrder("26.84")
	now := time.Now()

	p1, err := ledger.Record(order, dec("20.00"), enum.PaymentMethodCash, nil, nil, now)
	require.NoError(t, err)
	require.Equal(t, enum.PaymentStatusPaid, p1.Status)
	require.NotNil(t, p1.ProcessedAt)
	require.Equal(t, enum.PaymentStatusPartial, order.PaymentStatus)
	requireDec(t, "6.84", ledger.RemainingBalance(order))

	_, err = ledger.Record(order, dec("6.84"), enum.PaymentMethodCard, nil, nil, now)
	require.NoError(t, err)
	require.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)
	require.NotNil(t, order.PaymentMethod)
	require.Equal(t, enum.PaymentMethodCard, *order.PaymentMethod)
	requireDec(t, "0", ledger.RemainingBalance(order))

	// nothing left to pay
	_, err = ledger.Record(order, dec("0.01"), enum.PaymentMethodCash, nil, nil, now)
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))
	require.Len(t, order.Payments, 2)
}

func TestRecordExactBalanceSucceeds(t *testing.T) {
	ledger := NewPaymentLedger()
	order := testOrder("26.84")

	_, err := ledger.Record(order, dec("26.84"), enum.PaymentMethodCash, nil, nil, time.Now())
	require.NoError(t, err)
	require.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)
}

func TestRecordWithinToleranceSucceeds(t *testing.T) {
	ledger := NewPaymentLedger()
	order := testOrder("26.84")

	// one cent over the balance is absorbed by the tolerance
	_, err := ledger.Record(order, dec("26.85"), enum.PaymentMethodCash, nil, nil, time.Now())
	require.NoError(t, err)
	require.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)
}

func TestRecordRejectsOverpayment(t *testing.T) {
	ledger := NewPaymentLedger()
	order := testOrder("26.84")

	// two cents over the remaining balance
	_, err := ledger.Record(order, dec("26.86"), enum.PaymentMethodCash, nil, nil, time.Now())
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))
	require.Empty(t, order.Payments)
	require.Equal(t, enum.PaymentStatusPending, order.PaymentStatus)
}

func TestRecordRejectsCancelledOrder(t *testing.T) {
	ledger := NewPaymentLedger()
	order := testOrder("26.84")
	order.Status = enum.OrderStatusCancelled

	_, err := ledger.Record(order, dec("10.00"), enum.PaymentMethodCash, nil, nil, time.Now())
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))
}

func TestDerivePaymentStatus(t *testing.T) {
	ledger := NewPaymentLedger()
	grand := dec("26.84")

	require.Equal(t, enum.PaymentStatusPending, ledger.DerivePaymentStatus(decimal.Zero, grand))
	require.Equal(t, enum.PaymentStatusPartial, ledger.DerivePaymentStatus(dec("20.00"), grand))
	require.Equal(t, enum.PaymentStatusPaid, ledger.DerivePaymentStatus(dec("26.84"), grand))
	// within a cent of the grand total counts as paid
	require.Equal(t, enum.PaymentStatusPaid, ledger.DerivePaymentStatus(dec("26.83"), grand))
	require.Equal(t, enum.PaymentStatusPartial, ledger.DerivePaymentStatus(dec("26.82"), grand))
}

func TestTotalPaidIgnoresNonPaidEntries(t *testing.T) {
	ledger := NewPaymentLedger()
	order := testOrder("30.00")
	order.Payments = []entity.Payment{
		{Amount: dec("10.00"), Status: enum.PaymentStatusPaid},
		{Amount: dec("5.00"), Status: enum.PaymentStatusRefunded},
		{Amount: dec("5.00"), Status: enum.PaymentStatusPending},
	}

	requireDec(t, "10.00", ledger.TotalPaid(order))
	requireDec(t, "20.00", ledger.RemainingBalance(order))
}
