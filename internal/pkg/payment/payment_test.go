package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCharger struct {
	result Result
	err    error
	calls  int
	amount int
}

func (f *fakeCharger) Charge(_ context.Context, _ uint, amountUnits int, _ Method) (Result, error) {
	f.calls++
	f.amount = amountUnits
	return f.result, f.err
}

type fakeUpgrader struct {
	ok       bool
	upgraded map[uint]string
}

func (f *fakeUpgrader) UpgradePlan(_ context.Context, userID uint, planID string) bool {
	if f.upgraded == nil {
		f.upgraded = make(map[uint]string)
	}
	if f.ok {
		f.upgraded[userID] = planID
	}
	return f.ok
}

func TestMethodValid(t *testing.T) {
	for _, m := range []Method{MethodCreditCard, MethodPaypal, MethodBankTransfer} {
		if !m.Valid() {
			t.Fatalf("expected method %q to be valid", m)
		}
	}
	if Method("crypto").Valid() {
		t.Fatalf("unexpected valid method")
	}
}

func TestProcessPaymentSuccess(t *testing.T) {
	charger := &fakeCharger{result: Result{Success: true, TransactionID: "tx_1"}}
	upgrader := &fakeUpgrader{ok: true}
	proc := NewProcessor(charger, upgrader, nil)

	result, err := proc.ProcessPayment(context.Background(), 1, "pro", MethodCreditCard)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 45, charger.amount, "pro tier price is charged")
	assert.Equal(t, "pro", upgrader.upgraded[1])
}

func TestProcessPaymentUnknownPlan(t *testing.T) {
	proc := NewProcessor(&fakeCharger{}, &fakeUpgrader{}, nil)

	_, err := proc.ProcessPayment(context.Background(), 1, "enterprise", MethodCreditCard)
	assert.Error(t, err)
}

func TestProcessPaymentFreePlanRejected(t *testing.T) {
	charger := &fakeCharger{}
	proc := NewProcessor(charger, &fakeUpgrader{}, nil)

	_, err := proc.ProcessPayment(context.Background(), 1, "free", MethodCreditCard)
	assert.Error(t, err)
	assert.Equal(t, 0, charger.calls, "no charge is attempted for the free plan")
}

func TestProcessPaymentDeclined(t *testing.T) {
	charger := &fakeCharger{result: Result{Success: false, ErrorCode: "card_declined"}}
	upgrader := &fakeUpgrader{ok: true}
	proc := NewProcessor(charger, upgrader, nil)

	result, err := proc.ProcessPayment(context.Background(), 1, "flash", MethodPaypal)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, upgrader.upgraded, "no upgrade on a declined charge")
}

func TestProcessPaymentChargerError(t *testing.T) {
	charger := &fakeCharger{err: errors.New("gateway timeout")}
	proc := NewProcessor(charger, &fakeUpgrader{ok: true}, nil)

	_, err := proc.ProcessPayment(context.Background(), 1, "flash", MethodCreditCard)
	assert.Error(t, err)
}

func TestProcessPaymentUpgradeFailureAfterCharge(t *testing.T) {
	charger := &fakeCharger{result: Result{Success: true, TransactionID: "tx_9"}}
	proc := NewProcessor(charger, &fakeUpgrader{ok: false}, nil)

	result, err := proc.ProcessPayment(context.Background(), 1, "flash", MethodCreditCard)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "upgrade_failed", result.ErrorCode)
	assert.Equal(t, "tx_9", result.TransactionID, "transaction id is kept for reconciliation")
}

func TestProcessPaymentInvalidMethod(t *testing.T) {
	proc := NewProcessor(&fakeCharger{}, &fakeUpgrader{}, nil)

	_, err := proc.ProcessPayment(context.Background(), 1, "flash", Method("barter"))
	assert.Error(t, err)
}
