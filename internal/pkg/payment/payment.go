package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/actionlog"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/plans"
)

type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodPaypal       Method = "paypal"
	MethodBankTransfer Method = "bank_transfer"
)

// Valid reports whether the payment method is one we accept.
func (m Method) Valid() bool {
	switch m {
	case MethodCreditCard, MethodPaypal, MethodBankTransfer:
		return true
	default:
		return false
	}
}

// Result is the outcome of a charge authorization.
type Result struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
}

// Charger authorizes a charge against an external payment provider. The
// call is opaque: one request, one response, no retry here.
type Charger interface {
	Charge(ctx context.Context, userID uint, amountUnits int, method Method) (Result, error)
}

// PlanUpgrader is the slice of the credits service the processor needs.
type PlanUpgrader interface {
	UpgradePlan(ctx context.Context, userID uint, planID string) bool
}

// SandboxCharger approves every charge unless PAYMENT_SANDBOX_DECLINE is
// set. It stands in for the real gateway in development and tests.
type SandboxCharger struct{}

func (SandboxCharger) Charge(ctx context.Context, userID uint, amountUnits int, method Method) (Result, error) {
	if env.GetEnv("PAYMENT_SANDBOX_DECLINE", "") != "" {
		return Result{Success: false, ErrorCode: "card_declined"}, nil
	}
	return Result{Success: true, TransactionID: "sandbox_" + uuid.NewString()}, nil
}

// Processor glues charge authorization to the plan upgrade: on a successful
// charge the user's ledger is moved onto the purchased tier.
type Processor struct {
	charger Charger
	credits PlanUpgrader
	actions *actionlog.Logger
}

// NewProcessor creates a payment processor from its collaborators.
func NewProcessor(charger Charger, credits PlanUpgrader, actions *actionlog.Logger) *Processor {
	return &Processor{charger: charger, credits: credits, actions: actions}
}

// ProcessPayment charges the user for the given tier and applies the
// upgrade. The free tier is not purchasable. A successful charge followed by
// a failed upgrade is logged and reported as failure; the charge is not
// voided here.
func (p *Processor) ProcessPayment(ctx context.Context, userID uint, planID string, method Method) (Result, error) {
	tier, ok := plans.FindByID(planID)
	if !ok {
		return Result{}, fmt.Errorf("unknown plan %q", planID)
	}
	if tier.Price == 0 {
		return Result{}, errors.New("free plan cannot be purchased")
	}
	if !method.Valid() {
		return Result{}, fmt.Errorf("unsupported payment method %q", method)
	}

	result, err := p.charger.Charge(ctx, userID, tier.Price, method)
	if err != nil {
		return Result{}, fmt.Errorf("charge authorization failed: %w", err)
	}
	if !result.Success {
		return result, nil
	}

	if !p.credits.UpgradePlan(ctx, userID, string(tier.ID)) {
		log.Printf("payment: charge %s succeeded but upgrade to %s failed for user %d", result.TransactionID, tier.ID, userID)
		return Result{Success: false, TransactionID: result.TransactionID, ErrorCode: "upgrade_failed"}, nil
	}

	if p.actions != nil {
		p.actions.RecordBestEffort(ctx, userID, models.ActionPlanUpgrade, map[string]any{
			"plan":           string(tier.ID),
			"price":          tier.Price,
			"method":         string(method),
			"transaction_id": result.TransactionID,
		}, "")
	}
	return result, nil
}
