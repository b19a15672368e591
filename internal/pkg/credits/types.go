package credits

// Reason explains why a gated action was denied.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonUserNotFound        Reason = "user_not_found"
	ReasonPlanExpired         Reason = "plan_expired"
	ReasonInsufficientCredits Reason = "insufficient_credits"
	ReasonInternalError       Reason = "internal_error"
)

// Decision is the result of an authorization check for a gated action.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

// Message returns the user-facing text for a denial reason.
func (r Reason) Message() string {
	switch r {
	case ReasonUserNotFound:
		return "Usuário não encontrado"
	case ReasonPlanExpired:
		return "Plano expirado"
	case ReasonInsufficientCredits:
		return "Créditos insuficientes"
	case ReasonInternalError:
		return "Erro interno"
	default:
		return ""
	}
}
