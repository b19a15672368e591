package plans

import (
	"strings"
	"time"
)

type PlanID string

const (
	PlanFree  PlanID = "free"
	PlanFlash PlanID = "flash"
	PlanPro   PlanID = "pro"
)

// Tier is one entry of the static plan catalog: a credit allotment bundled
// with a price and a validity window. The catalog is never mutated at
// runtime.
type Tier struct {
	ID       PlanID
	Name     string
	Credits  int
	Price    int
	Duration time.Duration
	Features []string
}

// Catalog lists all purchasable tiers ordered by ascending price. Exactly
// one tier is free; the order defines the upgrade hierarchy.
var Catalog = []Tier{
	{
		ID:       PlanFree,
		Name:     "Gratuito",
		Credits:  10,
		Price:    0,
		Duration: 30 * 24 * time.Hour,
		Features: []string{"10 mensagens por mês", "Suporte básico", "Acesso limitado"},
	},
	{
		ID:       PlanFlash,
		Name:     "Flash",
		Credits:  100,
		Price:    15,
		Duration: 30 * 24 * time.Hour,
		Features: []string{"100 mensagens por mês", "Suporte prioritário", "Acesso completo", "Histórico de conversas"},
	},
	{
		ID:       PlanPro,
		Name:     "Pro",
		Credits:  500,
		Price:    45,
		Duration: 30 * 24 * time.Hour,
		Features: []string{"500 mensagens por mês", "Suporte 24/7", "Acesso ilimitado", "Histórico completo", "Análises avançadas", "API personalizada"},
	},
}

// FindByID resolves a plan id to its tier. The second return value is false
// for unknown ids.
func FindByID(id string) (Tier, bool) {
	normalized := strings.ToLower(strings.TrimSpace(id))
	for _, tier := range Catalog {
		if string(tier.ID) == normalized {
			return tier, true
		}
	}
	return Tier{}, false
}

// Free returns the free tier. The catalog always contains it.
func Free() Tier {
	tier, _ := FindByID(string(PlanFree))
	return tier
}

// Normalize maps arbitrary plan strings to a known catalog id, falling back
// to free for anything unrecognized.
func Normalize(plan string) string {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(PlanFlash):
		return string(PlanFlash)
	case string(PlanPro):
		return string(PlanPro)
	default:
		return string(PlanFree)
	}
}

// Rank orders plans by ascending price: free < flash < pro. Unknown plans
// rank as free.
func Rank(plan string) int {
	switch Normalize(plan) {
	case string(PlanPro):
		return 2
	case string(PlanFlash):
		return 1
	default:
		return 0
	}
}

// IsUpgrade reports whether moving from current to target climbs the
// hierarchy. Downgrades are not blocked anywhere; this is UI decisioning
// only.
func IsUpgrade(current, target string) bool {
	return Rank(target) > Rank(current)
}
