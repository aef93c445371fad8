package aivest

import "time"

// Action is the proposed side of a recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// ParseAction parses a string into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(NormalizeSymbol(s)) {
	case ActionBuy:
		return ActionBuy, nil
	case ActionSell:
		return ActionSell, nil
	case ActionHold:
		return ActionHold, nil
	default:
		return "", validationf("unknown action %q", s)
	}
}

// Recommendation is a proposed trade produced by the research collaborator.
// It is persisted with Executed=false and transitions to Executed=true
// exactly once.
type Recommendation struct {
	ID          string
	PortfolioID string
	Symbol      string
	Action      Action
	Quantity    int64 // 0 means: derive at execution time
	Reasoning   string
	Score       int     // 0-100
	Confidence  float64 // 0-1
	Executed    bool
	ExecutedAt  time.Time
}

// markExecuted stamps the recommendation as executed. It fails if the
// recommendation has already been executed.
func (r *Recommendation) markExecuted(now time.Time) error {
	if r.Executed {
		return ErrAlreadyExecuted
	}
	r.Executed = true
	r.ExecutedAt = now
	return nil
}
