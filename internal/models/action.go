package models

type Outcome string

const (
	OutcomeOpened  Outcome = "Opened"
	OutcomeClosed  Outcome = "Closed"
	OutcomeHeld    Outcome = "Held"
	OutcomeSkipped Outcome = "Skipped"
	OutcomeFailed  Outcome = "Failed"
)

// ActionResult: запись отчёта цикла, ровно одна на бота.
type ActionResult struct {
	BotID       string       `json:"botId"`
	UserID      int64        `json:"userId"`
	Symbol      string       `json:"symbol"`
	Strategy    string       `json:"strategy,omitempty"`
	Outcome     Outcome      `json:"outcome"`
	Side        PositionSide `json:"side,omitempty"`
	Detail      string       `json:"detail,omitempty"`
	RealizedPnl *float64     `json:"realizedPnl,omitempty"`
	OrderID     string       `json:"orderId,omitempty"`
}

// Summary считает исходы по отчёту цикла.
func Summary(results []ActionResult) map[Outcome]int {
	out := make(map[Outcome]int, 5)
	for _, r := range results {
		out[r.Outcome]++
	}
	return out
}
