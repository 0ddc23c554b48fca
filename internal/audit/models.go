// Package audit captures one structured event per lender evaluation so
// decisions remain reconstructable after the fact.
package audit

import "time"

// Evaluation paths that can emit events.
const (
	PathBRE      = "bre"
	PathFallback = "fallback"
)

// Event is emitted from the evaluation flow. Keep it transport-agnostic so
// sinks can fan out.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	LenderID    string    `json:"lender_id"`
	Path        string    `json:"path"`
	Eligible    bool      `json:"eligible"`
	Preapproved bool      `json:"preapproved"`
	PAOverride  bool      `json:"pa_override"`
	ReasonCodes []string  `json:"reason_codes,omitempty"`
	Rate        *float64  `json:"roi,omitempty"`
}
