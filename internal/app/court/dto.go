package court

import (
	"crownhold/internal/app/ports"
	"crownhold/internal/domain/royal"
)

type TreasuryRequest struct {
	Ruler  string `json:"ruler"`
	Action string `json:"action"` // "deposit" | "withdraw"
	Amount int64  `json:"amount"`
}

type TaxRequest struct {
	Ruler     string             `json:"ruler"`
	Rate      int                `json:"rate"`
	Alignment royal.TaxAlignment `json:"alignment,omitempty"`
}

type HireGuardRequest struct {
	Ruler  string `json:"ruler"`
	Name   string `json:"name"`
	Salary int64  `json:"salary,omitempty"`
	// Monster hires a moat beast instead of an NPC guard.
	Monster     bool  `json:"monster,omitempty"`
	Level       int   `json:"level,omitempty"`
	FeedingCost int64 `json:"feeding_cost,omitempty"`
}

type DismissGuardRequest struct {
	Ruler   string `json:"ruler"`
	Name    string `json:"name"`
	Monster bool   `json:"monster,omitempty"`
}

type HeirRequest struct {
	Ruler string `json:"ruler"`
	Name  string `json:"name"`
	Age   int    `json:"age,omitempty"`
	// Designate marks an already-recorded heir as the chosen successor.
	Designate bool `json:"designate,omitempty"`
}

type PrisonRequest struct {
	Ruler  string `json:"ruler"`
	Name   string `json:"name"`
	Action string `json:"action"` // "imprison" | "release" | "execute"
}

const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

type Response struct {
	Outcome   string                `json:"outcome"`
	Rejection ports.RejectionReason `json:"rejection,omitempty"`
	Monarch   *royal.Monarch        `json:"monarch,omitempty"`
}
