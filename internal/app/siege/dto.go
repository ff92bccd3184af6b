package siege

import (
	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

type StartRequest struct {
	Leader  string   `json:"leader"`
	Members []string `json:"members,omitempty"`
	// Retreat abandons the attempt at the gates: the record and the
	// cooldown still land, but no damage is exchanged.
	Retreat bool `json:"retreat,omitempty"`
}

type StatusRequest struct {
	SiegeID string `json:"siege_id"`
}

const OutcomeRejected = "rejected"

type Response struct {
	Outcome   string                `json:"outcome"`
	Rejection ports.RejectionReason `json:"rejection,omitempty"`
	SiegeID   string                `json:"siege_id,omitempty"`
	Combat    *combat.SiegeResult   `json:"combat,omitempty"`
	Monarch   *royal.Monarch        `json:"monarch,omitempty"`
}

type StatusResponse struct {
	Record ports.SiegeRecord `json:"record"`
}
