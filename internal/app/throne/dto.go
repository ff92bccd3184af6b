package throne

import (
	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

type ChallengeRequest struct {
	Challenger string `json:"challenger"`
}

type AbdicateRequest struct {
	Name string `json:"name"`
}

type ClaimRequest struct {
	Name string `json:"name"`
}

// Outcome tags returned upward for the caller to render.
const (
	OutcomeCrowned   = "crowned"
	OutcomeRepelled  = "repelled"
	OutcomeAbdicated = "abdicated"
	OutcomeRejected  = "rejected"
)

type Response struct {
	Outcome   string                  `json:"outcome"`
	Rejection ports.RejectionReason   `json:"rejection,omitempty"`
	Combat    *combat.ChallengeResult `json:"combat,omitempty"`
	Monarch   *royal.Monarch          `json:"monarch,omitempty"`
}

func rejected(reason ports.RejectionReason) Response {
	return Response{Outcome: OutcomeRejected, Rejection: reason}
}
