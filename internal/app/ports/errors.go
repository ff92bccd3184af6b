package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// RejectionReason names a failed precondition. Rejections mutate nothing
// and are fully recoverable.
type RejectionReason string

const (
	RejectNotKing           RejectionReason = "not_king"
	RejectThroneOccupied    RejectionReason = "throne_occupied"
	RejectThroneVacant      RejectionReason = "throne_vacant"
	RejectSelfChallenge     RejectionReason = "self_challenge"
	RejectLevelTooLow       RejectionReason = "level_too_low"
	RejectNoTeam            RejectionReason = "no_team"
	RejectSiegeCooldown     RejectionReason = "siege_cooldown"
	RejectRosterFull        RejectionReason = "roster_full"
	RejectInsufficientFunds RejectionReason = "insufficient_funds"
	RejectUnknownActor      RejectionReason = "unknown_actor"
	RejectImprisoned        RejectionReason = "imprisoned"
)
