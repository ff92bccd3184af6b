package ports

import (
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

// Actor is a live participant (NPC or online player) as seen by the
// succession and combat systems.
type Actor struct {
	Stats      combat.Stats
	Sex        royal.Sex
	Class      royal.CharacterClass
	IsNPC      bool
	Team       string
	Alive      bool
	Imprisoned bool
	Charisma   int64
	Chivalry   int64
	Darkness   int64
	Gold       int64
}

// ActorProvider is the live-actor lookup boundary. FindLive tolerates
// unknown names; callers fall back to snapshots or estimates.
type ActorProvider interface {
	FindLive(name string) (Actor, bool)
	ListLiveNPCs() []Actor
}
