package throne

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"crownhold/internal/app/ports"
	"crownhold/internal/app/shared/statsource"
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

var ErrInvalidRequest = errors.New("invalid throne request")

// UseCase owns the solo throne operations: challenge, abdicate, and the
// claim of an empty throne.
type UseCase struct {
	TxManager ports.TxManager
	Monarchs  ports.MonarchRepository
	History   ports.HistoryRepository
	Snapshots ports.ActorSnapshotRepository
	Actors    ports.ActorProvider
	Publisher ports.StatePublisher
	Notifier  ports.NotificationSink
	Metrics   ports.ThroneMetrics
	Now       func() time.Time
	Rand      *rand.Rand
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) rng() *rand.Rand {
	if u.Rand != nil {
		return u.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Challenge runs one challenger against the sitting monarch. Guard and
// monster losses are applied even when the challenge ultimately fails.
func (u UseCase) Challenge(ctx context.Context, req ChallengeRequest) (Response, error) {
	name := strings.TrimSpace(req.Challenger)
	if name == "" {
		return Response{}, ErrInvalidRequest
	}

	actor, ok := u.Actors.FindLive(name)
	if !ok || !actor.Alive {
		return u.reject(ports.RejectUnknownActor), nil
	}
	if actor.Imprisoned {
		return u.reject(ports.RejectImprisoned), nil
	}
	if actor.Stats.Level < royal.MinLevelKing {
		return u.reject(ports.RejectLevelTooLow), nil
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Monarchs.LoadCurrent(txCtx)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				out = u.reject(ports.RejectThroneVacant)
				return nil
			}
			return err
		}
		if !m.IsActive {
			out = u.reject(ports.RejectThroneVacant)
			return nil
		}
		if m.Name == name {
			out = u.reject(ports.RejectSelfChallenge)
			return nil
		}
		loadedVersion := m.Version
		now := u.now()

		engine := &combat.Engine{
			RNG:        u.rng(),
			GuardStats: statsource.Live{Actors: u.Actors},
			KingStats: combat.Chain{
				statsource.Live{Actors: u.Actors},
				statsource.Snapshot{Ctx: txCtx, Repo: u.Snapshots},
				statsource.Reign{DaysReigned: m.TotalReign},
			},
		}

		challengerStats := actor.Stats
		result := engine.Resolve(&challengerStats, &m)

		if result.Outcome == combat.OutcomeVictory {
			prior := m
			if err := u.History.Append(txCtx, []royal.MonarchRecord{
				royal.RecordFor(&prior, fmt.Sprintf("Defeated by %s", name), now),
			}); err != nil {
				return err
			}

			crowned := royal.NewMonarch(name, actor.Sex, actor.IsNPC, now)
			crowned.Inherit(&prior)
			crowned.Version = loadedVersion
			crowned.Touch(now)
			if err := u.Monarchs.SaveWithVersion(txCtx, *crowned, loadedVersion); err != nil {
				return err
			}

			if !prior.IsNPC && u.Notifier != nil {
				u.Notifier.NotifyDethroned(prior.Name, name, "defeated in a throne challenge")
			}
			u.news(fmt.Sprintf("%s has seized the throne from %s!", name, prior.Titled()))
			u.publish(*crowned)
			u.record("challenge", OutcomeCrowned)
			out = Response{Outcome: OutcomeCrowned, Combat: &result, Monarch: crowned}
			return nil
		}

		// Soft loss: the throne stands, but the attrition sticks.
		m.Touch(now)
		if err := u.Monarchs.SaveWithVersion(txCtx, m, loadedVersion); err != nil {
			return err
		}
		u.publish(m)
		u.record("challenge", OutcomeRepelled)
		out = Response{Outcome: OutcomeRepelled, Combat: &result, Monarch: &m}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// Abdicate vacates the throne by the sitting ruler's own choice. The
// monarch row stays behind inactive so a successor can inherit through the
// succession tick.
func (u UseCase) Abdicate(ctx context.Context, req AbdicateRequest) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Monarchs.LoadCurrent(txCtx)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				out = u.reject(ports.RejectNotKing)
				return nil
			}
			return err
		}
		if !m.IsActive || m.Name != name {
			out = u.reject(ports.RejectNotKing)
			return nil
		}
		loadedVersion := m.Version
		now := u.now()

		if err := u.History.Append(txCtx, []royal.MonarchRecord{
			royal.RecordFor(&m, "Abdicated", now),
		}); err != nil {
			return err
		}

		m.IsActive = false
		m.Touch(now)
		if err := u.Monarchs.SaveWithVersion(txCtx, m, loadedVersion); err != nil {
			return err
		}

		u.news(fmt.Sprintf("%s has abdicated the throne!", m.Titled()))
		u.publish(m)
		out = Response{Outcome: OutcomeAbdicated, Monarch: &m}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// Claim crowns an eligible actor onto a vacant throne. No reign ended, so
// the chronicle is untouched.
func (u UseCase) Claim(ctx context.Context, req ClaimRequest) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, ErrInvalidRequest
	}

	actor, ok := u.Actors.FindLive(name)
	if !ok || !actor.Alive {
		return u.reject(ports.RejectUnknownActor), nil
	}
	if actor.Stats.Level < royal.MinLevelKing {
		return u.reject(ports.RejectLevelTooLow), nil
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var loadedVersion int64
		m, err := u.Monarchs.LoadCurrent(txCtx)
		switch {
		case err == nil:
			if m.IsActive {
				out = u.reject(ports.RejectThroneOccupied)
				return nil
			}
			loadedVersion = m.Version
		case errors.Is(err, ports.ErrNotFound):
			loadedVersion = 0
		default:
			return err
		}
		now := u.now()

		crowned := royal.NewMonarch(name, actor.Sex, actor.IsNPC, now)
		crowned.Version = loadedVersion
		crowned.Touch(now)
		if err := u.Monarchs.SaveWithVersion(txCtx, *crowned, loadedVersion); err != nil {
			return err
		}

		u.news(fmt.Sprintf("%s has claimed the empty throne!", crowned.Titled()))
		u.publish(*crowned)
		out = Response{Outcome: OutcomeCrowned, Monarch: crowned}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) reject(reason ports.RejectionReason) Response {
	if u.Metrics != nil {
		u.Metrics.RecordRejected(string(reason))
	}
	return rejected(reason)
}

func (u UseCase) record(kind, outcome string) {
	if u.Metrics == nil {
		return
	}
	if kind == "challenge" {
		u.Metrics.RecordChallenge(outcome)
	}
}

func (u UseCase) publish(m royal.Monarch) {
	if u.Publisher != nil {
		u.Publisher.Publish(m)
	}
}

func (u UseCase) news(msg string) {
	if u.Notifier != nil {
		u.Notifier.PublishNews(msg)
	}
}
