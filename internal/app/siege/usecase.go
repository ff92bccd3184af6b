package siege

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"crownhold/internal/app/ports"
	"crownhold/internal/app/shared/statsource"
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

var ErrInvalidRequest = errors.New("invalid siege request")

const DefaultCooldown = 24 * time.Hour

// UseCase runs team sieges against the throne, with the cooldown gate
// claimed atomically against the shared store before anything mutates.
type UseCase struct {
	TxManager ports.TxManager
	Monarchs  ports.MonarchRepository
	History   ports.HistoryRepository
	Sieges    ports.SiegeRepository
	Snapshots ports.ActorSnapshotRepository
	Actors    ports.ActorProvider
	Publisher ports.StatePublisher
	Notifier  ports.NotificationSink
	Metrics   ports.ThroneMetrics
	Cooldown  time.Duration
	Now       func() time.Time
	Rand      *rand.Rand
	NewID     func() string
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

func (u UseCase) cooldown() time.Duration {
	if u.Cooldown > 0 {
		return u.Cooldown
	}
	return DefaultCooldown
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.New().String()
}

func (u UseCase) Start(ctx context.Context, req StartRequest) (Response, error) {
	leader := strings.TrimSpace(req.Leader)
	if leader == "" {
		return Response{}, ErrInvalidRequest
	}

	actor, ok := u.Actors.FindLive(leader)
	if !ok || !actor.Alive {
		return u.reject(ports.RejectUnknownActor), nil
	}
	if actor.Team == "" {
		return u.reject(ports.RejectNoTeam), nil
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
		if m.Name == leader {
			out = u.reject(ports.RejectSelfChallenge)
			return nil
		}
		loadedVersion := m.Version
		now := u.now()

		// The cooldown window opens the moment a siege starts, win or lose,
		// and the claim is the one atomic guard against two teams sharing a
		// window.
		if err := u.Sieges.ClaimSiegeWindow(txCtx, actor.Team, now, u.cooldown()); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				out = u.reject(ports.RejectSiegeCooldown)
				return nil
			}
			return err
		}

		rec := ports.SiegeRecord{
			ID:           u.newID(),
			Team:         actor.Team,
			Leader:       leader,
			TargetGuards: m.TotalGuardCount(),
			Status:       ports.SiegePending,
			StartedAt:    now,
			UpdatedAt:    now,
		}
		if err := u.Sieges.Create(txCtx, rec); err != nil {
			return err
		}

		if req.Retreat {
			rec.Status = ports.SiegeRetreated
			rec.UpdatedAt = now
			if err := u.Sieges.Update(txCtx, rec); err != nil {
				return err
			}
			u.recordMetric(string(ports.SiegeRetreated))
			out = Response{Outcome: string(ports.SiegeRetreated), SiegeID: rec.ID}
			return nil
		}

		rec.Status = ports.SiegeInProgress
		if err := u.Sieges.Update(txCtx, rec); err != nil {
			return err
		}

		party := u.buildParty(actor, req.Members)
		engine := &combat.SiegeEngine{
			RNG:        u.rng(),
			GuardStats: statsource.Live{Actors: u.Actors},
			KingStats: combat.Chain{
				statsource.Live{Actors: u.Actors},
				statsource.Snapshot{Ctx: txCtx, Repo: u.Snapshots},
				statsource.Reign{DaysReigned: m.TotalReign},
			},
			OnProgress: func(defeated int) {
				rec.GuardsDefeated = defeated
				rec.UpdatedAt = u.now()
				if err := u.Sieges.Update(txCtx, rec); err != nil {
					// Progress is best-effort; the terminal update settles it.
					return
				}
			},
		}

		result := engine.Resolve(party, &m)

		rec.GuardsDefeated = result.GuardsDefeated
		rec.Status = siegeStatus(result.Outcome)
		rec.UpdatedAt = u.now()
		if err := u.Sieges.Update(txCtx, rec); err != nil {
			return err
		}

		if result.Outcome == combat.SiegeVictory {
			prior := m
			if err := u.History.Append(txCtx, []royal.MonarchRecord{
				royal.RecordFor(&prior, "Overthrown by siege", now),
			}); err != nil {
				return err
			}
			crowned := royal.NewMonarch(leader, actor.Sex, actor.IsNPC, now)
			crowned.Inherit(&prior)
			crowned.Version = loadedVersion
			crowned.Touch(now)
			if err := u.Monarchs.SaveWithVersion(txCtx, *crowned, loadedVersion); err != nil {
				return err
			}
			if !prior.IsNPC && u.Notifier != nil {
				u.Notifier.NotifyDethroned(prior.Name, leader, "overthrown by siege")
			}
			u.news(fmt.Sprintf("the team %s stormed the castle and crowned %s!", actor.Team, leader))
			u.publish(*crowned)
			u.recordMetric(string(ports.SiegeVictory))
			out = Response{Outcome: string(ports.SiegeVictory), SiegeID: rec.ID, Combat: &result, Monarch: crowned}
			return nil
		}

		m.Touch(now)
		if err := u.Monarchs.SaveWithVersion(txCtx, m, loadedVersion); err != nil {
			return err
		}
		u.news(fmt.Sprintf("%s repelled the siege of %s", m.Titled(), actor.Team))
		u.publish(m)
		u.recordMetric(string(rec.Status))
		out = Response{Outcome: string(rec.Status), SiegeID: rec.ID, Combat: &result, Monarch: &m}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// Status reads a siege's durable progress record, including attempts run by
// other processes.
func (u UseCase) Status(ctx context.Context, req StatusRequest) (StatusResponse, error) {
	id := strings.TrimSpace(req.SiegeID)
	if id == "" {
		return StatusResponse{}, ErrInvalidRequest
	}
	rec, err := u.Sieges.GetByID(ctx, id)
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{Record: rec}, nil
}

func (u UseCase) buildParty(leader ports.Actor, memberNames []string) combat.Party {
	party := combat.Party{Team: leader.Team, Leader: leader.Stats}
	for _, name := range memberNames {
		name = strings.TrimSpace(name)
		if name == "" || name == leader.Stats.Name {
			continue
		}
		member, ok := u.Actors.FindLive(name)
		if !ok || !member.Alive || member.Team != leader.Team {
			continue
		}
		party.Members = append(party.Members, combat.PartyMember{
			Name:  name,
			Level: member.Stats.Level,
		})
	}
	return party
}

func siegeStatus(outcome combat.SiegeOutcome) ports.SiegeStatus {
	switch outcome {
	case combat.SiegeVictory:
		return ports.SiegeVictory
	case combat.SiegeKingWon:
		return ports.SiegeKingWon
	case combat.SiegeRetreated:
		return ports.SiegeRetreated
	default:
		return ports.SiegeFailed
	}
}

func (u UseCase) reject(reason ports.RejectionReason) Response {
	if u.Metrics != nil {
		u.Metrics.RecordRejected(string(reason))
	}
	return Response{Outcome: OutcomeRejected, Rejection: reason}
}

func (u UseCase) recordMetric(outcome string) {
	if u.Metrics != nil {
		u.Metrics.RecordSiege(outcome)
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
