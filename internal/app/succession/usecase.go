package succession

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/royal"
)

// UseCase is driven by the world-simulation tick rather than a player
// session: it crowns NPC successors onto vacant thrones and runs the
// background life of the court.
type UseCase struct {
	TxManager ports.TxManager
	Monarchs  ports.MonarchRepository
	History   ports.HistoryRepository
	Actors    ports.ActorProvider
	Publisher ports.StatePublisher
	Notifier  ports.NotificationSink
	Now       func() time.Time
	Rand      *rand.Rand

	// TaxBase approximates the taxable wealth of the kingdom per day.
	TaxBase int64
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

// ResolveVacancy crowns the best eligible NPC candidate onto a vacant
// throne. No eligible candidate is a normal outcome: the throne simply
// stays empty until the next tick.
func (u UseCase) ResolveVacancy(ctx context.Context) (crowned bool, err error) {
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var loadedVersion int64
		var designated string
		m, err := u.Monarchs.LoadCurrent(txCtx)
		switch {
		case err == nil:
			if m.IsActive {
				return nil
			}
			loadedVersion = m.Version
			designated = m.DesignatedHeir
		case errors.Is(err, ports.ErrNotFound):
			loadedVersion = 0
		default:
			return err
		}

		candidates := u.candidates()
		chosen, ok := royal.PickSuccessor(designated, candidates)
		if !ok {
			return nil
		}
		now := u.now()

		next := royal.CrownSuccessor(chosen, now)
		next.Version = loadedVersion
		next.Touch(now)
		if err := u.Monarchs.SaveWithVersion(txCtx, *next, loadedVersion); err != nil {
			return err
		}
		if err := u.History.Append(txCtx, []royal.MonarchRecord{{
			Name:           next.Name,
			Title:          next.Titled(),
			CoronationDate: now,
			EndReason:      "Crowned by succession",
		}}); err != nil {
			return err
		}

		if u.Notifier != nil {
			u.Notifier.PublishNews(fmt.Sprintf("%s has been crowned by right of succession!", next.Titled()))
		}
		if u.Publisher != nil {
			u.Publisher.Publish(*next)
		}
		crowned = true
		return nil
	})
	return crowned, err
}

// RunCourtPolitics advances guard recruitment and court intrigue for the
// sitting monarch by one simulation step.
func (u UseCase) RunCourtPolitics(ctx context.Context) error {
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Monarchs.LoadCurrent(txCtx)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil
			}
			return err
		}
		if !m.IsActive {
			return nil
		}
		loadedVersion := m.Version
		rng := u.rng()
		now := u.now()

		u.maybeRecruitGuard(&m, rng)
		events := m.TickCourtIntrigue(rng, now, rng.Float64() < 0.05)

		m.Touch(now)
		if err := u.Monarchs.SaveWithVersion(txCtx, m, loadedVersion); err != nil {
			return err
		}
		for _, evt := range events {
			if u.Notifier != nil {
				u.Notifier.PublishNews(evt.Message)
			}
		}
		if u.Publisher != nil {
			u.Publisher.Publish(m)
		}
		return nil
	})
}

// RunDailyUpkeep settles salaries, feeding, and taxes for one day.
func (u UseCase) RunDailyUpkeep(ctx context.Context) (royal.UpkeepReport, error) {
	var report royal.UpkeepReport
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Monarchs.LoadCurrent(txCtx)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil
			}
			return err
		}
		if !m.IsActive {
			return nil
		}
		loadedVersion := m.Version
		now := u.now()

		report = m.RunDailyUpkeep(u.taxableBase(m.TaxAlignment), u.rulerLevel(m.Name), u.rng())
		m.Touch(now)
		if err := u.Monarchs.SaveWithVersion(txCtx, m, loadedVersion); err != nil {
			return err
		}

		for _, name := range report.GuardsDeserted {
			u.newsf("%s deserted the unpaid royal guard", name)
		}
		for _, name := range report.MonstersFled {
			u.newsf("the unfed %s has escaped from the castle moat", name)
		}
		if u.Publisher != nil {
			u.Publisher.Publish(m)
		}
		return nil
	})
	return report, err
}

// taxableBase scales the kingdom's taxable wealth by the share of the live
// population falling under the crown's alignment policy. With no census
// data the full base is taxed; the filter cannot apply to nobody.
func (u UseCase) taxableBase(alignment royal.TaxAlignment) int64 {
	if alignment == royal.TaxAll || u.Actors == nil {
		return u.TaxBase
	}
	population := u.Actors.ListLiveNPCs()
	if len(population) == 0 {
		return u.TaxBase
	}
	matching := 0
	for _, a := range population {
		if alignment.Taxes(a.Chivalry, a.Darkness) {
			matching++
		}
	}
	return u.TaxBase * int64(matching) / int64(len(population))
}

// rulerLevel resolves the sitting ruler's level for the crown stipend,
// falling back to the throne's entry level when the ruler is offline.
func (u UseCase) rulerLevel(name string) int {
	if u.Actors != nil {
		if a, ok := u.Actors.FindLive(name); ok && a.Stats.Level > 0 {
			return a.Stats.Level
		}
	}
	return royal.MinLevelKing
}

// maybeRecruitGuard lets an NPC apply to the guard when there is an opening
// and the treasury can pay the recruitment cost.
func (u UseCase) maybeRecruitGuard(m *royal.Monarch, rng *rand.Rand) {
	if len(m.Guards) >= royal.MaxRoyalGuards || rng.Float64() >= 0.10 {
		return
	}
	if m.Treasury < royal.GuardRecruitmentCost {
		return
	}
	for _, npc := range u.candidates() {
		if !npc.Alive || npc.Imprisoned || npc.Level < 5 || npc.Name == m.Name {
			continue
		}
		if hasGuard(m, npc.Name) {
			continue
		}
		if !m.Withdraw(royal.GuardRecruitmentCost) {
			return
		}
		m.Guards = append(m.Guards, royal.RoyalGuard{
			Name:        npc.Name,
			Sex:         npc.Sex,
			DailySalary: royal.BaseGuardSalary,
			Loyalty:     70 + rng.Intn(31),
			IsActive:    true,
		})
		u.newsf("%s has joined the Royal Guard!", npc.Name)
		return
	}
}

func (u UseCase) candidates() []royal.Candidate {
	if u.Actors == nil {
		return nil
	}
	live := u.Actors.ListLiveNPCs()
	out := make([]royal.Candidate, 0, len(live))
	for _, a := range live {
		out = append(out, royal.Candidate{
			Name:       a.Stats.Name,
			Sex:        a.Sex,
			Class:      a.Class,
			Level:      a.Stats.Level,
			Charisma:   a.Charisma,
			Chivalry:   a.Chivalry,
			Darkness:   a.Darkness,
			Wealth:     a.Gold,
			Alive:      a.Alive,
			Imprisoned: a.Imprisoned,
		})
	}
	return out
}

func hasGuard(m *royal.Monarch, name string) bool {
	for _, g := range m.Guards {
		if g.Name == name {
			return true
		}
	}
	return false
}

func (u UseCase) newsf(format string, args ...any) {
	if u.Notifier != nil {
		u.Notifier.PublishNews(fmt.Sprintf(format, args...))
	}
}
