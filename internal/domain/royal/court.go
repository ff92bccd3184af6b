package royal

import (
	"fmt"
	"math/rand"
	"time"
)

var courtRoles = []string{"Royal Advisor", "Court Steward", "Marshal", "Spymaster", "Treasurer"}

var courtFactions = []CourtFaction{FactionNobility, FactionClergy, FactionMilitary, FactionMerchants}

var plotTypes = []PlotType{PlotAssassination, PlotCoup, PlotScandal, PlotSabotage}

// CourtEvent describes something the politics tick did, for the news feed.
type CourtEvent struct {
	Kind    string
	Message string
}

// InitializeCourt fills the five standing court positions for a new reign.
func (m *Monarch) InitializeCourt(rng *rand.Rand) {
	if len(m.CourtMembers) > 0 {
		return
	}
	for _, role := range courtRoles {
		m.CourtMembers = append(m.CourtMembers, CourtMember{
			Name:          generateCourtierName(rng),
			Role:          role,
			Faction:       courtFactions[rng.Intn(len(courtFactions))],
			Influence:     40 + rng.Intn(41),
			LoyaltyToKing: 50 + rng.Intn(41),
		})
	}
}

// TickCourtIntrigue runs one politics step. Active plots always advance
// toward discovery or execution; new plots only form when allowNewPlots is
// set (the world tick gates that on a low per-tick chance).
func (m *Monarch) TickCourtIntrigue(rng *rand.Rand, now time.Time, allowNewPlots bool) []CourtEvent {
	if !m.IsActive {
		return nil
	}
	if len(m.CourtMembers) == 0 {
		m.InitializeCourt(rng)
	}

	var events []CourtEvent
	if allowNewPlots {
		if evt := m.maybeStartPlot(rng, now); evt != nil {
			events = append(events, *evt)
		}
	}

	plots := append([]CourtPlot(nil), m.ActivePlots...)
	for i := range plots {
		events = append(events, m.advancePlot(&plots[i], rng)...)
	}
	return events
}

func (m *Monarch) maybeStartPlot(rng *rand.Rand, now time.Time) *CourtEvent {
	if len(m.ActivePlots) >= 3 {
		return nil
	}
	var unhappy []int
	for i, c := range m.CourtMembers {
		if c.LoyaltyToKing < 40 && !c.IsPlotting {
			unhappy = append(unhappy, i)
		}
	}
	if len(unhappy) < 2 {
		return nil
	}
	take := 2 + rng.Intn(3)
	if take > len(unhappy) {
		take = len(unhappy)
	}
	names := make([]string, 0, take)
	for _, idx := range unhappy[:take] {
		m.CourtMembers[idx].IsPlotting = true
		names = append(names, m.CourtMembers[idx].Name)
	}
	plot := CourtPlot{
		Type:         plotTypes[rng.Intn(len(plotTypes))],
		Conspirators: names,
		Target:       m.Name,
		Progress:     10 + rng.Intn(21),
		StartedAt:    now,
	}
	m.ActivePlots = append(m.ActivePlots, plot)
	return &CourtEvent{Kind: "plot_started", Message: fmt.Sprintf("whispers of a %s stir in the court of %s", plot.Type, m.Titled())}
}

func (m *Monarch) advancePlot(plot *CourtPlot, rng *rand.Rand) []CourtEvent {
	if plot.IsDiscovered {
		return nil
	}
	plot.Progress += 5 + rng.Intn(11)

	// Bigger conspiracies leak sooner.
	discoveryChance := 0.02 + float64(len(plot.Conspirators))*0.01
	if rng.Float64() < discoveryChance {
		m.discoverPlot(plot)
		return []CourtEvent{{
			Kind:    "plot_discovered",
			Message: fmt.Sprintf("a %s plot against %s was discovered", plot.Type, m.Titled()),
		}}
	}

	if plot.Progress >= 100 {
		return m.executePlot(plot)
	}
	m.replacePlot(*plot)
	return nil
}

func (m *Monarch) discoverPlot(plot *CourtPlot) {
	for _, name := range plot.Conspirators {
		for i := len(m.CourtMembers) - 1; i >= 0; i-- {
			if m.CourtMembers[i].Name == name {
				m.CourtMembers = append(m.CourtMembers[:i], m.CourtMembers[i+1:]...)
			}
		}
	}
	m.dropPlot(plot)
}

func (m *Monarch) executePlot(plot *CourtPlot) []CourtEvent {
	var events []CourtEvent
	switch plot.Type {
	case PlotAssassination:
		m.Treasury /= 2
		events = append(events, CourtEvent{Kind: "plot_executed", Message: fmt.Sprintf("%s narrowly survived an assassination attempt", m.Titled())})
	case PlotCoup:
		if !m.adjustTreasury(-10000) {
			m.Treasury = 0
		}
		deserted := 0
		for i := len(m.Guards) - 1; i >= 0; i-- {
			if m.Guards[i].Loyalty < 50 {
				m.Guards = append(m.Guards[:i], m.Guards[i+1:]...)
				deserted++
			}
		}
		events = append(events, CourtEvent{Kind: "plot_executed", Message: fmt.Sprintf("%d guards joined a coup against %s", deserted, m.Titled())})
	case PlotScandal:
		m.TaxRate -= 10
		if m.TaxRate < 0 {
			m.TaxRate = 0
		}
		events = append(events, CourtEvent{Kind: "plot_executed", Message: fmt.Sprintf("scandal rocks the reign of %s", m.Titled())})
	case PlotSabotage:
		if !m.adjustTreasury(-5000) {
			m.Treasury = 0
		}
		events = append(events, CourtEvent{Kind: "plot_executed", Message: "the royal treasury has been plundered"})
	}

	for _, name := range plot.Conspirators {
		for i := range m.CourtMembers {
			if m.CourtMembers[i].Name == name {
				m.CourtMembers[i].IsPlotting = false
			}
		}
	}
	m.dropPlot(plot)
	return events
}

func (m *Monarch) replacePlot(updated CourtPlot) {
	for i := range m.ActivePlots {
		if m.ActivePlots[i].StartedAt.Equal(updated.StartedAt) && m.ActivePlots[i].Type == updated.Type {
			m.ActivePlots[i] = updated
			return
		}
	}
}

func (m *Monarch) dropPlot(plot *CourtPlot) {
	for i := range m.ActivePlots {
		if m.ActivePlots[i].StartedAt.Equal(plot.StartedAt) && m.ActivePlots[i].Type == plot.Type {
			m.ActivePlots = append(m.ActivePlots[:i], m.ActivePlots[i+1:]...)
			return
		}
	}
}

var courtierTitles = []string{"Lord", "Lady", "Sir", "Baron", "Countess", "Duke", "Duchess"}

var courtierHouses = []string{
	"Blackwood", "Ashford", "Ironside", "Goldstein", "Silverhart",
	"Ravencroft", "Thornwood", "Nightingale", "Stormwind", "Darkhaven",
}

func generateCourtierName(rng *rand.Rand) string {
	return courtierTitles[rng.Intn(len(courtierTitles))] + " " + courtierHouses[rng.Intn(len(courtierHouses))]
}
