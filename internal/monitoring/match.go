package monitoring

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
)

// MatchMonitor tracks running totals of one match from its event stream
type MatchMonitor struct {
	mu              sync.RWMutex
	logger          zerolog.Logger
	turns           int
	produced        map[string]int
	starved         int
	starvedThisTurn int
	peakStarvation  int
	alerted         bool
	combats         int
	attackersLost   int
	defendersLost   int
	workersKilled   int
	captures        map[int]int
	research        int
	alertThreshold  int
	reportEvery     int
}

// NewMatchMonitor creates a monitor. A starvation alert is logged the first
// time alertThreshold units starve within one turn; zero disables it.
// Metrics are logged every reportEvery turns; zero disables reports.
func NewMatchMonitor(logger zerolog.Logger, alertThreshold, reportEvery int) *MatchMonitor {
	return &MatchMonitor{
		logger:         logger.With().Str("component", "MatchMonitor").Logger(),
		produced:       make(map[string]int),
		captures:       make(map[int]int),
		alertThreshold: alertThreshold,
		reportEvery:    reportEvery,
	}
}

// ID implements events.Subscriber
func (m *MatchMonitor) ID() string { return "match-monitor" }

// InterestedIn implements events.Subscriber
func (m *MatchMonitor) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeTurnStarted, events.TypeUnitProduced, events.TypeUnitStarved,
		events.TypeCombatResolved, events.TypeCityCaptured, events.TypeTechResearched:
		return true
	}
	return false
}

// HandleEvent implements events.Subscriber
func (m *MatchMonitor) HandleEvent(event events.Event) {
	m.mu.Lock()
	report := false
	alert := false

	switch e := event.(type) {
	case *events.TurnStartedEvent:
		m.turns++
		m.starvedThisTurn = 0
		m.alerted = false
		report = m.reportEvery > 0 && m.turns%m.reportEvery == 0
	case *events.UnitProducedEvent:
		m.produced[e.Kind.String()]++
	case *events.UnitStarvedEvent:
		m.starved++
		m.starvedThisTurn++
		if m.starvedThisTurn > m.peakStarvation {
			m.peakStarvation = m.starvedThisTurn
		}
		if m.alertThreshold > 0 && !m.alerted && m.starvedThisTurn >= m.alertThreshold {
			m.alerted = true
			alert = true
		}
	case *events.CombatResolvedEvent:
		if e.Defenders > 0 {
			m.combats++
		}
		if e.AttackerDied {
			m.attackersLost++
		}
		m.defendersLost += e.DefendersLost
		m.workersKilled += e.WorkersKilled
	case *events.CityCapturedEvent:
		m.captures[e.NewOwner]++
	case *events.TechResearchedEvent:
		m.research++
	}

	starvedThisTurn := m.starvedThisTurn
	m.mu.Unlock()

	if alert {
		m.logger.Warn().
			Int("starved", starvedThisTurn).
			Int("threshold", m.alertThreshold).
			Msg("Starvation wave detected")
	}
	if report {
		m.LogMetrics(zerolog.InfoLevel)
	}
}

// LogMetrics writes the current totals at level
func (m *MatchMonitor) LogMetrics(level zerolog.Level) {
	metrics := m.GetMetrics()
	m.logger.WithLevel(level).
		Int("turns", metrics.Turns).
		Interface("produced", metrics.Produced).
		Int("starved", metrics.Starved).
		Int("peak_starvation", metrics.PeakStarvation).
		Int("combats", metrics.Combats).
		Int("attackers_lost", metrics.AttackersLost).
		Int("defenders_lost", metrics.DefendersLost).
		Int("workers_killed", metrics.WorkersKilled).
		Interface("captures", metrics.Captures).
		Int("research", metrics.Research).
		Msg("Match metrics")
}

// GetMetrics returns a snapshot of the totals
func (m *MatchMonitor) GetMetrics() MatchMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MatchMetrics{
		Turns:          m.turns,
		Produced:       copyMap(m.produced),
		Starved:        m.starved,
		PeakStarvation: m.peakStarvation,
		Combats:        m.combats,
		AttackersLost:  m.attackersLost,
		DefendersLost:  m.defendersLost,
		WorkersKilled:  m.workersKilled,
		Captures:       copyMap(m.captures),
		Research:       m.research,
	}
}

// MatchMetrics contains match statistics
type MatchMetrics struct {
	Turns          int            `json:"turns"`
	Produced       map[string]int `json:"produced"`
	Starved        int            `json:"starved"`
	PeakStarvation int            `json:"peak_starvation"`
	Combats        int            `json:"combats"`
	AttackersLost  int            `json:"attackers_lost"`
	DefendersLost  int            `json:"defenders_lost"`
	WorkersKilled  int            `json:"workers_killed"`
	Captures       map[int]int    `json:"captures"`
	Research       int            `json:"research"`
}

// ProducedOf returns how many units of kind were built
func (mm MatchMetrics) ProducedOf(kind core.UnitKind) int {
	return mm.Produced[kind.String()]
}

func copyMap[K comparable](m map[K]int) map[K]int {
	result := make(map[K]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
