package transfer

import (
	"fmt"
	"hash/fnv"
	"math"
	"sync"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/pkg/rng"
)

// ClubTier is the sporting and financial class of a club. Values are ordered.
type ClubTier int

// Club tiers, low to high.
const (
	Minor ClubTier = iota
	Lower
	Standard
	Major
	Elite
)

func (t ClubTier) String() string {
	switch t {
	case Minor:
		return "minor"
	case Lower:
		return "lower"
	case Standard:
		return "standard"
	case Major:
		return "major"
	case Elite:
		return "elite"
	}
	return fmt.Sprintf("club_tier(%d)", int(t))
}

// ClubProfile is a derived view of a Team. It is never persisted.
type ClubProfile struct {
	TeamID           string
	Tier             ClubTier
	Score            float64
	FinancialPower   float64
	Attractiveness   float64
	DevelopmentIndex float64
	Ambition         float64
	TransferActivity float64
	Style            model.Style
	// Level is the overall the club expects from a regular starter.
	Level   float64
	WageCap int64

	TransferBudget            int64
	RemainingTransferBudget   int64
	WageBudgetWeekly          int64
	RemainingWageBudgetWeekly int64
}

// Profiler derives and caches club profiles. Ledger figures are overlaid on
// every call since they are the only part of a Team that changes.
type Profiler struct {
	cfg   ProfileConfig
	squad *squad.Machine

	mu    sync.RWMutex
	cache map[string]ClubProfile
}

// NewProfiler builds a Profiler.
func NewProfiler(cfg ProfileConfig, m *squad.Machine) *Profiler {
	return &Profiler{cfg: cfg, squad: m, cache: map[string]ClubProfile{}}
}

// Profile returns the profile of team.
func (p *Profiler) Profile(team model.Team) ClubProfile {
	key := fmt.Sprintf("%s|%.2f|%d|%s|%t", team.ID, team.Reputation, team.LeagueTier, team.Style, team.Youth)
	p.mu.RLock()
	prof, ok := p.cache[key]
	p.mu.RUnlock()
	if !ok {
		prof = p.derive(team)
		p.mu.Lock()
		p.cache[key] = prof
		p.mu.Unlock()
	}
	return p.withLedger(prof, team.Finances)
}

// Reset drops every cached profile.
func (p *Profiler) Reset() {
	p.mu.Lock()
	p.cache = map[string]ClubProfile{}
	p.mu.Unlock()
}

func (p *Profiler) derive(team model.Team) ClubProfile {
	c := p.cfg
	rep := rng.Clamp(team.Reputation, 0, 100)
	tier := rng.Clamp(float64(team.LeagueTier), 1, 5)
	score := rng.Clamp(rep*c.ReputationWeight+(6-tier)*c.TierWeight, 0, 100)
	norm := score / 100

	prof := ClubProfile{
		TeamID:         team.ID,
		Tier:           p.tierOf(score),
		Score:          score,
		FinancialPower: 100 * math.Pow(norm, c.FinancialExponent),
		Attractiveness: rng.Clamp(0.6*rep+0.4*(6-tier)*20, 0, 100),
		Style:          team.Style,
		Level:          p.squad.ExpectedStarterSkill(team),
	}
	prof.DevelopmentIndex = rng.Clamp(40+(tier-1)*8+boolf(team.Youth)*20+boolf(team.Style == model.StylePossession)*5, 0, 100)

	j := jitter(team.ID) * c.Jitter
	prof.Ambition = rng.Clamp(rep*0.5+prof.FinancialPower*0.4+10+j, 0, 100)
	prof.TransferActivity = rng.Clamp(30+prof.FinancialPower*0.5-j/2, 0, 100)

	prof.TransferBudget = int64(c.BudgetScale * math.Pow(norm, c.BudgetExponent))
	prof.WageBudgetWeekly = int64(c.WageScale * math.Pow(norm, c.WageExponent))
	return prof
}

func (p *Profiler) withLedger(prof ClubProfile, f *model.Finances) ClubProfile {
	if f != nil {
		prof.TransferBudget = f.TransferBudget
		prof.RemainingTransferBudget = f.RemainingTransferBudget
		prof.WageBudgetWeekly = f.WageBudgetWeekly
		prof.RemainingWageBudgetWeekly = f.RemainingWageBudgetWeekly
	} else {
		prof.RemainingTransferBudget = prof.TransferBudget
		prof.RemainingWageBudgetWeekly = prof.WageBudgetWeekly
	}
	frac := p.cfg.WageCapFraction[prof.Tier.String()]
	prof.WageCap = int64(float64(prof.WageBudgetWeekly) * frac)
	return prof
}

func (p *Profiler) tierOf(score float64) ClubTier {
	c := p.cfg
	switch {
	case score >= c.EliteScore:
		return Elite
	case score >= c.MajorScore:
		return Major
	case score >= c.StandardScore:
		return Standard
	case score >= c.LowerScore:
		return Lower
	}
	return Minor
}

// jitter maps an ID to a stable value in [-1, 1).
func jitter(id string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return float64(h.Sum32())/float64(math.MaxUint32)*2 - 1
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
