// Package transfer profiles clubs, scores their fit with an athlete, and
// negotiates the resulting offers under each club's budget.
//
// Evaluation reads club ledgers but never writes them; committing an accepted
// offer is the caller's transactional step.
package transfer

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/pkg/rng"
)

// DropReason explains why a club produced no offer.
type DropReason string

// Drop reasons.
const (
	DropCurrent    DropReason = "current_club"
	DropParent     DropReason = "parent_club"
	DropYouth      DropReason = "youth_team"
	DropTooHigh    DropReason = "too_high"
	DropOutOfReach DropReason = "out_of_reach"
	DropTooLow     DropReason = "too_low"
	DropUnscouted  DropReason = "unscouted"
	DropNoInterest DropReason = "no_interest"
	DropRanked     DropReason = "ranked_out"
	DropBudget     DropReason = "transfer_budget"
	DropWageCap    DropReason = "wage_cap"
	DropWageBudget DropReason = "wage_budget"
)

// Request is one evaluation's input. Clubs is the candidate pool as read from
// the ledger store; it should include the athlete's current club.
type Request struct {
	Athlete *model.Athlete
	Stats   model.SeasonStats
	Clubs   []model.Team
	Rivals  model.Rivalries
	// Seeking marks an athlete who is actively pushing for a move.
	Seeking bool
}

// Evaluation is the ranked offer list plus bookkeeping for observers.
type Evaluation struct {
	Offers       []model.Offer
	Desirability float64
	Eligible     int
	Dropped      map[DropReason]int
}

// Engine runs the four market phases.
type Engine struct {
	cfg      Config
	squad    *squad.Machine
	profiler *Profiler
	rand     *rng.RNG
	roll     rng.Roller
	newID    func() string
}

// New builds an Engine. m supplies expected starter levels and roles.
func New(m *squad.Machine, opts ...Option) *Engine {
	e := &Engine{
		cfg:   DefaultConfig(),
		squad: m,
		rand:  rng.New(1),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.roll == nil {
		e.roll = e.rand
	}
	e.profiler = NewProfiler(e.cfg.Profile, m)
	return e
}

// Profile exposes the cached club profile.
func (e *Engine) Profile(team model.Team) ClubProfile { return e.profiler.Profile(team) }

// Tradeable reports whether the athlete can receive offers at all.
func (e *Engine) Tradeable(a *model.Athlete) bool {
	if a.Retired || a.Age > e.cfg.MaxAge {
		return false
	}
	return a.Injury == nil || a.Injury.Severity != model.CareerEnding
}

type candidate struct {
	team     model.Team
	prof     ClubProfile
	role     model.SquadStatus
	fit      model.TransferFit
	interest float64
	score    float64
}

// Evaluate produces the ranked offers for one athlete. Degenerate inputs
// yield an empty list, never an error.
func (e *Engine) Evaluate(req Request) Evaluation {
	out := Evaluation{Dropped: map[DropReason]int{}}
	a := req.Athlete
	if a == nil || !e.Tradeable(a) {
		return out
	}
	out.Desirability = Desirability(a, req.Stats)

	curTeam := model.Team{ID: a.TeamID, LeagueTier: 5}
	for _, t := range req.Clubs {
		if t.ID == a.TeamID {
			curTeam = t
			break
		}
	}
	cur := e.profiler.Profile(curTeam)

	var pool []candidate
	for _, team := range req.Clubs {
		prof := e.profiler.Profile(team)
		if reason, ok := e.eligible(a, team, curTeam, prof); !ok {
			out.Dropped[reason]++
			continue
		}
		out.Eligible++

		role := e.squad.ExpectedRole(a.Overall(), a.Potential, a.Age, team)
		est := e.baseWage(a, prof, role)
		fit := e.fit(a, cur, prof, curTeam, team, role, est)
		interest := e.interest(prof, team, a.Position().Group(), out.Desirability)
		if req.Rivals.Rivals(team.ID, a.TeamID) || (a.ParentTeamID != "" && req.Rivals.Rivals(team.ID, a.ParentTeamID)) {
			interest -= e.cfg.Interest.RivalPenalty
		}
		interest = rng.Clamp(interest, 0, 100)
		if interest < e.cfg.Interest.MinInterest {
			out.Dropped[DropNoInterest]++
			continue
		}
		pool = append(pool, candidate{
			team:     team,
			prof:     prof,
			role:     role,
			fit:      fit,
			interest: interest,
			score:    e.cfg.Interest.InterestBlend*interest + e.cfg.Interest.FitBlend*fit.Overall,
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score > pool[j].score
		}
		return pool[i].team.ID < pool[j].team.ID
	})
	n := e.OfferCount(out.Desirability, req.Seeking)
	if len(pool) > n {
		out.Dropped[DropRanked] += len(pool) - n
		pool = pool[:n]
	}

	for _, c := range pool {
		offer, reason, ok := e.negotiate(a, c, cur, len(pool)-1, req.Seeking, out.Desirability)
		if !ok {
			out.Dropped[reason]++
			continue
		}
		out.Offers = append(out.Offers, offer)
	}
	sort.SliceStable(out.Offers, func(i, j int) bool { return out.Offers[i].Score > out.Offers[j].Score })
	return out
}

// OfferCount is how many top-ranked clubs get to make an offer.
func (e *Engine) OfferCount(desirability float64, seeking bool) int {
	c := e.cfg.Interest
	n := c.BaseOffers + int(rng.Clamp(desirability, 0, 100)*c.OffersPerStep)
	if seeking && n < c.SeekingOffers {
		n = c.SeekingOffers
	}
	if n > c.MaxOffers {
		n = c.MaxOffers
	}
	return n
}

// eligible runs the exclusion and scouting filters.
func (e *Engine) eligible(a *model.Athlete, team, curTeam model.Team, prof ClubProfile) (DropReason, bool) {
	c := e.cfg.Eligibility
	switch {
	case team.ID == a.TeamID:
		return DropCurrent, false
	case a.ParentTeamID != "" && team.ID == a.ParentTeamID:
		return DropParent, false
	case team.Youth && a.SeniorDebut:
		return DropYouth, false
	}

	overall := float64(a.Overall())
	ceiling := overall
	if a.Age <= c.CeilingMaxAge && float64(a.Potential) > ceiling {
		ceiling = float64(a.Potential)
	}
	standing := rng.Clamp((overall-40)*1.6, 0, 100)
	switch {
	case prof.Level > ceiling+c.TooHighMargin:
		return DropTooHigh, false
	case team.Reputation-standing > c.ReputationGap:
		return DropOutOfReach, false
	case prof.Level < overall-c.TooLowMargin:
		return DropTooLow, false
	}

	athleteTier := int(rng.Clamp(float64(curTeam.LeagueTier), 1, 5))
	if team.LeagueTier >= athleteTier {
		return "", true
	}
	vis := 1.0
	if athleteTier-1 < len(c.Visibility) {
		vis = c.Visibility[athleteTier-1]
	}
	if vis >= 1 || (vis > 0 && e.roll.Roll(vis)) {
		return "", true
	}
	if a.Age <= c.LuckyMaxAge && a.Potential >= c.LuckyPotential && c.LuckyChance > 0 && e.roll.Roll(c.LuckyChance) {
		return "", true
	}
	return DropUnscouted, false
}

// LoanProbability is the chance a club proposes a loan instead of a transfer.
func (e *Engine) LoanProbability(a *model.Athlete, team model.Team) float64 {
	n := e.cfg.Negotiation
	if a.OnLoan() || team.Youth || a.Overall() >= n.LoanMaxOverall || a.ContractYears <= 1 {
		return 0
	}
	for _, b := range n.LoanChance {
		if a.Age <= b.MaxAge {
			return b.Chance
		}
	}
	return n.LoanChanceOver
}

// negotiate builds the offer for one ranked club, or reports why none is
// feasible. Infeasible terms are dropped, never adjusted into contradiction.
func (e *Engine) negotiate(a *model.Athlete, c candidate, cur ClubProfile, competing int, seeking bool, desirability float64) (model.Offer, DropReason, bool) {
	n := e.cfg.Negotiation
	offer := model.Offer{
		ID:             e.newID(),
		ClubID:         c.team.ID,
		ClubName:       c.team.Name,
		ExpectedStatus: c.role,
		Fit:            c.fit,
		Interest:       c.interest,
		Score:          c.score,
	}

	if p := e.LoanProbability(a, c.team); p > 0 && e.roll.Roll(p) {
		pct := rng.Clamp(n.LoanMinPct+(n.LoanMaxPct-n.LoanMinPct)*c.prof.FinancialPower/100, n.LoanMinPct, n.LoanMaxPct)
		weekly := int64(math.Round(float64(a.Wage) * pct / 100))
		if reason, ok := e.affordable(c.prof, weekly); !ok {
			return model.Offer{}, reason, false
		}
		seasons := 1
		if a.Age <= n.LoanLongMaxAge && n.LoanLongSeasons > 1 {
			seasons = n.LoanLongSeasons
		}
		offer.Kind = model.OfferLoan
		offer.Loan = &model.LoanTerms{WageContributionPct: pct, WeeklyContribution: weekly, Seasons: seasons}
		return offer, "", true
	}

	fee := e.MarketValue(a)
	fee *= 1 + desirability/100*n.DesirabilityPremium
	if a.ContractYears >= 3 {
		fee *= 1 + n.LongContractPremium
	}
	fee *= 1 + c.prof.FinancialPower/100*n.WealthPremium
	if seeking {
		fee *= n.SeekingDiscount
	}
	if a.SquadStatus == model.Surplus {
		fee *= n.SurplusDiscount
	}
	feeInt := roundTo(fee, n.FeeRounding)
	if float64(feeInt) > float64(c.prof.RemainingTransferBudget)*(1+n.BudgetSlack) {
		return model.Offer{}, DropBudget, false
	}

	if competing > n.CompetitionMax {
		competing = n.CompetitionMax
	}
	wage := e.baseWage(a, c.prof, c.role)
	wage *= 0.9 + float64(a.AgentQuality)/100*0.25
	wage *= 1 + n.CompetitionStep*float64(competing)
	wage *= 0.9 + c.fit.Overall/100*0.2
	wageInt := int64(math.Round(wage))
	if c.prof.Tier >= cur.Tier {
		if floor := int64(math.Ceil(float64(a.Wage) * n.FloorFraction)); wageInt < floor {
			wageInt = floor
		}
	}
	if wageInt > c.prof.WageCap {
		return model.Offer{}, DropWageCap, false
	}
	if reason, ok := e.affordable(c.prof, wageInt); !ok {
		return model.Offer{}, reason, false
	}

	offer.Kind = model.OfferTransfer
	offer.Transfer = &model.TransferTerms{Fee: feeInt, Wage: wageInt, ContractYears: e.contractYears(a.Age)}
	return offer, "", true
}

// affordable checks a weekly commitment against the wage cap and the
// sustainable share of the wage budget.
func (e *Engine) affordable(prof ClubProfile, weekly int64) (DropReason, bool) {
	if weekly > prof.WageCap {
		return DropWageCap, false
	}
	committed := prof.WageBudgetWeekly - prof.RemainingWageBudgetWeekly
	limit := float64(prof.WageBudgetWeekly) * e.cfg.Negotiation.SustainableFraction
	if weekly > prof.RemainingWageBudgetWeekly || float64(committed+weekly) > limit {
		return DropWageBudget, false
	}
	return "", true
}

func (e *Engine) contractYears(age int) int {
	n := e.cfg.Negotiation
	for _, b := range n.ContractYears {
		if age <= b.MaxAge {
			return b.Years
		}
	}
	return max(n.ContractYearsOver, 1)
}

func roundTo(v float64, step int64) int64 {
	if step <= 1 {
		return int64(math.Round(v))
	}
	return int64(math.Round(v/float64(step))) * step
}
