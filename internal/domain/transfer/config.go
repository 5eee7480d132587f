package transfer

import (
	"fmt"

	"github.com/okian/careersim/internal/domain/model"
)

// ProfileConfig shapes club profiling.
type ProfileConfig struct {
	// Score = reputation*ReputationWeight + (6 - tier)*TierWeight.
	ReputationWeight float64 `koanf:"reputation_weight"`
	TierWeight       float64 `koanf:"tier_weight"`
	// Tier thresholds on the score.
	EliteScore    float64 `koanf:"elite_score"`
	MajorScore    float64 `koanf:"major_score"`
	StandardScore float64 `koanf:"standard_score"`
	LowerScore    float64 `koanf:"lower_score"`

	FinancialExponent float64 `koanf:"financial_exponent"`
	BudgetScale       float64 `koanf:"budget_scale"`
	BudgetExponent    float64 `koanf:"budget_exponent"`
	WageScale         float64 `koanf:"wage_scale"`
	WageExponent      float64 `koanf:"wage_exponent"`

	// WageCapFraction is the share of the weekly wage budget one player may take.
	WageCapFraction map[string]float64 `koanf:"wage_cap_fraction"`
	// Jitter spreads ambition and activity per club, deterministically.
	Jitter float64 `koanf:"jitter"`
}

// EligibilityConfig shapes who may bid.
type EligibilityConfig struct {
	// TooHighMargin excludes clubs whose expected starter exceeds the
	// athlete's ceiling by more than this.
	TooHighMargin float64 `koanf:"too_high_margin"`
	// TooLowMargin excludes clubs whose expected starter is this far below.
	TooLowMargin float64 `koanf:"too_low_margin"`
	// ReputationGap excludes clubs this far above the athlete's own standing.
	ReputationGap float64 `koanf:"reputation_gap"`
	// Visibility is the scouting visibility by the athlete's league tier (1-5).
	Visibility     []float64 `koanf:"visibility"`
	LuckyChance    float64   `koanf:"lucky_chance"`
	LuckyMaxAge    int       `koanf:"lucky_max_age"`
	LuckyPotential int       `koanf:"lucky_potential"`
	// CeilingMaxAge is the age up to which potential, not overall, is the ceiling.
	CeilingMaxAge int `koanf:"ceiling_max_age"`
}

// FitWeights blend the five fit scores.
type FitWeights struct {
	Status    float64 `koanf:"status"`
	Financial float64 `koanf:"financial"`
	Cultural  float64 `koanf:"cultural"`
	Tactical  float64 `koanf:"tactical"`
	Career    float64 `koanf:"career"`
}

// InterestConfig shapes club interest and ranking.
type InterestConfig struct {
	Ambition     float64 `koanf:"ambition"`
	Activity     float64 `koanf:"activity"`
	Desirability float64 `koanf:"desirability"`
	RivalPenalty float64 `koanf:"rival_penalty"`
	MinInterest  float64 `koanf:"min_interest"`
	// StyleNeed scales interest by club style and the athlete's position group.
	StyleNeed map[model.Style]map[model.PositionGroup]float64 `koanf:"style_need"`
	// IdealDepth is the squad size per group a club aims for.
	IdealDepth map[model.PositionGroup]int `koanf:"ideal_depth"`
	ShortDepth float64                     `koanf:"short_depth"`
	DeepDepth  float64                     `koanf:"deep_depth"`

	InterestBlend float64 `koanf:"interest_blend"`
	FitBlend      float64 `koanf:"fit_blend"`
	BaseOffers    int     `koanf:"base_offers"`
	OffersPerStep float64 `koanf:"offers_per_step"`
	SeekingOffers int     `koanf:"seeking_offers"`
	MaxOffers     int     `koanf:"max_offers"`
}

// LoanBand is the loan chance for athletes up to MaxAge.
type LoanBand struct {
	MaxAge int     `koanf:"max_age"`
	Chance float64 `koanf:"chance"`
}

// ContractBand is the contract length offered to athletes up to MaxAge.
type ContractBand struct {
	MaxAge int `koanf:"max_age"`
	Years  int `koanf:"years"`
}

// NegotiationConfig shapes offer terms.
type NegotiationConfig struct {
	ValueBase     float64 `koanf:"value_base"`
	ValueGrowth   float64 `koanf:"value_growth"`
	WageBase      float64 `koanf:"wage_base"`
	WageGrowth    float64 `koanf:"wage_growth"`
	BudgetSlack   float64 `koanf:"budget_slack"`
	FloorFraction float64 `koanf:"floor_fraction"`
	// SustainableFraction caps the committed wage bill as a share of the budget.
	SustainableFraction float64 `koanf:"sustainable_fraction"`
	FeeRounding         int64   `koanf:"fee_rounding"`

	DesirabilityPremium float64 `koanf:"desirability_premium"`
	LongContractPremium float64 `koanf:"long_contract_premium"`
	WealthPremium       float64 `koanf:"wealth_premium"`
	SeekingDiscount     float64 `koanf:"seeking_discount"`
	SurplusDiscount     float64 `koanf:"surplus_discount"`

	CompetitionStep float64 `koanf:"competition_step"`
	CompetitionMax  int     `koanf:"competition_max"`

	LoanMaxOverall int     `koanf:"loan_max_overall"`
	LoanMinPct     float64 `koanf:"loan_min_pct"`
	LoanMaxPct     float64 `koanf:"loan_max_pct"`
	// LoanChance is ordered by MaxAge; older athletes get LoanChanceOver.
	LoanChance     []LoanBand `koanf:"loan_chance"`
	LoanChanceOver float64    `koanf:"loan_chance_over"`
	// Athletes up to LoanLongMaxAge are loaned for LoanLongSeasons, others
	// for one season.
	LoanLongMaxAge  int `koanf:"loan_long_max_age"`
	LoanLongSeasons int `koanf:"loan_long_seasons"`

	// ContractYears is ordered by MaxAge; older athletes get ContractYearsOver.
	ContractYears     []ContractBand `koanf:"contract_years"`
	ContractYearsOver int            `koanf:"contract_years_over"`
}

// Config holds every transfer market table.
type Config struct {
	MaxAge      int               `koanf:"max_age"`
	Profile     ProfileConfig     `koanf:"profile"`
	Eligibility EligibilityConfig `koanf:"eligibility"`
	Fit         FitWeights        `koanf:"fit"`
	Interest    InterestConfig    `koanf:"interest"`
	Negotiation NegotiationConfig `koanf:"negotiation"`
}

// DefaultConfig returns the calibrated tables.
func DefaultConfig() Config {
	return Config{
		MaxAge: 36,
		Profile: ProfileConfig{
			ReputationWeight:  0.7,
			TierWeight:        6,
			EliteScore:        88,
			MajorScore:        74,
			StandardScore:     58,
			LowerScore:        42,
			FinancialExponent: 2.2,
			BudgetScale:       250_000_000,
			BudgetExponent:    4.5,
			WageScale:         4_000_000,
			WageExponent:      3.5,
			WageCapFraction: map[string]float64{
				Elite.String():    0.12,
				Major.String():    0.10,
				Standard.String(): 0.08,
				Lower.String():    0.07,
				Minor.String():    0.06,
			},
			Jitter: 10,
		},
		Eligibility: EligibilityConfig{
			TooHighMargin:  8,
			TooLowMargin:   25,
			ReputationGap:  45,
			Visibility:     []float64{1, 1, 0.6, 0.35, 0.2},
			LuckyChance:    0.15,
			LuckyMaxAge:    21,
			LuckyPotential: 80,
			CeilingMaxAge:  23,
		},
		Fit: FitWeights{Status: 0.30, Financial: 0.20, Cultural: 0.10, Tactical: 0.15, Career: 0.25},
		Interest: InterestConfig{
			Ambition:     0.25,
			Activity:     0.20,
			Desirability: 0.55,
			RivalPenalty: 40,
			MinInterest:  15,
			StyleNeed:    defaultStyleNeed(),
			IdealDepth: map[model.PositionGroup]int{
				model.Goalkeepers: 3,
				model.Defenders:   8,
				model.Midfielders: 8,
				model.Forwards:    5,
			},
			ShortDepth:    1.2,
			DeepDepth:     0.8,
			InterestBlend: 0.55,
			FitBlend:      0.45,
			BaseOffers:    2,
			OffersPerStep: 1.0 / 25,
			SeekingOffers: 3,
			MaxOffers:     8,
		},
		Negotiation: NegotiationConfig{
			ValueBase:           20_000,
			ValueGrowth:         0.165,
			WageBase:            100,
			WageGrowth:          0.13,
			BudgetSlack:         0.05,
			FloorFraction:       0.95,
			SustainableFraction: 0.95,
			FeeRounding:         10_000,
			DesirabilityPremium: 0.3,
			LongContractPremium: 0.1,
			WealthPremium:       0.15,
			SeekingDiscount:     0.85,
			SurplusDiscount:     0.8,
			CompetitionStep:     0.04,
			CompetitionMax:      5,
			LoanMaxOverall:      80,
			LoanMinPct:          30,
			LoanMaxPct:          100,
			LoanChance: []LoanBand{
				{MaxAge: 19, Chance: 0.55},
				{MaxAge: 21, Chance: 0.45},
				{MaxAge: 23, Chance: 0.25},
			},
			LoanChanceOver:  0.08,
			LoanLongMaxAge:  20,
			LoanLongSeasons: 2,
			ContractYears: []ContractBand{
				{MaxAge: 23, Years: 5},
				{MaxAge: 28, Years: 4},
				{MaxAge: 31, Years: 3},
				{MaxAge: 33, Years: 2},
			},
			ContractYearsOver: 1,
		},
	}
}

func defaultStyleNeed() map[model.Style]map[model.PositionGroup]float64 {
	even := map[model.PositionGroup]float64{
		model.Goalkeepers: 1, model.Defenders: 1, model.Midfielders: 1, model.Forwards: 1,
	}
	return map[model.Style]map[model.PositionGroup]float64{
		model.StyleBalanced:   even,
		model.StylePossession: {model.Goalkeepers: 0.9, model.Defenders: 0.95, model.Midfielders: 1.25, model.Forwards: 1.0},
		model.StyleCounter:    {model.Goalkeepers: 0.9, model.Defenders: 1.05, model.Midfielders: 0.95, model.Forwards: 1.2},
		model.StylePressing:   {model.Goalkeepers: 0.9, model.Defenders: 1.0, model.Midfielders: 1.15, model.Forwards: 1.1},
		model.StyleDirect:     {model.Goalkeepers: 0.9, model.Defenders: 1.1, model.Midfielders: 0.9, model.Forwards: 1.2},
		model.StyleDefensive:  {model.Goalkeepers: 1.15, model.Defenders: 1.25, model.Midfielders: 1.0, model.Forwards: 0.85},
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	p := c.Profile
	switch {
	case c.MaxAge <= 0:
		return fmt.Errorf("max_age %d: %w", c.MaxAge, ErrInvalidConfig)
	case !(p.EliteScore > p.MajorScore && p.MajorScore > p.StandardScore && p.StandardScore > p.LowerScore):
		return fmt.Errorf("profile tier scores must decrease: %w", ErrInvalidConfig)
	case len(c.Eligibility.Visibility) != 5:
		return fmt.Errorf("visibility needs one entry per league tier: %w", ErrInvalidConfig)
	case c.Interest.MaxOffers < c.Interest.SeekingOffers || c.Interest.MaxOffers <= 0:
		return fmt.Errorf("max_offers %d: %w", c.Interest.MaxOffers, ErrInvalidConfig)
	case c.Negotiation.BudgetSlack < 0 || c.Negotiation.SustainableFraction <= 0 || c.Negotiation.SustainableFraction > 1:
		return fmt.Errorf("budget slack or sustainable fraction: %w", ErrInvalidConfig)
	case c.Negotiation.ContractYearsOver < 1:
		return fmt.Errorf("contract_years_over %d: %w", c.Negotiation.ContractYearsOver, ErrInvalidConfig)
	}
	for i, b := range c.Negotiation.LoanChance {
		if b.Chance < 0 || b.Chance > 1 || (i > 0 && b.MaxAge <= c.Negotiation.LoanChance[i-1].MaxAge) {
			return fmt.Errorf("loan_chance band %d: %w", i, ErrInvalidConfig)
		}
	}
	for i, b := range c.Negotiation.ContractYears {
		if b.Years < 1 || (i > 0 && b.MaxAge <= c.Negotiation.ContractYears[i-1].MaxAge) {
			return fmt.Errorf("contract_years band %d: %w", i, ErrInvalidConfig)
		}
	}
	w := c.Fit
	if sum := w.Status + w.Financial + w.Cultural + w.Tactical + w.Career; sum <= 0 {
		return fmt.Errorf("fit weights sum to %v: %w", sum, ErrInvalidConfig)
	}
	return nil
}
