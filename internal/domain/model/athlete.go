package model

import (
	"math"

	"github.com/okian/careersim/pkg/rng"
)

// Attribute value bounds.
const (
	AttributeMax         = 99.0
	OutfieldMin          = 10.0
	GoalkeepingMin       = 1.0
	maxHistory           = 12
	defaultAgentQuality  = 50
	defaultContractYears = 3
)

// AttributeRange returns the inclusive clamp range for a.
func AttributeRange(a Attribute) (lo, hi float64) {
	if a.Goalkeeping() {
		return GoalkeepingMin, AttributeMax
	}
	return OutfieldMin, AttributeMax
}

// Attributes maps skills to values.
type Attributes map[Attribute]float64

// Value returns a clamped to its range. Missing, NaN or infinite values read
// as the midpoint of the range.
func (a Attributes) Value(attr Attribute) float64 {
	lo, hi := AttributeRange(attr)
	v, ok := a[attr]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return lo + (hi-lo)/2
	}
	return rng.Clamp(v, lo, hi)
}

// Clone copies the map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Rater derives the overall rating from attributes for a position.
type Rater interface {
	Overall(attrs Attributes, pos Position) int
}

// Career accumulates totals across every season.
type Career struct {
	Seasons     int `json:"seasons"`
	Matches     int `json:"matches"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	CleanSheets int `json:"clean_sheets"`
	Injuries    int `json:"injuries"`
	RedCards    int `json:"red_cards"`
	Clubs       int `json:"clubs"`
}

// Injury is the single active injury an athlete may carry.
type Injury struct {
	Severity       InjurySeverity `json:"severity"`
	WeeksRemaining float64        `json:"weeks_remaining"`
	RecurrenceRisk float64        `json:"recurrence_risk"`
}

// Active reports whether the injury still keeps the athlete out.
func (i *Injury) Active() bool {
	if i == nil {
		return false
	}
	return i.Severity == CareerEnding || i.WeeksRemaining > 0
}

// SeasonRecord summarises one finished season.
type SeasonRecord struct {
	Season      int         `json:"season"`
	TeamID      string      `json:"team_id"`
	Age         int         `json:"age"`
	Overall     int         `json:"overall"`
	Status      SquadStatus `json:"status"`
	Matches     int         `json:"matches"`
	Goals       int         `json:"goals"`
	Assists     int         `json:"assists"`
	Rating      float64     `json:"rating"`
	CleanSheets int         `json:"clean_sheets"`
	RedCards    int         `json:"red_cards"`
	Injured     bool        `json:"injured"`
}

// Athlete is the aggregate root every component reads and updates.
//
// Position, attributes and overall are unexported: the only way to change
// them is through a Rater, so overall can never drift from the attributes.
type Athlete struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Age             int            `json:"age"`
	Nationality     string         `json:"nationality"`
	Potential       int            `json:"potential"`
	SquadStatus     SquadStatus    `json:"squad_status"`
	TeamID          string         `json:"team_id"`
	ParentTeamID    string         `json:"parent_team_id,omitempty"`
	LoanSeasonsLeft int            `json:"loan_seasons_left,omitempty"`
	LoanWeekly      int64          `json:"loan_weekly,omitempty"`
	Wage            int64          `json:"wage"`
	ContractYears   int            `json:"contract_years"`
	Career          Career         `json:"career"`
	Traits          Traits         `json:"traits"`
	Injury          *Injury        `json:"injury,omitempty"`
	Suspensions     Suspensions    `json:"suspensions"`
	Personality     Personality    `json:"personality"`
	AgentQuality    int            `json:"agent_quality"`
	SeniorDebut     bool           `json:"senior_debut"`
	Retired         bool           `json:"retired"`
	SeasonsAtClub   int            `json:"seasons_at_club"`
	History         []SeasonRecord `json:"history"`
	ReinjuryRisk    float64        `json:"reinjury_risk"`

	position Position
	attrs    Attributes
	overall  int
}

// NewAthlete builds an athlete and derives its overall through r.
func NewAthlete(id, name string, pos Position, age int, attrs Attributes, r Rater) *Athlete {
	a := &Athlete{
		ID:            id,
		Name:          name,
		Age:           age,
		Traits:        Traits{},
		Suspensions:   Suspensions{},
		Personality:   Balanced,
		AgentQuality:  defaultAgentQuality,
		ContractYears: defaultContractYears,
		position:      pos,
	}
	a.SetAttributes(attrs, r)
	if a.Potential < a.overall {
		a.Potential = a.overall
	}
	return a
}

// Position returns the athlete's role tag.
func (a *Athlete) Position() Position { return a.position }

// Overall returns the rating derived from the current attributes.
func (a *Athlete) Overall() int { return a.overall }

// Attributes returns a copy of the current attribute values.
func (a *Athlete) Attributes() Attributes { return a.attrs.Clone() }

// Attribute returns one clamped attribute value.
func (a *Athlete) Attribute(attr Attribute) float64 { return a.attrs.Value(attr) }

// SetAttributes replaces every attribute, clamping and rounding each value,
// and recomputes overall.
func (a *Athlete) SetAttributes(attrs Attributes, r Rater) {
	next := make(Attributes, len(AllAttributes))
	for _, attr := range AllAttributes {
		next[attr] = math.Round(attrs.Value(attr))
	}
	a.attrs = next
	a.overall = r.Overall(next, a.position)
}

// SetPosition moves the athlete to a new role and recomputes overall.
func (a *Athlete) SetPosition(pos Position, r Rater) {
	a.position = pos
	a.overall = r.Overall(a.attrs, pos)
}

// OnLoan reports whether the athlete is playing away from the parent club.
func (a *Athlete) OnLoan() bool { return a.ParentTeamID != "" }

// Available reports whether the athlete can be selected at all.
func (a *Athlete) Available() bool { return !a.Retired && !a.Injury.Active() }

// AppendHistory records a finished season, keeping the most recent entries.
func (a *Athlete) AppendHistory(rec SeasonRecord) {
	a.History = append(a.History, rec)
	if len(a.History) > maxHistory {
		a.History = append([]SeasonRecord(nil), a.History[len(a.History)-maxHistory:]...)
	}
}

// RecentHistory returns up to n most recent season records, newest last.
func (a *Athlete) RecentHistory(n int) []SeasonRecord {
	if n <= 0 || len(a.History) == 0 {
		return nil
	}
	if n > len(a.History) {
		n = len(a.History)
	}
	return a.History[len(a.History)-n:]
}

// Clone returns a deep copy suitable for reports.
func (a *Athlete) Clone() *Athlete {
	c := *a
	c.attrs = a.attrs.Clone()
	c.Traits = make(Traits, len(a.Traits))
	for k, v := range a.Traits {
		c.Traits[k] = v
	}
	c.Suspensions = a.Suspensions.Clone()
	if a.Injury != nil {
		inj := *a.Injury
		c.Injury = &inj
	}
	c.History = append([]SeasonRecord(nil), a.History...)
	return &c
}

// Normalize replaces nil ledgers so a decoded record is safe to mutate.
func (a *Athlete) Normalize() {
	if a.Traits == nil {
		a.Traits = Traits{}
	}
	if a.Suspensions == nil {
		a.Suspensions = Suspensions{}
	}
	if a.Personality == "" {
		a.Personality = Balanced
	}
}
