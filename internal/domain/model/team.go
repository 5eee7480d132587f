package model

// Finances is a club's persisted budget ledger. Amounts are in whole currency
// units; wage figures are weekly.
type Finances struct {
	TransferBudget            int64 `json:"transfer_budget" koanf:"transfer_budget"`
	RemainingTransferBudget   int64 `json:"remaining_transfer_budget" koanf:"remaining_transfer_budget"`
	WageBudgetWeekly          int64 `json:"wage_budget_weekly" koanf:"wage_budget_weekly"`
	RemainingWageBudgetWeekly int64 `json:"remaining_wage_budget_weekly" koanf:"remaining_wage_budget_weekly"`
}

// Team is read-mostly club reference data. Only Finances changes at runtime.
type Team struct {
	ID         string                `json:"id" koanf:"id"`
	Name       string                `json:"name" koanf:"name"`
	Reputation float64               `json:"reputation" koanf:"reputation"`
	LeagueTier int                   `json:"league_tier" koanf:"league_tier"`
	Country    string                `json:"country" koanf:"country"`
	Youth      bool                  `json:"youth" koanf:"youth"`
	ParentID   string                `json:"parent_id,omitempty" koanf:"parent_id"`
	Style      Style                 `json:"style" koanf:"style"`
	Finances   *Finances             `json:"finances,omitempty" koanf:"finances"`
	Depth      map[PositionGroup]int `json:"depth,omitempty" koanf:"depth"`
}

// Clone returns a copy that shares nothing mutable with t.
func (t Team) Clone() Team {
	c := t
	if t.Finances != nil {
		f := *t.Finances
		c.Finances = &f
	}
	if t.Depth != nil {
		c.Depth = make(map[PositionGroup]int, len(t.Depth))
		for k, v := range t.Depth {
			c.Depth[k] = v
		}
	}
	return c
}

// Rivalry is an unordered pair of club IDs.
type Rivalry struct {
	A string `json:"a" koanf:"a"`
	B string `json:"b" koanf:"b"`
}

// Rivalries answers rival lookups in either direction.
type Rivalries map[string]map[string]struct{}

// NewRivalries indexes the given pairs.
func NewRivalries(pairs ...Rivalry) Rivalries {
	r := Rivalries{}
	for _, p := range pairs {
		r.Add(p.A, p.B)
	}
	return r
}

// Add records a and b as rivals.
func (r Rivalries) Add(a, b string) {
	if a == "" || b == "" || a == b {
		return
	}
	if r[a] == nil {
		r[a] = map[string]struct{}{}
	}
	if r[b] == nil {
		r[b] = map[string]struct{}{}
	}
	r[a][b] = struct{}{}
	r[b][a] = struct{}{}
}

// Rivals reports whether a and b are a defined rival pair.
func (r Rivalries) Rivals(a, b string) bool {
	_, ok := r[a][b]
	return ok
}
