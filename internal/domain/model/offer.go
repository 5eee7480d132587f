package model

// OfferKind tags the Offer union.
type OfferKind string

// Offer kinds.
const (
	OfferTransfer OfferKind = "transfer"
	OfferLoan     OfferKind = "loan"
)

// TransferTerms are the terms of a permanent move.
type TransferTerms struct {
	Fee           int64 `json:"fee"`
	Wage          int64 `json:"wage"`
	ContractYears int   `json:"contract_years"`
}

// LoanTerms are the terms of a temporary move. The borrowing club pays
// WageContributionPct percent of the athlete's current wage.
type LoanTerms struct {
	WageContributionPct float64 `json:"wage_contribution_pct"`
	WeeklyContribution  int64   `json:"weekly_contribution"`
	Seasons             int     `json:"seasons"`
}

// TransferFit scores athlete/club compatibility. Every score is in [0, 100].
type TransferFit struct {
	Status    float64 `json:"status"`
	Financial float64 `json:"financial"`
	Cultural  float64 `json:"cultural"`
	Tactical  float64 `json:"tactical"`
	Career    float64 `json:"career"`
	Overall   float64 `json:"overall"`
}

// Offer is a tagged union: exactly one of Transfer or Loan is set, matching Kind.
type Offer struct {
	ID             string         `json:"id"`
	Kind           OfferKind      `json:"kind"`
	ClubID         string         `json:"club_id"`
	ClubName       string         `json:"club_name"`
	ExpectedStatus SquadStatus    `json:"expected_status"`
	Fit            TransferFit    `json:"fit"`
	Interest       float64        `json:"interest"`
	Score          float64        `json:"score"`
	Transfer       *TransferTerms `json:"transfer,omitempty"`
	Loan           *LoanTerms     `json:"loan,omitempty"`
}

// WeeklyCost is what the buying club adds to its wage bill.
func (o Offer) WeeklyCost() int64 {
	switch o.Kind {
	case OfferTransfer:
		if o.Transfer != nil {
			return o.Transfer.Wage
		}
	case OfferLoan:
		if o.Loan != nil {
			return o.Loan.WeeklyContribution
		}
	}
	return 0
}

// UpfrontCost is what the buying club spends from its transfer budget.
func (o Offer) UpfrontCost() int64 {
	if o.Kind == OfferTransfer && o.Transfer != nil {
		return o.Transfer.Fee
	}
	return 0
}
