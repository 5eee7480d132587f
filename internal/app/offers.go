package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/careersim/internal/adapters/repository"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/metrics"
)

// AcceptOffer charges offer to the clubs' ledgers and moves the athlete.
// The buying club's budgets are re-checked at commit time, so an offer made
// earlier in the tick can still fail with repository.ErrInsufficientBudget.
func (s *Service) AcceptOffer(ctx context.Context, athleteID string, offer model.Offer) (*model.Athlete, error) {
	unlock := s.lockAthlete(athleteID)
	defer unlock()

	a, err := s.store.Athlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if err := s.accept(ctx, a, offer); err != nil {
		return nil, err
	}
	if err := s.store.PutAthlete(ctx, a); err != nil {
		return nil, err
	}
	metrics.RecordOfferAccepted(string(offer.Kind))
	return a.Clone(), nil
}

func validateOffer(a *model.Athlete, offer model.Offer) error {
	switch {
	case a.Retired:
		return fmt.Errorf("athlete %q: %w", a.ID, ErrAthleteRetired)
	case a.OnLoan():
		return fmt.Errorf("athlete %q is on loan: %w", a.ID, ErrInvalidOffer)
	case offer.ClubID == "" || offer.ClubID == a.TeamID:
		return fmt.Errorf("offer from club %q: %w", offer.ClubID, ErrInvalidOffer)
	case offer.Kind == model.OfferTransfer && (offer.Transfer == nil || offer.Loan != nil):
		return fmt.Errorf("transfer offer %q without transfer terms: %w", offer.ID, ErrInvalidOffer)
	case offer.Kind == model.OfferLoan && (offer.Loan == nil || offer.Transfer != nil):
		return fmt.Errorf("loan offer %q without loan terms: %w", offer.ID, ErrInvalidOffer)
	case offer.Kind != model.OfferTransfer && offer.Kind != model.OfferLoan:
		return fmt.Errorf("offer kind %q: %w", offer.Kind, ErrInvalidOffer)
	}
	return nil
}

// accept commits the movement and rewrites the athlete's contract. The
// caller holds the athlete lock and stores the athlete afterwards.
func (s *Service) accept(ctx context.Context, a *model.Athlete, offer model.Offer) error {
	if err := validateOffer(a, offer); err != nil {
		return err
	}
	if err := s.store.Commit(ctx, repository.MovementFor(a, offer)); err != nil {
		return fmt.Errorf("accept offer %q: %w", offer.ID, err)
	}

	from := a.TeamID
	switch offer.Kind {
	case model.OfferTransfer:
		a.TeamID = offer.ClubID
		a.Wage = offer.Transfer.Wage
		a.ContractYears = offer.Transfer.ContractYears
		a.SeasonsAtClub = 0
		a.Career.Clubs++
	case model.OfferLoan:
		a.ParentTeamID = a.TeamID
		a.TeamID = offer.ClubID
		a.LoanSeasonsLeft = max(offer.Loan.Seasons, 1)
		a.LoanWeekly = offer.Loan.WeeklyContribution
	}
	a.SquadStatus = offer.ExpectedStatus.Clamp()

	s.logger.Info(ctx, "offer accepted",
		logger.String("athlete", a.ID),
		logger.String("kind", string(offer.Kind)),
		logger.String("from", from),
		logger.String("to", offer.ClubID),
		logger.Int64("fee", offer.UpfrontCost()),
		logger.Int64("weekly", offer.WeeklyCost()),
	)
	return nil
}

// endLoan sends the athlete back to the parent club. The parent takes the
// borrower's contribution back onto its bill; when its ledger has no room the
// borrower is still released so the loan never outlives its term.
func (s *Service) endLoan(ctx context.Context, a *model.Athlete) error {
	m := repository.Movement{
		Buyer:    a.ParentTeamID,
		Seller:   a.TeamID,
		Weekly:   a.LoanWeekly,
		Released: a.LoanWeekly,
	}
	if err := s.store.Commit(ctx, m); err != nil {
		if !errors.Is(err, repository.ErrInsufficientBudget) {
			return fmt.Errorf("end loan of %q: %w", a.ID, err)
		}
		s.logger.Warn(ctx, "parent club over wage budget on loan return",
			logger.String("athlete", a.ID),
			logger.String("parent", a.ParentTeamID),
		)
		if err := s.store.Release(ctx, a.TeamID, a.LoanWeekly); err != nil {
			return fmt.Errorf("end loan of %q: %w", a.ID, err)
		}
	}

	s.logger.Info(ctx, "loan ended",
		logger.String("athlete", a.ID),
		logger.String("from", a.TeamID),
		logger.String("to", a.ParentTeamID),
	)
	a.TeamID = a.ParentTeamID
	a.ParentTeamID = ""
	a.LoanSeasonsLeft = 0
	a.LoanWeekly = 0
	return nil
}

// retire takes the athlete off the market and frees its wage.
func (s *Service) retire(ctx context.Context, a *model.Athlete) error {
	wage := a.Wage
	if a.OnLoan() {
		if err := s.store.Release(ctx, a.TeamID, a.LoanWeekly); err != nil {
			return fmt.Errorf("retire %q: %w", a.ID, err)
		}
		wage = max(a.Wage-a.LoanWeekly, 0)
		a.TeamID = a.ParentTeamID
		a.ParentTeamID = ""
		a.LoanSeasonsLeft = 0
		a.LoanWeekly = 0
	}
	if err := s.store.Release(ctx, a.TeamID, wage); err != nil {
		return fmt.Errorf("retire %q: %w", a.ID, err)
	}
	a.Retired = true
	a.ContractYears = 0
	metrics.RecordRetirement()
	s.logger.Info(ctx, "athlete retired",
		logger.String("athlete", a.ID),
		logger.Int("age", a.Age),
		logger.Int("seasons", a.Career.Seasons),
		logger.Int("matches", a.Career.Matches),
		logger.Int("goals", a.Career.Goals),
	)
	return nil
}
