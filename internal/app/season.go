package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/careersim/internal/domain/dedupe"
	"github.com/okian/careersim/internal/domain/medical"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/progression"
	"github.com/okian/careersim/internal/domain/squad"
	"github.com/okian/careersim/internal/domain/traits"
	"github.com/okian/careersim/internal/domain/transfer"
	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/metrics"
)

const seasonAction = "season"

// SeasonInput is one season tick for one athlete.
type SeasonInput struct {
	AthleteID string
	Season    int
	// Stats is the season's match output. When nil it is drawn from the
	// configured StatsSource.
	Stats *model.SeasonStats
	// Training is this season's training spend. Zero uses the configured
	// default budget.
	Training float64
}

// SeasonReport is everything a tick changed, for display and narrative
// consumers.
type SeasonReport struct {
	Season  int
	Athlete *model.Athlete
	Team    model.Team
	Stats   model.SeasonStats

	TrainingMultiplier float64
	Progression        progression.Result
	Medical            medical.Outcome
	SuspensionsServed  map[model.Competition]int
	SendOffs           int
	Role               squad.Transition
	Traits             []traits.Event

	LoanReturned bool
	Retired      bool
	Market       transfer.Evaluation
	Accepted     *model.Offer
}

// SimulateSeason runs one season for one athlete. Each (athlete, season)
// pair runs at most once; a replay fails with ErrSeasonAlreadySimulated.
func (s *Service) SimulateSeason(ctx context.Context, in SeasonInput) (SeasonReport, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return SeasonReport{}, err
	}

	key := dedupe.Key(seasonAction, in.AthleteID, in.Season)
	if s.seasons.SeenAndRecord(ctx, key) {
		metrics.RecordSeasonError("duplicate")
		return SeasonReport{}, fmt.Errorf("athlete %q season %d: %w", in.AthleteID, in.Season, ErrSeasonAlreadySimulated)
	}

	unlock := s.lockAthlete(in.AthleteID)
	defer unlock()

	a, team, stats, err := s.prepare(ctx, in)
	if err != nil {
		s.seasons.Unrecord(ctx, key)
		return SeasonReport{}, err
	}

	rep := SeasonReport{Season: in.Season, Team: team, Stats: stats}
	s.discipline(a, stats, &rep)
	s.develop(ctx, a, in, stats, team, &rep)
	s.evaluateRole(ctx, a, team, stats, &rep)
	s.record(a, in.Season, team, stats, &rep)

	a.Age++
	if a.ContractYears > 0 {
		a.ContractYears--
	}

	if a.OnLoan() {
		a.LoanSeasonsLeft--
		if a.LoanSeasonsLeft <= 0 {
			if err := s.endLoan(ctx, a); err != nil {
				metrics.RecordSeasonError("ledger")
				return SeasonReport{}, err
			}
			rep.LoanReturned = true
		}
	}

	if s.retires(a) {
		if err := s.retire(ctx, a); err != nil {
			metrics.RecordSeasonError("ledger")
			return SeasonReport{}, err
		}
		rep.Retired = true
	} else {
		s.shop(ctx, a, stats, &rep)
	}

	if err := s.store.PutAthlete(ctx, a); err != nil {
		metrics.RecordSeasonError("store")
		return SeasonReport{}, err
	}
	if rep.Accepted != nil {
		metrics.RecordOfferAccepted(string(rep.Accepted.Kind))
	}
	rep.Athlete = a.Clone()

	metrics.RecordSeasonSimulated(time.Since(start))
	if rep.Retired {
		s.updateActive(ctx)
	}
	s.logger.Info(ctx, "season simulated",
		logger.String("athlete", a.ID),
		logger.Int("season", in.Season),
		logger.String("team", team.ID),
		logger.Int("overall", a.Overall()),
		logger.String("status", a.SquadStatus.String()),
		logger.Int("offers", len(rep.Market.Offers)),
		logger.Bool("retired", rep.Retired),
		logger.Duration("took", time.Since(start)),
	)
	return rep, nil
}

// prepare loads the athlete, its club and the season's stats.
func (s *Service) prepare(ctx context.Context, in SeasonInput) (*model.Athlete, model.Team, model.SeasonStats, error) {
	a, err := s.store.Athlete(ctx, in.AthleteID)
	if err != nil {
		metrics.RecordSeasonError("not_found")
		return nil, model.Team{}, model.SeasonStats{}, err
	}
	if a.Retired {
		metrics.RecordSeasonError("retired")
		return nil, model.Team{}, model.SeasonStats{}, fmt.Errorf("athlete %q: %w", a.ID, ErrAthleteRetired)
	}
	team, err := s.store.Team(ctx, a.TeamID)
	if err != nil {
		metrics.RecordSeasonError("not_found")
		return nil, model.Team{}, model.SeasonStats{}, err
	}

	var stats model.SeasonStats
	switch {
	case in.Stats != nil:
		stats = *in.Stats
	case s.stats != nil:
		stats = s.stats.Season(a, team)
	default:
		metrics.RecordSeasonError("no_stats")
		return nil, model.Team{}, model.SeasonStats{}, fmt.Errorf("athlete %q season %d: %w", a.ID, in.Season, ErrNoStats)
	}
	return a, team, stats, nil
}

// discipline serves pending bans against this season's fixtures, then books
// the new send-offs, which carry over to later fixtures.
func (s *Service) discipline(a *model.Athlete, stats model.SeasonStats, rep *SeasonReport) {
	rep.SuspensionsServed = medical.ServeFixtures(a, stats.Fixtures)
	for _, c := range model.AllCompetitions {
		for i := 0; i < rep.SuspensionsServed[c]; i++ {
			metrics.RecordSuspension(string(c), "served")
		}
	}
	rep.SendOffs = medical.RecordSendOffs(a, stats.SendOffs)
	for _, c := range model.AllCompetitions {
		for i := 0; i < stats.SendOffs[c]; i++ {
			metrics.RecordSuspension(string(c), "issued")
		}
	}
}

// develop applies training, ageing and the season's medical roll.
func (s *Service) develop(ctx context.Context, a *model.Athlete, in SeasonInput, stats model.SeasonStats, team model.Team, rep *SeasonReport) {
	budget := in.Training
	if budget == 0 {
		budget = s.cfg.Orchestrator.TrainingBudget
	}
	rep.TrainingMultiplier = 1
	if budget > 0 {
		mult, err := s.progression.InvestTraining(ctx, a, in.Season, budget)
		if errors.Is(err, progression.ErrTrainingAlreadyApplied) {
			metrics.RecordTrainingRejected()
			s.logger.Warn(ctx, "training already applied",
				logger.String("athlete", a.ID),
				logger.Int("season", in.Season),
			)
		}
		rep.TrainingMultiplier = mult
	}

	rep.Progression = s.progression.Progress(a, stats, rep.TrainingMultiplier)
	metrics.ObserveOverallDelta(rep.Progression.OverallAfter - rep.Progression.OverallBefore)

	rep.Medical = s.medical.Season(a, stats, team.Style)
	if rep.Medical.Injured() {
		metrics.RecordInjury(rep.Medical.Injury.Severity.String())
		s.logger.Debug(ctx, "injury sustained",
			logger.String("athlete", a.ID),
			logger.String("severity", rep.Medical.Injury.Severity.String()),
			logger.Float64("weeks", rep.Medical.Injury.WeeksRemaining),
		)
	}
	if rec := rep.Medical.Recovery; rec != nil {
		for i := 0; i < rec.Setbacks; i++ {
			metrics.RecordSetback()
		}
	}
}

func (s *Service) evaluateRole(ctx context.Context, a *model.Athlete, team model.Team, stats model.SeasonStats, rep *SeasonReport) {
	rep.Role = s.squad.Transition(squad.Input{
		Athlete:   a,
		Team:      team,
		Teammates: s.store.Roster(ctx, team.ID, a.Position().Group()),
		Stats:     stats,
	})
	a.SquadStatus = rep.Role.To
	if rep.Role.Changed() {
		metrics.RecordRoleTransition(rep.Role.Direction())
	}
}

// record books career totals and the season summary, then evaluates traits,
// which read the summary back.
func (s *Service) record(a *model.Athlete, season int, team model.Team, stats model.SeasonStats, rep *SeasonReport) {
	a.Career.Seasons++
	a.Career.Matches += stats.Matches
	a.Career.Goals += stats.Goals
	a.Career.Assists += stats.Assists
	a.Career.CleanSheets += stats.CleanSheets
	a.Career.RedCards += stats.RedCards()
	a.SeasonsAtClub++
	if stats.Matches > 0 && !team.Youth {
		a.SeniorDebut = true
	}

	a.AppendHistory(model.SeasonRecord{
		Season:      season,
		TeamID:      team.ID,
		Age:         a.Age,
		Overall:     a.Overall(),
		Status:      a.SquadStatus,
		Matches:     stats.Matches,
		Goals:       stats.Goals,
		Assists:     stats.Assists,
		Rating:      stats.AverageRating,
		CleanSheets: stats.CleanSheets,
		RedCards:    stats.RedCards(),
		Injured:     rep.Medical.Injured(),
	})

	rep.Traits = s.traits.Evaluate(traits.State{Athlete: a, Stats: stats})
	for _, ev := range rep.Traits {
		metrics.RecordTraitEvent(string(ev.Kind))
	}
}

func (s *Service) retires(a *model.Athlete) bool {
	if a.Age >= s.cfg.Orchestrator.RetirementAge {
		return true
	}
	return a.Injury != nil && a.Injury.Severity == model.CareerEnding
}

// shop runs the transfer market and, when the athlete wants out, takes the
// best offer the ledger can still afford.
func (s *Service) shop(ctx context.Context, a *model.Athlete, stats model.SeasonStats, rep *SeasonReport) {
	seeking := int(a.SquadStatus) <= s.cfg.Orchestrator.SeekingStatus || a.ContractYears == 0
	rep.Market = s.market.Evaluate(transfer.Request{
		Athlete: a,
		Stats:   stats,
		Clubs:   s.store.Teams(ctx),
		Rivals:  s.store.Rivalries(ctx),
		Seeking: seeking,
	})
	metrics.ObserveEligibleClubs(rep.Market.Eligible)
	for _, o := range rep.Market.Offers {
		metrics.RecordOfferGenerated(string(o.Kind))
	}
	for reason, n := range rep.Market.Dropped {
		for i := 0; i < n; i++ {
			metrics.RecordOfferDropped(string(reason))
		}
	}

	if !seeking || !s.cfg.Orchestrator.AutoAccept || a.OnLoan() {
		return
	}
	for i := range rep.Market.Offers {
		offer := rep.Market.Offers[i]
		err := s.accept(ctx, a, offer)
		if err == nil {
			rep.Accepted = &offer
			return
		}
		s.logger.Debug(ctx, "offer not taken",
			logger.String("athlete", a.ID),
			logger.String("club", offer.ClubID),
			logger.Error(err),
		)
	}
}
