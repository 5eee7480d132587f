package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/okian/careersim/internal/adapters/repository"
	service "github.com/okian/careersim/internal/app"
	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/internal/domain/traits"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func teamName(ctx context.Context, store repository.Store, id string) string {
	team, err := store.Team(ctx, id)
	if err != nil {
		return id
	}
	return team.Name
}

func money(v int64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.0fk", float64(v)/1_000)
	}
	return fmt.Sprintf("%d", v)
}

func printHeader(out io.Writer, a *model.Athlete, team model.Team) {
	accent.Fprintf(out, "%s, %d, %s at %s (tier %d)\n", a.Name, a.Age, a.Position(), team.Name, team.LeagueTier)
	neutral.Fprintf(out, "overall %d, potential %d, %s, wage %s/wk\n\n",
		a.Overall(), a.Potential, a.Personality, money(a.Wage))
}

func printSeason(ctx context.Context, out io.Writer, store repository.Store, rep service.SeasonReport) {
	a := rep.Athlete
	st := rep.Stats
	neutral.Fprintf(out, "S%-2d age %-2d %-24s %-10s ovr %2d (%+d)  %2d apps %2d g %2d a  %.2f\n",
		rep.Season, a.Age-1, rep.Team.Name, rep.Role.To, rep.Progression.OverallAfter,
		rep.Progression.OverallAfter-rep.Progression.OverallBefore,
		st.Matches, st.Goals, st.Assists, st.AverageRating)

	if rep.Role.Changed() {
		fmt.Fprintf(out, "    role %s -> %s (%s)\n", rep.Role.From, rep.Role.To, rep.Role.Reason)
	}
	if inj := rep.Medical.Injury; inj != nil {
		danger.Fprintf(out, "    %s injury, %.0f weeks out\n", inj.Severity, inj.WeeksRemaining)
	}
	if rec := rep.Medical.Recovery; rec != nil && rec.Setbacks > 0 {
		warn.Fprintf(out, "    recovery setback\n")
	}
	if rep.SendOffs > 0 {
		warn.Fprintf(out, "    %d red card(s), %d match ban(s) pending\n", rep.SendOffs, a.Suspensions.Pending())
	}
	for _, ev := range rep.Traits {
		switch ev.Kind {
		case traits.Removed:
			warn.Fprintf(out, "    lost %s\n", ev.Trait)
		default:
			success.Fprintf(out, "    %s %s (%s)\n", ev.Kind, ev.Trait, ev.To)
		}
	}
	if rep.LoanReturned {
		fmt.Fprintf(out, "    loan over, back at %s\n", teamName(ctx, store, a.TeamID))
	}
	if n := len(rep.Market.Offers); n > 0 {
		fmt.Fprintf(out, "    %d offer(s), best from %s\n", n, rep.Market.Offers[0].ClubName)
	}
	if o := rep.Accepted; o != nil {
		switch o.Kind {
		case model.OfferLoan:
			accent.Fprintf(out, "    loaned to %s for %d season(s)\n", o.ClubName, o.Loan.Seasons)
		default:
			accent.Fprintf(out, "    joined %s for %s on %s/wk\n", o.ClubName, money(o.Transfer.Fee), money(o.Transfer.Wage))
		}
	}
	if rep.Retired {
		danger.Fprintf(out, "    retired\n")
	}
}

func printSummary(ctx context.Context, out io.Writer, store repository.Store, a *model.Athlete) {
	c := a.Career
	accent.Fprintf(out, "\n%s: %d seasons, %d clubs\n", a.Name, c.Seasons, c.Clubs)
	neutral.Fprintf(out, "%d apps, %d goals, %d assists, %d clean sheets, %d injuries, %d red cards\n",
		c.Matches, c.Goals, c.Assists, c.CleanSheets, c.Injuries, c.RedCards)
	neutral.Fprintf(out, "final overall %d at %s\n", a.Overall(), teamName(ctx, store, a.TeamID))

	if list := a.Traits.List(); len(list) > 0 {
		names := make([]string, len(list))
		for i, t := range list {
			names[i] = fmt.Sprintf("%s (%s)", t.Name, t.Tier)
		}
		success.Fprintf(out, "traits: %s\n", strings.Join(names, ", "))
	}
}

func printCohort(ctx context.Context, out io.Writer, svc *service.Service, ids []string) {
	if len(ids) == 0 {
		return
	}
	accent.Fprintf(out, "\ncohort\n")
	for _, id := range ids {
		a, err := svc.Athlete(ctx, id)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  %-20s ovr %2d  %3d apps %3d g  %d clubs\n",
			a.Name, a.Overall(), a.Career.Matches, a.Career.Goals, a.Career.Clubs)
	}
}

func printLeague(out io.Writer, l repository.League) {
	teams := append([]model.Team(nil), l.Teams...)
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Country != teams[j].Country {
			return teams[i].Country < teams[j].Country
		}
		if teams[i].LeagueTier != teams[j].LeagueTier {
			return teams[i].LeagueTier < teams[j].LeagueTier
		}
		return teams[i].Reputation > teams[j].Reputation
	})
	for _, t := range teams {
		name := t.Name
		if t.Youth {
			name += " *"
		}
		f := model.Finances{}
		if t.Finances != nil {
			f = *t.Finances
		}
		neutral.Fprintf(out, "%s T%d %-26s rep %5.1f %-12s budget %7s wages %6s/wk\n",
			t.Country, t.LeagueTier, name, t.Reputation, t.Style,
			money(f.RemainingTransferBudget), money(f.WageBudgetWeekly))
	}
	accent.Fprintf(out, "%d clubs, %d rivalries\n", len(l.Teams), len(l.Rivalries))
}
