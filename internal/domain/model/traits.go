package model

import (
	"fmt"
	"sort"
)

// TraitName is one of the closed set of earnable perks.
type TraitName string

// Traits.
const (
	TraitPoacher        TraitName = "poacher"
	TraitPlaymaker      TraitName = "playmaker"
	TraitMarksman       TraitName = "marksman"
	TraitSpeedster      TraitName = "speedster"
	TraitDribbler       TraitName = "dribbler"
	TraitEngine         TraitName = "engine"
	TraitWall           TraitName = "wall"
	TraitShotStopper    TraitName = "shot_stopper"
	TraitLeader         TraitName = "leader"
	TraitBigGamePlayer  TraitName = "big_game_player"
	TraitProdigy        TraitName = "prodigy"
	TraitVeteran        TraitName = "veteran"
	TraitIronMan        TraitName = "iron_man"
	TraitInjuryProne    TraitName = "injury_prone"
	TraitHotHead        TraitName = "hot_head"
	TraitConsistent     TraitName = "consistent"
	TraitClubLegend     TraitName = "club_legend"
	TraitOneClubMan     TraitName = "one_club_man"
	TraitSetPiece       TraitName = "set_piece_specialist"
	TraitAerialThreat   TraitName = "aerial_threat"
	TraitCleanSheetKing TraitName = "clean_sheet_king"
)

// AllTraits lists every TraitName.
var AllTraits = []TraitName{
	TraitPoacher, TraitPlaymaker, TraitMarksman, TraitSpeedster, TraitDribbler, TraitEngine,
	TraitWall, TraitShotStopper, TraitLeader, TraitBigGamePlayer, TraitProdigy, TraitVeteran,
	TraitIronMan, TraitInjuryProne, TraitHotHead, TraitConsistent, TraitClubLegend,
	TraitOneClubMan, TraitSetPiece, TraitAerialThreat, TraitCleanSheetKing,
}

// TraitTier grades a trait. Values are ordered.
type TraitTier int

// Tiers, low to high.
const (
	Bronze TraitTier = iota + 1
	Silver
	Gold
	Diamond
)

func (t TraitTier) String() string {
	switch t {
	case Bronze:
		return "bronze"
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	case Diamond:
		return "diamond"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Trait is the list view of one held trait.
type Trait struct {
	Name TraitName
	Tier TraitTier
}

// Traits holds at most one tier per trait name.
type Traits map[TraitName]TraitTier

// Has reports whether the trait is held.
func (t Traits) Has(name TraitName) bool {
	_, ok := t[name]
	return ok
}

// Grant adds the trait or upgrades it in place. It returns false when the
// trait is already held at the same or a higher tier.
func (t Traits) Grant(name TraitName, tier TraitTier) bool {
	if cur, ok := t[name]; ok && cur >= tier {
		return false
	}
	t[name] = tier
	return true
}

// Remove drops the trait and reports whether it was held.
func (t Traits) Remove(name TraitName) bool {
	if _, ok := t[name]; !ok {
		return false
	}
	delete(t, name)
	return true
}

// List returns the held traits sorted by name.
func (t Traits) List() []Trait {
	out := make([]Trait, 0, len(t))
	for name, tier := range t {
		out = append(out, Trait{Name: name, Tier: tier})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
