// Package model contains the athlete and club records shared by every
// simulation component, plus the closed enumerations they are built from.
package model

import "fmt"

// Position is one of the fifteen on-pitch role tags.
type Position string

// Positions.
const (
	GK  Position = "GK"
	CB  Position = "CB"
	LB  Position = "LB"
	RB  Position = "RB"
	LWB Position = "LWB"
	RWB Position = "RWB"
	CDM Position = "CDM"
	CM  Position = "CM"
	CAM Position = "CAM"
	LM  Position = "LM"
	RM  Position = "RM"
	LW  Position = "LW"
	RW  Position = "RW"
	CF  Position = "CF"
	ST  Position = "ST"
)

// AllPositions lists every Position in depth-chart order.
var AllPositions = []Position{GK, CB, LB, RB, LWB, RWB, CDM, CM, CAM, LM, RM, LW, RW, CF, ST}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case GK, CB, LB, RB, LWB, RWB, CDM, CM, CAM, LM, RM, LW, RW, CF, ST:
		return true
	}
	return false
}

// Group returns the coarse line the position plays in.
func (p Position) Group() PositionGroup {
	switch p {
	case GK:
		return Goalkeepers
	case CB, LB, RB, LWB, RWB:
		return Defenders
	case CDM, CM, CAM, LM, RM:
		return Midfielders
	case LW, RW, CF, ST:
		return Forwards
	}
	return Midfielders
}

// PositionGroup is the line a position belongs to.
type PositionGroup string

// Position groups.
const (
	Goalkeepers PositionGroup = "goalkeepers"
	Defenders   PositionGroup = "defenders"
	Midfielders PositionGroup = "midfielders"
	Forwards    PositionGroup = "forwards"
)

// AllGroups lists every PositionGroup.
var AllGroups = []PositionGroup{Goalkeepers, Defenders, Midfielders, Forwards}

// Attribute names a trainable skill.
type Attribute string

// Outfield and mental attributes.
const (
	Pace       Attribute = "pace"
	Shooting   Attribute = "shooting"
	Passing    Attribute = "passing"
	Dribbling  Attribute = "dribbling"
	Defending  Attribute = "defending"
	Physical   Attribute = "physical"
	Stamina    Attribute = "stamina"
	Heading    Attribute = "heading"
	Vision     Attribute = "vision"
	Leadership Attribute = "leadership"
)

// Goalkeeping attributes. These clamp to their own range.
const (
	Diving      Attribute = "diving"
	Handling    Attribute = "handling"
	Reflexes    Attribute = "reflexes"
	Kicking     Attribute = "kicking"
	Positioning Attribute = "positioning"
)

// AllAttributes lists every Attribute.
var AllAttributes = []Attribute{
	Pace, Shooting, Passing, Dribbling, Defending, Physical, Stamina, Heading, Vision, Leadership,
	Diving, Handling, Reflexes, Kicking, Positioning,
}

// Goalkeeping reports whether a is a goalkeeper-specific attribute.
func (a Attribute) Goalkeeping() bool {
	switch a {
	case Diving, Handling, Reflexes, Kicking, Positioning:
		return true
	}
	return false
}

// Physical reports whether a is an athletic attribute that decays first with age.
func (a Attribute) Physical() bool {
	switch a {
	case Pace, Physical, Stamina:
		return true
	}
	return false
}

// SquadStatus is the athlete's standing in the depth chart. Values are ordered.
type SquadStatus int

// Squad statuses, low to high.
const (
	Surplus SquadStatus = iota
	Reserve
	Prospect
	Rotation
	KeyPlayer
	Captain
)

func (s SquadStatus) String() string {
	switch s {
	case Surplus:
		return "surplus"
	case Reserve:
		return "reserve"
	case Prospect:
		return "prospect"
	case Rotation:
		return "rotation"
	case KeyPlayer:
		return "key_player"
	case Captain:
		return "captain"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Clamp bounds s to the known range.
func (s SquadStatus) Clamp() SquadStatus {
	if s < Surplus {
		return Surplus
	}
	if s > Captain {
		return Captain
	}
	return s
}

// Competition identifies a suspension bucket.
type Competition string

// Competitions.
const (
	League        Competition = "league"
	Cup           Competition = "cup"
	Continental   Competition = "continental"
	StateCup      Competition = "state_cup"
	International Competition = "international"
)

// AllCompetitions lists every Competition.
var AllCompetitions = []Competition{League, Cup, Continental, StateCup, International}

// Valid reports whether c is a known competition.
func (c Competition) Valid() bool {
	switch c {
	case League, Cup, Continental, StateCup, International:
		return true
	}
	return false
}

// Personality biases several probability rolls.
type Personality string

// Personalities.
const (
	Balanced      Personality = "balanced"
	Professional  Personality = "professional"
	Ambitious     Personality = "ambitious"
	Loyal         Personality = "loyal"
	Temperamental Personality = "temperamental"
)

// AllPersonalities lists every Personality.
var AllPersonalities = []Personality{Balanced, Professional, Ambitious, Loyal, Temperamental}

// Style is a club's tactical identity.
type Style string

// Tactical styles.
const (
	StyleBalanced   Style = "balanced"
	StylePossession Style = "possession"
	StyleCounter    Style = "counter"
	StylePressing   Style = "pressing"
	StyleDirect     Style = "direct"
	StyleDefensive  Style = "defensive"
)

// AllStyles lists every Style.
var AllStyles = []Style{StyleBalanced, StylePossession, StyleCounter, StylePressing, StyleDirect, StyleDefensive}

// Aggressive reports whether the style raises contact injury risk.
func (s Style) Aggressive() bool {
	switch s {
	case StylePressing, StyleDirect:
		return true
	case StyleBalanced, StylePossession, StyleCounter, StyleDefensive:
		return false
	}
	return false
}

// InjurySeverity classifies an injury.
type InjurySeverity int

// Injury severities.
const (
	Minor InjurySeverity = iota
	Moderate
	Severe
	CareerEnding
)

func (s InjurySeverity) String() string {
	switch s {
	case Minor:
		return "minor"
	case Moderate:
		return "moderate"
	case Severe:
		return "severe"
	case CareerEnding:
		return "career_ending"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}
