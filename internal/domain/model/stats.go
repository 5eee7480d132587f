package model

// SeasonStats is the raw match output for one athlete season, produced by the
// external league simulator.
type SeasonStats struct {
	Matches          int     `json:"matches"`
	Starts           int     `json:"starts"`
	AvailableMatches int     `json:"available_matches"`
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	AverageRating    float64 `json:"average_rating"`
	CleanSheets      int     `json:"clean_sheets"`
	YellowCards      int     `json:"yellow_cards"`
	// SendOffs counts red cards per competition.
	SendOffs map[Competition]int `json:"send_offs,omitempty"`
	// Fixtures counts the club's matches per competition for which the athlete
	// was in the selection pool. Pending suspensions are served against them.
	Fixtures map[Competition]int `json:"fixtures,omitempty"`
}

// RedCards totals SendOffs.
func (s SeasonStats) RedCards() int {
	total := 0
	for _, n := range s.SendOffs {
		total += n
	}
	return total
}

// PlayShare is matches over available matches, in [0, 1].
func (s SeasonStats) PlayShare() float64 {
	if s.AvailableMatches <= 0 {
		return 0
	}
	share := float64(s.Matches) / float64(s.AvailableMatches)
	if share > 1 {
		return 1
	}
	if share < 0 {
		return 0
	}
	return share
}
