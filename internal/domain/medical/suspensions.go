package medical

import "github.com/okian/careersim/internal/domain/model"

// RecordSendOffs adds every sending-off to the athlete's ledger.
func RecordSendOffs(a *model.Athlete, sendOffs map[model.Competition]int) int {
	if a.Suspensions == nil {
		a.Suspensions = model.Suspensions{}
	}
	total := 0
	for comp, n := range sendOffs {
		for i := 0; i < n; i++ {
			a.Suspensions.SendOff(comp)
			total++
		}
	}
	return total
}

// ServeFixtures consumes pending suspensions against the fixtures the athlete
// was selected for, per competition. Competitions without fixtures are left
// untouched. It returns the matches missed per competition.
func ServeFixtures(a *model.Athlete, fixtures map[model.Competition]int) map[model.Competition]int {
	served := map[model.Competition]int{}
	if len(a.Suspensions) == 0 {
		return served
	}
	for comp, n := range fixtures {
		for i := 0; i < n; i++ {
			if a.Suspensions.Select(comp) {
				break
			}
			served[comp]++
		}
	}
	return served
}
