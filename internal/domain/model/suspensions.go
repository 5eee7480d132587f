package model

// Suspensions counts matches still to be served, per competition.
type Suspensions map[Competition]int

// SendOff adds one match to serve in c.
func (s Suspensions) SendOff(c Competition) {
	s[c]++
}

// Eligible reports whether the athlete may play in c without consuming anything.
func (s Suspensions) Eligible(c Competition) bool {
	return s[c] <= 0
}

// Select records a selection for c. If a suspension is pending it is served
// (decremented) and Select returns false: the athlete sits this one out.
func (s Suspensions) Select(c Competition) bool {
	if s[c] <= 0 {
		return true
	}
	s[c]--
	if s[c] == 0 {
		delete(s, c)
	}
	return false
}

// Pending returns the total matches still to serve.
func (s Suspensions) Pending() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Clone copies the ledger.
func (s Suspensions) Clone() Suspensions {
	out := make(Suspensions, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
