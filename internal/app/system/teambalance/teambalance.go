// internal/app/system/teambalance/teambalance.go
// Package teambalance chooses which team a newly registered user joins.
//
// The rule: find the smallest member count across the organization's teams,
// collect every team at that size, and pick one of them uniformly at random.
package teambalance

import (
	"errors"
	"math/rand/v2"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoTeams is returned when there is nothing to choose from.
var ErrNoTeams = errors.New("teambalance: no teams to choose from")

// Candidate is a team and its current member count.
type Candidate struct {
	TeamID  primitive.ObjectID
	Members int64
}

// Picker selects a least-populated team. IntN must return a uniformly
// distributed value in [0, n); it defaults to math/rand/v2.IntN.
type Picker struct {
	IntN func(n int) int
}

// New returns a Picker using the global random source.
func New() *Picker {
	return &Picker{IntN: rand.IntN}
}

// Smallest returns the candidates whose member count equals the minimum,
// in input order.
func Smallest(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	minSize := cands[0].Members
	for _, c := range cands[1:] {
		if c.Members < minSize {
			minSize = c.Members
		}
	}
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Members == minSize {
			out = append(out, c)
		}
	}
	return out
}

// Pick returns one of the smallest candidates, each equally likely.
func (p *Picker) Pick(cands []Candidate) (Candidate, error) {
	smallest := Smallest(cands)
	if len(smallest) == 0 {
		return Candidate{}, ErrNoTeams
	}
	if len(smallest) == 1 {
		return smallest[0], nil
	}
	intn := p.IntN
	if intn == nil {
		intn = rand.IntN
	}
	return smallest[intn(len(smallest))], nil
}
