package search

import (
	"fmt"
	"strings"
)

// Policy names accepted by ParsePolicy.
const (
	PolicyNone   = "none"
	PolicyDouble = "double"
	PolicyScale  = "scale"

	// DefaultScaleFactor grows the bound by 5% per breach.
	DefaultScaleFactor = 1.05
)

// Policy decides what happens once the closed set outgrows the bound.
// The zero value stops the search and returns the partial path.
type Policy struct {
	greedy bool
	factor float64
}

// Stop ends the search at the first bound breach.
func Stop() Policy {
	return Policy{}
}

// Double keeps searching and doubles the bound at each breach.
func Double() Policy {
	return Policy{greedy: true, factor: 2}
}

// Scale keeps searching and multiplies the bound by factor at each breach.
// The factor must be greater than 1.
func Scale(factor float64) Policy {
	return Policy{greedy: true, factor: factor}
}

// ParsePolicy maps a policy name to a Policy. factor is only read for
// PolicyScale, where zero selects DefaultScaleFactor.
func ParsePolicy(name string, factor float64) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyNone:
		return Stop(), nil
	case PolicyDouble:
		return Double(), nil
	case PolicyScale:
		if factor == 0 {
			factor = DefaultScaleFactor
		}
		p := Scale(factor)
		return p, p.validate()
	default:
		return Policy{}, fmt.Errorf("unknown growth policy %q", name)
	}
}

// Greedy reports whether the search continues past a bound breach.
func (p Policy) Greedy() bool { return p.greedy }

// Factor returns the growth multiplier, zero for Stop.
func (p Policy) Factor() float64 { return p.factor }

func (p Policy) String() string {
	switch {
	case !p.greedy:
		return PolicyNone
	case p.factor == 2:
		return PolicyDouble
	default:
		return fmt.Sprintf("%s(%g)", PolicyScale, p.factor)
	}
}

func (p Policy) validate() error {
	if p.greedy && !(p.factor > 1) {
		return ErrInvalidGrowthFactor
	}
	return nil
}

func (p Policy) grow(bound float64) float64 {
	return bound * p.factor
}
