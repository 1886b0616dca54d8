package maze

import "slices"

const blank = ' '

// Markers maps layout characters to cell tags. Each tag needs at least one
// character; further characters are synonyms. A space is always blank.
type Markers struct {
	Start []rune
	Goal  []rune
	Wall  []rune
}

// DefaultMarkers returns the `$`, `X`, `#` marker set.
func DefaultMarkers() Markers {
	return Markers{
		Start: []rune{'$'},
		Goal:  []rune{'X'},
		Wall:  []rune{'#'},
	}
}

// lookup builds the rune to tag table, failing on an unusable configuration.
func (mk Markers) lookup() (map[rune]Value, error) {
	table := map[rune]Value{blank: Empty}
	sets := []struct {
		runes []rune
		value Value
	}{{mk.Start, Start}, {mk.Goal, Goal}, {mk.Wall, Wall}}

	for _, set := range sets {
		if len(set.runes) == 0 {
			return nil, ErrInvalidMarkers
		}
		for _, r := range set.runes {
			if prev, taken := table[r]; taken && prev != set.value {
				return nil, ErrInvalidMarkers
			}
			table[r] = set.value
		}
	}
	return table, nil
}

// glyph returns the canonical character for v.
func (mk Markers) glyph(v Value) rune {
	switch v {
	case Start:
		return mk.Start[0]
	case Goal:
		return mk.Goal[0]
	case Wall:
		return mk.Wall[0]
	default:
		return blank
	}
}

func (mk Markers) clone() Markers {
	return Markers{
		Start: slices.Clone(mk.Start),
		Goal:  slices.Clone(mk.Goal),
		Wall:  slices.Clone(mk.Wall),
	}
}
