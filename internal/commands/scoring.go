package commands

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Scoring holds the point awards for play. The exact values are tunable;
// the ordering Win > Pickup > Explore is what the game balance relies on,
// and Validate enforces it.
type Scoring struct {
	Explore int `json:"explore"`
	Pickup  int `json:"pickup"`
	Win     int `json:"win"`
}

// DefaultScoring returns the standard awards.
func DefaultScoring() Scoring {
	return Scoring{
		Explore: 5,
		Pickup:  10,
		Win:     100,
	}
}

func (s Scoring) Validate() error {
	el := errors.NewErrorList()

	if s.Explore < 0 || s.Pickup < 0 || s.Win < 0 {
		el.Add(fmt.Errorf("scoring values must be non-negative"))
	}
	if s.Pickup <= s.Explore {
		el.Add(fmt.Errorf("pickup award (%d) must exceed explore award (%d)", s.Pickup, s.Explore))
	}
	if s.Win <= s.Pickup {
		el.Add(fmt.Errorf("win award (%d) must exceed pickup award (%d)", s.Win, s.Pickup))
	}

	return el.Err()
}
