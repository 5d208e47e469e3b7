package game

import (
	"github.com/pthm-cable/thrust/action"
	"github.com/pthm-cable/thrust/input"
)

// dispatch applies each event fully before reading the next.
func (g *Game) dispatch(events []input.Event) (quit bool, err error) {
	for _, e := range events {
		if e.Quits() {
			quit = true
		}
		if _, err := action.Dispatch(e, g.playerAcc, g.registry); err != nil {
			return quit, err
		}
	}
	return quit, nil
}
