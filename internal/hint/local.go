package hint

import (
	"context"
	"fmt"
	"strings"

	"github.com/robalobadob/senha/internal/game"
)

// Local is an offline Hinter that reasons only from the peg counts.
// It is used when no remote service is configured and as the replacement
// for remote answers that give the code away.
type Local struct{}

func (Local) Hint(_ context.Context, guesses []game.Guess, _ game.Code) string {
	if len(guesses) == 0 {
		return "Start with two pairs of colors to learn quickly which ones are in the code."
	}

	if absent := absentColors(guesses); len(absent) > 0 {
		last := guesses[len(guesses)-1]
		if exact, partial := game.Count(last.Feedback); exact+partial == 0 {
			return fmt.Sprintf("None of %s are in the code. Drop them and try new colors.", strings.Join(absent, ", "))
		}
	}

	exact, partial := game.Count(guesses[len(guesses)-1].Feedback)
	switch {
	case exact+partial == game.CodeLength:
		return "You already have every color. Now only the order is missing."
	case exact == 0 && partial > 0:
		return fmt.Sprintf("%d of your colors are right but all are in the wrong place. Try new positions.", partial)
	case exact > 0 && partial == 0:
		return fmt.Sprintf("%d peg(s) are already in place. Keep some colors fixed and swap the others for new ones.", exact)
	default:
		return fmt.Sprintf("%d in place and %d misplaced. Keep the position of some colors and move the rest.", exact, partial)
	}
}

// absentColors lists colors from turns that scored no pegs at all.
func absentColors(guesses []game.Guess) []string {
	seen := map[game.Color]bool{}
	var out []string
	for _, g := range guesses {
		if exact, partial := game.Count(g.Feedback); exact+partial > 0 {
			continue
		}
		for _, c := range g.Colors {
			if !seen[c] {
				seen[c] = true
				out = append(out, c.String())
			}
		}
	}
	return out
}
