// internal/hint/hint.go
//
// Advisory hints for a game in progress.
// A Hinter reads the turn history plus the secret and returns one short
// sentence for the player. Hinters never touch game state and never fail:
// any error turns into a fallback string.

package hint

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/robalobadob/senha/internal/game"
)

const (
	// FallbackUnavailable is returned when a hint could not be produced.
	FallbackUnavailable = "Could not produce a hint right now."
	// FallbackBusy is returned when the hint service errored or timed out.
	FallbackBusy = "The hint service is thinking too hard... try again later."
)

// Hinter produces an advisory hint for the given history and secret.
type Hinter interface {
	Hint(ctx context.Context, guesses []game.Guess, secret game.Code) string
}

// HinterFunc adapts a function to the Hinter interface.
type HinterFunc func(ctx context.Context, guesses []game.Guess, secret game.Code) string

func (f HinterFunc) Hint(ctx context.Context, guesses []game.Guess, secret game.Code) string {
	return f(ctx, guesses, secret)
}

// Summarize renders the history one line per turn:
//
//	Attempt 1: [red, blue, green, green] -> [exact, partial]
//
// Turns without any exact or partial peg read "-> [no hits]".
func Summarize(guesses []game.Guess) string {
	lines := make([]string, 0, len(guesses))
	for i, g := range guesses {
		colors := make([]string, len(g.Colors))
		for j, c := range g.Colors {
			colors[j] = c.String()
		}
		var pegs []string
		for _, f := range g.Feedback {
			if f != game.FeedbackNone {
				pegs = append(pegs, string(f))
			}
		}
		result := "no hits"
		if len(pegs) > 0 {
			result = strings.Join(pegs, ", ")
		}
		lines = append(lines, fmt.Sprintf("Attempt %d: [%s] -> [%s]", i+1, strings.Join(colors, ", "), result))
	}
	return strings.Join(lines, "\n")
}

// Reveals reports whether text names the full secret in order.
// Only color words count, so separators and filler between them
// ("red, green, blue and yellow", "Red / Green") do not hide it.
func Reveals(text string, secret game.Code) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !unicode.IsLetter(r) })
	var seen []game.Color
	for _, w := range words {
		if c := game.ParseColor(w); c != game.NoColor {
			seen = append(seen, c)
		}
	}
	for i := 0; i+len(secret) <= len(seen); i++ {
		if game.Code(seen[i:i+len(secret)]) == secret {
			return true
		}
	}
	return false
}

// Guard wraps h so empty answers become FallbackUnavailable and answers
// that spell out the secret are replaced by a local hint.
func Guard(h Hinter) Hinter {
	return HinterFunc(func(ctx context.Context, guesses []game.Guess, secret game.Code) string {
		text := strings.TrimSpace(h.Hint(ctx, guesses, secret))
		switch {
		case text == "":
			return FallbackUnavailable
		case Reveals(text, secret):
			return Local{}.Hint(ctx, guesses, secret)
		}
		return text
	})
}

// Async runs h in its own goroutine and delivers exactly one string.
// The caller passes snapshots; the result channel is buffered so an
// abandoned request never blocks the worker.
func Async(ctx context.Context, h Hinter, guesses []game.Guess, secret game.Code) <-chan string {
	out := make(chan string, 1)
	guesses = append([]game.Guess(nil), guesses...)
	go func() {
		out <- h.Hint(ctx, guesses, secret)
	}()
	return out
}
