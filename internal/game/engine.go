// internal/game/engine.go
//
// Session controller for a single Senha game.
// Responsibilities:
//   - Create new games and draw secrets from the difficulty palette.
//   - Edit the draft row (set slot, tap-to-fill, delete last).
//   - Submit the draft, score it and record the turn.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Invalid requests (bad index, incomplete draft, finished game) are
//     silent no-ops; callers gate submission with CanSubmit.
//   - A Game is owned by one caller at a time; it does no locking itself.
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Option customises a new Game.
type Option func(*Game)

// WithSource injects the color source used to draw secrets.
func WithSource(src ColorSource) Option {
	return func(g *Game) {
		if src != nil {
			g.src = src
		}
	}
}

// WithID overrides the generated game ID.
func WithID(id string) Option {
	return func(g *Game) {
		if id != "" {
			g.ID = id
		}
	}
}

// New constructs a game and starts it at difficulty d.
// Without WithSource the secret is drawn from crypto/rand.
func New(d Difficulty, opts ...Option) *Game {
	g := &Game{ID: uuid.NewString(), src: cryptoSource{}}
	for _, o := range opts {
		o(g)
	}
	g.StartNewGame(d)
	return g
}

// StartNewGame draws a fresh secret and resets turn, history, draft and status.
func (g *Game) StartNewGame(d Difficulty) {
	if d != Hard {
		d = Normal
	}
	if g.src == nil {
		g.src = cryptoSource{}
	}
	g.Difficulty = d
	g.Secret = drawSecret(g.src, d)
	g.Guesses = []Guess{}
	g.Turn = 0
	g.Status = StatusPlaying
	g.Draft = Code{}
	g.Selected = d.Palette()[0]
}

// SetDraftSlot writes c into draft slot i.
// No-op unless the game is playing, i is in range and c is in the palette.
func (g *Game) SetDraftSlot(i int, c Color) {
	if g.Status != StatusPlaying || i < 0 || i >= CodeLength || !g.Difficulty.Allows(c) {
		return
	}
	g.Draft[i] = c
}

// SelectColor makes c the selected color and fills the first empty slot with it.
func (g *Game) SelectColor(c Color) {
	if g.Status != StatusPlaying || !g.Difficulty.Allows(c) {
		return
	}
	g.Selected = c
	for i, x := range g.Draft {
		if x == NoColor {
			g.Draft[i] = c
			return
		}
	}
}

// FillSlot places the selected color into slot i.
func (g *Game) FillSlot(i int) { g.SetDraftSlot(i, g.Selected) }

// ClearLastFilledSlot empties the highest-index filled draft slot.
func (g *Game) ClearLastFilledSlot() {
	if g.Status != StatusPlaying {
		return
	}
	for i := CodeLength - 1; i >= 0; i-- {
		if g.Draft[i] != NoColor {
			g.Draft[i] = NoColor
			return
		}
	}
}

// CanSubmit reports whether SubmitGuess would record a turn.
func (g *Game) CanSubmit() bool {
	return g.Status == StatusPlaying && g.Draft.Full()
}

// SubmitGuess scores the draft and records the turn.
// Returns the recorded guess and true, or a zero Guess and false when the
// game is over or the draft is incomplete (state is left untouched).
//
// State transitions:
//   - All pegs exact → won.
//   - Else if the turn count reaches MaxTurns → lost.
func (g *Game) SubmitGuess() (Guess, bool) {
	if !g.CanSubmit() {
		return Guess{}, false
	}
	guess := Guess{
		Turn:     g.Turn,
		Colors:   g.Draft,
		Feedback: ComputeFeedback(g.Secret, g.Draft),
	}

	status := StatusPlaying
	switch {
	case allExact(guess.Feedback):
		status = StatusWon
	case g.Turn+1 >= MaxTurns:
		status = StatusLost
	}

	g.Guesses = append(g.Guesses, guess)
	g.Turn++
	g.Draft = Code{}
	g.Status = status
	return guess, true
}

// Snapshot returns a deep copy safe to hand to another goroutine.
func (g *Game) Snapshot() Game {
	cp := *g
	cp.Guesses = append([]Guess(nil), g.Guesses...)
	cp.src = nil
	return cp
}

// Instruction returns the helper line shown above the palette.
func (g *Game) Instruction() string {
	if g.Status.Terminal() {
		return "Game over"
	}
	switch empty := CodeLength - g.Draft.Filled(); empty {
	case CodeLength:
		return "Tap the colors below to fill the row"
	case 0:
		return "Ready! Submit your guess"
	case 1:
		return "1 slot left"
	default:
		return fmt.Sprintf("%d slots left", empty)
	}
}
