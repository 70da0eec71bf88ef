// internal/game/types.go
//
// Core type definitions for the Senha (Mastermind) game engine.
// Defines:
//   - Color: one peg color from the fixed 8-color palette.
//   - Feedback: per-peg result of a submitted guess (exact/partial/none).
//   - Status: coarse game state (playing/won/lost).
//   - Guess: an immutable record of one submitted turn.
//   - Game: state for a single in-progress or finished game.

package game

import "strings"

const (
	// CodeLength is the number of pegs in the secret, the draft and every guess.
	CodeLength = 4
	// MaxTurns is the number of guesses allowed before the game is lost.
	MaxTurns = 10
)

// Color is a single peg color. The zero value NoColor marks an empty draft slot.
type Color uint8

const (
	NoColor Color = iota
	Red
	Green
	Blue
	Yellow
	Purple
	Orange
	Cyan
	Pink
)

var colorNames = [...]string{
	NoColor: "",
	Red:     "red",
	Green:   "green",
	Blue:    "blue",
	Yellow:  "yellow",
	Purple:  "purple",
	Orange:  "orange",
	Cyan:    "cyan",
	Pink:    "pink",
}

// String returns the lowercase color name ("" for NoColor).
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return ""
}

// MarshalText encodes the color as its name so JSON payloads read "red", not 1.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText accepts a color name; unknown names decode to NoColor.
func (c *Color) UnmarshalText(b []byte) error {
	*c = ParseColor(string(b))
	return nil
}

// ParseColor maps a case-insensitive color name to a Color.
// Unknown or empty names map to NoColor.
func ParseColor(s string) Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NoColor
	}
	for i, n := range colorNames {
		if n == s {
			return Color(i)
		}
	}
	return NoColor
}

// Difficulty selects the palette used for secrets and guesses.
type Difficulty string

const (
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

var (
	normalPalette = []Color{Red, Green, Blue, Yellow, Purple, Orange}
	hardPalette   = []Color{Red, Green, Blue, Yellow, Purple, Orange, Cyan, Pink}
)

// ParseDifficulty maps "hard" (any case) to Hard; everything else is Normal.
func ParseDifficulty(s string) Difficulty {
	if strings.EqualFold(strings.TrimSpace(s), string(Hard)) {
		return Hard
	}
	return Normal
}

// Palette returns a copy of the colors available at difficulty d.
func (d Difficulty) Palette() []Color {
	p := normalPalette
	if d == Hard {
		p = hardPalette
	}
	return append([]Color(nil), p...)
}

// Allows reports whether c is part of d's palette.
func (d Difficulty) Allows(c Color) bool {
	if c == NoColor {
		return false
	}
	p := normalPalette
	if d == Hard {
		p = hardPalette
	}
	for _, x := range p {
		if x == c {
			return true
		}
	}
	return false
}

// Feedback represents the evaluation of a single peg in a submitted guess.
//   - "exact":   correct color in the correct position.
//   - "partial": color is in the secret but at another position.
//   - "none":    no unmatched occurrence of the color remains in the secret.
type Feedback string

const (
	FeedbackExact   Feedback = "exact"
	FeedbackPartial Feedback = "partial"
	FeedbackNone    Feedback = "none"
)

// rank orders feedback for display: exact first, then partial, then none.
func (f Feedback) rank() int {
	switch f {
	case FeedbackExact:
		return 0
	case FeedbackPartial:
		return 1
	default:
		return 2
	}
}

// Status is the game state. It only moves forward: playing → won | lost.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Code is a full-length color sequence (secret, draft or guess).
type Code [CodeLength]Color

// Full reports whether every slot holds a color.
func (c Code) Full() bool {
	for _, x := range c {
		if x == NoColor {
			return false
		}
	}
	return true
}

// Empty reports whether every slot is NoColor.
func (c Code) Empty() bool { return c == Code{} }

// Filled counts the non-empty slots.
func (c Code) Filled() int {
	n := 0
	for _, x := range c {
		if x != NoColor {
			n++
		}
	}
	return n
}

// Guess is one submitted turn. It is never modified after being recorded.
type Guess struct {
	Turn     int                  `json:"turn"`
	Colors   Code                 `json:"colors"`
	Feedback [CodeLength]Feedback `json:"feedback"`
}

// Game holds the state of a single game session.
// All mutation goes through the methods in engine.go.
type Game struct {
	ID         string     // Unique game identifier (uuid).
	Difficulty Difficulty // Palette selector for this game.
	Secret     Code       // Hidden code; fixed once the game starts.
	Guesses    []Guess    // Submitted turns, oldest first.
	Turn       int        // Number of submitted guesses.
	Status     Status     // playing → won | lost.
	Draft      Code       // Row being built for the current turn.
	Selected   Color      // Palette color picked for tap-to-fill.

	src ColorSource
}
