// Package render draws a game.View as a text table for the terminal client.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/robalobadob/senha/internal/game"
)

// Peg glyphs.
const (
	pegExact   = "●"
	pegPartial = "○"
	pegNone    = "·"
	emptySlot  = "_"
)

// Pegs renders feedback as glyphs, e.g. "●○○·".
func Pegs(fb [game.CodeLength]game.Feedback) string {
	var sb strings.Builder
	for _, f := range fb {
		switch f {
		case game.FeedbackExact:
			sb.WriteString(pegExact)
		case game.FeedbackPartial:
			sb.WriteString(pegPartial)
		default:
			sb.WriteString(pegNone)
		}
	}
	return sb.String()
}

// Colors renders a code as space-separated names, "_" for empty slots.
func Colors(c game.Code) string {
	parts := make([]string, len(c))
	for i, x := range c {
		if x == game.NoColor {
			parts[i] = emptySlot
			continue
		}
		parts[i] = x.String()
	}
	return strings.Join(parts, " ")
}

// Board writes the guess history, the draft row and the status line to w.
func Board(w io.Writer, v game.View) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"#", "Guess", "Pegs"})
	for _, g := range v.Guesses {
		tw.AppendRow(table.Row{g.Turn + 1, Colors(g.Colors), Pegs(g.Feedback)})
	}
	if !v.Status.Terminal() {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{v.Turn + 1, Colors(v.Draft), ""})
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("turn %d/%d", v.Turn, v.MaxTurns), string(v.Status)})
	tw.Render()

	switch v.Status {
	case game.StatusWon:
		fmt.Fprintf(w, "You cracked it in %d turn(s)!\n", v.Turn)
	case game.StatusLost:
		if v.Secret != nil {
			fmt.Fprintf(w, "Out of turns. The code was: %s\n", Colors(*v.Secret))
		}
	default:
		fmt.Fprintln(w, v.Instruction)
	}
}

// Palette writes the selectable colors for the view's difficulty.
func Palette(w io.Writer, v game.View) {
	names := make([]string, len(v.Palette))
	for i, c := range v.Palette {
		names[i] = fmt.Sprintf("%d:%s", i+1, c)
	}
	fmt.Fprintf(w, "colors  %s\n", strings.Join(names, "  "))
}
