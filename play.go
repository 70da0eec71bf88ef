package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/senha/internal/config"
	"github.com/robalobadob/senha/internal/daily"
	"github.com/robalobadob/senha/internal/game"
	"github.com/robalobadob/senha/internal/hint"
	"github.com/robalobadob/senha/internal/render"
)

const playHelp = `commands:
  <n> | <color>   select a color (fills the first empty slot)
  <slot>=<color>  put a color in slot 1-4, e.g. 2=blue
  d               delete the last filled slot
  s               submit the row
  h               ask for a hint
  n [normal|hard] start a new game with a random code (same difficulty by default)
  q               quit`

func playCmd() *cobra.Command {
	var (
		hard  bool
		today bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(settings)
			if err != nil {
				return err
			}
			d := game.Normal
			if hard {
				d = game.Hard
			}
			var opts []game.Option
			if today {
				opts = append(opts, game.WithSource(daily.Source(time.Now(), cfg.DailySalt)))
			}
			p := &player{
				in:      bufio.NewScanner(os.Stdin),
				out:     os.Stdout,
				g:       game.New(d, opts...),
				hinter:  hint.Guard(newHinter(cfg)),
				timeout: cfg.HintTimeout,
				daily:   today,
			}
			return p.run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "use the 8-color palette")
	cmd.Flags().BoolVar(&today, "daily", false, "play the code of the day")
	return cmd
}

// player drives one terminal session. It is the only owner of g.
type player struct {
	in      *bufio.Scanner
	out     io.Writer
	g       *game.Game
	hinter  hint.Hinter
	timeout time.Duration

	daily   bool          // current game uses the code of the day
	pending <-chan string // in-flight hint, if any
}

// run reads commands until q, end of input or ctx is done.
func (p *player) run(ctx context.Context) error {
	lines, errc := p.scan(ctx)
	fmt.Fprintln(p.out, playHelp)
	p.show()
	for {
		p.flushHint(false)
		fmt.Fprint(p.out, "> ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			return <-errc
		}
		if quit := p.exec(ctx, strings.TrimSpace(line)); quit {
			p.flushHint(true)
			return nil
		}
	}
}

// scan feeds input lines to a channel so run can also watch ctx.
// The channel is closed at end of input and the scanner error is sent on errc.
func (p *player) scan(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for p.in.Scan() {
			select {
			case lines <- p.in.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- p.in.Err()
	}()
	return lines, errc
}

// exec applies one command line and reports whether to quit.
func (p *player) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}
	switch cmd := fields[0]; {
	case cmd == "q" || cmd == "quit":
		return true
	case cmd == "d" || cmd == "del":
		p.g.ClearLastFilledSlot()
	case cmd == "s" || cmd == "submit":
		if !p.g.CanSubmit() {
			fmt.Fprintln(p.out, "fill every slot before submitting")
			return false
		}
		p.g.SubmitGuess()
	case cmd == "h" || cmd == "hint":
		if p.pending == nil {
			snap := p.g.Snapshot()
			hctx, cancel := context.WithTimeout(ctx, p.timeout)
			ch := hint.Async(hctx, p.hinter, snap.Guesses, snap.Secret)
			out := make(chan string, 1)
			go func() {
				defer cancel()
				out <- <-ch
			}()
			p.pending = out
			fmt.Fprintln(p.out, "thinking about a hint...")
		}
		return false
	case cmd == "n" || cmd == "new":
		d := p.g.Difficulty
		if len(fields) > 1 {
			d = game.ParseDifficulty(fields[1])
		}
		if p.daily {
			p.g = game.New(d)
			p.daily = false
		} else {
			p.g.StartNewGame(d)
		}
		p.pending = nil
	case strings.Contains(cmd, "="):
		slot, color, _ := strings.Cut(cmd, "=")
		n, err := strconv.Atoi(slot)
		if err != nil {
			fmt.Fprintln(p.out, "unknown slot", slot)
			return false
		}
		p.g.SetDraftSlot(n-1, game.ParseColor(color))
	default:
		c := p.color(cmd)
		if c == game.NoColor {
			fmt.Fprintln(p.out, playHelp)
			return false
		}
		p.g.SelectColor(c)
	}
	p.show()
	return false
}

// color resolves a palette number (1-based) or a color name.
func (p *player) color(s string) game.Color {
	palette := p.g.Difficulty.Palette()
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(palette) {
			return palette[n-1]
		}
		return game.NoColor
	}
	return game.ParseColor(s)
}

// flushHint prints a finished hint; with wait it blocks until one arrives.
func (p *player) flushHint(wait bool) {
	if p.pending == nil {
		return
	}
	if wait {
		fmt.Fprintln(p.out, "hint:", <-p.pending)
		p.pending = nil
		return
	}
	select {
	case h := <-p.pending:
		fmt.Fprintln(p.out, "hint:", h)
		p.pending = nil
	default:
	}
}

func (p *player) show() {
	v := p.g.View()
	render.Board(p.out, v)
	if !v.Status.Terminal() {
		render.Palette(p.out, v)
	} else {
		fmt.Fprintln(p.out, "type n for a new game or q to quit")
	}
}
