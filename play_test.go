package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/senha/internal/game"
	"github.com/robalobadob/senha/internal/hint"
)

func newTestPlayer(input string) (*player, *bytes.Buffer) {
	secret := game.Code{game.Red, game.Green, game.Blue, game.Yellow}
	var out bytes.Buffer
	return &player{
		in:      bufio.NewScanner(strings.NewReader(input)),
		out:     &out,
		g:       game.New(game.Normal, game.WithSource(game.SourceFor(game.Normal, secret))),
		hinter:  hint.Guard(hint.Local{}),
		timeout: time.Second,
	}, &out
}

func TestPlayWin(t *testing.T) {
	p, out := newTestPlayer("red\n2=green\n3\nyellow\nd\nyellow\ns\nq\n")
	if err := p.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if p.g.Status != game.StatusWon || p.g.Turn != 1 {
		t.Fatalf("status=%s turn=%d\n%s", p.g.Status, p.g.Turn, out)
	}
	if !strings.Contains(out.String(), "cracked it") {
		t.Fatalf("missing win line:\n%s", out)
	}
}

func TestPlayRejectsIncompleteSubmit(t *testing.T) {
	p, out := newTestPlayer("red\ns\nq\n")
	if err := p.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if p.g.Turn != 0 || !strings.Contains(out.String(), "fill every slot") {
		t.Fatalf("turn=%d\n%s", p.g.Turn, out)
	}
}

func TestPlayHintAndNewGame(t *testing.T) {
	p, out := newTestPlayer("h\nn hard\nq\n")
	if err := p.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if p.g.Difficulty != game.Hard || p.g.Turn != 0 {
		t.Fatalf("new game not started: %+v", p.g)
	}
	if !strings.Contains(out.String(), "thinking about a hint") {
		t.Fatalf("hint not requested:\n%s", out)
	}
}

func TestPlayNewGameKeepsDifficulty(t *testing.T) {
	p, _ := newTestPlayer("n hard\nred\nn\nq\n")
	if err := p.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if p.g.Difficulty != game.Hard || !p.g.Draft.Empty() {
		t.Fatalf("difficulty=%s draft=%v", p.g.Difficulty, p.g.Draft)
	}
}

func TestPlayNewGameLeavesDaily(t *testing.T) {
	p, _ := newTestPlayer("n\nq\n")
	p.daily = true
	first := p.g
	if err := p.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if p.daily || p.g == first || p.g.Status != game.StatusPlaying {
		t.Fatalf("daily=%v replaced=%v status=%s", p.daily, p.g != first, p.g.Status)
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p, _ := newTestPlayer("")
	p.in = bufio.NewScanner(r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.run(ctx) }()

	if _, err := io.WriteString(w, "red\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run still waiting for input after cancel")
	}
}

func TestPlayColorByNumber(t *testing.T) {
	p, _ := newTestPlayer("")
	if c := p.color("3"); c != game.Blue {
		t.Fatalf("color(3) = %v", c)
	}
	if c := p.color("9"); c != game.NoColor {
		t.Fatalf("color(9) = %v", c)
	}
	if c := p.color("pink"); c != game.Pink {
		t.Fatalf("color(pink) = %v", c)
	}
}
