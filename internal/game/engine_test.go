package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func newFixed(t *testing.T, d Difficulty, secret Code) *Game {
	t.Helper()
	g := New(d, WithSource(SourceFor(d, secret)))
	if g.Secret != secret {
		t.Fatalf("secret = %v, want %v", g.Secret, secret)
	}
	return g
}

func fill(g *Game, c Code) {
	for i, x := range c {
		g.SetDraftSlot(i, x)
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := New(Normal, WithSource(NewSeededSource(7)))
	if g.ID == "" {
		t.Fatal("expected generated id")
	}
	if g.Status != StatusPlaying || g.Turn != 0 || len(g.Guesses) != 0 || !g.Draft.Empty() {
		t.Fatalf("unexpected initial state: %+v", g)
	}
	for _, c := range g.Secret {
		if !Normal.Allows(c) {
			t.Fatalf("secret color %v outside normal palette", c)
		}
	}
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	a := New(Hard, WithSource(NewSeededSource(42)))
	b := New(Hard, WithSource(NewSeededSource(42)))
	if a.Secret != b.Secret {
		t.Fatalf("same seed produced %v and %v", a.Secret, b.Secret)
	}
}

func TestStartNewGameResets(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	fill(g, Code{Red, Red, Red, Red})
	g.SubmitGuess()
	g.SetDraftSlot(0, Blue)

	for n := 0; n < 50; n++ {
		g.StartNewGame(Hard)
		if g.Turn != 0 || len(g.Guesses) != 0 || !g.Draft.Empty() || g.Status != StatusPlaying {
			t.Fatalf("state not reset: %+v", g)
		}
		if g.Difficulty != Hard {
			t.Fatalf("difficulty = %q", g.Difficulty)
		}
		for _, c := range g.Secret {
			if !Hard.Allows(c) {
				t.Fatalf("secret color %v outside hard palette", c)
			}
		}
	}
}

func TestNormalSecretNeverUsesHardColors(t *testing.T) {
	g := New(Normal, WithSource(NewSeededSource(3)))
	for n := 0; n < 200; n++ {
		g.StartNewGame(Normal)
		for _, c := range g.Secret {
			if c == Cyan || c == Pink || c == NoColor {
				t.Fatalf("normal secret contains %v", c)
			}
		}
	}
}

func TestSetDraftSlotGuards(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	g.SetDraftSlot(-1, Red)
	g.SetDraftSlot(CodeLength, Red)
	g.SetDraftSlot(1, Cyan) // hard-only color
	g.SetDraftSlot(2, NoColor)
	if !g.Draft.Empty() {
		t.Fatalf("draft changed by invalid writes: %v", g.Draft)
	}
	g.SetDraftSlot(2, Blue)
	if g.Draft != (Code{NoColor, NoColor, Blue, NoColor}) {
		t.Fatalf("draft = %v", g.Draft)
	}
}

func TestClearLastFilledSlot(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	g.ClearLastFilledSlot()
	if !g.Draft.Empty() {
		t.Fatalf("clearing empty draft changed it: %v", g.Draft)
	}
	g.SetDraftSlot(0, Red)
	g.SetDraftSlot(2, Blue)
	g.ClearLastFilledSlot()
	if g.Draft != (Code{Red, NoColor, NoColor, NoColor}) {
		t.Fatalf("draft = %v", g.Draft)
	}
	g.ClearLastFilledSlot()
	if !g.Draft.Empty() {
		t.Fatalf("draft = %v", g.Draft)
	}
}

func TestSelectColorFillsFirstEmpty(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	g.SetDraftSlot(0, Orange)
	g.SelectColor(Purple)
	if g.Selected != Purple || g.Draft != (Code{Orange, Purple, NoColor, NoColor}) {
		t.Fatalf("selected=%v draft=%v", g.Selected, g.Draft)
	}
	g.FillSlot(3)
	if g.Draft[3] != Purple {
		t.Fatalf("draft = %v", g.Draft)
	}
	g.SelectColor(Pink)
	if g.Selected != Purple {
		t.Fatalf("hard-only color selected in normal game")
	}
}

func TestSubmitIncompleteIsNoop(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	g.SetDraftSlot(0, Red)
	g.SetDraftSlot(1, Red)
	if g.CanSubmit() {
		t.Fatal("CanSubmit true with empty slots")
	}
	if _, ok := g.SubmitGuess(); ok {
		t.Fatal("SubmitGuess applied with incomplete draft")
	}
	if g.Turn != 0 || len(g.Guesses) != 0 || g.Status != StatusPlaying {
		t.Fatalf("state changed: %+v", g)
	}
	if g.Draft != (Code{Red, Red, NoColor, NoColor}) {
		t.Fatalf("draft changed: %v", g.Draft)
	}
}

func TestWinOnFirstTurn(t *testing.T) {
	secret := Code{Red, Green, Blue, Yellow}
	g := newFixed(t, Normal, secret)
	fill(g, secret)

	guess, ok := g.SubmitGuess()
	if !ok {
		t.Fatal("submit rejected")
	}
	if g.Status != StatusWon || len(g.Guesses) != 1 || g.Turn != 1 {
		t.Fatalf("status=%s guesses=%d turn=%d", g.Status, len(g.Guesses), g.Turn)
	}
	if guess.Turn != 0 || guess.Colors != secret {
		t.Fatalf("recorded guess = %+v", guess)
	}
	if !g.Draft.Empty() {
		t.Fatalf("draft not cleared: %v", g.Draft)
	}
}

func TestLossAfterMaxTurns(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	miss := Code{Purple, Purple, Orange, Orange}
	for n := 1; n <= MaxTurns; n++ {
		fill(g, miss)
		if _, ok := g.SubmitGuess(); !ok {
			t.Fatalf("turn %d rejected", n)
		}
		if n < MaxTurns && g.Status != StatusPlaying {
			t.Fatalf("status %s after %d guesses", g.Status, n)
		}
	}
	if g.Status != StatusLost || g.Turn != MaxTurns || len(g.Guesses) != MaxTurns {
		t.Fatalf("status=%s turn=%d guesses=%d", g.Status, g.Turn, len(g.Guesses))
	}
	for i, gs := range g.Guesses {
		if gs.Turn != i {
			t.Fatalf("guess %d has turn %d", i, gs.Turn)
		}
	}
}

func TestWinOnLastTurnIsWin(t *testing.T) {
	secret := Code{Red, Green, Blue, Yellow}
	g := newFixed(t, Normal, secret)
	for n := 1; n < MaxTurns; n++ {
		fill(g, Code{Orange, Orange, Orange, Orange})
		g.SubmitGuess()
	}
	fill(g, secret)
	g.SubmitGuess()
	if g.Status != StatusWon {
		t.Fatalf("status = %s", g.Status)
	}
}

func TestTerminalGameIsFrozen(t *testing.T) {
	secret := Code{Red, Green, Blue, Yellow}
	g := newFixed(t, Normal, secret)
	fill(g, secret)
	g.SubmitGuess()

	g.SetDraftSlot(0, Red)
	g.SelectColor(Blue)
	g.ClearLastFilledSlot()
	if _, ok := g.SubmitGuess(); ok {
		t.Fatal("submit accepted after win")
	}
	if g.Status != StatusWon || g.Turn != 1 || len(g.Guesses) != 1 || !g.Draft.Empty() {
		t.Fatalf("terminal game mutated: %+v", g)
	}
}

func TestInstruction(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	if got := g.Instruction(); !strings.HasPrefix(got, "Tap") {
		t.Fatalf("empty draft instruction = %q", got)
	}
	g.SetDraftSlot(0, Red)
	if got := g.Instruction(); got != "3 slots left" {
		t.Fatalf("instruction = %q", got)
	}
	fill(g, Code{Red, Green, Blue, Red})
	if got := g.Instruction(); !strings.HasPrefix(got, "Ready") {
		t.Fatalf("instruction = %q", got)
	}
}

func TestViewHidesSecretWhilePlaying(t *testing.T) {
	secret := Code{Red, Green, Blue, Yellow}
	g := newFixed(t, Normal, secret)
	if v := g.View(); v.Secret != nil {
		t.Fatal("secret exposed while playing")
	}
	fill(g, secret)
	g.SubmitGuess()
	v := g.View()
	if v.Secret == nil || *v.Secret != secret {
		t.Fatalf("secret not exposed after win: %v", v.Secret)
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"colors":["red","green","blue","yellow"]`) {
		t.Fatalf("unexpected JSON: %s", b)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	g := newFixed(t, Normal, Code{Red, Green, Blue, Yellow})
	fill(g, Code{Red, Red, Red, Red})
	g.SubmitGuess()
	snap := g.Snapshot()
	fill(g, Code{Blue, Blue, Blue, Blue})
	g.SubmitGuess()
	if len(snap.Guesses) != 1 || snap.Turn != 1 {
		t.Fatalf("snapshot changed: %+v", snap)
	}
}

func TestParseColorAndDifficulty(t *testing.T) {
	if ParseColor(" Red ") != Red || ParseColor("magenta") != NoColor || ParseColor("") != NoColor {
		t.Fatal("ParseColor mismatch")
	}
	if ParseDifficulty("HARD") != Hard || ParseDifficulty("") != Normal {
		t.Fatal("ParseDifficulty mismatch")
	}
	if len(Normal.Palette()) != 6 || len(Hard.Palette()) != 8 {
		t.Fatal("palette sizes")
	}
}
