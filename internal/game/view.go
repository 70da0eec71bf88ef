package game

// View is the read model handed to presentation layers.
// Secret is only populated once the game is over.
type View struct {
	ID          string     `json:"id"`
	Difficulty  Difficulty `json:"difficulty"`
	Palette     []Color    `json:"palette"`
	Guesses     []Guess    `json:"guesses"`
	Turn        int        `json:"turn"`
	MaxTurns    int        `json:"maxTurns"`
	Status      Status     `json:"status"`
	Draft       Code       `json:"draft"`
	Selected    Color      `json:"selected"`
	CanSubmit   bool       `json:"canSubmit"`
	Instruction string     `json:"instruction"`
	Secret      *Code      `json:"secret,omitempty"`
}

// View builds the read model for g.
func (g *Game) View() View {
	v := View{
		ID:          g.ID,
		Difficulty:  g.Difficulty,
		Palette:     g.Difficulty.Palette(),
		Guesses:     append([]Guess{}, g.Guesses...),
		Turn:        g.Turn,
		MaxTurns:    MaxTurns,
		Status:      g.Status,
		Draft:       g.Draft,
		Selected:    g.Selected,
		CanSubmit:   g.CanSubmit(),
		Instruction: g.Instruction(),
	}
	if g.Status.Terminal() {
		s := g.Secret
		v.Secret = &s
	}
	return v
}
