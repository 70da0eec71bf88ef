// internal/hint/gemini.go
//
// Remote Hinter backed by the Gemini generateContent API.
// Responsibilities:
//   - Build the prompt from the turn history and the secret.
//   - Send it through the genai client with a bounded timeout.
//   - Turn every failure (transport, status, empty reply) into a fallback string.

package hint

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/robalobadob/senha/internal/game"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultTimeout    = 8 * time.Second
	defaultAPIVersion = "v1beta"

	systemInstruction = "You are an assistant for a logic game. Be concise and direct."
)

// Gemini calls the remote model. The zero value is not usable; see NewGemini.
type Gemini struct {
	// Endpoint overrides the API base URL; empty uses the SDK default.
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// NewGemini returns a client with defaults applied for empty fields.
func NewGemini(endpoint, apiKey, model string, timeout time.Duration) *Gemini {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gemini{
		Endpoint:    endpoint,
		APIKey:      apiKey,
		Model:       model,
		Temperature: 0.7,
		Timeout:     timeout,
	}
}

// Prompt builds the user prompt sent to the model.
func Prompt(guesses []game.Guess, secret game.Code) string {
	names := make([]string, len(secret))
	for i, c := range secret {
		names[i] = c.String()
	}
	history := Summarize(guesses)
	if history == "" {
		history = "(no attempts yet)"
	}
	return fmt.Sprintf(`You are an expert at the Mastermind code-breaking game.
The secret code (which the player does NOT know) is: %s.

Here is the player's history so far:
%s

Analyse the logic and give one short, useful hint (at most 2 sentences) for the next move.
Do NOT reveal the secret code explicitly.
If the player is far off, suggest eliminating colors or trying new positions.
If the player is close, point subtly at which color may be in the right or wrong place.`,
		strings.Join(names, ", "), history)
}

// Hint implements Hinter.
func (g *Gemini) Hint(ctx context.Context, guesses []game.Guess, secret game.Code) string {
	text, err := g.generate(ctx, Prompt(guesses, secret))
	if err != nil {
		log.Warn().Err(err).Str("model", g.Model).Msg("hint request failed")
		return FallbackBusy
	}
	if text == "" {
		return FallbackUnavailable
	}
	return text
}

func (g *Gemini) client(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    g.Endpoint,
			APIVersion: defaultAPIVersion,
		},
	})
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	client, err := g.client(ctx)
	if err != nil {
		return "", fmt.Errorf("genai client: %w", err)
	}
	resp, err := client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(g.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
