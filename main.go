package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/senha/internal/config"
	"github.com/robalobadob/senha/internal/hint"
	"github.com/robalobadob/senha/internal/httpserver"
	"github.com/robalobadob/senha/internal/store"
)

// settings merges flags, SENHA_* environment and .env.
var settings = config.New()

var rootCmd = &cobra.Command{
	Use:   "senha",
	Short: "Senha: a Mastermind-style code-breaking game",
	Long: `Guess the hidden 4-color code in 10 turns.
After every guess you get one peg per slot:
  ● right color in the right place
  ○ right color in the wrong place
  · color not in the code (after the matches above are taken)
Pegs are sorted, so they never tell you which slot earned them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(settings.GetString("log-level"))
	},
}

func main() {
	addPersistentFlags()
	rootCmd.AddCommand(serveCmd(), playCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("hint-api-key", "", "API key for the remote hint service (local hints when empty)")
	rootCmd.PersistentFlags().String("hint-model", "gemini-2.5-flash", "remote hint model")
	rootCmd.PersistentFlags().Duration("hint-timeout", 8*time.Second, "remote hint timeout")
	rootCmd.PersistentFlags().String("daily-salt", "local_dev_salt", "salt for the code of the day")
	for _, name := range []string{"log-level", "hint-api-key", "hint-model", "hint-timeout", "daily-salt"} {
		_ = settings.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// setupLogging sets the global zerolog level and a console writer on terminals.
func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

// newHinter returns the remote hinter when a key is configured, else local hints.
func newHinter(cfg config.Config) hint.Hinter {
	if cfg.RemoteHints() {
		return hint.NewGemini(cfg.HintEndpoint, cfg.HintAPIKey, cfg.HintModel, cfg.HintTimeout)
	}
	return hint.Local{}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(settings)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringP("port", "p", "5175", "listen port")
	cmd.Flags().String("client-origin", "http://localhost:5173", "allowed CORS origin")
	cmd.Flags().Bool("secure-cookies", false, "mark token cookies Secure (SameSite=None)")
	for _, name := range []string{"port", "client-origin", "secure-cookies"} {
		_ = settings.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, httpserver.Options{
		ClientOrigin:  cfg.ClientOrigin,
		TokenSecret:   cfg.TokenSecret,
		CookieName:    cfg.CookieName,
		TokenTTL:      cfg.TokenTTL,
		SecureCookies: cfg.SecureCookies,
		HintTimeout:   cfg.HintTimeout,
		DailySalt:     cfg.DailySalt,
		Hinter:        newHinter(cfg),
	})

	go sweep(ctx, mem, cfg.IdleTTL)

	log.Info().Str("port", cfg.Port).Bool("remoteHints", cfg.RemoteHints()).Msg("starting senha server")
	return srv.Start(ctx, ":"+cfg.Port)
}

// sweep evicts idle games until ctx is done.
func sweep(ctx context.Context, st store.Store, idle time.Duration) {
	if idle <= 0 {
		return
	}
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(ctx, idle); n > 0 {
				log.Info().Int("evicted", n).Msg("swept idle games")
			}
		}
	}
}
