package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	t.Setenv("SENHA_PORT", "")
	t.Setenv("PORT", "")
	c, err := Load(New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Port != "5175" || c.CookieName != "senha_token" || c.HintTimeout != 8*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SENHA_PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "abc")
	t.Setenv("SENHA_HINT_TIMEOUT", "2s")
	c, err := Load(New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Port != "9000" || c.HintAPIKey != "abc" || c.HintTimeout != 2*time.Second {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if !c.RemoteHints() {
		t.Fatal("RemoteHints should be true with a key")
	}
}

func TestValidate(t *testing.T) {
	c := Config{Port: "1", TokenSecret: "s", TokenTTL: time.Hour, HintTimeout: 0}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero hint timeout")
	}
}
