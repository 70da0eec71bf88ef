// internal/httpserver/auth.go
//
// Anonymous player tokens.
// There are no accounts: the first POST /game/new issues an HS256 JWT
// carrying a random player ID; the token travels back as a cookie or a
// bearer header and must match the owner of the game being played.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ctxPlayerKey is the context key type for the authenticated player ID.
type ctxPlayerKey struct{}

var errNoToken = errors.New("no token")

// signToken creates an HS256 JWT for player with the configured expiry.
func (s *Server) signToken(player string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   player,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.TokenSecret))
	return ss, exp, err
}

// parseToken validates tok and returns the player ID it carries.
func (s *Server) parseToken(tok string) (string, error) {
	if tok == "" {
		return "", errNoToken
	}
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token without subject")
	}
	return claims.Subject, nil
}

// issuePlayer returns the caller's player ID, minting a new one (and its
// cookie) when the request carries no valid token.
func (s *Server) issuePlayer(w http.ResponseWriter, r *http.Request) (string, string, error) {
	tok := s.bearerOrCookie(r)
	if player, err := s.parseToken(tok); err == nil {
		return player, tok, nil
	}
	player := uuid.NewString()
	tok, exp, err := s.signToken(player)
	if err != nil {
		return "", "", err
	}
	s.setTokenCookie(w, tok, exp)
	return player, tok, nil
}

// setTokenCookie writes the token cookie with appropriate security attributes.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or token cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// requirePlayer enforces a valid token and injects the player ID into the context.
func (s *Server) requirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player, err := s.parseToken(s.bearerOrCookie(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, player)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentPlayer returns the player placed in the context by requirePlayer.
func currentPlayer(r *http.Request) string {
	p, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return p
}
