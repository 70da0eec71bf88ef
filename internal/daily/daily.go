// Package daily derives the "code of the day": every player starting a daily
// game on the same UTC date with the same salt faces the same secret.
package daily

import (
	"crypto/sha256"
	"encoding/binary"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/robalobadob/senha/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic 64-bit seed for date, expanded from salt with HKDF-SHA256.
func Seed(date time.Time, salt string) uint64 {
	r := hkdf.New(sha256.New, []byte(salt), []byte("senha-daily"), []byte(DateKey(date)))
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		// hkdf only fails past 255*HashLen bytes.
		panic(err)
	}
	return binary.BigEndian.Uint64(b[:])
}

// Source returns the color source for date's daily game.
func Source(date time.Time, salt string) game.ColorSource {
	return game.NewSeededSource(Seed(date, salt))
}
