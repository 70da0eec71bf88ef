// internal/game/feedback.go
//
// Peg scoring for a submitted guess.

package game

import "sort"

// ComputeFeedback scores guess against secret using the classic two-pass scheme.
//
// Pass 1:
//   - Mark exact matches; both positions are consumed.
//   - Count the remaining (non-exact) secret colors.
//
// Pass 2:
//   - For each non-exact guess peg in index order: if the color still has
//     remaining count, mark partial and decrement; otherwise none.
//
// The result is sorted exact, partial, none, so it does not reveal which
// guess position earned which peg. A guess with an empty slot scores all none.
func ComputeFeedback(secret, guess Code) [CodeLength]Feedback {
	var res [CodeLength]Feedback
	for i := range res {
		res[i] = FeedbackNone
	}
	if !guess.Full() {
		return res
	}

	// Remaining secret colors after exact matches, indexed by Color.
	var counts [len(colorNames)]int

	for i := 0; i < CodeLength; i++ {
		if guess[i] == secret[i] {
			res[i] = FeedbackExact
		} else if int(secret[i]) < len(counts) {
			counts[secret[i]]++
		}
	}

	for i := 0; i < CodeLength; i++ {
		if res[i] == FeedbackExact {
			continue
		}
		j := int(guess[i])
		if j < len(counts) && counts[j] > 0 {
			res[i] = FeedbackPartial
			counts[j]--
		}
	}

	sort.SliceStable(res[:], func(a, b int) bool { return res[a].rank() < res[b].rank() })
	return res
}

// Count returns the number of exact and partial pegs in fb.
func Count(fb [CodeLength]Feedback) (exact, partial int) {
	for _, f := range fb {
		switch f {
		case FeedbackExact:
			exact++
		case FeedbackPartial:
			partial++
		}
	}
	return exact, partial
}

// allExact returns true if every peg is exact.
func allExact(fb [CodeLength]Feedback) bool {
	exact, _ := Count(fb)
	return exact == CodeLength
}
