// Package fuzzy wraps fzf's own scoring algorithm so FileIndex and the
// selector widget rank candidates exactly the way the fzf CLI's users
// already expect, rather than a hand-rolled subsequence scorer.
package fuzzy

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Match scores candidate against pattern using fzf's V2 algorithm
// (case-insensitive, forward-biased). ok is false when pattern does not
// match candidate as a subsequence at all.
func Match(pattern, candidate string) (score int, ok bool) {
	if pattern == "" {
		return 0, true
	}
	chars := util.ToChars([]byte(candidate))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, []rune(strings.ToLower(pattern)), false, nil)
	if result.Start < 0 {
		return 0, false
	}
	return int(result.Score), true
}
