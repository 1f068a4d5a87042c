// internal/words/words.go
//
// Word list loading for the engine and its collaborators.
//
// Word Lists:
//   - "answers": words a game may pick as its solution.
//   - "allowed": valid guesses (always includes answers).
//
// Load behaviour:
//   1. If WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE are both set,
//      load answers from the first and allowed guesses from the second.
//   2. If only WORDS_ALLOWED_FILE is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If only WORDS_ANSWERS_FILE is set,
//      load answers from it; allowed guesses are those answers plus the
//      embedded extra guesses.
//   4. If neither is set, fall back to the lists embedded in package assets.
//
// Lines are trimmed and lowercased; blank lines and '#' comments are ignored.
// Entries that are not DefaultLength letters a-z are skipped and counted,
// repeats are collapsed keeping the first occurrence.
//
// Load returns values instead of filling package globals, so two servers or
// simulator runs in one process never share list state.

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-engine/assets"
)

// Lists is the pair of vocabularies a game is configured with.
type Lists struct {
	Answers *Vocabulary
	Allowed *Vocabulary // superset of Answers
	Skipped int         // malformed lines dropped while reading
}

// Load reads word lists following the environment rules above.
func Load() (Lists, error) {
	return LoadFiles(os.Getenv("WORDS_ANSWERS_FILE"), os.Getenv("WORDS_ALLOWED_FILE"))
}

// LoadFiles is Load with explicit paths; empty paths fall back as described
// in the package comment.
func LoadFiles(answersPath, allowedPath string) (Lists, error) {
	var (
		ansRaw, allowRaw []string
		skipped          int
		err              error
	)

	switch {
	case answersPath != "" && allowedPath != "":
		if ansRaw, err = readWordFile(answersPath); err != nil {
			return Lists{}, err
		}
		if allowRaw, err = readWordFile(allowedPath); err != nil {
			return Lists{}, err
		}

	case answersPath == "" && allowedPath != "":
		if allowRaw, err = readWordFile(allowedPath); err != nil {
			return Lists{}, err
		}
		ansRaw = allowRaw

	case answersPath != "":
		if ansRaw, err = readWordFile(answersPath); err != nil {
			return Lists{}, err
		}
		if allowRaw, err = assets.AllowedList(); err != nil {
			return Lists{}, fmt.Errorf("embedded allowed: %w", err)
		}

	default:
		if ansRaw, err = assets.AnswersList(); err != nil {
			return Lists{}, fmt.Errorf("embedded answers: %w", err)
		}
		if allowRaw, err = assets.AllowedList(); err != nil {
			return Lists{}, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	ans, n := normalize(ansRaw)
	skipped += n
	allow, n := normalize(allowRaw)
	skipped += n

	answers, err := FromWords(DefaultLength, ans)
	if err != nil {
		return Lists{}, fmt.Errorf("answers: %w", err)
	}
	// Ensure all answers are also allowed.
	allowed := answers
	if len(allow) > 0 {
		extra, err := FromWords(DefaultLength, allow)
		if err != nil {
			return Lists{}, fmt.Errorf("allowed: %w", err)
		}
		if allowed, err = answers.Union(extra); err != nil {
			return Lists{}, err
		}
	}
	return Lists{Answers: answers, Allowed: allowed, Skipped: skipped}, nil
}

// readWordFile loads one entry per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// ReadLines returns the non-blank, non-comment lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// normalize parses every entry, dropping invalid ones and repeats.
func normalize(raw []string) ([]Word, int) {
	seen := make(map[Word]struct{}, len(raw))
	out := make([]Word, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		w, err := Parse(r)
		if err != nil {
			skipped++
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, skipped
}
