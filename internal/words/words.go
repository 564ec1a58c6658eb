// internal/words/words.go
//
// Word list management for the round engine.
//
// Responsibilities:
//   - Load the answer list from an environment-provided file or fall
//     back to the embedded French defaults.
//   - Supply RandomAnswer for round starts and Count for diagnostics.
//
// Initialization behavior (Init):
//   1. If WORDS_ANSWERS_FILE is set, load answers from that file.
//   2. Otherwise use the embedded french.txt list.
//
// Constraints:
//   - Words must be exactly 5 ASCII letters.
//   - Lists are normalized to uppercase (the engine compares uppercase).
//   - Initialization runs once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"
)

//go:embed french.txt
var embeddedAnswers string

var (
	initOnce   sync.Once
	answers    []string
	initialErr error
)

// Init loads the answer list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		if path := os.Getenv("WORDS_ANSWERS_FILE"); path != "" {
			list, err := readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
			answers = list
		} else {
			answers = normalizeLines(embeddedAnswers)
		}
		if len(answers) == 0 {
			initialErr = errors.New("words: answers list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file, uppercases and
// trims each line, and keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalizeWord(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into a slice
// of valid uppercase 5-letter words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalizeWord(line); ok {
			out = append(out, w)
		}
	}
	return out
}

func normalizeWord(line string) (string, bool) {
	w := strings.TrimSpace(strings.ToUpper(line))
	if len(w) != 5 || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a uniformly random answer from the loaded list.
// Falls back to "CHIEN" if the list was never loaded.
func RandomAnswer() string {
	if len(answers) == 0 {
		return "CHIEN"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	return answers[nBig.Int64()]
}

// Count returns the number of loaded answer words.
func Count() int { return len(answers) }
