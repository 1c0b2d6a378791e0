// Package passcheck rates password strength with a simple class-counting
// heuristic and estimates a very rough offline brute-force crack time. It is
// a relative-comparison tool, not a security guarantee.
package passcheck

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Rating is the coarse verdict for a password.
type Rating string

const (
	Weak     Rating = "Weak"
	Moderate Rating = "Moderate"
	Strong   Rating = "Strong"
)

// DefaultGuessesPerSecond assumes a well-resourced offline attacker.
const DefaultGuessesPerSecond = 1e9

var (
	upperRe  = regexp2.MustCompile(`[A-Z]`, regexp2.None)
	lowerRe  = regexp2.MustCompile(`[a-z]`, regexp2.None)
	digitRe  = regexp2.MustCompile(`\d`, regexp2.None)
	symbolRe = regexp2.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`, regexp2.None)
)

var commonWords = []string{"password", "123456", "qwerty", "admin"}

func matches(re *regexp2.Regexp, s string) bool {
	ok, _ := re.MatchString(s)
	return ok
}

// Check scores a password and returns its rating plus actionable feedback.
// Score: one point for length >= 8 and one per character class present;
// <= 2 is Weak, 3 is Moderate, above that Strong. Common dictionary words
// are flagged even when the score looks good.
func Check(password string) (Rating, []string) {
	score := 0
	var feedback []string

	// Lengths count characters, not bytes, so multibyte passwords are not
	// overcredited.
	if utf8.RuneCountInString(password) < 8 {
		feedback = append(feedback, "Password too short (<8).")
	} else {
		score++
	}

	if matches(upperRe, password) {
		score++
	}
	if matches(lowerRe, password) {
		score++
	}
	if matches(digitRe, password) {
		score++
	}
	if matches(symbolRe, password) {
		score++
	}

	lowered := strings.ToLower(password)
	for _, word := range commonWords {
		if strings.Contains(lowered, word) {
			feedback = append(feedback, "Contains a common/easy-to-guess word.")
			break
		}
	}

	var rating Rating
	switch {
	case score <= 2:
		rating = Weak
	case score == 3:
		rating = Moderate
	default:
		rating = Strong
	}

	if !matches(upperRe, password) {
		feedback = append(feedback, "Add uppercase letters.")
	}
	if !matches(lowerRe, password) {
		feedback = append(feedback, "Add lowercase letters.")
	}
	if !matches(digitRe, password) {
		feedback = append(feedback, "Add numbers.")
	}
	if !matches(symbolRe, password) {
		feedback = append(feedback, "Add symbols.")
	}
	if utf8.RuneCountInString(password) < 12 {
		feedback = append(feedback, "Increase length to 12+ characters.")
	}

	return rating, feedback
}

// CrackTime estimates how many seconds a brute-force search at
// guessesPerSecond would need to cover the password's keyspace. The charset
// size is inferred from the character classes present. Exponentiation runs
// through math/big so long passwords don't overflow; the result saturates at
// +Inf past float64 range.
func CrackTime(password string, guessesPerSecond float64) float64 {
	charset := 0
	if matches(lowerRe, password) {
		charset += 26
	}
	if matches(upperRe, password) {
		charset += 26
	}
	if matches(digitRe, password) {
		charset += 10
	}
	if matches(symbolRe, password) {
		charset += 33
	}

	if charset == 0 {
		return 0
	}

	total := new(big.Int).Exp(big.NewInt(int64(charset)), big.NewInt(int64(utf8.RuneCountInString(password))), nil)
	secs, _ := new(big.Float).Quo(
		new(big.Float).SetInt(total),
		big.NewFloat(guessesPerSecond),
	).Float64()
	if math.IsInf(secs, 1) {
		secs = math.MaxFloat64
	}
	return secs
}

// HumanTime renders a duration in seconds as at most two units, e.g.
// "3 hours, 12 minutes".
func HumanTime(seconds float64) string {
	if seconds < 1 {
		return "less than 1 second"
	}

	units := []struct {
		name string
		size float64
	}{
		{"year", 60 * 60 * 24 * 365},
		{"day", 60 * 60 * 24},
		{"hour", 60 * 60},
		{"minute", 60},
		{"second", 1},
	}

	var parts []string
	for _, u := range units {
		if seconds >= u.size {
			qty := math.Floor(seconds / u.size)
			seconds -= qty * u.size
			name := u.name
			if qty != 1 {
				name += "s"
			}
			parts = append(parts, strconv.FormatFloat(qty, 'f', 0, 64)+" "+name)
		}
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, ", ")
}

// Analyze produces the one-line summary for a single password.
func Analyze(password string, guessesPerSecond float64) string {
	rating, feedback := Check(password)
	secs := CrackTime(password, guessesPerSecond)
	tips := "No obvious issues."
	if len(feedback) > 0 {
		tips = strings.Join(feedback, " | ")
	}
	return fmt.Sprintf("%q: %s | crack-time≈ %s | %s", password, rating, HumanTime(secs), tips)
}

// AnalyzeFile reads one password per line and returns a summary line for
// each non-blank entry.
func AnalyzeFile(path string, guessesPerSecond float64) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var results []string
	for _, raw := range strings.Split(string(b), "\n") {
		pwd := strings.TrimSpace(raw)
		if pwd == "" {
			continue
		}
		results = append(results, Analyze(pwd, guessesPerSecond))
	}
	return results, nil
}
