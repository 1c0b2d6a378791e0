package passcheck_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sfandrews/nettools/passcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		password string
		rating   passcheck.Rating
		feedback []string
	}{
		{
			name:     "short-lowercase",
			password: "abc",
			rating:   passcheck.Weak,
			feedback: []string{
				"Password too short (<8).",
				"Add uppercase letters.",
				"Add numbers.",
				"Add symbols.",
				"Increase length to 12+ characters.",
			},
		},
		{
			name:     "all-classes-long",
			password: "MyStr0ngP@ss!",
			rating:   passcheck.Strong,
			feedback: nil,
		},
		{
			name:     "common-word",
			password: "password123",
			rating:   passcheck.Moderate,
			feedback: []string{
				"Contains a common/easy-to-guess word.",
				"Add uppercase letters.",
				"Add symbols.",
				"Increase length to 12+ characters.",
			},
		},
		{
			name:     "digits-only",
			password: "99887766",
			rating:   passcheck.Weak,
			feedback: []string{
				"Add uppercase letters.",
				"Add lowercase letters.",
				"Add symbols.",
				"Increase length to 12+ characters.",
			},
		},
		{
			// 7 characters but 10 bytes; byte counting would skip the
			// length warning.
			name:     "multibyte-length-counts-characters",
			password: "ñññ1!ab",
			rating:   passcheck.Moderate,
			feedback: []string{
				"Password too short (<8).",
				"Add uppercase letters.",
				"Increase length to 12+ characters.",
			},
		},
		{
			name:     "common-word-despite-good-classes",
			password: "Qwerty12345!",
			rating:   passcheck.Strong,
			feedback: []string{
				"Contains a common/easy-to-guess word.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, feedback := passcheck.Check(tt.password)
			assert.Equal(t, tt.rating, rating)
			assert.Equal(t, tt.feedback, feedback)
		})
	}
}

func TestCrackTime(t *testing.T) {
	t.Run("empty-password", func(t *testing.T) {
		assert.Zero(t, passcheck.CrackTime("", 1e9))
	})

	t.Run("lowercase-only", func(t *testing.T) {
		// 26^4 / 1e9
		assert.InDelta(t, 456976.0/1e9, passcheck.CrackTime("abcd", 1e9), 1e-9)
	})

	t.Run("slower-attacker-takes-longer", func(t *testing.T) {
		fast := passcheck.CrackTime("MyStr0ngP@ss!", 1e12)
		slow := passcheck.CrackTime("MyStr0ngP@ss!", 1e9)
		assert.Greater(t, slow, fast)
	})

	t.Run("multibyte-exponent-counts-characters", func(t *testing.T) {
		// "aaañ" is 4 characters (5 bytes); the exponent must be 4.
		assert.InDelta(t, 456976.0/1e9, passcheck.CrackTime("aaañ", 1e9), 1e-9)
	})

	t.Run("very-long-password-does-not-overflow", func(t *testing.T) {
		long := ""
		for i := 0; i < 400; i++ {
			long += "aA1!"
		}
		secs := passcheck.CrackTime(long, 1e9)
		assert.Greater(t, secs, 0.0)
	})
}

func TestHumanTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0.5, "less than 1 second"},
		{1, "1 second"},
		{75, "1 minute, 15 seconds"},
		{11520, "3 hours, 12 minutes"},
		{31536000, "1 year"},
		{31536000 + 86400*2, "1 year, 2 days"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, passcheck.HumanTime(tt.seconds))
	}
}

func TestAnalyze(t *testing.T) {
	line := passcheck.Analyze("MyStr0ngP@ss!", passcheck.DefaultGuessesPerSecond)
	assert.Contains(t, line, `"MyStr0ngP@ss!": Strong`)
	assert.Contains(t, line, "crack-time≈")
	assert.Contains(t, line, "No obvious issues.")
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n\n  MyStr0ngP@ss!  \n"), 0o600))

	lines, err := passcheck.AnalyzeFile(path, passcheck.DefaultGuessesPerSecond)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Weak")
	assert.Contains(t, lines[1], "Strong")

	_, err = passcheck.AnalyzeFile(filepath.Join(t.TempDir(), "missing.txt"), 1e9)
	assert.Error(t, err)
}
