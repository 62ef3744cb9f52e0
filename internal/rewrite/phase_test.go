package rewrite

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRule(pattern, replacement, description string, counted bool) Rule {
	return Rule{
		Pattern:     regexp.MustCompile(pattern),
		Replacement: replacement,
		Description: description,
		Counted:     counted,
	}
}

func TestRunThreadsTextThroughPhases(t *testing.T) {
	// The second phase only matches the output of the first.
	phases := []Phase{
		{Name: "first", Rules: []Rule{
			mustRule(`alpha`, "beta", "alpha to beta", true),
		}},
		{Name: "second", Rules: []Rule{
			mustRule(`beta`, "gamma", "beta to gamma", true),
		}},
	}

	out, changes := Run("alpha alpha", phases)

	assert.Equal(t, "gamma gamma", out)
	require.Len(t, changes, 2)
	assert.Equal(t, "alpha to beta", changes[0].Description)
	assert.Equal(t, 2, changes[0].Count)
	assert.Equal(t, "beta to gamma", changes[1].Description)
	assert.Equal(t, 2, changes[1].Count)
}

func TestRunSkipsRulesWithoutMatches(t *testing.T) {
	phases := []Phase{
		{Name: "only", Rules: []Rule{
			mustRule(`missing`, "never", "should not appear", true),
			mustRule(`doc`, "document", "doc expanded", true),
		}},
	}

	out, changes := Run("doc text", phases)

	assert.Equal(t, "document text", out)
	require.Len(t, changes, 1)
	assert.Equal(t, "doc expanded", changes[0].Description)
}

func TestRunReportingModes(t *testing.T) {
	phases := []Phase{
		{Name: "only", Rules: []Rule{
			mustRule(`x`, "y", "counted rename", true),
			mustRule(`y`, "z", "presence rename", false),
		}},
	}

	_, changes := Run("x x x", phases)

	require.Len(t, changes, 2)
	assert.True(t, changes[0].Counted)
	assert.Equal(t, 3, changes[0].Count)
	// Presence records keep the occurrence count internally but flag it
	// as unreported.
	assert.False(t, changes[1].Counted)
	assert.Equal(t, 3, changes[1].Count)
}

func TestRunWithoutPhases(t *testing.T) {
	out, changes := Run("anything", nil)

	assert.Equal(t, "anything", out)
	assert.Empty(t, changes)
}
