package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/pkg/pprint"
)

func TestOutcomeStylesFollowPalette(t *testing.T) {
	s := newStyles()

	assert.Equal(t, pprint.ColorSuccess, s.outcome(v1.OutcomePassed).GetForeground())
	assert.Equal(t, pprint.ColorError, s.outcome(v1.OutcomeFailed).GetForeground())
	assert.Equal(t, pprint.ColorWarning, s.outcome(v1.OutcomeErrored).GetForeground())
	assert.Equal(t, pprint.ColorMuted, s.outcome(v1.Outcome("skipped")).GetForeground())

	assert.True(t, s.Verdict[true].GetBold())
	assert.Equal(t, pprint.ColorError, s.Verdict[false].GetForeground())
}
