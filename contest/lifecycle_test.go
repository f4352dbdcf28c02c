package contest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLifecyclePredicates(t *testing.T) {
	c := testContest(RuleACM, "P1")

	assert.True(t, IsNew(c, c.Begin.AddDate(0, 0, -2)))
	assert.False(t, IsNew(c, c.Begin.Add(-time.Hour)))

	assert.True(t, IsUpcoming(c, c.Begin.Add(-time.Hour)))
	assert.False(t, IsUpcoming(c, c.Begin))

	assert.True(t, IsNotStarted(c, c.Begin.Add(-time.Second)))
	assert.False(t, IsNotStarted(c, c.Begin))

	assert.True(t, IsOngoing(c, c.Begin))
	assert.True(t, IsOngoing(c, c.End.Add(-time.Second)))
	// the end instant itself is already outside the window
	assert.False(t, IsOngoing(c, c.End))
	assert.False(t, IsOngoing(c, c.Begin.Add(-time.Second)))

	assert.False(t, IsDone(c, c.End.Add(-time.Second)))
	assert.True(t, IsDone(c, c.End))
}

func TestIsExtended(t *testing.T) {
	c := testContest(RuleAssignment, "P1")
	assert.False(t, IsExtended(c, c.Begin.Add(time.Hour)))

	since := c.Begin.Add(2 * time.Hour)
	c.PenaltySince = &since

	assert.False(t, IsExtended(c, since.Add(-time.Second)))
	assert.True(t, IsExtended(c, since))
	assert.True(t, IsExtended(c, c.End.Add(-time.Second)))
	assert.False(t, IsExtended(c, c.End))
}
