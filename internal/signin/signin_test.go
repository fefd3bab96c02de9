package signin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewTracker(c)
}

func day(n int) time.Time {
	return time.Date(2026, 6, n, 0, 0, 0, 0, time.UTC)
}

func TestSign_StreakIncrementsAndResets(t *testing.T) {
	tr := newTracker(t)

	claim, err := tr.Sign(day(10), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, claim.StreakDay)

	prev := claim.Record("alice", day(10))
	claim, err = tr.Sign(day(11), nil, &prev)
	require.NoError(t, err)
	assert.Equal(t, 2, claim.StreakDay)

	// a record that is not the previous calendar day breaks the streak
	claim, err = tr.Sign(day(13), nil, &prev)
	require.NoError(t, err)
	assert.Equal(t, 1, claim.StreakDay)
}

func TestSign_SameDay(t *testing.T) {
	tr := newTracker(t)
	today := domain.SignInRecord{UserID: "alice", Date: day(10), StreakDay: 4}

	_, err := tr.Sign(day(10), &today, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadySignedToday)
}

func TestBaseReward(t *testing.T) {
	tr := newTracker(t)

	tests := []struct {
		streak   int
		currency int
		xp       int
	}{
		{1, 50, 10},
		{2, 60, 12},
		{7, 110, 22},
		{8, 110, 22},
		{100, 110, 22},
	}
	for _, tt := range tests {
		r := tr.BaseReward(tt.streak)
		assert.Equal(t, tt.currency, r.Currency, "streak %d", tt.streak)
		assert.Equal(t, tt.xp, r.Experience, "streak %d", tt.streak)
	}
}

func TestSign_Milestone(t *testing.T) {
	tr := newTracker(t)
	yesterday := domain.SignInRecord{UserID: "alice", Date: day(6), StreakDay: 6}

	claim, err := tr.Sign(day(7), nil, &yesterday)
	require.NoError(t, err)
	assert.Equal(t, 7, claim.StreakDay)
	assert.True(t, claim.Milestone)

	total := claim.Total()
	assert.Equal(t, 110+300, total.Currency)
	assert.Equal(t, 22+50, total.Experience)
	assert.Equal(t, map[string]int{"strawberry": 2}, total.Seeds)

	rec := claim.Record("alice", day(7).Add(9*time.Hour))
	assert.Equal(t, 7, rec.StreakDay)
	assert.Equal(t, 410, rec.CurrencyReward)
	assert.Equal(t, 72, rec.ExperienceReward)
}

func TestSign_NoMilestone(t *testing.T) {
	claim, err := newTracker(t).Sign(day(1), nil, nil)
	require.NoError(t, err)
	assert.False(t, claim.Milestone)
	assert.True(t, claim.Bonus.IsZero())
	assert.Nil(t, claim.Total().Seeds)
}
