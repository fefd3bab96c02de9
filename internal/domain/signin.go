package domain

import "time"

// DateLayout is the canonical calendar-date format used for sign-in records
const DateLayout = "2006-01-02"

// SignInRecord is a claimed daily sign-in
type SignInRecord struct {
	UserID           string    `json:"uid"`
	Date             time.Time `json:"date"`
	StreakDay        int       `json:"streak_day"`
	CurrencyReward   int       `json:"currency_reward"`
	ExperienceReward int       `json:"experience_reward"`
	ClaimedAt        time.Time `json:"claimed_at"`
}

// Reward is a bundle granted by the sign-in schedule
type Reward struct {
	Currency   int            `json:"currency"`
	Experience int            `json:"experience"`
	Seeds      map[string]int `json:"seeds,omitempty"` // crop ID -> seed units
}

// IsZero reports whether the reward grants nothing
func (r Reward) IsZero() bool {
	if r.Currency != 0 || r.Experience != 0 {
		return false
	}
	for _, n := range r.Seeds {
		if n > 0 {
			return false
		}
	}
	return true
}

// DateOf returns the calendar date of t in loc, normalized to midnight UTC.
// Two instants share a sign-in day exactly when their DateOf values are equal.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PreviousDay returns the calendar day before a DateOf value
func PreviousDay(date time.Time) time.Time {
	return date.AddDate(0, 0, -1)
}
