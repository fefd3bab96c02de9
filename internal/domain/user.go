package domain

import "time"

// User represents a registered farmer
type User struct {
	ID         string    `json:"uid"`
	Name       string    `json:"name"`
	Experience int       `json:"experience"`
	Currency   int       `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// Level derives the user level from accumulated experience.
// A non-positive step disables leveling and always yields 0.
func (u User) Level(experiencePerLevel int) int {
	if experiencePerLevel <= 0 {
		return 0
	}
	return u.Experience / experiencePerLevel
}
