package domain

import "time"

// Accent colours selectable from the settings page.
var AccentColors = []string{"blue", "pink", "green", "yellow", "orange", "purple", "cyan"}

const (
	DefaultAccentColor   = "pink"
	AdminAccentColor     = "blue"
	SuperuserAccentColor = "red"
)

// Settings holds per-user preferences.
type Settings struct {
	UserID             string    `json:"userId" bson:"_id"`
	AccentColor        string    `json:"accentColor" bson:"accent_color"`
	EmailNotifications bool      `json:"emailNotifications" bson:"email_notifications"`
	CreatedAt          time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updated_at"`
}

// DefaultSettings returns the preferences a new account starts with.
func DefaultSettings(userID, accent string, now time.Time) *Settings {
	return &Settings{
		UserID:             userID,
		AccentColor:        accent,
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
