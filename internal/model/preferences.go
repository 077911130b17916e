package model

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

const (
	DefaultWorkDurationMinutes       = 25
	DefaultShortBreakDurationMinutes = 5
	DefaultLongBreakDurationMinutes  = 15
	DefaultLongBreakInterval         = 4
)

type Preferences struct {
	Theme                string  `json:"theme"`
	WorkDuration         int     `json:"pomodoroWorkDuration"`
	ShortBreakDuration   int     `json:"pomodoroShortBreakDuration"`
	LongBreakDuration    int     `json:"pomodoroLongBreakDuration"`
	LongBreakInterval    int     `json:"pomodoroLongBreakInterval"`
	AutoStartBreaks      bool    `json:"autoStartBreaks"`
	AutoStartPomodoros   bool    `json:"autoStartPomodoros"`
	SoundEnabled         bool    `json:"soundEnabled"`
	NotificationsEnabled bool    `json:"notificationsEnabled"`
	DefaultProjectID     *string `json:"defaultProjectId,omitempty"`
}

// DefaultPreferences is the fixed fallback set used whenever no authenticated
// user or no remote preferences exist. Every field is populated.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                ThemeSystem,
		WorkDuration:         DefaultWorkDurationMinutes,
		ShortBreakDuration:   DefaultShortBreakDurationMinutes,
		LongBreakDuration:    DefaultLongBreakDurationMinutes,
		LongBreakInterval:    DefaultLongBreakInterval,
		AutoStartBreaks:      false,
		AutoStartPomodoros:   false,
		SoundEnabled:         true,
		NotificationsEnabled: true,
		DefaultProjectID:     nil,
	}
}

func ValidTheme(theme string) bool {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// PreferencesPatch is a partial update: nil fields are left untouched by a
// shallow merge, non-nil fields replace the current value.
type PreferencesPatch struct {
	Theme                *string `json:"theme,omitempty"`
	WorkDuration         *int    `json:"pomodoroWorkDuration,omitempty"`
	ShortBreakDuration   *int    `json:"pomodoroShortBreakDuration,omitempty"`
	LongBreakDuration    *int    `json:"pomodoroLongBreakDuration,omitempty"`
	LongBreakInterval    *int    `json:"pomodoroLongBreakInterval,omitempty"`
	AutoStartBreaks      *bool   `json:"autoStartBreaks,omitempty"`
	AutoStartPomodoros   *bool   `json:"autoStartPomodoros,omitempty"`
	SoundEnabled         *bool   `json:"soundEnabled,omitempty"`
	NotificationsEnabled *bool   `json:"notificationsEnabled,omitempty"`
	DefaultProjectID     *string `json:"defaultProjectId,omitempty"`
}

// Apply shallow-merges the patch into prefs and returns the result.
func (p PreferencesPatch) Apply(prefs Preferences) Preferences {
	if p.Theme != nil {
		prefs.Theme = *p.Theme
	}
	if p.WorkDuration != nil {
		prefs.WorkDuration = *p.WorkDuration
	}
	if p.ShortBreakDuration != nil {
		prefs.ShortBreakDuration = *p.ShortBreakDuration
	}
	if p.LongBreakDuration != nil {
		prefs.LongBreakDuration = *p.LongBreakDuration
	}
	if p.LongBreakInterval != nil {
		prefs.LongBreakInterval = *p.LongBreakInterval
	}
	if p.AutoStartBreaks != nil {
		prefs.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.AutoStartPomodoros != nil {
		prefs.AutoStartPomodoros = *p.AutoStartPomodoros
	}
	if p.SoundEnabled != nil {
		prefs.SoundEnabled = *p.SoundEnabled
	}
	if p.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.DefaultProjectID != nil {
		prefs.DefaultProjectID = p.DefaultProjectID
	}
	return prefs
}
