package types

import "time"

// CurrentVersion is the schema version written by this build.
const CurrentVersion = 2

// Theme values
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Template ids
const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
	TemplateMinimal = "minimal"
)

// Color ids
const (
	ColorTeal     = "teal"
	ColorNavy     = "navy"
	ColorBurgundy = "burgundy"
	ColorForest   = "forest"
	ColorCharcoal = "charcoal"
)

// Preferences holds user settings
type Preferences struct {
	Theme         string `json:"theme" validate:"oneof=light dark auto"`
	Template      string `json:"template" validate:"oneof=classic modern minimal"`
	Color         string `json:"color" validate:"oneof=teal navy burgundy forest charcoal"`
	Notifications bool   `json:"notifications"`
	AutoSave      bool   `json:"autoSave"`
}

// DefaultPreferences returns the settings of a fresh record.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         ThemeLight,
		Template:      TemplateClassic,
		Color:         ColorTeal,
		Notifications: true,
		AutoSave:      true,
	}
}

// Data is the unified record. It is persisted as a single blob and owned by the store.
type Data struct {
	Version        int            `json:"version"`
	Preferences    Preferences    `json:"preferences"`
	ResumeData     Resume         `json:"resumeData"`
	JobMatches     []JobMatch     `json:"jobMatches"`
	Applications   []Application  `json:"applications"`
	JDAnalyses     []JDAnalysis   `json:"jdAnalyses"`
	ReadinessScore ReadinessScore `json:"readinessScore"`
	PracticeData   PracticeData   `json:"practiceData"`
	LastActivity   *time.Time     `json:"lastActivity"`
}

// NewData returns a fresh default record. Every call returns independent collections.
func NewData() *Data {
	return &Data{
		Version:        CurrentVersion,
		Preferences:    DefaultPreferences(),
		ResumeData:     NewResume(),
		JobMatches:     []JobMatch{},
		Applications:   []Application{},
		JDAnalyses:     []JDAnalysis{},
		ReadinessScore: ReadinessScore{},
		PracticeData:   NewPracticeData(),
	}
}

// Normalize fills nil collections and empty preference fields with defaults.
func (d *Data) Normalize() {
	d.ResumeData.Normalize()
	d.PracticeData.Normalize()
	if d.JobMatches == nil {
		d.JobMatches = []JobMatch{}
	}
	for i := range d.JobMatches {
		if d.JobMatches[i].RequiredSkills == nil {
			d.JobMatches[i].RequiredSkills = []string{}
		}
	}
	if d.Applications == nil {
		d.Applications = []Application{}
	}
	if d.JDAnalyses == nil {
		d.JDAnalyses = []JDAnalysis{}
	}
	defaults := DefaultPreferences()
	if d.Preferences.Theme == "" {
		d.Preferences.Theme = defaults.Theme
	}
	if d.Preferences.Template == "" {
		d.Preferences.Template = defaults.Template
	}
	if d.Preferences.Color == "" {
		d.Preferences.Color = defaults.Color
	}
}
