package export

import (
	"strings"

	"github.com/jonathan/career-readiness/internal/types"
)

// Export warnings
const (
	WarnMissingName = "Name is missing"
	WarnNoContent   = "No experience or projects added"
)

// Validate returns warnings for a resume that is not ready to export. An empty
// result means the resume is ready.
func Validate(resume *types.Resume) []string {
	warnings := []string{}

	if strings.TrimSpace(resume.PersonalInfo.Name) == "" {
		warnings = append(warnings, WarnMissingName)
	}

	hasExperience := false
	for _, exp := range resume.Experience {
		if exp.Company != "" || exp.Position != "" {
			hasExperience = true
			break
		}
	}
	hasProjects := false
	for _, proj := range resume.Projects {
		if proj.Name != "" {
			hasProjects = true
			break
		}
	}
	if !hasExperience && !hasProjects {
		warnings = append(warnings, WarnNoContent)
	}

	return warnings
}
