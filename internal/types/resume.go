// Package types provides type definitions for the persisted career-readiness record.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"strings"
)

// SkillCategory names one of the three resume skill lists.
type SkillCategory string

const (
	// SkillTechnical holds languages, frameworks and platforms
	SkillTechnical SkillCategory = "technical"
	// SkillSoft holds interpersonal skills
	SkillSoft SkillCategory = "soft"
	// SkillTools holds tooling such as Git or Jira
	SkillTools SkillCategory = "tools"
)

// ErrUnknownSkillCategory is returned when a skill category is not technical, soft or tools.
var ErrUnknownSkillCategory = errors.New("unknown skill category")

// PersonalInfo holds the contact block of a resume
type PersonalInfo struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
}

// Experience is a single work history entry
type Experience struct {
	ID          string `json:"id" yaml:"id"`
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
}

// Education is a single education entry
type Education struct {
	ID     string `json:"id" yaml:"id"`
	School string `json:"school" yaml:"school"`
	Degree string `json:"degree" yaml:"degree"`
	Year   string `json:"year" yaml:"year"`
}

// Project is a single portfolio project
type Project struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tech        []string `json:"tech" yaml:"tech"`
	LiveURL     string   `json:"liveUrl" yaml:"liveUrl"`
	GitHubURL   string   `json:"githubUrl" yaml:"githubUrl"`
}

// Skills holds the categorized skill lists. Each list is a set with insertion order preserved.
type Skills struct {
	Technical []string `json:"technical" yaml:"technical"`
	Soft      []string `json:"soft" yaml:"soft"`
	Tools     []string `json:"tools" yaml:"tools"`
}

// Links holds profile URLs
type Links struct {
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
}

// Resume is the structured resume the user builds
type Resume struct {
	PersonalInfo PersonalInfo `json:"personalInfo" yaml:"personalInfo"`
	Summary      string       `json:"summary" yaml:"summary"`
	Experience   []Experience `json:"experience" yaml:"experience"`
	Education    []Education  `json:"education" yaml:"education"`
	Projects     []Project    `json:"projects" yaml:"projects"`
	Skills       Skills       `json:"skills" yaml:"skills"`
	Links        Links        `json:"links" yaml:"links"`
}

// NewResume returns an empty resume with non-nil lists.
func NewResume() Resume {
	r := Resume{}
	r.Normalize()
	return r
}

// All returns technical, soft and tools skills in that order.
func (s *Skills) All() []string {
	all := make([]string, 0, s.Count())
	all = append(all, s.Technical...)
	all = append(all, s.Soft...)
	all = append(all, s.Tools...)
	return all
}

// Count returns the total number of skills across all categories.
func (s *Skills) Count() int {
	return len(s.Technical) + len(s.Soft) + len(s.Tools)
}

func (s *Skills) list(category SkillCategory) (*[]string, error) {
	switch category {
	case SkillTechnical:
		return &s.Technical, nil
	case SkillSoft:
		return &s.Soft, nil
	case SkillTools:
		return &s.Tools, nil
	}
	return nil, ErrUnknownSkillCategory
}

// Add appends a skill to a category unless it is already present (case-insensitive).
// Returns true if the skill was added.
func (s *Skills) Add(category SkillCategory, skill string) (bool, error) {
	list, err := s.list(category)
	if err != nil {
		return false, err
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false, nil
	}
	for _, existing := range *list {
		if strings.EqualFold(existing, skill) {
			return false, nil
		}
	}
	*list = append(*list, skill)
	return true, nil
}

// Remove deletes a skill from a category (case-insensitive). Returns true if it was present.
func (s *Skills) Remove(category SkillCategory, skill string) (bool, error) {
	list, err := s.list(category)
	if err != nil {
		return false, err
	}
	for i, existing := range *list {
		if strings.EqualFold(existing, strings.TrimSpace(skill)) {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Dedupe removes blank and case-insensitive duplicate entries, keeping first occurrences.
func (s *Skills) Dedupe() {
	s.Technical = dedupe(s.Technical)
	s.Soft = dedupe(s.Soft)
	s.Tools = dedupe(s.Tools)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// Normalize replaces nil lists with empty ones so the record always serializes as arrays.
func (r *Resume) Normalize() {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Tech == nil {
			r.Projects[i].Tech = []string{}
		}
	}
	if r.Skills.Technical == nil {
		r.Skills.Technical = []string{}
	}
	if r.Skills.Soft == nil {
		r.Skills.Soft = []string{}
	}
	if r.Skills.Tools == nil {
		r.Skills.Tools = []string{}
	}
}

// EnsureIDs assigns an id to every list entry that lacks one or repeats an earlier id.
// Returns true if any id was assigned.
func (r *Resume) EnsureIDs(newID func() string) bool {
	changed := false
	seen := make(map[string]bool)
	assign := func(id *string) {
		if *id == "" || seen[*id] {
			*id = newID()
			changed = true
		}
		seen[*id] = true
	}
	for i := range r.Experience {
		assign(&r.Experience[i].ID)
	}
	for i := range r.Education {
		assign(&r.Education[i].ID)
	}
	for i := range r.Projects {
		assign(&r.Projects[i].ID)
	}
	return changed
}

// AddExperience appends an experience entry with a fresh id and returns the stored entry.
func (r *Resume) AddExperience(e Experience, newID func() string) Experience {
	e.ID = newID()
	r.Experience = append(r.Experience, e)
	return e
}

// AddEducation appends an education entry with a fresh id and returns the stored entry.
func (r *Resume) AddEducation(e Education, newID func() string) Education {
	e.ID = newID()
	r.Education = append(r.Education, e)
	return e
}

// AddProject appends a project with a fresh id and returns the stored entry.
func (r *Resume) AddProject(p Project, newID func() string) Project {
	p.ID = newID()
	if p.Tech == nil {
		p.Tech = []string{}
	}
	r.Projects = append(r.Projects, p)
	return p
}

// UpdateExperience replaces the entry with a matching id, keeping the id. Returns false if not found.
func (r *Resume) UpdateExperience(e Experience) bool {
	for i := range r.Experience {
		if r.Experience[i].ID == e.ID {
			r.Experience[i] = e
			return true
		}
	}
	return false
}

// UpdateEducation replaces the entry with a matching id. Returns false if not found.
func (r *Resume) UpdateEducation(e Education) bool {
	for i := range r.Education {
		if r.Education[i].ID == e.ID {
			r.Education[i] = e
			return true
		}
	}
	return false
}

// UpdateProject replaces the project with a matching id. Returns false if not found.
func (r *Resume) UpdateProject(p Project) bool {
	for i := range r.Projects {
		if r.Projects[i].ID == p.ID {
			if p.Tech == nil {
				p.Tech = []string{}
			}
			r.Projects[i] = p
			return true
		}
	}
	return false
}

// RemoveEntry deletes the experience, education or project entry with the given id.
// Returns false if no entry has that id.
func (r *Resume) RemoveEntry(id string) bool {
	for i := range r.Experience {
		if r.Experience[i].ID == id {
			r.Experience = append(r.Experience[:i], r.Experience[i+1:]...)
			return true
		}
	}
	for i := range r.Education {
		if r.Education[i].ID == id {
			r.Education = append(r.Education[:i], r.Education[i+1:]...)
			return true
		}
	}
	for i := range r.Projects {
		if r.Projects[i].ID == id {
			r.Projects = append(r.Projects[:i], r.Projects[i+1:]...)
			return true
		}
	}
	return false
}
