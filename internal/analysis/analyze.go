// Package analysis extracts required skills and keywords from job description text
// and measures how well a resume's skills cover them.
package analysis

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-readiness/internal/skills"
	"github.com/jonathan/career-readiness/internal/types"
)

const (
	// MaxSkills caps the number of extracted required skills
	MaxSkills = 15
	// SnapshotLength is the number of characters of the JD kept with an analysis
	SnapshotLength = 200
	// minTokenLength drops short tokens captured by phrase patterns ("a", "in")
	minTokenLength = 3
)

// ErrEmptyDescription is returned when the job description is blank.
var ErrEmptyDescription = errors.New("job description is empty")

// commonSkills is the vocabulary searched for by substring.
var commonSkills = []string{
	"javascript", "python", "java", "react", "node.js", "sql", "mongodb",
	"aws", "docker", "kubernetes", "git", "html", "css", "typescript",
	"angular", "vue", "express", "django", "flask", "spring", "hibernate",
	"postgresql", "mysql", "redis", "elasticsearch", "kafka", "rabbitmq",
	"jenkins", "circleci", "travis", "terraform", "ansible", "puppet",
	"linux", "bash", "powershell", "nginx", "apache", "graphql", "rest",
	"agile", "scrum", "kanban", "jira", "confluence", "figma", "sketch",
}

// commonKeywords is the role/culture vocabulary searched for by substring.
var commonKeywords = []string{
	"frontend", "backend", "fullstack", "devops", "cloud", "microservices",
	"api", "database", "testing", "ci/cd", "agile", "scrum", "remote",
	"leadership", "communication", "teamwork", "problem-solving",
}

// skillPatterns capture skill phrases such as "experience with Go, gRPC".
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+)\s+(?:programming|language|framework|library|tool|platform)`),
	regexp.MustCompile(`(?i)experience\s+(?:with|in)\s+([\w\s,]+)`),
	regexp.MustCompile(`(?i)proficient\s+(?:in|with)\s+([\w\s,]+)`),
	regexp.MustCompile(`(?i)knowledge\s+of\s+([\w\s,]+)`),
}

var tokenSplit = regexp.MustCompile(`[,\s]+`)

// Result is an analysis before it is stamped with an id and timestamp by the store.
type Result struct {
	RequiredSkills []string
	Keywords       []string
	AlignmentScore int
	MatchedSkills  []string
	MissingSkills  []string
	Snapshot       string
}

// ExtractSkills returns vocabulary skills found in text followed by tokens captured by
// the phrase patterns, de-duplicated and capped at MaxSkills.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, MaxSkills)

	for _, skill := range commonSkills {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}

	for _, pattern := range skillPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, token := range tokenSplit.Split(match[1], -1) {
				if len(token) >= minTokenLength {
					found = append(found, token)
				}
			}
		}
	}

	unique := make([]string, 0, len(found))
	seen := make(map[string]bool, len(found))
	for _, s := range found {
		if seen[s] {
			continue
		}
		seen[s] = true
		unique = append(unique, s)
		if len(unique) == MaxSkills {
			break
		}
	}
	return unique
}

// ExtractKeywords returns the vocabulary keywords present in text.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, kw := range commonKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// Snapshot keeps the first SnapshotLength characters of text, marking truncation with "...".
func Snapshot(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= SnapshotLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:SnapshotLength]) + "..."
}

// Analyze extracts skills and keywords from a job description and scores them
// against the resume's skills.
func Analyze(text string, resume *types.Resume) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDescription
	}

	var have []string
	if resume != nil {
		have = resume.Skills.All()
	}

	required := ExtractSkills(text)
	matched, missing := skills.Partition(required, have)

	score := 0
	if len(required) > 0 {
		score, _ = skills.Score(required, have)
	}

	return &Result{
		RequiredSkills: required,
		Keywords:       ExtractKeywords(text),
		AlignmentScore: score,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		Snapshot:       Snapshot(text),
	}, nil
}

// ToAnalysis converts a result into the persisted record shape, without id or timestamp.
func (r *Result) ToAnalysis() types.JDAnalysis {
	return types.JDAnalysis{
		JobDescription: r.Snapshot,
		RequiredSkills: r.RequiredSkills,
		Keywords:       r.Keywords,
		AlignmentScore: r.AlignmentScore,
		MatchedSkills:  r.MatchedSkills,
		MissingSkills:  r.MissingSkills,
	}
}
