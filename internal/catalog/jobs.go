// Package catalog holds the static job listings and the practice assessment catalog.
package catalog

import (
	"sort"
	"strings"

	"github.com/jonathan/career-readiness/internal/skills"
	"github.com/jonathan/career-readiness/internal/types"
)

// Listing is a job offered by the catalog, before the user saves it
type Listing struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Type           string   `json:"type"`
	Salary         string   `json:"salary"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	PostedAt       string   `json:"postedAt"`
}

var sampleJobs = []Listing{
	{
		ID:             "1",
		Title:          "Frontend Developer",
		Company:        "TechCorp",
		Location:       "Remote",
		Type:           "Full-time",
		Salary:         "$80k - $120k",
		Description:    "We are looking for a skilled Frontend Developer proficient in React and modern JavaScript.",
		RequiredSkills: []string{"React", "JavaScript", "HTML", "CSS", "TypeScript"},
		PostedAt:       "2024-01-15",
	},
	{
		ID:             "2",
		Title:          "Full Stack Engineer",
		Company:        "StartupXYZ",
		Location:       "New York, NY",
		Type:           "Full-time",
		Salary:         "$100k - $150k",
		Description:    "Join our fast-growing startup as a Full Stack Engineer working with React and Node.js.",
		RequiredSkills: []string{"React", "Node.js", "MongoDB", "JavaScript", "Git"},
		PostedAt:       "2024-01-14",
	},
	{
		ID:             "3",
		Title:          "Software Engineer",
		Company:        "BigTech Inc",
		Location:       "San Francisco, CA",
		Type:           "Full-time",
		Salary:         "$120k - $180k",
		Description:    "Looking for talented Software Engineers to join our platform team.",
		RequiredSkills: []string{"Java", "Python", "AWS", "Docker", "Kubernetes"},
		PostedAt:       "2024-01-13",
	},
	{
		ID:             "4",
		Title:          "React Developer",
		Company:        "Digital Agency",
		Location:       "Remote",
		Type:           "Contract",
		Salary:         "$60 - $80/hr",
		Description:    "Short-term contract for an experienced React developer.",
		RequiredSkills: []string{"React", "Redux", "JavaScript", "CSS", "Git"},
		PostedAt:       "2024-01-12",
	},
	{
		ID:             "5",
		Title:          "Backend Developer",
		Company:        "CloudSystems",
		Location:       "Austin, TX",
		Type:           "Full-time",
		Salary:         "$90k - $130k",
		Description:    "Build scalable backend services using Node.js and PostgreSQL.",
		RequiredSkills: []string{"Node.js", "PostgreSQL", "Redis", "Docker", "AWS"},
		PostedAt:       "2024-01-11",
	},
}

// Jobs returns a copy of the catalog listings.
func Jobs() []Listing {
	out := make([]Listing, len(sampleJobs))
	for i, job := range sampleJobs {
		job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
		out[i] = job
	}
	return out
}

// FindJob returns the listing with the given id.
func FindJob(id string) (Listing, bool) {
	for _, job := range Jobs() {
		if job.ID == id {
			return job, true
		}
	}
	return Listing{}, false
}

// MatchSkills returns the resume skills used for listing match scores: technical and tools.
func MatchSkills(resume *types.Resume) []string {
	out := make([]string, 0, len(resume.Skills.Technical)+len(resume.Skills.Tools))
	out = append(out, resume.Skills.Technical...)
	out = append(out, resume.Skills.Tools...)
	return out
}

// ScoredListing is a listing with its match score against the current resume
type ScoredListing struct {
	Listing
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	Saved         bool     `json:"saved"`
}

// Filter narrows the listing view.
type Filter struct {
	Search     string
	SavedOnly  bool
	RemoteOnly bool
}

// Browse scores every listing against the resume, applies the filter and
// sorts by match score descending.
func Browse(resume *types.Resume, saved []types.JobMatch, filter Filter) []ScoredListing {
	have := MatchSkills(resume)
	savedIDs := make(map[string]bool, len(saved))
	for _, s := range saved {
		savedIDs[s.ID] = true
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := []ScoredListing{}
	for _, job := range Jobs() {
		if search != "" && !matchesSearch(job, search) {
			continue
		}
		if filter.SavedOnly && !savedIDs[job.ID] {
			continue
		}
		if filter.RemoteOnly && !strings.Contains(strings.ToLower(job.Location), "remote") {
			continue
		}
		score, matched := skills.Score(job.RequiredSkills, have)
		out = append(out, ScoredListing{
			Listing:       job,
			MatchScore:    score,
			MatchedSkills: matched,
			Saved:         savedIDs[job.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

func matchesSearch(job Listing, search string) bool {
	if strings.Contains(strings.ToLower(job.Title), search) ||
		strings.Contains(strings.ToLower(job.Company), search) {
		return true
	}
	for _, skill := range job.RequiredSkills {
		if strings.Contains(strings.ToLower(skill), search) {
			return true
		}
	}
	return false
}

// ToJobMatch converts a listing into a saveable job match scored against the resume.
func ToJobMatch(job Listing, resume *types.Resume) types.JobMatch {
	score, matched := skills.Score(job.RequiredSkills, MatchSkills(resume))
	return types.JobMatch{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Location:       job.Location,
		Type:           job.Type,
		Salary:         job.Salary,
		Description:    job.Description,
		RequiredSkills: append([]string(nil), job.RequiredSkills...),
		PostedAt:       job.PostedAt,
		MatchScore:     score,
		MatchedSkills:  matched,
	}
}
