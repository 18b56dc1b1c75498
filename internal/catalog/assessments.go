package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/jonathan/career-readiness/internal/types"
)

// ErrUnknownAssessment is returned for an assessment id outside the catalog.
var ErrUnknownAssessment = errors.New("unknown assessment")

// Question is a multiple-choice question
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Assessment is an ordered set of questions for one skill area
type Assessment struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

var assessments = []Assessment{
	{
		ID:          types.AssessmentTechnical,
		Title:       "Technical Fundamentals",
		Description: "Core programming and web concepts",
		Questions: []Question{
			{
				Text:         "Which HTTP method is idempotent and used to replace a resource?",
				Options:      []string{"POST", "PUT", "PATCH", "CONNECT"},
				CorrectIndex: 1,
			},
			{
				Text:         "What is the time complexity of looking up a key in a hash map on average?",
				Options:      []string{"O(1)", "O(log n)", "O(n)", "O(n log n)"},
				CorrectIndex: 0,
			},
			{
				Text:         "Which SQL clause filters rows after aggregation?",
				Options:      []string{"WHERE", "GROUP BY", "HAVING", "ORDER BY"},
				CorrectIndex: 2,
			},
			{
				Text:         "What does a 404 status code mean?",
				Options:      []string{"Server error", "Unauthorized", "Not found", "Redirect"},
				CorrectIndex: 2,
			},
			{
				Text:         "Which git command creates a new branch and switches to it?",
				Options:      []string{"git branch -d", "git checkout -b", "git merge", "git stash"},
				CorrectIndex: 1,
			},
		},
	},
	{
		ID:          types.AssessmentAptitude,
		Title:       "Aptitude",
		Description: "Numerical and logical reasoning",
		Questions: []Question{
			{
				Text:         "What is the next number in the sequence 2, 6, 12, 20, 30, ?",
				Options:      []string{"40", "42", "44", "36"},
				CorrectIndex: 1,
			},
			{
				Text:         "A price rises 20% and then falls 20%. The final price is:",
				Options:      []string{"Unchanged", "4% lower", "4% higher", "2% lower"},
				CorrectIndex: 1,
			},
			{
				Text:         "If 3 workers finish a job in 8 days, how many days do 6 workers need?",
				Options:      []string{"2", "4", "6", "16"},
				CorrectIndex: 1,
			},
			{
				Text:         "All engineers are problem solvers. Some problem solvers are artists. Which must be true?",
				Options:      []string{"Some engineers are artists", "No engineers are artists", "All artists are engineers", "None of the above"},
				CorrectIndex: 3,
			},
			{
				Text:         "What is 15% of 240?",
				Options:      []string{"24", "30", "36", "40"},
				CorrectIndex: 2,
			},
		},
	},
	{
		ID:          types.AssessmentCommunication,
		Title:       "Communication",
		Description: "Workplace communication scenarios",
		Questions: []Question{
			{
				Text:         "A stakeholder asks for a status update you cannot give yet. The best reply is:",
				Options:      []string{"Ignore the message", "Give a date when you will have an update", "Guess an answer", "Forward it to your manager"},
				CorrectIndex: 1,
			},
			{
				Text:         "Which is the most effective way to open a written report?",
				Options:      []string{"Background history", "A summary of the key conclusion", "A list of references", "An apology for length"},
				CorrectIndex: 1,
			},
			{
				Text:         "During a disagreement in a code review, you should first:",
				Options:      []string{"Escalate immediately", "Restate the other person's point to confirm understanding", "Approve to avoid conflict", "Rewrite their code"},
				CorrectIndex: 1,
			},
			{
				Text:         "Active listening is best shown by:",
				Options:      []string{"Interrupting with solutions", "Asking clarifying questions", "Checking your phone", "Staying silent throughout"},
				CorrectIndex: 1,
			},
		},
	},
	{
		ID:          types.AssessmentProblemSolving,
		Title:       "Problem Solving",
		Description: "Structured approaches to debugging and design",
		Questions: []Question{
			{
				Text:         "A production bug appears after a deploy. The first step is to:",
				Options:      []string{"Rewrite the module", "Reproduce and scope the issue", "Blame the last committer", "Wait for more reports"},
				CorrectIndex: 1,
			},
			{
				Text:         "Which technique narrows down the commit that introduced a regression?",
				Options:      []string{"Binary search over history", "Reading every diff", "Random sampling", "Reverting everything"},
				CorrectIndex: 0,
			},
			{
				Text:         "A task is too large to estimate. You should:",
				Options:      []string{"Pick a big number", "Break it into smaller tasks", "Skip estimation", "Start coding immediately"},
				CorrectIndex: 1,
			},
			{
				Text:         "When two requirements conflict, the best next step is to:",
				Options:      []string{"Implement both", "Clarify priorities with stakeholders", "Choose the easier one", "Ignore both"},
				CorrectIndex: 1,
			},
			{
				Text:         "You have a slow page load. What do you measure first?",
				Options:      []string{"Developer opinions", "Where time is spent using profiling", "Server color scheme", "Number of commits"},
				CorrectIndex: 1,
			},
		},
	},
}

// Assessments returns the catalog in display order.
func Assessments() []Assessment {
	out := make([]Assessment, len(assessments))
	copy(out, assessments)
	return out
}

// FindAssessment returns the assessment with the given id.
func FindAssessment(id string) (Assessment, error) {
	for _, a := range assessments {
		if a.ID == id {
			return a, nil
		}
	}
	return Assessment{}, fmt.Errorf("%w: %s", ErrUnknownAssessment, id)
}

// Grade scores answers (option indexes, in question order) as a rounded percentage.
// Missing answers count as wrong; extra answers are an error.
func (a Assessment) Grade(answers []int) (int, error) {
	if len(a.Questions) == 0 {
		return 0, nil
	}
	if len(answers) > len(a.Questions) {
		return 0, fmt.Errorf("assessment %s has %d questions, got %d answers", a.ID, len(a.Questions), len(answers))
	}

	correct := 0
	for i, answer := range answers {
		q := a.Questions[i]
		if answer < 0 || answer >= len(q.Options) {
			return 0, fmt.Errorf("answer %d out of range for question %d", answer, i+1)
		}
		if answer == q.CorrectIndex {
			correct++
		}
	}
	return int(math.Round(float64(correct) / float64(len(a.Questions)) * 100)), nil
}
