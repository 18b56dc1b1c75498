package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate validates the Application input fields using the validator.
func (a *Application) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// Validate validates the Preferences using the validator.
func (p *Preferences) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates a saved job match.
func (j *JobMatch) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// Validate validates a job description analysis before it is stored.
func (a *JDAnalysis) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// Validate validates an assessment attempt.
func (c *CompletedAssessment) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Validate validates the completions and checks every skill score is a percentage.
func (p *PracticeData) Validate() error {
	for i := range p.CompletedAssessments {
		if err := p.CompletedAssessments[i].Validate(); err != nil {
			return err
		}
	}
	for id, score := range p.SkillScores {
		if score < 0 || score > 100 {
			return fmt.Errorf("skill score %q out of range: %d", id, score)
		}
	}
	if p.TotalScore < 0 {
		return fmt.Errorf("total score must not be negative: %d", p.TotalScore)
	}
	return nil
}
