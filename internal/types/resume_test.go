package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestNewResume_EmptyCollections(t *testing.T) {
	r := NewResume()
	assert.NotNil(t, r.Experience)
	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.Projects)
	assert.NotNil(t, r.Skills.Technical)
	assert.NotNil(t, r.Skills.Soft)
	assert.NotNil(t, r.Skills.Tools)
}

func TestSkills_AddRemove(t *testing.T) {
	var s Skills

	added, err := s.Add(SkillTechnical, " Go ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(SkillTechnical, "go")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = s.Add(SkillTools, "   ")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = s.Add("hobbies", "chess")
	assert.ErrorIs(t, err, ErrUnknownSkillCategory)

	_, err = s.Add(SkillSoft, "Mentoring")
	require.NoError(t, err)
	_, err = s.Add(SkillTools, "Git")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Mentoring", "Git"}, s.All())
	assert.Equal(t, 3, s.Count())

	removed, err := s.Remove(SkillTechnical, "GO")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(SkillTechnical, "Go")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.Remove("hobbies", "chess")
	assert.ErrorIs(t, err, ErrUnknownSkillCategory)
}

func TestSkills_Dedupe(t *testing.T) {
	s := Skills{Technical: []string{"Go", " go", "", "SQL"}, Tools: []string{"Git", "git"}}
	s.Dedupe()
	assert.Equal(t, []string{"Go", "SQL"}, s.Technical)
	assert.Equal(t, []string{"Git"}, s.Tools)
	assert.Empty(t, s.Soft)
}

func TestResume_EnsureIDs(t *testing.T) {
	r := NewResume()
	r.Experience = []Experience{{ID: "keep"}, {}, {ID: "keep"}}
	r.Projects = []Project{{}}

	assert.True(t, r.EnsureIDs(counter()))
	assert.Equal(t, "keep", r.Experience[0].ID)
	assert.Equal(t, "id-1", r.Experience[1].ID)
	assert.Equal(t, "id-2", r.Experience[2].ID)
	assert.Equal(t, "id-3", r.Projects[0].ID)

	assert.False(t, r.EnsureIDs(counter()))
}

func TestResume_EntryLifecycle(t *testing.T) {
	r := NewResume()
	newID := counter()

	exp := r.AddExperience(Experience{ID: "ignored", Company: "Acme"}, newID)
	edu := r.AddEducation(Education{School: "State"}, newID)
	proj := r.AddProject(Project{Name: "CLI"}, newID)
	assert.Equal(t, "id-1", exp.ID)
	assert.Equal(t, "id-2", edu.ID)
	assert.Equal(t, "id-3", proj.ID)
	assert.NotNil(t, r.Projects[0].Tech)

	exp.Position = "Lead"
	assert.True(t, r.UpdateExperience(exp))
	assert.Equal(t, "Lead", r.Experience[0].Position)
	assert.False(t, r.UpdateExperience(Experience{ID: "missing"}))

	edu.Degree = "BSc"
	assert.True(t, r.UpdateEducation(edu))
	assert.Equal(t, "BSc", r.Education[0].Degree)

	assert.True(t, r.UpdateProject(Project{ID: proj.ID, Name: "CLI v2"}))
	assert.Equal(t, "CLI v2", r.Projects[0].Name)
	assert.NotNil(t, r.Projects[0].Tech)
	assert.False(t, r.UpdateProject(Project{ID: "missing"}))

	assert.True(t, r.RemoveEntry(edu.ID))
	assert.Empty(t, r.Education)
	assert.True(t, r.RemoveEntry(proj.ID))
	assert.True(t, r.RemoveEntry(exp.ID))
	assert.False(t, r.RemoveEntry(exp.ID))
}
