package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/career-readiness/internal/automation"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so package-level commands can run repeatedly.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cli struct {
	t      *testing.T
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "readiness.yaml")
	content := "storage:\n  driver: file\n  path: " + filepath.Join(dir, "data") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return &cli{t: t, config: path}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", c.config))

	err := rootCmd.ExecuteContext(context.Background())
	_ = closeWorkspace(nil, nil)
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestVersion(t *testing.T) {
	out := newCLI(t).mustRun("version")
	assert.Equal(t, "readiness dev\n", out)
}

func TestResumeBullet_NoWorkspace(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("resume", "bullet", "Led", "migration", "cutting", "costs", "by", "30%")
	assert.Equal(t, "Looks good.\n", out)

	out = c.mustRun("resume", "bullet", "helped", "with", "stuff")
	assert.Contains(t, out, "- ")
}

func TestResumeSampleAndATS(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.mustRun("resume", "sample"), "Alex Johnson")
	assert.Contains(t, c.mustRun("resume", "ats"), "Score: 90/100 (Strong Resume)")

	text := c.mustRun("resume", "text")
	assert.True(t, strings.HasPrefix(text, "Alex Johnson\n"))
	assert.Contains(t, text, "SKILLS")

	var resume types.Resume
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("resume", "show")), &resume))
	assert.Equal(t, "Alex Johnson", resume.PersonalInfo.Name)

	assert.Contains(t, c.mustRun("resume", "show", "--yaml"), "name: Alex Johnson")
}

func TestResumeEditing(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("resume", "skill", "add", "technical", "Go", "go", "SQL")
	assert.Contains(t, out, "Added Go to technical")
	assert.Contains(t, out, "go is already listed")

	_, err := c.run("resume", "skill", "add", "hobbies", "chess")
	assert.ErrorIs(t, err, types.ErrUnknownSkillCategory)

	out = c.mustRun("resume", "add", "project", "--name", "CLI", "--tech", "Go,Cobra")
	require.True(t, strings.HasPrefix(out, "Added project "))
	id := strings.TrimSpace(strings.TrimPrefix(out, "Added project "))

	_, err = c.run("resume", "add", "experience")
	assert.Error(t, err)

	c.mustRun("resume", "remove", id)
	_, err = c.run("resume", "remove", id)
	assert.Error(t, err)

	out = c.mustRun("resume", "skill", "remove", "technical", "sql")
	assert.Contains(t, out, "Removed sql from technical")
}

func TestResumeImportAndTextFile(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "resume.yaml")
	require.NoError(t, os.WriteFile(src, []byte("personalInfo:\n  name: Sam Lee\nskills:\n  technical: [Go]\n"), 0o600))
	assert.Contains(t, c.mustRun("resume", "import", src), "Imported resume for Sam Lee (1 skills)")

	dst := filepath.Join(dir, "resume.txt")
	out := c.mustRun("resume", "text", "--out", dst)
	assert.Contains(t, out, "Warning: No experience or projects added")
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Sam Lee\n"))
}

func TestApplicationsAndScore(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("apply", "add", "--position", "Engineer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	c.mustRun("apply", "add", "--company", "Acme", "--position", "Engineer")

	var apps []types.Application
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("apply", "list", "-o", "json")), &apps))
	require.Len(t, apps, 1)

	assert.Contains(t, c.mustRun("apply", "status", apps[0].ID, "Interview"), "is now Interview")
	_, err = c.run("apply", "status", apps[0].ID, "ghosted")
	assert.Error(t, err)

	c.mustRun("apply", "notes", apps[0].ID, "Onsite", "next", "week")
	assert.Contains(t, c.mustRun("apply", "list"), "notes: Onsite next week")

	var score struct {
		Overall   int                      `json:"overall"`
		Breakdown types.ReadinessBreakdown `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("score", "--recalc", "-o", "json")), &score))
	assert.Equal(t, 60, score.Breakdown.ApplicationProgress)
	assert.Positive(t, score.Overall)

	assert.Contains(t, c.mustRun("score"), "CAREER READINESS")

	c.mustRun("apply", "remove", apps[0].ID)
	_, err = c.run("apply", "remove", apps[0].ID)
	assert.Error(t, err)
}

func TestJobs(t *testing.T) {
	c := newCLI(t)
	c.mustRun("resume", "sample")

	assert.Contains(t, c.mustRun("jobs", "save", "1"), "Saved ")
	assert.Contains(t, c.mustRun("jobs", "save", "1"), "already saved")
	_, err := c.run("jobs", "save", "404")
	assert.Error(t, err)

	assert.Contains(t, c.mustRun("jobs", "list", "--saved"), "JOBS (1)")
	assert.Contains(t, c.mustRun("jobs", "list"), "JOBS (5)")

	c.mustRun("jobs", "remove", "1")
	assert.Contains(t, c.mustRun("jobs", "list", "--saved"), "No jobs match the filter.")
}

func TestAnalyze(t *testing.T) {
	c := newCLI(t)
	c.mustRun("resume", "skill", "add", "technical", "Python")

	out := c.mustRun("analyze", "We need Python and Docker for our backend team.")
	assert.Contains(t, out, "Alignment: 50%")
	assert.Contains(t, out, "Suggestion: Consider adding these skills:")

	file := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(file, []byte("Kubernetes and AWS required"), 0o600))
	var analyses []types.JDAnalysis
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("analyze", "--file", file, "-o", "json")), &analyses))
	require.Len(t, analyses, 1)

	_, err := c.run("analyze")
	assert.Error(t, err)
	_, err = c.run("analyze", "text", "--file", file)
	assert.Error(t, err)

	list := c.mustRun("analyses", "list")
	assert.Equal(t, 2, strings.Count(list, "\n"))

	c.mustRun("analyses", "remove", analyses[0].ID)
	assert.Equal(t, 1, strings.Count(c.mustRun("analyses", "list"), "\n"))
}

func TestPractice(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.mustRun("practice", "take", types.AssessmentTechnical, "--answers", "1,0,2,2,1"), "100%")
	_, err := c.run("practice", "take", "juggling", "--answers", "0")
	assert.Error(t, err)

	out := c.mustRun("practice", "list")
	assert.Contains(t, out, "Completed: 1  Total score: 100")
}

func TestPrefs(t *testing.T) {
	c := newCLI(t)

	c.mustRun("prefs", "set", "theme", "dark")
	c.mustRun("prefs", "set", "color", "forest")
	_, err := c.run("prefs", "set", "color", "neon")
	assert.Error(t, err)

	var prefs types.Preferences
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("prefs", "show")), &prefs))
	assert.Equal(t, types.ThemeDark, prefs.Theme)
	assert.Equal(t, types.ColorForest, prefs.Color)
}

func TestDataExportClearImport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("apply", "add", "--company", "Acme", "--position", "Engineer")

	path := filepath.Join(t.TempDir(), "export.json")
	assert.Contains(t, c.mustRun("data", "export", path), "Exported data to")

	assert.Contains(t, c.mustRun("data", "clear", "--yes"), "All data cleared.")
	assert.Contains(t, c.mustRun("data", "stats"), "Applications:          0")

	c.mustRun("data", "import", path)
	assert.Contains(t, c.mustRun("data", "stats"), "Applications:          1")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{}"), 0o600))
	_, err := c.run("data", "import", bad)
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("rules", "list")
	assert.Contains(t, out, automation.RuleTrackLastActivity)

	assert.Contains(t, c.mustRun("rules", "trigger", automation.RuleTrackLastActivity), "Ran ")
	_, err := c.run("rules", "trigger", "nope")
	assert.Error(t, err)
}

func TestOutputFlagIsPerCommand(t *testing.T) {
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	require.NoError(t, applyListCmd.Flags().Set("output", "json"))

	assert.True(t, wantJSON(applyListCmd))
	assert.False(t, wantJSON(rulesListCmd))
	assert.False(t, wantJSON(jobsListCmd))
	assert.False(t, wantJSON(versionCmd))
}

func TestOutputFormatDoesNotLeakBetweenRuns(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("rules", "list", "-o", "json")
	assert.True(t, strings.HasPrefix(out, "["))

	out = c.mustRun("apply", "list")
	assert.False(t, strings.HasPrefix(out, "["))
}
