package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/career-readiness/internal/export"
	"github.com/jonathan/career-readiness/internal/scoring"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "View, edit, score and export your resume",
}

var resumeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored resume as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runResumeShow,
}

var resumeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the resume with a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeImport,
}

var resumeSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Replace the resume with a sample resume",
	Args:  cobra.NoArgs,
	RunE:  runResumeSample,
}

var resumeTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Render the resume as plain text",
	Args:  cobra.NoArgs,
	RunE:  runResumeText,
}

var resumeATSCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score the resume for applicant tracking systems",
	Args:  cobra.NoArgs,
	RunE:  runResumeATS,
}

var resumeImprovementsCmd = &cobra.Command{
	Use:   "improvements",
	Short: "List the top improvements for the resume",
	Args:  cobra.NoArgs,
	RunE:  runResumeImprovements,
}

var resumeBulletCmd = &cobra.Command{
	Use:         "bullet <text>",
	Short:       "Check a bullet point for an action verb and a measurable result",
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationNoWorkspace: ""},
	RunE:        runResumeBullet,
}

var resumeSkillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Add or remove skills",
}

var resumeSkillAddCmd = &cobra.Command{
	Use:   "add <technical|soft|tools> <skill>...",
	Short: "Add skills to a category",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runResumeSkillAdd,
}

var resumeSkillRemoveCmd = &cobra.Command{
	Use:   "remove <technical|soft|tools> <skill>...",
	Short: "Remove skills from a category",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runResumeSkillRemove,
}

var resumeAddCmd = &cobra.Command{
	Use:       "add <experience|education|project>",
	Short:     "Add an experience, education or project entry",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"experience", "education", "project"},
	RunE:      runResumeAdd,
}

var resumeRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Remove an experience, education or project entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeRemove,
}

var (
	resumeShowYAML  bool
	resumeTextOut   string
	resumeTextTmpl  string
	resumeEntryName string
	resumeEntryOrg  string
	resumeEntryRole string
	resumeEntryWhen string
	resumeEntryDesc string
	resumeEntryTech []string
	resumeEntryLive string
	resumeEntryRepo string
)

func init() {
	resumeShowCmd.Flags().BoolVar(&resumeShowYAML, "yaml", false, "Print YAML instead of JSON")

	resumeTextCmd.Flags().StringVarP(&resumeTextOut, "out", "o", "", "Write the text to a file instead of stdout")
	resumeTextCmd.Flags().StringVar(&resumeTextTmpl, "template", "", "Path to a custom text/template file")

	resumeAddCmd.Flags().StringVar(&resumeEntryName, "name", "", "Project name")
	resumeAddCmd.Flags().StringVar(&resumeEntryOrg, "org", "", "Company (experience) or school (education)")
	resumeAddCmd.Flags().StringVar(&resumeEntryRole, "role", "", "Position (experience) or degree (education)")
	resumeAddCmd.Flags().StringVar(&resumeEntryWhen, "when", "", "Duration (experience) or year (education)")
	resumeAddCmd.Flags().StringVar(&resumeEntryDesc, "description", "", "Description; sentences become bullets in text output")
	resumeAddCmd.Flags().StringSliceVar(&resumeEntryTech, "tech", nil, "Project technologies (comma-separated)")
	resumeAddCmd.Flags().StringVar(&resumeEntryLive, "live-url", "", "Project live URL")
	resumeAddCmd.Flags().StringVar(&resumeEntryRepo, "github-url", "", "Project repository URL")

	resumeSkillCmd.AddCommand(resumeSkillAddCmd, resumeSkillRemoveCmd)
	resumeCmd.AddCommand(resumeShowCmd, resumeImportCmd, resumeSampleCmd, resumeTextCmd, resumeATSCmd,
		resumeImprovementsCmd, resumeBulletCmd, resumeSkillCmd, resumeAddCmd, resumeRemoveCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResumeShow(cmd *cobra.Command, _ []string) error {
	resume := ws.Store.GetResume(ctxOf(cmd))
	if resumeShowYAML {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(resume)
	}
	return printJSON(cmd.OutOrStdout(), resume)
}

func runResumeImport(cmd *cobra.Command, args []string) error {
	resume, err := ws.ImportResume(ctxOf(cmd), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported resume for %s (%d skills)\n", displayName(resume), resume.Skills.Count())
	return nil
}

func runResumeSample(cmd *cobra.Command, _ []string) error {
	resume, err := ws.LoadSample(ctxOf(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded sample resume for %s\n", displayName(resume))
	return nil
}

func runResumeText(cmd *cobra.Command, _ []string) error {
	resume := ws.Store.GetResume(ctxOf(cmd))
	for _, warning := range export.Validate(&resume) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}

	var text string
	var err error
	if resumeTextTmpl != "" {
		text, err = export.ResumeTextFromTemplate(&resume, resumeTextTmpl)
	} else {
		text, err = export.ResumeText(&resume)
	}
	if err != nil {
		return err
	}

	if resumeTextOut == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	if err := os.WriteFile(resumeTextOut, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", resumeTextOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", resumeTextOut)
	return nil
}

func runResumeATS(cmd *cobra.Command, _ []string) error {
	resume := ws.Store.GetResume(ctxOf(cmd))
	printer(cmd).PrintATS(scoring.CalculateATSScore(&resume))
	return nil
}

func runResumeImprovements(cmd *cobra.Command, _ []string) error {
	resume := ws.Store.GetResume(ctxOf(cmd))
	printer(cmd).PrintImprovements(scoring.TopImprovements(&resume))
	return nil
}

func runResumeBullet(cmd *cobra.Command, args []string) error {
	issues := scoring.CheckBulletGuidance(strings.Join(args, " "))
	if len(issues) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Looks good.")
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", issue)
	}
	return nil
}

func runResumeSkillAdd(cmd *cobra.Command, args []string) error {
	category := types.SkillCategory(strings.ToLower(args[0]))
	for _, skill := range args[1:] {
		added, err := ws.AddSkill(ctxOf(cmd), category, skill)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", skill, category)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already listed\n", skill)
		}
	}
	return nil
}

func runResumeSkillRemove(cmd *cobra.Command, args []string) error {
	category := types.SkillCategory(strings.ToLower(args[0]))
	for _, skill := range args[1:] {
		removed, err := ws.RemoveSkill(ctxOf(cmd), category, skill)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", skill, category)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not listed\n", skill)
		}
	}
	return nil
}

func runResumeAdd(cmd *cobra.Command, args []string) error {
	ctx := ctxOf(cmd)
	var id string
	switch strings.ToLower(args[0]) {
	case "experience":
		if resumeEntryOrg == "" && resumeEntryRole == "" {
			return fmt.Errorf("experience needs --org or --role")
		}
		e, err := ws.AddExperience(ctx, types.Experience{
			Company:     resumeEntryOrg,
			Position:    resumeEntryRole,
			Duration:    resumeEntryWhen,
			Description: resumeEntryDesc,
		})
		if err != nil {
			return err
		}
		id = e.ID
	case "education":
		if resumeEntryOrg == "" && resumeEntryRole == "" {
			return fmt.Errorf("education needs --org or --role")
		}
		e, err := ws.AddEducation(ctx, types.Education{
			School: resumeEntryOrg,
			Degree: resumeEntryRole,
			Year:   resumeEntryWhen,
		})
		if err != nil {
			return err
		}
		id = e.ID
	case "project":
		if resumeEntryName == "" {
			return fmt.Errorf("project needs --name")
		}
		p, err := ws.AddProject(ctx, types.Project{
			Name:        resumeEntryName,
			Description: resumeEntryDesc,
			Tech:        resumeEntryTech,
			LiveURL:     resumeEntryLive,
			GitHubURL:   resumeEntryRepo,
		})
		if err != nil {
			return err
		}
		id = p.ID
	default:
		return fmt.Errorf("unknown entry type %q (expected experience, education or project)", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", strings.ToLower(args[0]), id)
	return nil
}

func runResumeRemove(cmd *cobra.Command, args []string) error {
	if err := ws.RemoveResumeEntry(ctxOf(cmd), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func displayName(resume types.Resume) string {
	if resume.PersonalInfo.Name == "" {
		return "(unnamed)"
	}
	return resume.PersonalInfo.Name
}
