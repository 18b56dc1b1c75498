package export

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/jonathan/career-readiness/internal/types"
)

// ruleWidth is the length of the dashed line under each section header
const ruleWidth = 40

// defaultTemplate lays out the plain-text resume. Every block ends with a blank line;
// the final one is trimmed after rendering.
const defaultTemplate = `{{if .Name}}{{.Name}}

{{end}}{{if .Contact}}{{.Contact}}

{{end}}{{if .Links}}{{range .Links}}{{.}}
{{end}}
{{end}}{{range .Sections}}{{.Title}}
{{rule}}
{{range .Entries}}{{range .}}{{.}}
{{end}}
{{end}}{{end}}`

var funcs = template.FuncMap{
	"rule": func() string { return strings.Repeat("-", ruleWidth) },
	"join": strings.Join,
}

var defaultTmpl = template.Must(template.New("resume").Funcs(funcs).Parse(defaultTemplate))

// bulletSplit splits descriptions into sentences on newlines or ". "
var bulletSplit = regexp.MustCompile(`\n|\.\s+`)

// TemplateData represents the data structure passed to the text template
type TemplateData struct {
	Name     string
	Contact  string
	Links    []string
	Sections []Section
	Resume   *types.Resume
}

// Section is a titled block of entries. Each entry is a group of lines followed by a blank line.
type Section struct {
	Title   string
	Entries [][]string
}

// ResumeText renders the resume with the built-in plain-text layout.
func ResumeText(resume *types.Resume) (string, error) {
	return render(defaultTmpl, resume)
}

// ResumeTextFromTemplate renders the resume with a user-supplied text template.
// The template receives TemplateData and may call rule and join.
func ResumeTextFromTemplate(resume *types.Resume, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return render(tmpl, resume)
}

func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := template.New("resume").Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func render(tmpl *template.Template, resume *types.Resume) (string, error) {
	if resume == nil {
		empty := types.NewResume()
		resume = &empty
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, BuildTemplateData(resume)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return strings.TrimSuffix(result.String(), "\n"), nil
}

// BuildTemplateData collects the non-empty parts of a resume into sections.
func BuildTemplateData(resume *types.Resume) *TemplateData {
	info := resume.PersonalInfo
	data := &TemplateData{
		Name:    info.Name,
		Contact: joinNonEmpty(" | ", info.Email, info.Phone, info.Location),
		Resume:  resume,
	}
	if resume.Links.GitHub != "" {
		data.Links = append(data.Links, "GitHub: "+resume.Links.GitHub)
	}
	if resume.Links.LinkedIn != "" {
		data.Links = append(data.Links, "LinkedIn: "+resume.Links.LinkedIn)
	}

	if resume.Summary != "" {
		data.Sections = append(data.Sections, Section{Title: "SUMMARY", Entries: [][]string{{resume.Summary}}})
	}

	var experience [][]string
	for _, exp := range resume.Experience {
		if exp.Company == "" && exp.Position == "" {
			continue
		}
		lines := []string{joinNonEmpty(" - ", exp.Position, exp.Company)}
		if exp.Duration != "" {
			lines = append(lines, "Duration: "+exp.Duration)
		}
		lines = append(lines, Bullets(exp.Description)...)
		experience = append(experience, lines)
	}
	if len(experience) > 0 {
		data.Sections = append(data.Sections, Section{Title: "EXPERIENCE", Entries: experience})
	}

	var projects [][]string
	for _, proj := range resume.Projects {
		if proj.Name == "" {
			continue
		}
		lines := append([]string{proj.Name}, Bullets(proj.Description)...)
		if len(proj.Tech) > 0 {
			lines = append(lines, "Technologies: "+strings.Join(proj.Tech, ", "))
		}
		projects = append(projects, lines)
	}
	if len(projects) > 0 {
		data.Sections = append(data.Sections, Section{Title: "PROJECTS", Entries: projects})
	}

	var education [][]string
	for _, edu := range resume.Education {
		if edu.School == "" && edu.Degree == "" {
			continue
		}
		lines := []string{joinNonEmpty(" - ", edu.Degree, edu.School)}
		if edu.Year != "" {
			lines = append(lines, "Year: "+edu.Year)
		}
		education = append(education, lines)
	}
	if len(education) > 0 {
		data.Sections = append(data.Sections, Section{Title: "EDUCATION", Entries: education})
	}

	var skillLines []string
	for _, cat := range []struct {
		label  string
		skills []string
	}{
		{"Technical", resume.Skills.Technical},
		{"Soft", resume.Skills.Soft},
		{"Tools", resume.Skills.Tools},
	} {
		if len(cat.skills) > 0 {
			skillLines = append(skillLines, cat.label+": "+strings.Join(cat.skills, ", "))
		}
	}
	if len(skillLines) > 0 {
		data.Sections = append(data.Sections, Section{Title: "SKILLS", Entries: [][]string{skillLines}})
	}

	return data
}

// Bullets splits a description into "• " lines, each ending with a period.
func Bullets(description string) []string {
	var out []string
	for _, part := range bulletSplit.Split(description, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasSuffix(part, ".") {
			part += "."
		}
		out = append(out, "• "+part)
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
