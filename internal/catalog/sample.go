package catalog

import "github.com/jonathan/career-readiness/internal/types"

// SampleResume returns the demo resume. Entry ids are left empty for the store to assign.
func SampleResume() types.Resume {
	return types.Resume{
		PersonalInfo: types.PersonalInfo{
			Name:     "Alex Johnson",
			Email:    "alex.johnson@email.com",
			Phone:    "+1 (555) 123-4567",
			Location: "San Francisco, CA",
		},
		Summary: "Full-stack developer with 5+ years of experience building scalable web applications. " +
			"Passionate about clean code and user experience.",
		Education: []types.Education{
			{
				School: "Stanford University",
				Degree: "Bachelor of Science in Computer Science",
				Year:   "2015 - 2019",
			},
		},
		Experience: []types.Experience{
			{
				Company:     "Tech Corp",
				Position:    "Senior Software Engineer",
				Duration:    "2021 - Present",
				Description: "Led development of microservices architecture serving 1M+ users. Reduced API response time by 40%.",
			},
			{
				Company:     "StartupXYZ",
				Position:    "Software Engineer",
				Duration:    "2019 - 2021",
				Description: "Built responsive web applications using React and Node.js. Implemented CI/CD pipelines.",
			},
		},
		Projects: []types.Project{
			{
				Name:        "E-commerce Platform",
				Description: "Built a full-stack e-commerce platform with payment integration and real-time inventory management.",
				Tech:        []string{"React", "Node.js", "PostgreSQL", "Stripe"},
			},
		},
		Skills: types.Skills{
			Technical: []string{"JavaScript", "TypeScript", "React", "Node.js", "Python", "PostgreSQL"},
			Soft:      []string{"Communication", "Problem Solving"},
			Tools:     []string{"AWS", "Docker", "Git"},
		},
		Links: types.Links{
			GitHub:   "github.com/alexjohnson",
			LinkedIn: "linkedin.com/in/alexjohnson",
		},
	}
}
