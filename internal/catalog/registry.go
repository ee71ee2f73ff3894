package catalog

import "github.com/jonathan/resume-builder/internal/types"

// Section orders shared by several themes.
var (
	orderStandard = []string{
		types.FieldSummary, types.FieldExperience, types.FieldEducation, types.FieldSkills,
		types.FieldProjects, types.FieldCertifications, types.FieldAchievements, types.FieldLanguages,
	}
	orderTechnical = []string{
		types.FieldSummary, types.FieldSkills, types.FieldExperience, types.FieldProjects,
		types.FieldEducation, types.FieldCertifications, types.FieldAchievements, types.FieldLanguages,
	}
	orderAcademic = []string{
		types.FieldSummary, types.FieldEducation, types.FieldExperience, types.FieldProjects,
		types.FieldCertifications, types.FieldAchievements, types.FieldSkills, types.FieldLanguages,
	}
	orderStudent = []string{
		types.FieldSummary, types.FieldEducation, types.FieldProjects, types.FieldSkills,
		types.FieldExperience, types.FieldAchievements, types.FieldCertifications, types.FieldLanguages,
	}
	orderExecutive = []string{
		types.FieldSummary, types.FieldAchievements, types.FieldExperience, types.FieldEducation,
		types.FieldCertifications, types.FieldSkills, types.FieldProjects, types.FieldLanguages,
	}

	sidebarSkills = []string{types.FieldSkills, types.FieldLanguages, types.FieldCertifications}
	sidebarWide   = []string{types.FieldSkills, types.FieldLanguages, types.FieldCertifications, types.FieldEducation}
)

var (
	previewShort = PreviewBudget{Summary: 90, Description: 70, Achievement: 60}
	previewWide  = PreviewBudget{Summary: 120, Description: 100, Achievement: 80}
)

func entry(id, name, category, description string, theme Theme) Entry {
	if theme.Preview == (PreviewBudget{}) {
		theme.Preview = previewWide
	}
	if theme.FontFamily == "" {
		theme.FontFamily = "Helvetica, Arial, sans-serif"
	}
	return Entry{
		TemplateInfo: types.TemplateInfo{ID: id, Name: name, Category: category, Description: description},
		Theme:        theme,
	}
}

const (
	serif = "Georgia, 'Times New Roman', serif"
	mono  = "'JetBrains Mono', Menlo, monospace"
)

// entries is the closed template enumeration, in gallery order.
var entries = []Entry{
	entry(DefaultTemplateID, "Default", "Basic", "Plain single column layout with labelled placeholders for missing values.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#333333", Placeholders: true}),

	// Modern
	entry("modern-simple", "Modern Simple", "Modern", "Clean single column with a bold name header.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#2563eb"}),
	entry("modern-accent", "Modern Accent", "Modern", "Single column with a colored accent bar beside section titles.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#7c3aed"}),
	entry("modern-split", "Modern Split", "Modern", "Two columns with skills and languages on the right.",
		Theme{Layout: LayoutTwoColumn, Order: orderStandard, Sidebar: sidebarSkills, Accent: "#0891b2"}),
	entry("modern-bold", "Modern Bold", "Modern", "Large headings and a dark header band.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#111827"}),
	entry("modern-gradient", "Modern Gradient", "Modern", "Gradient header with a single content column.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#db2777"}),
	entry("modern-card", "Modern Card", "Modern", "Each section sits in its own rounded card.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#059669"}),
	entry("modern-timeline", "Modern Timeline", "Modern", "Experience and education drawn on a vertical timeline.",
		Theme{Layout: LayoutTimeline, Order: orderStandard, Accent: "#2563eb"}),
	entry("modern-sidebar", "Modern Sidebar", "Modern", "Colored left sidebar holding skills, languages and certifications.",
		Theme{Layout: LayoutSidebar, Order: orderStandard, Sidebar: sidebarSkills, Accent: "#1e3a8a"}),
	entry("modern-compact", "Modern Compact", "Modern", "Tight spacing to fit long histories on one page.",
		Theme{Layout: LayoutCompact, Order: orderStandard, Accent: "#2563eb", Preview: previewShort}),
	entry("modern-tabbed", "Modern Tabbed", "Modern", "Interactive tabs switch between sections in the editor preview.",
		Theme{Layout: LayoutTabbed, Order: orderStandard, Accent: "#4f46e5"}),

	// Classic
	entry("classic-professional", "Classic Professional", "Classic", "Traditional serif layout with ruled section headings.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#1f2937", FontFamily: serif}),
	entry("classic-serif", "Classic Serif", "Classic", "Book-style serif typography.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#374151", FontFamily: serif}),
	entry("classic-centered", "Classic Centered", "Classic", "Centered header and section titles.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#111827", FontFamily: serif}),
	entry("classic-ruled", "Classic Ruled", "Classic", "Horizontal rules between every section.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#4b5563", FontFamily: serif}),
	entry("classic-two-column", "Classic Two Column", "Classic", "Serif two column layout with education on the side.",
		Theme{Layout: LayoutTwoColumn, Order: orderStandard, Sidebar: sidebarWide, Accent: "#1f2937", FontFamily: serif}),
	entry("classic-ledger", "Classic Ledger", "Classic", "Dates aligned in a left ledger column.",
		Theme{Layout: LayoutTimeline, Order: orderStandard, Accent: "#78350f", FontFamily: serif}),
	entry("classic-formal", "Classic Formal", "Classic", "Formal letterhead style header.",
		Theme{Layout: LayoutSingle, Order: orderExecutive, Accent: "#0f172a", FontFamily: serif}),
	entry("classic-compact", "Classic Compact", "Classic", "Serif layout with reduced margins.",
		Theme{Layout: LayoutCompact, Order: orderStandard, Accent: "#1f2937", FontFamily: serif, Preview: previewShort}),

	// Minimal
	entry("minimal-clean", "Minimal Clean", "Minimal", "Generous whitespace and no decoration.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#000000"}),
	entry("minimal-mono", "Minimal Mono", "Minimal", "Monospaced typography throughout.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#000000", FontFamily: mono}),
	entry("minimal-line", "Minimal Line", "Minimal", "Thin lines separate sections.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#6b7280"}),
	entry("minimal-grid", "Minimal Grid", "Minimal", "Section titles in a narrow left grid column.",
		Theme{Layout: LayoutTwoColumn, Order: orderStandard, Sidebar: sidebarSkills, Accent: "#111827"}),
	entry("minimal-whitespace", "Minimal Whitespace", "Minimal", "Airy spacing for short résumés.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#374151"}),
	entry("minimal-sidebar", "Minimal Sidebar", "Minimal", "Unstyled sidebar for skills and languages.",
		Theme{Layout: LayoutSidebar, Order: orderStandard, Sidebar: sidebarSkills, Accent: "#111827"}),
	entry("minimal-dense", "Minimal Dense", "Minimal", "Small type and tight spacing.",
		Theme{Layout: LayoutCompact, Order: orderStandard, Accent: "#000000", Preview: previewShort}),
	entry("minimal-text", "Minimal Text", "Minimal", "Text only, friendly to applicant tracking systems.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#000000"}),

	// Creative
	entry("creative-portfolio", "Creative Portfolio", "Creative", "Projects lead, with a large name banner.",
		Theme{Layout: LayoutSingle, Order: []string{
			types.FieldSummary, types.FieldProjects, types.FieldExperience, types.FieldSkills,
			types.FieldEducation, types.FieldAchievements, types.FieldCertifications, types.FieldLanguages,
		}, Accent: "#ea580c"}),
	entry("creative-color-block", "Creative Color Block", "Creative", "Solid color blocks behind section titles.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#dc2626"}),
	entry("creative-magazine", "Creative Magazine", "Creative", "Magazine style two column spread.",
		Theme{Layout: LayoutTwoColumn, Order: orderStandard, Sidebar: sidebarWide, Accent: "#9333ea"}),
	entry("creative-infographic", "Creative Infographic", "Creative", "Skill chips and icon headings.",
		Theme{Layout: LayoutSidebar, Order: orderTechnical, Sidebar: sidebarSkills, Accent: "#0d9488"}),
	entry("creative-split", "Creative Split", "Creative", "Diagonal split header with a right sidebar.",
		Theme{Layout: LayoutSidebar, Order: orderStandard, Sidebar: sidebarSkills, Accent: "#e11d48"}),
	entry("creative-bubble", "Creative Bubble", "Creative", "Rounded bubbles for skills and languages.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#f59e0b"}),
	entry("creative-banner", "Creative Banner", "Creative", "Full width banner header.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#7c3aed"}),
	entry("creative-timeline", "Creative Timeline", "Creative", "Colorful timeline of roles.",
		Theme{Layout: LayoutTimeline, Order: orderStandard, Accent: "#16a34a"}),

	// Professional
	entry("professional-executive", "Professional Executive", "Professional", "Achievements first for senior roles.",
		Theme{Layout: LayoutSingle, Order: orderExecutive, Accent: "#1e293b", FontFamily: serif}),
	entry("professional-corporate", "Professional Corporate", "Professional", "Conservative corporate styling.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#1e40af"}),
	entry("professional-banking", "Professional Banking", "Professional", "Dense finance industry layout.",
		Theme{Layout: LayoutCompact, Order: orderExecutive, Accent: "#14532d", FontFamily: serif, Preview: previewShort}),
	entry("professional-consulting", "Professional Consulting", "Professional", "Impact statements ahead of history.",
		Theme{Layout: LayoutSingle, Order: orderExecutive, Accent: "#0f766e"}),
	entry("professional-legal", "Professional Legal", "Professional", "Formal serif layout for legal careers.",
		Theme{Layout: LayoutSingle, Order: orderAcademic, Accent: "#292524", FontFamily: serif}),
	entry("professional-sales", "Professional Sales", "Professional", "Achievement highlights in a sidebar.",
		Theme{Layout: LayoutSidebar, Order: orderExecutive, Sidebar: []string{
			types.FieldAchievements, types.FieldSkills, types.FieldLanguages,
		}, Accent: "#b91c1c"}),
	entry("professional-manager", "Professional Manager", "Professional", "Balanced two column layout.",
		Theme{Layout: LayoutTwoColumn, Order: orderStandard, Sidebar: sidebarSkills, Accent: "#334155"}),
	entry("professional-ats", "Professional ATS", "Professional", "Plain structure parsed reliably by applicant tracking systems.",
		Theme{Layout: LayoutSingle, Order: orderStandard, Accent: "#000000"}),

	// Technical
	entry("tech-developer", "Developer", "Technical", "Skills and projects up front.",
		Theme{Layout: LayoutSingle, Order: orderTechnical, Accent: "#2563eb"}),
	entry("tech-terminal", "Terminal", "Technical", "Terminal inspired monospace theme.",
		Theme{Layout: LayoutSingle, Order: orderTechnical, Accent: "#22c55e", FontFamily: mono}),
	entry("tech-data-science", "Data Science", "Technical", "Projects and publications emphasized.",
		Theme{Layout: LayoutTwoColumn, Order: orderTechnical, Sidebar: sidebarSkills, Accent: "#9333ea"}),
	entry("tech-devops", "DevOps", "Technical", "Certifications and tooling in a sidebar.",
		Theme{Layout: LayoutSidebar, Order: orderTechnical, Sidebar: sidebarSkills, Accent: "#0369a1"}),
	entry("tech-engineer", "Engineer", "Technical", "Straightforward engineering résumé.",
		Theme{Layout: LayoutSingle, Order: orderTechnical, Accent: "#334155"}),
	entry("tech-github", "GitHub", "Technical", "Repository card styling for projects.",
		Theme{Layout: LayoutSingle, Order: []string{
			types.FieldSummary, types.FieldProjects, types.FieldSkills, types.FieldExperience,
			types.FieldEducation, types.FieldCertifications, types.FieldAchievements, types.FieldLanguages,
		}, Accent: "#24292f"}),
	entry("tech-stack", "Tech Stack", "Technical", "Skill matrix beside experience.",
		Theme{Layout: LayoutTwoColumn, Order: orderTechnical, Sidebar: sidebarSkills, Accent: "#0f172a"}),
	entry("tech-compact", "Tech Compact", "Technical", "Dense technical layout.",
		Theme{Layout: LayoutCompact, Order: orderTechnical, Accent: "#1d4ed8", Preview: previewShort}),

	// Academic
	entry("academic-cv", "Academic CV", "Academic", "Education first curriculum vitae.",
		Theme{Layout: LayoutSingle, Order: orderAcademic, Accent: "#1f2937", FontFamily: serif}),
	entry("academic-research", "Academic Research", "Academic", "Research projects ahead of employment.",
		Theme{Layout: LayoutSingle, Order: []string{
			types.FieldSummary, types.FieldEducation, types.FieldProjects, types.FieldExperience,
			types.FieldAchievements, types.FieldCertifications, types.FieldSkills, types.FieldLanguages,
		}, Accent: "#7f1d1d", FontFamily: serif}),
	entry("academic-teacher", "Academic Teacher", "Academic", "Teaching experience with certifications.",
		Theme{Layout: LayoutSingle, Order: orderAcademic, Accent: "#065f46"}),
	entry("academic-phd", "Academic PhD", "Academic", "Dissertation focused layout.",
		Theme{Layout: LayoutTimeline, Order: orderAcademic, Accent: "#312e81", FontFamily: serif}),
	entry("academic-publication", "Academic Publication", "Academic", "Two columns with achievements as publications.",
		Theme{Layout: LayoutTwoColumn, Order: orderAcademic, Sidebar: sidebarSkills, Accent: "#3f3f46", FontFamily: serif}),
	entry("academic-student", "Academic Student", "Academic", "Coursework and projects for students.",
		Theme{Layout: LayoutSingle, Order: orderStudent, Accent: "#2563eb"}),

	// Student
	entry("student-entry", "Student Entry", "Student", "Entry level résumé with education first.",
		Theme{Layout: LayoutSingle, Order: orderStudent, Accent: "#0ea5e9"}),
	entry("student-internship", "Student Internship", "Student", "Projects and skills for internship applications.",
		Theme{Layout: LayoutSidebar, Order: orderStudent, Sidebar: sidebarSkills, Accent: "#8b5cf6"}),
	entry("student-graduate", "Student Graduate", "Student", "Graduate layout with achievements highlighted.",
		Theme{Layout: LayoutTabbed, Order: orderStudent, Accent: "#10b981"}),
}
