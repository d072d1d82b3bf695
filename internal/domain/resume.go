package domain

type Education struct {
	Institution     string `json:"institution"`
	Degree          string `json:"degree"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	RelevantCourses string `json:"relevantCourses,omitempty"`
	Achievements    string `json:"achievements,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level,omitempty"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type ResumeData struct {
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	LinkedIn       string          `json:"linkedIn"`
	Summary        string          `json:"summary"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
}

// EmptyResumeData is the builder's starting point: one blank entry per
// repeatable section except certifications.
func EmptyResumeData() ResumeData {
	return ResumeData{
		Education:      []Education{{}},
		Experience:     []Experience{{}},
		Skills:         []Skill{{}},
		Certifications: []Certification{},
	}
}

type TemplateType string

const (
	TemplateModern       TemplateType = "modern"
	TemplateMinimal      TemplateType = "minimal"
	TemplateCreative     TemplateType = "creative"
	TemplateProfessional TemplateType = "professional"
	TemplateAcademic     TemplateType = "academic"

	DefaultTemplate = TemplateModern
)

type TemplatePreview struct {
	ID   TemplateType `json:"id"`
	Name string       `json:"name"`
}

var Templates = []TemplatePreview{
	{ID: TemplateModern, Name: "Modern"},
	{ID: TemplateMinimal, Name: "Minimal"},
	{ID: TemplateCreative, Name: "Creative"},
	{ID: TemplateProfessional, Name: "Professional"},
	{ID: TemplateAcademic, Name: "Academic"},
}

func ParseTemplate(s string) (TemplateType, bool) {
	for _, t := range Templates {
		if string(t.ID) == s {
			return t.ID, true
		}
	}
	return "", false
}
