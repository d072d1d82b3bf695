package usecase

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	"jobhive/internal/domain"
	"jobhive/templates"
)

// ResumeElementID is the id of the node that gets rasterised.
const ResumeElementID = "resume-to-print"

var layouts = map[domain.TemplateType]string{
	domain.TemplateModern:       "plain",
	domain.TemplateMinimal:      "plain",
	domain.TemplateCreative:     "sidebar",
	domain.TemplateProfessional: "banner",
	domain.TemplateAcademic:     "academic",
}

type resumeView struct {
	Template domain.TemplateType
	Layout   string
	FullName string
	Style    template.CSS
	Data     domain.ResumeData
}

var (
	tplOnce  sync.Once
	tpl      *template.Template
	tplStyle template.CSS
	tplErr   error
)

func loadTemplate() (*template.Template, template.CSS, error) {
	tplOnce.Do(func() {
		css, err := templates.FS.ReadFile("style.css")
		if err != nil {
			tplErr = err
			return
		}
		tplStyle = template.CSS(css)
		tpl, tplErr = template.ParseFS(templates.FS, "resume.html")
	})
	return tpl, tplStyle, tplErr
}

// RenderResumeHTML lays out data with the chosen template.
func RenderResumeHTML(t domain.TemplateType, data domain.ResumeData) (string, error) {
	layout, ok := layouts[t]
	if !ok {
		t, layout = domain.DefaultTemplate, layouts[domain.DefaultTemplate]
	}

	tp, css, err := loadTemplate()
	if err != nil {
		return "", err
	}

	view := resumeView{
		Template: t,
		Layout:   layout,
		FullName: strings.TrimSpace(data.FirstName + " " + data.LastName),
		Style:    css,
		Data:     data,
	}

	var buf bytes.Buffer
	if err := tp.ExecuteTemplate(&buf, "resume.html", view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
