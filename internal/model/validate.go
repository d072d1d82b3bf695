package model

import (
	"fmt"
	"strings"
	"sync"

	"jobhive/templates"

	"github.com/xeipuuv/gojsonschema"
)

type schemaSet struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

var (
	resumeSchema  schemaSet
	postingSchema schemaSet
)

func (s *schemaSet) load(path string) (*gojsonschema.Schema, error) {
	s.once.Do(func() {
		b, err := templates.FS.ReadFile(path)
		if err != nil {
			s.err = err
			return
		}
		s.schema, s.err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	})
	return s.schema, s.err
}

// ValidateResume validates a (possibly partial) resume document against
// schema/resume.schema.json. Absent keys are allowed.
func ValidateResume(doc interface{}) error {
	schema, err := resumeSchema.load("schema/resume.schema.json")
	if err != nil {
		return err
	}
	return validate(schema, doc)
}

// ValidatePosting validates an employer job posting payload.
func ValidatePosting(doc interface{}) error {
	schema, err := postingSchema.load("schema/posting.schema.json")
	if err != nil {
		return err
	}
	return validate(schema, doc)
}

func validate(schema *gojsonschema.Schema, doc interface{}) error {
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
