package domain

import (
	"time"
)

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
	JobTypeFreelance  JobType = "Freelance"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract, JobTypeFreelance}

// ParseJobType accepts the display form or the lower-case select value
// ("full-time", "internship", ...).
func ParseJobType(s string) (JobType, bool) {
	for _, t := range JobTypes {
		if equalFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// Job is a catalog listing. Catalog entries are never mutated at runtime.
type Job struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Type       JobType   `json:"type"`
	Location   string    `json:"location"`
	Schedule   string    `json:"schedule"`
	Salary     string    `json:"salary"`
	Skills     []string  `json:"skills"`
	Industry   string    `json:"industry,omitempty"`
	PostedDate time.Time `json:"postedDate,omitempty"`
	Icon       string    `json:"icon,omitempty"`
}

// Clone returns a copy that shares no slices with j.
func (j Job) Clone() Job {
	out := j
	if j.Skills != nil {
		out.Skills = append([]string(nil), j.Skills...)
	}
	return out
}
