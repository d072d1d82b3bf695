package domain

import (
	"time"

	"github.com/google/uuid"
)

type PostingStatus string

const (
	PostingPending  PostingStatus = "pending"
	PostingApproved PostingStatus = "approved"
	PostingRejected PostingStatus = "rejected"
)

func ParsePostingStatus(s string) (PostingStatus, bool) {
	switch PostingStatus(s) {
	case PostingPending, PostingApproved, PostingRejected:
		return PostingStatus(s), true
	}
	return "", false
}

// JobPosting is an employer submission awaiting moderation. Postings are
// kept apart from the job catalog.
type JobPosting struct {
	ID           uuid.UUID     `json:"id"`
	EmployerID   string        `json:"employerId"`
	Title        string        `json:"title"`
	Type         JobType       `json:"type"`
	Location     string        `json:"location"`
	Remote       bool          `json:"remote"`
	Description  string        `json:"description"`
	Requirements string        `json:"requirements"`
	Salary       string        `json:"salary,omitempty"`
	Status       PostingStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
