package github

import "time"

// RepoDescriptor is one repository as returned by the listing endpoint. It
// only lives for the duration of a sync run.
type RepoDescriptor struct {
	ID          int64
	Name        string
	FullName    string
	Description *string
	HTMLURL     string
	Homepage    *string
	Language    *string
	Stars       int
	UpdatedAt   time.Time
	Fork        bool
}
