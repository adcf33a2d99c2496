package triage

import "fmt"

// InvalidURLError rejects input that is not a GitHub issue URL. It keeps the
// offending string so forms can echo it back to the user.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("not a github issue url: %q", e.URL)
}

// IssueNotFoundError covers every upstream lookup failure for a well-formed
// URL: missing repository, missing issue, network or auth trouble. Callers
// never get to distinguish them.
type IssueNotFoundError struct {
	URL string
}

func (e *IssueNotFoundError) Error() string {
	return fmt.Sprintf("github issue not found: %q", e.URL)
}

// IssueAlreadyExistsError signals a duplicate creation attempt. The existing
// issue is left untouched.
type IssueAlreadyExistsError struct {
	URL string
}

func (e *IssueAlreadyExistsError) Error() string {
	return fmt.Sprintf("issue already exists: %q", e.URL)
}
