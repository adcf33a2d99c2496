package triage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// IssueURL is the parsed identity of a GitHub issue. The triple is also the
// canonical external address of an issue in this application.
type IssueURL struct {
	Owner      string
	Repository string
	Number     int
}

// The repository group is greedy, so the last "/issues/<digits>" segment in
// the path marks the issue number. Close enough to github.com's namespace
// rules for real repositories.
var issuePathPattern = regexp.MustCompile(`(?i)^([^/]+)/(.+)/issues/(\d+)`)

// ParseIssueURL validates and splits a GitHub issue URL into owner,
// repository and issue number. Anything that is not
// http(s)://github.com/<owner>/<repo>/issues/<number> fails with
// *InvalidURLError carrying the original input.
func ParseIssueURL(raw string) (IssueURL, error) {
	path := strings.TrimPrefix(raw, "https://")
	path = strings.TrimPrefix(path, "http://")

	if !strings.HasPrefix(path, "github.com/") {
		return IssueURL{}, &InvalidURLError{URL: raw}
	}
	path = strings.TrimPrefix(path, "github.com/")

	match := issuePathPattern.FindStringSubmatch(path)
	if match == nil {
		return IssueURL{}, &InvalidURLError{URL: raw}
	}

	number, err := strconv.Atoi(match[3])
	if err != nil {
		return IssueURL{}, &InvalidURLError{URL: raw}
	}

	return IssueURL{
		Owner:      match[1],
		Repository: match[2],
		Number:     number,
	}, nil
}

// RepoPath returns the "owner/repository" form used by the GitHub API.
func (u IssueURL) RepoPath() string {
	return u.Owner + "/" + u.Repository
}

// String renders the canonical https URL for the issue.
func (u IssueURL) String() string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", u.Owner, u.Repository, u.Number)
}
