package ports

import "context"

// RemoteIssue is the slice of GitHub issue metadata this application keeps.
// Language is the repository's primary language, empty when GitHub reports
// none.
type RemoteIssue struct {
	Title    string
	Body     string
	Language string
}

// IssueFetcher looks an issue up on the upstream forge. Implementations are
// black boxes: any failure (missing repo, missing issue, network, auth) is
// just an error, callers coalesce them all into a single not-found condition.
type IssueFetcher interface {
	FetchIssue(ctx context.Context, owner, repository string, number int) (RemoteIssue, error)
}
