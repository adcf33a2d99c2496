package ports

import (
	"context"
	"errors"
)

var (
	// ErrIssueNotFound is returned when no stored issue matches the lookup key.
	ErrIssueNotFound = errors.New("stored issue not found")
	// ErrDuplicateIssue is returned when an insert hits the
	// (repository, number) uniqueness constraint.
	ErrDuplicateIssue = errors.New("issue number already exists for repository")
)

// TriageIssue is the repository's read view of an issue, flattened with its
// owner, repository and language names for display and routing.
type TriageIssue struct {
	IssueID     uint64
	Owner       string
	Repository  string
	Number      int
	Name        string
	Body        string
	Language    string
	CurrentRate *int
}

// IssueCreate carries resolved foreign keys for a unique-constrained insert.
type IssueCreate struct {
	RepositoryID uint64
	LanguageID   uint64
	Number       int
	Name         string
	Body         string
}

// RateCreate is one immutable difficulty vote. Voter is an opaque audit
// token, it plays no part in the average.
type RateCreate struct {
	IssueID uint64
	Rate    int
	Voter   string
}

// SearchFilter narrows the issue listing. Zero values mean no constraint,
// except OnlyUnrated which selects issues without a current rate. Rate and
// OnlyUnrated are mutually exclusive.
type SearchFilter struct {
	Language    string
	Rate        *int
	OnlyUnrated bool
	Limit       int
}

// TriageRepository is the persistence boundary for owners, repositories,
// languages, issues and votes. Get-or-create operations are explicit upserts
// by natural key; the store's uniqueness constraints are the race backstop.
type TriageRepository interface {
	GetOrCreateOwner(ctx context.Context, login string) (uint64, error)
	GetOrCreateRepository(ctx context.Context, ownerID uint64, name string) (uint64, error)
	GetOrCreateLanguage(ctx context.Context, name string) (uint64, error)

	IssueNumberExists(ctx context.Context, repositoryID uint64, number int) (bool, error)
	CreateIssue(ctx context.Context, input IssueCreate) (uint64, error)
	GetIssue(ctx context.Context, owner, repository string, number int) (TriageIssue, error)

	AppendRate(ctx context.Context, input RateCreate) error
	ListIssueRates(ctx context.Context, issueID uint64) ([]int, error)
	SetCurrentRate(ctx context.Context, issueID uint64, rate int) error

	SearchIssues(ctx context.Context, filter SearchFilter) ([]TriageIssue, error)
	ListLanguages(ctx context.Context) ([]string, error)
}
