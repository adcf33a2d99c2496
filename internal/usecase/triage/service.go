package triage

import (
	domain "iwannacontrib/internal/domain/triage"
	"iwannacontrib/internal/ports"
)

// DefaultLanguageName is assigned when GitHub reports no primary language.
const DefaultLanguageName = "Other"

// searchResultLimit caps every listing at the 20 most recent matches. There
// is no further pagination.
const searchResultLimit = 20

type Service struct {
	repo    ports.TriageRepository
	uow     ports.UnitOfWork
	fetcher ports.IssueFetcher
}

// NewService wires the triage usecases with persistence and the GitHub
// lookup collaborator.
func NewService(repo ports.TriageRepository, uow ports.UnitOfWork, fetcher ports.IssueFetcher) *Service {
	return &Service{
		repo:    repo,
		uow:     uow,
		fetcher: fetcher,
	}
}

// IssueSummary is one row of a search result listing.
type IssueSummary struct {
	Owner      string
	Repository string
	Number     int
	Name       string
	Language   string
	RateLabel  string
}

// IssueDetail backs the single-issue page.
type IssueDetail struct {
	Owner      string
	Repository string
	Number     int
	Name       string
	Body       string
	Language   string
	RateLabel  string
	VoteCount  int
}

// SearchInput mirrors the search form. An empty Language means the form was
// not submitted. Rate is "" (only unrated), "all" (any) or "1".."5".
type SearchInput struct {
	Language string
	Rate     string
}

func summaryFromPort(issue ports.TriageIssue) IssueSummary {
	return IssueSummary{
		Owner:      issue.Owner,
		Repository: issue.Repository,
		Number:     issue.Number,
		Name:       issue.Name,
		Language:   issue.Language,
		RateLabel:  domain.RateLabel(issue.CurrentRate),
	}
}
