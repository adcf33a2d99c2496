package triage

import (
	"context"
	"errors"

	domain "iwannacontrib/internal/domain/triage"
	"iwannacontrib/internal/errs"
	"iwannacontrib/internal/ports"
)

// GetIssue loads the detail view behind /issues/{owner}/{repository}/{number}.
func (s *Service) GetIssue(ctx context.Context, owner, repository string, number int) (IssueDetail, error) {
	if ctx == nil {
		return IssueDetail{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return IssueDetail{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return IssueDetail{}, errors.New("triage repository is required")
	}

	issue, err := s.repo.GetIssue(ctx, owner, repository, number)
	if errors.Is(err, ports.ErrIssueNotFound) {
		return IssueDetail{}, &domain.IssueNotFoundError{
			URL: domain.IssueURL{Owner: owner, Repository: repository, Number: number}.String(),
		}
	}
	if err != nil {
		return IssueDetail{}, err
	}

	rates, err := s.repo.ListIssueRates(ctx, issue.IssueID)
	if err != nil {
		return IssueDetail{}, err
	}

	return IssueDetail{
		Owner:      issue.Owner,
		Repository: issue.Repository,
		Number:     issue.Number,
		Name:       issue.Name,
		Body:       issue.Body,
		Language:   issue.Language,
		RateLabel:  domain.RateLabel(issue.CurrentRate),
		VoteCount:  len(rates),
	}, nil
}

// ListLanguages feeds the search form's language select.
func (s *Service) ListLanguages(ctx context.Context) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("triage repository is required")
	}

	return s.repo.ListLanguages(ctx)
}
