package triage

import (
	"context"
	"errors"

	domain "iwannacontrib/internal/domain/triage"
	"iwannacontrib/internal/errs"
	"iwannacontrib/internal/ports"
)

// CreateIssue turns a submitted GitHub issue URL into a stored issue.
//
// The flow is parse, fetch, then one transaction for the upserts and the
// insert: a failed GitHub lookup writes nothing, and every upstream failure
// is coalesced into *domain.IssueNotFoundError regardless of its cause.
func (s *Service) CreateIssue(ctx context.Context, rawURL string) (IssueDetail, error) {
	if ctx == nil {
		return IssueDetail{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return IssueDetail{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil || s.fetcher == nil {
		return IssueDetail{}, errors.New("triage service is not fully wired")
	}

	parsed, err := domain.ParseIssueURL(rawURL)
	if err != nil {
		return IssueDetail{}, err
	}

	remote, err := s.fetcher.FetchIssue(ctx, parsed.Owner, parsed.Repository, parsed.Number)
	if err != nil {
		return IssueDetail{}, &domain.IssueNotFoundError{URL: rawURL}
	}

	language := remote.Language
	if language == "" {
		language = DefaultLanguageName
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		ownerID, err := s.repo.GetOrCreateOwner(txCtx, parsed.Owner)
		if err != nil {
			return err
		}

		repositoryID, err := s.repo.GetOrCreateRepository(txCtx, ownerID, parsed.Repository)
		if err != nil {
			return err
		}

		languageID, err := s.repo.GetOrCreateLanguage(txCtx, language)
		if err != nil {
			return err
		}

		exists, err := s.repo.IssueNumberExists(txCtx, repositoryID, parsed.Number)
		if err != nil {
			return err
		}
		if exists {
			return &domain.IssueAlreadyExistsError{URL: rawURL}
		}

		_, err = s.repo.CreateIssue(txCtx, ports.IssueCreate{
			RepositoryID: repositoryID,
			LanguageID:   languageID,
			Number:       parsed.Number,
			Name:         remote.Title,
			Body:         remote.Body,
		})
		if errors.Is(err, ports.ErrDuplicateIssue) {
			// Lost the check-then-create race; the unique index caught it.
			return &domain.IssueAlreadyExistsError{URL: rawURL}
		}
		return err
	}); err != nil {
		return IssueDetail{}, err
	}

	return IssueDetail{
		Owner:      parsed.Owner,
		Repository: parsed.Repository,
		Number:     parsed.Number,
		Name:       remote.Title,
		Body:       remote.Body,
		Language:   language,
		RateLabel:  domain.NotRatedLabel,
	}, nil
}
