package triage

import (
	"context"
	"errors"

	domain "iwannacontrib/internal/domain/triage"
	"iwannacontrib/internal/errs"
	"iwannacontrib/internal/ports"
)

// RateIssue appends one difficulty vote and recomputes the cached average.
//
// The score must already be range-validated at the boundary. Append,
// re-read the full vote set and write back run in a single transaction;
// there is no cross-request locking beyond that.
func (s *Service) RateIssue(ctx context.Context, owner, repository string, number, score int, voter string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil {
		return errors.New("triage service is not fully wired")
	}

	return s.uow.WithTx(ctx, func(txCtx context.Context) error {
		issue, err := s.repo.GetIssue(txCtx, owner, repository, number)
		if errors.Is(err, ports.ErrIssueNotFound) {
			return &domain.IssueNotFoundError{
				URL: domain.IssueURL{Owner: owner, Repository: repository, Number: number}.String(),
			}
		}
		if err != nil {
			return err
		}

		if err := s.repo.AppendRate(txCtx, ports.RateCreate{
			IssueID: issue.IssueID,
			Rate:    score,
			Voter:   voter,
		}); err != nil {
			return err
		}

		rates, err := s.repo.ListIssueRates(txCtx, issue.IssueID)
		if err != nil {
			return err
		}

		return s.repo.SetCurrentRate(txCtx, issue.IssueID, domain.AverageRate(rates))
	})
}
