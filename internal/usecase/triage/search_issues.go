package triage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	domain "iwannacontrib/internal/domain/triage"
	"iwannacontrib/internal/errs"
	"iwannacontrib/internal/ports"
)

// SearchIssues answers the home page query. Without a language the form
// counts as unsubmitted and the default listing (latest issues, no
// constraint) comes back. With a language, the rate field narrows further:
// "" keeps only unrated issues, "all" keeps everything, "1".."5" matches the
// cached rate exactly. Results are newest-first, capped at 20.
func (s *Service) SearchIssues(ctx context.Context, input SearchInput) ([]IssueSummary, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("triage repository is required")
	}

	filter := ports.SearchFilter{Limit: searchResultLimit}

	if input.Language != "" {
		filter.Language = input.Language

		switch input.Rate {
		case "":
			filter.OnlyUnrated = true
		case "all":
		default:
			rate, err := strconv.Atoi(input.Rate)
			if err != nil || !domain.ValidRate(rate) {
				return nil, fmt.Errorf("invalid rate filter %q", input.Rate)
			}
			filter.Rate = &rate
		}
	}

	issues, err := s.repo.SearchIssues(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]IssueSummary, 0, len(issues))
	for _, issue := range issues {
		items = append(items, summaryFromPort(issue))
	}
	return items, nil
}
