package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"iwannacontrib/internal/bootstrap/config"
	"iwannacontrib/internal/errs"
	"iwannacontrib/internal/ports"
)

// Client implements ports.IssueFetcher against the GitHub REST API.
type Client struct {
	api *gogithub.Client
}

// NewFetcher builds a GitHub client from config. Token auth wins when a
// token is set; otherwise GitHub App installation auth when app_id is set;
// otherwise anonymous, which is enough for public issues.
func NewFetcher(ctx context.Context, cfg config.GitHubConfig) (*Client, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	switch {
	case cfg.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		return &Client{api: gogithub.NewClient(oauth2.NewClient(ctx, ts))}, nil
	case cfg.AppID != 0:
		if cfg.InstallationID == 0 {
			return nil, errors.New("github.installation_id is required with github.app_id")
		}
		if cfg.PrivateKeyPath == "" {
			return nil, errors.New("github.private_key_path is required with github.app_id")
		}

		transport, err := ghinstallation.NewKeyFromFile(
			http.DefaultTransport,
			cfg.AppID,
			cfg.InstallationID,
			cfg.PrivateKeyPath,
		)
		if err != nil {
			return nil, errs.Wrap(err, "create installation transport")
		}
		return &Client{api: gogithub.NewClient(&http.Client{Transport: transport})}, nil
	default:
		return &Client{api: gogithub.NewClient(nil)}, nil
	}
}

// FetchIssue reads one issue plus the repository's primary language. Both
// lookups must succeed; failures bubble up unclassified, the usecase layer
// coalesces them.
func (c *Client) FetchIssue(ctx context.Context, owner, repository string, number int) (ports.RemoteIssue, error) {
	issue, _, err := c.api.Issues.Get(ctx, owner, repository, number)
	if err != nil {
		return ports.RemoteIssue{}, errs.Wrap(err, "get issue")
	}

	repo, _, err := c.api.Repositories.Get(ctx, owner, repository)
	if err != nil {
		return ports.RemoteIssue{}, errs.Wrap(err, "get repository")
	}

	return ports.RemoteIssue{
		Title:    issue.GetTitle(),
		Body:     issue.GetBody(),
		Language: repo.GetLanguage(),
	}, nil
}
