package triage

import (
	"errors"
	"testing"
)

func TestParseIssueURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want IssueURL
	}{
		{
			name: "https url",
			raw:  "https://github.com/carlosmaniero/jigjs/issues/19",
			want: IssueURL{Owner: "carlosmaniero", Repository: "jigjs", Number: 19},
		},
		{
			name: "http url",
			raw:  "http://github.com/carlosmaniero/jigjs/issues/19",
			want: IssueURL{Owner: "carlosmaniero", Repository: "jigjs", Number: 19},
		},
		{
			name: "no scheme",
			raw:  "github.com/carlosmaniero/jigjs/issues/7",
			want: IssueURL{Owner: "carlosmaniero", Repository: "jigjs", Number: 7},
		},
		{
			name: "dotted repository name",
			raw:  "https://github.com/golang/go.dev/issues/1204",
			want: IssueURL{Owner: "golang", Repository: "go.dev", Number: 1204},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIssueURL(tt.raw)
			if err != nil {
				t.Fatalf("ParseIssueURL(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("ParseIssueURL(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseIssueURLRejectsNonIssueURLs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "other host", raw: "http://bitbucket.com/carlosmaniero/issue/1"},
		{name: "bare host", raw: "https://github.com/"},
		{name: "missing repository", raw: "https://github.com/carlosmaniero/jigjs/"},
		{name: "missing issue number", raw: "https://github.com/carlosmaniero/jigjs/issues/"},
		{name: "non numeric issue number", raw: "https://github.com/carlosmaniero/jigjs/issues/la"},
		{name: "empty input", raw: ""},
		{name: "not a url at all", raw: "lala"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIssueURL(tt.raw)
			if err == nil {
				t.Fatalf("ParseIssueURL(%q) expected error", tt.raw)
			}

			var invalid *InvalidURLError
			if !errors.As(err, &invalid) {
				t.Fatalf("ParseIssueURL(%q) error = %T, want *InvalidURLError", tt.raw, err)
			}
			if invalid.URL != tt.raw {
				t.Fatalf("InvalidURLError.URL = %q, want %q", invalid.URL, tt.raw)
			}
		})
	}
}

func TestIssueURLRepoPath(t *testing.T) {
	u := IssueURL{Owner: "carlosmaniero", Repository: "jigjs", Number: 19}
	if got := u.RepoPath(); got != "carlosmaniero/jigjs" {
		t.Fatalf("RepoPath() = %q", got)
	}
	if got := u.String(); got != "https://github.com/carlosmaniero/jigjs/issues/19" {
		t.Fatalf("String() = %q", got)
	}
}
