package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"iwannacontrib/internal/infrastructure/persistence/sqlite/model"
	"iwannacontrib/internal/ports"
)

func setupTriageRepository(t *testing.T) *TriageRepository {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "triage.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.Owner{},
		&model.Repository{},
		&model.ProgrammingLanguage{},
		&model.Issue{},
		&model.IssueRate{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewTriageRepository(db)
}

func mustCreateIssue(t *testing.T, repo *TriageRepository, owner, name string, number int, language string) uint64 {
	t.Helper()
	ctx := context.Background()

	ownerID, err := repo.GetOrCreateOwner(ctx, owner)
	if err != nil {
		t.Fatalf("get or create owner: %v", err)
	}
	repositoryID, err := repo.GetOrCreateRepository(ctx, ownerID, name)
	if err != nil {
		t.Fatalf("get or create repository: %v", err)
	}
	languageID, err := repo.GetOrCreateLanguage(ctx, language)
	if err != nil {
		t.Fatalf("get or create language: %v", err)
	}

	issueID, err := repo.CreateIssue(ctx, ports.IssueCreate{
		RepositoryID: repositoryID,
		LanguageID:   languageID,
		Number:       number,
		Name:         fmt.Sprintf("any title %d", number),
		Body:         "any body",
	})
	if err != nil {
		t.Fatalf("create issue %d: %v", number, err)
	}
	return issueID
}

func TestGetOrCreateOwnerIsIdempotent(t *testing.T) {
	repo := setupTriageRepository(t)
	ctx := context.Background()

	first, err := repo.GetOrCreateOwner(ctx, "carlosmaniero")
	if err != nil {
		t.Fatalf("GetOrCreateOwner() error = %v", err)
	}
	second, err := repo.GetOrCreateOwner(ctx, "carlosmaniero")
	if err != nil {
		t.Fatalf("GetOrCreateOwner() second call error = %v", err)
	}
	if first != second {
		t.Fatalf("GetOrCreateOwner() ids = %d, %d", first, second)
	}
}

func TestGetOrCreateRepositoryScopesByOwner(t *testing.T) {
	repo := setupTriageRepository(t)
	ctx := context.Background()

	ownerA, err := repo.GetOrCreateOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("owner a: %v", err)
	}
	ownerB, err := repo.GetOrCreateOwner(ctx, "bob")
	if err != nil {
		t.Fatalf("owner b: %v", err)
	}

	repoA, err := repo.GetOrCreateRepository(ctx, ownerA, "tools")
	if err != nil {
		t.Fatalf("repo a: %v", err)
	}
	repoA2, err := repo.GetOrCreateRepository(ctx, ownerA, "tools")
	if err != nil {
		t.Fatalf("repo a again: %v", err)
	}
	repoB, err := repo.GetOrCreateRepository(ctx, ownerB, "tools")
	if err != nil {
		t.Fatalf("repo b: %v", err)
	}

	if repoA != repoA2 {
		t.Fatalf("same natural key produced ids %d, %d", repoA, repoA2)
	}
	if repoA == repoB {
		t.Fatalf("different owners shared repository id %d", repoA)
	}
}

func TestCreateIssueRejectsDuplicateNumber(t *testing.T) {
	repo := setupTriageRepository(t)
	ctx := context.Background()

	mustCreateIssue(t, repo, "carlosmaniero", "jigjs", 19, "TypeScript")

	ownerID, err := repo.GetOrCreateOwner(ctx, "carlosmaniero")
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	repositoryID, err := repo.GetOrCreateRepository(ctx, ownerID, "jigjs")
	if err != nil {
		t.Fatalf("repository: %v", err)
	}
	languageID, err := repo.GetOrCreateLanguage(ctx, "TypeScript")
	if err != nil {
		t.Fatalf("language: %v", err)
	}

	_, err = repo.CreateIssue(ctx, ports.IssueCreate{
		RepositoryID: repositoryID,
		LanguageID:   languageID,
		Number:       19,
		Name:         "other title",
		Body:         "other body",
	})
	if !errors.Is(err, ports.ErrDuplicateIssue) {
		t.Fatalf("CreateIssue() error = %v, want ErrDuplicateIssue", err)
	}

	exists, err := repo.IssueNumberExists(ctx, repositoryID, 19)
	if err != nil {
		t.Fatalf("IssueNumberExists() error = %v", err)
	}
	if !exists {
		t.Fatal("IssueNumberExists() = false after insert")
	}

	issue, err := repo.GetIssue(ctx, "carlosmaniero", "jigjs", 19)
	if err != nil {
		t.Fatalf("GetIssue() error = %v", err)
	}
	if issue.Name != "any title 19" {
		t.Fatalf("duplicate insert overwrote issue, name = %q", issue.Name)
	}
}

func TestGetIssueNotFound(t *testing.T) {
	repo := setupTriageRepository(t)

	_, err := repo.GetIssue(context.Background(), "carlosmaniero", "jigjs", 1)
	if !errors.Is(err, ports.ErrIssueNotFound) {
		t.Fatalf("GetIssue() error = %v, want ErrIssueNotFound", err)
	}
}

func TestRatesRoundTrip(t *testing.T) {
	repo := setupTriageRepository(t)
	ctx := context.Background()

	issueID := mustCreateIssue(t, repo, "carlosmaniero", "jigjs", 19, "TypeScript")

	for _, rate := range []int{5, 1} {
		if err := repo.AppendRate(ctx, ports.RateCreate{IssueID: issueID, Rate: rate, Voter: "voter-1"}); err != nil {
			t.Fatalf("AppendRate(%d) error = %v", rate, err)
		}
	}

	rates, err := repo.ListIssueRates(ctx, issueID)
	if err != nil {
		t.Fatalf("ListIssueRates() error = %v", err)
	}
	if len(rates) != 2 || rates[0] != 5 || rates[1] != 1 {
		t.Fatalf("ListIssueRates() = %v", rates)
	}

	if err := repo.SetCurrentRate(ctx, issueID, 3); err != nil {
		t.Fatalf("SetCurrentRate() error = %v", err)
	}

	issue, err := repo.GetIssue(ctx, "carlosmaniero", "jigjs", 19)
	if err != nil {
		t.Fatalf("GetIssue() error = %v", err)
	}
	if issue.CurrentRate == nil || *issue.CurrentRate != 3 {
		t.Fatalf("GetIssue() current rate = %v", issue.CurrentRate)
	}
}

func TestSearchIssuesFilters(t *testing.T) {
	repo := setupTriageRepository(t)
	ctx := context.Background()

	pythonIssue := mustCreateIssue(t, repo, "carlosmaniero", "fixtures", 1, "Python")
	mustCreateIssue(t, repo, "carlosmaniero", "fixtures", 2, "Java")
	unratedPython := mustCreateIssue(t, repo, "carlosmaniero", "fixtures", 3, "Python")

	if err := repo.SetCurrentRate(ctx, pythonIssue, 1); err != nil {
		t.Fatalf("SetCurrentRate() error = %v", err)
	}

	rate := 1
	rated, err := repo.SearchIssues(ctx, ports.SearchFilter{Language: "Python", Rate: &rate, Limit: 20})
	if err != nil {
		t.Fatalf("SearchIssues(rated) error = %v", err)
	}
	if len(rated) != 1 || rated[0].IssueID != pythonIssue {
		t.Fatalf("SearchIssues(rated) = %+v", rated)
	}

	unrated, err := repo.SearchIssues(ctx, ports.SearchFilter{Language: "Python", OnlyUnrated: true, Limit: 20})
	if err != nil {
		t.Fatalf("SearchIssues(unrated) error = %v", err)
	}
	if len(unrated) != 1 || unrated[0].IssueID != unratedPython {
		t.Fatalf("SearchIssues(unrated) = %+v", unrated)
	}

	all, err := repo.SearchIssues(ctx, ports.SearchFilter{Language: "Python", Limit: 20})
	if err != nil {
		t.Fatalf("SearchIssues(all) error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("SearchIssues(all) len = %d", len(all))
	}
	if all[0].IssueID != unratedPython || all[1].IssueID != pythonIssue {
		t.Fatalf("SearchIssues(all) not newest-first: %+v", all)
	}
}

func TestSearchIssuesCapsResults(t *testing.T) {
	repo := setupTriageRepository(t)
	ctx := context.Background()

	var last uint64
	for n := 1; n <= 30; n++ {
		last = mustCreateIssue(t, repo, "carlosmaniero", "fixtures", n, "Python")
	}

	items, err := repo.SearchIssues(ctx, ports.SearchFilter{Limit: 20})
	if err != nil {
		t.Fatalf("SearchIssues() error = %v", err)
	}
	if len(items) != 20 {
		t.Fatalf("SearchIssues() len = %d, want 20", len(items))
	}
	if items[0].IssueID != last {
		t.Fatalf("SearchIssues() first = %d, want newest %d", items[0].IssueID, last)
	}
	if items[0].Number != 30 || items[19].Number != 11 {
		t.Fatalf("SearchIssues() window = %d..%d, want 30..11", items[0].Number, items[19].Number)
	}
}

func TestListLanguages(t *testing.T) {
	repo := setupTriageRepository(t)
	ctx := context.Background()

	for _, name := range []string{"Python", "Go", "Python"} {
		if _, err := repo.GetOrCreateLanguage(ctx, name); err != nil {
			t.Fatalf("GetOrCreateLanguage(%q) error = %v", name, err)
		}
	}

	names, err := repo.ListLanguages(ctx)
	if err != nil {
		t.Fatalf("ListLanguages() error = %v", err)
	}
	if len(names) != 2 || names[0] != "Go" || names[1] != "Python" {
		t.Fatalf("ListLanguages() = %v", names)
	}
}
