package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iwannacontrib/internal/errs"
	"iwannacontrib/internal/infrastructure/persistence/sqlite/model"
	"iwannacontrib/internal/ports"
)

type TriageRepository struct {
	db *gorm.DB
}

func NewTriageRepository(db *gorm.DB) *TriageRepository {
	return &TriageRepository{db: db}
}

func (r *TriageRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

// GetOrCreateOwner upserts an owner by login. The insert is ON CONFLICT DO
// NOTHING against the login unique index, followed by a read-back, so
// concurrent callers converge on the same row.
func (r *TriageRepository) GetOrCreateOwner(ctx context.Context, login string) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	row := model.Owner{Login: login}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return 0, errs.Wrap(err, "insert owner")
	}
	if row.OwnerID != 0 {
		return row.OwnerID, nil
	}

	if err := db.Where("login = ?", login).Take(&row).Error; err != nil {
		return 0, errs.Wrap(err, "read back owner")
	}
	return row.OwnerID, nil
}

// GetOrCreateRepository upserts a repository by its (owner, name) natural key.
func (r *TriageRepository) GetOrCreateRepository(ctx context.Context, ownerID uint64, name string) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	row := model.Repository{OwnerID: ownerID, Name: name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return 0, errs.Wrap(err, "insert repository")
	}
	if row.RepositoryID != 0 {
		return row.RepositoryID, nil
	}

	if err := db.Where("owner_id = ? AND name = ?", ownerID, name).Take(&row).Error; err != nil {
		return 0, errs.Wrap(err, "read back repository")
	}
	return row.RepositoryID, nil
}

// GetOrCreateLanguage upserts a programming language by name.
func (r *TriageRepository) GetOrCreateLanguage(ctx context.Context, name string) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	row := model.ProgrammingLanguage{Name: name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return 0, errs.Wrap(err, "insert language")
	}
	if row.LanguageID != 0 {
		return row.LanguageID, nil
	}

	if err := db.Where("name = ?", name).Take(&row).Error; err != nil {
		return 0, errs.Wrap(err, "read back language")
	}
	return row.LanguageID, nil
}

func (r *TriageRepository) IssueNumberExists(ctx context.Context, repositoryID uint64, number int) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.Issue{}).
		Where("repository_id = ? AND number = ?", repositoryID, number).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count issues by number")
	}
	return count > 0, nil
}

// CreateIssue inserts a new issue row. A (repository, number) collision maps
// to ports.ErrDuplicateIssue so callers can distinguish the race-lost case
// from storage failures.
func (r *TriageRepository) CreateIssue(ctx context.Context, input ports.IssueCreate) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	row := model.Issue{
		RepositoryID: input.RepositoryID,
		Number:       input.Number,
		Name:         input.Name,
		Body:         input.Body,
		LanguageID:   input.LanguageID,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, ports.ErrDuplicateIssue
		}
		return 0, errs.Wrap(err, "insert issue")
	}
	return row.IssueID, nil
}

func (r *TriageRepository) GetIssue(ctx context.Context, owner, repository string, number int) (ports.TriageIssue, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.TriageIssue{}, err
	}

	var row issueRow
	if err := issueQuery(db).
		Where("owners.login = ? AND repositories.name = ? AND issues.number = ?", owner, repository, number).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.TriageIssue{}, ports.ErrIssueNotFound
		}
		return ports.TriageIssue{}, errs.Wrap(err, "query issue")
	}
	return row.toPort(), nil
}

func (r *TriageRepository) AppendRate(ctx context.Context, input ports.RateCreate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.IssueRate{
		IssueID: input.IssueID,
		Rate:    input.Rate,
		Voter:   input.Voter,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert rate")
	}
	return nil
}

func (r *TriageRepository) ListIssueRates(ctx context.Context, issueID uint64) ([]int, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rates []int
	if err := db.Model(&model.IssueRate{}).
		Where("issue_id = ?", issueID).
		Order("rate_id asc").
		Pluck("rate", &rates).Error; err != nil {
		return nil, errs.Wrap(err, "query issue rates")
	}
	return rates, nil
}

func (r *TriageRepository) SetCurrentRate(ctx context.Context, issueID uint64, rate int) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Model(&model.Issue{}).
		Where("issue_id = ?", issueID).
		Update("current_rate", rate).Error; err != nil {
		return errs.Wrap(err, "update current rate")
	}
	return nil
}

// SearchIssues lists issues newest-first, optionally narrowed by language
// name and rating state.
func (r *TriageRepository) SearchIssues(ctx context.Context, filter ports.SearchFilter) ([]ports.TriageIssue, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := issueQuery(db)
	if filter.Language != "" {
		query = query.Where("programming_languages.name = ?", filter.Language)
	}
	switch {
	case filter.OnlyUnrated:
		query = query.Where("issues.current_rate IS NULL")
	case filter.Rate != nil:
		query = query.Where("issues.current_rate = ?", *filter.Rate)
	}

	query = query.Order("issues.issue_id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []issueRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query issues")
	}

	items := make([]ports.TriageIssue, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *TriageRepository) ListLanguages(ctx context.Context) ([]string, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := db.Model(&model.ProgrammingLanguage{}).
		Order("name asc").
		Pluck("name", &names).Error; err != nil {
		return nil, errs.Wrap(err, "query languages")
	}
	return names, nil
}

// issueRow is the flattened scan target shared by GetIssue and SearchIssues.
type issueRow struct {
	IssueID     uint64
	Owner       string
	Repository  string
	Number      int
	Name        string
	Body        string
	Language    string
	CurrentRate *int
}

func issueQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Issue{}).
		Select(
			"issues.issue_id as issue_id",
			"owners.login as owner",
			"repositories.name as repository",
			"issues.number as number",
			"issues.name as name",
			"issues.body as body",
			"programming_languages.name as language",
			"issues.current_rate as current_rate",
		).
		Joins("JOIN repositories ON repositories.repository_id = issues.repository_id").
		Joins("JOIN owners ON owners.owner_id = repositories.owner_id").
		Joins("JOIN programming_languages ON programming_languages.language_id = issues.main_language_id")
}

func (row issueRow) toPort() ports.TriageIssue {
	return ports.TriageIssue{
		IssueID:     row.IssueID,
		Owner:       row.Owner,
		Repository:  row.Repository,
		Number:      row.Number,
		Name:        row.Name,
		Body:        row.Body,
		Language:    row.Language,
		CurrentRate: row.CurrentRate,
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
