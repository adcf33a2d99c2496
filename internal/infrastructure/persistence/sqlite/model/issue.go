package model

import "time"

// Issue is one tracked GitHub issue. The number is unique within its
// repository; the unique index is the backstop for racing create requests.
// CurrentRate caches the rounded average of all votes, nil until the first
// vote lands.
type Issue struct {
	IssueID      uint64    `gorm:"column:issue_id;primaryKey;autoIncrement"`
	RepositoryID uint64    `gorm:"column:repository_id;not null;uniqueIndex:idx_issues_repository_number"`
	Number       int       `gorm:"column:number;not null;uniqueIndex:idx_issues_repository_number"`
	Name         string    `gorm:"column:name;type:text;not null"`
	Body         string    `gorm:"column:body;type:text;not null"`
	LanguageID   uint64    `gorm:"column:main_language_id;not null"`
	CurrentRate  *int      `gorm:"column:current_rate"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`

	Repository Repository          `gorm:"foreignKey:RepositoryID;constraint:OnDelete:CASCADE"`
	Language   ProgrammingLanguage `gorm:"foreignKey:LanguageID;constraint:OnDelete:CASCADE"`
}

func (Issue) TableName() string {
	return "issues"
}
