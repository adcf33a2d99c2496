package model

import "time"

// IssueRate is one immutable difficulty vote. Rows are only ever appended;
// the voter token exists for audit, not aggregation.
type IssueRate struct {
	RateID    uint64    `gorm:"column:rate_id;primaryKey;autoIncrement"`
	IssueID   uint64    `gorm:"column:issue_id;not null;index"`
	Rate      int       `gorm:"column:rate;not null"`
	Voter     string    `gorm:"column:voter;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`

	Issue Issue `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
}

func (IssueRate) TableName() string {
	return "issue_rates"
}
