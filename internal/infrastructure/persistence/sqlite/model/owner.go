package model

// Owner is a GitHub account or organization, keyed by its login.
type Owner struct {
	OwnerID uint64 `gorm:"column:owner_id;primaryKey;autoIncrement"`
	Login   string `gorm:"column:login;type:text;not null;uniqueIndex"`
}

func (Owner) TableName() string {
	return "owners"
}
