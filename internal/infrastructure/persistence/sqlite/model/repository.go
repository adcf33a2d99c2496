package model

// Repository belongs to one owner; (owner, name) is unique.
type Repository struct {
	RepositoryID uint64 `gorm:"column:repository_id;primaryKey;autoIncrement"`
	OwnerID      uint64 `gorm:"column:owner_id;not null;uniqueIndex:idx_repositories_owner_name"`
	Name         string `gorm:"column:name;type:text;not null;uniqueIndex:idx_repositories_owner_name"`

	Owner Owner `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (Repository) TableName() string {
	return "repositories"
}
