package model

// ProgrammingLanguage is a name-keyed lookup entity, created lazily when an
// issue is first categorized with it.
type ProgrammingLanguage struct {
	LanguageID uint64 `gorm:"column:language_id;primaryKey;autoIncrement"`
	Name       string `gorm:"column:name;type:text;not null;uniqueIndex"`
}

func (ProgrammingLanguage) TableName() string {
	return "programming_languages"
}
