package models

// Role is a named permission group.
type Role struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;size:255;not null"      json:"name"`
}

func (Role) TableName() string { return "roles" }
