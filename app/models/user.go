package models

// User is an account holder.
type User struct {
	ID        uint    `gorm:"column:ID;primaryKey;autoIncrement"     json:"ID"`
	UserName  string  `gorm:"column:UserName;size:255;not null"      json:"UserName"`
	Email     string  `gorm:"column:Email;size:255;not null;unique"  json:"Email"`
	Phone     *string `gorm:"column:Phone;size:15"                   json:"Phone"`
	FirstName *string `gorm:"column:FirstName;size:255"              json:"FirstName"`
	LastName  *string `gorm:"column:LastName;size:255"               json:"LastName"`
	Password  string  `gorm:"column:Password;size:255"               json:"-"` // bcrypt hash, never serialised
}

func (User) TableName() string { return "users" }
