package model

// DefaultAdminID is the reserved row id of the seeded administrator.
const DefaultAdminID uint = 1

// User is a login credential. PasswordHash holds the hex SHA-256 digest.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;size:64;not null"` // Never expose in JSON
}

func (u *User) TableName() string {
	return "users"
}
