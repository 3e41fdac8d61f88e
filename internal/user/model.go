// File: internal/user/model.go
package user

import (
	"converse_backend/internal/common" // For BaseModel
)

// LoginType identifies which identity-provider flow validated an account.
// It is immutable once a row is created.
type LoginType string

const (
	LoginTypeEmail  LoginType = "EMAIL"
	LoginTypeGitHub LoginType = "GITHUB"
)

// User represents the user model in the database.
//
// Usernames are unique per login type, not globally: the same username may
// exist once as an EMAIL account and once as a GITHUB account. Emails are
// unique across all rows.
type User struct {
	common.BaseModel           // Embeds ID, CreatedAt, UpdatedAt
	ExternalID       string    `gorm:"type:varchar(255);not null"` // Principal id issued by the identity provider
	LoginType        LoginType `gorm:"type:varchar(50);not null;index:users_username_login_type_key,unique"`
	Username         string    `gorm:"type:varchar(255);not null;index:users_username_login_type_key,unique"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex:users_email_key"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
