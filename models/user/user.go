package user

import (
	"time"
)

// User is a local account record. The main-system fields hold the linkage
// to the matching Banadir Main account once the user has been linked via
// the remote /auth endpoint.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:varchar(255);not null;unique" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	MainUserID            *string    `gorm:"column:main_user_id;type:varchar(255)" json:"mainUserId"`
	MainSystemToken       *string    `gorm:"column:main_system_token;type:text" json:"-"`
	MainSystemTokenExpiry *time.Time `gorm:"column:main_system_token_expiry" json:"mainSystemTokenExpiry"`
	IsMainSystemLinked    bool       `gorm:"column:is_main_system_linked;default:false" json:"isMainSystemLinked"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// HasValidMainToken reports whether the stored main-system token exists and
// has not expired.
func (u *User) HasValidMainToken() bool {
	if u.MainSystemToken == nil || *u.MainSystemToken == "" {
		return false
	}
	if u.MainSystemTokenExpiry == nil {
		return false
	}
	return u.MainSystemTokenExpiry.After(time.Now())
}
