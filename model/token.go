package model

import (
	"time"
)

// AuthToken is the opaque bearer token handed out on login. Exactly
// one token exists per user; repeated logins reuse it. The unique
// index on UserID backs the get-or-create upsert so concurrent logins
// for the same user cannot mint duplicates.
type AuthToken struct {
	ID      uint      `gorm:"primaryKey" json:"-"`
	Key     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`
	UserID  uint      `gorm:"uniqueIndex;not null" json:"-"`
	User    User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Created time.Time `gorm:"autoCreateTime" json:"created"`
}

// TableName keeps the table name stable across gorm pluralization.
func (AuthToken) TableName() string {
	return "auth_tokens"
}
