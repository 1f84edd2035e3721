package models

import "time"

// Session backs an issued JWT. Logout deletes the row, which invalidates
// the token even though the signature is still good.
type Session struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	UserId    string    `json:"user_id" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (s Session) TableName() string {
	return "sessions"
}

// LoginCode is a one-time code for the magic-link flow.
type LoginCode struct {
	Code      string    `json:"code" gorm:"primaryKey"`
	UserId    string    `json:"user_id" gorm:"not null;index"`
	Used      bool      `json:"used" gorm:"default:false"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (l LoginCode) TableName() string {
	return "login_codes"
}
