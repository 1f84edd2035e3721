package models

import "time"

// Post is one generated or hand-edited piece of content owned by a user.
// Optional fields are pointers so a missing value is stored as NULL rather
// than an empty string.
type Post struct {
	Id             string    `json:"id" gorm:"primaryKey"`
	UserId         string    `json:"user_id" gorm:"not null;index"`
	Tone           *string   `json:"tone"`
	TargetReaction *string   `json:"target_reaction"`
	Topic          string    `json:"topic" gorm:"not null"`
	TargetAudience *string   `json:"target_audience"`
	Content        *string   `json:"content"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (p Post) TableName() string {
	return "posts"
}
