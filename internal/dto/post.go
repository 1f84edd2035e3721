package dto

type CreatePostRequest struct {
	Tone           *string `json:"tone"`
	Topic          string  `json:"topic"`
	Content        *string `json:"content"`
	UserId         string  `json:"user_id"`
	TargetAudience *string `json:"target_audience"`
	TargetReaction *string `json:"target_reaction"`
}

// UpdatePostRequest carries a partial update. Nil fields are left untouched
// on the stored row.
type UpdatePostRequest struct {
	Id             string  `json:"id"`
	Tone           *string `json:"tone"`
	Topic          *string `json:"topic"`
	Content        *string `json:"content"`
	TargetAudience *string `json:"target_audience"`
	TargetReaction *string `json:"target_reaction"`
}

type GeneratePostRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type GeneratePostResponse struct {
	GeneratedText string `json:"generatedText"`
}
