package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Username identifies the authenticated user
	Username string `json:"username"`

	// Role is the authenticated user's authorization role
	Role domain.Role `json:"role"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// UserResponse is the public projection of a user account.
type UserResponse struct {
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateQuestionRequest defines the payload for authoring a question.
type CreateQuestionRequest struct {
	Statement string   `json:"statement" validate:"required"`
	Options   []string `json:"options"   validate:"required,len=4,dive,required"`
	Correct   string   `json:"correct"   validate:"required"`
	Feedback  string   `json:"feedback"`
	Category  string   `json:"category"`
	Topic     string   `json:"topic"`
}

// QuestionResponse is the full projection of a question, including the
// correct option and feedback. Returned to owners and admins.
type QuestionResponse struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Statement string    `json:"statement"`
	Options   []string  `json:"options"`
	Correct   string    `json:"correct"`
	Feedback  string    `json:"feedback,omitempty"`
	Category  string    `json:"category,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StudyQuestionResponse is the projection presented during study: the
// correct option and feedback are withheld until the answer is recorded.
type StudyQuestionResponse struct {
	ID        uuid.UUID `json:"id"`
	Statement string    `json:"statement"`
	Options   []string  `json:"options"`
	Category  string    `json:"category,omitempty"`
	Topic     string    `json:"topic,omitempty"`
}

// AnswerRequest defines the payload for recording a study answer.
type AnswerRequest struct {
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// AnswerResponse reports the review state after an answer is recorded.
type AnswerResponse struct {
	QuestionID uuid.UUID `json:"question_id"`
	Correct    string    `json:"correct"`
	Feedback   string    `json:"feedback,omitempty"`
	Interval   int       `json:"interval_days"`
	DueDate    string    `json:"due_date"`
}

// NewQuestionResponse builds the full projection of a question.
func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:        q.ID,
		Owner:     q.Owner,
		Statement: q.Statement,
		Options:   q.Options,
		Correct:   q.Correct,
		Feedback:  q.Feedback,
		Category:  string(q.Category),
		Topic:     q.Topic,
		CreatedAt: q.CreatedAt,
	}
}

// NewStudyQuestionResponse builds the answer-hiding study projection.
func NewStudyQuestionResponse(q *domain.Question) StudyQuestionResponse {
	return StudyQuestionResponse{
		ID:        q.ID,
		Statement: q.Statement,
		Options:   q.Options,
		Category:  string(q.Category),
		Topic:     q.Topic,
	}
}

// NewUserResponse builds the public projection of a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
