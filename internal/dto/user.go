package dto

import (
	"time"

	"github.com/SscSPs/user_account_service/internal/core/domain"
)

// RegisterRequest holds the text fields of the multipart registration form.
// Avatar and cover image files travel separately as domain.ImageFiles.
type RegisterRequest struct {
	FullName string `form:"fullName" json:"fullName" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Username string `form:"username" json:"username" validate:"required,max=64"`
	Password string `form:"password" json:"password" validate:"required,min=6,max=72"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to its public projection.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.LastUpdatedAt,
	}
}
