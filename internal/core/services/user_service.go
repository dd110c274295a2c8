package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/SscSPs/user_account_service/internal/core/domain"
	portsrepo "github.com/SscSPs/user_account_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/dto"
	"github.com/SscSPs/user_account_service/internal/utils"
	"github.com/go-playground/validator/v10"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	uploader portssvc.ImageUploader
	validate *validator.Validate
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, uploader portssvc.ImageUploader) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register validates the form, rejects duplicates, uploads the images and creates the user.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest, files domain.ImageFiles) (*domain.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	if req.FullName == "" || req.Email == "" || req.Username == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apperrors.NewBadRequest("all fields are required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewBadRequest(validationMessage(err))
	}
	if files.AvatarPath == "" {
		return nil, apperrors.NewBadRequest("avatar file is required")
	}

	_, err := s.userRepo.FindUserByUsernameOrEmail(ctx, req.Username, req.Email)
	switch {
	case err == nil:
		return nil, apperrors.NewConflict("user already exists")
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, apperrors.NewInternal("failed to check for existing user", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, apperrors.NewBadRequest("password must be at most 72 bytes")
		}
		return nil, apperrors.NewInternal("failed to hash password", err)
	}

	avatarURL, err := s.uploader.Upload(ctx, files.AvatarPath)
	if err != nil || avatarURL == "" {
		if err != nil {
			s.LogError(ctx, err, "Avatar upload failed")
		}
		return nil, apperrors.NewAppError(http.StatusBadRequest, "avatar file is required", err)
	}

	coverURL, err := s.uploader.Upload(ctx, files.CoverImagePath)
	if err != nil {
		s.LogError(ctx, err, "Cover image upload failed, continuing without it")
		coverURL = ""
	}

	created, err := s.userRepo.CreateUser(ctx, domain.NewUserParams{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.LogWarn(ctx, "User not created, uploaded images are orphaned",
			slog.String("avatar", avatarURL), slog.String("cover_image", coverURL))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflict("user already exists")
		}
		return nil, apperrors.NewInternal("something went wrong while registering the user", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, created.UserID)
	if err != nil {
		return nil, apperrors.NewInternal("something went wrong while registering the user", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	clean := user.Sanitized()
	return &clean, nil
}

// GetUserByID returns the user without credential material.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("user not found")
		}
		return nil, apperrors.NewInternal("failed to get user", err)
	}
	clean := user.Sanitized()
	return &clean, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid registration data"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return "email is not valid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", strings.ToLower(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
	}
}
