package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/SscSPs/user_account_service/internal/core/domain"
	portssvc "github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/dto"
	"github.com/SscSPs/user_account_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authHandler handles registration and the session endpoints.
type authHandler struct {
	userService portssvc.UserSvcFacade
	authService portssvc.AuthSvcFacade
	cookies     tokenCookies
	tracker     middleware.EventTracker
	uploadDir   string
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account. The avatar file is required, the cover image is optional.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Full name"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Conflict (username or email exists)"
// @Failure 500 {object} dto.APIResponse
// @Router /users/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid registration form")
		return
	}

	files, cleanup, err := h.saveImageFiles(c)
	defer cleanup()
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req, files)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User registered", slog.String("new_user_id", user.UserID))
	middleware.TrackEvent(c, h.tracker, user.UserID, "user_registered", nil)
	respond(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

// saveImageFiles stores the avatar and cover uploads in the temp directory.
// The returned cleanup removes whatever is still on disk.
func (h *authHandler) saveImageFiles(c *gin.Context) (domain.ImageFiles, func(), error) {
	var saved []string
	cleanup := func() {
		for _, p := range saved {
			_ = os.Remove(p)
		}
	}

	var files domain.ImageFiles
	for _, field := range []struct {
		name     string
		dest     *string
		required bool
	}{
		{"avatar", &files.AvatarPath, true},
		{"coverImage", &files.CoverImagePath, false},
	} {
		fh, err := c.FormFile(field.name)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				if field.required {
					return files, cleanup, apperrors.NewBadRequest("avatar file is required")
				}
				continue
			}
			return files, cleanup, apperrors.NewAppError(http.StatusBadRequest, "invalid multipart form", err)
		}
		path, err := h.saveUpload(c, fh)
		if err != nil {
			return files, cleanup, apperrors.NewInternal("failed to store upload", err)
		}
		saved = append(saved, path)
		*field.dest = path
	}
	return files, cleanup, nil
}

func (h *authHandler) saveUpload(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o750); err != nil {
		return "", err
	}
	dst := filepath.Join(h.uploadDir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Login godoc
// @Summary User login
// @Description Authenticates by username or email and password. Sets accessToken and refreshToken cookies.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 429 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /users/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.set(c, &res.Tokens)
	middleware.TrackEvent(c, h.tracker, res.User.UserID, "user_logged_in", nil)
	respond(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(&res.User),
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// Logout godoc
// @Summary User logout
// @Description Invalidates the stored refresh token and clears both token cookies.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respond(c, http.StatusUnauthorized, nil, "unauthorized request")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	h.cookies.clear(c)
	respond(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

// RefreshToken godoc
// @Summary Renew tokens
// @Description Exchanges the current refresh token (cookie or body) for a new access/refresh pair.
// @Tags users
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token when no cookie is sent"
// @Success 200 {object} dto.APIResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} dto.APIResponse
// @Failure 429 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /users/refresh-token [post]
func (h *authHandler) refreshToken(c *gin.Context) {
	incoming, _ := c.Cookie(middleware.RefreshTokenCookie)
	if incoming == "" {
		var body dto.RefreshTokenRequest
		// An empty or unparsable body simply means no token was supplied.
		_ = c.ShouldBind(&body)
		incoming = strings.TrimSpace(body.RefreshToken)
	}

	pair, err := h.authService.Renew(c.Request.Context(), incoming)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.set(c, pair)
	respond(c, http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// CurrentUser godoc
// @Summary Current user
// @Description Returns the authenticated user's profile.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/current [get]
func (h *authHandler) currentUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respond(c, http.StatusUnauthorized, nil, "unauthorized request")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToUserResponse(user), "Current user fetched successfully")
}
