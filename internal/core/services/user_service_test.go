package services_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/SscSPs/user_account_service/internal/core/domain"
	portssvc "github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/core/services"
	"github.com/SscSPs/user_account_service/internal/dto"
	"github.com/SscSPs/user_account_service/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *fakeUserRepo
	uploader *MockImageUploader
	service  portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = newFakeUserRepo()
	s.uploader = new(MockImageUploader)
	s.service = services.NewUserService(s.repo, s.uploader)
}

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		FullName: "Alice Liddell",
		Email:    "Alice@Example.com",
		Username: "  Alice ",
		Password: "wonderland",
	}
}

var avatarOnly = domain.ImageFiles{AvatarPath: "/tmp/avatar.png"}

func (s *UserServiceTestSuite) TestRegister_Success() {
	files := domain.ImageFiles{AvatarPath: "/tmp/avatar.png", CoverImagePath: "/tmp/cover.png"}
	s.uploader.On("Upload", s.ctx, "/tmp/avatar.png").Return("https://cdn.test/avatar.png", nil).Once()
	s.uploader.On("Upload", s.ctx, "/tmp/cover.png").Return("https://cdn.test/cover.png", nil).Once()

	user, err := s.service.Register(s.ctx, validRegisterRequest(), files)
	s.Require().NoError(err)

	s.Equal("alice", user.Username, "username is stored lower-cased")
	s.Equal("alice@example.com", user.Email)
	s.Equal("https://cdn.test/avatar.png", user.Avatar)
	s.Equal("https://cdn.test/cover.png", user.CoverImage)
	s.Empty(user.PasswordHash)
	s.Empty(user.RefreshTokenHash)

	stored, err := s.repo.FindUserByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.True(utils.CheckPasswordHash("wonderland", stored.PasswordHash))
	s.uploader.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegister_WithoutCoverImage() {
	s.uploader.On("Upload", s.ctx, "/tmp/avatar.png").Return("https://cdn.test/avatar.png", nil).Once()
	s.uploader.On("Upload", s.ctx, "").Return("", nil).Once()

	user, err := s.service.Register(s.ctx, validRegisterRequest(), avatarOnly)
	s.Require().NoError(err)
	s.Empty(user.CoverImage)
}

func (s *UserServiceTestSuite) TestRegister_CoverUploadFailureIsTolerated() {
	files := domain.ImageFiles{AvatarPath: "/tmp/avatar.png", CoverImagePath: "/tmp/cover.png"}
	s.uploader.On("Upload", s.ctx, "/tmp/avatar.png").Return("https://cdn.test/avatar.png", nil).Once()
	s.uploader.On("Upload", s.ctx, "/tmp/cover.png").Return("", errors.New("bucket full")).Once()

	user, err := s.service.Register(s.ctx, validRegisterRequest(), files)
	s.Require().NoError(err)
	s.Empty(user.CoverImage)
}

func (s *UserServiceTestSuite) TestRegister_MissingAvatar() {
	_, err := s.service.Register(s.ctx, validRegisterRequest(), domain.ImageFiles{CoverImagePath: "/tmp/cover.png"})
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	s.uploader.AssertNotCalled(s.T(), "Upload", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_AvatarUploadFails() {
	s.uploader.On("Upload", s.ctx, "/tmp/avatar.png").Return("", errors.New("timeout")).Once()

	_, err := s.service.Register(s.ctx, validRegisterRequest(), avatarOnly)
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
}

func (s *UserServiceTestSuite) TestRegister_MissingFields() {
	req := validRegisterRequest()
	req.FullName = "   "

	_, err := s.service.Register(s.ctx, req, avatarOnly)
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	s.Contains(err.Error(), "all fields are required")
}

func (s *UserServiceTestSuite) TestRegister_InvalidEmail() {
	req := validRegisterRequest()
	req.Email = "not-an-email"

	_, err := s.service.Register(s.ctx, req, avatarOnly)
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
}

func (s *UserServiceTestSuite) TestRegister_MultibytePasswordOverBcryptLimit() {
	req := validRegisterRequest()
	req.Password = strings.Repeat("é", 40) // 40 runes, 80 bytes

	_, err := s.service.Register(s.ctx, req, avatarOnly)
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	s.uploader.AssertNotCalled(s.T(), "Upload", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_Duplicates() {
	s.uploader.On("Upload", mock.Anything, "/tmp/avatar.png").Return("https://cdn.test/avatar.png", nil)
	s.uploader.On("Upload", mock.Anything, "").Return("", nil)
	_, err := s.service.Register(s.ctx, validRegisterRequest(), avatarOnly)
	s.Require().NoError(err)

	sameUsername := validRegisterRequest()
	sameUsername.Email = "other@example.com"
	sameUsername.Username = "ALICE"
	_, err = s.service.Register(s.ctx, sameUsername, avatarOnly)
	s.Require().Error(err)
	s.Equal(http.StatusConflict, apperrors.StatusCode(err))

	sameEmailDifferentCase := validRegisterRequest()
	sameEmailDifferentCase.Username = "someone-else"
	sameEmailDifferentCase.Email = "ALICE@EXAMPLE.COM"
	_, err = s.service.Register(s.ctx, sameEmailDifferentCase, avatarOnly)
	s.Require().Error(err)
	s.Equal(http.StatusConflict, apperrors.StatusCode(err))
}

func (s *UserServiceTestSuite) TestGetUserByID() {
	s.uploader.On("Upload", mock.Anything, "/tmp/avatar.png").Return("https://cdn.test/avatar.png", nil)
	s.uploader.On("Upload", mock.Anything, "").Return("", nil)
	created, err := s.service.Register(s.ctx, validRegisterRequest(), avatarOnly)
	s.Require().NoError(err)

	got, err := s.service.GetUserByID(s.ctx, created.UserID)
	s.Require().NoError(err)
	s.Equal(created.UserID, got.UserID)
	s.Empty(got.PasswordHash)

	_, err = s.service.GetUserByID(s.ctx, "missing")
	s.Equal(http.StatusNotFound, apperrors.StatusCode(err))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func TestRegister_InsertRaceMapsToConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	uploader := new(MockImageUploader)
	repo.On("FindUserByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(nil, apperrors.ErrNotFound)
	repo.On("CreateUser", ctx, mock.AnythingOfType("domain.NewUserParams")).Return(nil, apperrors.ErrDuplicate)
	uploader.On("Upload", ctx, "/tmp/avatar.png").Return("https://cdn.test/avatar.png", nil)
	uploader.On("Upload", ctx, "").Return("", nil)

	_, err := services.NewUserService(repo, uploader).Register(ctx, validRegisterRequest(), avatarOnly)
	if err == nil || apperrors.StatusCode(err) != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	repo.AssertExpectations(t)
}
