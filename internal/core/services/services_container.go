package services

import (
	portsrepo "github.com/SscSPs/user_account_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, uploader portssvc.ImageUploader) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User: NewUserService(repos.UserRepo, uploader),
		Auth: NewAuthService(cfg, repos.UserRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade = (*authService)(nil)
	_ portssvc.UserSvcFacade = (*userService)(nil)
)
