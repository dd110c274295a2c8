package mapping

import (
	"database/sql"

	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/SscSPs/user_account_service/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:           d.UserID,
		Username:         d.Username,
		Email:            d.Email,
		FullName:         d.FullName,
		PasswordHash:     d.PasswordHash,
		Avatar:           d.Avatar,
		CoverImage:       toNullString(d.CoverImage),
		AuditFields:      ToModelAuditFields(d.AuditFields),
		RefreshTokenHash: toNullString(d.RefreshTokenHash),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:           m.UserID,
		Username:         m.Username,
		Email:            m.Email,
		FullName:         m.FullName,
		PasswordHash:     m.PasswordHash,
		Avatar:           m.Avatar,
		CoverImage:       m.CoverImage.String,
		RefreshTokenHash: m.RefreshTokenHash.String,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
