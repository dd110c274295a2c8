package mapping

import (
	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/SscSPs/user_account_service/internal/models"
)

// ToModelAuditFields converts domain audit fields to model audit fields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainAuditFields converts model audit fields to domain audit fields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
