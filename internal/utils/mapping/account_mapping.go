package mapping

import (
	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:          d.ID,
		Description: d.Description,
		AccountDate: d.Date,
		Amount:      d.Amount,
		Paid:        d.Paid,
		AccountType: string(d.Type),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:          m.ID,
		Description: m.Description,
		Date:        m.AccountDate.UTC(),
		Amount:      m.Amount,
		Paid:        m.Paid,
		Type:        domain.AccountType(m.AccountType),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
