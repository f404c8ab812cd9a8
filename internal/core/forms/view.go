package forms

import (
	"errors"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
)

// View is a read-only snapshot of a Machine for presentation.
type View struct {
	AccountID     int64
	IsNew         bool
	Phase         PhaseName
	Fields        *Fields // set while Editing or Saving
	ConfirmDelete bool
	Message       Message
	Processing    bool   // Saving or Deleting
	LoadError     string // set in LoadFailed
	NotFound      bool   // LoadFailed because the account does not exist
	Account       *domain.Account
	Outcome       Outcome
}

// View returns a snapshot of the current state.
func (m *Machine) View() View {
	v := View{
		AccountID: m.accountID,
		IsNew:     m.IsNew(),
		Phase:     m.phase.Name(),
	}

	switch p := m.phase.(type) {
	case LoadFailed:
		v.LoadError = p.Err.Error()
		v.NotFound = errors.Is(p.Err, apperrors.ErrNotFound)
	case Editing:
		fields := p.Fields
		v.Fields = &fields
		v.ConfirmDelete = p.ConfirmDelete
		v.Message = p.Message
	case Saving:
		fields := p.Fields
		v.Fields = &fields
		v.Processing = true
	case Deleting:
		acc := p.Account
		v.Account = &acc
		v.Processing = true
	case Done:
		acc := p.Account
		v.Account = &acc
		v.Outcome = p.Outcome
	}
	return v
}
