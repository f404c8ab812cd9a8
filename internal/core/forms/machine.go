package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	"github.com/SscSPs/bills_app/internal/utils"
)

// Repository is the subset of the account repository a form needs.
type Repository interface {
	FindOne(ctx context.Context, id int64) (*domain.Account, error)
	portsrepo.AccountWriter
}

// Machine drives the editing of one account.
type Machine struct {
	repo      Repository
	accountID int64
	account   domain.Account // record the fields are applied on
	phase     Phase
	userID    string
	now       func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithUser stamps saved records with the given user id.
func WithUser(userID string) Option {
	return func(m *Machine) {
		m.userID = userID
	}
}

// WithClock overrides the clock used for audit fields.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// New creates a machine for accountID without touching the repository.
// An id <= 0 starts a blank form for a new account; otherwise the machine
// stays in Loading until Load is called.
func New(repo Repository, accountID int64, options ...Option) *Machine {
	m := &Machine{
		repo:      repo,
		accountID: accountID,
		now:       time.Now,
	}
	for _, option := range options {
		option(m)
	}

	if accountID > 0 {
		m.phase = Loading{}
	} else {
		m.accountID = 0
		m.phase = Editing{Fields: blankFields()}
	}
	return m
}

// Open creates a machine and loads the account when accountID > 0.
// The machine is returned even when loading fails so the caller can retry.
func Open(ctx context.Context, repo Repository, accountID int64, options ...Option) (*Machine, error) {
	m := New(repo, accountID, options...)
	if accountID <= 0 {
		return m, nil
	}
	return m, m.Load(ctx)
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// AccountID returns the id of the edited account, 0 for a new one.
func (m *Machine) AccountID() int64 {
	return m.accountID
}

// IsNew reports whether the form edits an account that was never persisted.
func (m *Machine) IsNew() bool {
	return m.accountID == 0
}

// Load fetches the account and populates the fields. It doubles as retry after LoadFailed.
func (m *Machine) Load(ctx context.Context) error {
	switch m.phase.(type) {
	case Saving, Deleting, Done:
		return fmt.Errorf("%w: cannot load while %s", apperrors.ErrInvalidState, m.phase.Name())
	}

	if m.accountID <= 0 {
		m.account = domain.Account{}
		m.phase = Editing{Fields: blankFields()}
		return nil
	}

	m.phase = Loading{}
	acc, err := m.repo.FindOne(ctx, m.accountID)
	if err != nil {
		m.phase = LoadFailed{Err: err}
		return fmt.Errorf("failed to load account %d: %w", m.accountID, err)
	}

	m.account = *acc
	m.phase = Editing{Fields: fieldsFrom(*acc)}
	return nil
}

// update applies fn to the Editing phase and stores the result.
func (m *Machine) update(fn func(e *Editing) error) error {
	e, ok := m.phase.(Editing)
	if !ok {
		return fmt.Errorf("%w: cannot edit while %s", apperrors.ErrInvalidState, m.phase.Name())
	}
	if err := fn(&e); err != nil {
		return err
	}
	m.phase = e
	return nil
}

// EditDescription replaces the description and revalidates it immediately.
func (m *Machine) EditDescription(value string) error {
	return m.update(func(e *Editing) error {
		if e.Fields.Description.Value == value {
			return nil
		}
		e.Fields.Description = Field{Value: value, Error: validateDescription(value)}
		return nil
	})
}

// EditDate replaces the date text. It is parsed on Save.
func (m *Machine) EditDate(value string) error {
	return m.update(func(e *Editing) error {
		if e.Fields.Date.Value == value {
			return nil
		}
		e.Fields.Date = Field{Value: value}
		return nil
	})
}

// EditAmount replaces the amount text. It is parsed on Save.
func (m *Machine) EditAmount(value string) error {
	return m.update(func(e *Editing) error {
		if e.Fields.Amount.Value == value {
			return nil
		}
		e.Fields.Amount = Field{Value: value}
		return nil
	})
}

// SetPaid changes the paid flag.
func (m *Machine) SetPaid(paid bool) error {
	return m.update(func(e *Editing) error {
		e.Fields.Paid = paid
		return nil
	})
}

// SetType changes the account type.
func (m *Machine) SetType(t domain.AccountType) error {
	if !t.Valid() {
		return newValidationError(map[FieldName]Message{FieldType: MsgInvalidType}, NoMessage)
	}
	return m.update(func(e *Editing) error {
		e.Fields.Type = t
		return nil
	})
}

// Edit applies a textual value to the named field, converting paid and type
// to their typed form.
func (m *Machine) Edit(name FieldName, value string) error {
	switch name {
	case FieldDescription:
		return m.EditDescription(value)
	case FieldDate:
		return m.EditDate(value)
	case FieldAmount:
		return m.EditAmount(value)
	case FieldPaid:
		paid, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return newValidationError(map[FieldName]Message{FieldPaid: MsgInvalidPaid}, NoMessage)
		}
		return m.SetPaid(paid)
	case FieldType:
		t, ok := domain.ParseAccountType(strings.TrimSpace(value))
		if !ok {
			return newValidationError(map[FieldName]Message{FieldType: MsgInvalidType}, NoMessage)
		}
		return m.SetType(t)
	default:
		return fmt.Errorf("%w: unknown field %q", apperrors.ErrValidation, name)
	}
}

// Save validates the fields and persists the account.
//
// Nothing reaches the repository unless the description is not blank, the
// date is present and both date and amount parse. Failures leave the machine
// in Editing with the offending fields flagged.
func (m *Machine) Save(ctx context.Context) (*domain.Account, error) {
	e, ok := m.phase.(Editing)
	if !ok {
		return nil, fmt.Errorf("%w: cannot save while %s", apperrors.ErrInvalidState, m.phase.Name())
	}

	e.Fields.Description.Error = validateDescription(e.Fields.Description.Value)
	if !e.Fields.Description.Valid() {
		m.phase = e
		return nil, newValidationError(e.Fields.errors(), NoMessage)
	}

	if strings.TrimSpace(e.Fields.Date.Value) == "" {
		e.Fields.Date.Error = MsgDateRequired
		e.Message = MsgDateRequired
		m.phase = e
		return nil, newValidationError(e.Fields.errors(), MsgDateRequired)
	}

	date, dateErr := utils.ParseDate(e.Fields.Date.Value)
	if dateErr != nil {
		e.Fields.Date.Error = MsgInvalidDate
	}
	amount, amountErr := utils.ParseAmount(e.Fields.Amount.Value)
	if amountErr != nil {
		e.Fields.Amount.Error = MsgInvalidAmount
	}
	if !e.Fields.Valid() {
		m.phase = e
		return nil, newValidationError(e.Fields.errors(), NoMessage)
	}

	record := m.account
	record.Description = strings.TrimSpace(e.Fields.Description.Value)
	record.Date = date
	record.Amount = amount
	record.Paid = e.Fields.Paid
	record.Type = e.Fields.Type

	now := m.now().UTC()
	if record.IsNew() {
		record.CreatedAt = now
		record.CreatedBy = m.userID
	}
	record.LastUpdatedAt = now
	record.LastUpdatedBy = m.userID

	m.phase = Saving{Fields: e.Fields}
	saved, err := m.repo.Save(ctx, record)
	if err != nil {
		e.Message = MsgSaveFailed
		m.phase = e
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	m.account = *saved
	m.accountID = saved.ID
	m.phase = Done{Account: *saved, Outcome: OutcomeSaved}
	return saved, nil
}

// ShowDeleteDialog arms Delete. Only persisted accounts can be deleted.
func (m *Machine) ShowDeleteDialog() error {
	return m.update(func(e *Editing) error {
		if m.account.IsNew() {
			return fmt.Errorf("%w: account is not persisted", apperrors.ErrInvalidState)
		}
		e.ConfirmDelete = true
		return nil
	})
}

// HideDeleteDialog disarms Delete.
func (m *Machine) HideDeleteDialog() error {
	return m.update(func(e *Editing) error {
		e.ConfirmDelete = false
		return nil
	})
}

// Delete removes the loaded account. It does nothing and returns
// ErrDeleteNotConfirmed until ShowDeleteDialog has been called.
func (m *Machine) Delete(ctx context.Context) error {
	e, ok := m.phase.(Editing)
	if !ok || !e.ConfirmDelete {
		return ErrDeleteNotConfirmed
	}

	target := m.account
	m.phase = Deleting{Account: target}
	if err := m.repo.Remove(ctx, target); err != nil {
		e.ConfirmDelete = false
		e.Message = MsgDeleteFailed
		m.phase = e
		return fmt.Errorf("failed to remove account %d: %w", target.ID, err)
	}

	m.phase = Done{Account: target, Outcome: OutcomeRemoved}
	return nil
}

// MessageShown acknowledges the pending one-shot message.
func (m *Machine) MessageShown() {
	_ = m.update(func(e *Editing) error {
		e.Message = NoMessage
		return nil
	})
}
