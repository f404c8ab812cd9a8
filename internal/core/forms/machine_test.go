package forms_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/core/forms"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the forms.Repository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindOne(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Remove(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

var _ forms.Repository = (*MockAccountRepository)(nil)

// --- Test Suite Setup ---

type MachineTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockAccountRepository
	now      time.Time
}

func (suite *MachineTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockAccountRepository)
	suite.now = time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *MachineTestSuite) newForm(id int64) *forms.Machine {
	return forms.New(suite.mockRepo, id, forms.WithUser("user-1"), forms.WithClock(func() time.Time { return suite.now }))
}

func (suite *MachineTestSuite) existingAccount() *domain.Account {
	return &domain.Account{
		ID:          42,
		Description: "Salary",
		Date:        time.Date(2024, time.September, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("5000"),
		Paid:        true,
		Type:        domain.Income,
		AuditFields: domain.AuditFields{CreatedAt: suite.now.Add(-time.Hour), CreatedBy: "someone"},
	}
}

func (suite *MachineTestSuite) editing(m *forms.Machine) forms.Editing {
	e, ok := m.Phase().(forms.Editing)
	suite.Require().True(ok, "expected editing phase, got %s", m.Phase().Name())
	return e
}

func (suite *MachineTestSuite) fillValid(m *forms.Machine) {
	suite.Require().NoError(m.EditDescription("Rent"))
	suite.Require().NoError(m.EditDate("10/09/2024"))
	suite.Require().NoError(m.EditAmount("150.00"))
	suite.Require().NoError(m.SetType(domain.Expense))
}

// --- Loading ---

func (suite *MachineTestSuite) TestNew_BlankFormForNewAccount() {
	m := suite.newForm(0)

	e := suite.editing(m)
	suite.True(m.IsNew())
	suite.Equal(domain.Expense, e.Fields.Type)
	suite.False(e.Fields.Paid)
	suite.Empty(e.Fields.Description.Value)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindOne", mock.Anything, mock.Anything)
}

func (suite *MachineTestSuite) TestNew_ExistingAccountWaitsForLoad() {
	m := suite.newForm(42)
	suite.Equal(forms.PhaseLoading, m.Phase().Name())
}

func (suite *MachineTestSuite) TestOpen_PopulatesFields() {
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(suite.existingAccount(), nil).Once()

	m, err := forms.Open(suite.ctx, suite.mockRepo, 42)

	suite.Require().NoError(err)
	e := suite.editing(m)
	suite.Equal("Salary", e.Fields.Description.Value)
	suite.Equal("05/09/2024", e.Fields.Date.Value)
	suite.Equal("5000.00", e.Fields.Amount.Value)
	suite.True(e.Fields.Paid)
	suite.Equal(domain.Income, e.Fields.Type)
	suite.False(m.IsNew())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MachineTestSuite) TestOpen_NotFoundNeverPopulatesFields() {
	suite.mockRepo.On("FindOne", suite.ctx, int64(7)).Return(nil, apperrors.ErrNotFound).Once()

	m, err := forms.Open(suite.ctx, suite.mockRepo, 7)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	failed, ok := m.Phase().(forms.LoadFailed)
	suite.Require().True(ok)
	suite.ErrorIs(failed.Err, apperrors.ErrNotFound)

	view := m.View()
	suite.Nil(view.Fields)
	suite.True(view.NotFound)
	suite.Equal(forms.PhaseLoadFailed, view.Phase)

	suite.ErrorIs(m.EditDescription("anything"), apperrors.ErrInvalidState)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MachineTestSuite) TestLoad_RetryAfterFailure() {
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(nil, assert.AnError).Once()
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(suite.existingAccount(), nil).Once()

	m, err := forms.Open(suite.ctx, suite.mockRepo, 42)
	suite.Require().ErrorIs(err, assert.AnError)
	suite.False(m.View().NotFound)

	suite.Require().NoError(m.Load(suite.ctx))
	suite.Equal("Salary", suite.editing(m).Fields.Description.Value)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Editing ---

func (suite *MachineTestSuite) TestEditDescription_ValidatesImmediately() {
	m := suite.newForm(0)

	suite.Require().NoError(m.EditDescription("   "))
	suite.Equal(forms.MsgDescriptionRequired, suite.editing(m).Fields.Description.Error)

	suite.Require().NoError(m.EditDescription("Rent"))
	suite.Equal(forms.NoMessage, suite.editing(m).Fields.Description.Error)
}

func (suite *MachineTestSuite) TestEdit_TextEntryPoint() {
	m := suite.newForm(0)

	suite.Require().NoError(m.Edit(forms.FieldPaid, "true"))
	suite.Require().NoError(m.Edit(forms.FieldType, "INCOME"))
	suite.Require().NoError(m.Edit(forms.FieldAmount, "12.5"))

	e := suite.editing(m)
	suite.True(e.Fields.Paid)
	suite.Equal(domain.Income, e.Fields.Type)
	suite.Equal("12.5", e.Fields.Amount.Value)

	err := m.Edit(forms.FieldPaid, "maybe")
	suite.ErrorIs(err, apperrors.ErrValidation)
	var verr *forms.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal(forms.MsgInvalidPaid, verr.Fields[forms.FieldPaid])

	suite.ErrorIs(m.Edit(forms.FieldType, "TRANSFER"), apperrors.ErrValidation)
	suite.ErrorIs(m.Edit("colour", "blue"), apperrors.ErrValidation)
	suite.Equal(domain.Income, suite.editing(m).Fields.Type, "invalid edits leave the field untouched")
}

func (suite *MachineTestSuite) TestEditDate_ClearsStaleError() {
	m := suite.newForm(0)
	suite.Require().NoError(m.EditDescription("Rent"))
	suite.Require().NoError(m.EditDate("2024-09-10"))
	suite.Require().NoError(m.EditAmount("1"))

	_, err := m.Save(suite.ctx)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(forms.MsgInvalidDate, suite.editing(m).Fields.Date.Error)

	suite.Require().NoError(m.EditDate("10/09/2024"))
	suite.Equal(forms.NoMessage, suite.editing(m).Fields.Date.Error)
}

// --- Saving ---

func (suite *MachineTestSuite) TestSave_BlankDescriptionNeverCallsRepository() {
	for _, blank := range []string{"", " ", "\t\n"} {
		m := suite.newForm(0)
		suite.Require().NoError(m.EditDescription(blank))
		suite.Require().NoError(m.EditDate("10/09/2024"))
		suite.Require().NoError(m.EditAmount("10"))

		saved, err := m.Save(suite.ctx)

		suite.Nil(saved)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Equal(forms.MsgDescriptionRequired, suite.editing(m).Fields.Description.Error)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *MachineTestSuite) TestSave_BlankDateReportsDateRequired() {
	m := suite.newForm(0)
	suite.Require().NoError(m.EditDescription("Rent"))
	suite.Require().NoError(m.EditAmount("150.00"))

	_, err := m.Save(suite.ctx)

	var verr *forms.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal(forms.MsgDateRequired, verr.Message)
	e := suite.editing(m)
	suite.Equal(forms.MsgDateRequired, e.Message)
	suite.Equal(forms.MsgDateRequired, e.Fields.Date.Error)
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *MachineTestSuite) TestSave_ValidInputPersistsOnce() {
	m := suite.newForm(0)
	suite.fillValid(m)

	persisted := &domain.Account{ID: 1}
	suite.mockRepo.On("Save", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.ID == 0 &&
			a.Description == "Rent" &&
			a.Amount.Equal(decimal.RequireFromString("150.00")) &&
			a.Type == domain.Expense &&
			!a.Paid &&
			a.Date.Equal(time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC)) &&
			a.CreatedBy == "user-1" &&
			a.CreatedAt.Equal(suite.now)
	})).Run(func(args mock.Arguments) {
		suite.Equal(forms.PhaseSaving, m.Phase().Name(), "repository is called while saving")
		suite.True(m.View().Processing)
		a := args.Get(1).(domain.Account)
		a.ID = 1
		*persisted = a
	}).Return(persisted, nil).Once()

	saved, err := m.Save(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(1), saved.ID)
	suite.True(decimal.RequireFromString("150").Equal(saved.Amount))
	suite.Equal(domain.Expense, saved.Type)
	done, ok := m.Phase().(forms.Done)
	suite.Require().True(ok)
	suite.Equal(forms.OutcomeSaved, done.Outcome)
	suite.Equal(int64(1), m.AccountID())
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "Save", 1)
}

func (suite *MachineTestSuite) TestSave_UpdateKeepsCreationAudit() {
	existing := suite.existingAccount()
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(existing, nil).Once()
	m, err := forms.Open(suite.ctx, suite.mockRepo, 42, forms.WithUser("user-2"), forms.WithClock(func() time.Time { return suite.now }))
	suite.Require().NoError(err)
	suite.Require().NoError(m.SetPaid(false))

	suite.mockRepo.On("Save", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.ID == 42 && !a.Paid && a.CreatedBy == "someone" && a.LastUpdatedBy == "user-2" && a.LastUpdatedAt.Equal(suite.now)
	})).Return(existing, nil).Once()

	_, err = m.Save(suite.ctx)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MachineTestSuite) TestSave_MalformedAmountIsRecoverable() {
	for _, amount := range []string{"", "abc", "1,50", "-3", "+3", "1e20", "10.125", "1234567890123", ".5", "5.", "1.2.3", "0x10", "NaN"} {
		m := suite.newForm(0)
		suite.Require().NoError(m.EditDescription("Rent"))
		suite.Require().NoError(m.EditDate("10/09/2024"))
		suite.Require().NoError(m.EditAmount(amount))

		_, err := m.Save(suite.ctx)

		var verr *forms.ValidationError
		suite.Require().ErrorAs(err, &verr, "amount %q", amount)
		suite.Equal(forms.MsgInvalidAmount, verr.Fields[forms.FieldAmount])
		suite.Equal(forms.PhaseEditing, m.Phase().Name())
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *MachineTestSuite) TestSave_PaidOnlyEditKeepsAmount() {
	existing := suite.existingAccount()
	existing.Amount = decimal.RequireFromString("10.12")
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(existing, nil).Once()
	m, err := forms.Open(suite.ctx, suite.mockRepo, 42)
	suite.Require().NoError(err)
	suite.Equal("10.12", suite.editing(m).Fields.Amount.Value)
	suite.Require().NoError(m.SetPaid(false))

	suite.mockRepo.On("Save", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.ID == 42 && !a.Paid && a.Amount.Equal(decimal.RequireFromString("10.12"))
	})).Return(existing, nil).Once()

	_, err = m.Save(suite.ctx)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MachineTestSuite) TestOpen_FinerAmountIsShownExactly() {
	existing := suite.existingAccount()
	existing.Amount = decimal.RequireFromString("10.125")
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(existing, nil).Once()

	m, err := forms.Open(suite.ctx, suite.mockRepo, 42)
	suite.Require().NoError(err)
	suite.Equal("10.125", suite.editing(m).Fields.Amount.Value)
	suite.Require().NoError(m.SetPaid(false))

	_, err = m.Save(suite.ctx)

	var verr *forms.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal(forms.MsgInvalidAmount, verr.Fields[forms.FieldAmount])
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *MachineTestSuite) TestSave_LargestAmountIsAccepted() {
	m := suite.newForm(0)
	suite.fillValid(m)
	suite.Require().NoError(m.EditAmount("999999999999.99"))

	suite.mockRepo.On("Save", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Amount.Equal(decimal.RequireFromString("999999999999.99"))
	})).Return(&domain.Account{ID: 1}, nil).Once()

	_, err := m.Save(suite.ctx)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MachineTestSuite) TestSave_MalformedDateIsRecoverable() {
	m := suite.newForm(0)
	suite.Require().NoError(m.EditDescription("Rent"))
	suite.Require().NoError(m.EditDate("31/02/2024"))
	suite.Require().NoError(m.EditAmount("oops"))

	_, err := m.Save(suite.ctx)

	var verr *forms.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal(forms.MsgInvalidDate, verr.Fields[forms.FieldDate])
	suite.Equal(forms.MsgInvalidAmount, verr.Fields[forms.FieldAmount])
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *MachineTestSuite) TestSave_RepositoryFailureReturnsToEditing() {
	m := suite.newForm(0)
	suite.fillValid(m)
	suite.mockRepo.On("Save", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil, assert.AnError).Once()

	saved, err := m.Save(suite.ctx)

	suite.Nil(saved)
	suite.ErrorIs(err, assert.AnError)
	e := suite.editing(m)
	suite.Equal(forms.MsgSaveFailed, e.Message)
	suite.Equal("Rent", e.Fields.Description.Value)

	m.MessageShown()
	suite.Equal(forms.NoMessage, suite.editing(m).Message)
}

func (suite *MachineTestSuite) TestSave_AfterDoneIsRejected() {
	m := suite.newForm(0)
	suite.fillValid(m)
	suite.mockRepo.On("Save", suite.ctx, mock.AnythingOfType("domain.Account")).Return(&domain.Account{ID: 3}, nil).Once()

	_, err := m.Save(suite.ctx)
	suite.Require().NoError(err)

	_, err = m.Save(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.ErrorIs(m.EditDescription("again"), apperrors.ErrInvalidState)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "Save", 1)
}

// --- Deleting ---

func (suite *MachineTestSuite) TestDelete_NoopUntilConfirmed() {
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(suite.existingAccount(), nil).Once()
	m, err := forms.Open(suite.ctx, suite.mockRepo, 42)
	suite.Require().NoError(err)

	suite.ErrorIs(m.Delete(suite.ctx), forms.ErrDeleteNotConfirmed)
	suite.Equal(forms.PhaseEditing, m.Phase().Name())

	suite.Require().NoError(m.ShowDeleteDialog())
	suite.Require().NoError(m.HideDeleteDialog())
	suite.ErrorIs(m.Delete(suite.ctx), forms.ErrDeleteNotConfirmed)

	suite.mockRepo.AssertNotCalled(suite.T(), "Remove", mock.Anything, mock.Anything)
}

func (suite *MachineTestSuite) TestDelete_RemovesConfirmedRecord() {
	existing := suite.existingAccount()
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(existing, nil).Once()
	m, err := forms.Open(suite.ctx, suite.mockRepo, 42)
	suite.Require().NoError(err)

	suite.Require().NoError(m.EditDescription("edited but not saved"))
	suite.Require().NoError(m.ShowDeleteDialog())
	suite.True(suite.editing(m).ConfirmDelete)

	suite.mockRepo.On("Remove", suite.ctx, *existing).Run(func(mock.Arguments) {
		suite.Equal(forms.PhaseDeleting, m.Phase().Name())
	}).Return(nil).Once()

	suite.Require().NoError(m.Delete(suite.ctx))
	done, ok := m.Phase().(forms.Done)
	suite.Require().True(ok)
	suite.Equal(forms.OutcomeRemoved, done.Outcome)
	suite.Equal(int64(42), done.Account.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MachineTestSuite) TestDelete_RepositoryFailureDisarmsDialog() {
	suite.mockRepo.On("FindOne", suite.ctx, int64(42)).Return(suite.existingAccount(), nil).Once()
	suite.mockRepo.On("Remove", suite.ctx, mock.AnythingOfType("domain.Account")).Return(assert.AnError).Once()
	m, err := forms.Open(suite.ctx, suite.mockRepo, 42)
	suite.Require().NoError(err)
	suite.Require().NoError(m.ShowDeleteDialog())

	suite.ErrorIs(m.Delete(suite.ctx), assert.AnError)
	e := suite.editing(m)
	suite.False(e.ConfirmDelete)
	suite.Equal(forms.MsgDeleteFailed, e.Message)
}

func (suite *MachineTestSuite) TestShowDeleteDialog_RejectedForNewAccount() {
	m := suite.newForm(0)
	suite.ErrorIs(m.ShowDeleteDialog(), apperrors.ErrInvalidState)
	suite.False(suite.editing(m).ConfirmDelete)
}

// --- View ---

func (suite *MachineTestSuite) TestView_Editing() {
	m := suite.newForm(0)
	suite.Require().NoError(m.EditDescription("Rent"))

	view := m.View()
	suite.Equal(forms.PhaseEditing, view.Phase)
	suite.True(view.IsNew)
	suite.Require().NotNil(view.Fields)
	suite.Equal("Rent", view.Fields.Description.Value)
	suite.False(view.Processing)
	suite.Nil(view.Account)
}

func TestMachine(t *testing.T) {
	suite.Run(t, new(MachineTestSuite))
}
