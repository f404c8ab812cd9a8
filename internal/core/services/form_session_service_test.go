package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/core/forms"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/core/services"
	"github.com/SscSPs/bills_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FormSessionServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *memory.AccountRepository
	service portssvc.FormSessionSvcFacade
	nextID  int
}

func (suite *FormSessionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = memory.NewAccountRepository(domain.Account{
		Description: "Salary",
		Date:        time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(5000),
		Paid:        true,
		Type:        domain.Income,
	})
	suite.nextID = 0
	suite.service = services.NewFormSessionService(suite.repo,
		services.WithSessionTTL(time.Minute),
		services.WithSessionCapacity(2),
		services.WithSessionIDGenerator(func() string {
			suite.nextID++
			return fmt.Sprintf("session-%d", suite.nextID)
		}),
	)
}

func (suite *FormSessionServiceTestSuite) TestNewAccountFlow() {
	sess, err := suite.service.OpenForm(suite.ctx, 0, "user-1")
	suite.Require().NoError(err)
	suite.Equal("session-1", sess.ID)
	suite.True(sess.View.IsNew)
	suite.Equal(forms.PhaseEditing, sess.View.Phase)

	edits := map[forms.FieldName]string{
		forms.FieldDescription: "Rent",
		forms.FieldDate:        "10/09/2024",
		forms.FieldAmount:      "150.00",
		forms.FieldType:        "EXPENSE",
	}
	for field, value := range edits {
		_, err := suite.service.EditField(suite.ctx, sess.ID, field, value)
		suite.Require().NoError(err)
	}

	saved, err := suite.service.SaveForm(suite.ctx, sess.ID)
	suite.Require().NoError(err)
	suite.Equal(forms.PhaseDone, saved.View.Phase)
	suite.Equal(forms.OutcomeSaved, saved.View.Outcome)
	suite.Require().NotNil(saved.View.Account)
	suite.Equal(int64(2), saved.View.Account.ID)

	all, err := suite.repo.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *FormSessionServiceTestSuite) TestPaidToggleKeepsStoredAmount() {
	stored, err := suite.repo.Save(suite.ctx, domain.Account{
		Description: "Coffee",
		Date:        time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("10.12"),
		Type:        domain.Expense,
	})
	suite.Require().NoError(err)

	sess, err := suite.service.OpenForm(suite.ctx, stored.ID, "user-1")
	suite.Require().NoError(err)
	_, err = suite.service.EditField(suite.ctx, sess.ID, forms.FieldPaid, "true")
	suite.Require().NoError(err)
	_, err = suite.service.SaveForm(suite.ctx, sess.ID)
	suite.Require().NoError(err)

	reloaded, err := suite.repo.FindOne(suite.ctx, stored.ID)
	suite.Require().NoError(err)
	suite.True(reloaded.Paid)
	suite.True(decimal.RequireFromString("10.12").Equal(reloaded.Amount), "amount changed to %s", reloaded.Amount)
}

func (suite *FormSessionServiceTestSuite) TestValidationErrorKeepsSnapshot() {
	sess, err := suite.service.OpenForm(suite.ctx, 0, "user-1")
	suite.Require().NoError(err)
	_, err = suite.service.EditField(suite.ctx, sess.ID, forms.FieldDescription, "Rent")
	suite.Require().NoError(err)

	after, err := suite.service.SaveForm(suite.ctx, sess.ID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(forms.PhaseEditing, after.View.Phase)
	suite.Equal(forms.MsgDateRequired, after.View.Message)

	after, err = suite.service.MessageShown(suite.ctx, sess.ID)
	suite.Require().NoError(err)
	suite.Equal(forms.NoMessage, after.View.Message)
}

func (suite *FormSessionServiceTestSuite) TestDeleteFlow() {
	sess, err := suite.service.OpenForm(suite.ctx, 1, "user-1")
	suite.Require().NoError(err)
	suite.Equal("Salary", sess.View.Fields.Description.Value)

	_, err = suite.service.DeleteAccount(suite.ctx, sess.ID)
	suite.ErrorIs(err, forms.ErrDeleteNotConfirmed)

	shown, err := suite.service.ShowDeleteDialog(suite.ctx, sess.ID)
	suite.Require().NoError(err)
	suite.True(shown.View.ConfirmDelete)

	hidden, err := suite.service.HideDeleteDialog(suite.ctx, sess.ID)
	suite.Require().NoError(err)
	suite.False(hidden.View.ConfirmDelete)

	_, err = suite.service.ShowDeleteDialog(suite.ctx, sess.ID)
	suite.Require().NoError(err)
	done, err := suite.service.DeleteAccount(suite.ctx, sess.ID)
	suite.Require().NoError(err)
	suite.Equal(forms.OutcomeRemoved, done.View.Outcome)

	_, err = suite.repo.FindOne(suite.ctx, 1)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FormSessionServiceTestSuite) TestOpenMissingAccountCanRetry() {
	sess, err := suite.service.OpenForm(suite.ctx, 42, "user-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(forms.PhaseLoadFailed, sess.View.Phase)
	suite.True(sess.View.NotFound)
	suite.Nil(sess.View.Fields)

	_, err = suite.repo.Save(suite.ctx, domain.Account{ID: 42, Description: "Late", Date: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), Type: domain.Expense})
	suite.Require().NoError(err)

	reloaded, err := suite.service.ReloadForm(suite.ctx, sess.ID)
	suite.Require().NoError(err)
	suite.Equal(forms.PhaseEditing, reloaded.View.Phase)
	suite.Equal("Late", reloaded.View.Fields.Description.Value)
}

func (suite *FormSessionServiceTestSuite) TestUnknownAndClosedSessions() {
	_, err := suite.service.GetForm(suite.ctx, "nope")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	sess, err := suite.service.OpenForm(suite.ctx, 0, "user-1")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.CloseForm(suite.ctx, sess.ID))

	_, err = suite.service.GetForm(suite.ctx, sess.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(suite.service.CloseForm(suite.ctx, sess.ID), apperrors.ErrNotFound)
}

func (suite *FormSessionServiceTestSuite) TestCapacityEvictsOldestSession() {
	first, err := suite.service.OpenForm(suite.ctx, 0, "u")
	suite.Require().NoError(err)
	_, err = suite.service.OpenForm(suite.ctx, 0, "u")
	suite.Require().NoError(err)
	_, err = suite.service.OpenForm(suite.ctx, 0, "u")
	suite.Require().NoError(err)

	_, err = suite.service.GetForm(suite.ctx, first.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestFormSessionService(t *testing.T) {
	suite.Run(t, new(FormSessionServiceTestSuite))
}

func TestFormSessionService_SaveFailureReturnsToEditing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	repo.On("Save", ctx, mock.AnythingOfType("domain.Account")).Return(nil, fmt.Errorf("disk full")).Once()
	svc := services.NewFormSessionService(repo)

	sess, err := svc.OpenForm(ctx, 0, "u")
	if err != nil {
		t.Fatal(err)
	}
	for field, value := range map[forms.FieldName]string{
		forms.FieldDescription: "Rent", forms.FieldDate: "10/09/2024", forms.FieldAmount: "10",
	} {
		if _, err := svc.EditField(ctx, sess.ID, field, value); err != nil {
			t.Fatal(err)
		}
	}

	after, err := svc.SaveForm(ctx, sess.ID)
	if err == nil {
		t.Fatal("expected save error")
	}
	if after.View.Phase != forms.PhaseEditing || after.View.Message != forms.MsgSaveFailed {
		t.Fatalf("unexpected view after failed save: %+v", after.View)
	}
	repo.AssertExpectations(t)
}
