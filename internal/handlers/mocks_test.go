package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/core/forms"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, nextToken string) ([]domain.Account, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return accounts, token, args.Error(2)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID int64, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock OverviewService ---
type MockOverviewService struct {
	mock.Mock
}

func (m *MockOverviewService) GetOverview(ctx context.Context) (*domain.AccountsOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountsOverview), args.Error(1)
}

var _ portssvc.OverviewSvc = (*MockOverviewService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportAccounts(ctx context.Context, format portssvc.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}

func (m *MockExportService) ContentType(format portssvc.ExportFormat) string {
	args := m.Called(format)
	return args.String(0)
}

var _ portssvc.ExportSvc = (*MockExportService)(nil)

// --- Mock FormSessionService ---
type MockFormSessionService struct {
	mock.Mock
}

func (m *MockFormSessionService) session(args mock.Arguments) (portssvc.FormSession, error) {
	var sess portssvc.FormSession
	if args.Get(0) != nil {
		sess = args.Get(0).(portssvc.FormSession)
	}
	return sess, args.Error(1)
}

func (m *MockFormSessionService) OpenForm(ctx context.Context, accountID int64, userID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, accountID, userID))
}

func (m *MockFormSessionService) GetForm(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockFormSessionService) CloseForm(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockFormSessionService) EditField(ctx context.Context, sessionID string, field forms.FieldName, value string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID, field, value))
}

func (m *MockFormSessionService) ReloadForm(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockFormSessionService) SaveForm(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockFormSessionService) ShowDeleteDialog(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockFormSessionService) HideDeleteDialog(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockFormSessionService) DeleteAccount(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID))
}

func (m *MockFormSessionService) MessageShown(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return m.session(m.Called(ctx, sessionID))
}

var _ portssvc.FormSessionSvcFacade = (*MockFormSessionService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)
