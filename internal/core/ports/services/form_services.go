package services

import (
	"context"

	"github.com/SscSPs/bills_app/internal/core/forms"
)

// FormSession is a snapshot of a server side form.
type FormSession struct {
	ID   string
	View forms.View
}

// FormSessionSvcFacade keeps interactive forms alive between requests.
//
// Every operation returns the session snapshot taken after it ran, also when
// it fails, so that callers can render field errors and messages. An unknown
// or expired session yields apperrors.ErrNotFound and a zero snapshot.
type FormSessionSvcFacade interface {
	// OpenForm starts a session for accountID, loading it when accountID > 0.
	OpenForm(ctx context.Context, accountID int64, userID string) (FormSession, error)
	GetForm(ctx context.Context, sessionID string) (FormSession, error)
	CloseForm(ctx context.Context, sessionID string) error

	EditField(ctx context.Context, sessionID string, field forms.FieldName, value string) (FormSession, error)
	ReloadForm(ctx context.Context, sessionID string) (FormSession, error)
	SaveForm(ctx context.Context, sessionID string) (FormSession, error)
	ShowDeleteDialog(ctx context.Context, sessionID string) (FormSession, error)
	HideDeleteDialog(ctx context.Context, sessionID string) (FormSession, error)
	DeleteAccount(ctx context.Context, sessionID string) (FormSession, error)
	MessageShown(ctx context.Context, sessionID string) (FormSession, error)
}
