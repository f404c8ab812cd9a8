package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/forms"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultSessionTTL      = 30 * time.Minute
	defaultSessionCapacity = 1024
)

// formSession pairs a form with the lock that serialises requests on it.
type formSession struct {
	mu   sync.Mutex
	form *forms.Machine
}

type formSessionService struct {
	BaseService
	repo     forms.Repository
	ttl      time.Duration
	capacity int
	now      func() time.Time
	newID    func() string
	sessions *expirable.LRU[string, *formSession]
}

// FormSessionOption is a functional option for configuring the form session service
type FormSessionOption func(*formSessionService)

// WithSessionTTL sets how long an untouched session survives.
func WithSessionTTL(ttl time.Duration) FormSessionOption {
	return func(s *formSessionService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSessionCapacity bounds the number of live sessions; the least recently used is evicted first.
func WithSessionCapacity(capacity int) FormSessionOption {
	return func(s *formSessionService) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithSessionClock overrides the clock handed to every form.
func WithSessionClock(now func() time.Time) FormSessionOption {
	return func(s *formSessionService) {
		s.now = now
	}
}

// WithSessionIDGenerator overrides how session ids are minted.
func WithSessionIDGenerator(newID func() string) FormSessionOption {
	return func(s *formSessionService) {
		s.newID = newID
	}
}

// NewFormSessionService creates the service that keeps interactive forms between requests.
func NewFormSessionService(repo forms.Repository, options ...FormSessionOption) portssvc.FormSessionSvcFacade {
	svc := &formSessionService{
		repo:     repo,
		ttl:      defaultSessionTTL,
		capacity: defaultSessionCapacity,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	svc.sessions = expirable.NewLRU[string, *formSession](svc.capacity, nil, svc.ttl)
	return svc
}

var _ portssvc.FormSessionSvcFacade = (*formSessionService)(nil)

func snapshot(id string, form *forms.Machine) portssvc.FormSession {
	return portssvc.FormSession{ID: id, View: form.View()}
}

func (s *formSessionService) OpenForm(ctx context.Context, accountID int64, userID string) (portssvc.FormSession, error) {
	form := forms.New(s.repo, accountID, forms.WithUser(userID), forms.WithClock(s.now))
	id := s.newID()
	sess := &formSession{form: form}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	// Stored before loading so a failed load can be retried on the same session.
	s.sessions.Add(id, sess)

	var err error
	if accountID > 0 {
		err = form.Load(ctx)
	}

	s.LogInfo(ctx, "Form session opened",
		slog.String("session_id", id),
		slog.Int64("account_id", accountID),
		slog.String("phase", string(form.Phase().Name())))
	return snapshot(id, form), err
}

func (s *formSessionService) lookup(sessionID string) (*formSession, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: form session %s", apperrors.ErrNotFound, sessionID)
	}
	// Re-adding restarts the TTL.
	s.sessions.Add(sessionID, sess)
	return sess, nil
}

// with runs fn on the session's form under its lock and returns the resulting snapshot.
func (s *formSessionService) with(ctx context.Context, sessionID, op string, fn func(form *forms.Machine) error) (portssvc.FormSession, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return portssvc.FormSession{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	err = fn(sess.form)
	if err != nil {
		s.LogDebug(ctx, "Form operation failed",
			slog.String("session_id", sessionID),
			slog.String("operation", op),
			slog.String("error", err.Error()))
	}
	return snapshot(sessionID, sess.form), err
}

func (s *formSessionService) GetForm(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "get", func(*forms.Machine) error { return nil })
}

func (s *formSessionService) CloseForm(ctx context.Context, sessionID string) error {
	if !s.sessions.Remove(sessionID) {
		return fmt.Errorf("%w: form session %s", apperrors.ErrNotFound, sessionID)
	}
	s.LogInfo(ctx, "Form session closed", slog.String("session_id", sessionID))
	return nil
}

func (s *formSessionService) EditField(ctx context.Context, sessionID string, field forms.FieldName, value string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "edit", func(form *forms.Machine) error {
		return form.Edit(field, value)
	})
}

func (s *formSessionService) ReloadForm(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "load", func(form *forms.Machine) error {
		return form.Load(ctx)
	})
}

func (s *formSessionService) SaveForm(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "save", func(form *forms.Machine) error {
		account, err := form.Save(ctx)
		if err == nil {
			s.LogInfo(ctx, "Account saved from form", slog.String("session_id", sessionID), slog.Int64("account_id", account.ID))
		}
		return err
	})
}

func (s *formSessionService) ShowDeleteDialog(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "show_delete_dialog", func(form *forms.Machine) error {
		return form.ShowDeleteDialog()
	})
}

func (s *formSessionService) HideDeleteDialog(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "hide_delete_dialog", func(form *forms.Machine) error {
		return form.HideDeleteDialog()
	})
}

func (s *formSessionService) DeleteAccount(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "delete", func(form *forms.Machine) error {
		accountID := form.AccountID()
		err := form.Delete(ctx)
		if err == nil {
			s.LogInfo(ctx, "Account deleted from form", slog.String("session_id", sessionID), slog.Int64("account_id", accountID))
		}
		return err
	})
}

func (s *formSessionService) MessageShown(ctx context.Context, sessionID string) (portssvc.FormSession, error) {
	return s.with(ctx, sessionID, "message_shown", func(form *forms.Machine) error {
		form.MessageShown()
		return nil
	})
}
