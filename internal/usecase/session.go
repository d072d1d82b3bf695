package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"jobhive/internal/domain"
	apperrors "jobhive/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	UserStorageKey     = "jobhive_user"
	ResumeStorageKey   = "jobhive_resume_data"
	TemplateStorageKey = "jobhive_resume_template"
)

// StorageKey scopes a storage key to one session.
func StorageKey(sessionID, key string) string {
	return sessionID + ":" + key
}

type Session struct {
	ID            string       `json:"-"`
	User          *domain.User `json:"user"`
	Authenticated bool         `json:"isAuthenticated"`
}

// SessionStore holds the signed-in user per session. It is created once and
// handed to whoever needs it; there is no package-level state.
type SessionStore struct {
	storage Storage
	auth    Authenticator
	log     *zap.Logger
}

func NewSessionStore(storage Storage, auth Authenticator, log *zap.Logger) *SessionStore {
	return &SessionStore{storage: storage, auth: auth, log: log}
}

func NewSessionID() string {
	return uuid.NewString()
}

// Hydrate restores the session from storage. A corrupt entry is dropped and
// the session comes back signed out.
func (s *SessionStore) Hydrate(ctx context.Context, sid string) (Session, error) {
	sess := Session{ID: sid}
	if sid == "" {
		return sess, nil
	}

	raw, ok, err := s.storage.Get(ctx, StorageKey(sid, UserStorageKey))
	if err != nil {
		return sess, apperrors.Unavailable("session storage unavailable", err)
	}
	if !ok {
		return sess, nil
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		s.log.Warn("discarding unreadable session", zap.String("session_id", sid), zap.Error(err))
		if err := s.storage.Delete(ctx, StorageKey(sid, UserStorageKey)); err != nil {
			return sess, apperrors.Unavailable("session storage unavailable", err)
		}
		return sess, nil
	}

	sess.User = &u
	sess.Authenticated = true
	return sess, nil
}

// Login reports false for unknown credentials and leaves the session as it
// was.
func (s *SessionStore) Login(ctx context.Context, sid, email, password string) (bool, error) {
	u, err := s.auth.Authenticate(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return false, apperrors.Unavailable("authentication failed", err)
	}
	if u == nil {
		return false, nil
	}
	if err := s.persist(ctx, sid, *u); err != nil {
		return false, err
	}
	s.log.Info("user signed in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return true, nil
}

func (s *SessionStore) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.storage.Delete(ctx, StorageKey(sid, UserStorageKey)); err != nil {
		return apperrors.Unavailable("session storage unavailable", err)
	}
	return nil
}

// Register refuses taken or missing emails, creates the account and signs
// the new user in. Only student and employer accounts can be created here.
func (s *SessionStore) Register(ctx context.Context, sid string, u domain.User, password string) (bool, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return false, nil
	}
	if !u.Role.CanSelfRegister() {
		return false, apperrors.InvalidInput("role must be student or employer", nil)
	}

	taken, err := s.auth.EmailTaken(ctx, u.Email)
	if err != nil {
		return false, apperrors.Unavailable("registration failed", err)
	}
	if taken {
		return false, nil
	}

	if err := s.auth.CreateAccount(ctx, u, password); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return false, nil
		}
		return false, apperrors.Internal("registration failed", err)
	}
	s.log.Info("user registered", zap.String("email", u.Email), zap.String("role", string(u.Role)))

	return s.Login(ctx, sid, u.Email, password)
}

// Rotate moves the session at from to the fresh id to, carrying the guest's
// resume drafts along. The old id is left signed out.
func (s *SessionStore) Rotate(ctx context.Context, from, to string) error {
	if from == "" || from == to {
		return nil
	}
	for _, key := range []string{ResumeStorageKey, TemplateStorageKey} {
		v, ok, err := s.storage.Get(ctx, StorageKey(from, key))
		if err != nil {
			return apperrors.Unavailable("session storage unavailable", err)
		}
		if !ok {
			continue
		}
		if err := s.storage.Set(ctx, StorageKey(to, key), v); err != nil {
			return apperrors.Unavailable("session storage unavailable", err)
		}
		if err := s.storage.Delete(ctx, StorageKey(from, key)); err != nil {
			return apperrors.Unavailable("session storage unavailable", err)
		}
	}
	return s.Logout(ctx, from)
}

// UpdateProfile merges patch into the signed-in user and returns the result.
// It returns nil when nobody is signed in.
func (s *SessionStore) UpdateProfile(ctx context.Context, sid string, patch domain.ProfilePatch) (*domain.User, error) {
	sess, err := s.Hydrate(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated {
		return nil, nil
	}
	u := patch.Apply(*sess.User)
	if err := s.persist(ctx, sid, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SessionStore) IsRole(ctx context.Context, sid string, role domain.Role) bool {
	sess, err := s.Hydrate(ctx, sid)
	if err != nil || !sess.Authenticated {
		return false
	}
	return sess.User.Role == role
}

func (s *SessionStore) persist(ctx context.Context, sid string, u domain.User) error {
	if sid == "" {
		return apperrors.InvalidInput("missing session id", nil)
	}
	b, err := json.Marshal(u)
	if err != nil {
		return apperrors.Internal("failed to encode session", err)
	}
	if err := s.storage.Set(ctx, StorageKey(sid, UserStorageKey), string(b)); err != nil {
		return apperrors.Unavailable("session storage unavailable", err)
	}
	return nil
}
