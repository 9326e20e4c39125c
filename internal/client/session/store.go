package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/dmitrijs2005/cityreport/internal/client/storage"
	"github.com/dmitrijs2005/cityreport/internal/common"
	"github.com/dmitrijs2005/cityreport/internal/logging"
)

// Authenticator is the part of the API the store needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) error
}

// Store holds the current session. Token and identity are always set and
// cleared together, in memory and in storage.
type Store struct {
	auth  Authenticator
	kv    storage.KV
	roles RoleResolver
	log   logging.Logger

	mu       sync.RWMutex
	token    string
	identity *models.Identity
	loading  bool
}

func NewStore(auth Authenticator, kv storage.KV, roles RoleResolver, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{auth: auth, kv: kv, roles: roles, log: log.With("component", "session")}
}

// Restore loads a persisted session. A missing or unreadable value leaves
// the store unauthenticated; storage is never modified here.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	token, identity := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if identity == nil {
		s.token, s.identity = "", nil
		return
	}
	s.token, s.identity = token, identity
}

func (s *Store) load(ctx context.Context) (string, *models.Identity) {
	token, ok, err := s.kv.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.log.Warn(ctx, "cannot read stored token", "error", err)
		return "", nil
	}
	if !ok || token == "" {
		return "", nil
	}

	raw, ok, err := s.kv.Get(ctx, common.UserStorageKey)
	if err != nil {
		s.log.Warn(ctx, "cannot read stored user", "error", err)
		return "", nil
	}
	if !ok {
		return "", nil
	}

	var id models.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		s.log.Warn(ctx, "stored user is corrupt", "error", err)
		return "", nil
	}
	if id.Email == "" || !id.Role.Valid() {
		s.log.Warn(ctx, "stored user is incomplete")
		return "", nil
	}
	return token, &id
}

// Login authenticates against the server and, on success, persists and
// publishes the new session. On any failure the current session is kept.
func (s *Store) Login(ctx context.Context, email, password string) (models.Identity, error) {
	email = strings.TrimSpace(email)
	if err := (models.Credentials{Email: email, Password: password}).Validate(); err != nil {
		return models.Identity{}, err
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{Email: email, Role: s.roles.Resolve(token)}
	user, err := json.Marshal(id)
	if err != nil {
		return models.Identity{}, fmt.Errorf("encode user: %w", err)
	}

	err = s.kv.SetMany(ctx, map[string]string{
		common.TokenStorageKey: token,
		common.UserStorageKey:  string(user),
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.token, s.identity = token, &id
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "email", id.Email, "role", id.Role)
	return id, nil
}

// Register creates the account and then logs in with the same credentials.
func (s *Store) Register(ctx context.Context, email, password string) (models.Identity, error) {
	email = strings.TrimSpace(email)
	if err := (models.Credentials{Email: email, Password: password}).Validate(); err != nil {
		return models.Identity{}, err
	}

	if err := s.auth.Register(ctx, email, password); err != nil {
		return models.Identity{}, err
	}
	return s.Login(ctx, email, password)
}

// Logout forgets the session. Storage failures are logged; the in-memory
// session is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token, s.identity = "", nil
	s.mu.Unlock()

	if err := s.kv.DeleteMany(ctx, common.TokenStorageKey, common.UserStorageKey); err != nil {
		s.log.Error(ctx, "cannot clear stored session", "error", err)
	}
}

// Current returns the identity when authenticated.
func (s *Store) Current() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// IsLoading is true only while Restore runs.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// HasRole reports whether the user is logged in with one of roles.
func (s *Store) HasRole(roles ...models.Role) bool {
	id, ok := s.Current()
	return ok && id.HasRole(roles...)
}
