// ABOUTME: Session store: persists the authenticated user and token
// ABOUTME: Implements restore, login, revalidate and logout over client storage

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/basinventario/inventario-cli/internal/access"
	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/debuglog"
	"github.com/basinventario/inventario-cli/internal/storage"
)

// Storage keys
const (
	KeyUser  = "user"
	KeyToken = "token"
)

var (
	// ErrNoSession is returned when no user/token pair is persisted
	ErrNoSession = errors.New("no hay sesión activa, ejecuta 'inventario login'")
	// ErrInvalidCredentials is the login failure when the backend gives no message
	ErrInvalidCredentials = errors.New("Credenciales inválidas")
	// ErrMissingToken is returned when a successful login carries no token
	ErrMissingToken = errors.New("el servidor no devolvió un token de sesión")
	// ErrSessionChanged is returned by Revalidate when the token it checked is
	// no longer the stored one; the fetched user belongs to an ended session
	ErrSessionChanged = errors.New("la sesión cambió mientras se actualizaban los permisos")
)

// Authenticator is the part of the API the store talks to
type Authenticator interface {
	Login(ctx context.Context, creds client.Credentials) (*client.LoginResponse, error)
	Validate(ctx context.Context, token string) (*client.User, error)
}

// Session is the authenticated user and token pair
type Session struct {
	User  client.User
	Token string
}

// Capabilities evaluates the session user's role
func (s *Session) Capabilities() access.Capabilities {
	if s == nil {
		return access.Capabilities{}
	}
	return access.Evaluate(&s.User)
}

// Revalidation is the outcome of a background role refresh for Token
type Revalidation struct {
	Token string
	User  *client.User
	Err   error
}

// Restored is a session read back from storage. Revalidated is nil when the
// user already had a role; otherwise it yields exactly one Revalidation and closes.
type Restored struct {
	*Session
	Revalidated <-chan Revalidation
}

// Store owns the persisted session
type Store struct {
	storage storage.Storage
	auth    Authenticator

	mu    sync.Mutex
	group singleflight.Group
}

// New creates a store over st, authenticating through auth
func New(st storage.Storage, auth Authenticator) *Store {
	return &Store{storage: st, auth: auth}
}

// TokenSource returns a client.TokenSource that reads the persisted token from st.
// The API client is built before the store, so it reads storage directly.
func TokenSource(st storage.Storage) client.TokenSource {
	return client.TokenFunc(func(ctx context.Context) (string, error) {
		token, _, err := st.Get(ctx, KeyToken)
		return token, err
	})
}

// Token implements client.TokenSource
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.storage.Get(ctx, KeyToken)
	return token, err
}

// Current reads the persisted session without any network call
func (s *Store) Current(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Restore reads the persisted session. When the stored user has no role a
// revalidation starts in the background and the stale session is returned at once.
func (s *Store) Restore(ctx context.Context) (*Restored, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	restored := &Restored{Session: sess}
	if _, ok := sess.User.Role(); ok {
		return restored, nil
	}

	ch := make(chan Revalidation, 1)
	restored.Revalidated = ch
	go func() {
		defer close(ch)
		user, err := s.Revalidate(ctx, sess.Token)
		if err != nil {
			debuglog.Error("revalidate on restore", err)
		}
		ch <- Revalidation{Token: sess.Token, User: user, Err: err}
	}()
	return restored, nil
}

// Login exchanges credentials for a session and persists it before returning
func (s *Store) Login(ctx context.Context, creds client.Credentials) (*Session, error) {
	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message == "" {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrMissingToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeUser(ctx, &resp.User); err != nil {
		return nil, err
	}
	if err := s.storage.Set(ctx, KeyToken, resp.Token); err != nil {
		// Never leave the new user stored next to an older token
		if rmErr := s.storage.Remove(ctx, KeyUser); rmErr != nil {
			debuglog.Error("remove user after token write failure", rmErr)
		}
		return nil, fmt.Errorf("persist token: %w", err)
	}

	debuglog.Info("login user_id=%d user=%s", resp.ID, resp.UserName)
	return &Session{User: resp.User, Token: resp.Token}, nil
}

// Revalidate exchanges token for the up-to-date user and replaces the stored
// user. On failure storage is left untouched. If token stopped being the
// stored one meanwhile, nothing is written and ErrSessionChanged is returned.
// Concurrent calls for the same token share one request.
func (s *Store) Revalidate(ctx context.Context, token string) (*client.User, error) {
	v, err, _ := s.group.Do(token, func() (interface{}, error) {
		user, err := s.auth.Validate(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("revalidate session: %w", err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		// A logout or a new login may have happened while the request was in flight
		current, _, err := s.storage.Get(ctx, KeyToken)
		if err != nil {
			return nil, err
		}
		if current != token {
			debuglog.Warn("discarding revalidation for a token no longer stored")
			return nil, ErrSessionChanged
		}
		if err := s.writeUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*client.User), nil
}

// Logout removes both persisted values
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if err := s.storage.Remove(ctx, KeyToken); err != nil {
		errs = append(errs, err)
	}
	if err := s.storage.Remove(ctx, KeyUser); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// load reads both keys; caller holds mu
func (s *Store) load(ctx context.Context) (*Session, error) {
	token, ok, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrNoSession
	}

	raw, ok, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSession
	}

	var user client.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		debuglog.Warn("stored user does not decode: %v", err)
		return nil, ErrNoSession
	}
	return &Session{User: user, Token: token}, nil
}

// writeUser serializes user into storage; caller holds mu
func (s *Store) writeUser(ctx context.Context, user *client.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}
