// ABOUTME: Wires config, storage, API client and session store for commands
// ABOUTME: Also resolves the current session and enforces role capabilities

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/basinventario/inventario-cli/internal/access"
	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/config"
	"github.com/basinventario/inventario-cli/internal/debuglog"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/session"
	"github.com/basinventario/inventario-cli/internal/storage"
)

// cliEnv is everything a command needs to talk to the API
type cliEnv struct {
	cfg     *config.Config
	api     *client.Client
	store   *session.Store
	storage storage.Storage
	format  *format.Formatter
	closers []func() error
}

// newEnv loads configuration and opens session storage
func newEnv(ctx context.Context) (*cliEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := debuglog.Init(cfg.ConfigDir, cfg.LogLevel); err != nil {
		// Logging is best effort; the command still runs
		debuglog.Close()
	}

	st, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		debuglog.Close()
		return nil, err
	}

	api := client.New(cfg.APIURL,
		client.WithTokenSource(session.TokenSource(st)),
		client.WithTimeout(cfg.RequestTimeout),
	)

	env := &cliEnv{
		cfg:     cfg,
		api:     api,
		store:   session.New(st, api),
		storage: st,
		format:  format.New(cfg.Locale),
	}
	if closeStorage != nil {
		env.closers = append(env.closers, closeStorage)
	}
	return env, nil
}

// Close releases storage connections and the log file
func (e *cliEnv) Close() {
	for _, fn := range e.closers {
		if err := fn(); err != nil {
			debuglog.Error("close", err)
		}
	}
	debuglog.Close()
}

// openStorage selects the configured session backend
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func() error, error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return storage.NewMemory(), nil, nil
	case config.BackendRedis:
		r, err := storage.NewRedis(ctx, cfg.RedisConfig())
		if err != nil {
			return nil, nil, fmt.Errorf("session storage: %w", err)
		}
		return r, r.Close, nil
	default:
		return storage.NewFile(cfg.ConfigDir), nil, nil
	}
}

// currentSession restores the session. A session without role waits for the
// background revalidation; its failure is logged and the stale user kept.
func (e *cliEnv) currentSession(ctx context.Context) (*session.Session, error) {
	sess, _, err := e.resolveSession(ctx)
	return sess, err
}

// resolveSession is currentSession that also returns the revalidation outcome,
// or nil when the stored user already had a role and none was run
func (e *cliEnv) resolveSession(ctx context.Context) (*session.Session, *session.Revalidation, error) {
	restored, err := e.store.Restore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if restored.Revalidated == nil {
		return restored.Session, nil, nil
	}

	select {
	case outcome := <-restored.Revalidated:
		if outcome.Err == nil && outcome.User != nil {
			restored.User = *outcome.User
		}
		return restored.Session, &outcome, nil
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// exitCodeFor maps an error to the CLI exit code
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, access.ErrRestricted):
		return 3
	default:
		return 2
	}
}

// withSession opens the environment, resolves the session and runs fn
func withSession(ctx context.Context, w io.Writer, fn func(env *cliEnv, sess *session.Session) int) int {
	env, err := newEnv(ctx)
	if err != nil {
		return writeError(w, err)
	}
	defer env.Close()

	sess, err := env.currentSession(ctx)
	if err != nil {
		return writeError(w, err)
	}
	return fn(env, sess)
}

// withPermission is withSession for commands gated by a role capability
func withPermission(ctx context.Context, w io.Writer, perm access.Permission, fn func(env *cliEnv, sess *session.Session) int) int {
	return withSession(ctx, w, func(env *cliEnv, sess *session.Session) int {
		if err := sess.Capabilities().Require(perm); err != nil {
			return writeError(w, err)
		}
		return fn(env, sess)
	})
}
