// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vitrine/cli/internal/backend"
	"vitrine/cli/internal/identity"
	"vitrine/cli/internal/storage"
)

// ErrInvalidRecord is returned when the server's user record would not be
// accepted by ReadSession.
var ErrInvalidRecord = errors.New("auth: user record has no id, nome or email")

// Service is the login flow that fills local storage for the controller:
// it authenticates against the API, caches the returned record under
// usuario and hands back the page that was waiting for the login.
type Service struct {
	be      backend.API
	local   storage.Store
	session storage.Store
	log     *zap.SugaredLogger
}

// NewService wires the login flow. A nil logger discards output.
func NewService(be backend.API, local, session storage.Store, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{be: be, local: local, session: session, log: log}
}

// Login authenticates and caches the user record exactly as the server
// sent it. It returns the record and the consumed redirect target, which
// is "" when no page was waiting.
//
// When the server turns the login down, or answers with a record the
// controller would not accept, any previously cached user is cleared. A
// network failure leaves the cache alone.
func (s *Service) Login(ctx context.Context, creds backend.Credentials) (*identity.Identity, string, error) {
	raw, err := s.be.Login(ctx, creds)
	if err != nil {
		var se *backend.StatusError
		if errors.As(err, &se) || errors.Is(err, backend.ErrNoUser) {
			s.resetAfterFailure(err)
		}
		return nil, "", err
	}

	id, err := identity.Parse(raw)
	if err != nil {
		s.resetAfterFailure(err)
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if !id.Valid() {
		s.resetAfterFailure(ErrInvalidRecord)
		return nil, "", ErrInvalidRecord
	}

	if err := s.local.Set(KeyUsuario, string(raw)); err != nil {
		return nil, "", fmt.Errorf("cache user record: %w", err)
	}
	s.log.Infow("logged in", "user", id.DisplayName())

	return id, s.ConsumeRedirect(), nil
}

func (s *Service) resetAfterFailure(cause error) {
	s.log.Debugw("login rejected, clearing cached user", "cause", cause)
	if err := s.ResetLocalAuth(); err != nil {
		s.log.Warnw("clear cached user", "error", err)
	}
}

// ConsumeRedirect reads and removes the redirect target left by a gated page.
func (s *Service) ConsumeRedirect() string {
	target, err := s.session.Get(KeyRedirectAfterLogin)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warnw("read redirect target", "error", err)
		}
		return ""
	}
	if err := s.session.Remove(KeyRedirectAfterLogin); err != nil {
		s.log.Warnw("remove redirect target", "error", err)
	}
	return target
}

// ResetLocalAuth clears the cached identity without calling the server.
// The API session cookie is kept so a later logout can still end the
// server-side session.
func (s *Service) ResetLocalAuth() error {
	if err := s.local.Remove(KeyUsuario); err != nil {
		return fmt.Errorf("clear cached session: %w", err)
	}
	return nil
}
