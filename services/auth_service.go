// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/bodhi/database"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/monitoring"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/utils"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	defaultSessionTTL = 24 * time.Hour
	sessionCacheSize  = 4096
	sessionCacheTTL   = time.Minute
)

type cachedSession struct {
	user      models.User
	expiresAt time.Time
}

type authService struct {
	userRepository    shared.UserRepository
	sessionRepository shared.SessionRepository
	broker            shared.PubSubBroker

	sessionTTL time.Duration
	// avoids a database roundtrip for every authenticated request
	cache *expirable.LRU[string, cachedSession]
	// concurrent requests carrying the same token share one lookup
	lookups singleflight.Group
	now     func() time.Time
}

type sessionRevokedMessage struct {
	token string
}

func (m sessionRevokedMessage) GetChannel() shared.PubSubChannel {
	return shared.SessionRevoked
}

func (m sessionRevokedMessage) GetPayload() map[string]any {
	return map[string]any{
		"token": m.token,
	}
}

func NewAuthService(userRepository shared.UserRepository, sessionRepository shared.SessionRepository, broker shared.PubSubBroker) *authService {
	s := &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		broker:            broker,
		sessionTTL:        utils.EnvDuration("SESSION_TTL", defaultSessionTTL),
		cache:             expirable.NewLRU[string, cachedSession](sessionCacheSize, nil, sessionCacheTTL),
		now:               time.Now,
	}

	// other instances keep a cached copy of the session until they hear about the logout
	ch, err := broker.Subscribe(shared.SessionRevoked)
	if err != nil {
		slog.Warn("could not subscribe to session revocations, cached sessions expire after the cache ttl", "err", err)
		return s
	}
	go s.listenForRevocations(ch)
	return s
}

func (s *authService) listenForRevocations(ch <-chan map[string]any) {
	for payload := range ch {
		if token, ok := payload["token"].(string); ok {
			s.cache.Remove(token)
		}
	}
}

// Login verifies the credentials and opens a new session.
// Unknown users and wrong passwords are indistinguishable for the caller.
func (s *authService) Login(userName, password string) (models.Session, error) {
	user, err := s.userRepository.FindByUserName(userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.LoginAttemptsAmount.WithLabelValues("unknown_user").Inc()
			return models.Session{}, shared.ErrInvalidCredentials
		}
		return models.Session{}, fmt.Errorf("could not fetch user: %w", err)
	}

	if !user.CheckPassword(password) {
		monitoring.LoginAttemptsAmount.WithLabelValues("wrong_password").Inc()
		return models.Session{}, shared.ErrInvalidCredentials
	}

	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessionRepository.Create(nil, &session); err != nil {
		return models.Session{}, fmt.Errorf("could not create session: %w", err)
	}
	session.User = user

	monitoring.LoginAttemptsAmount.WithLabelValues("success").Inc()
	slog.Info("user logged in", "user", user.UserName)
	return session, nil
}

func (s *authService) Logout(token string) error {
	if token == "" {
		return nil
	}
	s.cache.Remove(token)
	if err := s.sessionRepository.DeleteByToken(nil, token); err != nil {
		return err
	}

	if err := s.broker.Publish(context.Background(), sessionRevokedMessage{token: token}); err != nil {
		slog.Warn("could not publish session revocation", "err", err)
	}
	return nil
}

// Authenticate resolves a session token to its user.
// Missing, unknown and expired tokens all fail with shared.ErrUnauthenticated.
func (s *authService) Authenticate(token string) (models.User, error) {
	if token == "" {
		return models.User{}, shared.ErrUnauthenticated
	}

	now := s.now()
	if cached, ok := s.cache.Get(token); ok {
		if now.Before(cached.expiresAt) {
			return cached.user, nil
		}
		s.cache.Remove(token)
	}

	v, err, deduplicated := s.lookups.Do(token, func() (any, error) {
		return s.sessionRepository.FindByToken(token)
	})
	if deduplicated {
		slog.Debug("deduplicated session lookup")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, shared.ErrUnauthenticated
		}
		return models.User{}, fmt.Errorf("could not fetch session: %w", err)
	}
	session := v.(models.Session)

	if session.Expired(now) {
		if err := s.sessionRepository.DeleteByToken(nil, token); err != nil {
			slog.Warn("could not delete expired session", "err", err)
		}
		return models.User{}, shared.ErrUnauthenticated
	}

	s.cache.Add(token, cachedSession{user: session.User, expiresAt: session.ExpiresAt})
	return session.User, nil
}

func (s *authService) CreateUser(userName, displayName, password string) (models.User, error) {
	req := dtos.UserCreateRequest{UserName: userName, DisplayName: displayName, Password: password}
	fieldErrors, err := shared.ValidateStruct(req)
	if err != nil {
		return models.User{}, err
	}
	if err := fieldErrors.OrNil(); err != nil {
		return models.User{}, err
	}

	user := models.User{UserName: userName, DisplayName: displayName}
	if err := user.SetPassword(password); err != nil {
		return models.User{}, fmt.Errorf("could not hash password: %w", err)
	}

	if err := s.userRepository.Create(nil, &user); err != nil {
		if database.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("user %s: %w", userName, shared.ErrAlreadyExists)
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *authService) PurgeExpiredSessions() (int64, error) {
	s.cache.Purge()
	return s.sessionRepository.DeleteExpired(nil, s.now())
}
