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
	"sync"
	"testing"
	"time"

	"github.com/l3montree-dev/bodhi/database"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/database/repositories"
	"github.com/l3montree-dev/bodhi/integrationtestutil"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*authService, *gorm.DB) {
	db := integrationtestutil.InitSQLiteDB(t)
	integrationtestutil.CreateUser(t, db, "guest", "Guest", "guest")
	return NewAuthService(repositories.NewUserRepository(db), repositories.NewSessionRepository(db), database.NewMemoryBroker()), db
}

func TestLogin(t *testing.T) {
	t.Run("should open a session for valid credentials", func(t *testing.T) {
		s, _ := setupAuthService(t)

		session, err := s.Login("guest", "guest")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "guest", session.User.UserName)
		assert.True(t, session.ExpiresAt.After(time.Now()))
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		s, db := setupAuthService(t)

		_, err := s.Login("guest", "foo")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

		var n int64
		require.NoError(t, db.Model(&models.Session{}).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("should reject an unknown user the same way", func(t *testing.T) {
		s, _ := setupAuthService(t)

		_, err := s.Login("nobody", "guest")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("should resolve the token of a login", func(t *testing.T) {
		s, _ := setupAuthService(t)
		session, err := s.Login("guest", "guest")
		require.NoError(t, err)

		user, err := s.Authenticate(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "guest", user.UserName)

		// second lookup is served from the cache
		user, err = s.Authenticate(session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.UserID, user.ID)
	})

	t.Run("should reject empty and unknown tokens", func(t *testing.T) {
		s, _ := setupAuthService(t)

		_, err := s.Authenticate("")
		assert.ErrorIs(t, err, shared.ErrUnauthenticated)

		_, err = s.Authenticate("does-not-exist")
		assert.ErrorIs(t, err, shared.ErrUnauthenticated)
	})

	t.Run("should reject and remove an expired session", func(t *testing.T) {
		s, db := setupAuthService(t)
		session, err := s.Login("guest", "guest")
		require.NoError(t, err)

		s.now = func() time.Time {
			return session.ExpiresAt.Add(time.Second)
		}

		_, err = s.Authenticate(session.Token)
		assert.ErrorIs(t, err, shared.ErrUnauthenticated)

		var n int64
		require.NoError(t, db.Model(&models.Session{}).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("should reject the token after logout", func(t *testing.T) {
		s, _ := setupAuthService(t)
		session, err := s.Login("guest", "guest")
		require.NoError(t, err)
		_, err = s.Authenticate(session.Token)
		require.NoError(t, err)

		require.NoError(t, s.Logout(session.Token))

		_, err = s.Authenticate(session.Token)
		assert.ErrorIs(t, err, shared.ErrUnauthenticated)
	})
}

func TestAuthenticateConcurrently(t *testing.T) {
	s, _ := setupAuthService(t)
	session, err := s.Login("guest", "guest")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := s.Authenticate(session.Token)
			if err == nil && user.UserName != "guest" {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.True(t, s.cache.Contains(session.Token))
}

func TestSessionRevocation(t *testing.T) {
	db := integrationtestutil.InitSQLiteDB(t)
	integrationtestutil.CreateUser(t, db, "guest", "Guest", "guest")
	broker := database.NewMemoryBroker()

	// two instances sharing the database and the broker
	first := NewAuthService(repositories.NewUserRepository(db), repositories.NewSessionRepository(db), broker)
	second := NewAuthService(repositories.NewUserRepository(db), repositories.NewSessionRepository(db), broker)

	session, err := first.Login("guest", "guest")
	require.NoError(t, err)
	_, err = second.Authenticate(session.Token)
	require.NoError(t, err)
	assert.True(t, second.cache.Contains(session.Token))

	require.NoError(t, first.Logout(session.Token))

	assert.Eventually(t, func() bool {
		return !second.cache.Contains(session.Token)
	}, time.Second, 10*time.Millisecond)

	_, err = second.Authenticate(session.Token)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestPurgeExpiredSessions(t *testing.T) {
	s, _ := setupAuthService(t)
	_, err := s.Login("guest", "guest")
	require.NoError(t, err)
	fresh, err := s.Login("guest", "guest")
	require.NoError(t, err)

	deleted, err := s.PurgeExpiredSessions()
	require.NoError(t, err)
	assert.Zero(t, deleted)

	s.now = func() time.Time {
		return fresh.ExpiresAt.Add(time.Minute)
	}
	deleted, err = s.PurgeExpiredSessions()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestCreateUser(t *testing.T) {
	s, _ := setupAuthService(t)

	user, err := s.CreateUser("lmacken", "Luke Macken", "secret")
	require.NoError(t, err)
	assert.True(t, user.CheckPassword("secret"))

	_, err = s.Login("lmacken", "secret")
	assert.NoError(t, err)

	_, err = s.CreateUser("lmacken", "Luke Macken", "secret")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = s.CreateUser("", "", "secret")
	assert.ErrorIs(t, err, shared.ErrInvalidValue)
}
