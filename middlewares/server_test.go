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

package middlewares

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/l3montree-dev/bodhi/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	e := Server()
	e.POST("/http-error/", func(ctx echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, shared.MessageInvalidCredentials)
	})
	e.POST("/field-error/", func(ctx echo.Context) error {
		fe := shared.FieldErrors{}
		fe.Add("builds", shared.MessageInvalidBuildFormat, shared.ErrInvalidBuildFormat)
		return fe
	})
	e.GET("/panic/", func(ctx echo.Context) error {
		panic("boom")
	})

	t.Run("should render http errors as message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		// trailing slash is added by the server
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/http-error", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, shared.MessageInvalidCredentials, body["message"])
	})

	t.Run("should render field errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/field-error/", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"validation failed","errors":{"builds":"Invalid package name; must be in package-version-release format"}}`, rec.Body.String())
	})

	t.Run("should recover from panics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})
	return &buf
}

func TestRequestLogging(t *testing.T) {
	e := Server()
	e.POST("/login/", func(ctx echo.Context) error {
		if ctx.QueryParam("password") != "guest" {
			return echo.NewHTTPError(http.StatusForbidden, shared.MessageInvalidCredentials)
		}
		return ctx.NoContent(http.StatusOK)
	})

	t.Run("should not log the password of a successful login", func(t *testing.T) {
		logs := captureLogs(t)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login?tg_format=json&user_name=guest&password=guest", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, logs.String(), "handled request")
		assert.Contains(t, logs.String(), "user_name=guest")
		assert.NotContains(t, logs.String(), "password=guest")
		assert.Contains(t, logs.String(), "password=REDACTED")
	})

	t.Run("should not log the password of a failed login and log it once", func(t *testing.T) {
		logs := captureLogs(t)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login/?user_name=guest&password=guesz", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.NotContains(t, logs.String(), "guesz")
		assert.Equal(t, 1, strings.Count(logs.String(), shared.MessageInvalidCredentials))
	})
}

func TestLoggableURL(t *testing.T) {
	u, err := url.Parse("/updates/login/?user_name=guest&password=secret")
	require.NoError(t, err)
	assert.Equal(t, "/updates/login/?password=REDACTED&user_name=guest", loggableURL(u))

	u, err = url.Parse("/updates/")
	require.NoError(t, err)
	assert.Equal(t, "/updates/", loggableURL(u))
}
