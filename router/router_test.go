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

package router

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/l3montree-dev/bodhi/cmd/bodhi/api"
	"github.com/l3montree-dev/bodhi/controllers"
	"github.com/l3montree-dev/bodhi/database"
	"github.com/l3montree-dev/bodhi/database/repositories"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/integrationtestutil"
	"github.com/l3montree-dev/bodhi/middlewares"
	"github.com/l3montree-dev/bodhi/services"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *echo.Echo {
	db := integrationtestutil.InitSQLiteDB(t)
	integrationtestutil.CreateUser(t, db, "guest", "Guest", "guest")
	integrationtestutil.CreateFedora7(t, db)

	userRepository := repositories.NewUserRepository(db)
	sessionRepository := repositories.NewSessionRepository(db)
	releaseRepository := repositories.NewReleaseRepository(db)
	updateRepository := repositories.NewUpdateRepository(db)

	authService := services.NewAuthService(userRepository, sessionRepository, database.NewMemoryBroker())
	updateService := services.NewUpdateService(updateRepository, releaseRepository)
	releaseService := services.NewReleaseService(releaseRepository)

	srv := api.Server{Echo: middlewares.Server()}
	sessionController := controllers.NewSessionController(authService)
	root := NewRootRouter(srv, db, nil, authService, sessionController)
	NewUpdatesRouter(root, sessionController, controllers.NewUpdateController(updateService))
	NewReleaseRouter(root, controllers.NewReleaseController(releaseService))

	return srv.Echo
}

func do(e *echo.Echo, method, target string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if values != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	rec := do(e, http.MethodPost, "/updates/login", url.Values{
		"user_name": {"guest"},
		"password":  {"guest"},
		"login":     {"Login"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middlewares.SessionCookieName() {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	e := setupServer(t)
	rec := do(e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestSaveRequiresSession(t *testing.T) {
	e := setupServer(t)

	rec := do(e, http.MethodPost, "/updates/save", url.Values{"builds": {"foo-1.0-1.fc7"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/whoami", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginSaveRoundtrip(t *testing.T) {
	e := setupServer(t)
	cookie := login(t, e)

	rec := do(e, http.MethodGet, "/whoami", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "guest")

	rec = do(e, http.MethodPost, "/updates/save", url.Values{
		"builds":  {"TurboGears-1.0.2.2-2.fc7"},
		"release": {"Fedora 7"},
		"type":    {"bugfix"},
		"bugs":    {""},
		"cves":    {"CVE-2007-1234"},
		"notes":   {"Foo’bar"},
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dtos.UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "TurboGears-1.0.2.2-2.fc7", resp.Update.Title)
	assert.Equal(t, "security", resp.Update.Type)
	assert.Equal(t, "Foo’bar", resp.Update.Notes)

	rec = do(e, http.MethodGet, "/updates/"+url.PathEscape(resp.Update.Title), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the same build cannot be submitted twice
	rec = do(e, http.MethodPost, "/updates/save", url.Values{
		"builds":  {"TurboGears-1.0.2.2-2.fc7"},
		"release": {"Fedora 7"},
		"type":    {"bugfix"},
	}, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPost, "/updates/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/whoami", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaveValidationErrors(t *testing.T) {
	e := setupServer(t)
	cookie := login(t, e)

	rec := do(e, http.MethodPost, "/updates/save", url.Values{
		"builds":  {"foobar"},
		"release": {"Foobar 1"},
		"type":    {"foo"},
	}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dtos.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, shared.MessageInvalidBuildFormat, resp.Errors["builds"])
	assert.Equal(t, "Value must be one of: Fedora 7 (not 'Foobar 1')", resp.Errors["release"])
	assert.Contains(t, resp.Errors, "type")
}

func TestListReleases(t *testing.T) {
	e := setupServer(t)
	rec := do(e, http.MethodGet, "/releases", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fedora 7")
}

func TestQueryStringLoginKeepsPasswordOutOfLogs(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	e := setupServer(t)

	rec := do(e, http.MethodPost, "/updates/login?tg_format=json&login=Login&forward_url=/updates/&user_name=guest&password=guest", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/updates/login?tg_format=json&login=Login&user_name=guest&password=guesz", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	assert.Contains(t, logs.String(), "handled request")
	assert.NotContains(t, logs.String(), "password=guest")
	assert.NotContains(t, logs.String(), "guesz")
}
