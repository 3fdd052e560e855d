package mocks

import (
	"github.com/l3montree-dev/bodhi/database/models"
	mock "github.com/stretchr/testify/mock"
)

// AuthService is a mock type for the AuthService type
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Authenticate(token string) (models.User, error) {
	ret := _m.Called(token)

	if len(ret) == 0 {
		panic("no return value specified for Authenticate")
	}

	var r0 models.User
	if rf, ok := ret.Get(0).(func(string) models.User); ok {
		r0 = rf(token)
	} else {
		r0 = ret.Get(0).(models.User)
	}

	return r0, ret.Error(1)
}

func (_m *AuthService) CreateUser(userName string, displayName string, password string) (models.User, error) {
	ret := _m.Called(userName, displayName, password)

	if len(ret) == 0 {
		panic("no return value specified for CreateUser")
	}

	var r0 models.User
	if rf, ok := ret.Get(0).(func(string, string, string) models.User); ok {
		r0 = rf(userName, displayName, password)
	} else {
		r0 = ret.Get(0).(models.User)
	}

	return r0, ret.Error(1)
}

func (_m *AuthService) Login(userName string, password string) (models.Session, error) {
	ret := _m.Called(userName, password)

	if len(ret) == 0 {
		panic("no return value specified for Login")
	}

	var r0 models.Session
	if rf, ok := ret.Get(0).(func(string, string) models.Session); ok {
		r0 = rf(userName, password)
	} else {
		r0 = ret.Get(0).(models.Session)
	}

	return r0, ret.Error(1)
}

func (_m *AuthService) Logout(token string) error {
	ret := _m.Called(token)

	if len(ret) == 0 {
		panic("no return value specified for Logout")
	}

	return ret.Error(0)
}

func (_m *AuthService) PurgeExpiredSessions() (int64, error) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for PurgeExpiredSessions")
	}

	var r0 int64
	if rf, ok := ret.Get(0).(func() int64); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(int64)
	}

	return r0, ret.Error(1)
}

// NewAuthService creates a new instance of AuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	mock := &AuthService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
