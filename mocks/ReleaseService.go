package mocks

import (
	"github.com/l3montree-dev/bodhi/database/models"
	mock "github.com/stretchr/testify/mock"
)

// ReleaseService is a mock type for the ReleaseService type
type ReleaseService struct {
	mock.Mock
}

func (_m *ReleaseService) Create(r *models.Release) error {
	ret := _m.Called(r)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	return ret.Error(0)
}

func (_m *ReleaseService) List() ([]models.Release, error) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 []models.Release
	if rf, ok := ret.Get(0).(func() []models.Release); ok {
		r0 = rf()
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Release)
	}

	return r0, ret.Error(1)
}

// NewReleaseService creates a new instance of ReleaseService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewReleaseService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReleaseService {
	mock := &ReleaseService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
