package mocks

import (
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/shared"
	mock "github.com/stretchr/testify/mock"
)

// UpdateService is a mock type for the UpdateService type
type UpdateService struct {
	mock.Mock
}

func (_m *UpdateService) Delete(requester models.User, title string) error {
	ret := _m.Called(requester, title)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	return ret.Error(0)
}

func (_m *UpdateService) List(pageInfo shared.PageInfo, release string) (shared.Paged[models.PackageUpdate], error) {
	ret := _m.Called(pageInfo, release)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 shared.Paged[models.PackageUpdate]
	if rf, ok := ret.Get(0).(func(shared.PageInfo, string) shared.Paged[models.PackageUpdate]); ok {
		r0 = rf(pageInfo, release)
	} else {
		r0 = ret.Get(0).(shared.Paged[models.PackageUpdate])
	}

	return r0, ret.Error(1)
}

func (_m *UpdateService) Read(title string) (models.PackageUpdate, error) {
	ret := _m.Called(title)

	if len(ret) == 0 {
		panic("no return value specified for Read")
	}

	var r0 models.PackageUpdate
	if rf, ok := ret.Get(0).(func(string) models.PackageUpdate); ok {
		r0 = rf(title)
	} else {
		r0 = ret.Get(0).(models.PackageUpdate)
	}

	return r0, ret.Error(1)
}

func (_m *UpdateService) Submit(submitter models.User, form dtos.UpdateForm) (models.PackageUpdate, error) {
	ret := _m.Called(submitter, form)

	if len(ret) == 0 {
		panic("no return value specified for Submit")
	}

	var r0 models.PackageUpdate
	if rf, ok := ret.Get(0).(func(models.User, dtos.UpdateForm) models.PackageUpdate); ok {
		r0 = rf(submitter, form)
	} else {
		r0 = ret.Get(0).(models.PackageUpdate)
	}

	return r0, ret.Error(1)
}

// NewUpdateService creates a new instance of UpdateService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewUpdateService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UpdateService {
	mock := &UpdateService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
