// Package mocks provides test doubles for the apollo client.
package mocks

import (
	"context"

	apollo "github.com/sells-group/account-brief/pkg/apollo"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchPeople provides a mock function with given fields: ctx, req
func (_m *MockClient) SearchPeople(ctx context.Context, req apollo.PeopleSearchRequest) (*apollo.PeopleSearchResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for SearchPeople")
	}

	var r0 *apollo.PeopleSearchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, apollo.PeopleSearchRequest) (*apollo.PeopleSearchResponse, error)); ok {
		return rf(ctx, req)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*apollo.PeopleSearchResponse)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
