// Package mocks provides test doubles for the hubspot client.
package mocks

import (
	"context"

	hubspot "github.com/sells-group/account-brief/pkg/hubspot"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchObjects provides a mock function with given fields: ctx, objectType, req
func (_m *MockClient) SearchObjects(ctx context.Context, objectType string, req hubspot.SearchRequest) (*hubspot.SearchResponse, error) {
	ret := _m.Called(ctx, objectType, req)

	if len(ret) == 0 {
		panic("no return value specified for SearchObjects")
	}

	var r0 *hubspot.SearchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, hubspot.SearchRequest) (*hubspot.SearchResponse, error)); ok {
		return rf(ctx, objectType, req)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*hubspot.SearchResponse)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// CreateObject provides a mock function with given fields: ctx, objectType, properties
func (_m *MockClient) CreateObject(ctx context.Context, objectType string, properties map[string]any) (*hubspot.Object, error) {
	ret := _m.Called(ctx, objectType, properties)

	if len(ret) == 0 {
		panic("no return value specified for CreateObject")
	}

	var r0 *hubspot.Object
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, map[string]any) (*hubspot.Object, error)); ok {
		return rf(ctx, objectType, properties)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*hubspot.Object)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// UpdateObject provides a mock function with given fields: ctx, objectType, id, properties
func (_m *MockClient) UpdateObject(ctx context.Context, objectType string, id string, properties map[string]any) (*hubspot.Object, error) {
	ret := _m.Called(ctx, objectType, id, properties)

	if len(ret) == 0 {
		panic("no return value specified for UpdateObject")
	}

	var r0 *hubspot.Object
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, map[string]any) (*hubspot.Object, error)); ok {
		return rf(ctx, objectType, id, properties)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*hubspot.Object)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// Associate provides a mock function with given fields: ctx, fromType, fromID, toType, toID, associationType
func (_m *MockClient) Associate(ctx context.Context, fromType string, fromID string, toType string, toID string, associationType string) error {
	ret := _m.Called(ctx, fromType, fromID, toType, toID, associationType)

	if len(ret) == 0 {
		panic("no return value specified for Associate")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, string, string, string, string) error); ok {
		return rf(ctx, fromType, fromID, toType, toID, associationType)
	}
	return ret.Error(0)
}

// PortalID provides a mock function with given fields: ctx
func (_m *MockClient) PortalID(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for PortalID")
	}

	if rf, ok := ret.Get(0).(func(context.Context) (string, error)); ok {
		return rf(ctx)
	}
	return ret.String(0), ret.Error(1)
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
