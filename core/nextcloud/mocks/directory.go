package mocks

import (
	"context"

	"nc-usersync/core/nextcloud"

	"github.com/stretchr/testify/mock"
)

// Directory is a mock implementation of nextcloud.Directory
type Directory struct {
	mock.Mock
}

func (m *Directory) ListUsers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]string); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Directory) GetUser(ctx context.Context, username string) (nextcloud.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(nextcloud.User), args.Error(1)
}

func (m *Directory) CreateUser(ctx context.Context, req nextcloud.CreateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *Directory) EditUser(ctx context.Context, username, key, value string) error {
	args := m.Called(ctx, username, key, value)
	return args.Error(0)
}

func (m *Directory) EnableUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *Directory) DisableUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *Directory) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *Directory) ListGroups(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if groups, ok := args.Get(0).([]string); ok {
		return groups, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Directory) CreateGroup(ctx context.Context, group string) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *Directory) AddUserToGroup(ctx context.Context, username, group string) error {
	args := m.Called(ctx, username, group)
	return args.Error(0)
}

func (m *Directory) RemoveUserFromGroup(ctx context.Context, username, group string) error {
	args := m.Called(ctx, username, group)
	return args.Error(0)
}

func (m *Directory) PromoteSubadmin(ctx context.Context, username, group string) error {
	args := m.Called(ctx, username, group)
	return args.Error(0)
}

func (m *Directory) DemoteSubadmin(ctx context.Context, username, group string) error {
	args := m.Called(ctx, username, group)
	return args.Error(0)
}
