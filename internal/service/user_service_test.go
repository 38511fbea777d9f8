package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{
		Username: "analyst01",
		Password: "s3cret-pass",
		Email:    "analyst@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, result.UserID)
	assert.NotEmpty(t, result.Token)

	// 用户名重复
	_, err = svc.Register(ctx, &dto.RegisterDTO{
		Username: "analyst01",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrUserUsernameExist)

	login, err := svc.Login(ctx, &dto.CredentialDTO{
		Username: "analyst01",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, result.UserID, login.UserID)

	// 密码错误与用户不存在返回同一错误
	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "analyst01", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "nobody", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestGetUserInfo(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{
		Username: "analyst02",
		Password: "s3cret-pass",
		Email:    "a2@example.com",
	})
	require.NoError(t, err)

	info, err := svc.GetUserInfo(ctx, result.UserID)
	require.NoError(t, err)
	assert.Equal(t, "analyst02", info.Username)
	assert.Equal(t, "a2@example.com", info.Email)

	_, err = svc.GetUserInfo(ctx, 98765)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
