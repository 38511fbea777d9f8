package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/security"
	"Beacon/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.LoginResultDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	GetUserInfo(ctx context.Context, userID uint64) (*dto.UserInfoDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.LoginResultDTO, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserUsernameExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: &req.Username,
		Password: &hashed,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return &dto.LoginResultDTO{
		UserID:   user.ID,
		Username: req.Username,
		Token:    token,
	}, nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	// 用户不存在与密码错误返回同一错误，避免暴露用户名是否注册
	if user == nil || user.Password == nil {
		return nil, ErrPasswordIncorrect
	}
	if !security.CheckPassword(req.Password, *user.Password) {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		UserID:   user.ID,
		Username: req.Username,
		Token:    token,
	}, nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, userID uint64) (*dto.UserInfoDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	info := &dto.UserInfoDTO{
		ID:        user.ID,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.Username != nil {
		info.Username = *user.Username
	}
	if user.Email != nil {
		info.Email = *user.Email
	}
	return info, nil
}
