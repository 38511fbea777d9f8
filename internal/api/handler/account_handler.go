package handler

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/pkg/response"
	"Beacon/internal/pkg/util"
	"Beacon/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc service.SocialAccountService
}

func NewAccountHandler(accountSvc service.SocialAccountService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
	}
}

func (s *AccountHandler) Connect(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.ConnectAccountDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	account, err := s.accountSvc.Connect(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) ListAccounts(c *gin.Context) {
	userID := c.GetUint64("user_id")
	accounts, err := s.accountSvc.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, accounts)
}

func (s *AccountHandler) Disconnect(c *gin.Context) {
	userID := c.GetUint64("user_id")
	accountID := util.StrToUint64(c.Param("account_id"))
	if accountID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.accountSvc.Disconnect(c.Request.Context(), userID, accountID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) Activate(c *gin.Context) {
	s.toggleActive(c, true)
}

func (s *AccountHandler) Deactivate(c *gin.Context) {
	s.toggleActive(c, false)
}

func (s *AccountHandler) toggleActive(c *gin.Context, active bool) {
	userID := c.GetUint64("user_id")
	accountID := util.StrToUint64(c.Param("account_id"))
	if accountID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.accountSvc.ToggleActive(c.Request.Context(), userID, accountID, active); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
