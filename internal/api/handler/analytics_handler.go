package handler

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/response"
	"Beacon/internal/pkg/util"
	"Beacon/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
	snapshotSvc  service.SnapshotService
	exportSvc    service.ExportService
}

func NewAnalyticsHandler(
	analyticsSvc service.AnalyticsService,
	snapshotSvc service.SnapshotService,
	exportSvc service.ExportService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		snapshotSvc:  snapshotSvc,
		exportSvc:    exportSvc,
	}
}

func (s *AnalyticsHandler) GetDashboard(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.AnalyticsQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	dashboard, err := s.analyticsSvc.GetDashboard(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dashboard)
}

func (s *AnalyticsHandler) GetFollowerGrowth(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.AnalyticsQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	growth, err := s.analyticsSvc.GetFollowerGrowth(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, growth)
}

func (s *AnalyticsHandler) GetTopPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	limit := consts.TopPostsDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		limit = parsed
	}

	posts, err := s.analyticsSvc.GetTopPosts(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *AnalyticsHandler) GetPlatformBreakdown(c *gin.Context) {
	userID := c.GetUint64("user_id")
	stats, err := s.analyticsSvc.GetPlatformBreakdown(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *AnalyticsHandler) CreateSnapshot(c *gin.Context) {
	userID := c.GetUint64("user_id")
	accountID := util.StrToUint64(c.Param("account_id"))
	if accountID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	snapshot, err := s.snapshotSvc.CreateDailySnapshotForUser(c.Request.Context(), userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshot)
}

func (s *AnalyticsHandler) Export(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.AnalyticsQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.exportSvc.ExportSnapshots(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
