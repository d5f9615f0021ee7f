package api

import (
	"eyewear/config"
	"eyewear/database"

	"github.com/gin-gonic/gin"
)

// SystemHandler 系统状态处理器
type SystemHandler struct {
	version string
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{version: version}
}

// Healthz 健康检查
// @Summary 健康检查
// @Description 返回服务与数据库连通状态
// @Tags 系统
// @Produce json
// @Success 200 {object} Response "成功"
// @Router /healthz [get]
func (h *SystemHandler) Healthz(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := database.DB.DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error"
	}
	Success(c, gin.H{
		"status":   "ok",
		"version":  h.version,
		"database": dbStatus,
	})
}

// Config 前端功能开关
// @Summary 前端功能开关
// @Description 小程序启动时拉取的业务开关
// @Tags 系统
// @Produce json
// @Success 200 {object} Response "成功"
// @Router /api/system/config [get]
func (h *SystemHandler) Config(c *gin.Context) {
	cfg := config.GetConfig()
	Success(c, gin.H{
		"production_mode":           cfg.Features.ProductionMode,
		"enable_customer_referrals": cfg.Features.EnableCustomerReferrals,
	})
}
