package api

import (
	"log"
	"strings"

	"eyewear/database"
	"eyewear/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsHandler 访问埋点处理器
type AnalyticsHandler struct{}

// NewAnalyticsHandler 创建埋点处理器
func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

// PageViewRequest 页面访问上报
type PageViewRequest struct {
	OpenID  string `json:"open_id" binding:"required"`
	Page    string `json:"page" binding:"required"`
	Referer string `json:"referer"`
}

// PageView 记录一次页面访问
// @Summary 页面访问上报
// @Description 小程序端上报页面路径；顺带确保用户占位记录存在
// @Tags 埋点
// @Accept json
// @Produce json
// @Param request body PageViewRequest true "访问信息"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/analytics/pageview [post]
func (h *AnalyticsHandler) PageView(c *gin.Context) {
	var req PageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "open_id and page are required")
		return
	}
	openID := strings.TrimSpace(req.OpenID)
	page := strings.TrimSpace(req.Page)
	if openID == "" || page == "" {
		BadRequest(c, "open_id and page are required")
		return
	}
	validateOpenIDFormat(openID)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.User{OpenID: openID}).Error; err != nil {
			return err
		}
		view := models.PageView{
			OpenID:    openID,
			Page:      page,
			Referer:   strings.TrimSpace(req.Referer),
			UserAgent: c.Request.UserAgent(),
			IP:        c.ClientIP(),
		}
		return tx.Create(&view).Error
	})
	if err != nil {
		// 埋点失败不阻塞前端，记录后按成功返回
		log.Printf("Error recording pageview oid=%s: %v", openID, err)
	}
	Success(c, nil)
}
