package api

import (
	"eyewear/database"
	"eyewear/models"

	"github.com/gin-gonic/gin"
)

// SalesHandler 销售名录处理器
type SalesHandler struct{}

// NewSalesHandler 创建销售处理器
func NewSalesHandler() *SalesHandler {
	return &SalesHandler{}
}

// List 销售名录
// @Summary 销售名录
// @Description 返回全部销售（open_id 与姓名），按 ID 升序
// @Tags 销售
// @Produce json
// @Success 200 {object} Response "成功"
// @Router /api/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var sales []models.Salesperson
	if err := database.DB.Order("id").Find(&sales).Error; err != nil {
		HandleError(c, err, "Error listing salespersons")
		return
	}
	Success(c, gin.H{
		"items": sales,
		"total": len(sales),
	})
}
