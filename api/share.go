package api

import (
	"errors"
	"strconv"
	"strings"

	"eyewear/database"
	"eyewear/models"
	"eyewear/service"

	"github.com/gin-gonic/gin"
)

// ShareHandler 销售分享记录处理器
type ShareHandler struct{}

// NewShareHandler 创建分享处理器
func NewShareHandler() *ShareHandler {
	return &ShareHandler{}
}

// CreatePushRequest 创建分享记录请求
type CreatePushRequest struct {
	SalespersonOpenID string   `json:"salesperson_open_id" binding:"required"`
	ProductList       []string `json:"product_list" binding:"required"`
	Note              string   `json:"note"`
	DedupKey          string   `json:"dedup_key"`
}

// CreatePush 创建分享记录
// @Summary 创建分享记录
// @Description 销售生成一次分享；携带 dedup_key 时按键幂等
// @Tags 分享
// @Accept json
// @Produce json
// @Param request body CreatePushRequest true "分享信息"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/shares/push [post]
func (h *ShareHandler) CreatePush(c *gin.Context) {
	var req CreatePushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "salesperson_open_id and product_list are required")
		return
	}
	salesOpenID := strings.TrimSpace(req.SalespersonOpenID)
	if salesOpenID == "" {
		BadRequest(c, "salesperson_open_id and product_list are required")
		return
	}

	rec, dedup, err := service.CreateShare(database.DB, salesOpenID, req.ProductList, req.Note, strings.TrimSpace(req.DedupKey))
	if err != nil {
		if errors.Is(err, service.ErrSalespersonNotFound) {
			BadRequest(c, "salesperson not found")
			return
		}
		if errors.Is(err, service.ErrEmptyProductList) {
			BadRequest(c, "product_list cannot be empty")
			return
		}
		HandleError(c, err, "Error creating share")
		return
	}
	Success(c, gin.H{
		"share": rec,
		"dedup": dedup,
	})
}

// OpenRequest 打开分享请求
type OpenRequest struct {
	CustomerOpenID string `json:"customer_open_id"`
	DedupKey       string `json:"dedup_key"`
}

// Open 记录分享被打开（按记录 ID）
// @Summary 记录分享打开
// @Description 客户打开分享链接时上报；同一客户重复打开不重复计数
// @Tags 分享
// @Accept json
// @Produce json
// @Param id path int true "分享记录 ID"
// @Param request body OpenRequest true "客户信息"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/shares/{id}/open [post]
func (h *ShareHandler) Open(c *gin.Context) {
	shareID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid share id")
		return
	}
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "customer_open_id is required")
		return
	}
	customer := strings.TrimSpace(req.CustomerOpenID)
	if customer == "" {
		BadRequest(c, "customer_open_id is required")
		return
	}

	rec, updated, err := service.RecordOpenByID(database.DB, uint(shareID), customer)
	if err != nil {
		if errors.Is(err, service.ErrShareNotFound) {
			NotFound(c, "share not found")
			return
		}
		HandleError(c, err, "Error recording share open")
		return
	}
	Success(c, gin.H{
		"share":   rec,
		"updated": updated,
	})
}

// OpenByDedup 记录分享被打开（按 dedup_key）
// @Summary 按去重键记录分享打开
// @Description 客户端没有记录 ID 时按创建时生成的 dedup_key 上报
// @Tags 分享
// @Accept json
// @Produce json
// @Param request body OpenRequest true "dedup_key 与客户信息"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/shares/open [post]
func (h *ShareHandler) OpenByDedup(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "dedup_key and customer_open_id are required")
		return
	}
	dedupKey := strings.TrimSpace(req.DedupKey)
	customer := strings.TrimSpace(req.CustomerOpenID)
	if dedupKey == "" || customer == "" {
		BadRequest(c, "dedup_key and customer_open_id are required")
		return
	}

	rec, updated, err := service.RecordOpenByDedupKey(database.DB, dedupKey, customer)
	if err != nil {
		if errors.Is(err, service.ErrShareNotFound) {
			NotFound(c, "share not found by dedup_key")
			return
		}
		HandleError(c, err, "Error recording share open")
		return
	}
	Success(c, gin.H{
		"share":   rec,
		"updated": updated,
	})
}

// MarkSent 标记分享已发出
// @Summary 标记分享已发出
// @Description 每次调用累加 sent_count 并刷新发送时间
// @Tags 分享
// @Produce json
// @Param id path int true "分享记录 ID"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/shares/{id}/sent [post]
func (h *ShareHandler) MarkSent(c *gin.Context) {
	shareID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid share id")
		return
	}
	rec, err := service.MarkShareSent(database.DB, uint(shareID))
	if err != nil {
		if errors.Is(err, service.ErrShareNotFound) {
			NotFound(c, "share not found")
			return
		}
		HandleError(c, err, "Error marking share sent")
		return
	}
	Success(c, rec)
}

// List 查询已发出的分享记录
// @Summary 查询分享记录
// @Description 仅返回已发出记录；可按销售或打开客户过滤，按 ID 倒序分页
// @Tags 分享
// @Produce json
// @Param salesperson_open_id query string false "按销售过滤"
// @Param customer_open_id query string false "按打开客户过滤"
// @Param page query int false "页码"
// @Param per_page query int false "每页数量"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "分页参数错误"
// @Router /api/shares [get]
func (h *ShareHandler) List(c *gin.Context) {
	page, perPage, err := parsePagination(c)
	if err != nil {
		BadRequest(c, "分页参数错误")
		return
	}
	salesOpenID := strings.TrimSpace(c.Query("salesperson_open_id"))
	customer := strings.TrimSpace(c.Query("customer_open_id"))

	query := database.DB.Model(&models.SalesShare{}).Where("is_sent = ?", true)
	if salesOpenID != "" {
		query = query.Where("salesperson_open_id = ?", salesOpenID)
	}
	if customer != "" {
		// LIKE 只做预筛；JSON 文本命中子串不等于成员命中，取回后再精确校验
		query = query.Where("customer_open_ids LIKE ?", "%"+escapeLikeValue(customer)+"%")
	}

	var shares []models.SalesShare
	if err := query.Order("id DESC").Find(&shares).Error; err != nil {
		HandleError(c, err, "Error listing shares")
		return
	}
	if customer != "" {
		filtered := shares[:0]
		for i := range shares {
			if shares[i].CustomerOpenIDs.Contains(customer) {
				filtered = append(filtered, shares[i])
			}
		}
		shares = filtered
	}

	total := int64(len(shares))
	start := (page - 1) * perPage
	if start > len(shares) {
		start = len(shares)
	}
	end := start + perPage
	if end > len(shares) {
		end = len(shares)
	}
	Success(c, PageData{
		Items:       shares[start:end],
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	})
}

func escapeLikeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
