package api

import (
	"errors"
	"strings"
	"time"

	"eyewear/config"
	"eyewear/database"
	"eyewear/models"
	"eyewear/service"

	"github.com/gin-gonic/gin"
)

// FavoriteHandler 推荐（收藏）处理器
type FavoriteHandler struct{}

// NewFavoriteHandler 创建推荐处理器
func NewFavoriteHandler() *FavoriteHandler {
	return &FavoriteHandler{}
}

// AddFavoriteRequest 添加推荐请求
type AddFavoriteRequest struct {
	OpenID     string `json:"open_id" binding:"required"`
	FrameModel string `json:"frame_model" binding:"required"`
	BatchID    *int64 `json:"batch_id"` // 可选：复用已有批次
}

// Add 添加推荐（幂等）
// @Summary 添加推荐
// @Description 仅销售可操作；重复推荐不报错；可传 batch_id 续用已有批次
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body AddFavoriteRequest true "推荐信息"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 403 {object} Response "非销售身份"
// @Failure 404 {object} Response "商品不存在或未上架"
// @Router /api/favorites [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "open_id and frame_model are required")
		return
	}
	openID := strings.TrimSpace(req.OpenID)
	frameModel := strings.TrimSpace(req.FrameModel)
	if openID == "" || frameModel == "" {
		BadRequest(c, "open_id and frame_model are required")
		return
	}

	err := service.AddFavorite(database.DB, openID, frameModel, req.BatchID)
	if err != nil {
		if errors.Is(err, service.ErrNotSalesperson) {
			Forbidden(c, "only salesperson can add recommendation")
			return
		}
		if errors.Is(err, service.ErrProductNotFound) {
			NotFound(c, "商品不存在或未上架")
			return
		}
		HandleError(c, err, "Error adding favorite")
		return
	}
	Success(c, nil)
}

// RemoveFavoriteRequest 取消推荐请求
type RemoveFavoriteRequest struct {
	OpenID     string `json:"open_id" binding:"required"`
	FrameModel string `json:"frame_model" binding:"required"`
}

// Remove 取消推荐
// @Summary 取消推荐
// @Description 删除 (open_id, frame_model) 推荐条目；不存在不算错误
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body RemoveFavoriteRequest true "推荐信息"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/favorites [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	var req RemoveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "open_id and frame_model are required")
		return
	}
	openID := strings.TrimSpace(req.OpenID)
	frameModel := strings.TrimSpace(req.FrameModel)
	if openID == "" || frameModel == "" {
		BadRequest(c, "open_id and frame_model are required")
		return
	}
	if err := service.RemoveFavorite(database.DB, openID, frameModel); err != nil {
		HandleError(c, err, "Error removing favorite")
		return
	}
	Success(c, nil)
}

// FavoriteBatch 推荐批次分组
type FavoriteBatch struct {
	BatchID   *int64         `json:"batch_id"`   // legacy 分组为 null
	BatchTime *time.Time     `json:"batch_time"` // legacy 分组为 null
	Items     []*ProductView `json:"items"`
}

// List 列出某用户的推荐商品
// @Summary 列出推荐
// @Description 默认分页返回上架商品；group_by=batch 时按批次分组返回全部
// @Tags 推荐
// @Produce json
// @Param open_id query string true "用户 open_id"
// @Param group_by query string false "传 batch 启用批次分组" Enums(batch)
// @Param page query int false "页码（非分组模式）"
// @Param per_page query int false "每页数量（非分组模式）"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	openID := strings.TrimSpace(c.Query("open_id"))
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}

	if strings.EqualFold(strings.TrimSpace(c.Query("group_by")), "batch") {
		h.listGrouped(c, openID)
		return
	}

	cfg := config.GetConfig()
	page, perPage, err := parsePagination(c)
	if err != nil {
		BadRequest(c, "分页参数错误")
		return
	}

	// 以推荐表为子查询，仅返回上架商品
	sub := database.DB.Model(&models.Favorite{}).
		Select("frame_model").
		Where("open_id = ?", openID)
	query := database.DB.Model(&models.Product{}).
		Where("is_active = ?", models.ActiveFlagYes).
		Where("frame_model IN (?)", sub)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		HandleError(c, err, "Error listing favorites")
		return
	}
	var products []models.Product
	if err := query.
		Order("frame_model").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		HandleError(c, err, "Error listing favorites")
		return
	}

	items := make([]*ProductView, 0, len(products))
	for i := range products {
		items = append(items, serializeProduct(cfg, &products[i]))
	}
	Success(c, PageData{
		Items:       items,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	})
}

// listGrouped 批次分组模式：非 legacy 批次按时间倒序，legacy 殿后；
// 空批次（成员商品全部下架）被丢弃
func (h *FavoriteHandler) listGrouped(c *gin.Context, openID string) {
	cfg := config.GetConfig()

	var favs []models.Favorite
	if err := database.DB.
		Where("open_id = ?", openID).
		Order("batch_time IS NULL, batch_time DESC, created_at DESC").
		Find(&favs).Error; err != nil {
		HandleError(c, err, "Error listing favorites")
		return
	}
	if len(favs) == 0 {
		Success(c, gin.H{"batches": []FavoriteBatch{}})
		return
	}

	frameModels := make([]string, 0, len(favs))
	for _, f := range favs {
		frameModels = append(frameModels, f.FrameModel)
	}
	var products []models.Product
	if err := database.DB.
		Where("frame_model IN ? AND is_active = ?", frameModels, models.ActiveFlagYes).
		Find(&products).Error; err != nil {
		HandleError(c, err, "Error listing favorites")
		return
	}
	prodMap := make(map[string]*ProductView, len(products))
	for i := range products {
		prodMap[products[i].FrameModel] = serializeProduct(cfg, &products[i])
	}

	// 按 batch_id 分组，保持查询顺序；未分配批次的旧数据归入 legacy
	batches := make([]*FavoriteBatch, 0)
	index := map[int64]*FavoriteBatch{}
	var legacy *FavoriteBatch
	for _, f := range favs {
		prod := prodMap[f.FrameModel]
		if f.BatchID == nil {
			if legacy == nil {
				legacy = &FavoriteBatch{Items: []*ProductView{}}
			}
			if prod != nil {
				legacy.Items = append(legacy.Items, prod)
			}
			continue
		}
		b, ok := index[*f.BatchID]
		if !ok {
			b = &FavoriteBatch{BatchID: f.BatchID, BatchTime: f.BatchTime, Items: []*ProductView{}}
			index[*f.BatchID] = b
			batches = append(batches, b)
		}
		if prod != nil {
			b.Items = append(b.Items, prod)
		}
	}

	out := make([]*FavoriteBatch, 0, len(batches)+1)
	for _, b := range batches {
		if len(b.Items) > 0 {
			out = append(out, b)
		}
	}
	if legacy != nil && len(legacy.Items) > 0 {
		out = append(out, legacy)
	}
	Success(c, gin.H{"batches": out})
}

// ListIDs 获取用户推荐的型号列表
// @Summary 推荐型号列表
// @Description 返回全部已推荐的镜架型号（不过滤上架状态）
// @Tags 推荐
// @Produce json
// @Param open_id query string true "用户 open_id"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "缺少 open_id"
// @Router /api/favorites/ids [get]
func (h *FavoriteHandler) ListIDs(c *gin.Context) {
	openID := strings.TrimSpace(c.Query("open_id"))
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}
	var ids []string
	if err := database.DB.Model(&models.Favorite{}).
		Where("open_id = ?", openID).
		Pluck("frame_model", &ids).Error; err != nil {
		HandleError(c, err, "Error listing favorite ids")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	Success(c, gin.H{"items": ids})
}

// AddFavoritesBatchRequest 批量添加推荐请求
type AddFavoritesBatchRequest struct {
	OpenID      string   `json:"open_id" binding:"required"`
	FrameModels []string `json:"frame_models" binding:"required"`
	Reset       bool     `json:"reset"` // 仅销售身份生效，整批替换
}

// AddBatch 批量添加推荐
// @Summary 批量添加推荐
// @Description reset=true 且操作者为销售时先清空再整批写入；否则幂等添加。无效型号被忽略
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body AddFavoritesBatchRequest true "批量推荐"
// @Success 200 {object} Response{data=service.BatchResult} "成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/favorites/batch [post]
func (h *FavoriteHandler) AddBatch(c *gin.Context) {
	var req AddFavoritesBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "open_id and frame_models(list) are required")
		return
	}
	openID := strings.TrimSpace(req.OpenID)
	if openID == "" {
		BadRequest(c, "open_id and frame_models(list) are required")
		return
	}

	result, err := service.AddFavoritesBatch(database.DB, openID, req.FrameModels, req.Reset)
	if err != nil {
		HandleError(c, err, "Error adding favorites batch")
		return
	}
	Success(c, result)
}
