package api

import (
	"errors"
	"strconv"
	"strings"

	"eyewear/config"
	"eyewear/database"
	"eyewear/models"
	"eyewear/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductHandler 商品查询处理器
type ProductHandler struct{}

// NewProductHandler 创建商品查询处理器
func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

// ProductView 商品对外序列化结构
// brand/notes 已清洗占位文本，images 为可直接访问的完整 URL
type ProductView struct {
	FrameModel       string   `json:"frame_model"`
	LensSize         float64  `json:"lens_size"`
	NoseBridgeWidth  float64  `json:"nose_bridge_width"`
	TempleLength     float64  `json:"temple_length"`
	FrameTotalLength float64  `json:"frame_total_length"`
	FrameHeight      float64  `json:"frame_height"`
	FrameMaterial    string   `json:"frame_material"`
	Weight           float64  `json:"weight"`
	Price            float64  `json:"price"`
	Brand            string   `json:"brand"`
	FrameThickness   *float64 `json:"frame_thickness"`
	Notes            string   `json:"notes"`
	Images           []string `json:"images"`
}

// cleanPlaceholderText 把导入源常见的占位字符串清洗为空值，避免前端展示奇怪文本
func cleanPlaceholderText(s string) string {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "none", "null", "undefined", "nan":
		return ""
	}
	return t
}

// buildPublicImageURL 把库中的图片相对路径/文件名转换为可直接访问的完整 URL
// 已是 http(s) 的原样返回；前缀本身为 http(s) 时直接拼接；
// 相对前缀则基于 server.base_url 组合
func buildPublicImageURL(cfg *config.Config, path string) string {
	if path == "" {
		return path
	}
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return path
	}

	prefix := cfg.Image.URLPrefix
	if prefix == "" {
		prefix = "/static/images/"
	}
	lowerPrefix := strings.ToLower(prefix)
	if strings.HasPrefix(lowerPrefix, "http://") || strings.HasPrefix(lowerPrefix, "https://") {
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
	}
	base := strings.TrimRight(cfg.Server.BaseURL, "/")
	return base + "/" + strings.Trim(prefix, "/") + "/" + strings.TrimLeft(path, "/")
}

// serializeProduct 组装对外商品结构
func serializeProduct(cfg *config.Config, p *models.Product) *ProductView {
	imgs := p.Images()
	publicImgs := make([]string, 0, len(imgs))
	for _, img := range imgs {
		publicImgs = append(publicImgs, buildPublicImageURL(cfg, img))
	}
	return &ProductView{
		FrameModel:       p.FrameModel,
		LensSize:         p.LensSize,
		NoseBridgeWidth:  p.NoseBridgeWidth,
		TempleLength:     p.TempleLength,
		FrameTotalLength: p.FrameTotalLength,
		FrameHeight:      p.FrameHeight,
		FrameMaterial:    p.FrameMaterial,
		Weight:           p.Weight,
		Price:            p.Price,
		Brand:            cleanPlaceholderText(p.Brand),
		FrameThickness:   p.FrameThickness,
		Notes:            cleanPlaceholderText(p.Notes),
		Images:           publicImgs,
	}
}

// parsePagination 解析分页参数；非数字输入是请求错误而不是降级为空结果
func parsePagination(c *gin.Context) (page, perPage int, err error) {
	page, perPage = 1, 10
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
	}
	if raw := strings.TrimSpace(c.Query("per_page")); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage, nil
}

// pageCount 总页数
func pageCount(total int64, perPage int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// List 获取商品列表
// @Summary 获取商品列表
// @Description 分页获取上架商品，支持多字段并行过滤与旧版单字段搜索
// @Tags 商品
// @Produce json
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(10)
// @Param frame_model query string false "镜架型号（忽略大小写子串匹配）"
// @Param frame_material query string false "材质标签，逗号/竖线分隔，任一命中"
// @Param price query string false "售价，单值或 lo-hi 范围"
// @Param search_field query string false "旧版搜索字段"
// @Param search_value query string false "旧版搜索值"
// @Success 200 {object} Response{data=PageData{items=[]ProductView}} "获取成功"
// @Failure 400 {object} Response "分页参数错误"
// @Router /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	cfg := config.GetConfig()

	page, perPage, err := parsePagination(c)
	if err != nil {
		BadRequest(c, "分页参数错误")
		return
	}

	// 收集原始查询参数并编译过滤谓词
	values := map[string]string{}
	for _, f := range cfg.Search.AllowedFields {
		if v := c.Query(f); v != "" {
			values[f] = v
		}
	}
	values["search_field"] = c.Query("search_field")
	values["search_value"] = c.Query("search_value")
	filter := service.CompileProductFilter(values, cfg.Search.AllowedFields, cfg.Search.DefaultField)

	query := filter.Apply(database.DB.Model(&models.Product{}).
		Where("is_active = ?", models.ActiveFlagYes))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		HandleError(c, err, "Error counting products")
		return
	}

	var products []models.Product
	if err := query.
		Order("frame_model").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		HandleError(c, err, "Error getting products")
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

// Get 获取单个商品详情
// @Summary 获取商品详情
// @Description 按镜架型号获取上架商品详情
// @Tags 商品
// @Produce json
// @Param frame_model path string true "镜架型号"
// @Success 200 {object} Response{data=ProductView} "获取成功"
// @Failure 404 {object} Response "商品不存在"
// @Router /api/products/{frame_model} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	cfg := config.GetConfig()
	frameModel := c.Param("frame_model")

	var product models.Product
	err := database.DB.
		First(&product, "frame_model = ? AND is_active = ?", frameModel, models.ActiveFlagYes).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "商品不存在")
			return
		}
		HandleError(c, err, "Error getting product "+frameModel)
		return
	}
	Success(c, serializeProduct(cfg, &product))
}
