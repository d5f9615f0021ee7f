package api

import (
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"eyewear/config"
	"eyewear/database"
	"eyewear/middleware"
	"eyewear/models"
	"eyewear/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler 后台管理处理器
type AdminHandler struct{}

// NewAdminHandler 创建后台处理器
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// AdminLoginRequest 后台登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 后台登录
// @Summary 后台登录
// @Description 校验管理账号并下发会话 Cookie
// @Tags 后台
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "登录信息"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无效的请求参数")
		return
	}

	cfg := config.GetConfig()
	if cfg.Admin.Username == "" || cfg.Admin.PasswordHash == "" {
		InternalError(c, "后台账号未配置")
		return
	}
	if req.Username != cfg.Admin.Username ||
		bcrypt.CompareHashAndPassword([]byte(cfg.Admin.PasswordHash), []byte(req.Password)) != nil {
		log.Printf("后台登录失败: user=%s ip=%s", req.Username, c.ClientIP())
		Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := middleware.GenerateAdminToken(req.Username)
	if err != nil {
		HandleError(c, err, "Error generating admin token")
		return
	}
	middleware.SetAdminCookie(c, token)
	Success(c, gin.H{"username": req.Username})
}

// Logout 后台登出
// @Summary 后台登出
// @Tags 后台
// @Produce json
// @Success 200 {object} Response "成功"
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	middleware.ClearAdminCookie(c)
	Success(c, nil)
}

// 从小程序预览页路径中提取被查看的型号，如
// /pages/watchlist/preview?model=TR90-1021
var previewModelPattern = regexp.MustCompile(`[?&]model=([^&]+)`)

func extractPreviewModel(page string) string {
	m := previewModelPattern.FindStringSubmatch(page)
	if m == nil {
		return ""
	}
	if decoded, err := url.QueryUnescape(m[1]); err == nil {
		return decoded
	}
	return m[1]
}

// extractDevice 从 UA 粗略识别设备类型，仅供后台展示
func extractDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "micromessenger"):
		return "微信"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case ua == "":
		return "未知"
	default:
		return "其他"
	}
}

// PageViewEntry 后台访问明细条目
type PageViewEntry struct {
	Page         string    `json:"page"`
	PreviewModel string    `json:"preview_model,omitempty"`
	Device       string    `json:"device"`
	IP           string    `json:"ip"`
	IPLocation   string    `json:"ip_loc"`
	CreatedAt    time.Time `json:"created_at"`
}

// 单次请求最多定位的 IP 数，避免外部限流服务拖垮页面
const maxIPLocationLookups = 100

// resolveIPLocations 为一批访问记录解析 IP 归属地
// 超出上限的 IP 不再外查，直接以原始 IP 展示
func resolveIPLocations(views []models.PageView) map[string]string {
	locs := make(map[string]string)
	for _, v := range views {
		ip := strings.TrimSpace(v.IP)
		if ip == "" {
			continue
		}
		if _, ok := locs[ip]; ok {
			continue
		}
		if len(locs) >= maxIPLocationLookups {
			locs[ip] = ip
			continue
		}
		locs[ip] = service.IPLocation(ip)
	}
	return locs
}

// UserActivity 后台单用户活动视图
type UserActivity struct {
	OpenID         string          `json:"open_id"`
	Nickname       string          `json:"nickname"`
	ReferrerOpenID string          `json:"referrer_open_id"`
	MySalesOpenID  string          `json:"my_sales_open_id"`
	IsSalesperson  bool            `json:"is_salesperson"`
	Referrals      []gin.H         `json:"referrals"`
	Favorites      []string        `json:"favorites"`
	RecentViews    []PageViewEntry `json:"recent_views"`
}

// Pageviews 用户访问明细
// @Summary 用户访问明细
// @Description 查询单个用户的资料、下线、推荐商品与最近访问记录
// @Tags 后台
// @Produce json
// @Param open_id query string true "用户 open_id"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "缺少 open_id"
// @Failure 404 {object} Response "用户不存在"
// @Router /admin/pageviews [get]
func (h *AdminHandler) Pageviews(c *gin.Context) {
	openID := strings.TrimSpace(c.Query("open_id"))
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}

	var user models.User
	if err := database.DB.Where("open_id = ?", openID).First(&user).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	var referrals []models.User
	if err := database.DB.
		Select("open_id", "nickname").
		Where("referrer_open_id = ?", openID).
		Order("created_at DESC").
		Find(&referrals).Error; err != nil {
		HandleError(c, err, "Error loading referrals")
		return
	}
	referralItems := make([]gin.H, 0, len(referrals))
	for _, r := range referrals {
		referralItems = append(referralItems, gin.H{"open_id": r.OpenID, "nickname": r.Nickname})
	}

	var favorites []string
	if err := database.DB.Model(&models.Favorite{}).
		Where("open_id = ?", openID).
		Order("created_at DESC").
		Pluck("frame_model", &favorites).Error; err != nil {
		HandleError(c, err, "Error loading favorites")
		return
	}
	if favorites == nil {
		favorites = []string{}
	}

	var views []models.PageView
	if err := database.DB.
		Where("open_id = ?", openID).
		Order("created_at DESC").
		Limit(500).
		Find(&views).Error; err != nil {
		HandleError(c, err, "Error loading pageviews")
		return
	}
	locs := resolveIPLocations(views)
	viewItems := make([]PageViewEntry, 0, len(views))
	for _, v := range views {
		viewItems = append(viewItems, PageViewEntry{
			Page:         v.Page,
			PreviewModel: extractPreviewModel(v.Page),
			Device:       extractDevice(v.UserAgent),
			IP:           v.IP,
			IPLocation:   locs[strings.TrimSpace(v.IP)],
			CreatedAt:    v.CreatedAt,
		})
	}

	Success(c, UserActivity{
		OpenID:         user.OpenID,
		Nickname:       user.Nickname,
		ReferrerOpenID: user.ReferrerOpenID,
		MySalesOpenID:  user.MySalesOpenID,
		IsSalesperson:  service.IsSalesperson(database.DB, openID),
		Referrals:      referralItems,
		Favorites:      favorites,
		RecentViews:    viewItems,
	})
}

// ShareDayGroup 按推送日期分组的分享记录
type ShareDayGroup struct {
	Date   string              `json:"date"`
	Shares []models.SalesShare `json:"shares"`
}

// SalesShares 分享记录总览
// @Summary 分享记录总览
// @Description 后台查看分享记录，按推送日期分组倒序；可按销售过滤
// @Tags 后台
// @Produce json
// @Param salesperson_open_id query string false "按销售过滤"
// @Success 200 {object} Response "成功"
// @Router /admin/sales_shares [get]
func (h *AdminHandler) SalesShares(c *gin.Context) {
	query := database.DB.Model(&models.SalesShare{})
	if salesOpenID := strings.TrimSpace(c.Query("salesperson_open_id")); salesOpenID != "" {
		query = query.Where("salesperson_open_id = ?", salesOpenID)
	}

	var shares []models.SalesShare
	if err := query.Order("push_time DESC, id DESC").Find(&shares).Error; err != nil {
		HandleError(c, err, "Error loading sales shares")
		return
	}

	// 按推送日期分组，保持倒序
	groups := make([]*ShareDayGroup, 0)
	index := map[string]*ShareDayGroup{}
	for i := range shares {
		day := shares[i].PushTime.Format("2006-01-02")
		g, ok := index[day]
		if !ok {
			g = &ShareDayGroup{Date: day, Shares: []models.SalesShare{}}
			index[day] = g
			groups = append(groups, g)
		}
		g.Shares = append(g.Shares, shares[i])
	}
	Success(c, gin.H{
		"groups": groups,
		"total":  len(shares),
	})
}
