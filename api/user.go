package api

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"eyewear/database"
	"eyewear/models"
	"eyewear/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler 用户与推荐关系处理器
type UserHandler struct{}

// NewUserHandler 创建用户处理器
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// openIDPattern 微信 openid 的经验格式：28 位字母数字（偶见下划线、破折号）
var openIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{28}$`)

// validateOpenIDFormat 校验 open_id 格式；不合规仅告警记录，不中断业务
func validateOpenIDFormat(openID string) {
	if !openIDPattern.MatchString(openID) {
		log.Printf("INVALID_OPEN_ID format_or_length violation (expect length=28 alnum/_-): %q len=%d",
			openID, len(openID))
	}
}

// UpsertUserRequest 创建或更新用户请求
type UpsertUserRequest struct {
	OpenID         string `json:"open_id" binding:"required"`
	Nickname       string `json:"nickname"`
	AvatarURL      string `json:"avatar_url"`
	ReferrerOpenID string `json:"referrer_open_id"`
}

// Upsert 创建或更新用户
// @Summary 创建或更新用户
// @Description 以微信 open_id 为主键创建或更新用户资料；可在创建时携带介绍人
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body UpsertUserRequest true "用户信息"
// @Success 200 {object} Response{data=models.User} "成功"
// @Failure 400 {object} Response "参数错误或介绍人冲突"
// @Router /api/users/upsert [post]
func (h *UserHandler) Upsert(c *gin.Context) {
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "open_id is required")
		return
	}
	openID := strings.TrimSpace(req.OpenID)
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}
	validateOpenIDFormat(openID)

	nickname := strings.TrimSpace(req.Nickname)
	avatarURL := strings.TrimSpace(req.AvatarURL)
	referrerOpenID := strings.TrimSpace(req.ReferrerOpenID)

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, "open_id = ?", openID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 创建新用户时可带上介绍人；自己不能作为自己的介绍人
			if referrerOpenID == openID {
				referrerOpenID = ""
			}
			user = models.User{
				OpenID:         openID,
				Nickname:       nickname,
				AvatarURL:      avatarURL,
				ReferrerOpenID: referrerOpenID,
			}
			if err := tx.Create(&user).Error; err != nil {
				// 并发创建冲突：重新获取并走更新逻辑
				if err2 := tx.First(&user, "open_id = ?", openID).Error; err2 != nil {
					return err
				}
			} else {
				return nil
			}
		} else if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if nickname != "" {
			user.Nickname = nickname
			updates["nickname"] = nickname
		}
		if avatarURL != "" {
			user.AvatarURL = avatarURL
			updates["avatar_url"] = avatarURL
		}
		// 介绍人只允许设置一次：同值幂等，异值拒绝
		if referrerOpenID != "" {
			outcome, err := service.ResolveSetOnce(openID, user.ReferrerOpenID, referrerOpenID)
			if err != nil {
				return err
			}
			if outcome == service.SetOnceApplied {
				user.ReferrerOpenID = referrerOpenID
				updates["referrer_open_id"] = referrerOpenID
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, service.ErrSelfReference) {
			BadRequest(c, "referrer cannot be self")
			return
		}
		if errors.Is(err, service.ErrAlreadySet) {
			BadRequest(c, "referrer already set and cannot be changed")
			return
		}
		HandleError(c, err, "Error upserting user")
		return
	}
	Success(c, user)
}

// Profile 获取用户基础资料
// @Summary 获取用户资料
// @Description 返回昵称与头像；用户不存在时 data 为 null
// @Tags 用户
// @Produce json
// @Param open_id query string true "用户 open_id"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "缺少 open_id"
// @Router /api/users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	openID := strings.TrimSpace(c.Query("open_id"))
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}
	var user models.User
	err := database.DB.First(&user, "open_id = ?", openID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Success(c, nil)
		return
	}
	if err != nil {
		HandleError(c, err, "Error getting user profile")
		return
	}
	Success(c, gin.H{
		"open_id":    user.OpenID,
		"nickname":   user.Nickname,
		"avatar_url": user.AvatarURL,
	})
}

// SetReferrerRequest 设置介绍人请求
type SetReferrerRequest struct {
	OpenID         string `json:"open_id" binding:"required"`
	ReferrerOpenID string `json:"referrer_open_id" binding:"required"`
}

// SetReferrer 设置用户介绍人（仅允许设置一次）
// @Summary 设置介绍人
// @Description 介绍人只允许设置一次；同值幂等成功，异值拒绝覆盖
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body SetReferrerRequest true "关系"
// @Success 200 {object} Response{data=models.User} "成功"
// @Failure 400 {object} Response "参数错误、自指或冲突"
// @Router /api/users/referrer [post]
func (h *UserHandler) SetReferrer(c *gin.Context) {
	var req SetReferrerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "open_id and referrer_open_id are required")
		return
	}
	openID := strings.TrimSpace(req.OpenID)
	referrerOpenID := strings.TrimSpace(req.ReferrerOpenID)
	if openID == "" || referrerOpenID == "" {
		BadRequest(c, "open_id and referrer_open_id are required")
		return
	}

	user, err := service.SetReferrer(database.DB, openID, referrerOpenID)
	if err != nil {
		if errors.Is(err, service.ErrSelfReference) {
			BadRequest(c, "referrer cannot be self")
			return
		}
		if errors.Is(err, service.ErrAlreadySet) {
			BadRequest(c, "referrer already set and cannot be changed")
			return
		}
		HandleError(c, err, "Error setting referrer")
		return
	}
	Success(c, user)
}

// SetMySalesRequest 设置所属销售请求
type SetMySalesRequest struct {
	OpenID        string `json:"open_id" binding:"required"`
	MySalesOpenID string `json:"my_sales_open_id" binding:"required"`
}

// SetMySales 设置用户所属销售（仅允许设置一次）
// @Summary 设置我的销售
// @Description 所属销售只允许设置一次；同值幂等成功，异值拒绝覆盖
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body SetMySalesRequest true "关系"
// @Success 200 {object} Response{data=models.User} "成功"
// @Failure 400 {object} Response "参数错误、自指或冲突"
// @Router /api/users/mysales [post]
func (h *UserHandler) SetMySales(c *gin.Context) {
	var req SetMySalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "open_id and my_sales_open_id are required")
		return
	}
	openID := strings.TrimSpace(req.OpenID)
	mySalesOpenID := strings.TrimSpace(req.MySalesOpenID)
	if openID == "" || mySalesOpenID == "" {
		BadRequest(c, "open_id and my_sales_open_id are required")
		return
	}

	user, err := service.SetMySales(database.DB, openID, mySalesOpenID)
	if err != nil {
		if errors.Is(err, service.ErrSelfReference) {
			BadRequest(c, "my_sales cannot be self")
			return
		}
		if errors.Is(err, service.ErrAlreadySet) {
			BadRequest(c, "my_sales already set and cannot be changed")
			return
		}
		HandleError(c, err, "Error setting my sales")
		return
	}
	Success(c, user)
}

// Role 查询用户角色
// @Summary 查询用户角色
// @Description 角色来源于销售登记表；同时返回是否已分配所属销售
// @Tags 用户
// @Produce json
// @Param open_id query string true "用户 open_id"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "缺少 open_id"
// @Router /api/users/role [get]
func (h *UserHandler) Role(c *gin.Context) {
	openID := strings.TrimSpace(c.Query("open_id"))
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}

	role := "user"
	if service.IsSalesperson(database.DB, openID) {
		role = "sales"
	}

	var mySalesOpenID, mySalesName *string
	var user models.User
	if err := database.DB.First(&user, "open_id = ?", openID).Error; err == nil {
		if msid := strings.TrimSpace(user.MySalesOpenID); msid != "" {
			mySalesOpenID = &msid
			var sp models.Salesperson
			if err := database.DB.First(&sp, "open_id = ?", msid).Error; err == nil {
				if name := strings.TrimSpace(sp.Name); name != "" {
					mySalesName = &name
				}
			}
		}
	}

	Success(c, gin.H{
		"role":             role,
		"has_my_sales":     mySalesOpenID != nil,
		"my_sales_open_id": mySalesOpenID,
		"my_sales_name":    mySalesName,
	})
}

// KfContext 客服会话上下文
// @Summary 客服上下文
// @Description 返回访客的介绍人昵称及介绍人所属销售姓名；缺失环节回退“自然”
// @Tags 用户
// @Produce json
// @Param open_id query string true "访客 open_id"
// @Success 200 {object} Response{data=service.ReferralContext} "成功"
// @Failure 400 {object} Response "缺少 open_id"
// @Router /api/kf/context [get]
func (h *UserHandler) KfContext(c *gin.Context) {
	openID := strings.TrimSpace(c.Query("open_id"))
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}
	ctx, err := service.GetReferralContext(database.DB, openID)
	if err != nil {
		HandleError(c, err, "Error getting kf context")
		return
	}
	Success(c, ctx)
}

// Referrals 列出某用户的直接转介绍列表（仅一跳）
// @Summary 转介绍列表
// @Description 列出介绍人为该用户的全部用户（不做传递闭包，仅一跳）
// @Tags 用户
// @Produce json
// @Param open_id query string true "用户 open_id"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "缺少 open_id"
// @Router /api/users/referrals [get]
func (h *UserHandler) Referrals(c *gin.Context) {
	openID := strings.TrimSpace(c.Query("open_id"))
	if openID == "" {
		BadRequest(c, "open_id is required")
		return
	}

	var users []models.User
	if err := database.DB.
		Select("open_id", "nickname").
		Where("referrer_open_id = ?", openID).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		HandleError(c, err, "Error listing user referrals")
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, gin.H{"open_id": u.OpenID, "nickname": u.Nickname})
	}
	Success(c, gin.H{"items": items, "total": len(items)})
}
