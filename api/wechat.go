package api

import (
	"errors"
	"strings"

	"eyewear/config"
	"eyewear/service"

	"github.com/gin-gonic/gin"
)

// WechatHandler 微信登录处理器
type WechatHandler struct{}

// NewWechatHandler 创建微信处理器
func NewWechatHandler() *WechatHandler {
	return &WechatHandler{}
}

// Code2SessionRequest 登录凭证交换请求
type Code2SessionRequest struct {
	Code string `json:"code" binding:"required"`
}

// Code2Session 小程序登录凭证交换
// @Summary 登录凭证交换
// @Description 用 wx.login 的临时 code 换取 openid
// @Tags 微信
// @Accept json
// @Produce json
// @Param request body Code2SessionRequest true "临时登录凭证"
// @Success 200 {object} Response "成功"
// @Failure 400 {object} Response "code 缺失或无效"
// @Failure 500 {object} Response "小程序凭证未配置"
// @Router /api/wechat/login [post]
func (h *WechatHandler) Code2Session(c *gin.Context) {
	var req Code2SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "code is required")
		return
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		BadRequest(c, "code is required")
		return
	}

	cfg := config.GetConfig()
	if cfg.Wechat.AppID == "" || cfg.Wechat.Secret == "" {
		InternalError(c, "wechat appid/secret not configured")
		return
	}

	session, err := service.Code2Session(cfg.Wechat.AppID, cfg.Wechat.Secret, code)
	if err != nil {
		var apiErr *service.WechatAPIError
		if errors.As(err, &apiErr) {
			BadRequest(c, apiErr.Error())
			return
		}
		HandleError(c, err, "Error exchanging wechat code")
		return
	}
	// session_key 不下发前端
	Success(c, gin.H{
		"openid":  session.OpenID,
		"unionid": session.UnionID,
	})
}
