package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// 微信小程序登录凭证交换
// 小程序端 wx.login 拿到临时 code，服务端换取稳定的 openid 与 session_key

const wechatCode2SessionURL = "https://api.weixin.qq.com/sns/jscode2session"

// 登录提供方调用使用固定短超时；失败不在服务端重试，由调用方决定
var wechatHTTPClient = &http.Client{Timeout: 5 * time.Second}

// WechatSession code2session 的返回数据
type WechatSession struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	UnionID    string `json:"unionid,omitempty"`
}

// WechatAPIError 微信侧返回的业务错误（errcode != 0）
type WechatAPIError struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (e *WechatAPIError) Error() string {
	return fmt.Sprintf("wechat code2session 失败: errcode=%d errmsg=%s", e.ErrCode, e.ErrMsg)
}

// Code2Session 用 wx.login code 换取 openid / session_key
func Code2Session(appID, secret, code string) (*WechatSession, error) {
	params := url.Values{}
	params.Set("appid", appID)
	params.Set("secret", secret)
	params.Set("js_code", code)
	params.Set("grant_type", "authorization_code")

	resp, err := wechatHTTPClient.Get(wechatCode2SessionURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("请求微信服务器失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 成功与失败共用一个 JSON 形状，按 errcode 区分
	var payload struct {
		WechatSession
		WechatAPIError
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	if payload.ErrCode != 0 {
		return nil, &WechatAPIError{ErrCode: payload.ErrCode, ErrMsg: payload.ErrMsg}
	}
	if payload.OpenID == "" {
		return nil, fmt.Errorf("微信返回缺少 openid")
	}
	return &payload.WechatSession, nil
}
