package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"eyewear/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 后台管理会话：登录成功后签发 JWT，放入 HttpOnly Cookie，
// 也接受 Authorization: Bearer 头（便于脚本调用）

const adminCookieName = "admin_token"

var (
	jwtSecret     []byte
	jwtExpireTime time.Duration
)

// AdminClaims 后台会话的 JWT 载荷
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// InitJWT 初始化 JWT 配置
func InitJWT(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWT.Secret)
	jwtExpireTime = cfg.JWT.ExpireTime
}

// GenerateAdminToken 为后台管理员签发会话 token
func GenerateAdminToken(username string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtExpireTime)),
			Issuer:    "eyewear-admin",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseAdminToken 校验并解析后台会话 token
func ParseAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("意外的签名算法")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的 token")
	}
	return claims, nil
}

// SetAdminCookie 写入后台会话 Cookie
// release 模式下启用 Secure，SameSite=Lax 防跨站携带
func SetAdminCookie(c *gin.Context, token string) {
	secure := false
	if cfg := config.GlobalConfig; cfg != nil && cfg.Server.Mode == "release" {
		secure = true
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(adminCookieName, token, int(jwtExpireTime.Seconds()), "/", "", secure, true)
}

// ClearAdminCookie 清除后台会话 Cookie
func ClearAdminCookie(c *gin.Context) {
	c.SetCookie(adminCookieName, "", -1, "/", "", false, true)
}

// AdminAuth 后台管理鉴权中间件
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie(adminCookieName)
		if tokenString == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenString = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "未登录"})
			c.Abort()
			return
		}
		claims, err := ParseAdminToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "会话无效或已过期"})
			c.Abort()
			return
		}
		c.Set("adminUsername", claims.Username)
		c.Next()
	}
}

// GetCurrentAdmin 从上下文取当前管理员用户名，未登录返回空串
func GetCurrentAdmin(c *gin.Context) string {
	if v, ok := c.Get("adminUsername"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
