package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	old := GlobalConfig
	defer func() { GlobalConfig = old }()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "frame_model", cfg.Search.DefaultField)
	assert.Contains(t, cfg.Search.AllowedFields, "frame_material")
	assert.Contains(t, cfg.Search.AllowedFields, "other_info")
	assert.Equal(t, "/static/images/", cfg.Image.URLPrefix)
	assert.True(t, cfg.JWT.ExpireTime > 0)
}

func TestSafeErrorMessage(t *testing.T) {
	old := GlobalConfig
	defer func() { GlobalConfig = old }()

	fallback := "internal database error"
	testErr := errors.New("connection refused: 10.0.0.1:3306")

	// 未初始化配置时透传错误
	GlobalConfig = nil
	assert.Equal(t, testErr.Error(), SafeErrorMessage(testErr, fallback))
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// debug 模式透传错误
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, testErr.Error(), SafeErrorMessage(testErr, fallback))

	// release 模式隐藏详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))
}
