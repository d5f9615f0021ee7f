package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"eyewear/config"
	"eyewear/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func setTestConfig() func() {
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug", BaseURL: "https://shop.example.com"},
		Image:  config.ImageConfig{URLPrefix: "/static/images/"},
		Search: config.SearchConfig{
			DefaultField: "frame_model",
			AllowedFields: []string{
				"frame_model", "lens_size", "nose_bridge_width", "temple_length",
				"frame_total_length", "frame_height", "weight", "price",
				"frame_material", "other_info", "brand_info",
			},
		},
	}
	return func() { config.GlobalConfig = nil }
}

func TestProductHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"frame_model", "is_active", "price", "frame_material", "image1"}).
			AddRow("TR-100", "是", 268.0, "TR90", "tr100.jpg").
			AddRow("TR-200", "是", 318.0, "钛+板材", "tr200.jpg"))

	router := gin.New()
	router.GET("/api/products", NewProductHandler().List)

	req := httptest.NewRequest("GET", "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Code int `json:"code"`
		Data struct {
			Total       int64 `json:"total"`
			Pages       int   `json:"pages"`
			CurrentPage int   `json:"current_page"`
			Items       []struct {
				FrameModel string   `json:"frame_model"`
				Images     []string `json:"images"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, int64(2), resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Pages)
	require.Len(t, resp.Data.Items, 2)
	assert.Equal(t, "TR-100", resp.Data.Items[0].FrameModel)
	require.Len(t, resp.Data.Items[0].Images, 1)
	assert.Equal(t, "https://shop.example.com/static/images/tr100.jpg", resp.Data.Items[0].Images[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductHandler_List_InvalidPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	router := gin.New()
	router.GET("/api/products", NewProductHandler().List)

	req := httptest.NewRequest("GET", "/api/products?page=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestProductHandler_List_MalformedNumericReturnsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	// 非法数值过滤整体判空，但仍是 200 响应
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"frame_model"}))

	router := gin.New()
	router.GET("/api/products", NewProductHandler().List)

	req := httptest.NewRequest("GET", "/api/products?price=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Total int64 `json:"total"`
			Pages int   `json:"pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Data.Total)
	assert.Equal(t, 0, resp.Data.Pages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"frame_model", "is_active", "brand", "notes"}).
			AddRow("TR-100", "是", "None", "轻"))

	router := gin.New()
	router.GET("/api/products/:frame_model", NewProductHandler().Get)

	req := httptest.NewRequest("GET", "/api/products/TR-100", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			FrameModel string `json:"frame_model"`
			Brand      string `json:"brand"`
			Notes      string `json:"notes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "TR-100", resp.Data.FrameModel)
	assert.Equal(t, "", resp.Data.Brand) // 占位文本 "None" 被清洗
	assert.Equal(t, "轻", resp.Data.Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"frame_model"}))

	router := gin.New()
	router.GET("/api/products/:frame_model", NewProductHandler().Get)

	req := httptest.NewRequest("GET", "/api/products/NOPE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanPlaceholderText(t *testing.T) {
	assert.Equal(t, "", cleanPlaceholderText("None"))
	assert.Equal(t, "", cleanPlaceholderText(" null "))
	assert.Equal(t, "", cleanPlaceholderText("undefined"))
	assert.Equal(t, "", cleanPlaceholderText("NaN"))
	assert.Equal(t, "金属", cleanPlaceholderText(" 金属 "))
}

func TestBuildPublicImageURL(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{BaseURL: "https://shop.example.com"},
		Image:  config.ImageConfig{URLPrefix: "/static/images/"},
	}
	// 相对路径基于 base_url 组合
	assert.Equal(t, "https://shop.example.com/static/images/a.jpg", buildPublicImageURL(cfg, "a.jpg"))
	// 已是完整 URL 原样返回
	assert.Equal(t, "https://cdn.example.com/b.jpg", buildPublicImageURL(cfg, "https://cdn.example.com/b.jpg"))
	// 前缀本身是完整 URL 时直接拼接
	cfg.Image.URLPrefix = "https://cdn.example.com/images/"
	assert.Equal(t, "https://cdn.example.com/images/c.jpg", buildPublicImageURL(cfg, "c.jpg"))
	// 空路径不处理
	assert.Equal(t, "", buildPublicImageURL(cfg, ""))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
}
