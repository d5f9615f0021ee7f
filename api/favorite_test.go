package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteHandler_Add(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	// 销售身份校验
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	// ensureUser：用户已存在
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(testOpenID, "", "", ""))
	// 商品上架校验
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"frame_model", "is_active"}).AddRow("TR-100", "是"))
	// 尚未推荐过
	mock.ExpectQuery("SELECT \\* FROM `favorites`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `favorites`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/favorites", NewFavoriteHandler().Add)

	body := `{"open_id":"` + testOpenID + `","frame_model":"TR-100"}`
	req := httptest.NewRequest("POST", "/api/favorites", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteHandler_Add_NotSalesperson(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	router := gin.New()
	router.POST("/api/favorites", NewFavoriteHandler().Add)

	body := `{"open_id":"` + testOpenID + `","frame_model":"TR-100"}`
	req := httptest.NewRequest("POST", "/api/favorites", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 403, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "only salesperson can add recommendation", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteHandler_Add_Idempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(testOpenID, "", "", ""))
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"frame_model", "is_active"}).AddRow("TR-100", "是"))
	// 已推荐过：静默成功，不再写入
	mock.ExpectQuery("SELECT \\* FROM `favorites`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "open_id", "frame_model"}).AddRow(1, testOpenID, "TR-100"))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/favorites", NewFavoriteHandler().Add)

	body := `{"open_id":"` + testOpenID + `","frame_model":"TR-100"}`
	req := httptest.NewRequest("POST", "/api/favorites", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteHandler_Add_ProductNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(testOpenID, "", "", ""))
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"frame_model"}))
	mock.ExpectRollback()

	router := gin.New()
	router.POST("/api/favorites", NewFavoriteHandler().Add)

	body := `{"open_id":"` + testOpenID + `","frame_model":"GONE"}`
	req := httptest.NewRequest("POST", "/api/favorites", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "商品不存在或未上架", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteHandler_Remove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `favorites`").
		WithArgs(testOpenID, "TR-100").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.DELETE("/api/favorites", NewFavoriteHandler().Remove)

	body := `{"open_id":"` + testOpenID + `","frame_model":"TR-100"}`
	req := httptest.NewRequest("DELETE", "/api/favorites", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteHandler_ListIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	mock.ExpectQuery("SELECT `frame_model` FROM `favorites`").
		WithArgs(testOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"frame_model"}).
			AddRow("TR-100").
			AddRow("TR-200"))

	router := gin.New()
	router.GET("/api/favorites/ids", NewFavoriteHandler().ListIDs)

	req := httptest.NewRequest("GET", "/api/favorites/ids?open_id="+testOpenID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Items []string `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"TR-100", "TR-200"}, resp.Data.Items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteHandler_List_MissingOpenID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, cleanup := setupMockDB(t)
	defer cleanup()
	defer setTestConfig()()

	router := gin.New()
	router.GET("/api/favorites", NewFavoriteHandler().List)

	req := httptest.NewRequest("GET", "/api/favorites", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
