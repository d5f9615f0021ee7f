package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSalesOpenID = "oSALE1234567890123456789012x"

func shareRow(id int, customers string, openCount int, isSent bool, sentCount int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "salesperson_open_id", "product_list", "note", "dedup_key", "push_time",
		"customer_open_ids", "open_count", "is_opened", "is_sent", "sent_count",
	}).AddRow(id, testSalesOpenID, `["TR-100","TR-200"]`, "新款", nil, time.Now(),
		customers, openCount, openCount > 0, isSent, sentCount)
}

func TestShareHandler_CreatePush(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testSalesOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sales_shares`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/shares/push", NewShareHandler().CreatePush)

	body := `{"salesperson_open_id":"` + testSalesOpenID + `","product_list":["TR-100"," TR-100 ","TR-200"],"note":"这是一条非常非常长的备注文本"}`
	req := httptest.NewRequest("POST", "/api/shares/push", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Dedup bool `json:"dedup"`
			Share struct {
				ProductList []string `json:"product_list"`
				Note        string   `json:"note"`
			} `json:"share"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Dedup)
	// 去重保序 + 备注截断到 10 字
	assert.Equal(t, []string{"TR-100", "TR-200"}, resp.Data.Share.ProductList)
	assert.Equal(t, "这是一条非常非常长的", resp.Data.Share.Note)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_CreatePush_DedupHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testSalesOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// 同键记录已存在：直接返回旧记录，不再插入
	mock.ExpectQuery("SELECT \\* FROM `sales_shares`").
		WillReturnRows(shareRow(3, "[]", 0, false, 0))

	router := gin.New()
	router.POST("/api/shares/push", NewShareHandler().CreatePush)

	body := `{"salesperson_open_id":"` + testSalesOpenID + `","product_list":["TR-100"],"dedup_key":"k-20260830-1"}`
	req := httptest.NewRequest("POST", "/api/shares/push", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Dedup bool `json:"dedup"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Dedup)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_CreatePush_NotSalesperson(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testSalesOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	router := gin.New()
	router.POST("/api/shares/push", NewShareHandler().CreatePush)

	body := `{"salesperson_open_id":"` + testSalesOpenID + `","product_list":["TR-100"]}`
	req := httptest.NewRequest("POST", "/api/shares/push", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "salesperson not found", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_CreatePush_EmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
		WithArgs(testSalesOpenID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	router := gin.New()
	router.POST("/api/shares/push", NewShareHandler().CreatePush)

	// 全空白条目去重后为空
	body := `{"salesperson_open_id":"` + testSalesOpenID + `","product_list":[""," "]}`
	req := httptest.NewRequest("POST", "/api/shares/push", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "product_list cannot be empty", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_Open_FirstOpener(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `sales_shares`").
		WillReturnRows(shareRow(7, "[]", 0, false, 0))
	mock.ExpectExec("UPDATE `sales_shares`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/shares/:id/open", NewShareHandler().Open)

	body := `{"customer_open_id":"` + testOpenID + `"}`
	req := httptest.NewRequest("POST", "/api/shares/7/open", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Updated bool `json:"updated"`
			Share   struct {
				OpenCount int  `json:"open_count"`
				IsOpened  bool `json:"is_opened"`
			} `json:"share"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Updated)
	assert.Equal(t, 1, resp.Data.Share.OpenCount)
	assert.True(t, resp.Data.Share.IsOpened)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_Open_RepeatOpenerNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 同一客户重复打开：无更新语句
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `sales_shares`").
		WillReturnRows(shareRow(7, `["`+testOpenID+`"]`, 1, false, 0))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/shares/:id/open", NewShareHandler().Open)

	body := `{"customer_open_id":"` + testOpenID + `"}`
	req := httptest.NewRequest("POST", "/api/shares/7/open", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Updated bool `json:"updated"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_Open_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `sales_shares`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	router := gin.New()
	router.POST("/api/shares/:id/open", NewShareHandler().Open)

	body := `{"customer_open_id":"` + testOpenID + `"}`
	req := httptest.NewRequest("POST", "/api/shares/99/open", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_MarkSent_Increments(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `sales_shares`").
		WillReturnRows(shareRow(7, "[]", 0, true, 2))
	mock.ExpectExec("UPDATE `sales_shares`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/shares/:id/sent", NewShareHandler().MarkSent)

	req := httptest.NewRequest("POST", "/api/shares/7/sent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			IsSent    bool `json:"is_sent"`
			SentCount int  `json:"sent_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsSent)
	assert.Equal(t, 3, resp.Data.SentCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareHandler_List_CustomerExactMembership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// LIKE 预筛回两行，但只有第一行是精确成员
	rows := sqlmock.NewRows([]string{"id", "salesperson_open_id", "customer_open_ids", "is_sent"}).
		AddRow(2, testSalesOpenID, `["`+testOpenID+`"]`, true).
		AddRow(1, testSalesOpenID, `["`+testOpenID+`-suffix"]`, true)
	mock.ExpectQuery("SELECT \\* FROM `sales_shares`").
		WillReturnRows(rows)

	router := gin.New()
	router.GET("/api/shares", NewShareHandler().List)

	req := httptest.NewRequest("GET", "/api/shares?customer_open_id="+testOpenID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Total int64 `json:"total"`
			Items []struct {
				ID uint `json:"id"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, uint(2), resp.Data.Items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
