// 条目处理器的单元测试
// 重点覆盖reorder端点的parent解析契约
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/lifenote/internal/database"
	"github.com/weiwangfds/lifenote/internal/middleware"
	"github.com/weiwangfds/lifenote/internal/service/knowledge"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupEntryRouter 设置测试路由
// 用固定用户ID替代认证中间件
func setupEntryRouter(t *testing.T, userID uint) (*gin.Engine, knowledge.EntryService) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.User{}, &database.Topic{}, &database.Entry{}))

	svc := knowledge.NewEntryService(db, knowledge.ValidationConfig{})
	h := NewEntryHandler(svc)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
	})
	engine.PATCH("/entries/:id/reorder", h.ReorderEntry)
	engine.PUT("/entries/:id", h.UpdateEntry)
	engine.GET("/search", h.SearchEntries)
	return engine, svc
}

// patchReorder 发送reorder请求
func patchReorder(engine *gin.Engine, entryID uint, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/entries/%d/reorder", entryID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// TestReorderEndpoint 测试reorder端点
func TestReorderEndpoint(t *testing.T) {
	engine, svc := setupEntryRouter(t, 1)

	parent, err := svc.CreateEntry(1, &knowledge.CreateEntryRequest{Title: "Parent"})
	require.NoError(t, err)
	entry, err := svc.CreateEntry(1, &knowledge.CreateEntryRequest{Title: "Child"})
	require.NoError(t, err)

	t.Run("order与parent数字形态", func(t *testing.T) {
		w := patchReorder(engine, entry.ID, fmt.Sprintf(`{"order": 3, "parent": %d}`, parent.ID))
		assert.Equal(t, http.StatusOK, w.Code)

		got, err := svc.GetEntryByID(1, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.SortOrder)
		require.NotNil(t, got.ParentID)
		assert.Equal(t, parent.ID, *got.ParentID)
	})

	t.Run("parent数字字符串形态", func(t *testing.T) {
		w := patchReorder(engine, entry.ID, fmt.Sprintf(`{"parent": "%d"}`, parent.ID))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("parent空串升为根条目", func(t *testing.T) {
		w := patchReorder(engine, entry.ID, `{"parent": ""}`)
		assert.Equal(t, http.StatusOK, w.Code)

		got, err := svc.GetEntryByID(1, entry.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ParentID)
	})

	t.Run("parent非法值返回400且条目不被修改", func(t *testing.T) {
		w := patchReorder(engine, entry.ID, `{"order": 99, "parent": "abc"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"error": "Invalid parent ID"}, body)

		// order与parent均保持原值
		got, err := svc.GetEntryByID(1, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.SortOrder)
		assert.Nil(t, got.ParentID)
	})

	t.Run("不存在的条目返回404", func(t *testing.T) {
		w := patchReorder(engine, 123456, `{"order": 1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestUpdateEntryLengthLimits 测试更新请求的字段长度限制
func TestUpdateEntryLengthLimits(t *testing.T) {
	engine, svc := setupEntryRouter(t, 1)

	entry, err := svc.CreateEntry(1, &knowledge.CreateEntryRequest{Title: "Limits"})
	require.NoError(t, err)

	putEntry := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/entries/%d", entry.ID), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("标题超长返回400", func(t *testing.T) {
		body, err := json.Marshal(gin.H{"title": strings.Repeat("t", 201)})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, putEntry(string(body)).Code)
	})

	t.Run("摘要超长返回400", func(t *testing.T) {
		body, err := json.Marshal(gin.H{"summary": strings.Repeat("s", 501)})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, putEntry(string(body)).Code)
	})

	t.Run("边界长度通过", func(t *testing.T) {
		body, err := json.Marshal(gin.H{"summary": strings.Repeat("s", 500)})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, putEntry(string(body)).Code)
	})
}

// TestSearchEndpoint 测试搜索端点的响应结构
func TestSearchEndpoint(t *testing.T) {
	engine, svc := setupEntryRouter(t, 1)

	_, err := svc.CreateEntry(1, &knowledge.CreateEntryRequest{Title: "Channels", Content: "buffered channels"})
	require.NoError(t, err)

	t.Run("命中时返回结果数和耗时", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search?q=channels", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Data struct {
				Results     []json.RawMessage `json:"results"`
				ResultCount int               `json:"result_count"`
				QueryTime   string            `json:"query_time"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Equal(t, 1, envelope.Data.ResultCount)
		assert.Len(t, envelope.Data.Results, 1)
		assert.NotEmpty(t, envelope.Data.QueryTime)
	})

	t.Run("空查询串返回零结果", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search?q=", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Data struct {
				ResultCount int `json:"result_count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Zero(t, envelope.Data.ResultCount)
	})
}
