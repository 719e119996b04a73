package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ewebb/backend/internal/auth"
	jwtpkg "ewebb/backend/internal/auth/jwt"
	"ewebb/backend/internal/config"
	"ewebb/backend/internal/mailer"
	"ewebb/backend/internal/service"
	"ewebb/backend/internal/storage/filesystem"
	"ewebb/backend/internal/storage/memory"
)

type testEnv struct {
	router     *gin.Engine
	store      *memory.Store
	jwtManager *jwtpkg.Manager
	uploadsDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := memory.NewStore()

	uploadsDir := t.TempDir()
	files, err := filesystem.NewStore(uploadsDir)
	require.NoError(t, err)

	// 未配置 SMTP 密码，通知处于禁用状态
	notifier := mailer.NewMailer(mailer.Config{}, logger)

	jwtManager := jwtpkg.NewManager("test-secret", "ewebb", time.Hour)

	cfg := &config.Config{
		Uploads: config.UploadsConfig{
			Dir:         uploadsDir,
			MaxSize:     20 * 1024 * 1024,
			ContactBody: 1024 * 1024,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{
			ContactPerMinute: 600,
			ContactBurst:     100,
		},
	}

	router := NewRouter(RouterDependencies{
		Config:          cfg,
		ContactService:  service.NewContactService(store, notifier, logger),
		DocumentService: service.NewDocumentService(store, files, logger),
		Authenticator:   auth.NewAuthenticator("admin", "Pass@2025"),
		JWTManager:      jwtManager,
		Store:           store,
		Logger:          logger,
	})

	return &testEnv{
		router:     router,
		store:      store,
		jwtManager: jwtManager,
		uploadsDir: uploadsDir,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.jwtManager.Generate("admin")
	require.NoError(t, err)
	return token
}

func jsonRequest(method, path string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "EWEBB API is running", body["message"])
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/contact", gin.H{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "0712345678",
		"subject": "Printing",
		"message": "Need bulk printing",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Contact form submitted successfully", body["message"])

	// 消息已持久化，初始状态为 new
	token := env.adminToken(t)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Contacts []map[string]any `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Contacts, 1)
	assert.Equal(t, "Jane Doe", list.Contacts[0]["name"])
	assert.Equal(t, "new", list.Contacts[0]["status"])
	assert.NotEmpty(t, list.Contacts[0]["id"])
}

func TestSubmitContact_InvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	t.Run("缺少邮箱", func(t *testing.T) {
		w := env.do(jsonRequest(http.MethodPost, "/api/contact", gin.H{
			"name": "x", "subject": "s", "message": "m",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		w := env.do(jsonRequest(http.MethodPost, "/api/contact", gin.H{
			"name": "x", "email": "not-an-email", "subject": "s", "message": "m",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubmitContact_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := memory.NewStore()
	files, err := filesystem.NewStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Uploads:   config.UploadsConfig{Dir: t.TempDir(), MaxSize: 1024, ContactBody: 1024 * 1024},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{ContactPerMinute: 1, ContactBurst: 2},
	}

	router := NewRouter(RouterDependencies{
		Config:          cfg,
		ContactService:  service.NewContactService(store, mailer.NewMailer(mailer.Config{}, logger), logger),
		DocumentService: service.NewDocumentService(store, files, logger),
		Authenticator:   auth.NewAuthenticator("admin", "Pass@2025"),
		JWTManager:      jwtpkg.NewManager("test-secret", "ewebb", time.Hour),
		Store:           store,
		Logger:          logger,
	})

	payload := gin.H{"name": "x", "email": "x@example.com", "subject": "s", "message": "m"}

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/contact", payload))
		require.Equal(t, http.StatusOK, w.Code)
	}

	// 突发额度耗尽后返回 429
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/contact", payload))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("正确凭据", func(t *testing.T) {
		w := env.do(jsonRequest(http.MethodPost, "/api/admin/login", gin.H{
			"username": "admin",
			"password": "Pass@2025",
		}))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "bearer", body["token_type"])

		// 签发的令牌可通过校验
		username, err := env.jwtManager.Validate(body["access_token"].(string))
		require.NoError(t, err)
		assert.Equal(t, "admin", username)
	})

	t.Run("错误密码", func(t *testing.T) {
		w := env.do(jsonRequest(http.MethodPost, "/api/admin/login", gin.H{
			"username": "admin",
			"password": "wrong",
		}))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("错误用户名", func(t *testing.T) {
		w := env.do(jsonRequest(http.MethodPost, "/api/admin/login", gin.H{
			"username": "root",
			"password": "Pass@2025",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/contacts"},
		{http.MethodPut, "/api/admin/contacts/c1/status?status=read"},
		{http.MethodPost, "/api/admin/upload"},
		{http.MethodGet, "/api/admin/documents"},
		{http.MethodDelete, "/api/admin/documents/d1"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := env.do(httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			// 伪造令牌同样被拒绝
			req := httptest.NewRequest(route.method, route.path, nil)
			req.Header.Set("Authorization", "Bearer forged.token.value")
			w = env.do(req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestUpdateContactStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/contact", gin.H{
		"name": "x", "email": "x@example.com", "subject": "s", "message": "m",
	}))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = env.do(req)
	var list struct {
		Contacts []map[string]any `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Contacts, 1)
	contactID := list.Contacts[0]["id"].(string)

	t.Run("更新成功", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/api/admin/contacts/%s/status?status=read", contactID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := env.do(req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Status updated successfully", decodeBody(t, w)["message"])
	})

	t.Run("缺少状态参数", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/api/admin/contacts/%s/status", contactID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := env.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("记录不存在", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut,
			"/api/admin/contacts/missing/status?status=read", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := env.do(req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Contact not found", decodeBody(t, w)["error"])
	})
}

func multipartUpload(t *testing.T, path, token, filename, category, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	require.NoError(t, writer.WriteField("category", category))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestDocumentUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	w := env.do(multipartUpload(t, "/api/admin/upload", token, "Price List.pdf", "public", "pdf bytes"))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	filename := body["filename"].(string)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.NotEqual(t, "Price List.pdf", filename)

	// 上传的文件可通过静态路由访问
	w = env.do(httptest.NewRequest(http.MethodGet, "/uploads/public/"+filename, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pdf bytes", w.Body.String())
}

func TestDocumentUpload_Invalid(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	t.Run("非法分类", func(t *testing.T) {
		w := env.do(multipartUpload(t, "/api/admin/upload", token, "a.pdf", "private", "x"))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid category", decodeBody(t, w)["error"])
	})

	t.Run("缺少文件", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("category", "public"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := env.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDocumentList(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	w := env.do(multipartUpload(t, "/api/admin/upload", token, "a.pdf", "public", "a"))
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(multipartUpload(t, "/api/admin/upload", token, "b.pdf", "eulogy", "b"))
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("公开列表", func(t *testing.T) {
		w := env.do(httptest.NewRequest(http.MethodGet, "/api/documents", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var list struct {
			Documents []map[string]any `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list.Documents, 2)
	})

	t.Run("按分类过滤", func(t *testing.T) {
		w := env.do(httptest.NewRequest(http.MethodGet, "/api/documents?category=eulogy", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var list struct {
			Documents []map[string]any `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list.Documents, 1)
		assert.Equal(t, "b.pdf", list.Documents[0]["original_name"])
	})

	t.Run("非法分类", func(t *testing.T) {
		w := env.do(httptest.NewRequest(http.MethodGet, "/api/documents?category=private", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("管理员列表", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/documents", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := env.do(req)
		require.Equal(t, http.StatusOK, w.Code)

		var list struct {
			Documents []map[string]any `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list.Documents, 2)
	})
}

func TestDocumentDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	w := env.do(multipartUpload(t, "/api/admin/upload", token, "a.pdf", "public", "a"))
	require.Equal(t, http.StatusOK, w.Code)
	filename := decodeBody(t, w)["filename"].(string)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	var list struct {
		Documents []map[string]any `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Documents, 1)
	docID := list.Documents[0]["id"].(string)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/documents/"+docID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Document deleted successfully", decodeBody(t, w)["message"])

	// 记录与文件都已删除
	w = env.do(httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Documents, 0)

	w = env.do(httptest.NewRequest(http.MethodGet, "/uploads/public/"+filename, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 重复删除返回 404
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/documents/"+docID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = env.do(req)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document not found", decodeBody(t, w)["error"])
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
