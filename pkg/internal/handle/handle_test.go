package handle_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/api"
	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/storage"
	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
	"github.com/yeisme/photovault/pkg/middleware"
)

// newTestEngine 构造挂了内存存储的 gin 引擎.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	mem, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = mem.Close() })

	store := kv.NewStore(mem)
	mgr := &storage.Manager{
		KV:    &kv.Client{KVStore: mem},
		Store: store,
		VFS:   &vfs.Client{FileSystem: vfs.NewKVFileSystem(store)},
	}

	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(middleware.StorageMiddleware(mgr))

	return api.RegisterGroup(engine)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func TestFolderLifecycleOverHTTP(t *testing.T) {
	engine := newTestEngine(t)

	if w := doJSON(t, engine, http.MethodPost, "/api/v1/folders", `{"name":"Chemistry"}`); w.Code != http.StatusCreated {
		t.Fatalf("create folder: %d %s", w.Code, w.Body.String())
	}

	// 重名注册报 400
	if w := doJSON(t, engine, http.MethodPost, "/api/v1/folders", `{"name":"Chemistry"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate folder: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, engine, http.MethodGet, "/api/v1/folders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list folders: %d", w.Code)
	}

	var listResp struct {
		Folders []string `json:"folders"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}

	if len(listResp.Folders) != 1 || listResp.Folders[0] != "Chemistry" {
		t.Fatalf("folders: %v", listResp.Folders)
	}

	// 改名不存在的文件夹报 404
	if w := doJSON(t, engine, http.MethodPut, "/api/v1/folders/Ghost", `{"new_name":"X"}`); w.Code != http.StatusNotFound {
		t.Fatalf("rename missing folder: %d %s", w.Code, w.Body.String())
	}

	if w := doJSON(t, engine, http.MethodDelete, "/api/v1/folders/Chemistry", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete folder: %d %s", w.Code, w.Body.String())
	}
}

func TestPhotoRoundTripOverHTTP(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/photos",
		`{"folder":"Trips","content":"aGVsbG8="}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("save photo: %d %s", w.Code, w.Body.String())
	}

	var saveResp struct {
		FileName string `json:"file_name"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &saveResp); err != nil {
		t.Fatalf("decode save response: %v", err)
	}

	if saveResp.FileName != "photo_001.jpg" {
		t.Fatalf("generated name: %q", saveResp.FileName)
	}

	w = doJSON(t, engine, http.MethodGet, "/api/v1/photos/Trips/photo_001.jpg?encoding=utf8", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get photo: %d %s", w.Code, w.Body.String())
	}

	var getResp struct {
		Content string `json:"content"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &getResp); err != nil {
		t.Fatalf("decode get response: %v", err)
	}

	if getResp.Content != "hello" {
		t.Fatalf("photo content: %q", getResp.Content)
	}

	// 缺失照片报 404
	if w := doJSON(t, engine, http.MethodGet, "/api/v1/photos/Trips/missing.jpg", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get missing photo: %d", w.Code)
	}

	if w := doJSON(t, engine, http.MethodDelete, "/api/v1/photos/Trips/photo_001.jpg", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete photo: %d %s", w.Code, w.Body.String())
	}
}

func TestTagAndSearchOverHTTP(t *testing.T) {
	engine := newTestEngine(t)

	doJSON(t, engine, http.MethodPost, "/api/v1/photos", `{"folder":"Chemistry","content":"aGVsbG8="}`)

	if w := doJSON(t, engine, http.MethodPost, "/api/v1/meta/Chemistry/photo_001.jpg/tags", `{"tag":"titration"}`); w.Code != http.StatusOK {
		t.Fatalf("add tag: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, engine, http.MethodGet, "/api/v1/search?q=titration&filter=tags", "")
	if w.Code != http.StatusOK {
		t.Fatalf("search: %d %s", w.Code, w.Body.String())
	}

	var searchResp struct {
		Results []struct {
			URI string `json:"uri"`
		} `json:"results"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &searchResp); err != nil {
		t.Fatalf("decode search response: %v", err)
	}

	if len(searchResp.Results) != 1 {
		t.Fatalf("search results: %+v", searchResp.Results)
	}

	// 搜索会记入最近搜索
	w = doJSON(t, engine, http.MethodGet, "/api/v1/search/recent", "")

	var recentResp struct {
		Searches []string `json:"searches"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &recentResp); err != nil {
		t.Fatalf("decode recent response: %v", err)
	}

	if len(recentResp.Searches) != 1 || recentResp.Searches[0] != "titration" {
		t.Fatalf("recent searches: %v", recentResp.Searches)
	}
}

func TestHealthAndSelfTestOverHTTP(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/api/v1/health/kv", "/api/v1/health/vfs", "/api/v1/selftest"} {
		if w := doJSON(t, engine, http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Fatalf("%s: %d %s", path, w.Code, w.Body.String())
		}
	}

	// MQ 未初始化时健康检查报 503
	if w := doJSON(t, engine, http.MethodGet, "/api/v1/health/mq", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("mq health without client: %d", w.Code)
	}
}
