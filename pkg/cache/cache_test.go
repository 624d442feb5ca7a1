package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/yeisme/photovault/pkg/cache"
)

// GalleryEntry 测试用的相册条目结构体.
type GalleryEntry struct {
	FileName string `json:"file_name"`
	Number   int    `json:"number"`
	Folder   string `json:"folder"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error { return nil }

// TestSetGet 测试基本的设置和获取.
func TestSetGet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	entry := GalleryEntry{FileName: "photo_001.jpg", Number: 1, Folder: "Chemistry"}

	if err := cache.Set(ctx, c, "gallery:Chemistry:photo_001", entry, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	got, err := cache.Get[GalleryEntry](ctx, c, "gallery:Chemistry:photo_001")
	if err != nil {
		t.Fatalf("Failed to get cache: %v", err)
	}

	if got != entry {
		t.Errorf("Expected %+v, got %+v", entry, got)
	}
}

// TestGetMiss 测试缓存未命中.
func TestGetMiss(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	if _, err := cache.Get[GalleryEntry](ctx, c, "gallery:missing"); err == nil {
		t.Error("Expected error for missing key")
	}
}

// TestDeleteAndExists 测试删除与存在性检查.
func TestDeleteAndExists(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	if err := cache.Set(ctx, c, "search:alltags", []string{"chem"}, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	exists, err := c.Exists(ctx, "search:alltags")
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	if err := c.Delete(ctx, "search:alltags"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	exists, _ = c.Exists(ctx, "search:alltags")
	if exists {
		t.Error("Key should not exist after delete")
	}
}

// TestGetOrSet 测试 GetOrSet 方法.
func TestGetOrSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	callCount := 0
	getter := func() ([]string, error) {
		callCount++
		return []string{"chemistry", "lab"}, nil
	}

	// 第一次调用，应该调用getter
	tags1, err := cache.GetOrSet(ctx, c, "search:alltags", getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called once, got %d", callCount)
	}

	// 第二次调用，应该从缓存获取
	tags2, err := cache.GetOrSet(ctx, c, "search:alltags", getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called only once, got %d", callCount)
	}

	if len(tags1) != len(tags2) {
		t.Errorf("Results don't match: %v vs %v", tags1, tags2)
	}
}

// TestGetOrSet_GetterError 测试 getter 返回错误的情况.
func TestGetOrSet_GetterError(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	getter := func() ([]string, error) {
		return nil, errors.New("getter error")
	}

	_, err := cache.GetOrSet(ctx, c, "search:error", getter, 0)
	if err == nil {
		t.Error("Expected error from getter")
	}
}

// TestCache_Clear 测试 Clear 方法.
func TestCache_Clear(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		key := fmt.Sprintf("gallery:Chemistry:photo_%03d", i)

		entry := GalleryEntry{FileName: fmt.Sprintf("photo_%03d.jpg", i), Number: i, Folder: "Chemistry"}
		if err := cache.Set(ctx, c, key, entry, 0); err != nil {
			t.Fatalf("Failed to set cache %d: %v", i, err)
		}
	}

	if len(mockStore.data) != 3 {
		t.Errorf("Expected 3 items, got %d", len(mockStore.data))
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear cache: %v", err)
	}

	if len(mockStore.data) != 0 {
		t.Errorf("Expected 0 items after clear, got %d", len(mockStore.data))
	}
}
