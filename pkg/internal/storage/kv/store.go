package kv

import (
	"context"
	"errors"
	"strings"

	nlog "github.com/yeisme/photovault/pkg/log"
)

// Store 是面向业务层的软失败字符串适配器.
// 所有底层读写错误都会在这里被吸收：读失败返回 (“”, false)，写/删失败静默记录日志.
// 上层因此无法区分"键不存在"与"读取失败"，这是刻意的取舍——调用方永远拿到安全默认值，
// 不需要处理存储层错误.
type Store struct {
	kv KVStore
}

// NewStore 包装一个 KVStore 为软失败适配器.
func NewStore(kv KVStore) *Store {
	return &Store{kv: kv}
}

// Get 获取键的字符串值；键不存在或读取失败时返回 ("", false).
// 正常未命中不算故障，只有真正的后端错误才记日志.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			nlog.Logger().Error().Err(err).Str("key", key).Msg("storage get failed")
		}

		return "", false
	}

	return string(data), true
}

// Set 设置键的字符串值；失败时记录日志并继续.
func (s *Store) Set(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, []byte(value), 0); err != nil {
		nlog.Logger().Error().Err(err).Str("key", key).Msg("storage set failed")
	}
}

// Remove 删除键；失败时记录日志并继续.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		nlog.Logger().Error().Err(err).Str("key", key).Msg("storage remove failed")
	}
}

// KeysWithPrefix 返回所有以 prefix 开头的键；失败时返回空切片.
func (s *Store) KeysWithPrefix(ctx context.Context, prefix string) []string {
	keys, err := s.kv.Keys(ctx, "")
	if err != nil {
		nlog.Logger().Error().Err(err).Str("prefix", prefix).Msg("storage keys failed")
		return nil
	}

	matched := make([]string, 0, len(keys))

	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			matched = append(matched, k)
		}
	}

	return matched
}

// SelfTest 执行一次写-读-删往返，验证底层存储可用.
func (s *Store) SelfTest(ctx context.Context) bool {
	const testKey = "photovault_storage_selftest"

	const testValue = `{"test":"data"}`

	s.Set(ctx, testKey, testValue)

	got, ok := s.Get(ctx, testKey)
	if !ok || got != testValue {
		return false
	}

	s.Remove(ctx, testKey)

	return true
}
