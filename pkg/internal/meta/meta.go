// Package meta 管理照片元数据：注释、标签及标签颜色.
//
// 所有照片的元数据序列化为单个 JSON 信封存入 KV 存储，
// 信封携带时间戳与版本号，同时兼容读取无信封的旧格式.
// 持久化经由软失败的存储适配器，读失败表现为空集合，写失败静默丢弃.
package meta

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	plog "github.com/yeisme/photovault/pkg/log"
)

const (
	metadataKey  = "photoclass_metadata_v1"
	debugKey     = "photoclass_debug_v1"
	tagColorsKey = "photoclass_tag_colors_v1"

	envelopeVersion = "1.0"
)

// Record 单张照片的元数据.
type Record struct {
	Annotations string   `json:"annotations"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// Patch 部分更新，nil 字段保持原值.
type Patch struct {
	Annotations *string
	Tags        *[]string
}

// Result 按 URI 归属的查询结果.
type Result struct {
	URI    string `json:"uri"`
	Record Record `json:"metadata"`
}

// envelope 持久化信封.
type envelope struct {
	Data      map[string]Record `json:"data"`
	Timestamp int64             `json:"timestamp"`
	Version   string            `json:"version"`
}

// debugInfo 最近一次保存的调试信息，随每次保存写入独立键.
type debugInfo struct {
	LastSave   string `json:"lastSave"`
	PhotoCount int    `json:"photoCount"`
}

// Store 元数据存储，互斥锁保证 load-modify-save 的原子可见.
type Store struct {
	mu    sync.Mutex
	store *kv.Store
}

// NewStore 创建元数据存储.
func NewStore(store *kv.Store) *Store {
	return &Store{store: store}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func defaultRecord() Record {
	return Record{
		Annotations: "",
		Tags:        []string{},
		CreatedAt:   nowISO(),
	}
}

// load 读出全部元数据. 兼容两种格式：带 data/timestamp 的信封和裸 map 旧格式.
func (s *Store) load(ctx context.Context) map[string]Record {
	raw, ok := s.store.Get(ctx, metadataKey)
	if !ok || raw == "" {
		return map[string]Record{}
	}

	var env envelope
	if err := sonic.UnmarshalString(raw, &env); err == nil && env.Data != nil && env.Timestamp != 0 {
		return env.Data
	}

	legacy := map[string]Record{}
	if err := sonic.UnmarshalString(raw, &legacy); err != nil {
		plog.Logger().Warn().Err(err).Msg("metadata blob corrupted, starting empty")
		return map[string]Record{}
	}
	return legacy
}

func (s *Store) save(ctx context.Context, data map[string]Record) {
	env := envelope{
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
		Version:   envelopeVersion,
	}
	raw, err := sonic.MarshalString(env)
	if err != nil {
		plog.Logger().Error().Err(err).Msg("marshal metadata envelope")
		return
	}
	s.store.Set(ctx, metadataKey, raw)

	if dbg, err := sonic.MarshalString(debugInfo{
		LastSave:   nowISO(),
		PhotoCount: len(data),
	}); err == nil {
		s.store.Set(ctx, debugKey, dbg)
	}
}

// Get 返回照片的元数据，未知照片返回默认记录且不落盘.
func (s *Store) Get(ctx context.Context, uri string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	if rec, ok := data[uri]; ok {
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		return rec
	}
	return defaultRecord()
}

// Update 部分更新照片元数据并返回更新后的记录.
// 首次更新会以默认记录为基底，UpdatedAt 统一刷新.
func (s *Store) Update(ctx context.Context, uri string, patch Patch) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	rec, ok := data[uri]
	if !ok {
		rec = defaultRecord()
	}
	if patch.Annotations != nil {
		rec.Annotations = *patch.Annotations
	}
	if patch.Tags != nil {
		rec.Tags = append([]string{}, (*patch.Tags)...)
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	rec.UpdatedAt = nowISO()

	data[uri] = rec
	s.save(ctx, data)
	return rec
}

// Remove 删除照片的元数据，不存在时为空操作.
func (s *Store) Remove(ctx context.Context, uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	if _, ok := data[uri]; !ok {
		return
	}
	delete(data, uri)
	s.save(ctx, data)
}

// AddTag 为照片添加标签，重复添加为空操作. 返回当前标签集.
func (s *Store) AddTag(ctx context.Context, uri, tag string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	rec, ok := data[uri]
	if !ok {
		rec = defaultRecord()
	}
	for _, t := range rec.Tags {
		if t == tag {
			return append([]string{}, rec.Tags...)
		}
	}
	rec.Tags = append(rec.Tags, tag)
	rec.UpdatedAt = nowISO()
	data[uri] = rec
	s.save(ctx, data)
	return append([]string{}, rec.Tags...)
}

// RemoveTag 从照片上摘除标签. 返回当前标签集.
func (s *Store) RemoveTag(ctx context.Context, uri, tag string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	rec, ok := data[uri]
	if !ok {
		return []string{}
	}
	kept := rec.Tags[:0]
	for _, t := range rec.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	rec.Tags = kept
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	rec.UpdatedAt = nowISO()
	data[uri] = rec
	s.save(ctx, data)
	return append([]string{}, rec.Tags...)
}

// AllTags 返回全库去重后按字典序排序的标签全集.
func (s *Store) AllTags(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	set := make(map[string]struct{})
	for _, rec := range data {
		for _, t := range rec.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// SearchByTag 精确匹配标签，返回携带该标签的所有照片.
func (s *Store) SearchByTag(ctx context.Context, tag string) []Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	results := make([]Result, 0)
	for uri, rec := range data {
		for _, t := range rec.Tags {
			if t == tag {
				results = append(results, Result{URI: uri, Record: rec})
				break
			}
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].URI < results[j].URI })
	return results
}

// SearchByAnnotation 注释的大小写不敏感子串匹配.
func (s *Store) SearchByAnnotation(ctx context.Context, term string) []Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	lower := strings.ToLower(term)
	results := make([]Result, 0)
	for uri, rec := range data {
		if rec.Annotations != "" && strings.Contains(strings.ToLower(rec.Annotations), lower) {
			results = append(results, Result{URI: uri, Record: rec})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].URI < results[j].URI })
	return results
}

// DeleteTagGlobally 从所有照片上摘除标签并删除其颜色.
// 返回被更新的照片数量.
func (s *Store) DeleteTagGlobally(ctx context.Context, tag string) int {
	s.mu.Lock()

	data := s.load(ctx)
	changed := 0
	for uri, rec := range data {
		kept := make([]string, 0, len(rec.Tags))
		removed := false
		for _, t := range rec.Tags {
			if t == tag {
				removed = true
				continue
			}
			kept = append(kept, t)
		}
		if removed {
			rec.Tags = kept
			rec.UpdatedAt = nowISO()
			data[uri] = rec
			changed++
		}
	}
	if changed > 0 {
		s.save(ctx, data)
	}
	s.mu.Unlock()

	s.RemoveColor(ctx, tag)
	return changed
}

// URIsWithPrefix 返回 URI 以 prefix 开头的全部照片.
func (s *Store) URIsWithPrefix(ctx context.Context, prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	uris := make([]string, 0)
	for uri := range data {
		if strings.HasPrefix(uri, prefix) {
			uris = append(uris, uri)
		}
	}
	sort.Strings(uris)
	return uris
}

// Migrate 把单个 URI 的元数据条目改挂到新 URI 下，旧键没有记录时不做任何事.
// 返回是否迁移了记录.
func (s *Store) Migrate(ctx context.Context, oldURI, newURI string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	rec, ok := data[oldURI]
	if !ok {
		return false
	}

	delete(data, oldURI)
	data[newURI] = rec
	s.save(ctx, data)

	return true
}

// MigratePrefix 将 URI 前缀从 oldPrefix 改写为 newPrefix，用于文件夹改名后
// 保持元数据跟随照片. 只替换第一次出现的前缀，返回迁移条数.
func (s *Store) MigratePrefix(ctx context.Context, oldPrefix, newPrefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load(ctx)
	// 先收集再改写，改名目标可能仍以旧前缀开头（如 chem -> chemistry）
	moves := make([]string, 0)
	for uri := range data {
		if strings.HasPrefix(uri, oldPrefix) {
			moves = append(moves, uri)
		}
	}
	migrated := 0
	for _, uri := range moves {
		rec := data[uri]
		delete(data, uri)
		data[strings.Replace(uri, oldPrefix, newPrefix, 1)] = rec
		migrated++
	}
	if migrated > 0 {
		s.save(ctx, data)
	}
	return migrated
}
