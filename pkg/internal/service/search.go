package service

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/yeisme/photovault/pkg/cache"
	"github.com/yeisme/photovault/pkg/internal/types"
	plog "github.com/yeisme/photovault/pkg/log"
)

const (
	recentSearchesKey = "recentSearches"
	recentSearchesMax = 4

	allTagsCacheKey = "search:alltags"
	allTagsCacheTTL = time.Minute
)

// Search 按查询词在照片名、标签、注释与文件夹间检索.
// filter 取 all/photos/tags/folders/annotations，空值等同 all.
// 查询不区分大小写；标签优先精确匹配，无精确命中时退化为子串扩展.
func (s *PhotoService) Search(ctx context.Context, req *types.SearchRequest) *types.SearchResponse {
	query := strings.ToLower(strings.TrimSpace(req.Query))
	filter := req.Filter
	if filter == "" {
		filter = types.SearchFilterAll
	}

	resp := &types.SearchResponse{
		Query:   query,
		Filter:  filter,
		Results: []types.SearchResult{},
	}
	if query == "" {
		return resp
	}

	seen := make(map[string]bool)
	add := func(r types.SearchResult) {
		key := r.Type + ":" + r.URI
		if seen[key] {
			return
		}
		seen[key] = true
		resp.Results = append(resp.Results, r)
	}

	if filter == types.SearchFilterAll || filter == types.SearchFilterPhotos {
		s.searchPhotos(ctx, query, add)
	}
	if filter == types.SearchFilterAll || filter == types.SearchFilterTags {
		s.searchTags(ctx, query, add)
	}
	if filter == types.SearchFilterAll || filter == types.SearchFilterAnnotations {
		s.searchAnnotations(ctx, query, add)
	}
	if filter == types.SearchFilterAll || filter == types.SearchFilterFolders {
		s.searchFolders(ctx, query, add)
	}

	return resp
}

// searchPhotos 遍历所有文件夹的照片，按文件名、标签、注释逐级匹配.
func (s *PhotoService) searchPhotos(ctx context.Context, query string, add func(types.SearchResult)) {
	for _, folder := range s.registry.List(ctx) {
		dir := s.folderDir(folder)

		info, err := s.fs.Stat(ctx, dir)
		if err != nil || !info.Exists {
			continue
		}
		names, err := s.fs.List(ctx, dir)
		if err != nil {
			continue
		}

		for _, name := range names {
			if !isImageName(name) {
				continue
			}
			uri := dir + "/" + name
			rec := s.metaStore.Get(ctx, uri)

			reason := ""
			switch {
			case strings.Contains(strings.ToLower(name), query):
				reason = types.MatchFileName
			case containsTagSubstring(rec.Tags, query):
				reason = types.MatchTag
			case strings.Contains(strings.ToLower(rec.Annotations), query):
				reason = types.MatchAnnotation
			default:
				continue
			}

			add(types.SearchResult{
				Type:       types.ResultTypePhoto,
				URI:        uri,
				Folder:     folder,
				FileName:   name,
				Tags:       rec.Tags,
				MatchField: reason,
			})
		}
	}
}

// searchTags 先按查询词做精确标签检索，无命中时在标签全集里做子串扩展.
// 标签全集经短 TTL 缓存，降低重复搜索时的全量加载开销.
func (s *PhotoService) searchTags(ctx context.Context, query string, add func(types.SearchResult)) {
	matched := s.metaStore.SearchByTag(ctx, query)

	if len(matched) == 0 {
		for _, tag := range s.cachedAllTags(ctx) {
			if !strings.Contains(strings.ToLower(tag), query) {
				continue
			}
			matched = append(matched, s.metaStore.SearchByTag(ctx, tag)...)
		}
	}

	for _, m := range matched {
		add(types.SearchResult{
			Type:       types.ResultTypePhoto,
			URI:        m.URI,
			Folder:     folderOf(s.photosRoot, m.URI),
			FileName:   baseName(m.URI),
			Tags:       m.Record.Tags,
			MatchField: types.MatchTag,
		})
	}
}

func (s *PhotoService) searchAnnotations(ctx context.Context, query string, add func(types.SearchResult)) {
	for _, m := range s.metaStore.SearchByAnnotation(ctx, query) {
		add(types.SearchResult{
			Type:       types.ResultTypePhoto,
			URI:        m.URI,
			Folder:     folderOf(s.photosRoot, m.URI),
			FileName:   baseName(m.URI),
			Tags:       m.Record.Tags,
			MatchField: types.MatchAnnotation,
		})
	}
}

func (s *PhotoService) searchFolders(ctx context.Context, query string, add func(types.SearchResult)) {
	for _, folder := range s.registry.List(ctx) {
		if !strings.Contains(strings.ToLower(folder), query) {
			continue
		}
		add(types.SearchResult{
			Type:       types.ResultTypeFolder,
			URI:        s.folderDir(folder),
			Folder:     folder,
			MatchField: types.MatchFolderName,
		})
	}
}

// cachedAllTags 返回标签全集，可用缓存时走缓存.
func (s *PhotoService) cachedAllTags(ctx context.Context) []string {
	if s.cache == nil {
		return s.metaStore.AllTags(ctx)
	}
	tags, err := cache.GetOrSet(ctx, s.cache, allTagsCacheKey, func() ([]string, error) {
		return s.metaStore.AllTags(ctx), nil
	}, allTagsCacheTTL)
	if err != nil {
		return s.metaStore.AllTags(ctx)
	}
	return tags
}

// RecentSearches 返回最近搜索词，最新在前，最多 4 条.
func (s *PhotoService) RecentSearches(ctx context.Context) []string {
	raw, ok := s.store.Get(ctx, recentSearchesKey)
	if !ok {
		return []string{}
	}
	var searches []string
	if err := sonic.Unmarshal([]byte(raw), &searches); err != nil {
		plog.Logger().Warn().Err(err).Msg("corrupt recent searches, resetting")
		return []string{}
	}
	return searches
}

// AddRecentSearch 记录一次搜索：去重后插到队首，截断到 4 条.
func (s *PhotoService) AddRecentSearch(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.RecentSearches(ctx)
	}

	searches := s.RecentSearches(ctx)
	filtered := make([]string, 0, len(searches)+1)
	filtered = append(filtered, query)
	for _, q := range searches {
		if q != query {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > recentSearchesMax {
		filtered = filtered[:recentSearchesMax]
	}

	if data, err := sonic.Marshal(filtered); err == nil {
		s.store.Set(ctx, recentSearchesKey, string(data))
	}
	return filtered
}

// ClearRecentSearches 清空最近搜索.
func (s *PhotoService) ClearRecentSearches(ctx context.Context) {
	s.store.Remove(ctx, recentSearchesKey)
}

func containsTagSubstring(tags []string, query string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func folderOf(photosRoot, uri string) string {
	rel := strings.TrimPrefix(uri, photosRoot+"/")
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return ""
}

func baseName(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
