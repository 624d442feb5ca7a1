package types

// 搜索范围过滤器.
const (
	SearchFilterAll         = "all"
	SearchFilterPhotos      = "photos"
	SearchFilterTags        = "tags"
	SearchFilterFolders     = "folders"
	SearchFilterAnnotations = "annotations"
)

// 搜索结果类型.
const (
	ResultTypePhoto  = "photo"
	ResultTypeFolder = "folder"
)

// 命中字段，说明结果因何匹配.
const (
	MatchFileName   = "file_name"
	MatchTag        = "tag"
	MatchAnnotation = "annotation"
	MatchFolderName = "folder_name"
)

// SearchRequest 搜索请求. Filter 为空等同 all.
type SearchRequest struct {
	Query  string `binding:"required" form:"q" json:"q"`
	Filter string `binding:"omitempty,oneof=all photos tags folders annotations" form:"filter" json:"filter,omitempty"`
}

// SearchResult 单条搜索结果.
type SearchResult struct {
	Type       string   `json:"type"` // photo 或 folder
	URI        string   `json:"uri"`
	Folder     string   `json:"folder,omitempty"`
	FileName   string   `json:"file_name,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	MatchField string   `json:"match_field"`
}

// SearchResponse 搜索结果集，已按 (type, uri) 去重.
type SearchResponse struct {
	Query   string         `json:"query"`
	Filter  string         `json:"filter"`
	Results []SearchResult `json:"results"`
}

// RecentSearchesResponse 最近搜索词，最新在前.
type RecentSearchesResponse struct {
	Searches []string `json:"searches"`
}
