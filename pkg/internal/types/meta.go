package types

import "github.com/yeisme/photovault/pkg/internal/meta"

// MetadataResponse 照片元数据及各标签颜色.
type MetadataResponse struct {
	URI       string            `json:"uri"`
	Metadata  meta.Record       `json:"metadata"`
	TagColors map[string]string `json:"tag_colors,omitempty"`
}

// UpdateMetadataRequest 部分更新元数据. 字段为 nil 时保持原值.
type UpdateMetadataRequest struct {
	Annotations *string   `json:"annotations,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// TagRequest 贴/摘标签请求.
type TagRequest struct {
	Tag string `binding:"required" json:"tag"`
}

// TagsResponse 标签操作后的照片标签集.
type TagsResponse struct {
	URI  string   `json:"uri"`
	Tags []string `json:"tags"`
	// TagColor 本次操作涉及标签的颜色（仅贴标签时返回）.
	TagColor string `json:"tag_color,omitempty"`
}

// AllTagsResponse 标签全集与颜色映射.
type AllTagsResponse struct {
	Tags   []string          `json:"tags"`
	Colors map[string]string `json:"colors"`
}

// SetTagColorRequest 覆盖标签颜色请求.
type SetTagColorRequest struct {
	Color string `binding:"required,hexcolor" json:"color"`
}

// TagColorResponse 标签颜色.
type TagColorResponse struct {
	Tag   string `json:"tag"`
	Color string `json:"color"`
}

// DeleteTagResponse 全局删除标签的结果.
type DeleteTagResponse struct {
	Tag string `json:"tag"`
	// PhotosChanged 被摘除该标签的照片数量.
	PhotosChanged int `json:"photos_changed"`
}
