// Package router 管理路由配置，用于设置HTTP服务的路由规则.
// router 包只负责将路径和处理器绑定到 gin 引擎，处理器的实现由 pkg/internal/handle 提供.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/handle"
)

// RegisterPhotoRoutes 注册照片操作相关路由.
func RegisterPhotoRoutes(g *gin.RouterGroup) {
	photoRoutes := g.Group("/photos")
	{
		// 保存照片（文件名缺省时顺序命名）
		photoRoutes.POST("", handle.SavePhoto)
		// 跨文件夹移动 / 复制
		photoRoutes.POST("/move", handle.MovePhoto)
		photoRoutes.POST("/copy", handle.CopyPhoto)

		// 相册列表
		photoRoutes.GET("/:folder", handle.ListGallery)

		// 单张照片操作
		singleGroup := photoRoutes.Group("/:folder/:file")
		{
			singleGroup.GET("", handle.GetPhoto)
			singleGroup.DELETE("", handle.DeletePhoto)
		}
	}
}

// RegisterFolderRoutes 注册文件夹管理相关路由.
func RegisterFolderRoutes(g *gin.RouterGroup) {
	folderRoutes := g.Group("/folders")
	{
		folderRoutes.GET("", handle.ListFolders)
		folderRoutes.POST("", handle.CreateFolder)
		folderRoutes.PUT("/:name", handle.RenameFolder)
		folderRoutes.DELETE("/:name", handle.DeleteFolder)
		// 顺序计数器重建
		folderRoutes.POST("/:name/counter/resync", handle.ResyncCounter)
	}
}

// RegisterMetaRoutes 注册元数据与标签相关路由.
func RegisterMetaRoutes(g *gin.RouterGroup) {
	metaRoutes := g.Group("/meta/:folder/:file")
	{
		metaRoutes.GET("", handle.GetMetadata)
		metaRoutes.PATCH("", handle.UpdateMetadata)
		metaRoutes.POST("/tags", handle.AddTag)
		metaRoutes.DELETE("/tags/:tag", handle.RemoveTag)
	}

	tagRoutes := g.Group("/tags")
	{
		tagRoutes.GET("", handle.ListTags)
		tagRoutes.GET("/colors", handle.ListTagColors)
		tagRoutes.DELETE("/:tag", handle.DeleteTag)
		tagRoutes.GET("/:tag/color", handle.GetTagColor)
		tagRoutes.PUT("/:tag/color", handle.SetTagColor)
		tagRoutes.DELETE("/:tag/color", handle.RemoveTagColor)
	}
}

// RegisterSearchRoutes 注册搜索相关路由.
func RegisterSearchRoutes(g *gin.RouterGroup) {
	searchRoutes := g.Group("/search")
	{
		searchRoutes.GET("", handle.Search)
		searchRoutes.GET("/recent", handle.RecentSearches)
		searchRoutes.DELETE("/recent", handle.ClearRecentSearches)
	}
}
