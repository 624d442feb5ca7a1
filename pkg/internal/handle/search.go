package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// Search 处理搜索请求.
//
//	@Summary		搜索
//	@Description	按查询词在照片名、标签、注释与文件夹间检索，命中后记入最近搜索
//	@Tags			搜索
//	@Produce		json
//	@Param			q		query		string					true	"查询词"
//	@Param			filter	query		string					false	"范围 all|photos|tags|folders|annotations"
//	@Success		200		{object}	types.SearchResponse	"搜索结果响应"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Router			/api/v1/search [get]
func Search(c *gin.Context) {
	l := log.Logger()

	var req types.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid search request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())

	resp := svc.Search(c.Request.Context(), &req)
	if resp.Query != "" {
		svc.AddRecentSearch(c.Request.Context(), resp.Query)
	}

	c.JSON(http.StatusOK, resp)
}

// RecentSearches 处理最近搜索请求.
//
//	@Summary		最近搜索
//	@Description	返回最近搜索词，最新在前，最多 4 条
//	@Tags			搜索
//	@Produce		json
//	@Success		200	{object}	types.RecentSearchesResponse	"最近搜索响应"
//	@Router			/api/v1/search/recent [get]
func RecentSearches(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, types.RecentSearchesResponse{Searches: svc.RecentSearches(c.Request.Context())})
}

// ClearRecentSearches 处理清空最近搜索请求.
//
//	@Summary		清空最近搜索
//	@Tags			搜索
//	@Success		204	"清空成功"
//	@Router			/api/v1/search/recent [delete]
func ClearRecentSearches(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	svc.ClearRecentSearches(c.Request.Context())
	c.Status(http.StatusNoContent)
}
