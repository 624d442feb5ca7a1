package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// GetMetadata 处理读取元数据请求.
//
//	@Summary		读取元数据
//	@Description	返回照片的注释、标签与各标签颜色
//	@Tags			元数据管理
//	@Produce		json
//	@Param			folder	path		string					true	"文件夹名"
//	@Param			file	path		string					true	"文件名"
//	@Success		200		{object}	types.MetadataResponse	"元数据响应"
//	@Router			/api/v1/meta/{folder}/{file} [get]
func GetMetadata(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.GetMetadata(c.Request.Context(), c.Param("folder"), c.Param("file")))
}

// UpdateMetadata 处理更新元数据请求.
//
//	@Summary		更新元数据
//	@Description	部分更新照片注释或标签集，缺省字段保持原值
//	@Tags			元数据管理
//	@Accept			json
//	@Produce		json
//	@Param			folder	path		string						true	"文件夹名"
//	@Param			file	path		string						true	"文件名"
//	@Param			meta	body		types.UpdateMetadataRequest	true	"更新元数据请求"
//	@Success		200		{object}	types.MetadataResponse		"元数据响应"
//	@Failure		400		{object}	map[string]string			"请求参数错误"
//	@Router			/api/v1/meta/{folder}/{file} [patch]
func UpdateMetadata(c *gin.Context) {
	l := log.Logger()

	var req types.UpdateMetadataRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid update metadata request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.UpdateMetadata(c.Request.Context(), c.Param("folder"), c.Param("file"), &req))
}

// AddTag 处理贴标签请求.
//
//	@Summary		贴标签
//	@Description	给照片贴标签，返回更新后的标签集与标签颜色
//	@Tags			元数据管理
//	@Accept			json
//	@Produce		json
//	@Param			folder	path		string				true	"文件夹名"
//	@Param			file	path		string				true	"文件名"
//	@Param			tag		body		types.TagRequest	true	"贴标签请求"
//	@Success		200		{object}	types.TagsResponse	"标签集响应"
//	@Failure		400		{object}	map[string]string	"请求参数错误"
//	@Router			/api/v1/meta/{folder}/{file}/tags [post]
func AddTag(c *gin.Context) {
	l := log.Logger()

	var req types.TagRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid add tag request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.AddTag(c.Request.Context(), c.Param("folder"), c.Param("file"), req.Tag))
}

// RemoveTag 处理摘标签请求.
//
//	@Summary		摘标签
//	@Description	摘除照片上的指定标签
//	@Tags			元数据管理
//	@Produce		json
//	@Param			folder	path		string				true	"文件夹名"
//	@Param			file	path		string				true	"文件名"
//	@Param			tag		path		string				true	"标签"
//	@Success		200		{object}	types.TagsResponse	"标签集响应"
//	@Router			/api/v1/meta/{folder}/{file}/tags/{tag} [delete]
func RemoveTag(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.RemoveTag(c.Request.Context(), c.Param("folder"), c.Param("file"), c.Param("tag")))
}

// ListTags 处理标签全集请求.
//
//	@Summary		标签全集
//	@Description	返回去重排序后的标签全集与全部颜色映射
//	@Tags			标签管理
//	@Produce		json
//	@Success		200	{object}	types.AllTagsResponse	"标签全集响应"
//	@Router			/api/v1/tags [get]
func ListTags(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.AllTags(c.Request.Context()))
}

// DeleteTag 处理全局删除标签请求.
//
//	@Summary		全局删除标签
//	@Description	从所有照片摘除该标签并删除其颜色
//	@Tags			标签管理
//	@Produce		json
//	@Param			tag	path		string					true	"标签"
//	@Success		200	{object}	types.DeleteTagResponse	"删除标签响应"
//	@Router			/api/v1/tags/{tag} [delete]
func DeleteTag(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.DeleteTagGlobally(c.Request.Context(), c.Param("tag")))
}

// SetTagColor 处理覆盖标签颜色请求.
//
//	@Summary		设置标签颜色
//	@Description	覆盖标签的展示颜色（十六进制）
//	@Tags			标签管理
//	@Accept			json
//	@Produce		json
//	@Param			tag		path		string					true	"标签"
//	@Param			color	body		types.SetTagColorRequest	true	"设置颜色请求"
//	@Success		200		{object}	types.TagColorResponse	"标签颜色响应"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Router			/api/v1/tags/{tag}/color [put]
func SetTagColor(c *gin.Context) {
	l := log.Logger()

	var req types.SetTagColorRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid set tag color request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.SetTagColor(c.Request.Context(), c.Param("tag"), req.Color))
}

// GetTagColor 处理查询标签颜色请求.
//
//	@Summary		查询标签颜色
//	@Description	返回标签颜色，首次访问时从调色板分配
//	@Tags			标签管理
//	@Produce		json
//	@Param			tag	path		string					true	"标签"
//	@Success		200	{object}	types.TagColorResponse	"标签颜色响应"
//	@Router			/api/v1/tags/{tag}/color [get]
func GetTagColor(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.TagColor(c.Request.Context(), c.Param("tag")))
}

// RemoveTagColor 处理删除标签颜色请求.
//
//	@Summary		删除标签颜色
//	@Description	删除标签颜色映射，下次查询重新分配
//	@Tags			标签管理
//	@Param			tag	path	string	true	"标签"
//	@Success		204	"删除成功"
//	@Router			/api/v1/tags/{tag}/color [delete]
func RemoveTagColor(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	svc.RemoveTagColor(c.Request.Context(), c.Param("tag"))
	c.Status(http.StatusNoContent)
}

// ListTagColors 处理标签颜色表请求.
//
//	@Summary		标签颜色表
//	@Description	返回完整的标签到颜色映射
//	@Tags			标签管理
//	@Produce		json
//	@Success		200	{object}	map[string]string	"颜色表"
//	@Router			/api/v1/tags/colors [get]
func ListTagColors(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.AllTagColors(c.Request.Context()))
}
