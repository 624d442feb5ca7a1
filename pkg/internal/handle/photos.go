package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// SavePhoto 处理保存照片请求.
//
//	@Summary		保存照片
//	@Description	保存照片到指定文件夹，文件名缺省时按顺序自动生成
//	@Tags			照片管理
//	@Accept			json
//	@Produce		json
//	@Param			photo	body		types.SavePhotoRequest	true	"保存照片请求"
//	@Success		201		{object}	types.SavePhotoResponse	"保存照片响应"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Failure		500		{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/photos [post]
func SavePhoto(c *gin.Context) {
	l := log.Logger()

	var req types.SavePhotoRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid save photo request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())

	resp, err := svc.SavePhoto(c.Request.Context(), &req)
	if err != nil {
		l.Error().Err(err).Str("folder", req.Folder).Msg("failed to save photo")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetPhoto 处理读取照片请求.
//
//	@Summary		读取照片
//	@Description	读取照片内容与元数据，encoding 指定返回内容编码
//	@Tags			照片管理
//	@Produce		json
//	@Param			folder		path		string					true	"文件夹名"
//	@Param			file		path		string					true	"文件名"
//	@Param			encoding	query		string					false	"内容编码 utf8|base64"
//	@Success		200			{object}	types.GetPhotoResponse	"读取照片响应"
//	@Failure		404			{object}	map[string]string		"照片不存在"
//	@Failure		500			{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/photos/{folder}/{file} [get]
func GetPhoto(c *gin.Context) {
	l := log.Logger()

	svc := service.NewPhotoService(c.Request.Context())

	resp, err := svc.GetPhoto(c.Request.Context(), c.Param("folder"), c.Param("file"), c.Query("encoding"))
	if err != nil {
		l.Warn().Err(err).Str("folder", c.Param("folder")).Str("file", c.Param("file")).Msg("failed to get photo")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListGallery 处理相册列表请求.
//
//	@Summary		相册列表
//	@Description	列出文件夹内全部照片，按顺序编号升序
//	@Tags			照片管理
//	@Produce		json
//	@Param			folder	path		string					true	"文件夹名"
//	@Success		200		{object}	types.GalleryResponse	"相册列表响应"
//	@Failure		500		{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/photos/{folder} [get]
func ListGallery(c *gin.Context) {
	l := log.Logger()

	svc := service.NewPhotoService(c.Request.Context())

	resp, err := svc.ListGallery(c.Request.Context(), c.Param("folder"))
	if err != nil {
		l.Error().Err(err).Str("folder", c.Param("folder")).Msg("failed to list gallery")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// MovePhoto 处理移动照片请求.
//
//	@Summary		移动照片
//	@Description	把照片移到另一个文件夹，元数据随之迁移
//	@Tags			照片管理
//	@Accept			json
//	@Produce		json
//	@Param			move	body		types.MovePhotoRequest	true	"移动照片请求"
//	@Success		200		{object}	types.MovePhotoResponse	"移动照片响应"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Failure		404		{object}	map[string]string		"照片不存在"
//	@Failure		500		{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/photos/move [post]
func MovePhoto(c *gin.Context) {
	l := log.Logger()

	var req types.MovePhotoRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid move photo request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())

	resp, err := svc.MovePhoto(c.Request.Context(), &req)
	if err != nil {
		l.Error().Err(err).Str("file", req.FileName).Msg("failed to move photo")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// CopyPhoto 处理复制照片请求.
//
//	@Summary		复制照片
//	@Description	复制照片到目标文件夹，新照片从空元数据开始
//	@Tags			照片管理
//	@Accept			json
//	@Produce		json
//	@Param			copy	body		types.CopyPhotoRequest	true	"复制照片请求"
//	@Success		201		{object}	types.CopyPhotoResponse	"复制照片响应"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Failure		404		{object}	map[string]string		"照片不存在"
//	@Failure		500		{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/photos/copy [post]
func CopyPhoto(c *gin.Context) {
	l := log.Logger()

	var req types.CopyPhotoRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid copy photo request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())

	resp, err := svc.CopyPhoto(c.Request.Context(), &req)
	if err != nil {
		l.Error().Err(err).Str("file", req.FileName).Msg("failed to copy photo")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// DeletePhoto 处理删除照片请求.
//
//	@Summary		删除照片
//	@Description	删除照片及其元数据，idempotent 为 true 时照片不存在不报错
//	@Tags			照片管理
//	@Produce		json
//	@Param			folder		path	string	true	"文件夹名"
//	@Param			file		path	string	true	"文件名"
//	@Param			idempotent	query	bool	false	"幂等删除"
//	@Success		204			"删除成功"
//	@Failure		404			{object}	map[string]string	"照片不存在"
//	@Failure		500			{object}	map[string]string	"服务器内部错误"
//	@Router			/api/v1/photos/{folder}/{file} [delete]
func DeletePhoto(c *gin.Context) {
	l := log.Logger()

	req := types.DeletePhotoRequest{
		Folder:     c.Param("folder"),
		FileName:   c.Param("file"),
		Idempotent: c.Query("idempotent") == "true",
	}

	svc := service.NewPhotoService(c.Request.Context())

	if err := svc.DeletePhoto(c.Request.Context(), &req); err != nil {
		l.Warn().Err(err).Str("folder", req.Folder).Str("file", req.FileName).Msg("failed to delete photo")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.Status(http.StatusNoContent)
}
