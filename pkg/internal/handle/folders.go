package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/log"
)

// ListFolders 处理文件夹列表请求.
//
//	@Summary		文件夹列表
//	@Description	按注册顺序返回全部文件夹
//	@Tags			文件夹管理
//	@Produce		json
//	@Success		200	{object}	types.ListFoldersResponse	"文件夹列表响应"
//	@Router			/api/v1/folders [get]
func ListFolders(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.ListFolders(c.Request.Context()))
}

// CreateFolder 处理注册文件夹请求.
//
//	@Summary		创建文件夹
//	@Description	注册新文件夹，物理目录延迟到首次存照片时创建
//	@Tags			文件夹管理
//	@Accept			json
//	@Produce		json
//	@Param			folder	body		types.CreateFolderRequest	true	"创建文件夹请求"
//	@Success		201		{object}	types.CreateFolderResponse	"创建文件夹响应"
//	@Failure		400		{object}	map[string]string			"请求参数错误或重名"
//	@Router			/api/v1/folders [post]
func CreateFolder(c *gin.Context) {
	l := log.Logger()

	var req types.CreateFolderRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create folder request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())

	resp, err := svc.CreateFolder(c.Request.Context(), &req)
	if err != nil {
		l.Warn().Err(err).Str("name", req.Name).Msg("failed to create folder")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RenameFolder 处理文件夹改名请求.
//
//	@Summary		重命名文件夹
//	@Description	文件夹改名，目录、元数据与顺序计数器一并迁移
//	@Tags			文件夹管理
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string						true	"原文件夹名"
//	@Param			folder	body		types.RenameFolderRequest	true	"重命名文件夹请求"
//	@Success		200		{object}	types.RenameFolderResponse	"重命名文件夹响应"
//	@Failure		400		{object}	map[string]string			"请求参数错误或重名"
//	@Failure		404		{object}	map[string]string			"文件夹不存在"
//	@Router			/api/v1/folders/{name} [put]
func RenameFolder(c *gin.Context) {
	l := log.Logger()

	var req types.RenameFolderRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid rename folder request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewPhotoService(c.Request.Context())

	resp, err := svc.RenameFolder(c.Request.Context(), c.Param("name"), &req)
	if err != nil {
		l.Warn().Err(err).Str("name", c.Param("name")).Msg("failed to rename folder")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteFolder 处理注销文件夹请求.
//
//	@Summary		删除文件夹
//	@Description	注销文件夹并删除其目录、照片、计数器与元数据
//	@Tags			文件夹管理
//	@Produce		json
//	@Param			name	path	string	true	"文件夹名"
//	@Success		204		"删除成功"
//	@Failure		404		{object}	map[string]string	"文件夹不存在"
//	@Router			/api/v1/folders/{name} [delete]
func DeleteFolder(c *gin.Context) {
	l := log.Logger()

	svc := service.NewPhotoService(c.Request.Context())

	if err := svc.DeleteFolder(c.Request.Context(), c.Param("name")); err != nil {
		l.Warn().Err(err).Str("name", c.Param("name")).Msg("failed to delete folder")
		c.JSON(statusOf(err), gin.H{"error": err.Error()})

		return
	}

	c.Status(http.StatusNoContent)
}

// ResyncCounter 处理计数器重建请求.
//
//	@Summary		重建顺序计数器
//	@Description	从文件夹目录里已有的照片文件重建顺序计数器
//	@Tags			文件夹管理
//	@Produce		json
//	@Param			name	path		string						true	"文件夹名"
//	@Success		200		{object}	types.ResyncCounterResponse	"重建计数器响应"
//	@Router			/api/v1/folders/{name}/counter/resync [post]
func ResyncCounter(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())
	c.JSON(http.StatusOK, svc.ResyncCounter(c.Request.Context(), c.Param("name")))
}
