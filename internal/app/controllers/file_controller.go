package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
)

// FileController handles file uploads
type FileController struct {
	fileService services.FileService
}

// NewFileController creates a new FileController
func NewFileController(fileService services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// UploadFile stores an uploaded file
// @Summary Upload a file
// @Description Stores a file under its category directory and returns its URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param category formData string true "Upload category, e.g. records or profiles"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "File stored"
// @Failure 400 {object} dto.APIResponse "Missing or oversized file"
// @Router /uploads [post]
func (c *FileController) UploadFile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "file form field is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category := ctx.PostForm("category")
	if category == "" {
		category = "misc"
	}

	upload, err := c.fileService.UploadFile(ctx.Request.Context(), userID, category, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(upload))
}

// DeleteFile removes an upload owned by the caller
// @Summary Delete an upload
// @Tags uploads
// @Produce json
// @Security CookieAuth
// @Param fileId path int true "File ID"
// @Success 200 {object} dto.APIResponse "File deleted"
// @Failure 403 {object} dto.APIResponse "Not the uploader"
// @Failure 404 {object} dto.APIResponse "File not found"
// @Router /uploads/{fileId} [delete]
func (c *FileController) DeleteFile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fileID, ok := parseIDParam(ctx, "fileId")
	if !ok {
		return
	}

	if err := c.fileService.DeleteFile(ctx.Request.Context(), userID, fileID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}
