package handlers

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hirehub/internal/imageprocessor"
	"hirehub/internal/logger"
	"hirehub/internal/storage"
	"hirehub/pkg/apperrors"
)

type UploadHandler struct {
	*BaseHandler
	storage storage.Storage
	images  *imageprocessor.Processor
	maxSize int64
}

func NewUploadHandler(base *BaseHandler, st storage.Storage, images *imageprocessor.Processor, maxSize int64) *UploadHandler {
	return &UploadHandler{BaseHandler: base, storage: st, images: images, maxSize: maxSize}
}

func (h *UploadHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	protected.POST("/upload", h.Upload)
}

// Upload принимает multipart поле "file" и возвращает публичный URL.
// С kind=avatar JPEG и PNG уменьшаются перед сохранением.
func (h *UploadHandler) Upload(c *gin.Context) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}
	if h.maxSize > 0 && header.Size > h.maxSize {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := path.Join(claims.UserID, uuid.NewString()+ext)

	var src io.Reader = file
	if c.PostForm("kind") == "avatar" && h.images != nil && isImageExt(ext) {
		data, err := io.ReadAll(file)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		fitted, err := h.images.Fit(data)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("avatar must be a JPEG or PNG image"))
			return
		}
		src = bytes.NewReader(fitted)
	}

	size, err := h.storage.Save(c.Request.Context(), key, src)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "file uploaded", "key", key, "size", size)

	c.JSON(http.StatusCreated, gin.H{
		"url":  h.storage.GetURL(key),
		"name": header.Filename,
		"size": size,
	})
}

// Serve - GET /uploads/*path
func (h *UploadHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	file, err := h.storage.Open(c.Request.Context(), key)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, file, nil)
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
