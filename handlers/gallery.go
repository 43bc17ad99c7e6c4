package handlers

import (
	"net/http"
	"strconv"

	"pizzeria/models"
	"pizzeria/services/gallery"
	"pizzeria/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 20 << 20

type GalleryHandler struct {
	Service *gallery.Service
}

// UploadImage accepts a multipart "file" plus optional title, description, event_id and is_featured.
func (h *GalleryHandler) UploadImage(c *gin.Context) {
	logger := getLogger(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "File not provided", err.Error())
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unreadable upload", err.Error())
		return
	}
	defer src.Close()

	featured, _ := strconv.ParseBool(c.PostForm("is_featured"))
	img, err := h.Service.Upload(c.Request.Context(), src, fileHeader.Header.Get("Content-Type"), gallery.Upload{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		EventID:     c.PostForm("event_id"),
		IsFeatured:  featured,
	})
	if err != nil {
		utils.RespondError(c, "Failed to upload image", err)
		return
	}
	logger.Info("Image uploaded", zap.String("image_id", img.ID), zap.Int64("bytes", fileHeader.Size))
	c.JSON(http.StatusCreated, img)
}

func (h *GalleryHandler) ListImages(c *gin.Context) {
	images, err := h.Service.List(c.Request.Context(), c.Query("event_id"), queryBool(c, "featured_only", false), queryInt(c, "limit", 0))
	if err != nil {
		utils.RespondError(c, "Failed to list images", err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) FeaturedImages(c *gin.Context) {
	images, err := h.Service.Featured(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list images", err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) GetImage(c *gin.Context) {
	img, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Image not available", err)
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *GalleryHandler) UpdateImage(c *gin.Context) {
	var upd models.GalleryImageUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid image update", err.Error())
		return
	}
	img, err := h.Service.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, "Failed to update image", err)
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete image", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
