package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	st "tripmate/store/store"
)

type addPhotoRequest struct {
	Data    string `json:"data" binding:"required"`
	Mime    string `json:"mime" binding:"required"`
	Caption string `json:"caption"`
}

type captionChoicesRequest struct {
	Data string `json:"data" binding:"required"`
	Mime string `json:"mime" binding:"required"`
}

func (s *Server) listPhotos(c *gin.Context) {
	photos, err := s.store.ListPhotos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load photos"})
		return
	}
	c.JSON(http.StatusOK, photos)
}

// addPhoto commits an uploaded image. When no caption is supplied one is
// generated; generation failures fall back to a fixed caption rather than
// failing the upload.
func (s *Server) addPhoto(c *gin.Context) {
	var req addPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caption := req.Caption
	if caption == "" {
		caption = s.ai.CaptionImage(c.Request.Context(), req.Data, req.Mime)
	}

	photo := st.Photo{
		ID:        uuid.New(),
		UserID:    sessionFrom(c).UserID,
		Data:      req.Data,
		Mime:      req.Mime,
		Caption:   caption,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendPhoto(c.Request.Context(), photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// captionChoices offers candidate captions for manual selection before
// the photo is committed.
func (s *Server) captionChoices(c *gin.Context) {
	var req captionChoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	choices := s.ai.CaptionChoices(c.Request.Context(), req.Data, req.Mime)
	c.JSON(http.StatusOK, gin.H{"choices": choices})
}
