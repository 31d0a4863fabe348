package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripmate/libs/diff"
	st "tripmate/store/store"
)

type addPlaceRequest struct {
	Name     string           `json:"name" binding:"required"`
	Category st.PlaceCategory `json:"category"`
	Lat      *float64         `json:"lat"`
	Lng      *float64         `json:"lng"`
}

type addTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

type placeResponse struct {
	st.Place
	MapLink string `json:"mapLink,omitempty"`
}

// toPlaceResponse attaches the external map search URL when the place
// carries coordinates.
func toPlaceResponse(p st.Place) placeResponse {
	r := placeResponse{Place: p}
	if p.HasCoords() {
		r.MapLink = "https://www.google.com/maps/search/?api=1&query=" +
			strconv.FormatFloat(*p.Lat, 'f', -1, 64) + "," +
			strconv.FormatFloat(*p.Lng, 'f', -1, 64)
	}
	return r
}

func (s *Server) listPlaces(c *gin.Context) {
	places, err := s.store.ListPlaces(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load places"})
		return
	}
	out := make([]placeResponse, 0, len(places))
	for _, p := range places {
		out = append(out, toPlaceResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addPlace(c *gin.Context) {
	var req addPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := req.Category
	if category == "" {
		category = st.PlaceGeneric
	}
	if category != st.PlaceCafe && category != st.PlaceGeneric {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown place category"})
		return
	}

	place := st.Place{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: category,
		Lat:      req.Lat,
		Lng:      req.Lng,
	}
	if err := s.store.AppendPlace(c.Request.Context(), place); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save place"})
		return
	}
	c.JSON(http.StatusCreated, toPlaceResponse(place))
}

func (s *Server) deletePlace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	if err := s.store.DeletePlace(c.Request.Context(), id); err != nil {
		if errors.Is(err, st.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete place"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) togglePlaceVisited(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	ctx := c.Request.Context()

	before, err := s.store.GetPlace(ctx, id)
	if err != nil {
		if errors.Is(err, st.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load place"})
		return
	}

	after, err := s.store.TogglePlaceVisited(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update place"})
		return
	}

	if summary := diff.ChangeSummary(*before, *after); summary != "" {
		slog.Info("place updated", "place", after.Name, "changes", summary)
	}
	c.JSON(http.StatusOK, toPlaceResponse(*after))
}

// getPlaceInfo returns the cached AI description when present; otherwise
// it fetches one and memoizes it on the place record, so the gateway is
// hit at most once per place.
func (s *Server) getPlaceInfo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	ctx := c.Request.Context()

	place, err := s.store.GetPlace(ctx, id)
	if err != nil {
		if errors.Is(err, st.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load place"})
		return
	}

	if place.Description != "" {
		c.JSON(http.StatusOK, gin.H{"text": place.Description, "sources": place.Sources, "cached": true})
		return
	}

	info := s.ai.PlaceInfo(ctx, place.Name)
	updated, err := s.store.SavePlaceInfo(ctx, id, info.Text, info.Sources)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cache place info"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": updated.Description, "sources": updated.Sources, "cached": false})
}

func (s *Server) listTodos(c *gin.Context) {
	todos, err := s.store.ListTodos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (s *Server) addTodo(c *gin.Context) {
	var req addTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo := st.Todo{ID: uuid.New(), Text: req.Text}
	if err := s.store.AppendTodo(c.Request.Context(), todo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save todo"})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (s *Server) toggleTodo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}
	todo, err := s.store.ToggleTodo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, st.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) deleteTodo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}
	if err := s.store.DeleteTodo(c.Request.Context(), id); err != nil {
		if errors.Is(err, st.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}
	c.Status(http.StatusNoContent)
}
