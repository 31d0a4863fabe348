package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripmate/trip"
)

func (s *Server) getHome(c *gin.Context) {
	status := trip.StatusAt(s.now(), trip.Itinerary)
	c.JSON(http.StatusOK, status)
}

func (s *Server) getItinerary(c *gin.Context) {
	c.JSON(http.StatusOK, trip.Itinerary)
}

// getDayLocations extracts the place names mentioned in one itinerary
// day's narrative, for the embedded map.
func (s *Server) getDayLocations(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	for _, entry := range trip.Itinerary {
		if entry.Day == day {
			locations := s.ai.ExtractLocations(c.Request.Context(), entry.Details)
			c.JSON(http.StatusOK, gin.H{"day": day, "locations": locations})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no such itinerary day"})
}

func (s *Server) getTips(c *gin.Context) {
	c.JSON(http.StatusOK, s.ai.TravelTips(c.Request.Context()))
}
