package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	st "tripmate/store/store"
	"tripmate/trip"
)

type updateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

type friendResponse struct {
	st.User
	BirthdayToday bool `json:"birthdayToday"`
}

// listFriends returns the roster ordered by upcoming birthday; birthdays
// already passed this year sort to the end. Entries whose birthday falls
// on the current date carry a flag so clients can show a badge.
func (s *Server) listFriends(c *gin.Context) {
	users, err := s.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	now := s.now()
	sorted := trip.SortByUpcomingBirthday(users, now)
	friends := make([]friendResponse, 0, len(sorted))
	for _, u := range sorted {
		friends = append(friends, friendResponse{
			User:          u,
			BirthdayToday: trip.IsBirthdayToday(u.Birthday, now),
		})
	}
	c.JSON(http.StatusOK, friends)
}

func (s *Server) updateAvatar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.UpdateUserAvatar(c.Request.Context(), id, req.Avatar); err != nil {
		if errors.Is(err, st.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update avatar"})
		return
	}

	user, err := s.store.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
