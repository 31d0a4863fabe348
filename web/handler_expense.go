package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	st "tripmate/store/store"
	"tripmate/trip"
)

type addExpenseRequest struct {
	Description string             `json:"description" binding:"required"`
	Amount      float64            `json:"amount" binding:"required"`
	Category    st.ExpenseCategory `json:"category" binding:"required"`
	Date        *time.Time         `json:"date"`
}

// listExpenses returns the personal or group view with an independent
// sort toggle and a category breakdown sorted by spend.
func (s *Server) listExpenses(c *gin.Context) {
	expenses, err := s.store.ListExpenses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load expenses"})
		return
	}

	scope := c.DefaultQuery("scope", "personal")
	if scope == "personal" {
		expenses = trip.PersonalExpenses(expenses, sessionFrom(c).UserID)
	}

	newestFirst := c.DefaultQuery("sort", "newest") == "newest"
	expenses = trip.SortByDate(expenses, newestFirst)

	c.JSON(http.StatusOK, gin.H{
		"expenses":  expenses,
		"total":     trip.TotalAmount(expenses),
		"breakdown": trip.CategoryBreakdown(expenses),
	})
}

func (s *Server) addExpense(c *gin.Context) {
	var req addExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	expense := st.Expense{
		ID:          uuid.New(),
		UserID:      sessionFrom(c).UserID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Category:    req.Category,
	}
	if err := s.store.AppendExpense(c.Request.Context(), expense); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save expense"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// deleteExpense removes an entry, but only for its owner.
func (s *Server) deleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	expense, err := s.store.GetExpense(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, st.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load expense"})
		return
	}
	if expense.UserID != sessionFrom(c).UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may delete an expense"})
		return
	}

	if err := s.store.DeleteExpense(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete expense"})
		return
	}
	c.Status(http.StatusNoContent)
}

// getSettlement computes who owes whom under an equal group split.
func (s *Server) getSettlement(c *gin.Context) {
	ctx := c.Request.Context()
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load expenses"})
		return
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	balances := trip.Balances(expenses, users)
	c.JSON(http.StatusOK, gin.H{
		"balances":  balances,
		"transfers": trip.Settle(balances),
	})
}
