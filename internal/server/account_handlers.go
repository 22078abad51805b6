package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voltms/voltconsole/internal/directory"
)

const defaultPageSize = 10

// AccountRequest represents an account create or update request
type AccountRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	EIN          string `json:"ein"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Username     string `json:"username" binding:"required,alphanumdash"`
}

// AccountListResponse is one page of accounts
type AccountListResponse struct {
	Accounts []directory.Account `json:"accounts"`
	Total    int                 `json:"total"`
	Offset   int                 `json:"offset"`
	Limit    int                 `json:"limit"`
}

func (r *AccountRequest) toAccount() directory.Account {
	return directory.Account{
		BusinessName: r.BusinessName,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		EIN:          r.EIN,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Username:     r.Username,
	}
}

func (s *Server) listAccounts(c *gin.Context) {
	query := c.Query("q")

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}

	accounts, total := s.accounts.List(query, offset, limit)
	c.JSON(http.StatusOK, AccountListResponse{
		Accounts: accounts,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

func (s *Server) getAccount(c *gin.Context) {
	account, err := s.accounts.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, directory.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to load account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) createAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := s.accounts.Create(req.toAccount())
	c.JSON(http.StatusCreated, account)
}

func (s *Server) updateAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := s.accounts.Update(c.Param("id"), req.toAccount())
	if err != nil {
		if errors.Is(err, directory.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to update account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) deleteAccount(c *gin.Context) {
	if err := s.accounts.Delete(c.Param("id")); err != nil {
		if errors.Is(err, directory.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to delete account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
