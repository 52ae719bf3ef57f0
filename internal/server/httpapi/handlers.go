package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daybook-app/daybook/internal/common"
)

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := s.accounts.Register(c.Request.Context(), req.Username, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrorUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": common.ErrorUserAlreadyExists.Error()})
			return
		}
		s.logger.Error(c.Request.Context(), "registration failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.logger.Info(c.Request.Context(), "registered user", "username", user.UserName)
	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	pair, err := s.accounts.Login(c.Request.Context(), req.Username, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toTokenPairResponse(pair))
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	pair, err := s.accounts.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrRefreshTokenExpired.Error()})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, toTokenPairResponse(pair))
}

func (s *Server) logout(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	if err := s.accounts.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) listEntries(c *gin.Context) {
	date := c.Query("date")

	list, err := s.journal.List(c.Request.Context(), currentUserID(c), date)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorInvalidDate.Error()})
			return
		}
		s.logger.Error(c.Request.Context(), "listing entries failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	entries := make([]entryResponse, 0, len(list))
	for _, e := range list {
		entries = append(entries, toEntryResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) createEntry(c *gin.Context) {
	var req entryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorEmptyTitleOrContent.Error()})
		return
	}

	if err := s.journal.Create(c.Request.Context(), currentUserID(c), req.Title, req.Content); err != nil {
		s.entryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "OK"})
}

func (s *Server) updateEntry(c *gin.Context) {
	var req entryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorEmptyTitleOrContent.Error()})
		return
	}

	if err := s.journal.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req.Title, req.Content); err != nil {
		s.entryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) deleteEntry(c *gin.Context) {
	if err := s.journal.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.entryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) entryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorEmptyTitleOrContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorEmptyTitleOrContent.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrorNotFound.Error()})
	default:
		s.logger.Error(c.Request.Context(), "entry operation failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries are required"})
		return
	}

	analysis, err := s.analyzer.Summarize(c.Request.Context(), toEntryTexts(req.Entries))
	if err != nil {
		s.logger.Error(c.Request.Context(), "analysis failed", "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis unavailable"})
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{Analysis: analysis})
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	exact, semantic, err := s.analyzer.Search(c.Request.Context(), req.Query, toEntryTexts(req.Entries))
	if err != nil {
		s.logger.Error(c.Request.Context(), "semantic search failed", "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "search unavailable"})
		return
	}

	c.JSON(http.StatusOK, searchResponse{
		ExactMatches:    toEntryPayloads(exact),
		SemanticMatches: toEntryPayloads(semantic),
	})
}
