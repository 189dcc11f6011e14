package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/arnavshah/roster-optimizer-go/pkg/roster"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a roster request without solving it. Structural
// errors that Generate would reject as fatal come back with valid=false,
// as do duplicate identifiers the optimizer would silently tolerate.
func (h *Handler) ValidateInput(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": "Failed to read request body",
		})
		return
	}

	req, err := roster.ParseRequest(body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if _, err := roster.Normalize(req); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	// Check for duplicate IDs
	memberIDs := make(map[int]bool)
	for _, m := range req.Members {
		if memberIDs[m.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Duplicate member ID: %d", m.ID)})
			return
		}
		memberIDs[m.ID] = true
	}

	dates := make(map[string]bool)
	for _, d := range req.Days {
		if dates[d] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate day: " + d})
			return
		}
		dates[d] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"member_count": len(req.Members),
			"day_count":    len(req.Days),
		},
	})
}
