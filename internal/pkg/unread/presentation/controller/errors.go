package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
)

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, guild.ErrChannelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
	case errors.Is(err, guild.ErrMissingPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": "missing permission"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
