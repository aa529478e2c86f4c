package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dinehall/restaurant-foh/models"
)

var (
	ErrNoPermission  = errors.New("you do not have permission to perform this action")
	errNegativePrice = errors.New("price must not be negative")
)

// sessionFrom -> ambil Session yang diset auth middleware.
func sessionFrom(c *gin.Context) (models.Session, bool) {
	v, exists := c.Get("session")
	if !exists {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}
