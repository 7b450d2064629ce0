package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/config"
	"github.com/wiky-avis/Yatube/internal/core/follower"
	"github.com/wiky-avis/Yatube/internal/core/group"
	"github.com/wiky-avis/Yatube/internal/core/message"
	"github.com/wiky-avis/Yatube/internal/core/post"
	"github.com/wiky-avis/Yatube/internal/core/profile"
	"github.com/wiky-avis/Yatube/internal/core/user"
)

// writeError maps domain errors onto responses. Authorization failures
// redirect to safeView instead of failing.
func writeError(c *gin.Context, err error, safeView string) {
	switch {
	case errors.Is(err, message.ErrNotParticipant), errors.Is(err, post.ErrNotAuthor):
		c.Header("Location", safeView)
		c.JSON(http.StatusSeeOther, gin.H{"error": err.Error(), "redirect": safeView})

	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, group.ErrGroupNotFound),
		errors.Is(err, post.ErrPostNotFound),
		errors.Is(err, message.ErrTopicNotFound),
		errors.Is(err, message.ErrRecipientNotFound),
		errors.Is(err, follower.ErrNotFollowing),
		errors.Is(err, profile.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, post.ErrEmptyText),
		errors.Is(err, message.ErrEmptyBody),
		errors.Is(err, group.ErrInvalidSlug),
		errors.Is(err, group.ErrEmptyTitle),
		errors.Is(err, user.ErrInvalidSignup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, user.ErrUserTaken), errors.Is(err, group.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	default:
		config.Logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pageParam reads ?page=, treating anything that is not an integer as page 1.
func pageParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return n
}
