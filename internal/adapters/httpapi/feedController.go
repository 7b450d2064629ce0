package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wiky-avis/Yatube/internal/adapters/httpapi/middleware"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController {
	return &FeedController{fc: fc}
}

func (ctl *FeedController) GlobalFeed(c *gin.Context) {
	page, err := ctl.fc.GlobalFeed(c.Request.Context(), pageParam(c))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *FeedController) GroupFeed(c *gin.Context) {
	page, err := ctl.fc.GroupFeed(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *FeedController) ProfileFeed(c *gin.Context) {
	page, err := ctl.fc.ProfileFeed(c.Request.Context(), c.Param("username"), pageParam(c), middleware.UserID(c))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *FeedController) FollowedFeed(c *gin.Context) {
	page, err := ctl.fc.FollowedFeed(c.Request.Context(), middleware.UserID(c), pageParam(c))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *FeedController) Search(c *gin.Context) {
	q := c.Query("q")
	page, err := ctl.fc.Search(c.Request.Context(), q, pageParam(c))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "page": page})
}
