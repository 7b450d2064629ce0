package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wiky-avis/Yatube/internal/adapters/httpapi/middleware"
)

type FollowerController struct {
	fc FollowerUseCase
	uc UserUseCase
}

func NewFollowerController(fc FollowerUseCase, uc UserUseCase) *FollowerController {
	return &FollowerController{fc: fc, uc: uc}
}

// Follow is a no-op for yourself or an author already followed.
func (ctl *FollowerController) Follow(c *gin.Context) {
	author, err := ctl.uc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	created, err := ctl.fc.Follow(c.Request.Context(), middleware.UserID(c), author.ID)
	if err != nil {
		writeError(c, err, "/users/"+author.Username)
		return
	}
	c.JSON(http.StatusOK, gin.H{"author": author.Username, "created": created})
}

func (ctl *FollowerController) Unfollow(c *gin.Context) {
	author, err := ctl.uc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	if err := ctl.fc.Unfollow(c.Request.Context(), middleware.UserID(c), author.ID); err != nil {
		writeError(c, err, "/users/"+author.Username)
		return
	}
	c.JSON(http.StatusOK, gin.H{"author": author.Username, "following": false})
}

func (ctl *FollowerController) GetFollowers(c *gin.Context) {
	author, err := ctl.uc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	followers, err := ctl.fc.GetFollowers(c.Request.Context(), author.ID)
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *FollowerController) GetFollowing(c *gin.Context) {
	u, err := ctl.uc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	following, err := ctl.fc.GetFollowing(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, following)
}
