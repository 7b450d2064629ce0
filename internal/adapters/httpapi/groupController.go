package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type GroupController struct{ gc GroupUseCase }

func NewGroupController(gc GroupUseCase) *GroupController { return &GroupController{gc: gc} }

func (ctl *GroupController) ListGroups(c *gin.Context) {
	groups, err := ctl.gc.ListGroups(c.Request.Context())
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (ctl *GroupController) CreateGroup(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Slug        string `json:"slug" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	g, err := ctl.gc.CreateGroup(c.Request.Context(), req.Title, req.Slug, req.Description)
	if err != nil {
		writeError(c, err, "/groups")
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (ctl *GroupController) GetGroup(c *gin.Context) {
	g, err := ctl.gc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err, "/groups")
		return
	}
	c.JSON(http.StatusOK, g)
}

// DeleteGroup detaches the group's posts; they stay published.
func (ctl *GroupController) DeleteGroup(c *gin.Context) {
	if err := ctl.gc.DeleteGroup(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err, "/groups")
		return
	}
	c.Status(http.StatusNoContent)
}
