package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wiky-avis/Yatube/internal/adapters/httpapi/middleware"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

type postRequest struct {
	Text  string  `json:"text" binding:"required"`
	Group string  `json:"group"`
	Image *string `json:"image"`
}

func postURL(c *gin.Context) string {
	return "/users/" + c.Param("username") + "/posts/" + c.Param("id")
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), middleware.UserID(c), req.Text, req.Group, req.Image)
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	view, err := ctl.pc.GetPost(c.Request.Context(), c.Param("username"), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, view)
}

// EditPost sends anyone but the author back to the post view.
func (ctl *PostController) EditPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.pc.EditPost(c.Request.Context(), middleware.UserID(c), c.Param("username"), c.Param("id"), req.Text, req.Group, req.Image)
	if err != nil {
		writeError(c, err, postURL(c))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), middleware.UserID(c), c.Param("username"), c.Param("id")); err != nil {
		writeError(c, err, postURL(c))
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *PostController) AddComment(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.pc.AddComment(c.Request.Context(), middleware.UserID(c), c.Param("username"), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err, postURL(c))
		return
	}
	c.JSON(http.StatusCreated, res)
}
