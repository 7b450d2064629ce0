package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wiky-avis/Yatube/internal/adapters/httpapi/middleware"
	profilePort "github.com/wiky-avis/Yatube/internal/ports/profile"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

type UserController struct {
	uc UserUseCase
	pc ProfileUseCase
}

func NewUserController(uc UserUseCase, pc ProfileUseCase) *UserController {
	return &UserController{uc: uc, pc: pc}
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err, "/login")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"omitempty,email"`
		Password  string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.FirstName, req.LastName, req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err, "/register")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateProfile edits account fields and the avatar in one request.
// Omitted fields stay unchanged.
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Username  *string `json:"username" binding:"omitempty,min=1,max=150"`
		Email     *string `json:"email" binding:"omitempty,email"`
		Password  *string `json:"password" binding:"omitempty,min=8"`
		Photo     *string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	u, err := ctl.uc.UpdateUser(ctx, userID, userPort.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, err, "/")
		return
	}

	var p *profilePort.ProfileDTO
	if req.Photo != nil {
		p, err = ctl.pc.UpdatePhoto(ctx, userID, *req.Photo)
	} else {
		p, err = ctl.pc.EnsureProfile(ctx, userID)
	}
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "profile": p})
}

func (ctl *UserController) DeleteMe(c *gin.Context) {
	if err := ctl.uc.DeleteUser(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, err, "/")
		return
	}
	c.Status(http.StatusNoContent)
}
