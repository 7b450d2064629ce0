package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wiky-avis/Yatube/internal/adapters/httpapi/middleware"
)

const inboxURL = "/messages"

type MessageController struct{ mc MessageUseCase }

func NewMessageController(mc MessageUseCase) *MessageController {
	return &MessageController{mc: mc}
}

func (ctl *MessageController) Inbox(c *gin.Context) {
	inbox, err := ctl.mc.Inbox(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, inbox)
}

// CreateTopic reports an unknown recipient as a form error before anything
// is written.
func (ctl *MessageController) CreateTopic(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient" binding:"required"`
		Subject   string `json:"subject"`
		Body      string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	check := ctl.mc.CheckRecipient(c.Request.Context(), req.Recipient)
	if !check.OK {
		c.JSON(http.StatusBadRequest, gin.H{"error": check.Reason, "field": "recipient"})
		return
	}

	topic, err := ctl.mc.CreateTopic(c.Request.Context(), middleware.UserID(c), req.Recipient, req.Subject, req.Body)
	if err != nil {
		writeError(c, err, inboxURL)
		return
	}
	c.Header("Location", inboxURL+"/"+topic.ID)
	c.JSON(http.StatusCreated, topic)
}

func (ctl *MessageController) ReadTopic(c *gin.Context) {
	thread, err := ctl.mc.ReadTopic(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, inboxURL)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (ctl *MessageController) Answer(c *gin.Context) {
	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	msg, err := ctl.mc.AppendMessage(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Body)
	if err != nil {
		writeError(c, err, inboxURL)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// DeleteTopics never fails because of bad ids; it reports how many went.
func (ctl *MessageController) DeleteTopics(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	n, err := ctl.mc.DeleteTopics(c.Request.Context(), middleware.UserID(c), req.IDs)
	if err != nil {
		writeError(c, err, inboxURL)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
