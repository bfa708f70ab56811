package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/application"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-group-chat/pkg/response"
	"github.com/oksasatya/go-ddd-group-chat/pkg/validation"
)

type MessageUseCases struct {
	Send   *application.SendMessage
	Edit   *application.EditMessage
	Delete *application.DeleteMessage
	List   *application.GetGroupMessageList
	Search *application.SearchGroupMessages
}

type MessageHandler struct {
	MessageUseCases
	Notifier Notifier
}

func NewMessageHandler(uc MessageUseCases, notifier Notifier) *MessageHandler {
	return &MessageHandler{MessageUseCases: uc, Notifier: notifier}
}

// content is only checked for presence in the body; the empty-string rule
// belongs to the entity
type messageRequest struct {
	Content *string `json:"content" binding:"required,max=4000"`
}

// GetMessages GET /api/groups/:groupID/messages
func (h *MessageHandler) GetMessages(c *gin.Context) {
	list, err := h.List.Execute(c.Request.Context(), application.GetGroupMessageListInput{
		UserID:  c.GetString(middleware.CtxUserIDKey),
		GroupID: c.Param("groupID"),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toMessageViews(list), "messages", gin.H{"count": len(list)})
}

// PostMessage POST /api/groups/:groupID/messages
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Send.Execute(c.Request.Context(), application.SendMessageInput{
		SenderID: c.GetString(middleware.CtxUserIDKey),
		GroupID:  c.Param("groupID"),
		Content:  *req.Content,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.Notifier.MessageCreated(c.Request.Context(), m)
	response.Success(c, http.StatusCreated, toMessageView(m), "message sent", nil)
}

// PutMessage PUT /api/groups/:groupID/messages/:messageID
func (h *MessageHandler) PutMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Edit.Execute(c.Request.Context(), application.EditMessageInput{
		EditorID:  c.GetString(middleware.CtxUserIDKey),
		MessageID: c.Param("messageID"),
		Content:   *req.Content,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.Notifier.MessageEdited(c.Request.Context(), m)
	response.Success(c, http.StatusOK, toMessageView(m), "message edited", nil)
}

// DeleteMessage DELETE /api/groups/:groupID/messages/:messageID
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	m, err := h.Delete.Execute(c.Request.Context(), application.DeleteMessageInput{
		UserID:    c.GetString(middleware.CtxUserIDKey),
		GroupID:   c.Param("groupID"),
		MessageID: c.Param("messageID"),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.Notifier.MessageDeleted(c.Request.Context(), m)
	response.Success(c, http.StatusOK, gin.H{"id": m.ID}, "message deleted", nil)
}

// SearchMessages GET /api/groups/:groupID/messages/search?q=&size=
func (h *MessageHandler) SearchMessages(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Search.Execute(c.Request.Context(), application.SearchGroupMessagesInput{
		UserID:  c.GetString(middleware.CtxUserIDKey),
		GroupID: c.Param("groupID"),
		Query:   c.Query("q"),
		Size:    size,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
