package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/application"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-group-chat/pkg/response"
	"github.com/oksasatya/go-ddd-group-chat/pkg/validation"
)

type GroupHandler struct {
	Create   *application.CreateGroup
	List     *application.GetUserGroupList
	Add      *application.AddUserToGroup
	Remove   *application.RemoveUserFromGroup
	Notifier Notifier
}

func NewGroupHandler(create *application.CreateGroup, list *application.GetUserGroupList, add *application.AddUserToGroup, remove *application.RemoveUserFromGroup, notifier Notifier) *GroupHandler {
	return &GroupHandler{Create: create, List: list, Add: add, Remove: remove, Notifier: notifier}
}

type createGroupRequest struct {
	Name        string   `json:"name" binding:"required,groupname"`
	Description string   `json:"description" binding:"max=500"`
	MemberIDs   []string `json:"member_ids" binding:"max=200,unique"`
}

type addMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// PostGroup POST /api/groups
func (h *GroupHandler) PostGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Create.Execute(c.Request.Context(), application.CreateGroupInput{
		OwnerID:     c.GetString(middleware.CtxUserIDKey),
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toGroupView(g), "group created", nil)
}

// GetGroups GET /api/groups
func (h *GroupHandler) GetGroups(c *gin.Context) {
	groups, err := h.List.Execute(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toGroupViews(groups), "groups", gin.H{"count": len(groups)})
}

// PostMember POST /api/groups/:groupID/members
func (h *GroupHandler) PostMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Add.Execute(c.Request.Context(), application.AddUserToGroupInput{
		AdderID: c.GetString(middleware.CtxUserIDKey),
		GroupID: c.Param("groupID"),
		UserID:  req.UserID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.Notifier.UserAdded(c.Request.Context(), res.Group, res.User)
	response.Success(c, http.StatusOK, toGroupView(res.Group), "member added", nil)
}

// DeleteMember DELETE /api/groups/:groupID/members/:userID
func (h *GroupHandler) DeleteMember(c *gin.Context) {
	res, err := h.Remove.Execute(c.Request.Context(), application.RemoveUserFromGroupInput{
		RemoverID: c.GetString(middleware.CtxUserIDKey),
		GroupID:   c.Param("groupID"),
		UserID:    c.Param("userID"),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.Notifier.UserRemoved(c.Request.Context(), res.Group, res.User)
	response.Success(c, http.StatusOK, toGroupView(res.Group), "member removed", nil)
}
