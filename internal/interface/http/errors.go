package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/pkg/response"
)

// StatusOf maps a domain error kind to its HTTP status.
func StatusOf(kind domainerr.Kind) int {
	switch kind {
	case domainerr.KindInvalidUser, domainerr.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domainerr.KindUserNotAdminer, domainerr.KindUserIsntInGroup, domainerr.KindCurrentUserIsntMessageOwner:
		return http.StatusForbidden
	case domainerr.KindCredentialsAlreadyInUse:
		return http.StatusConflict
	case domainerr.KindUnexpected:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// writeDomainError renders a use case failure. The kind goes in error.code
// so clients can branch without parsing the message.
func writeDomainError(c *gin.Context, err error) {
	kind := domainerr.KindOf(err)
	msg := err.Error()
	if kind == domainerr.KindUnexpected {
		msg = "internal error"
	}
	response.Error[any](c, StatusOf(kind), msg, gin.H{"code": kind.String()})
}
