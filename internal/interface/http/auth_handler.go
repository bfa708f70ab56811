package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/application"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
	"github.com/oksasatya/go-ddd-group-chat/pkg/response"
	"github.com/oksasatya/go-ddd-group-chat/pkg/validation"
)

type AuthHandler struct {
	Register   *application.Register
	Login      *application.Login
	Cookies    *helpers.Manager
	SessionTTL time.Duration
	Logger     *logrus.Logger
}

func NewAuthHandler(register *application.Register, login *application.Login, cookies *helpers.Manager, sessionTTL time.Duration, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Register: register, Login: login, Cookies: cookies, SessionTTL: sessionTTL, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionView struct {
	User      userView  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PostRegister POST /api/auth/register
func (h *AuthHandler) PostRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Register.Execute(c.Request.Context(), application.RegisterInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	exp := time.Now().Add(h.SessionTTL)
	h.Cookies.SetSession(c, u.Session, exp)
	helpers.LogInfo(h.Logger, "user registered", logrus.Fields{"user_id": u.ID, "request_id": c.GetString("request_id")})
	response.Success(c, http.StatusCreated, sessionView{User: toUserView(u), Token: u.Session, ExpiresAt: exp}, "registered", nil)
}

// PostLogin POST /api/auth/login
func (h *AuthHandler) PostLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Login.Execute(c.Request.Context(), application.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	exp := time.Now().Add(h.SessionTTL)
	h.Cookies.SetSession(c, u.Session, exp)
	response.Success(c, http.StatusOK, sessionView{User: toUserView(u), Token: u.Session, ExpiresAt: exp}, "login successful", nil)
}

// GetMe GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"id":    c.GetString(middleware.CtxUserIDKey),
		"name":  c.GetString(middleware.CtxUserNameKey),
		"email": c.GetString(middleware.CtxUserEmailKey),
	}, "profile", nil)
}

// PostLogout POST /api/auth/logout clears the cookie. The token stays valid
// until the next login replaces it.
func (h *AuthHandler) PostLogout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
