package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary  Create an operator account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body authCredentials true "credentials"
// @Success  200 {object} map[string]int
// @Failure  400 {object} map[string]string
// @Router   /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var in authCredentials
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	id, err := h.auth.SignUp(in.Username, in.Password)
	if err != nil {
		h.logError(c, http.StatusBadRequest, err.Error(), "auth_sign_up_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary  Sign in and obtain a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body authCredentials true "credentials"
// @Success  200 {object} map[string]string
// @Failure  401 {object} map[string]string
// @Router   /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var in authCredentials
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	token, err := h.auth.GenerateToken(in.Username, in.Password)
	if err != nil {
		h.logError(c, http.StatusUnauthorized, "invalid credentials", "auth_sign_in_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
