package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	user "sportify-backend/internal/domains/user"
	"sportify-backend/internal/shared/middleware"
	res "sportify-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUser provisions an identity for an admin caller
// POST /functions/v1/create-user
//
// Every failure answers 400 {"error": "..."}.
func (h *UserHandler) CreateUser(c *gin.Context) {
	token, err := middleware.BearerToken(c)
	if err != nil {
		res.BadRequest(c, user.ErrMissingToken.Error())
		return
	}

	var req user.ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.ProvisionUser(c.Request.Context(), token, req)
	if err != nil {
		res.BadRequest(c, err.Error())
		return
	}

	res.JSON(c, http.StatusOK, resp)
}
