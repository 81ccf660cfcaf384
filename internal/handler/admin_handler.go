package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/dto"
	"miniblog/internal/service"
	"miniblog/pkg/response"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateUserRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.SetUserActive(c.Request.Context(), userID, *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "user deleted successfully")
}
