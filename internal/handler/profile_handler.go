package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/middleware"
	"miniblog/internal/service"
	"miniblog/pkg/response"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)

	resp, err := h.service.GetCurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Message(c, http.StatusBadRequest, "avatar file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Message(c, http.StatusBadRequest, "could not read avatar file")
		return
	}
	defer file.Close()

	resp, err := h.service.UpdateAvatar(c.Request.Context(), user.ID, file, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
