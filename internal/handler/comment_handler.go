package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/dto"
	"miniblog/internal/middleware"
	"miniblog/internal/service"
	"miniblog/pkg/response"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateComment(c.Request.Context(), middleware.CurrentUser(c), postID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) GetCommentsByPostID(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.service.GetCommentsByPostID(c.Request.Context(), middleware.CurrentUser(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comments})
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateComment(c.Request.Context(), middleware.CurrentUser(c), commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), middleware.CurrentUser(c), commentID); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "comment deleted successfully")
}
