package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/dto"
	"miniblog/internal/middleware"
	"miniblog/internal/service"
	"miniblog/pkg/response"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)

	resp, err := h.service.CreatePost(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) GetAllPosts(c *gin.Context) {
	var filter dto.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	resp, err := h.service.GetAllPosts(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetPostByID(c.Request.Context(), middleware.CurrentUser(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdatePost(c.Request.Context(), middleware.CurrentUser(c), postID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), middleware.CurrentUser(c), postID); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "post deleted successfully")
}

func (h *PostHandler) SearchPosts(c *gin.Context) {
	var filter dto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Message(c, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := h.service.SearchPosts(c.Request.Context(), middleware.CurrentUser(c), filter.Query, filter.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}
