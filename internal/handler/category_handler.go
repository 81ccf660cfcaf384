package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/dto"
	"miniblog/internal/service"
	"miniblog/pkg/response"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateCategory(c.Request.Context(), categoryID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "category deleted successfully")
}
