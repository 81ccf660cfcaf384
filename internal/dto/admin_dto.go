package dto

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=reader editor admin"`
}

type UpdateUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type SearchFilter struct {
	Query string `form:"q" binding:"required,min=1"`
	Limit int    `form:"limit"`
}
