package dto

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
