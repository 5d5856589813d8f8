package controllers

import (
	"github.com/shashiranjanraj/bizapi/app/models"
	"github.com/shashiranjanraj/bizapi/app/repositories"
)

// ProductCreateInput carries the client-chosen product_id.
type ProductCreateInput struct {
	ProductID *string  `json:"product_id" validate:"required,regex=^[0-9]{5}$"`
	Name      *string  `json:"name"       validate:"required,min=5"`
	Price     *float64 `json:"price"      validate:"required"`
	Cost      *float64 `json:"cost"       validate:"required"`
	Note      *string  `json:"note"`
}

// ProductInput is the update body; product_id is immutable.
type ProductInput struct {
	Name  *string  `json:"name"  validate:"required,min=5"`
	Price *float64 `json:"price" validate:"required"`
	Cost  *float64 `json:"cost"  validate:"required"`
	Note  *string  `json:"note"`
}

// ProductController serves the /api/products routes.
type ProductController = Resource[models.Product, ProductCreateInput, ProductInput]

// NewProductController wires the product resource to repo.
func NewProductController(repo *repositories.Repository[models.Product]) *ProductController {
	return &ProductController{
		Name:   "Product",
		Plural: "Products",
		Repo:   repo,
		Build: func(in *ProductCreateInput) (*models.Product, error) {
			return &models.Product{
				ProductID: *in.ProductID,
				Name:      *in.Name,
				Price:     *in.Price,
				Cost:      *in.Cost,
				Note:      in.Note,
			}, nil
		},
	}
}
