package controllers

import (
	"github.com/shashiranjanraj/bizapi/app/models"
	"github.com/shashiranjanraj/bizapi/app/repositories"
)

// RoleInput is the create and update body of a role.
type RoleInput struct {
	Name *string `json:"name" validate:"required,min=5"`
}

// RoleController serves the /api/roles routes.
type RoleController = Resource[models.Role, RoleInput, RoleInput]

// NewRoleController wires the role resource to repo.
func NewRoleController(repo *repositories.Repository[models.Role]) *RoleController {
	return &RoleController{
		Name:   "Role",
		Plural: "Roles",
		Repo:   repo,
		Build: func(in *RoleInput) (*models.Role, error) {
			return &models.Role{Name: *in.Name}, nil
		},
	}
}
