package controllers

import (
	"github.com/shashiranjanraj/bizapi/app/models"
	"github.com/shashiranjanraj/bizapi/app/repositories"
	"github.com/shashiranjanraj/bizapi/pkg/auth"
	"github.com/shashiranjanraj/bizapi/pkg/patch"
)

// UserInput is the create and update body of a user. The password is
// hashed before it is stored and is only written when supplied.
type UserInput struct {
	Name      *string `json:"name"       validate:"required,min=2"        column:"UserName"`
	Email     *string `json:"email"      validate:"required,email"        column:"Email"`
	Phone     *string `json:"phone"      validate:"min=10,max=15"         column:"Phone"`
	FirstName *string `json:"first_name"                                  column:"FirstName"`
	LastName  *string `json:"last_name"                                   column:"LastName"`
	Password  *string `json:"password"   validate:"min=8"                 column:"-"`
}

// UserController serves the /api/users routes.
type UserController = Resource[models.User, UserInput, UserInput]

// NewUserController wires the user resource to repo.
func NewUserController(repo *repositories.Repository[models.User]) *UserController {
	return &UserController{
		Name:   "User",
		Plural: "Users",
		Repo:   repo,
		Build: func(in *UserInput) (*models.User, error) {
			u := &models.User{
				UserName:  *in.Name,
				Email:     *in.Email,
				Phone:     in.Phone,
				FirstName: in.FirstName,
				LastName:  in.LastName,
			}
			if in.Password != nil {
				hash, err := auth.HashPassword(*in.Password)
				if err != nil {
					return nil, err
				}
				u.Password = hash
			}
			return u, nil
		},
		Extra: func(in *UserInput) (patch.Set, error) {
			if in.Password == nil {
				return nil, nil
			}
			hash, err := auth.HashPassword(*in.Password)
			if err != nil {
				return nil, err
			}
			return patch.Set{{Column: "Password", Value: hash}}, nil
		},
	}
}
