package controllers

import (
	"github.com/shashiranjanraj/bizapi/app/models"
	"github.com/shashiranjanraj/bizapi/app/repositories"
)

// InvoiceInput is the create and update body of an invoice.
type InvoiceInput struct {
	InvoiceDate *string  `json:"InvoiceDate" validate:"required,regex=^[0-9]{4}-[0-9]{2}-[0-9]{2}$"`
	Amount      *float64 `json:"Amount"      validate:"required,gt=0"`
	Status      *string  `json:"Status"      validate:"required,min=1"`
	DueDate     *string  `json:"DueDate"     validate:"required,regex=^[0-9]{4}-[0-9]{2}-[0-9]{2}$"`
}

// InvoiceController serves the /api/invoices routes.
type InvoiceController = Resource[models.Invoice, InvoiceInput, InvoiceInput]

// NewInvoiceController wires the invoice resource to repo.
func NewInvoiceController(repo *repositories.Repository[models.Invoice]) *InvoiceController {
	return &InvoiceController{
		Name:   "Invoice",
		Plural: "Invoices",
		Repo:   repo,
		Build: func(in *InvoiceInput) (*models.Invoice, error) {
			return &models.Invoice{
				InvoiceDate: *in.InvoiceDate,
				Amount:      *in.Amount,
				Status:      *in.Status,
				DueDate:     *in.DueDate,
			}, nil
		},
	}
}
