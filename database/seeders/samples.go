package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bizapi/app/models"
	"github.com/shashiranjanraj/bizapi/app/repositories"
)

func init() {
	Register("roles", SeedRoles)
	Register("invoices", SeedInvoices)
}

func SeedRoles(db *gorm.DB) error {
	return seedIfEmpty(repositories.NewRoleRepository(db, nil, 0), []models.Role{
		{Name: "admin"},
		{Name: "manager"},
		{Name: "cashier"},
	})
}

func SeedInvoices(db *gorm.DB) error {
	return seedIfEmpty(repositories.NewInvoiceRepository(db, nil, 0), []models.Invoice{
		{InvoiceDate: "2024-01-01", Amount: 100, Status: "paid", DueDate: "2024-02-01"},
		{InvoiceDate: "2024-01-15", Amount: 250.5, Status: "pending", DueDate: "2024-02-15"},
		{InvoiceDate: "2024-02-01", Amount: 75, Status: "overdue", DueDate: "2024-03-01"},
	})
}
