package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bizapi/app/models"
	"github.com/shashiranjanraj/bizapi/pkg/cache"
)

func NewInvoiceRepository(db *gorm.DB, store cache.Store, ttl time.Duration) *Repository[models.Invoice] {
	return New(db, Options[models.Invoice]{
		Table:     models.Invoice{}.TableName(),
		KeyColumn: "InvoiceID",
		ParseKey:  UintKey,
		KeyOf:     func(i *models.Invoice) interface{} { return i.InvoiceID },
		Cache:     store,
		TTL:       ttl,
	})
}

func NewRoleRepository(db *gorm.DB, store cache.Store, ttl time.Duration) *Repository[models.Role] {
	return New(db, Options[models.Role]{
		Table:     models.Role{}.TableName(),
		KeyColumn: "id",
		ParseKey:  UintKey,
		KeyOf:     func(r *models.Role) interface{} { return r.ID },
		Cache:     store,
		TTL:       ttl,
	})
}

func NewUserRepository(db *gorm.DB, store cache.Store, ttl time.Duration) *Repository[models.User] {
	return New(db, Options[models.User]{
		Table:     models.User{}.TableName(),
		KeyColumn: "ID",
		ParseKey:  UintKey,
		KeyOf:     func(u *models.User) interface{} { return u.ID },
		Cache:     store,
		TTL:       ttl,
	})
}

func NewProductRepository(db *gorm.DB, store cache.Store, ttl time.Duration) *Repository[models.Product] {
	return New(db, Options[models.Product]{
		Table:     models.Product{}.TableName(),
		KeyColumn: "product_id",
		ParseKey:  StringKey,
		KeyOf:     func(p *models.Product) interface{} { return p.ProductID },
		Cache:     store,
		TTL:       ttl,
	})
}
