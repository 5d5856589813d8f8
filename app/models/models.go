// Package models holds the gorm models of the four API resources.
package models

// All returns one value of every model, in table bootstrap order.
func All() []interface{} {
	return []interface{}{
		&Invoice{},
		&Role{},
		&User{},
		&Product{},
	}
}
