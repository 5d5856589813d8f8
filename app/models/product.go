package models

// Product is a catalogue item keyed by a client-supplied 5-digit code.
type Product struct {
	ProductID string  `gorm:"column:product_id;primaryKey;size:5" json:"product_id"`
	Name      string  `gorm:"column:name;size:255;not null"       json:"name"`
	Price     float64 `gorm:"column:price;not null"               json:"price"`
	Cost      float64 `gorm:"column:cost;not null"                json:"cost"`
	Note      *string `gorm:"column:note;type:text"               json:"note"`
}

func (Product) TableName() string { return "products" }
