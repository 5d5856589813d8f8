package models

// Invoice is a billing record. Column names match the JSON keys.
type Invoice struct {
	InvoiceID   uint    `gorm:"column:InvoiceID;primaryKey;autoIncrement" json:"InvoiceID"`
	InvoiceDate string  `gorm:"column:InvoiceDate;size:10;not null"       json:"InvoiceDate"`
	Amount      float64 `gorm:"column:Amount;not null"                    json:"Amount"`
	Status      string  `gorm:"column:Status;size:50;not null"            json:"Status"`
	DueDate     string  `gorm:"column:DueDate;size:10;not null"           json:"DueDate"`
}

func (Invoice) TableName() string { return "Invoice" }
