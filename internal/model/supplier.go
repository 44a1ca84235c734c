package model

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	PhoneNumber   string `gorm:"type:varchar(20)" json:"phone_number"`
	Address       string `gorm:"type:text" json:"address"`

	PurchaseOrders []PurchaseOrder `json:"purchase_orders,omitempty"`
}
