package model

type DeliveryZone struct {
	ZoneID      uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null;type:varchar(100);unique" json:"name"`
	Description string        `gorm:"type:varchar(500)" json:"description"`
	IsActive    bool          `gorm:"not null;default:true" json:"is_active"`
	Pincodes    []ZonePincode `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"pincodes,omitempty"`
	BaseModel
}

// ZonePincode pincode 固定 6 碼數字
type ZonePincode struct {
	PincodeID uint   `gorm:"primaryKey" json:"id"`
	ZoneID    uint   `gorm:"not null;index" json:"zone_id"`
	Pincode   string `gorm:"not null;type:varchar(6);index" json:"pincode"`
	City      string `gorm:"type:varchar(100)" json:"city"`
	State     string `gorm:"type:varchar(100)" json:"state"`
	BaseModel
}
