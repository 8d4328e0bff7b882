package model

type User struct {
	UserID      uint    `gorm:"primaryKey" json:"user_id"`
	UserName    string  `gorm:"not null;type:varchar(100)" json:"name"`
	UserEmail   string  `gorm:"unique;not null;type:varchar(100)" json:"email"`
	UserPhone   string  `gorm:"type:varchar(50)" json:"phone"`
	UserAddress string  `gorm:"type:varchar(500)" json:"address"`
	Orders      []Order `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	BaseModel
}
