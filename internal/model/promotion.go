package model

import "time"

type Promotion struct {
	PromotionID     uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null;type:varchar(200)" json:"title"`
	Subtitle        string    `gorm:"type:varchar(300)" json:"subtitle"`
	Image           string    `gorm:"type:varchar(500)" json:"image"`
	DiscountPercent int       `gorm:"not null;default:0" json:"discount_percent"`
	StartsAt        time.Time `gorm:"not null" json:"starts_at"`
	EndsAt          time.Time `gorm:"not null" json:"ends_at"`
	Active          bool      `gorm:"not null;default:true" json:"active"`
	BaseModel
}

// IsLive 活動窗口內且啟用
func (p *Promotion) IsLive(now time.Time) bool {
	return p.Active && !now.Before(p.StartsAt) && now.Before(p.EndsAt)
}
