package dto

import (
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
)

// PromotionDTO 建立/更新活動的請求
type PromotionDTO struct {
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	Image           string    `json:"image"`
	DiscountPercent int       `json:"discount_percent"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	Active          *bool     `json:"active,omitempty"`
}

func (d PromotionDTO) ToModel() *model.Promotion {
	active := true
	if d.Active != nil {
		active = *d.Active
	}
	return &model.Promotion{
		Title:           d.Title,
		Subtitle:        d.Subtitle,
		Image:           d.Image,
		DiscountPercent: d.DiscountPercent,
		StartsAt:        d.StartsAt,
		EndsAt:          d.EndsAt,
		Active:          active,
	}
}
