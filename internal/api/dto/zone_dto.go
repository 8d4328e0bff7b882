package dto

// ZoneDTO 建立/更新 zone 的請求
type ZoneDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// ValidatePincodeDTO validate-pincode 的請求
type ValidatePincodeDTO struct {
	Pincode string `json:"pincode"`
}
