package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// ZonePincodeCount 單一 zone 的 pincode 數量
type ZonePincodeCount struct {
	ZoneID   uint   `json:"zone_id"`
	ZoneName string `json:"zone_name"`
	Count    int64  `json:"pincode_count"`
}

// IZoneRepository DeliveryZone / ZonePincode 相關操作介面
type IZoneRepository interface {
	GetZones(ctx context.Context) ([]model.DeliveryZone, error)
	GetZoneByID(ctx context.Context, id uint) (*model.DeliveryZone, error)
	GetZoneByName(ctx context.Context, name string) (*model.DeliveryZone, error)
	GetZonesByIDs(ctx context.Context, ids []uint) ([]model.DeliveryZone, error)
	CreateZone(ctx context.Context, zone *model.DeliveryZone) error
	UpdateZone(ctx context.Context, zone *model.DeliveryZone) error
	DeleteZone(ctx context.Context, id uint) error
	DeletePincodesByZone(ctx context.Context, zoneID uint) error
	AddZonePincodes(ctx context.Context, pincodes []model.ZonePincode) error
	GetPincode(ctx context.Context, pincode string) (*model.ZonePincode, error)
	CountZones(ctx context.Context) (int64, error)
	CountPincodes(ctx context.Context) (int64, error)
	GetPincodeCountsByZone(ctx context.Context) ([]ZonePincodeCount, error)
}

type ZoneRepo struct {
	db *gorm.DB
}

func NewZoneRepo(db *gorm.DB) *ZoneRepo {
	return &ZoneRepo{db: db}
}

func (s *ZoneRepo) GetZones(ctx context.Context) ([]model.DeliveryZone, error) {
	var zones []model.DeliveryZone
	err := s.db.WithContext(ctx).Order("name ASC").Find(&zones).Error
	return zones, err
}

func (s *ZoneRepo) GetZoneByID(ctx context.Context, id uint) (*model.DeliveryZone, error) {
	var zone model.DeliveryZone
	err := s.db.WithContext(ctx).Preload("Pincodes").First(&zone, id).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (s *ZoneRepo) GetZoneByName(ctx context.Context, name string) (*model.DeliveryZone, error) {
	var zone model.DeliveryZone
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (s *ZoneRepo) GetZonesByIDs(ctx context.Context, ids []uint) ([]model.DeliveryZone, error) {
	var zones []model.DeliveryZone
	if len(ids) == 0 {
		return zones, nil
	}
	err := s.db.WithContext(ctx).Where("zone_id IN ?", ids).Find(&zones).Error
	return zones, err
}

func (s *ZoneRepo) CreateZone(ctx context.Context, zone *model.DeliveryZone) error {
	return s.db.WithContext(ctx).Create(zone).Error
}

func (s *ZoneRepo) UpdateZone(ctx context.Context, zone *model.DeliveryZone) error {
	return s.db.WithContext(ctx).Save(zone).Error
}

func (s *ZoneRepo) DeleteZone(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.DeliveryZone{}, id).Error
}

// DeletePincodesByZone 軟刪除不會觸發 FK cascade，pincode 需要另外刪
func (s *ZoneRepo) DeletePincodesByZone(ctx context.Context, zoneID uint) error {
	return s.db.WithContext(ctx).Where("zone_id = ?", zoneID).Delete(&model.ZonePincode{}).Error
}

func (s *ZoneRepo) AddZonePincodes(ctx context.Context, pincodes []model.ZonePincode) error {
	if len(pincodes) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&pincodes).Error
}

func (s *ZoneRepo) GetPincode(ctx context.Context, pincode string) (*model.ZonePincode, error) {
	var record model.ZonePincode
	err := s.db.WithContext(ctx).Where("pincode = ?", pincode).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ZoneRepo) CountZones(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.DeliveryZone{}).Count(&count).Error
	return count, err
}

func (s *ZoneRepo) CountPincodes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ZonePincode{}).Count(&count).Error
	return count, err
}

func (s *ZoneRepo) GetPincodeCountsByZone(ctx context.Context) ([]ZonePincodeCount, error) {
	var counts []ZonePincodeCount
	err := s.db.WithContext(ctx).Model(&model.ZonePincode{}).
		Select("zone_pincodes.zone_id, delivery_zones.name AS zone_name, COUNT(*) AS count").
		Joins("JOIN delivery_zones ON delivery_zones.zone_id = zone_pincodes.zone_id").
		Group("zone_pincodes.zone_id, delivery_zones.name").
		Scan(&counts).Error
	return counts, err
}
