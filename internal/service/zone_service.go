package service

import (
	"context"
	"errors"
	"io"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/util/csvutil"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrZoneNotFound   = errors.New("zone not found")
	ErrZoneNameTaken  = errors.New("zone name already exists")
	ErrInvalidPincode = errors.New("pincode must be exactly 6 digits")
	ErrEmptyUpload    = errors.New("uploaded file has no valid rows")
)

// ZoneImportSummary 單一 zone 的匯入結果
type ZoneImportSummary struct {
	ZoneName        string `json:"zone_name"`
	Created         bool   `json:"created"`
	PincodesAdded   int    `json:"pincodes_added"`
	PincodesSkipped int    `json:"pincodes_skipped"`
}

// UploadResult CSV 匯入的整體結果，部分成功
type UploadResult struct {
	Zones       []ZoneImportSummary `json:"zones"`
	FailedZones []csvutil.RowError  `json:"failed_zones,omitempty"`
	RowErrors   []csvutil.RowError  `json:"row_errors"`
	TotalRows   int                 `json:"totalRows"`
	ValidRows   int                 `json:"validRows"`
	ErrorRows   int                 `json:"errorRows"`
}

// PincodeLookup validate-pincode 的查詢結果
type PincodeLookup struct {
	Serviceable bool   `json:"serviceable"`
	ZoneID      uint   `json:"zone_id,omitempty"`
	ZoneName    string `json:"zone_name,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}

// ZoneStatistics zones/statistics 的彙總
type ZoneStatistics struct {
	TotalZones    int64                 `json:"total_zones"`
	TotalPincodes int64                 `json:"total_pincodes"`
	PerZone       []db.ZonePincodeCount `json:"per_zone"`
}

type IZoneService interface {
	ImportZonesCSV(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*UploadResult, error)
	GetZones(ctx context.Context) ([]model.DeliveryZone, error)
	GetZoneByID(ctx context.Context, id uint) (*model.DeliveryZone, error)
	CreateZone(ctx context.Context, zone *model.DeliveryZone) error
	UpdateZone(ctx context.Context, id uint, name, description string, isActive *bool) (*model.DeliveryZone, error)
	DeleteZone(ctx context.Context, id uint) error
	ValidatePincode(ctx context.Context, pincode string) (*PincodeLookup, error)
	GetStatistics(ctx context.Context) (*ZoneStatistics, error)
	SampleCSV() string
}

type ZoneService struct {
	store db.Store
}

func NewZoneService(store db.Store) *ZoneService {
	return &ZoneService{store: store}
}

// ImportZonesCSV 解析上傳檔並逐 zone 匯入
// 單列錯誤與單一 zone 失敗都不會中斷其餘匯入
func (z *ZoneService) ImportZonesCSV(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*UploadResult, error) {
	if fileErrs := csvutil.ValidateFile(filename, contentType, size); len(fileErrs) > 0 {
		return nil, errors.New(fileErrs[0])
	}

	parsed, err := csvutil.ParseZonePincodes(io.LimitReader(r, csvutil.MaxFileSize))
	if err != nil {
		return nil, err
	}

	result := &UploadResult{
		Zones:     []ZoneImportSummary{},
		RowErrors: parsed.Errors,
		TotalRows: parsed.TotalRows,
		ValidRows: parsed.ValidRows,
		ErrorRows: parsed.ErrorRows,
	}
	if parsed.ValidRows == 0 {
		if parsed.ErrorRows == 0 {
			return nil, ErrEmptyUpload
		}
		return result, nil
	}

	groups, order := csvutil.GroupByZone(parsed.Data)
	for _, zoneName := range order {
		summary, err := z.importZoneGroup(ctx, zoneName, groups[zoneName])
		if err != nil {
			log.Warn().Err(err).Str("zone", zoneName).Msg("zone import failed")
			result.FailedZones = append(result.FailedZones, csvutil.RowError{
				Error: err.Error(),
				Data:  map[string]string{"zone_name": zoneName},
			})
			continue
		}
		result.Zones = append(result.Zones, *summary)
	}
	return result, nil
}

// importZoneGroup 同一 zone 的資料在單一交易內 find-or-create 加批次新增
func (z *ZoneService) importZoneGroup(ctx context.Context, zoneName string, rows []csvutil.ZoneRow) (*ZoneImportSummary, error) {
	summary := &ZoneImportSummary{ZoneName: zoneName}
	err := z.store.Transaction(ctx, func(tx db.Store) error {
		zone, err := tx.GetZoneByName(ctx, zoneName)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			zone = &model.DeliveryZone{Name: zoneName, IsActive: true}
			if err := tx.CreateZone(ctx, zone); err != nil {
				return err
			}
			summary.Created = true
		case err != nil:
			return err
		}

		existing, err := tx.GetZoneByID(ctx, zone.ZoneID)
		if err != nil {
			return err
		}
		existingSet := make(map[string]struct{}, len(existing.Pincodes))
		for _, p := range existing.Pincodes {
			existingSet[p.Pincode] = struct{}{}
		}

		var toAdd []model.ZonePincode
		for _, row := range rows {
			if _, ok := existingSet[row.Pincode]; ok {
				summary.PincodesSkipped++
				continue
			}
			existingSet[row.Pincode] = struct{}{}
			toAdd = append(toAdd, model.ZonePincode{
				ZoneID:  zone.ZoneID,
				Pincode: row.Pincode,
				City:    row.City,
				State:   row.State,
			})
		}
		summary.PincodesAdded = len(toAdd)
		return tx.AddZonePincodes(ctx, toAdd)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (z *ZoneService) GetZones(ctx context.Context) ([]model.DeliveryZone, error) {
	return z.store.GetZones(ctx)
}

func (z *ZoneService) GetZoneByID(ctx context.Context, id uint) (*model.DeliveryZone, error) {
	zone, err := z.store.GetZoneByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return zone, nil
}

func (z *ZoneService) CreateZone(ctx context.Context, zone *model.DeliveryZone) error {
	if err := csvutil.ValidateZoneName(zone.Name); err != nil {
		return err
	}
	_, err := z.store.GetZoneByName(ctx, zone.Name)
	if err == nil {
		return ErrZoneNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return z.store.CreateZone(ctx, zone)
}

func (z *ZoneService) UpdateZone(ctx context.Context, id uint, name, description string, isActive *bool) (*model.DeliveryZone, error) {
	if err := csvutil.ValidateZoneName(name); err != nil {
		return nil, err
	}

	var zone *model.DeliveryZone
	err := z.store.Transaction(ctx, func(tx db.Store) error {
		existing, err := tx.GetZoneByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrZoneNotFound
			}
			return err
		}

		if name != existing.Name {
			other, err := tx.GetZoneByName(ctx, name)
			if err == nil && other.ZoneID != id {
				return ErrZoneNameTaken
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		existing.Name = name
		existing.Description = description
		if isActive != nil {
			existing.IsActive = *isActive
		}
		// Save 連同 Preload 進來的 pincodes 一起寫回，清掉避免誤寫
		existing.Pincodes = nil
		if err := tx.UpdateZone(ctx, existing); err != nil {
			return err
		}
		zone = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zone, nil
}

func (z *ZoneService) DeleteZone(ctx context.Context, id uint) error {
	if _, err := z.store.GetZoneByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrZoneNotFound
		}
		return err
	}
	// pincode 跟著 zone 一起刪，避免殘留的 pincode 還能查到
	return z.store.Transaction(ctx, func(tx db.Store) error {
		if err := tx.DeletePincodesByZone(ctx, id); err != nil {
			return err
		}
		return tx.DeleteZone(ctx, id)
	})
}

func (z *ZoneService) ValidatePincode(ctx context.Context, pincode string) (*PincodeLookup, error) {
	return lookupPincode(ctx, z.store, pincode)
}

// lookupPincode pincode 可配送判定的唯一出口
// 查無 pincode、zone 已不存在、zone 停用都視同不可配送
func lookupPincode(ctx context.Context, store db.Store, pincode string) (*PincodeLookup, error) {
	if !csvutil.ValidatePincode(pincode) {
		return nil, ErrInvalidPincode
	}

	record, err := store.GetPincode(ctx, pincode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &PincodeLookup{Serviceable: false}, nil
	}
	if err != nil {
		return nil, err
	}

	lookup := &PincodeLookup{
		ZoneID: record.ZoneID,
		City:   record.City,
		State:  record.State,
	}
	zone, err := store.GetZoneByID(ctx, record.ZoneID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lookup, nil
	}
	if err != nil {
		return nil, err
	}
	lookup.ZoneName = zone.Name
	lookup.Serviceable = zone.IsActive
	return lookup, nil
}

func (z *ZoneService) GetStatistics(ctx context.Context) (*ZoneStatistics, error) {
	totalZones, err := z.store.CountZones(ctx)
	if err != nil {
		return nil, err
	}
	totalPincodes, err := z.store.CountPincodes(ctx)
	if err != nil {
		return nil, err
	}
	perZone, err := z.store.GetPincodeCountsByZone(ctx)
	if err != nil {
		return nil, err
	}
	return &ZoneStatistics{
		TotalZones:    totalZones,
		TotalPincodes: totalPincodes,
		PerZone:       perZone,
	}, nil
}

func (z *ZoneService) SampleCSV() string {
	return csvutil.SampleCSV()
}

var _ IZoneService = (*ZoneService)(nil)
