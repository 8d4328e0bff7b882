package service

import (
	"context"
	"strings"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/stretchr/testify/require"
)

func importCSV(t *testing.T, svc IZoneService, csv string) *UploadResult {
	t.Helper()
	result, err := svc.ImportZonesCSV(context.Background(), strings.NewReader(csv), "zones.csv", "text/csv", int64(len(csv)))
	require.NoError(t, err)
	return result
}

func TestImportZonesCSV_CreatesZones(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode,city,state\n" +
		"DelhiZone,110001,New Delhi,Delhi\n" +
		"DelhiZone,110002,Delhi Cantt,Delhi\n" +
		"MumbaiZone,400001,Fort Mumbai,Maharashtra\n"

	result := importCSV(t, svc, csv)
	require.Equal(t, 3, result.ValidRows)
	require.Len(t, result.Zones, 2)
	require.True(t, result.Zones[0].Created)
	require.Equal(t, "DelhiZone", result.Zones[0].ZoneName)
	require.Equal(t, 2, result.Zones[0].PincodesAdded)

	zones, err := svc.GetZones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
}

func TestImportZonesCSV_DedupesExistingPincodes(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode\nDelhiZone,110001\nDelhiZone,110002\n"
	importCSV(t, svc, csv)

	// 再次匯入同一個檔，既有 pincode 全部跳過
	again := importCSV(t, svc, csv)
	require.Len(t, again.Zones, 1)
	require.False(t, again.Zones[0].Created)
	require.Equal(t, 0, again.Zones[0].PincodesAdded)
	require.Equal(t, 2, again.Zones[0].PincodesSkipped)

	count, err := store.CountPincodes(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestImportZonesCSV_PartialSuccess(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode\nDelhiZone,110001\nDelhiZone,12345\n"
	result := importCSV(t, svc, csv)
	require.Equal(t, 1, result.ValidRows)
	require.Equal(t, 1, result.ErrorRows)
	require.Len(t, result.RowErrors, 1)
	require.Len(t, result.Zones, 1)
}

func TestImportZonesCSV_AllRowsInvalid(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode\nDelhiZone,123\n"
	result := importCSV(t, svc, csv)
	require.Equal(t, 0, result.ValidRows)
	require.Equal(t, 1, result.ErrorRows)
	require.Empty(t, result.Zones)
}

func TestImportZonesCSV_EmptyUpload(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode\n"
	_, err := svc.ImportZonesCSV(context.Background(), strings.NewReader(csv), "zones.csv", "text/csv", int64(len(csv)))
	require.ErrorIs(t, err, ErrEmptyUpload)
}

func TestImportZonesCSV_RejectsBadFile(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	_, err := svc.ImportZonesCSV(context.Background(), strings.NewReader("x"), "zones.txt", "text/plain", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Only CSV files are allowed")
}

func TestCreateZone_Validation(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	require.NoError(t, svc.CreateZone(context.Background(), &model.DeliveryZone{Name: "DelhiZone", IsActive: true}))

	err := svc.CreateZone(context.Background(), &model.DeliveryZone{Name: "DelhiZone"})
	require.ErrorIs(t, err, ErrZoneNameTaken)

	err = svc.CreateZone(context.Background(), &model.DeliveryZone{Name: "bad@name"})
	require.Error(t, err)

	err = svc.CreateZone(context.Background(), &model.DeliveryZone{Name: "nationwide"})
	require.Error(t, err)
}

func TestUpdateZone(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	zone := &model.DeliveryZone{Name: "DelhiZone", IsActive: true}
	require.NoError(t, svc.CreateZone(context.Background(), zone))
	other := &model.DeliveryZone{Name: "MumbaiZone", IsActive: true}
	require.NoError(t, svc.CreateZone(context.Background(), other))

	inactive := false
	updated, err := svc.UpdateZone(context.Background(), zone.ZoneID, "Delhi NCR", "capital region", &inactive)
	require.NoError(t, err)
	require.Equal(t, "Delhi NCR", updated.Name)
	require.False(t, updated.IsActive)

	// 撞名其他 zone
	_, err = svc.UpdateZone(context.Background(), zone.ZoneID, "MumbaiZone", "", nil)
	require.ErrorIs(t, err, ErrZoneNameTaken)

	_, err = svc.UpdateZone(context.Background(), 999, "GoaZone", "", nil)
	require.ErrorIs(t, err, ErrZoneNotFound)
}

func TestValidatePincode(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode,city,state\nDelhiZone,110001,New Delhi,Delhi\n"
	importCSV(t, svc, csv)

	lookup, err := svc.ValidatePincode(context.Background(), "110001")
	require.NoError(t, err)
	require.True(t, lookup.Serviceable)
	require.Equal(t, "DelhiZone", lookup.ZoneName)
	require.Equal(t, "New Delhi", lookup.City)

	// 查無資料回 serviceable=false，不是錯誤
	lookup, err = svc.ValidatePincode(context.Background(), "999999")
	require.NoError(t, err)
	require.False(t, lookup.Serviceable)

	_, err = svc.ValidatePincode(context.Background(), "12345")
	require.ErrorIs(t, err, ErrInvalidPincode)
}

func TestValidatePincode_InactiveZone(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode\nDelhiZone,110001\n"
	importCSV(t, svc, csv)

	zone, err := store.GetZoneByName(context.Background(), "DelhiZone")
	require.NoError(t, err)
	inactive := false
	_, err = svc.UpdateZone(context.Background(), zone.ZoneID, "DelhiZone", "", &inactive)
	require.NoError(t, err)

	// zone 停用後 pincode 視為不可配送
	lookup, err := svc.ValidatePincode(context.Background(), "110001")
	require.NoError(t, err)
	require.False(t, lookup.Serviceable)
}

func TestValidatePincode_DeletedZone(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode,city,state\nDelhiZone,110001,New Delhi,Delhi\n"
	importCSV(t, svc, csv)

	zones, err := svc.GetZones(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteZone(context.Background(), zones[0].ZoneID))

	// 刪掉 zone 後 pincode 也跟著清掉
	lookup, err := svc.ValidatePincode(context.Background(), "110001")
	require.NoError(t, err)
	require.False(t, lookup.Serviceable)

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.TotalPincodes)
}

func TestValidatePincode_OrphanedPincode(t *testing.T) {
	store := newFakeStore()
	store.pincodes = append(store.pincodes, model.ZonePincode{
		PincodeID: store.genID(),
		ZoneID:    999,
		Pincode:   "110001",
		City:      "New Delhi",
	})
	svc := NewZoneService(store)

	// zone 不存在的殘留 pincode 視同不可配送
	lookup, err := svc.ValidatePincode(context.Background(), "110001")
	require.NoError(t, err)
	require.False(t, lookup.Serviceable)
	require.Empty(t, lookup.ZoneName)
}

func TestGetStatistics(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	csv := "zone_name,pincode\nDelhiZone,110001\nDelhiZone,110002\nMumbaiZone,400001\n"
	importCSV(t, svc, csv)

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalZones)
	require.Equal(t, int64(3), stats.TotalPincodes)
	require.Len(t, stats.PerZone, 2)
}

func TestSampleCSV_RoundTrips(t *testing.T) {
	store := newFakeStore()
	svc := NewZoneService(store)

	sample := svc.SampleCSV()
	result, err := svc.ImportZonesCSV(context.Background(), strings.NewReader(sample), "sample.csv", "text/csv", int64(len(sample)))
	require.NoError(t, err)
	require.Equal(t, 0, result.ErrorRows)
	require.NotEmpty(t, result.Zones)
}
