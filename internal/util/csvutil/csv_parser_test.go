package csvutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestParseZonePincodes_Valid(t *testing.T) {
	csv := "zone_name,pincode,city,state\n" +
		"DelhiZone,110001,New Delhi,Delhi\n" +
		"DelhiZone,110002,Delhi Cantt,Delhi\n" +
		"MumbaiZone,400001,Fort Mumbai,Maharashtra\n"

	result, err := ParseZonePincodes(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 3, result.TotalRows)
	require.Equal(t, 3, result.ValidRows)
	require.Equal(t, 0, result.ErrorRows)
	require.Equal(t, "DelhiZone", result.Data[0].ZoneName)
	require.Equal(t, "110001", result.Data[0].Pincode)
}

func TestParseZonePincodes_PartialSuccess(t *testing.T) {
	// 錯誤的 row 不中斷解析，好的 row 照收
	csv := "zone_name,pincode,city,state\n" +
		"DelhiZone,110001,New Delhi,Delhi\n" +
		"DelhiZone,12345,Nowhere,Delhi\n" +
		"MumbaiZone,400001,Fort Mumbai,Maharashtra\n"

	result, err := ParseZonePincodes(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 3, result.TotalRows)
	require.Equal(t, 2, result.ValidRows)
	require.Equal(t, 1, result.ErrorRows)
	// header 是 row 1，第二筆資料是 row 3
	require.Equal(t, 3, result.Errors[0].Row)
	require.Contains(t, result.Errors[0].Error, "Invalid pincode format")
}

func TestParseZonePincodes_FiveDigitPincode(t *testing.T) {
	csv := "zone_name,pincode\nDelhiZone,11000\n"

	result, err := ParseZonePincodes(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 0, result.ValidRows)
	require.Equal(t, 1, result.ErrorRows)
}

func TestParseZonePincodes_MissingColumns(t *testing.T) {
	csv := "zone_name,pincode\nDelhiZone,\n,110001\n"

	result, err := ParseZonePincodes(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, result.ErrorRows)
	require.Contains(t, result.Errors[0].Error, "pincode")
	require.Contains(t, result.Errors[1].Error, "zone_name")
}

func TestParseZonePincodes_ReservedZoneName(t *testing.T) {
	csv := "zone_name,pincode\nNationwide,110001\n"

	result, err := ParseZonePincodes(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, result.ErrorRows)
	require.Contains(t, result.Errors[0].Error, "Reserved zone name")
}

func TestParseZonePincodes_SkipsEmptyRows(t *testing.T) {
	csv := "zone_name,pincode\n\nDelhiZone,110001\n,,\n"

	result, err := ParseZonePincodes(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalRows)
	require.Equal(t, 1, result.ValidRows)
}

func TestParseZonePincodes_EmptyFile(t *testing.T) {
	result, err := ParseZonePincodes(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, result.TotalRows)
	require.Empty(t, result.Data)
}

func TestValidateZoneName(t *testing.T) {
	require.NoError(t, ValidateZoneName("Delhi Zone-1"))
	require.Error(t, ValidateZoneName("Delhi@Zone"))
	require.Error(t, ValidateZoneName("ALL"))
	require.Error(t, ValidateZoneName(strings.Repeat("a", MaxZoneNameLength+1)))
}

func TestValidateZoneName_MultibyteTooLong(t *testing.T) {
	// 超長的多位元組名稱，錯誤訊息必須是合法 UTF-8
	err := ValidateZoneName(strings.Repeat("區", MaxZoneNameLength))
	require.Error(t, err)
	require.True(t, utf8.ValidString(err.Error()))
}

func TestValidatePincode(t *testing.T) {
	require.True(t, ValidatePincode("110001"))
	require.False(t, ValidatePincode("11000"))
	require.False(t, ValidatePincode("1100011"))
	require.False(t, ValidatePincode("11000a"))
}

func TestGroupByZone(t *testing.T) {
	rows := []ZoneRow{
		{ZoneName: "B", Pincode: "110001"},
		{ZoneName: "A", Pincode: "400001"},
		{ZoneName: "B", Pincode: "110002"},
	}

	groups, order := GroupByZone(rows)
	require.Equal(t, []string{"B", "A"}, order)
	require.Len(t, groups["B"], 2)
	require.Len(t, groups["A"], 1)
}

func TestValidateFile(t *testing.T) {
	require.Empty(t, ValidateFile("zones.csv", "text/csv", 1024))
	// 副檔名正確時不看 mime
	require.Empty(t, ValidateFile("zones.csv", "application/octet-stream", 1024))

	errs := ValidateFile("zones.txt", "text/plain", 0)
	require.Len(t, errs, 2)

	errs = ValidateFile("zones.csv", "text/csv", MaxFileSize+1)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "File too large")
}
