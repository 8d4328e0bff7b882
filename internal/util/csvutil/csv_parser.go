package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	// MaxFileSize 上傳檔案上限 10MB
	MaxFileSize = 10 * 1024 * 1024
	// MaxZoneNameLength zone 名稱長度上限
	MaxZoneNameLength = 100
)

var (
	pincodeRe  = regexp.MustCompile(`^\d{6}$`)
	zoneNameRe = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)

	reservedZoneNames = []string{"nationwide", "all", "global", "admin", "system"}

	allowedMimes = []string{"text/csv", "application/csv", "application/vnd.ms-excel"}
)

// ZoneRow 單筆通過驗證的 CSV 資料
type ZoneRow struct {
	ZoneName string `json:"zone_name"`
	Pincode  string `json:"pincode"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// RowError 單筆失敗資料，Row 為 1-based 且含 header（第一筆資料是 row 2）
type RowError struct {
	Row   int               `json:"row"`
	Error string            `json:"error"`
	Data  map[string]string `json:"data,omitempty"`
}

// ParseResult 部分成功模型：data 與 errors 並存
type ParseResult struct {
	Data      []ZoneRow  `json:"data"`
	Errors    []RowError `json:"errors"`
	TotalRows int        `json:"totalRows"`
	ValidRows int        `json:"validRows"`
	ErrorRows int        `json:"errorRows"`
}

// ParseZonePincodes 逐筆解析並驗證 zone/pincode CSV。
// 單筆錯誤不中斷整個解析，只有 CSV 本身壞掉才回傳 error。
func ParseZonePincodes(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &ParseResult{Data: []ZoneRow{}, Errors: []RowError{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("CSV parsing failed: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	result := &ParseResult{Data: []ZoneRow{}, Errors: []RowError{}}
	rowNum := 1 // header 是 row 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				Row:   rowNum,
				Error: fmt.Sprintf("Row parsing error: %v", err),
			})
			continue
		}

		row := recordToMap(colIdx, record)
		if rowIsEmpty(row) {
			rowNum--
			continue
		}

		missing := missingColumns(row, "zone_name", "pincode")
		if len(missing) > 0 {
			result.Errors = append(result.Errors, RowError{
				Row:   rowNum,
				Error: fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")),
				Data:  row,
			})
			continue
		}

		pincode := strings.TrimSpace(row["pincode"])
		if !pincodeRe.MatchString(pincode) {
			result.Errors = append(result.Errors, RowError{
				Row:   rowNum,
				Error: fmt.Sprintf("Invalid pincode format: %s. Should be 6 digits.", pincode),
				Data:  row,
			})
			continue
		}

		zoneName := strings.TrimSpace(row["zone_name"])
		if err := ValidateZoneName(zoneName); err != nil {
			result.Errors = append(result.Errors, RowError{
				Row:   rowNum,
				Error: err.Error(),
				Data:  row,
			})
			continue
		}

		result.Data = append(result.Data, ZoneRow{
			ZoneName: zoneName,
			Pincode:  pincode,
			City:     strings.TrimSpace(row["city"]),
			State:    strings.TrimSpace(row["state"]),
		})
	}

	result.ValidRows = len(result.Data)
	result.ErrorRows = len(result.Errors)
	result.TotalRows = result.ValidRows + result.ErrorRows
	return result, nil
}

func recordToMap(colIdx map[string]int, record []string) map[string]string {
	row := make(map[string]string, len(colIdx))
	for col, i := range colIdx {
		if i < len(record) {
			row[col] = strings.TrimSpace(record[i])
		}
	}
	return row
}

func rowIsEmpty(row map[string]string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

func missingColumns(row map[string]string, required ...string) []string {
	var missing []string
	for _, col := range required {
		if row[col] == "" {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateZoneName 長度、字元集與保留字檢查（保留字不分大小寫）
func ValidateZoneName(name string) error {
	if len(name) > MaxZoneNameLength {
		// 以 rune 截斷，避免切在多位元組字元中間
		preview := []rune(name)
		if len(preview) > 50 {
			preview = preview[:50]
		}
		return fmt.Errorf("Zone name too long: %s...", string(preview))
	}
	if !zoneNameRe.MatchString(name) {
		return fmt.Errorf("Invalid characters in zone name: %s", name)
	}
	lower := strings.ToLower(name)
	for _, reserved := range reservedZoneNames {
		if lower == reserved {
			return fmt.Errorf("Reserved zone name not allowed: %s", name)
		}
	}
	return nil
}

// ValidatePincode 6 碼數字
func ValidatePincode(pincode string) bool {
	return pincodeRe.MatchString(pincode)
}

// GroupByZone 依 zone_name 分組，保留首次出現順序
func GroupByZone(rows []ZoneRow) (map[string][]ZoneRow, []string) {
	groups := make(map[string][]ZoneRow)
	var order []string
	for _, row := range rows {
		if _, ok := groups[row.ZoneName]; !ok {
			order = append(order, row.ZoneName)
		}
		groups[row.ZoneName] = append(groups[row.ZoneName], row)
	}
	return groups, order
}

// ValidateFile 上傳檔案的型別與大小檢查
func ValidateFile(filename, contentType string, size int64) []string {
	var errs []string

	validMime := false
	for _, mime := range allowedMimes {
		if contentType == mime {
			validMime = true
			break
		}
	}
	validExt := strings.HasSuffix(strings.ToLower(filename), ".csv")
	if !validMime && !validExt {
		errs = append(errs, "Invalid file type. Only CSV files are allowed.")
	}

	if size > MaxFileSize {
		errs = append(errs, "File too large. Maximum size allowed is 10MB.")
	}
	if size == 0 {
		errs = append(errs, "File is empty.")
	}
	return errs
}

// SampleCSV 提供下載的範例檔內容
func SampleCSV() string {
	rows := [][]string{
		{"zone_name", "pincode", "city", "state"},
		{"DelhiZone", "110001", "New Delhi", "Delhi"},
		{"DelhiZone", "110002", "Delhi Cantt", "Delhi"},
		{"DelhiZone", "122001", "Gurgaon", "Haryana"},
		{"MumbaiZone", "400001", "Fort Mumbai", "Maharashtra"},
		{"MumbaiZone", "400002", "Kalbadevi", "Maharashtra"},
		{"ChennaiZone", "600001", "Chennai GPO", "Tamil Nadu"},
		{"BangaloreZone", "560001", "Bangalore GPO", "Karnataka"},
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ",")
	}
	return strings.Join(lines, "\n")
}
