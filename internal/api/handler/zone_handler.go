package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/util/csvutil"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
)

type ZoneHandler struct {
	zoneService service.IZoneService
}

func NewZoneHandler(zoneService service.IZoneService) *ZoneHandler {
	if zoneService == nil {
		panic("zoneService cannot be nil")
	}
	return &ZoneHandler{
		zoneService: zoneService,
	}
}

// @Summary import zone/pincode CSV, partial success
// @Tags zones
// @Accept multipart/form-data
// @Produce json
// @Param csv_file formData file true "zone pincode csv"
// @Router /zones/upload [post]
func (h *ZoneHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(csvutil.MaxFileSize); err != nil {
		writeValidation(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("csv_file")
	if err != nil {
		writeValidation(w, "csv_file is required")
		return
	}
	defer file.Close()

	result, err := h.zoneService.ImportZonesCSV(
		r.Context(), file, header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		// 走到這裡的都是檔案層級錯誤，row 層級的錯誤包含在 result 內
		writeValidation(w, err.Error())
		return
	}
	api.SuccessJSON(w, result)
}

// @Summary sample CSV download
// @Tags zones
// @Produce text/csv
// @Router /zones/sample-csv [get]
func (h *ZoneHandler) SampleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="zone_pincodes_sample.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.zoneService.SampleCSV()))
}

// @Summary list zones
// @Tags zones
// @Produce json
// @Router /zones [get]
func (h *ZoneHandler) GetZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.zoneService.GetZones(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, zones)
}

// @Summary zone detail with pincodes
// @Tags zones
// @Produce json
// @Router /zones/{id} [get]
func (h *ZoneHandler) GetZoneByID(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid zone id")
		return
	}
	zone, err := h.zoneService.GetZoneByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, zone)
}

// @Summary create zone
// @Tags zones
// @Accept json
// @Produce json
// @Router /zones [post]
func (h *ZoneHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req dto.ZoneDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	zone := &model.DeliveryZone{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := h.zoneService.CreateZone(r.Context(), zone); err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, zone)
}

// @Summary update zone
// @Tags zones
// @Accept json
// @Produce json
// @Router /zones/{id} [put]
func (h *ZoneHandler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid zone id")
		return
	}

	var req dto.ZoneDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	zone, err := h.zoneService.UpdateZone(r.Context(), id, req.Name, req.Description, req.IsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, zone)
}

// @Summary delete zone with its pincodes
// @Tags zones
// @Produce json
// @Router /zones/{id} [delete]
func (h *ZoneHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid zone id")
		return
	}
	if err := h.zoneService.DeleteZone(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]uint{"deleted": id})
}

// @Summary check whether a pincode is serviceable
// @Tags zones
// @Accept json
// @Produce json
// @Router /zones/validate-pincode [post]
func (h *ZoneHandler) ValidatePincode(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidatePincodeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	lookup, err := h.zoneService.ValidatePincode(r.Context(), req.Pincode)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, lookup)
}

// @Summary zone and pincode statistics
// @Tags zones
// @Produce json
// @Router /zones/statistics [get]
func (h *ZoneHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.zoneService.GetStatistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, stats)
}
