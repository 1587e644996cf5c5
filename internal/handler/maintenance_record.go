package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
	"github.com/markwat1/feeding/internal/service"
)

// MaintenanceRecordHandler serves /api/maintenance-records.
type MaintenanceRecordHandler struct {
	svc *service.MaintenanceRecordService
}

func NewMaintenanceRecordHandler(svc *service.MaintenanceRecordService) *MaintenanceRecordHandler {
	return &MaintenanceRecordHandler{svc: svc}
}

type maintenanceRecordCreateRequest struct {
	Type        string `json:"type"`
	PerformedAt string `json:"performedAt"`
	Description string `json:"description"`
}

type maintenanceRecordUpdateRequest struct {
	Type        *string `json:"type"`
	PerformedAt *string `json:"performedAt"`
	Description *string `json:"description"`
}

// typeFilter reads the optional ?type query parameter.
func typeFilter(r *http.Request) *model.MaintenanceType {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		return nil
	}
	typ := model.MaintenanceType(raw)
	return &typ
}

// HandleList returns maintenance records, optionally filtered by type and
// an inclusive date range.
func (h *MaintenanceRecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.svc.List(r.Context(), typeFilter(r), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *MaintenanceRecordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRecordCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.Create(r.Context(), repository.CreateMaintenanceRecord{
		Type:        model.MaintenanceType(req.Type),
		PerformedAt: req.PerformedAt,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *MaintenanceRecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleRecent returns records from the last ?days days (default 7).
func (h *MaintenanceRecordHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, apperror.ValidationFailed("days", "days must be a positive integer"))
			return
		}
		days = n
	}
	records, err := h.svc.Recent(r.Context(), days, typeFilter(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleStats returns per-type event counts over a mandatory date range.
func (h *MaintenanceRecordHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.svc.Stats(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleExport streams records as a CSV download with a UTF-8 BOM.
func (h *MaintenanceRecordHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate, endDate := q.Get("startDate"), q.Get("endDate")
	typ := typeFilter(r)

	records, err := h.svc.List(r.Context(), typ, startDate, endDate)
	if err != nil {
		writeError(w, err)
		return
	}

	prefix := "maintenance_records"
	if typ != nil {
		prefix += "_" + string(*typ)
	}
	filename := fmt.Sprintf("%s_%s_%s.csv", prefix, orAll(startDate), orAll(endDate))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte("\ufeff"))

	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "メンテナンス種類", "実施日時", "内容", "登録日時"})
	for _, rec := range records {
		typeLabel := "トイレ"
		if rec.Type == model.MaintenanceWater {
			typeLabel = "給水器"
		}
		cw.Write([]string{
			strconv.FormatInt(rec.ID, 10),
			typeLabel,
			rec.PerformedAt,
			rec.Description,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	cw.Flush()
}

func (h *MaintenanceRecordHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req maintenanceRecordUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	var in repository.UpdateMaintenanceRecord
	if req.Type != nil {
		typ := model.MaintenanceType(*req.Type)
		in.Type = &typ
	}
	in.PerformedAt = req.PerformedAt
	in.Description = req.Description

	rec, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *MaintenanceRecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apperror.NotFound("maintenance record", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
