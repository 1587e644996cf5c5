package handler

import (
	"net/http"
	"strconv"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/repository"
	"github.com/markwat1/feeding/internal/service"
)

// WeightRecordHandler serves /api/weight-records.
type WeightRecordHandler struct {
	svc *service.WeightRecordService
}

func NewWeightRecordHandler(svc *service.WeightRecordService) *WeightRecordHandler {
	return &WeightRecordHandler{svc: svc}
}

type weightRecordCreateRequest struct {
	PetID        int64   `json:"petId"`
	Weight       float64 `json:"weight"`
	RecordedDate string  `json:"recordedDate"`
	Notes        string  `json:"notes"`
}

type weightRecordUpdateRequest struct {
	PetID        *int64   `json:"petId"`
	Weight       *float64 `json:"weight"`
	RecordedDate *string  `json:"recordedDate"`
	Notes        *string  `json:"notes"`
}

// HandleList returns weight records, optionally scoped to one pet with
// ?petId and further to an inclusive date range.
func (h *WeightRecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var petID *int64
	if raw := q.Get("petId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			writeError(w, apperror.ValidationFailed("petId", "pet ID must be a positive integer"))
			return
		}
		petID = &id
	}

	records, err := h.svc.List(r.Context(), petID, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *WeightRecordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req weightRecordCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.Create(r.Context(), repository.CreateWeightRecord{
		PetID:        req.PetID,
		Weight:       req.Weight,
		RecordedDate: req.RecordedDate,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *WeightRecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
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

// HandleLatest returns a pet's most recent weigh-in.
func (h *WeightRecordHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	petID, err := strconv.ParseInt(r.PathValue("petId"), 10, 64)
	if err != nil || petID < 1 {
		writeError(w, apperror.ValidationFailed("petId", "pet ID must be a positive integer"))
		return
	}
	rec, err := h.svc.Latest(r.Context(), petID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *WeightRecordHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req weightRecordUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.Update(r.Context(), id, repository.UpdateWeightRecord{
		PetID:        req.PetID,
		Weight:       req.Weight,
		RecordedDate: req.RecordedDate,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *WeightRecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, apperror.NotFound("weight record", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
