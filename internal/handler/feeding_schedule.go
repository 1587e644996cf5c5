package handler

import (
	"net/http"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/repository"
	"github.com/markwat1/feeding/internal/service"
)

// FeedingScheduleHandler serves /api/feeding-schedules.
type FeedingScheduleHandler struct {
	svc *service.FeedingScheduleService
}

func NewFeedingScheduleHandler(svc *service.FeedingScheduleService) *FeedingScheduleHandler {
	return &FeedingScheduleHandler{svc: svc}
}

type feedingScheduleCreateRequest struct {
	Time       string `json:"time"`
	FoodTypeID int64  `json:"foodTypeId"`
	IsActive   *bool  `json:"isActive"`
}

type feedingScheduleUpdateRequest struct {
	Time       *string `json:"time"`
	FoodTypeID *int64  `json:"foodTypeId"`
	IsActive   *bool   `json:"isActive"`
}

// HandleList returns every schedule, or only active ones with ?active=true.
func (h *FeedingScheduleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	schedules, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

func (h *FeedingScheduleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req feedingScheduleCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	// Schedules default to active when the field is omitted.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	sched, err := h.svc.Create(r.Context(), repository.CreateFeedingSchedule{
		Time:       req.Time,
		FoodTypeID: req.FoodTypeID,
		IsActive:   isActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sched)
}

func (h *FeedingScheduleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sched, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (h *FeedingScheduleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req feedingScheduleUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sched, err := h.svc.Update(r.Context(), id, repository.UpdateFeedingSchedule{
		Time:       req.Time,
		FoodTypeID: req.FoodTypeID,
		IsActive:   req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (h *FeedingScheduleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, apperror.NotFound("feeding schedule", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
