package handler

import (
	"net/http"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/repository"
	"github.com/markwat1/feeding/internal/service"
)

// FoodTypeHandler serves /api/food-types.
type FoodTypeHandler struct {
	svc *service.FoodTypeService
}

func NewFoodTypeHandler(svc *service.FoodTypeService) *FoodTypeHandler {
	return &FoodTypeHandler{svc: svc}
}

type foodTypeCreateRequest struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
}

type foodTypeUpdateRequest struct {
	Name        *string `json:"name"`
	Brand       *string `json:"brand"`
	Description *string `json:"description"`
}

func (h *FoodTypeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	foodTypes, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foodTypes)
}

func (h *FoodTypeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req foodTypeCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ft, err := h.svc.Create(r.Context(), repository.CreateFoodType{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ft)
}

func (h *FoodTypeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ft, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ft)
}

func (h *FoodTypeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req foodTypeUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ft, err := h.svc.Update(r.Context(), id, repository.UpdateFoodType{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ft)
}

func (h *FoodTypeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, apperror.NotFound("food type", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
