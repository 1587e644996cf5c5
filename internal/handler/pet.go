package handler

import (
	"net/http"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/repository"
	"github.com/markwat1/feeding/internal/service"
)

// PetHandler serves /api/pets.
type PetHandler struct {
	svc *service.PetService
}

func NewPetHandler(svc *service.PetService) *PetHandler {
	return &PetHandler{svc: svc}
}

type petCreateRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	BirthDate string `json:"birthDate"`
}

// petUpdateRequest uses pointers so an absent field can be told apart from
// an explicit empty value.
type petUpdateRequest struct {
	Name      *string `json:"name"`
	Species   *string `json:"species"`
	BirthDate *string `json:"birthDate"`
}

func (h *PetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pets, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

func (h *PetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req petCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	pet, err := h.svc.Create(r.Context(), repository.CreatePet{
		Name:      req.Name,
		Species:   req.Species,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pet)
}

func (h *PetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pet, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (h *PetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req petUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	pet, err := h.svc.Update(r.Context(), id, repository.UpdatePet{
		Name:      req.Name,
		Species:   req.Species,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (h *PetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, apperror.NotFound("pet", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
