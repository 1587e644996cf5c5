package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/repository"
	"github.com/markwat1/feeding/internal/service"
)

// FeedingRecordHandler serves /api/feeding-records.
type FeedingRecordHandler struct {
	svc *service.FeedingRecordService
}

func NewFeedingRecordHandler(svc *service.FeedingRecordService) *FeedingRecordHandler {
	return &FeedingRecordHandler{svc: svc}
}

type feedingRecordCreateRequest struct {
	FeedingScheduleID int64  `json:"feedingScheduleId"`
	ActualTime        string `json:"actualTime"`
	Completed         *bool  `json:"completed"`
	Notes             string `json:"notes"`
}

type feedingRecordUpdateRequest struct {
	FeedingScheduleID *int64  `json:"feedingScheduleId"`
	ActualTime        *string `json:"actualTime"`
	Completed         *bool   `json:"completed"`
	Notes             *string `json:"notes"`
}

// HandleList returns records, filtered to an inclusive date range when both
// startDate and endDate are supplied. Unfiltered listings honor optional
// limit and offset parameters for paging.
func (h *FeedingRecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	records, err := h.svc.List(r.Context(), q.Get("startDate"), q.Get("endDate"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *FeedingRecordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req feedingRecordCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Completed == nil {
		writeError(w, apperror.ValidationFailed("completed", "completed is required"))
		return
	}
	rec, err := h.svc.Create(r.Context(), repository.CreateFeedingRecord{
		FeedingScheduleID: req.FeedingScheduleID,
		ActualTime:        req.ActualTime,
		Completed:         *req.Completed,
		Notes:             req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *FeedingRecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
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

// HandleStats returns completion statistics over a mandatory date range.
func (h *FeedingRecordHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.svc.CompletionRate(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleExport streams records as a CSV download. The BOM keeps Excel from
// mangling the multibyte headers.
func (h *FeedingRecordHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate, endDate := q.Get("startDate"), q.Get("endDate")

	records, err := h.svc.List(r.Context(), startDate, endDate, 0, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("feeding_records_%s_%s.csv", orAll(startDate), orAll(endDate))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte("\ufeff"))

	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "給餌日時", "予定時刻", "餌の種類", "完食状況", "メモ", "登録日時"})
	for _, rec := range records {
		scheduleTime := "不明"
		foodTypeName := "不明な餌"
		if rec.FeedingSchedule != nil {
			scheduleTime = rec.FeedingSchedule.Time
			if rec.FeedingSchedule.FoodType != nil {
				foodTypeName = rec.FeedingSchedule.FoodType.Name
			}
		}
		completed := "残した"
		if rec.Completed {
			completed = "完食"
		}
		cw.Write([]string{
			strconv.FormatInt(rec.ID, 10),
			rec.ActualTime,
			scheduleTime,
			foodTypeName,
			completed,
			rec.Notes,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	cw.Flush()
}

func (h *FeedingRecordHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req feedingRecordUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.Update(r.Context(), id, repository.UpdateFeedingRecord{
		FeedingScheduleID: req.FeedingScheduleID,
		ActualTime:        req.ActualTime,
		Completed:         req.Completed,
		Notes:             req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *FeedingRecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, apperror.NotFound("feeding record", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// orAll substitutes "all" for an absent range bound in export filenames.
func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
