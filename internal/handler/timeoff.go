package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/utils"
)

func (h *Handler) CreateTimeOffRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Type      string `json:"type" validate:"required,oneof=年假 病假 调休 事假"`
		Remark    string `json:"remark" validate:"max=200"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, endDate, err := utils.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	record := &domain.TimeOffRecord{
		UserID:    myInfo.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Type:      domain.TimeOffType(req.Type),
		Remark:    req.Remark,
	}

	if err := utils.ValidateTimeOffRecord(record); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateTimeOffRecord(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建请假记录成功", record)
}

func (h *Handler) GetMyTimeOffRecords(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	query := r.URL.Query()
	startParam := query.Get("start")
	endParam := query.Get("end")

	// 不带日期区间时返回全部记录
	if startParam == "" && endParam == "" {
		records, err := h.repository.GetAllTimeOffRecordsByUser(myInfo.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "获取请假记录成功", records)
		return
	}

	startDate, endDate, err := utils.ParseDateRange(startParam, endParam)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	records, err := h.repository.GetTimeOffRecordsInRange(myInfo.ID, startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请假记录成功", records)
}

func (h *Handler) GetTimeOffRecord(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(TimeOffRecordCtx).(*domain.TimeOffRecord)
	h.successResponse(w, r, "获取请假记录成功", record)
}

func (h *Handler) UpdateTimeOffRecord(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(TimeOffRecordCtx).(*domain.TimeOffRecord)

	var req struct {
		StartDate *string `json:"startDate"`
		EndDate   *string `json:"endDate"`
		Type      *string `json:"type" validate:"omitempty,oneof=年假 病假 调休 事假"`
		Remark    *string `json:"remark" validate:"omitempty,max=200"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.StartDate != nil || req.EndDate != nil {
		startStr := record.StartDate.Format("2006-01-02")
		endStr := record.EndDate.Format("2006-01-02")
		if req.StartDate != nil {
			startStr = *req.StartDate
		}
		if req.EndDate != nil {
			endStr = *req.EndDate
		}

		startDate, endDate, err := utils.ParseDateRange(startStr, endStr)
		if err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
		record.StartDate = startDate
		record.EndDate = endDate
	}
	if req.Type != nil {
		record.Type = domain.TimeOffType(*req.Type)
	}
	if req.Remark != nil {
		record.Remark = *req.Remark
	}

	if err := utils.ValidateTimeOffRecord(record); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateTimeOffRecord(record); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新请假记录失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新请假记录成功", record)
}

func (h *Handler) DeleteTimeOffRecord(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(TimeOffRecordCtx).(*domain.TimeOffRecord)

	if err := h.repository.DeleteTimeOffRecord(record.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除请假记录成功", nil)
}
