package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/rotation"
)

func (h *Handler) teamParam(r *http.Request) (int, error) {
	teamParam := chi.URLParam(r, "team")
	team, err := strconv.Atoi(teamParam)
	if err != nil || team < 1 || team > rotation.TeamCount {
		return 0, errors.New("班组编号无效")
	}
	return team, nil
}

// GetDaySchedule 返回某一天所有班组的班次
func (h *Handler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	dateParam := chi.URLParam(r, "date")
	date, err := time.ParseInLocation(rotation.DateLayout, dateParam, time.UTC)
	if err != nil {
		h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
		return
	}

	assignments := h.engine.AllTeamsFor(date)
	h.successResponse(w, r, "获取当日班表成功", assignments)
}

// GetNextWorkingShift 返回某个班组从当前班日起的下一个工作班次
func (h *Handler) GetNextWorkingShift(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamParam(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	from := rotation.CurrentShiftDay(h.now())
	assignment := h.engine.NextWorkingShift(from, team)
	if assignment == nil {
		h.internalServerError(w, r, errors.New("未找到下一个工作班次"))
		return
	}

	h.successResponse(w, r, "获取下一个工作班次成功", assignment)
}

// GetOffDayProgress 返回某个班组当前休息段的进度，工作日时 data 为 null
func (h *Handler) GetOffDayProgress(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamParam(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	progress := h.engine.OffDayProgress(h.now(), team)
	if progress == nil {
		h.successResponse(w, r, "当前不在休息段", nil)
		return
	}

	h.successResponse(w, r, "获取休息进度成功", progress)
}

// GetCurrentStatus 返回某个班组当前班日的班次以及此刻是否正在上班
func (h *Handler) GetCurrentStatus(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamParam(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	now := h.now()
	day := rotation.CurrentShiftDay(now)

	shift, err := h.engine.ShiftFor(day, team)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	code, err := h.engine.ShiftCode(day, team)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	data := struct {
		Date      string       `json:"date"`
		Team      int          `json:"team"`
		Shift     domain.Shift `json:"shift"`
		Code      string       `json:"code"`
		IsWorking bool         `json:"isWorking"`
	}{
		Date:      day.Format(rotation.DateLayout),
		Team:      team,
		Shift:     shift,
		Code:      code,
		IsWorking: rotation.IsCurrentlyWorking(shift, day, now),
	}

	h.successResponse(w, r, "获取当前状态成功", data)
}

// GetTeamMembers 返回某个班组的在职成员列表
func (h *Handler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamParam(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	members, err := h.repository.GetUsersByTeam(int32(team))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班组成员成功", members)
}

type calendarDay struct {
	Date        string                   `json:"date"`
	Assignments []domain.ShiftAssignment `json:"assignments"`
	MyShift     domain.ShiftAssignment   `json:"myShift"`
	MyTimeOff   []domain.TimeOffType     `json:"myTimeOff"`
}

// monthCalendar 生成某个月每天的班表并叠加请假记录。
// 用户的班组可能来自未经校验的数据（比如初始管理员的环境变量），先检查再用作下标
func (h *Handler) monthCalendar(team int32, year, month int, records []*domain.TimeOffRecord) ([]calendarDay, error) {
	if team < 1 || team > rotation.TeamCount {
		return nil, &rotation.InvalidTeamError{Team: int(team)}
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)

	days := make([]calendarDay, 0, lastDay.Day())
	for date := firstDay; !date.After(lastDay); date = date.AddDate(0, 0, 1) {
		assignments := h.engine.AllTeamsFor(date)

		day := calendarDay{
			Date:        date.Format(rotation.DateLayout),
			Assignments: assignments,
			MyShift:     assignments[team-1],
			MyTimeOff:   make([]domain.TimeOffType, 0),
		}

		for _, record := range records {
			if !date.Before(record.StartDate) && !date.After(record.EndDate) {
				day.MyTimeOff = append(day.MyTimeOff, record.Type)
			}
		}

		days = append(days, day)
	}

	return days, nil
}

// GetMonthCalendar 返回某个月每天的班表，并叠加当前用户的请假记录
func (h *Handler) GetMonthCalendar(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 2000 || year > 2100 {
		h.errorResponse(w, r, "年份无效")
		return
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		h.errorResponse(w, r, "月份无效")
		return
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)

	records, err := h.repository.GetTimeOffRecordsInRange(myInfo.ID, firstDay, lastDay)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	days, err := h.monthCalendar(myInfo.Team, year, month, records)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.successResponse(w, r, "获取月历成功", days)
}
