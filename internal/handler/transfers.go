package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/rotation"
)

// GetTransfers 查询本班组和另一个班组之间的交接班事件。
// team 不传时默认用当前用户所属的班组
func (h *Handler) GetTransfers(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	query := r.URL.Query()

	otherTeam, err := strconv.Atoi(query.Get("otherTeam"))
	if err != nil || otherTeam < 1 || otherTeam > rotation.TeamCount {
		h.errorResponse(w, r, "对方班组编号无效")
		return
	}

	myTeam := int(myInfo.Team)
	if teamParam := query.Get("team"); teamParam != "" {
		myTeam, err = strconv.Atoi(teamParam)
		if err != nil || myTeam < 1 || myTeam > rotation.TeamCount {
			h.errorResponse(w, r, "班组编号无效")
			return
		}
	}

	if myTeam == otherTeam {
		h.errorResponse(w, r, "两个班组不能相同")
		return
	}

	window := rotation.Window{}
	if startParam := query.Get("start"); startParam != "" {
		start, err := time.ParseInLocation(rotation.DateLayout, startParam, time.UTC)
		if err != nil {
			h.errorResponse(w, r, "开始日期格式错误，应为 YYYY-MM-DD")
			return
		}
		window.Start = start
	}
	if endParam := query.Get("end"); endParam != "" {
		end, err := time.ParseInLocation(rotation.DateLayout, endParam, time.UTC)
		if err != nil {
			h.errorResponse(w, r, "结束日期格式错误，应为 YYYY-MM-DD")
			return
		}
		if !window.Start.IsZero() && end.Before(window.Start) {
			h.errorResponse(w, r, "结束日期不能早于开始日期")
			return
		}
		window.End = &end
	}

	limit := rotation.DefaultTransferLimit
	if limitParam := query.Get("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 1 {
			h.errorResponse(w, r, "limit 无效")
			return
		}
	}

	result := h.engine.FindTransfers(myTeam, otherTeam, window, limit)
	h.successResponse(w, r, "查询交接班成功", result)
}
