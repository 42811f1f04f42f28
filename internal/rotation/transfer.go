package rotation

import (
	"log/slog"
	"sort"
	"time"

	"github.com/tjorim/rota-backend/internal/domain"
)

const (
	DefaultTransferLimit = 20

	// 不指定结束日期时最多往后扫描一年
	transferScanCeiling = 365
)

// Window 是交接扫描的日期窗口。Start 为零值时从今天开始，End 为 nil 时开区间
type Window struct {
	Start time.Time
	End   *time.Time
}

type TransferResult struct {
	Transfers []domain.TransferEvent `json:"transfers"`
	HasMore   bool                   `json:"hasMore"`
}

// FindTransfers 逐日扫描窗口，找出 myTeam 和 otherTeam 之间的交接班事件。
// 同日只认 M→E 和 E→N 这两种相邻班次（M→N 不算交接，班组不会跳班），
// 跨日认前一天夜班 → 次日早班。myTeam 在交出方时是 handover，在接收方时是 takeover
func (e *Engine) FindTransfers(myTeam, otherTeam int, window Window, limit int) TransferResult {
	result := TransferResult{Transfers: []domain.TransferEvent{}}

	if myTeam < 1 || myTeam > TeamCount || otherTeam < 1 || otherTeam > TeamCount || myTeam == otherTeam {
		return result
	}

	if limit <= 0 {
		limit = DefaultTransferLimit
	}

	start := window.Start
	if start.IsZero() {
		start = time.Now()
	}
	start = normalizeDate(start)

	var end *time.Time
	if window.End != nil {
		endDate := normalizeDate(*window.End)
		end = &endDate

		if days := daysBetween(start, endDate); days > transferScanCeiling {
			// 超长窗口只警告不拦截
			slog.Warn("交接扫描窗口超过一年", "days", days, "start", start.Format(DateLayout), "end", endDate.Format(DateLayout))
		}
	}

	limitHit := false

	for day := 0; ; day++ {
		scanDate := start.AddDate(0, 0, day)

		if end != nil && scanDate.After(*end) {
			break
		}
		if end == nil && day >= transferScanCeiling {
			break
		}
		if len(result.Transfers) >= limit {
			limitHit = true
			break
		}

		nextDate := scanDate.AddDate(0, 0, 1)

		myShift, _ := e.ShiftFor(scanDate, myTeam)
		otherShift, _ := e.ShiftFor(scanDate, otherTeam)

		// 同日：早班 → 中班
		if myShift.Code == domain.ShiftMorning && otherShift.Code == domain.ShiftEvening {
			result.Transfers = append(result.Transfers, transferEvent(scanDate, myTeam, otherTeam, domain.ShiftMorning, domain.ShiftEvening, domain.TransferHandover))
		}
		if otherShift.Code == domain.ShiftMorning && myShift.Code == domain.ShiftEvening {
			result.Transfers = append(result.Transfers, transferEvent(scanDate, otherTeam, myTeam, domain.ShiftMorning, domain.ShiftEvening, domain.TransferTakeover))
		}

		// 同日：中班 → 夜班
		if myShift.Code == domain.ShiftEvening && otherShift.Code == domain.ShiftNight {
			result.Transfers = append(result.Transfers, transferEvent(scanDate, myTeam, otherTeam, domain.ShiftEvening, domain.ShiftNight, domain.TransferHandover))
		}
		if otherShift.Code == domain.ShiftEvening && myShift.Code == domain.ShiftNight {
			result.Transfers = append(result.Transfers, transferEvent(scanDate, otherTeam, myTeam, domain.ShiftEvening, domain.ShiftNight, domain.TransferTakeover))
		}

		// 跨日：夜班 → 次日早班。次日超出窗口时跳过
		if end == nil || !nextDate.After(*end) {
			myNextShift, _ := e.ShiftFor(nextDate, myTeam)
			otherNextShift, _ := e.ShiftFor(nextDate, otherTeam)

			if myShift.Code == domain.ShiftNight && otherNextShift.Code == domain.ShiftMorning {
				result.Transfers = append(result.Transfers, transferEvent(scanDate, myTeam, otherTeam, domain.ShiftNight, domain.ShiftMorning, domain.TransferHandover))
			}
			if otherShift.Code == domain.ShiftNight && myNextShift.Code == domain.ShiftMorning {
				result.Transfers = append(result.Transfers, transferEvent(scanDate, otherTeam, myTeam, domain.ShiftNight, domain.ShiftMorning, domain.TransferTakeover))
			}
		}
	}

	// 逐日扫描本身已经是升序，这里再排一次以防迭代顺序将来被改动
	sort.SliceStable(result.Transfers, func(i, j int) bool {
		return result.Transfers[i].Date < result.Transfers[j].Date
	})

	if len(result.Transfers) > limit {
		result.Transfers = result.Transfers[:limit]
	}
	result.HasMore = limitHit

	return result
}

func transferEvent(date time.Time, fromTeam, toTeam int, fromShift, toShift domain.ShiftType, kind domain.TransferKind) domain.TransferEvent {
	return domain.TransferEvent{
		Date:      date.Format(DateLayout),
		FromTeam:  fromTeam,
		ToTeam:    toTeam,
		FromShift: fromShift,
		ToShift:   toShift,
		Kind:      kind,
	}
}
