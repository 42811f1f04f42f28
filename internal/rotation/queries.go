package rotation

import (
	"fmt"
	"time"

	"github.com/tjorim/rota-backend/internal/domain"
)

// 夜班 23:00 开始跨到次日 07:00，按惯例归属于开始的那一天
const shiftDayRolloverHour = 7

// CurrentShiftDay 把一个时刻换算成它所属的班日：07:00 之前算前一天
func CurrentShiftDay(instant time.Time) time.Time {
	day := normalizeDate(instant)
	if instant.Hour() < shiftDayRolloverHour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// ShiftCode 生成 YYWW.D + 班次字母 形式的班次编号（ISO 周年 + 周数 + 周内天数），
// 例如 2520.2M。夜班编号用的是前一天的日期，和班日归属的惯例保持一致
func (e *Engine) ShiftCode(date time.Time, team int) (string, error) {
	shift, err := e.ShiftFor(date, team)
	if err != nil {
		return "", err
	}

	codeDate := normalizeDate(date)
	if shift.Code == domain.ShiftNight {
		codeDate = codeDate.AddDate(0, 0, -1)
	}

	return formatShiftCode(codeDate, shift.Code), nil
}

func formatShiftCode(date time.Time, shiftType domain.ShiftType) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%02d%02d.%d%s", year%100, week, isoWeekday(date), shiftType)
}

// ISO 周内天数：周一为 1，周日为 7
func isoWeekday(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return weekday
}

// AllTeamsFor 返回某一天所有班组的班次，按班组编号升序
func (e *Engine) AllTeamsFor(date time.Time) []domain.ShiftAssignment {
	assignments := make([]domain.ShiftAssignment, 0, TeamCount)
	for team := 1; team <= TeamCount; team++ {
		assignments = append(assignments, e.assignment(date, team))
	}
	return assignments
}

// assignment 只能用合法的班组编号调用
func (e *Engine) assignment(date time.Time, team int) domain.ShiftAssignment {
	shift, _ := e.ShiftFor(date, team)
	code, _ := e.ShiftCode(date, team)

	return domain.ShiftAssignment{
		Date:  normalizeDate(date).Format(DateLayout),
		Team:  team,
		Shift: shift,
		Code:  code,
	}
}

// NextWorkingShift 从 fromDate 的次日开始往后找最多一个周期，返回第一个工作班次。
// 班组编号非法时返回 nil（与 ShiftFor 的报错路径不同，这是刻意保留的区分）
func (e *Engine) NextWorkingShift(fromDate time.Time, team int) *domain.ShiftAssignment {
	if team < 1 || team > TeamCount {
		return nil
	}

	start := normalizeDate(fromDate)
	for i := 1; i <= CycleLengthDays; i++ {
		date := start.AddDate(0, 0, i)

		shift, _ := e.ShiftFor(date, team)
		if shift.IsWorking {
			assignment := e.assignment(date, team)
			return &assignment
		}
	}

	// 固定模式下任意 10 天窗口内必有工作班次，正常不会到这里
	return nil
}

// OffDayProgress 返回休息段内的进度（第几天 / 共 4 天）。
// 班组编号非法或当天在上班时返回 nil
func (e *Engine) OffDayProgress(date time.Time, team int) *domain.OffDayProgress {
	if team < 1 || team > TeamCount {
		return nil
	}

	day := CurrentShiftDay(date)

	shift, _ := e.ShiftFor(day, team)
	if shift.IsWorking {
		return nil
	}

	// 从班日开始往回数连续的休息日，数到工作日为止
	current := 0
	for i := 0; i < CycleLengthDays; i++ {
		s, _ := e.ShiftFor(day.AddDate(0, 0, -i), team)
		if s.IsWorking {
			return &domain.OffDayProgress{Current: current, Total: OffBlockLength}
		}
		current++
	}

	// 防御：一个周期内一定能找到工作日边界
	return nil
}

// IsCurrentlyWorking 判断在 now 这个时刻，assignedDate 班日上的 shift 是否正在进行。
// now 由调用方显式注入，方便测试
func IsCurrentlyWorking(shift domain.Shift, assignedDate time.Time, now time.Time) bool {
	if shift.StartHour == nil || shift.EndHour == nil {
		return false
	}

	if !CurrentShiftDay(now).Equal(normalizeDate(assignedDate)) {
		return false
	}

	hour := now.Hour()
	start := *shift.StartHour
	end := *shift.EndHour

	if start > end {
		// 跨午夜（夜班 23→07）
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}
