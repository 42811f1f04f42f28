package rotation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tjorim/rota-backend/internal/config"
	"github.com/tjorim/rota-backend/internal/domain"
)

const (
	// 班组数量和轮班周期是编译期常量，不支持运行时配置
	TeamCount       = 5
	CycleLengthDays = 10

	// 固定轮班模式中连续休息段的长度（2 早 + 2 中 + 2 夜 + 4 休）
	OffBlockLength = 4
)

const DateLayout = "2006-01-02"

// 默认基准：2025-01-06 是周一，1 组从这天开始早班
var defaultReferenceDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

const defaultReferenceTeam = 1

type InvalidTeamError struct {
	Team int
}

func (e *InvalidTeamError) Error() string {
	return fmt.Sprintf("无效的班组编号 %d，应在 1 到 %d 之间", e.Team, TeamCount)
}

// Engine 根据基准日期和基准班组计算任意日期任意班组的班次。
// 构造之后不再变化，所有方法都是纯函数
type Engine struct {
	referenceDate time.Time
	referenceTeam int
}

func New(referenceDate time.Time, referenceTeam int) (*Engine, error) {
	if referenceTeam < 1 || referenceTeam > TeamCount {
		return nil, &InvalidTeamError{Team: referenceTeam}
	}

	return &Engine{
		referenceDate: normalizeDate(referenceDate),
		referenceTeam: referenceTeam,
	}, nil
}

// FromConfig 从配置构造引擎，配置非法时回退到默认值并打印警告，从不返回错误
func FromConfig(cfg *config.Config) *Engine {
	referenceDate := defaultReferenceDate
	referenceTeam := cfg.Rotation.ReferenceTeam

	parsed, err := time.ParseInLocation(DateLayout, cfg.Rotation.ReferenceDate, time.UTC)
	if err != nil {
		slog.Warn("轮班基准日期配置无效，使用默认值", "configured", cfg.Rotation.ReferenceDate, "default", defaultReferenceDate.Format(DateLayout))
	} else {
		referenceDate = parsed
	}

	if referenceTeam < 1 || referenceTeam > TeamCount {
		slog.Warn("轮班基准班组配置无效，使用默认值", "configured", cfg.Rotation.ReferenceTeam, "default", defaultReferenceTeam)
		referenceTeam = defaultReferenceTeam
	}

	engine, _ := New(referenceDate, referenceTeam)
	return engine
}

// ShiftFor 计算某个班组在某天的班次。日期只取年月日，时分秒会被丢弃。
// 班组编号非法时直接返回 *InvalidTeamError，这属于调用方的编程错误
func (e *Engine) ShiftFor(date time.Time, team int) (domain.Shift, error) {
	if team < 1 || team > TeamCount {
		return domain.Shift{}, &InvalidTeamError{Team: team}
	}

	daysSinceReference := daysBetween(e.referenceDate, date)

	// 相邻班组错开 2 天，保证任意一天恰好一组早班、一组中班、一组夜班、两组休息
	teamOffset := (team - e.referenceTeam) * 2
	adjusted := daysSinceReference - teamOffset

	// adjusted 可能为负，必须用向下取整的模运算
	switch cyclePosition := floorMod(adjusted, CycleLengthDays); {
	case cyclePosition < 2:
		return domain.MorningShift, nil
	case cyclePosition < 4:
		return domain.EveningShift, nil
	case cyclePosition < 6:
		return domain.NightShift, nil
	default:
		return domain.OffShift, nil
	}
}

// normalizeDate 丢弃时分秒，只保留日期本身（按该值自己的日历字段），统一放到 UTC 方便做整天运算
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(normalizeDate(to).Sub(normalizeDate(from)).Hours() / 24)
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
