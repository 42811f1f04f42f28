package rotation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjorim/rota-backend/internal/config"
	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/rotation"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.ParseInLocation(rotation.DateLayout, value, time.UTC)
	require.NoError(t, err)
	return date
}

// 测试统一使用默认基准：2025-01-06（周一）1 组开始早班
func newTestEngine(t *testing.T) *rotation.Engine {
	t.Helper()
	engine, err := rotation.New(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, err)
	return engine
}

func TestNew_InvalidReferenceTeam(t *testing.T) {
	_, err := rotation.New(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 0)
	require.Error(t, err)

	invalidTeamErr := &rotation.InvalidTeamError{}
	assert.True(t, errors.As(err, &invalidTeamErr))
}

func TestShiftFor_KnownDates(t *testing.T) {
	engine := newTestEngine(t)

	tests := map[string]struct {
		date     string
		team     int
		expected domain.ShiftType
	}{
		"基准日 1 组早班":     {date: "2025-01-06", team: 1, expected: domain.ShiftMorning},
		"早班块第二天":        {date: "2025-01-07", team: 1, expected: domain.ShiftMorning},
		"中班块开始":         {date: "2025-01-08", team: 1, expected: domain.ShiftEvening},
		"夜班块开始":         {date: "2025-01-10", team: 1, expected: domain.ShiftNight},
		"休息块开始":         {date: "2025-01-12", team: 1, expected: domain.ShiftOff},
		"休息块最后一天":       {date: "2025-01-15", team: 1, expected: domain.ShiftOff},
		"下一周期重新开始":      {date: "2025-01-16", team: 1, expected: domain.ShiftMorning},
		"基准日 4 组夜班":     {date: "2025-01-06", team: 4, expected: domain.ShiftNight},
		"基准日 5 组中班":     {date: "2025-01-06", team: 5, expected: domain.ShiftEvening},
		"基准日之前（负天数）":    {date: "2025-01-01", team: 1, expected: domain.ShiftNight},
		"基准日前一个整周期":     {date: "2024-12-27", team: 1, expected: domain.ShiftMorning},
		"2 组第一个早班":      {date: "2025-01-08", team: 2, expected: domain.ShiftMorning},
		"跨月计算（spec 例子）": {date: "2025-05-13", team: 4, expected: domain.ShiftMorning},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			shift, err := engine.ShiftFor(mustDate(t, tt.date), tt.team)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, shift.Code)
		})
	}
}

func TestShiftFor_DiscardsTimeOfDay(t *testing.T) {
	engine := newTestEngine(t)

	atMidnight, err := engine.ShiftFor(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, err)
	atNight, err := engine.ShiftFor(time.Date(2025, 1, 10, 23, 59, 59, 0, time.Local), 1)
	require.NoError(t, err)

	assert.Equal(t, atMidnight.Code, atNight.Code)
}

func TestShiftFor_InvalidTeam(t *testing.T) {
	engine := newTestEngine(t)

	for _, team := range []int{-1, 0, 6, 100} {
		_, err := engine.ShiftFor(mustDate(t, "2025-01-06"), team)
		require.Error(t, err)

		invalidTeamErr := &rotation.InvalidTeamError{}
		require.True(t, errors.As(err, &invalidTeamErr))
		assert.Equal(t, team, invalidTeamErr.Team)
	}
}

// 覆盖不变量：任何一天都恰好一组早班、一组中班、一组夜班、两组休息
func TestShiftFor_CoverageInvariant(t *testing.T) {
	engine := newTestEngine(t)

	start := mustDate(t, "2024-11-01")
	for day := 0; day < 60; day++ {
		date := start.AddDate(0, 0, day)

		counts := map[domain.ShiftType]int{}
		for team := 1; team <= rotation.TeamCount; team++ {
			shift, err := engine.ShiftFor(date, team)
			require.NoError(t, err)
			counts[shift.Code]++
		}

		assert.Equal(t, 1, counts[domain.ShiftMorning], "date %s", date.Format(rotation.DateLayout))
		assert.Equal(t, 1, counts[domain.ShiftEvening], "date %s", date.Format(rotation.DateLayout))
		assert.Equal(t, 1, counts[domain.ShiftNight], "date %s", date.Format(rotation.DateLayout))
		assert.Equal(t, 2, counts[domain.ShiftOff], "date %s", date.Format(rotation.DateLayout))
	}
}

// 周期性：10 天后班次完全重复
func TestShiftFor_CyclePeriodicity(t *testing.T) {
	engine := newTestEngine(t)

	start := mustDate(t, "2025-01-01")
	for day := 0; day < 30; day++ {
		date := start.AddDate(0, 0, day)
		for team := 1; team <= rotation.TeamCount; team++ {
			current, err := engine.ShiftFor(date, team)
			require.NoError(t, err)
			next, err := engine.ShiftFor(date.AddDate(0, 0, rotation.CycleLengthDays), team)
			require.NoError(t, err)

			assert.Equal(t, current.Code, next.Code)
		}
	}
}

// 班组错位对称性：t 组某天的班次等于 t+1 组两天后的班次
func TestShiftFor_TeamOffsetSymmetry(t *testing.T) {
	engine := newTestEngine(t)

	start := mustDate(t, "2025-03-01")
	for day := 0; day < 20; day++ {
		date := start.AddDate(0, 0, day)
		for team := 1; team < rotation.TeamCount; team++ {
			current, err := engine.ShiftFor(date, team)
			require.NoError(t, err)
			shifted, err := engine.ShiftFor(date.AddDate(0, 0, 2), team+1)
			require.NoError(t, err)

			assert.Equal(t, current.Code, shifted.Code)
		}
	}
}

func TestFromConfig_FallsBackToDefaults(t *testing.T) {
	defaultEngine := newTestEngine(t)

	tests := map[string]struct {
		referenceDate string
		referenceTeam int
	}{
		"日期格式错误": {referenceDate: "06-01-2025", referenceTeam: 1},
		"日期为空":   {referenceDate: "", referenceTeam: 1},
		"班组越界":   {referenceDate: "2025-01-06", referenceTeam: 9},
		"两者都非法":  {referenceDate: "not-a-date", referenceTeam: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Rotation.ReferenceDate = tt.referenceDate
			cfg.Rotation.ReferenceTeam = tt.referenceTeam

			engine := rotation.FromConfig(cfg)
			require.NotNil(t, engine)

			// 回退后的引擎和默认引擎算出来的班次应该完全一致
			date := mustDate(t, "2025-04-01")
			for team := 1; team <= rotation.TeamCount; team++ {
				expected, err := defaultEngine.ShiftFor(date, team)
				require.NoError(t, err)
				actual, err := engine.ShiftFor(date, team)
				require.NoError(t, err)
				assert.Equal(t, expected.Code, actual.Code)
			}
		})
	}
}

func TestShiftSingletons(t *testing.T) {
	for _, shift := range []domain.Shift{domain.MorningShift, domain.EveningShift, domain.NightShift} {
		assert.True(t, shift.IsWorking)
		require.NotNil(t, shift.StartHour)
		require.NotNil(t, shift.EndHour)
	}

	assert.False(t, domain.OffShift.IsWorking)
	assert.Nil(t, domain.OffShift.StartHour)
	assert.Nil(t, domain.OffShift.EndHour)
}
