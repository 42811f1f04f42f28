package rotation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/rotation"
)

func TestCurrentShiftDay(t *testing.T) {
	tests := map[string]struct {
		instant  time.Time
		expected string
	}{
		"凌晨属于前一天的班日":  {instant: time.Date(2025, 1, 15, 2, 30, 0, 0, time.UTC), expected: "2025-01-14"},
		"上午属于当天":      {instant: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC), expected: "2025-01-15"},
		"07:00 整点属于当天": {instant: time.Date(2025, 1, 15, 7, 0, 0, 0, time.UTC), expected: "2025-01-15"},
		"06:59 属于前一天":  {instant: time.Date(2025, 1, 15, 6, 59, 0, 0, time.UTC), expected: "2025-01-14"},
		"深夜属于当天":      {instant: time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC), expected: "2025-01-15"},
		"跨月回退":        {instant: time.Date(2025, 2, 1, 3, 0, 0, 0, time.UTC), expected: "2025-01-31"},
		"跨年回退":        {instant: time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC), expected: "2024-12-31"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			day := rotation.CurrentShiftDay(tt.instant)
			assert.Equal(t, tt.expected, day.Format(rotation.DateLayout))
		})
	}
}

func TestShiftCode(t *testing.T) {
	engine := newTestEngine(t)

	tests := map[string]struct {
		date     string
		team     int
		expected string
	}{
		// 2025-05-13 是 ISO 2025 年第 20 周的周二，4 组当天早班
		"早班用当天日期":       {date: "2025-05-13", team: 4, expected: "2520.2M"},
		"中班用当天日期":       {date: "2025-05-13", team: 3, expected: "2520.2E"},
		"夜班用前一天日期":      {date: "2025-05-13", team: 2, expected: "2520.1N"},
		"夜班编号跨 ISO 周边界": {date: "2025-05-12", team: 2, expected: "2519.7N"},
		"休息日也有编号":       {date: "2025-05-13", team: 1, expected: "2520.2O"},
		"基准日编号":         {date: "2025-01-06", team: 1, expected: "2502.1M"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			code, err := engine.ShiftCode(mustDate(t, tt.date), tt.team)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
			assert.Regexp(t, `^\d{4}\.\d[MENO]$`, code)
		})
	}
}

func TestShiftCode_InvalidTeam(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.ShiftCode(mustDate(t, "2025-05-13"), 6)
	assert.Error(t, err)
}

func TestAllTeamsFor(t *testing.T) {
	engine := newTestEngine(t)

	assignments := engine.AllTeamsFor(mustDate(t, "2025-01-06"))
	require.Len(t, assignments, rotation.TeamCount)

	expected := []domain.ShiftType{domain.ShiftMorning, domain.ShiftOff, domain.ShiftOff, domain.ShiftNight, domain.ShiftEvening}
	for i, assignment := range assignments {
		assert.Equal(t, i+1, assignment.Team)
		assert.Equal(t, "2025-01-06", assignment.Date)
		assert.Equal(t, expected[i], assignment.Shift.Code)
	}
}

func TestNextWorkingShift(t *testing.T) {
	engine := newTestEngine(t)

	tests := map[string]struct {
		fromDate      string
		team          int
		expectedDate  string
		expectedShift domain.ShiftType
	}{
		"早班块中间的次日还是早班": {fromDate: "2025-01-06", team: 1, expectedDate: "2025-01-07", expectedShift: domain.ShiftMorning},
		"早班块最后一天之后是中班": {fromDate: "2025-01-07", team: 1, expectedDate: "2025-01-08", expectedShift: domain.ShiftEvening},
		"休息块第一天之后跳到下个早班": {fromDate: "2025-01-12", team: 1, expectedDate: "2025-01-16", expectedShift: domain.ShiftMorning},
		"夜班块最后一天之后隔着休息块": {fromDate: "2025-01-11", team: 1, expectedDate: "2025-01-16", expectedShift: domain.ShiftMorning},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assignment := engine.NextWorkingShift(mustDate(t, tt.fromDate), tt.team)
			require.NotNil(t, assignment)
			assert.Equal(t, tt.expectedDate, assignment.Date)
			assert.Equal(t, tt.expectedShift, assignment.Shift.Code)
			assert.Equal(t, tt.team, assignment.Team)
		})
	}
}

func TestNextWorkingShift_InvalidTeam(t *testing.T) {
	engine := newTestEngine(t)

	assert.Nil(t, engine.NextWorkingShift(mustDate(t, "2025-01-06"), 0))
	assert.Nil(t, engine.NextWorkingShift(mustDate(t, "2025-01-06"), 6))
}

func TestOffDayProgress(t *testing.T) {
	engine := newTestEngine(t)

	// 1 组 2025-01-12 ~ 2025-01-15 休息
	tests := map[string]struct {
		date     time.Time
		team     int
		expected *domain.OffDayProgress
	}{
		"休息第一天":     {date: time.Date(2025, 1, 12, 12, 0, 0, 0, time.UTC), team: 1, expected: &domain.OffDayProgress{Current: 1, Total: 4}},
		"休息第三天":     {date: time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC), team: 1, expected: &domain.OffDayProgress{Current: 3, Total: 4}},
		"休息最后一天":    {date: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), team: 1, expected: &domain.OffDayProgress{Current: 4, Total: 4}},
		"工作日返回 nil": {date: time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC), team: 1, expected: nil},
		"班组非法返回 nil": {date: time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC), team: 7, expected: nil},
		// 01-16 凌晨仍属于 01-15 的班日，还在休息段内
		"次日凌晨仍算休息段": {date: time.Date(2025, 1, 16, 2, 0, 0, 0, time.UTC), team: 1, expected: &domain.OffDayProgress{Current: 4, Total: 4}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			progress := engine.OffDayProgress(tt.date, tt.team)
			assert.Equal(t, tt.expected, progress)
		})
	}
}

func TestIsCurrentlyWorking(t *testing.T) {
	assignedDate := mustDate(t, "2025-01-10")

	tests := map[string]struct {
		shift    domain.Shift
		now      time.Time
		expected bool
	}{
		"夜班开始时刻":     {shift: domain.NightShift, now: time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC), expected: true},
		"夜班跨过午夜":     {shift: domain.NightShift, now: time.Date(2025, 1, 11, 2, 0, 0, 0, time.UTC), expected: true},
		"夜班白天不在岗":    {shift: domain.NightShift, now: time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC), expected: false},
		"夜班结束之后":     {shift: domain.NightShift, now: time.Date(2025, 1, 11, 7, 30, 0, 0, time.UTC), expected: false},
		"早班进行中":      {shift: domain.MorningShift, now: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), expected: true},
		"早班结束时刻":     {shift: domain.MorningShift, now: time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC), expected: false},
		"中班进行中":      {shift: domain.EveningShift, now: time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC), expected: true},
		"休息日永远为假":    {shift: domain.OffShift, now: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), expected: false},
		"不是分配的那个班日":  {shift: domain.MorningShift, now: time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC), expected: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rotation.IsCurrentlyWorking(tt.shift, assignedDate, tt.now))
		})
	}
}
