package rotation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/rotation"
)

func window(t *testing.T, start, end string) rotation.Window {
	t.Helper()
	w := rotation.Window{Start: mustDate(t, start)}
	if end != "" {
		endDate := mustDate(t, end)
		w.End = &endDate
	}
	return w
}

// 2025-01-06 当天：1 组早班，5 组中班
func TestFindTransfers_SameDayHandover(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.FindTransfers(1, 5, window(t, "2025-01-06", "2025-01-06"), 20)

	require.Len(t, result.Transfers, 1)
	assert.False(t, result.HasMore)

	event := result.Transfers[0]
	assert.Equal(t, "2025-01-06", event.Date)
	assert.Equal(t, 1, event.FromTeam)
	assert.Equal(t, 5, event.ToTeam)
	assert.Equal(t, domain.ShiftMorning, event.FromShift)
	assert.Equal(t, domain.ShiftEvening, event.ToShift)
	assert.Equal(t, domain.TransferHandover, event.Kind)
}

// 比较方向反过来时，同一个事件变成接班
func TestFindTransfers_SameDayTakeover(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.FindTransfers(5, 1, window(t, "2025-01-06", "2025-01-06"), 20)

	require.Len(t, result.Transfers, 1)

	event := result.Transfers[0]
	assert.Equal(t, "2025-01-06", event.Date)
	assert.Equal(t, 1, event.FromTeam)
	assert.Equal(t, 5, event.ToTeam)
	assert.Equal(t, domain.ShiftMorning, event.FromShift)
	assert.Equal(t, domain.ShiftEvening, event.ToShift)
	assert.Equal(t, domain.TransferTakeover, event.Kind)
}

// 1 组 01-11 夜班结束，4 组 01-12 开始早班：跨日交接记在夜班那天
func TestFindTransfers_CrossDayNightToMorning(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.FindTransfers(1, 4, window(t, "2025-01-08", "2025-01-12"), 20)

	require.Len(t, result.Transfers, 1)

	event := result.Transfers[0]
	assert.Equal(t, "2025-01-11", event.Date)
	assert.Equal(t, 1, event.FromTeam)
	assert.Equal(t, 4, event.ToTeam)
	assert.Equal(t, domain.ShiftNight, event.FromShift)
	assert.Equal(t, domain.ShiftMorning, event.ToShift)
	assert.Equal(t, domain.TransferHandover, event.Kind)
}

// 窗口截止在夜班当天时，跨日检查会因为次日越界而被跳过
func TestFindTransfers_CrossDaySkippedAtWindowEnd(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.FindTransfers(1, 4, window(t, "2025-01-11", "2025-01-11"), 20)

	assert.Empty(t, result.Transfers)
	assert.False(t, result.HasMore)
}

// 同日的 M→N 不算交接：01-06 当天 1 组早班、4 组夜班，单日窗口内没有事件
func TestFindTransfers_MorningToNightExcluded(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.FindTransfers(1, 4, window(t, "2025-01-06", "2025-01-06"), 20)

	assert.Empty(t, result.Transfers)
}

// 一个完整周期内 1 组和 2 组之间的全部交接，必须按日期升序
func TestFindTransfers_FullCycleOrdering(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.FindTransfers(2, 1, window(t, "2025-01-06", "2025-01-15"), 20)

	require.Len(t, result.Transfers, 4)
	assert.False(t, result.HasMore)

	expected := []struct {
		date      string
		fromShift domain.ShiftType
		toShift   domain.ShiftType
	}{
		{date: "2025-01-08", fromShift: domain.ShiftMorning, toShift: domain.ShiftEvening},
		{date: "2025-01-09", fromShift: domain.ShiftMorning, toShift: domain.ShiftEvening},
		{date: "2025-01-10", fromShift: domain.ShiftEvening, toShift: domain.ShiftNight},
		{date: "2025-01-11", fromShift: domain.ShiftEvening, toShift: domain.ShiftNight},
	}

	for i, event := range result.Transfers {
		assert.Equal(t, expected[i].date, event.Date)
		assert.Equal(t, expected[i].fromShift, event.FromShift)
		assert.Equal(t, expected[i].toShift, event.ToShift)
		assert.Equal(t, domain.TransferHandover, event.Kind)
		assert.Equal(t, 2, event.FromTeam)
		assert.Equal(t, 1, event.ToTeam)
	}
}

func TestFindTransfers_LimitAndHasMore(t *testing.T) {
	engine := newTestEngine(t)

	// 开区间窗口里事件远多于 3 个
	result := engine.FindTransfers(1, 2, rotation.Window{Start: mustDate(t, "2025-01-06")}, 3)

	assert.Len(t, result.Transfers, 3)
	assert.True(t, result.HasMore)

	// 足够大的 limit 下扫描自然结束
	all := engine.FindTransfers(1, 2, window(t, "2025-01-06", "2025-01-15"), 100)
	assert.False(t, all.HasMore)
}

// 开区间窗口最多扫一年
func TestFindTransfers_OpenWindowCeiling(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.FindTransfers(1, 2, rotation.Window{Start: mustDate(t, "2025-01-06")}, 100000)

	require.NotEmpty(t, result.Transfers)
	assert.False(t, result.HasMore)

	last := result.Transfers[len(result.Transfers)-1].Date
	lastDate, err := time.ParseInLocation(rotation.DateLayout, last, time.UTC)
	require.NoError(t, err)
	assert.True(t, lastDate.Before(mustDate(t, "2025-01-06").AddDate(0, 0, 366)))
}

func TestFindTransfers_InvalidInput(t *testing.T) {
	engine := newTestEngine(t)

	tests := map[string]struct {
		myTeam    int
		otherTeam int
	}{
		"我方班组非法": {myTeam: 0, otherTeam: 2},
		"对方班组非法": {myTeam: 1, otherTeam: 6},
		"两个班组相同": {myTeam: 3, otherTeam: 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result := engine.FindTransfers(tt.myTeam, tt.otherTeam, window(t, "2025-01-06", "2025-02-06"), 20)
			assert.Empty(t, result.Transfers)
			assert.False(t, result.HasMore)
		})
	}
}
