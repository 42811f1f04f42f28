package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateTimeOffRecord(t *testing.T) {
	tests := map[string]struct {
		record  domain.TimeOffRecord
		wantErr bool
	}{
		"单天请假":    {record: domain.TimeOffRecord{StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 10), Type: domain.TimeOffAnnual}},
		"多天请假":    {record: domain.TimeOffRecord{StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Type: domain.TimeOffSick}},
		"结束早于开始":  {record: domain.TimeOffRecord{StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 9)}, wantErr: true},
		"超过三十天":   {record: domain.TimeOffRecord{StartDate: date(2025, 3, 1), EndDate: date(2025, 4, 15)}, wantErr: true},
		"缺少开始日期":  {record: domain.TimeOffRecord{EndDate: date(2025, 3, 10)}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := utils.ValidateTimeOffRecord(&tt.record)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, err := utils.ParseDateRange("2025-03-10", "2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 10), start)
	assert.Equal(t, date(2025, 3, 14), end)

	_, _, err = utils.ParseDateRange("2025-03-14", "2025-03-10")
	assert.Error(t, err)

	_, _, err = utils.ParseDateRange("2025/03/10", "2025-03-14")
	assert.Error(t, err)
}

func TestGenerateUsernameFromChineseName(t *testing.T) {
	username := utils.GenerateUsernameFromChineseName("张伟")
	assert.NotEmpty(t, username)
	assert.Regexp(t, `^[a-z]+\d{1,3}$`, username)
}

func TestGenerateRandomTeam(t *testing.T) {
	for i := 0; i < 100; i++ {
		team := utils.GenerateRandomTeam()
		assert.GreaterOrEqual(t, team, int32(1))
		assert.LessOrEqual(t, team, int32(5))
	}
}
