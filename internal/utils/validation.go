package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/tjorim/rota-backend/internal/domain"
)

const maxTimeOffDays = 30

// ValidateTimeOffRecord 检查请假记录的日期范围是否合法
func ValidateTimeOffRecord(record *domain.TimeOffRecord) error {
	if record.StartDate.IsZero() || record.EndDate.IsZero() {
		return errors.New("请假的开始日期和结束日期不能为空")
	}

	if record.EndDate.Before(record.StartDate) {
		return errors.New("请假的结束日期不能早于开始日期")
	}

	days := int(record.EndDate.Sub(record.StartDate).Hours()/24) + 1
	if days > maxTimeOffDays {
		return fmt.Errorf("单次请假不能超过 %d 天", maxTimeOffDays)
	}

	return nil
}

// ParseDateRange 解析 YYYY-MM-DD 格式的日期区间，两个都必须合法且 start <= end
func ParseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("开始日期格式错误: %s", startStr)
	}

	end, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("结束日期格式错误: %s", endStr)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("结束日期不能早于开始日期")
	}

	return start, end, nil
}
