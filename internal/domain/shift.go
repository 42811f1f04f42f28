package domain

type ShiftType string

const (
	ShiftMorning ShiftType = "M"
	ShiftEvening ShiftType = "E"
	ShiftNight   ShiftType = "N"
	ShiftOff     ShiftType = "O"
)

// Shift 是班次的值类型，只有下面四个固定变体（全局不可变单例），
// 比较时按 Code 比较，不按指针比较
type Shift struct {
	Code        ShiftType `json:"code"`
	DisplayName string    `json:"displayName"`
	HoursLabel  string    `json:"hoursLabel"`
	StartHour   *int      `json:"startHour"` // 休息日为 null
	EndHour     *int      `json:"endHour"`   // 休息日为 null
	IsWorking   bool      `json:"isWorking"`
}

func hourPtr(h int) *int {
	return &h
}

var (
	MorningShift = Shift{Code: ShiftMorning, DisplayName: "早班", HoursLabel: "07:00-15:00", StartHour: hourPtr(7), EndHour: hourPtr(15), IsWorking: true}
	EveningShift = Shift{Code: ShiftEvening, DisplayName: "中班", HoursLabel: "15:00-23:00", StartHour: hourPtr(15), EndHour: hourPtr(23), IsWorking: true}
	NightShift   = Shift{Code: ShiftNight, DisplayName: "夜班", HoursLabel: "23:00-07:00", StartHour: hourPtr(23), EndHour: hourPtr(7), IsWorking: true}
	OffShift     = Shift{Code: ShiftOff, DisplayName: "休息", HoursLabel: "", StartHour: nil, EndHour: nil, IsWorking: false}
)

// ShiftAssignment 是某个班组在某天的班次，由轮班引擎按需计算，从不落库
type ShiftAssignment struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Team  int    `json:"team"`
	Shift Shift  `json:"shift"`
	Code  string `json:"code"` // YYWW.D + 班次字母，例如 2520.2M
}

type TransferKind string

const (
	TransferHandover TransferKind = "handover" // 我方交班给对方
	TransferTakeover TransferKind = "takeover" // 我方从对方接班
)

// TransferEvent 表示两个班组之间相邻班次的一次交接，由扫描产生，从不落库
type TransferEvent struct {
	Date      string       `json:"date"` // YYYY-MM-DD
	FromTeam  int          `json:"fromTeam"`
	ToTeam    int          `json:"toTeam"`
	FromShift ShiftType    `json:"fromShift"`
	ToShift   ShiftType    `json:"toShift"`
	Kind      TransferKind `json:"kind"`
}

// OffDayProgress 表示当前休息段内的进度，例如 4 天休息中的第 3 天
type OffDayProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}
