package domain

import "time"

type TimeOffType string

const (
	TimeOffAnnual       TimeOffType = "年假"
	TimeOffSick         TimeOffType = "病假"
	TimeOffCompensatory TimeOffType = "调休"
	TimeOffPersonal     TimeOffType = "事假"
)

type TimeOffRecord struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userID"`
	StartDate time.Time   `json:"startDate"`
	EndDate   time.Time   `json:"endDate"`
	Type      TimeOffType `json:"type"`
	Remark    string      `json:"remark"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}
