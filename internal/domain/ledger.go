package domain

import "time"

// LedgerEntry is the immutable record of a completed session.
type LedgerEntry struct {
	ID            string            `json:"id"`
	ReservationID *string           `json:"reservationId,omitempty"`
	MemberID      *string           `json:"memberId,omitempty"`
	MemberName    string            `json:"memberName"`
	SeatID        int               `json:"seatId"`
	StaffID       string            `json:"staffId"`
	StaffName     string            `json:"staffName"`
	Services      []SelectedService `json:"services"`
	TotalPrice    int               `json:"totalPrice"`
	CompletedAt   time.Time         `json:"completedAt"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type LedgerSummary struct {
	TotalRevenue int              `json:"totalRevenue" yaml:"totalRevenue"`
	TotalCount   int              `json:"totalCount" yaml:"totalCount"`
	ByStaff      []StaffRevenue   `json:"byStaff" yaml:"byStaff"`
	ByService    []ServiceRevenue `json:"byService" yaml:"byService"`
}

type StaffRevenue struct {
	StaffID   string `json:"staffId" yaml:"staffId"`
	StaffName string `json:"staffName" yaml:"staffName"`
	Revenue   int    `json:"revenue" yaml:"revenue"`
	Count     int    `json:"count" yaml:"count"`
}

type ServiceRevenue struct {
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	Count       int    `json:"count" yaml:"count"`
	Revenue     int    `json:"revenue" yaml:"revenue"`
}

type DailyTotal struct {
	Date    string `json:"date" yaml:"date" gorm:"column:date"`
	Revenue int    `json:"revenue" yaml:"revenue" gorm:"column:revenue"`
	Count   int    `json:"count" yaml:"count" gorm:"column:count"`
}
