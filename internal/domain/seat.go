package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type SeatStatus int

const (
	SeatAvailable SeatStatus = iota
	SeatInUse
	SeatReserved
)

var seatStatusNames = map[SeatStatus]string{
	SeatAvailable: "available",
	SeatInUse:     "in_use",
	SeatReserved:  "reserved",
}

func (s SeatStatus) String() string {
	if name, ok := seatStatusNames[s]; ok {
		return name
	}
	return seatStatusNames[SeatAvailable]
}

// ParseSeatStatus reports whether v is a known stored form.
func ParseSeatStatus(v string) (SeatStatus, bool) {
	for status, name := range seatStatusNames {
		if name == v {
			return status, true
		}
	}
	return SeatAvailable, false
}

func (s SeatStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SeatStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, ok := ParseSeatStatus(v)
	if !ok {
		return fmt.Errorf("%w: unknown seat status %q", ErrValidation, v)
	}
	*s = parsed
	return nil
}

// SelectedService is one line item of a session, reservation or ledger entry.
type SelectedService struct {
	Name   string  `json:"name" validate:"required"`
	Length *string `json:"length,omitempty"`
	Price  int     `json:"price" validate:"gte=0"`
}

type ServiceSession struct {
	ID            string            `json:"id"`
	SeatID        int               `json:"seatId"`
	MemberID      *string           `json:"memberId,omitempty"`
	MemberName    string            `json:"memberName"`
	StaffID       string            `json:"staffId"`
	StaffName     string            `json:"staffName"`
	Services      []SelectedService `json:"services"`
	TotalPrice    int               `json:"totalPrice"`
	StartTime     time.Time         `json:"startTime"`
	ReservationID *string           `json:"reservationId,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type Seat struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Status         SeatStatus      `json:"status"`
	CurrentSession *ServiceSession `json:"currentSession,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// TotalOf sums the line item prices.
func TotalOf(services []SelectedService) int {
	total := 0
	for _, s := range services {
		total += s.Price
	}
	return total
}

// Seat board event types.
const (
	EventServiceStarted   = "service_started"
	EventServiceCompleted = "service_completed"
	EventServiceCancelled = "service_cancelled"
	EventSeatStatus       = "seat_status_changed"
)

// SeatEvent is pushed to seat board subscribers after a lifecycle change.
type SeatEvent struct {
	Type   string     `json:"type"`
	SeatID int        `json:"seatId"`
	Status SeatStatus `json:"status"`
	At     time.Time  `json:"at"`
}
