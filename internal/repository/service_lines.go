package repository

import (
	"gorm.io/gorm"

	"timehair/internal/domain"
)

// serviceLineModel is a row of selected_services. Exactly one owner column
// is set; lines are copied between owners, never re-pointed.
type serviceLineModel struct {
	ID               uint    `gorm:"column:id;primaryKey;autoIncrement"`
	ServiceSessionID *string `gorm:"column:service_session_id;index"`
	ReservationID    *string `gorm:"column:reservation_id;index"`
	LedgerEntryID    *string `gorm:"column:ledger_entry_id;index"`
	Name             string  `gorm:"column:name;not null"`
	Length           *string `gorm:"column:length"`
	Price            int     `gorm:"column:price;not null"`
}

func (serviceLineModel) TableName() string { return "selected_services" }

type lineOwner int

const (
	ownerSession lineOwner = iota
	ownerReservation
	ownerLedger
)

func (o lineOwner) column() string {
	switch o {
	case ownerReservation:
		return "reservation_id"
	case ownerLedger:
		return "ledger_entry_id"
	default:
		return "service_session_id"
	}
}

func (m serviceLineModel) ownerID(o lineOwner) string {
	var id *string
	switch o {
	case ownerReservation:
		id = m.ReservationID
	case ownerLedger:
		id = m.LedgerEntryID
	default:
		id = m.ServiceSessionID
	}
	if id == nil {
		return ""
	}
	return *id
}

func insertLines(db *gorm.DB, owner lineOwner, ownerID string, services []domain.SelectedService) error {
	if len(services) == 0 {
		return nil
	}

	rows := make([]serviceLineModel, 0, len(services))
	for _, s := range services {
		id := ownerID
		m := serviceLineModel{Name: s.Name, Length: s.Length, Price: s.Price}
		switch owner {
		case ownerReservation:
			m.ReservationID = &id
		case ownerLedger:
			m.LedgerEntryID = &id
		default:
			m.ServiceSessionID = &id
		}
		rows = append(rows, m)
	}
	return db.Create(&rows).Error
}

func loadLines(db *gorm.DB, owner lineOwner, ids []string) (map[string][]domain.SelectedService, error) {
	out := make(map[string][]domain.SelectedService, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []serviceLineModel
	if err := db.Where(owner.column()+" IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		key := row.ownerID(owner)
		out[key] = append(out[key], domain.SelectedService{
			Name:   row.Name,
			Length: row.Length,
			Price:  row.Price,
		})
	}
	return out, nil
}

func deleteLines(db *gorm.DB, owner lineOwner, ownerID string) error {
	return db.Where(owner.column()+" = ?", ownerID).Delete(&serviceLineModel{}).Error
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty(services []domain.SelectedService) []domain.SelectedService {
	if services == nil {
		return []domain.SelectedService{}
	}
	return services
}
