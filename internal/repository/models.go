package repository

// Models lists every table the repositories read and write, in migration order.
func Models() []any {
	return []any{
		&userModel{},
		&memberModel{},
		&staffModel{},
		&seatModel{},
		&sessionModel{},
		&serviceLineModel{},
		&reservationModel{},
		&ledgerEntryModel{},
	}
}
