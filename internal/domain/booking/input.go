package booking

// CreateInput carries a booking request into the operations layer.
type CreateInput struct {
	UserID     uint
	BarberID   uint
	Status     Status
	SlotIDs    []uint
	ServiceIDs []uint
}

// UpdateInput is a sparse patch. Nil fields are left untouched; a non-nil
// slice pointer replaces the full association set, empty slice included.
type UpdateInput struct {
	UserID     *uint
	BarberID   *uint
	Status     *Status
	SlotIDs    *[]uint
	ServiceIDs *[]uint
}
