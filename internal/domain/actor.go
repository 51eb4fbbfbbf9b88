package domain

// Actor identifies the user performing an operation together with the
// capabilities granted by their role. Role checks are data, not behavior:
// services branch on the capabilities instead of dispatching on actor types.
type Actor struct {
	UserID string
	Admin  bool
}

// Owns returns true if the actor booked the reservation
func (a Actor) Owns(r *Reservation) bool {
	return r.UserID == a.UserID
}

// CanAccess returns true if the actor may view the reservation
func (a Actor) CanAccess(r *Reservation) bool {
	return a.Admin || a.Owns(r)
}

// CanEditAnyStatus returns true if the actor may edit a reservation
// regardless of its lifecycle status. Regular owners may only edit
// PENDING reservations; admins may edit at any status.
func (a Actor) CanEditAnyStatus() bool {
	return a.Admin
}
