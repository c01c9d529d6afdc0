package domain

// Unassigned is the worker value of a zone nobody is servicing.
const Unassigned = "Unassigned"

// Represents a geographic service area and the worker currently assigned to it.
// The zone set is fixed at startup; only Worker changes.
type Zone struct {
	Name   string
	Worker string
}

// Confirmation returned by a successful zone assignment.
type Assignment struct {
	Zone   string
	Worker string
}
