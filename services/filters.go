package services

// Filters shared by inventory and meal-set listings.
type Filters struct {
	Q        string
	Veggie   bool
	Expiring bool
}
