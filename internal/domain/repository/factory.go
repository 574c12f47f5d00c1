package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Drinks() DrinkRepository
	Orders() OrderRepository
}
