package domain

type Product struct {
	ID          string
	Title       string
	Price       Money
	Description string
	Image       string
}
