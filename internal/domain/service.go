package domain

// Service represents an entry of the shop's service catalog
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
}

// DefaultServices каталог услуг по умолчанию (цены в евро)
var DefaultServices = []Service{
	{ID: 1, Name: "Herren Haarschnitt", Price: 15, DurationMinutes: 30},
	{ID: 2, Name: "Herren Haar Schnitt mit Waschen", Price: 20, DurationMinutes: 30},
	{ID: 3, Name: "Kinder Haarschnitt", Price: 15, DurationMinutes: 30},
	{ID: 4, Name: "Kinder Harrschnitt mit Waschen", Price: 18, DurationMinutes: 30},
	{ID: 5, Name: "Bart Styling", Price: 12, DurationMinutes: 30},
	{ID: 6, Name: "Gesichtsreinigung", Price: 15, DurationMinutes: 30},
}
