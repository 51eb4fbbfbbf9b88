package domain

import "time"

// Office represents a bookable office space
type Office struct {
	ID         string
	Name       string
	MetricArea float64
	Floor      int
	RoomNumber int
	Country    string
	City       string
	PostalCode string
	Address    string
	Longitude  float64
	Latitude   float64
	Price      float64 // base price per day, before the demand multiplier
	OwnerID    string
	Deleted    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullAddress returns the human-readable address of the office
func (o *Office) FullAddress() string {
	return o.Address + ", " + o.PostalCode + " " + o.City + ", " + o.Country
}

// OfficeFilter фильтр для поиска офисов
// Все поля опциональны, nil означает отсутствие ограничения
type OfficeFilter struct {
	PricePerDayMin *float64
	PricePerDayMax *float64
	AreaMin        *float64
	AreaMax        *float64
	Country        *string
	City           *string
	PostalCode     *string
	Address        *string
}

// OfficeSortField поле сортировки списка офисов
type OfficeSortField string

const (
	OfficeSortName    OfficeSortField = "name"
	OfficeSortCountry OfficeSortField = "country"
	OfficeSortCity    OfficeSortField = "city"
)

// officeSortColumns отображение полей сортировки на колонки таблицы
var officeSortColumns = map[OfficeSortField]string{
	OfficeSortName:    "name",
	OfficeSortCountry: "country",
	OfficeSortCity:    "city",
}

// Column returns the SQL column for the sort field and whether the field is known
func (f OfficeSortField) Column() (string, bool) {
	column, ok := officeSortColumns[f]
	return column, ok
}
