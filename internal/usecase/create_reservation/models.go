package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID      string     // ID пользователя, выполняющего бронирование
	OfficeID    string     // ID бронируемого офиса
	StartDate   time.Time  // Первый день бронирования (включительно)
	EndDate     time.Time  // Последний день бронирования (включительно)
	PaymentType string     // Способ оплаты: CASH, CARD, TRANSFER, BLIK
	Comments    *string    // Комментарий к бронированию (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string    // ID созданного бронирования
	OfficeID        string    // ID офиса
	UserID          string    // ID пользователя
	StartDate       time.Time // Первый день бронирования
	EndDate         time.Time // Последний день бронирования
	BookedAt        time.Time // Дата создания бронирования
	PricePerDay     float64   // Базовая цена офиса за день
	PriceMultiplier float64   // Множитель спроса, зафиксированный при создании
	TotalPrice      float64   // Итоговая цена: дни * цена * множитель
	DurationDays    int64     // Длительность в целых днях
	Status          string    // Статус бронирования
	PaymentType     string    // Способ оплаты
	Paid            bool      // Оплачено ли бронирование
	Comments        string    // Комментарий

	CreatedAt time.Time // Время создания записи
	UpdatedAt time.Time // Время обновления записи
}
