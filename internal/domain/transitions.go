package domain

// Таблица допустимых переходов статусов бронирования
//
//	pending_call → confirmed | cancelled | expired
//	confirmed    → completed | cancelled | no_show
//
// cancelled, completed, no_show и expired терминальны
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingCall: {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed:   {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition возвращает true, если переход from → to разрешен таблицей
// Подтверждение (pending_call → confirmed) дополнительно требует повторной
// проверки интервала остаются ответственностью сервиса, не таблицы
func CanTransition(from, to BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
