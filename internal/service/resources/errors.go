package resources

import "errors"

var (
	// ErrCodeTaken возвращается, когда код ресурса уже занят
	ErrCodeTaken = errors.New("resource code is already taken")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных параметрах ресурса
	ErrInvalidInput = errors.New("invalid resource parameters")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
