package repository

import "errors"

// Сторожевые ошибки слоя хранения, хендлеры сопоставляют их с HTTP статусами
var (
	ErrUserNotFound    = errors.New("пользователь не найден")
	ErrEmailTaken      = errors.New("email уже зарегистрирован")
	ErrInvalidPassword = errors.New("неверный пароль")
	ErrPostNotFound    = errors.New("пост не найден")
)
