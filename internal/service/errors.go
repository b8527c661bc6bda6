package service

import "errors"

// Сторожевые ошибки сервисного слоя
var (
	ErrInvalidToken     = errors.New("недействительный токен")
	ErrInvalidImage     = errors.New("неверный формат изображения")
	ErrUnsupportedMedia = errors.New("файл не является изображением")
	ErrFileTooLarge     = errors.New("файл слишком большой")
	ErrEmptyPost        = errors.New("пост должен содержать текст или изображение")
	ErrEmptyComment     = errors.New("комментарий не может быть пустым")
)
