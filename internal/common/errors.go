// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и возвращать клиенту корректный HTTP-статус.
package common

import "errors"

// Ошибки каталога
var (
	// ErrNotFound — запрошенный ресурс не существует
	ErrNotFound = errors.New("ресурс не найден")
	// ErrProductIDRequired — попытка сохранить товар без id
	ErrProductIDRequired = errors.New("у товара должен быть id")
)

