package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound - запись не найдена (или принадлежит другому пользователю)
	ErrNotFound = errors.New("запись не найдена")
	// ErrDuplicate - нарушение уникальности (slug, email, username, name)
	ErrDuplicate = errors.New("значение уникального поля уже занято")
	// ErrInvalidCredentials - неверный email или пароль, без уточнения
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	// ErrMenuCycle - родитель пункта меню образует цикл
	ErrMenuCycle = errors.New("родительский пункт меню образует цикл")
)

// isUniqueViolation - postgres error 23505 (unique_violation)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
