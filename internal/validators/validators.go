package validators

import (
	"strconv"
	"strings"
)

// CheckOrderID проверяет, что строка - числовой идентификатор заказа (только цифры)
func CheckOrderID(id string) bool {
	// Удаляем пробелы по краям
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}

	// Проверяем, что строка состоит только из цифр
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CheckPage разбирает номер страницы списка, допустимы только положительные числа
func CheckPage(page string) (int, bool) {
	if !CheckOrderID(page) {
		return 0, false
	}
	n, err := strconv.Atoi(page)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
