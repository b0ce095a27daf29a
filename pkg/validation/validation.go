// Package validation общий экземпляр go-playground/validator для моделей use case
package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get возвращает общий валидатор. Кэш тегов у validator.Validate потокобезопасен
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Struct проверяет теги validate у структуры
func Struct(s interface{}) error {
	return Get().Struct(s)
}
