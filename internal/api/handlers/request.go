package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// MaxBodyBytes ограничение на размер тела запроса
const MaxBodyBytes = 1 << 20

var (
	// ErrEmptyBody тело запроса отсутствует
	ErrEmptyBody = errors.New("request body is empty")

	// ErrInvalidParam некорректный параметр пути или запроса
	ErrInvalidParam = errors.New("invalid parameter")
)

// DecodeJSON читает тело запроса в dst. Неизвестные поля - ошибка
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// PathID извлекает положительный ID из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	return parseID(name, mux.Vars(r)[name])
}

// OptionalPathID извлекает ID из переменной пути, если маршрут её содержит.
// Используется маршрутами уровня арендатора и специалиста с общим handler
func OptionalPathID(r *http.Request, name string) (*int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return nil, nil
	}
	id, err := parseID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// QueryID извлекает необязательный положительный ID из query параметра
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// QueryInt извлекает необязательное целое из query параметра
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return &v, nil
}

// QueryDate парсит дату YYYY-MM-DD в часовом поясе салона
func QueryDate(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q, expected YYYY-MM-DD", ErrInvalidParam, name, raw)
	}
	return &date, nil
}

// QueryTime парсит момент времени в RFC3339
func QueryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q, expected RFC3339", ErrInvalidParam, name, raw)
	}
	return &t, nil
}

// InLocation переводит время из тела запроса в часовой пояс салона
func InLocation(t time.Time, location *time.Location) time.Time {
	if location == nil {
		return t
	}
	return t.In(location)
}

// QueryList разбирает значения вида status=a,b&status=c
func QueryList(r *http.Request, name string) []string {
	var result []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return id, nil
}
