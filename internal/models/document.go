package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind: вид документа. Листы и отчёты устроены одинаково.
type Kind string

const (
	KindSheet  Kind = "sheet"
	KindReport Kind = "report"
)

// Valid сообщает, известен ли вид документа.
func (k Kind) Valid() bool {
	return k == KindSheet || k == KindReport
}

// Plural возвращает имя коллекции в URL и ключах событий.
func (k Kind) Plural() string {
	return string(k) + "s"
}

// Title возвращает имя вида с заглавной буквы, для сообщений об ошибках.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Amount: денежная величина позиции. В JSON принимается как число или как
// строка с числом.
type Amount float64

// UnmarshalJSON разбирает число или строку с числом.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*a = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("amount: invalid value %q", raw)
	}
	*a = Amount(v)
	return nil
}

// Item: позиция документа.
type Item struct {
	Name       string `json:"name,omitempty"`
	PriceGross Amount `json:"price_gross"`
	PriceNet   Amount `json:"price_net"`
	PriceVat   Amount `json:"price_vat"`
}

// Totals: итоговые суммы документа. Всегда вычисляются по позициям.
type Totals struct {
	Gross float64 `json:"totalGross"`
	Net   float64 `json:"totalNet"`
	Vat   float64 `json:"totalVat"`
}

// Document: лист или отчёт со списком позиций.
type Document struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	IsPublished bool      `json:"isPublished"`
	Items       []Item    `json:"items"`
	Totals
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentRequest принимает данные документа из JSON-запроса до валидации.
// Дата приходит строкой и разбирается после проверки формата.
type DocumentRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Date        string `json:"date,omitempty" validate:"omitempty,date"`
	IsPublished *bool  `json:"isPublished" validate:"required"`
	Items       []Item `json:"items"`
}

// Normalize убирает пробелы по краям заголовка и даты. Вызывается до валидации,
// чтобы ограничения длины проверялись для сохраняемого значения.
func (r *DocumentRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Date = strings.TrimSpace(r.Date)
}

// DateLayouts: поддерживаемые форматы поля date.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate разбирает дату документа в одном из DateLayouts.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("models.ParseDate: unsupported date %q", value)
}
