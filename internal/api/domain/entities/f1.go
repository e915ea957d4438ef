package entities

import (
	"encoding/json"
	"errors"
)

// Виды данных Ergast F1 API.
const (
	F1DataTypeDrivers   = "drivers"
	F1DataTypeRaces     = "races"
	F1DataTypeStandings = "driver_standings"
)

// DefaultSeason - сезон по умолчанию для запросов к Ergast.
const DefaultSeason = "current"

// ErrUpstream - ошибка обращения к Ergast F1 API.
var ErrUpstream = errors.New("upstream F1 API request failed")

// F1Data представляет сырые данные одного вида, полученные от Ergast.
// Элементы сохраняются в исходном виде и живут только в рамках запроса.
type F1Data struct {
	DataType string
	Season   string
	Items    []json.RawMessage
}
