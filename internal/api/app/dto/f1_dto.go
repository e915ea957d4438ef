package dto

import (
	"encoding/json"

	"pitlane/internal/api/domain/entities"
)

// F1DataResponse содержит сырые данные Ergast без обработки.
type F1DataResponse struct {
	DataType string            `json:"data_type"`
	Season   string            `json:"season"`
	Items    []json.RawMessage `json:"items"`
}

// NewF1DataResponse преобразует сырые данные в ответ API.
func NewF1DataResponse(data *entities.F1Data) *F1DataResponse {
	return &F1DataResponse{
		DataType: data.DataType,
		Season:   data.Season,
		Items:    data.Items,
	}
}

// F1ProcessedResponse содержит нормализованные данные с кратким описанием.
type F1ProcessedResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Season      string `json:"season"`
	TotalItems  int    `json:"total_items"`
	Summary     string `json:"summary"`
	Items       any    `json:"items"`
}

// ProcessedDriver представляет нормализованную запись о пилоте.
type ProcessedDriver struct {
	FullName     string `json:"full_name"`
	Nationality  string `json:"nationality"`
	DriverNumber string `json:"driver_number"`
	Code         string `json:"code"`
	BirthDate    string `json:"birth_date"`
	WikiURL      string `json:"wiki_url"`
}

// Coordinates представляет координаты трассы.
type Coordinates struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}

// ProcessedRace представляет нормализованную запись о гонке календаря.
type ProcessedRace struct {
	Round       string      `json:"round"`
	RaceName    string      `json:"race_name"`
	CircuitName string      `json:"circuit_name"`
	Location    string      `json:"location"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Coordinates Coordinates `json:"coordinates"`
}

// ProcessedStanding представляет нормализованную строку чемпионата.
type ProcessedStanding struct {
	Position    int     `json:"position"`
	DriverName  string  `json:"driver_name"`
	DriverCode  string  `json:"driver_code"`
	Nationality string  `json:"nationality"`
	Team        string  `json:"team"`
	Points      float64 `json:"points"`
	Wins        int     `json:"wins"`
}
