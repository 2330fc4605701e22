package prediction

import (
	"strconv"
	"time"
)

// DateHourLayout je formát, ve kterém prohlížeč posílá pole typu datetime-local.
const DateHourLayout = "2006-01-02T15:04"

// Input reprezentuje jednu sadu meteorologických vstupů z formuláře.
// Žádné hodnoty se nevalidují. Záporná nebo fyzikálně nesmyslná čísla se přijmou tak, jak přišla.
type Input struct {
	// DateHour: Časová značka (např. "2025-06-15T14:00").
	// Držíme ji jako string, protože do výpočtu nevstupuje a nechceme ji odmítat.
	DateHour string `json:"dateHour"`

	WindSpeed        float64 `json:"windSpeed"`        // m/s
	Sunshine         float64 `json:"sunshine"`         // minuty slunečního svitu za hodinu
	AirPressure      float64 `json:"airPressure"`      // hPa (do výpočtu nevstupuje)
	Radiation        float64 `json:"radiation"`        // W/m²
	AirTemperature   float64 `json:"airTemperature"`   // °C
	RelativeHumidity float64 `json:"relativeHumidity"` // % (do výpočtu nevstupuje)
}

// DefaultInput vrací ukázkové hodnoty, kterými je formulář předvyplněný.
func DefaultInput(now time.Time) Input {
	return Input{
		DateHour:         now.UTC().Format(DateHourLayout),
		WindSpeed:        2.5,
		Sunshine:         60,
		AirPressure:      1013,
		Radiation:        450,
		AirTemperature:   22,
		RelativeHumidity: 45,
	}
}

// Time zkusí naparsovat DateHour. Druhá návratová hodnota je false, pokud formát nesedí.
func (in Input) Time() (time.Time, bool) {
	t, err := time.Parse(DateHourLayout, in.DateHour)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Value vrací hodnotu pole podle jeho jména ve formuláři jako string pro atribut value.
func (in Input) Value(name string) string {
	if name == FieldDateHour {
		return in.DateHour
	}
	if p := in.numberField(name); p != nil {
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	return ""
}

// Finite vrátí kopii, ve které jsou ±Inf a NaN nahrazené nulou.
func (in Input) Finite() Input {
	for _, f := range fields {
		if p := in.numberField(f.Name); p != nil {
			*p = finite(*p)
		}
	}
	return in
}

// numberField mapuje jméno pole na ukazatel do struktury.
// Díky tomu FromForm a DecodeJSON sdílí jeden seznam polí.
func (in *Input) numberField(name string) *float64 {
	switch name {
	case FieldWindSpeed:
		return &in.WindSpeed
	case FieldSunshine:
		return &in.Sunshine
	case FieldAirPressure:
		return &in.AirPressure
	case FieldRadiation:
		return &in.Radiation
	case FieldAirTemperature:
		return &in.AirTemperature
	case FieldRelativeHumidity:
		return &in.RelativeHumidity
	}
	return nil
}

// Output je výsledek odhadu včetně mezivýsledků vzorce.
type Output struct {
	TempEfficiency float64 `json:"temp_efficiency"`
	WindCooling    float64 `json:"wind_cooling"`
	BaseOutput     float64 `json:"base_output"`

	// KW: Nezaokrouhlený odhad výkonu v kW.
	KW float64 `json:"kw"`
}
