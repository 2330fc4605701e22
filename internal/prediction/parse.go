package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberPrefix odpovídá nejdelšímu desetinnému číslu na začátku řetězce.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber převede text z formuláře na číslo.
// Bere se číselný prefix ("12abc" -> 12), cokoliv nečíselného je 0.
// Nikdy nevrací chybu: neplatný vstup se tiše mění na nulu,
// stejně jako číslo mimo rozsah float64 ("1e400").
func ParseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := numberPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

// finite vrátí 0 pro ±Inf a NaN. JSON ani Valkey je neumí uložit.
func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// FromForm přenese hodnoty z formuláře do kopie base.
// Pole, které ve formuláři chybí, si ponechá hodnotu z base.
func FromForm(values url.Values, base Input) Input {
	out := base
	if _, ok := values[FieldDateHour]; ok {
		out.DateHour = values.Get(FieldDateHour)
	}
	for _, f := range fields {
		p := out.numberField(f.Name)
		if p == nil {
			continue
		}
		if _, ok := values[f.Name]; ok {
			*p = ParseNumber(values.Get(f.Name))
		}
	}
	return out
}

// DecodeJSON načte vstup z JSON objektu se stejnými jmény polí jako formulář.
// Čísla se berou přímo, řetězce projdou ParseNumber, ostatní typy jsou 0.
// Chybu vrací jen pro syntakticky neplatný JSON.
func DecodeJSON(r io.Reader, base Input) (Input, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return base, fmt.Errorf("neplatný JSON vstup: %w", err)
	}

	out := base
	if v, ok := raw[FieldDateHour]; ok {
		out.DateHour = jsonText(v)
	}
	for _, f := range fields {
		p := out.numberField(f.Name)
		if p == nil {
			continue
		}
		if v, ok := raw[f.Name]; ok {
			*p = jsonNumber(v)
		}
	}
	return out, nil
}

func jsonNumber(v json.RawMessage) float64 {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return 0
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0
		}
		return ParseNumber(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		// stejné pravidlo jako pro formulář
		return ParseNumber(string(v))
	}
	// true/false/null/pole/objekt
	return 0
}

func jsonText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	v = bytes.TrimSpace(v)
	if bytes.Equal(v, []byte("null")) {
		return ""
	}
	return string(v)
}
