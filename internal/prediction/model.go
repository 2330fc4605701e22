package prediction

import (
	"math"
	"strconv"
)

// Konstanty vzorce. Optimální teplota panelu je 25 °C,
// každý stupeň odchylky ubere 0,4 % účinnosti.
const (
	optimalTemperature   = 25.0
	tempLossPerDegree    = 0.004
	windCoolingPerMS     = 0.01
	panelFactor          = 0.2
	overcastFactor       = 0.1
	outputUnit           = "kW"
	displayDecimalPlaces = 2
)

// Estimate spočítá odhad výkonu. Funkce je čistá a deterministická.
func Estimate(in Input) Output {
	tempEfficiency := 1 - math.Abs(optimalTemperature-in.AirTemperature)*tempLossPerDegree
	windCooling := 1 + in.WindSpeed*windCoolingPerMS

	// Sluneční svit funguje jen jako přepínač: nula minut = zataženo.
	sunFactor := overcastFactor
	if in.Sunshine > 0 {
		sunFactor = 1
	}
	baseOutput := in.Radiation * panelFactor * sunFactor

	// Konečné vstupy mohou přetéct do ±Inf (1e308 * 1e300), výsledek pak je 0.
	return Output{
		TempEfficiency: finite(tempEfficiency),
		WindCooling:    finite(windCooling),
		BaseOutput:     finite(baseOutput),
		KW:             finite(baseOutput * tempEfficiency * windCooling),
	}
}

// Rounded vrací výkon zaokrouhlený na dvě desetinná místa.
func (o Output) Rounded() float64 {
	v, _ := strconv.ParseFloat(o.formatted(), 64)
	return v
}

// String vrací text pro zobrazení, např. "91.14 kW".
func (o Output) String() string {
	return o.formatted() + " " + outputUnit
}

func (o Output) formatted() string {
	return strconv.FormatFloat(o.KW, 'f', displayDecimalPlaces, 64)
}
