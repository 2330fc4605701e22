package prediction

// Jména polí ve formuláři i v JSON API.
const (
	FieldDateHour         = "dateHour"
	FieldWindSpeed        = "windSpeed"
	FieldSunshine         = "sunshine"
	FieldAirPressure      = "airPressure"
	FieldRadiation        = "radiation"
	FieldAirTemperature   = "airTemperature"
	FieldRelativeHumidity = "relativeHumidity"
)

// Field popisuje jedno vstupní pole formuláře pro šablonu.
type Field struct {
	Name  string // atribut name
	Label string // popisek včetně jednotky
	Type  string // "number" nebo "datetime-local"
	Step  string // prázdné = výchozí krok prohlížeče
	Icon  string
}

var fields = []Field{
	{Name: FieldDateHour, Label: "Date-Hour (NMT)", Type: "datetime-local", Icon: "calendar"},
	{Name: FieldWindSpeed, Label: "Wind Speed (m/s)", Type: "number", Step: "0.1", Icon: "wind"},
	{Name: FieldSunshine, Label: "Sunshine (min/hr)", Type: "number", Icon: "sun"},
	{Name: FieldAirPressure, Label: "Air Pressure (hPa)", Type: "number", Icon: "gauge"},
	{Name: FieldRadiation, Label: "Radiation (W/m²)", Type: "number", Icon: "waves"},
	{Name: FieldAirTemperature, Label: "Air Temperature (°C)", Type: "number", Step: "0.1", Icon: "thermometer"},
	{Name: FieldRelativeHumidity, Label: "Relative Air Humidity (%)", Type: "number", Icon: "droplets"},
}

// Fields vrací pole v pořadí, v jakém se zobrazují na stránce.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
