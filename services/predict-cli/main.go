package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solar-predictor/internal/client"
	"solar-predictor/internal/prediction"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		logger.Error("Predikce selhala", "error", err)
		os.Exit(1)
	}
}

// run odešle vstup na API, počká na výsledek a vypíše ho.
func run(ctx context.Context, args []string, out io.Writer) error {
	def := prediction.DefaultInput(time.Now())

	fs := flag.NewFlagSet("predict-cli", flag.ContinueOnError)
	fs.SetOutput(out)

	baseURL := fs.String("url", "http://localhost:8080", "Adresa služby solar-web")
	timeout := fs.Duration("timeout", 10*time.Second, "Maximální doba čekání na výsledek")
	poll := fs.Duration("poll", 250*time.Millisecond, "Interval dotazování na stav")
	estimate := fs.Bool("estimate", false, "Spočítat okamžitě bez session (POST /api/estimate)")

	in := def
	fs.StringVar(&in.DateHour, prediction.FieldDateHour, def.DateHour, "Date-Hour (YYYY-MM-DDTHH:MM)")
	fs.Float64Var(&in.WindSpeed, prediction.FieldWindSpeed, def.WindSpeed, "Wind Speed (m/s)")
	fs.Float64Var(&in.Sunshine, prediction.FieldSunshine, def.Sunshine, "Sunshine (min/hr)")
	fs.Float64Var(&in.AirPressure, prediction.FieldAirPressure, def.AirPressure, "Air Pressure (hPa)")
	fs.Float64Var(&in.Radiation, prediction.FieldRadiation, def.Radiation, "Radiation (W/m²)")
	fs.Float64Var(&in.AirTemperature, prediction.FieldAirTemperature, def.AirTemperature, "Air Temperature (°C)")
	fs.Float64Var(&in.RelativeHumidity, prediction.FieldRelativeHumidity, def.RelativeHumidity, "Relative Air Humidity (%)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	// flag přijme i "Inf", to by nešlo poslat jako JSON
	in = in.Finite()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	api := client.NewAPIClient(*baseURL)

	if *estimate {
		res, err := api.Estimate(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Estimated Output: %s\n", res.String())
		return nil
	}

	if _, err := api.Submit(ctx, in); err != nil {
		return err
	}
	fmt.Fprintln(out, "Processing...")

	snap, err := api.WaitForResult(ctx, *poll)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Estimated Output: %s\n", snap.Result)
	return nil
}
