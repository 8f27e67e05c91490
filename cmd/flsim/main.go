// Command flsim loads a race scenario, runs the configured optimizer
// against the deterministic simulator, and reports the fastest feasible
// constant target ground speed.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	kitlog "github.com/go-kit/kit/log"

	"github.com/kevinxc1/flsim/internal/config"
	"github.com/kevinxc1/flsim/internal/optimize"
	"github.com/kevinxc1/flsim/internal/race"
	"github.com/kevinxc1/flsim/internal/racetime"
	"github.com/kevinxc1/flsim/internal/route"
	"github.com/kevinxc1/flsim/internal/solar"
	"github.com/kevinxc1/flsim/internal/telemetry"
	"github.com/kevinxc1/flsim/internal/weather"
)

const defaultScenario = "~~unset~~"

var (
	scenarioPath string
	verbose      bool
)

func init() {
	flag.StringVar(&scenarioPath, "scenario", defaultScenario, "race scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "emit debug-level per-candidate optimizer logs")
}

func main() {
	flag.Parse()
	if scenarioPath == defaultScenario {
		log.Fatal("no scenario provided; pass -scenario <file>")
	}
	scenarioPath = strings.Replace(scenarioPath, ".toml", "", 1)

	logger := telemetry.New(os.Stdout)

	scenario, err := config.LoadScenario(scenarioPath)
	if err != nil {
		log.Fatal(err)
	}

	car, err := config.LoadCar(scenario.Paths.Car)
	if err != nil {
		log.Fatal(err)
	}

	r, err := route.LoadCSV(scenario.Paths.Route)
	if err != nil {
		log.Fatal(err)
	}

	w, err := weather.LoadCSV(scenario.Paths.Weather...)
	if err != nil {
		log.Fatal(err)
	}

	sched, err := config.LoadSchedule(scenario.Paths.Schedule)
	if err != nil {
		log.Fatal(err)
	}

	runner := race.NewRunner(car, r, w, sched, logger)

	optLogger := logger
	if !verbose {
		optLogger = kitlog.LoggerFunc(func(keyvals ...interface{}) error {
			for i := 0; i+1 < len(keyvals); i += 2 {
				if keyvals[i] == "level" && keyvals[i+1] == "debug" {
					return nil
				}
			}
			return logger.Log(keyvals...)
		})
	}

	var output optimize.Output
	var ok bool
	switch scenario.Optimizer {
	case "binary":
		output, ok, err = optimize.BinarySearch{Config: scenario.Bounds, Oracle: runner, Logger: optLogger}.OptimizeRace()
	case "linear":
		output, ok, err = optimize.LinearSearch{Config: scenario.Bounds, Oracle: runner, Logger: optLogger}.OptimizeRace()
	}
	if err != nil {
		log.Fatal(err)
	}

	if !ok {
		logger.Log("level", "error", "message", "no feasible speed found in bounds")
		os.Exit(1)
	}

	finishCoordinate := r.Segment(r.Len() - 1).CoordinateEnd
	// The racetime excludes the overnight gaps between race days, so the
	// absolute finish time is taken from the replayed run's last segment.
	finishRows, _, err := runner.RunTrace(output.SpeedMS)
	if err != nil {
		log.Fatal(err)
	}
	finishTime := finishRows[len(finishRows)-1].ArrivalTimeS
	sunAtFinish := solar.At(finishCoordinate, finishTime)

	logger.Log(
		"level", "info",
		"message", "optimization converged",
		"optimizer", scenario.Optimizer,
		"speed_ms", output.SpeedMS,
		"racetime_s", output.RacetimeS,
		"finish_clock", racetime.FormatClock(finishTime),
		"sun_azimuth_rad", sunAtFinish.AzimuthRad,
		"sun_altitude_rad", sunAtFinish.AltitudeRad,
	)

	tracePath := "trace_" + racetime.Format(finishTime) + ".csv"
	if err := writeTrace(tracePath, runner, output.SpeedMS); err != nil {
		logger.Log("level", "error", "message", "failed to write trace", "err", err)
		os.Exit(1)
	}
	logger.Log("level", "info", "message", "wrote trace", "path", tracePath)
}

// writeTrace re-runs the winning speed through the simulator to recover
// its per-segment trace and writes it to path as CSV: one row per
// completed segment, with arrival time, battery state of charge, and
// the weather snapshot driving that segment.
func writeTrace(path string, runner *race.Runner, speed float64) error {
	rows, _, err := runner.RunTrace(speed)
	if err != nil {
		return fmt.Errorf("replaying winning speed for trace: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"segment", "arrival_clock", "battery_soc", "air_density", "irradiance_w_m2"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.SegmentIndex),
			racetime.FormatClock(row.ArrivalTimeS),
			strconv.FormatFloat(row.BatterySOC, 'f', 4, 64),
			strconv.FormatFloat(row.AirDensity, 'f', 4, 64),
			strconv.FormatFloat(row.IrradianceWM2, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
