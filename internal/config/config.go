// Package config loads the scenario, vehicle, and schedule TOML files
// that parameterize a race run, via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kevinxc1/flsim/internal/optimize"
	"github.com/kevinxc1/flsim/internal/physics"
	"github.com/kevinxc1/flsim/internal/schedule"
	"github.com/kevinxc1/flsim/internal/vehicle"
)

// Paths names the input files a scenario references.
type Paths struct {
	Route    string   `mapstructure:"route"`
	Weather  []string `mapstructure:"weather"`
	Schedule string   `mapstructure:"schedule"`
	Car      string   `mapstructure:"car"`
}

// Scenario is the top-level run configuration: which optimizer to use,
// its bounds, and the input file paths.
type Scenario struct {
	Paths     Paths  `mapstructure:"paths"`
	Optimizer string `mapstructure:"optimizer.kind"`
	Bounds    optimize.Config
}

// LoadScenario reads a TOML scenario file (without its extension, the
// same convention cmd/mission's "-scenario" flag uses) and decodes it.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(withTOMLExt(path))
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("config: reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := v.UnmarshalKey("paths", &s.Paths); err != nil {
		return Scenario{}, fmt.Errorf("config: decoding [paths]: %w", err)
	}
	s.Optimizer = v.GetString("optimizer.kind")
	s.Bounds = optimize.Config{
		MinimumSpeed: v.GetFloat64("optimizer.minimum_speed"),
		MaximumSpeed: v.GetFloat64("optimizer.maximum_speed"),
		Precision:    v.GetFloat64("optimizer.precision"),
		SpeedStep:    v.GetFloat64("optimizer.speed_step"),
	}

	if s.Optimizer != "binary" && s.Optimizer != "linear" {
		return Scenario{}, fmt.Errorf("config: optimizer.kind must be %q or %q, got %q", "binary", "linear", s.Optimizer)
	}

	return s, nil
}

func withTOMLExt(path string) string {
	if strings.HasSuffix(path, ".toml") {
		return path
	}
	return path + ".toml"
}

// LoadCar reads a TOML vehicle file into a vehicle.SolarCar, following
// the flat, repeated viper.GetFloat64(key) style cmd/designer uses for
// its per-body physical parameters rather than a single Unmarshal.
func LoadCar(path string) (vehicle.SolarCar, error) {
	v := viper.New()
	v.SetConfigFile(withTOMLExt(path))
	if err := v.ReadInConfig(); err != nil {
		return vehicle.SolarCar{}, fmt.Errorf("config: reading car %s: %w", path, err)
	}

	car := vehicle.SolarCar{
		Aerobody: physics.Aerobody{
			DragCoefficient: v.GetFloat64("aerobody.drag_coefficient"),
			FrontalArea:     v.GetFloat64("aerobody.frontal_area"),
		},
		Array: physics.Array{
			AreaM2:            v.GetFloat64("array.area_m2"),
			EfficiencyPercent: v.GetFloat64("array.efficiency_percent"),
		},
		Battery: physics.Battery{
			EnergyCapacityWh: v.GetFloat64("battery.energy_capacity_wh"),
			PackResistance:   v.GetFloat64("battery.pack_resistance"),
			MinVoltage:       v.GetFloat64("battery.min_voltage"),
			MaxVoltage:       v.GetFloat64("battery.max_voltage"),
		},
		Motor: physics.Motor{
			HysteresisLoss:             v.GetFloat64("motor.hysteresis_loss"),
			EddyCurrentLossCoefficient: v.GetFloat64("motor.eddy_current_loss_coefficient"),
		},
		Tire: physics.Tire{
			Alpha:             v.GetFloat64("tire.alpha"),
			Beta:              v.GetFloat64("tire.beta"),
			A:                 v.GetFloat64("tire.a"),
			B:                 v.GetFloat64("tire.b"),
			C:                 v.GetFloat64("tire.c"),
			TirePressureAtSTC: v.GetFloat64("tire.pressure_at_stc"),
		},
		MassKg:       v.GetFloat64("vehicle.mass_kg"),
		WheelRadiusM: v.GetFloat64("vehicle.wheel_radius_m"),
	}

	return car, nil
}

// LoadSchedule reads a TOML schedule file into a schedule.Schedule. Days
// are read as a TOML array of tables under the "day" key and must be
// given in chronological order; schedule.New validates the ordering
// invariant across and within days.
func LoadSchedule(path string) (*schedule.Schedule, error) {
	v := viper.New()
	v.SetConfigFile(withTOMLExt(path))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading schedule %s: %w", path, err)
	}

	var raw []struct {
		RaceStartTime            float64 `mapstructure:"race_start_time"`
		RaceEndTime              float64 `mapstructure:"race_end_time"`
		MorningChargingStartTime float64 `mapstructure:"morning_charging_start_time"`
		MorningChargingEndTime   float64 `mapstructure:"morning_charging_end_time"`
		EveningChargingStartTime float64 `mapstructure:"evening_charging_start_time"`
		EveningChargingEndTime   float64 `mapstructure:"evening_charging_end_time"`
	}
	if err := v.UnmarshalKey("day", &raw); err != nil {
		return nil, fmt.Errorf("config: decoding [[day]]: %w", err)
	}

	days := make([]schedule.Day, len(raw))
	for i, d := range raw {
		days[i] = schedule.Day{
			RaceStartTime:            d.RaceStartTime,
			RaceEndTime:              d.RaceEndTime,
			MorningChargingStartTime: d.MorningChargingStartTime,
			MorningChargingEndTime:   d.MorningChargingEndTime,
			EveningChargingStartTime: d.EveningChargingStartTime,
			EveningChargingEndTime:   d.EveningChargingEndTime,
		}
	}

	s, err := schedule.New(days)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}
