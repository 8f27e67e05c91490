package race

import (
	"errors"
	"fmt"

	kitlog "github.com/go-kit/kit/log"

	"github.com/kevinxc1/flsim/internal/physics"
	"github.com/kevinxc1/flsim/internal/route"
	"github.com/kevinxc1/flsim/internal/schedule"
	"github.com/kevinxc1/flsim/internal/telemetry"
	"github.com/kevinxc1/flsim/internal/vehicle"
	"github.com/kevinxc1/flsim/internal/weather"
)

// ErrInfeasible collapses exactly three expected physical infeasibility
// cases (battery power_loss infeasibility, negative battery energy, or
// not enough scheduled days to finish the route) into a single absence
// signal the Optimizer prunes on. Weather errors (weather.ErrBounds and
// the like) are never wrapped in ErrInfeasible: they indicate a
// malformed run, not an infeasible speed, and propagate unpruned so the
// caller treats them as fatal.
var ErrInfeasible = errors.New("race: route cannot be completed at this speed")

const (
	// staticChargingTimeIncrement is the integration step (s) used
	// while the car is stationary and charging.
	staticChargingTimeIncrement = 300.0
	// checkpointDuration is the fixed dwell time (s) at a CONTROL_STOP
	// while the race day is still open.
	checkpointDuration = 1800.0
)

// WeatherSource is the subset of weather.Weather the race package
// consumes, factored out so tests can substitute fixed weather.
type WeatherSource interface {
	GetWeatherAt(station, time float64) (weather.DataPoint, error)
	GetWeatherDuring(station, tStart, tEnd float64) (weather.DataPoint, error)
}

// Runner walks the whole route, advancing a clock and the battery's
// energy state while consulting Weather and SegmentRunner at each
// step.
type Runner struct {
	Car      vehicle.SolarCar
	Route    *route.Route
	Weather  WeatherSource
	Schedule *schedule.Schedule
	Logger   kitlog.Logger
}

// NewRunner builds a Runner with a no-op logger if logger is nil.
func NewRunner(car vehicle.SolarCar, r *route.Route, w WeatherSource, s *schedule.Schedule, logger kitlog.Logger) *Runner {
	if logger == nil {
		logger = telemetry.Nop()
	}
	return &Runner{Car: car, Route: r, Weather: w, Schedule: s, Logger: telemetry.WithSubsystem(logger, "race")}
}

// calculateStaticChargingGain steps from startTime to endTime in
// staticChargingTimeIncrement increments (clipping the last step),
// accumulating the array's energy output (Wh) at station's weather.
func calculateStaticChargingGain(car vehicle.SolarCar, w WeatherSource, station, startTime, endTime float64) (float64, error) {
	total := 0.0
	for t := startTime; t < endTime; t += staticChargingTimeIncrement {
		stepEnd := t + staticChargingTimeIncrement
		if stepEnd > endTime {
			stepEnd = endTime
		}

		data, err := w.GetWeatherDuring(station, t, stepEnd)
		if err != nil {
			return 0, err
		}

		power := car.Array.PowerIn(data.Irradiance)
		total += power * (stepEnd - t) / 3600
	}
	return total, nil
}

// CalculateRacetime runs the deterministic simulator at the given
// candidate target ground speed and returns the total elapsed race
// time in seconds, or ErrInfeasible.
func (r *Runner) CalculateRacetime(speed float64) (float64, error) {
	batteryState := physics.NewState(r.Car.Battery.EnergyCapacityWh)
	segmentRunner := SegmentRunner{Car: r.Car}

	totalRacetime := 0.0
	currentSegmentIndex := 0
	totalSegments := r.Route.Len()
	remainingSegmentDistance := 0.0

	currentDay := 0
	currentTime := r.Schedule.Day(0).RaceStartTime

	for currentSegmentIndex < totalSegments {
		segment := r.Route.Segment(currentSegmentIndex)
		today := r.Schedule.Day(currentDay)

		segmentDistance := segment.Distance
		if remainingSegmentDistance > 0 {
			segmentDistance = remainingSegmentDistance
		}
		remainingSegmentDistance = 0

		if currentTime >= today.RaceEndTime {
			eveningGain, err := calculateStaticChargingGain(r.Car, r.Weather, segment.WeatherStation, today.EveningChargingStartTime, today.EveningChargingEndTime)
			if err != nil {
				return 0, fmt.Errorf("race: evening charging: %w", err)
			}
			batteryState.UpdateEnergyRemaining(eveningGain)

			currentDay++
			if currentDay >= r.Schedule.Len() {
				r.Logger.Log("level", "warning", "message", "not enough scheduled days to finish route", "speed", speed)
				return 0, ErrInfeasible
			}

			tomorrow := r.Schedule.Day(currentDay)
			morningGain, err := calculateStaticChargingGain(r.Car, r.Weather, segment.WeatherStation, tomorrow.MorningChargingStartTime, tomorrow.MorningChargingEndTime)
			if err != nil {
				return 0, fmt.Errorf("race: morning charging: %w", err)
			}
			batteryState.UpdateEnergyRemaining(morningGain)

			currentTime = tomorrow.RaceStartTime
			r.Logger.Log("level", "info", "message", "day rolled over", "day", currentDay, "energy_remaining_wh", batteryState.EnergyRemainingWh)
			continue
		}
		remainingSegmentDistance = 0

		segmentTime := segmentDistance / speed
		segmentEndTime := currentTime + segmentTime

		if segmentEndTime > today.RaceEndTime {
			timeAvailable := today.RaceEndTime - currentTime
			distanceDriven := speed * timeAvailable
			remainingSegmentDistance = segmentDistance - distanceDriven

			segmentTime = timeAvailable
			segmentEndTime = today.RaceEndTime
		}

		weatherData, err := r.Weather.GetWeatherDuring(segment.WeatherStation, currentTime, segmentEndTime)
		if err != nil {
			return 0, fmt.Errorf("race: weather query: %w", err)
		}

		soc := r.Car.Battery.StateOfCharge(batteryState.EnergyRemainingWh)
		netPower, err := segmentRunner.PowerNet(segment, weatherData, soc, speed)
		if err != nil {
			r.Logger.Log("level", "info", "message", "battery power infeasible", "segment", currentSegmentIndex, "speed", speed)
			return 0, ErrInfeasible
		}

		energyChange := netPower * segmentTime / 3600
		batteryState.UpdateEnergyRemaining(energyChange)

		if batteryState.EnergyRemainingWh < 0 {
			r.Logger.Log("level", "info", "message", "battery depleted", "segment", currentSegmentIndex, "speed", speed)
			return 0, ErrInfeasible
		}

		totalRacetime += segmentTime
		currentTime = segmentEndTime

		if remainingSegmentDistance == 0 && segment.EndCondition == route.ControlStop && currentTime < today.RaceEndTime {
			checkpointStart := currentTime
			checkpointEnd := currentTime + checkpointDuration

			checkpointGain, err := calculateStaticChargingGain(r.Car, r.Weather, segment.WeatherStation, checkpointStart, checkpointEnd)
			if err != nil {
				return 0, fmt.Errorf("race: checkpoint charging: %w", err)
			}
			batteryState.UpdateEnergyRemaining(checkpointGain)

			totalRacetime += checkpointDuration
			currentTime = checkpointEnd

			r.Logger.Log("level", "info", "message", "checkpoint dwell", "segment", currentSegmentIndex)
		}

		if remainingSegmentDistance == 0 {
			currentSegmentIndex++
		}
	}

	return totalRacetime, nil
}
