package race

import (
	"fmt"

	"github.com/kevinxc1/flsim/internal/physics"
	"github.com/kevinxc1/flsim/internal/route"
)

// TraceRow is one reported row of a winning run's per-segment trace: the
// CLI's reporting surface, never consulted by the feasibility predicate
// itself.
type TraceRow struct {
	SegmentIndex  int
	ArrivalTimeS  float64
	BatterySOC    float64
	AirDensity    float64
	IrradianceWM2 float64
}

// RunTrace re-runs CalculateRacetime's state machine at speed, recording
// one TraceRow each time a segment (or its day-split remainder)
// finishes driving. Used only for CLI reporting; identical in its
// feasibility semantics to CalculateRacetime.
func (r *Runner) RunTrace(speed float64) ([]TraceRow, float64, error) {
	batteryState := physics.NewState(r.Car.Battery.EnergyCapacityWh)
	segmentRunner := SegmentRunner{Car: r.Car}

	var rows []TraceRow
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
				return nil, 0, fmt.Errorf("race: evening charging: %w", err)
			}
			batteryState.UpdateEnergyRemaining(eveningGain)

			currentDay++
			if currentDay >= r.Schedule.Len() {
				return nil, 0, ErrInfeasible
			}

			tomorrow := r.Schedule.Day(currentDay)
			morningGain, err := calculateStaticChargingGain(r.Car, r.Weather, segment.WeatherStation, tomorrow.MorningChargingStartTime, tomorrow.MorningChargingEndTime)
			if err != nil {
				return nil, 0, fmt.Errorf("race: morning charging: %w", err)
			}
			batteryState.UpdateEnergyRemaining(morningGain)

			currentTime = tomorrow.RaceStartTime
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
			return nil, 0, fmt.Errorf("race: weather query: %w", err)
		}

		soc := r.Car.Battery.StateOfCharge(batteryState.EnergyRemainingWh)
		netPower, err := segmentRunner.PowerNet(segment, weatherData, soc, speed)
		if err != nil {
			return nil, 0, ErrInfeasible
		}

		energyChange := netPower * segmentTime / 3600
		batteryState.UpdateEnergyRemaining(energyChange)

		if batteryState.EnergyRemainingWh < 0 {
			return nil, 0, ErrInfeasible
		}

		totalRacetime += segmentTime
		currentTime = segmentEndTime

		if remainingSegmentDistance == 0 && segment.EndCondition == route.ControlStop && currentTime < today.RaceEndTime {
			checkpointStart := currentTime
			checkpointEnd := currentTime + checkpointDuration

			checkpointGain, err := calculateStaticChargingGain(r.Car, r.Weather, segment.WeatherStation, checkpointStart, checkpointEnd)
			if err != nil {
				return nil, 0, fmt.Errorf("race: checkpoint charging: %w", err)
			}
			batteryState.UpdateEnergyRemaining(checkpointGain)

			totalRacetime += checkpointDuration
			currentTime = checkpointEnd
		}

		if remainingSegmentDistance == 0 {
			rows = append(rows, TraceRow{
				SegmentIndex:  currentSegmentIndex,
				ArrivalTimeS:  currentTime,
				BatterySOC:    r.Car.Battery.StateOfCharge(batteryState.EnergyRemainingWh),
				AirDensity:    weatherData.AirDensity,
				IrradianceWM2: weatherData.Irradiance,
			})
			currentSegmentIndex++
		}
	}

	return rows, totalRacetime, nil
}
