package route

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// recognized route CSV columns, order-insensitive; extras are ignored.
var routeColumns = []string{
	"start_latitude", "start_longitude", "end_latitude", "end_longitude",
	"segment_end_condition", "segment_type", "speed_limit",
	"weather_station_index", "distance", "heading", "elevation", "grade",
	"road_incline_angle", "sine_road_incline_angle", "gravity",
	"gravity_times_sine_road_angle",
}

// LoadCSV reads a UTF-8 route CSV with a header row and returns the
// decoded Route. Column order is insensitive; unrecognized extra
// columns are ignored. A malformed row or an unrecognized
// segment_end_condition/segment_type token is a fatal InputMalformed
// error.
func LoadCSV(path string) (*Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("route: opening %s: %w", path, err)
	}
	defer f.Close()
	return decodeCSV(f)
}

func decodeCSV(r io.Reader) (*Route, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("route: reading header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	for _, required := range routeColumns {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("route: missing required column %q", required)
		}
	}

	var segments []Segment
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("route: reading row: %w", err)
		}

		seg, err := decodeRow(record, colIndex)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	return New(segments), nil
}

func decodeRow(record []string, colIndex map[string]int) (Segment, error) {
	field := func(name string) (string, error) {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return "", fmt.Errorf("route: row missing column %q", name)
		}
		return record[idx], nil
	}
	num := func(name string) (float64, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("route: column %q: %w", name, err)
		}
		return v, nil
	}

	startLat, err := num("start_latitude")
	if err != nil {
		return Segment{}, err
	}
	startLon, err := num("start_longitude")
	if err != nil {
		return Segment{}, err
	}
	endLat, err := num("end_latitude")
	if err != nil {
		return Segment{}, err
	}
	endLon, err := num("end_longitude")
	if err != nil {
		return Segment{}, err
	}

	endConditionStr, err := field("segment_end_condition")
	if err != nil {
		return Segment{}, err
	}
	endCondition, err := ParseEndCondition(endConditionStr)
	if err != nil {
		return Segment{}, err
	}

	typeStr, err := field("segment_type")
	if err != nil {
		return Segment{}, err
	}
	segType, err := ParseSegmentType(typeStr)
	if err != nil {
		return Segment{}, err
	}

	speedLimit, err := num("speed_limit")
	if err != nil {
		return Segment{}, err
	}
	weatherStation, err := num("weather_station_index")
	if err != nil {
		return Segment{}, err
	}
	distance, err := num("distance")
	if err != nil {
		return Segment{}, err
	}
	heading, err := num("heading")
	if err != nil {
		return Segment{}, err
	}
	elevation, err := num("elevation")
	if err != nil {
		return Segment{}, err
	}
	grade, err := num("grade")
	if err != nil {
		return Segment{}, err
	}
	roadIncline, err := num("road_incline_angle")
	if err != nil {
		return Segment{}, err
	}
	sineRoadIncline, err := num("sine_road_incline_angle")
	if err != nil {
		return Segment{}, err
	}
	gravity, err := num("gravity")
	if err != nil {
		return Segment{}, err
	}
	gravitySine, err := num("gravity_times_sine_road_angle")
	if err != nil {
		return Segment{}, err
	}

	return Segment{
		CoordinateStart:                 GeographicalCoordinate{LatitudeDeg: startLat, LongitudeDeg: startLon},
		CoordinateEnd:                   GeographicalCoordinate{LatitudeDeg: endLat, LongitudeDeg: endLon},
		EndCondition:                    endCondition,
		Type:                            segType,
		SpeedLimit:                      speedLimit,
		WeatherStation:                  weatherStation,
		Distance:                        distance,
		Heading:                         heading,
		Elevation:                       elevation,
		Grade:                           grade,
		RoadInclineAngle:                roadIncline,
		SineRoadInclineAngle:            sineRoadIncline,
		Gravity:                         gravity,
		GravityTimesSineRoadInclineAngle: gravitySine,
	}, nil
}
