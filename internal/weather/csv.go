package weather

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

var weatherColumns = []string{
	"weather_station", "unix_period", "dhi", "dni", "ghi",
	"wind_velocity_ns", "wind_velocity_ew", "air_temperature_2m",
	"surface_pressure", "air_density",
}

// cachePayload is the gob-serializable form of a grid, written to a
// ".cache" sidecar next to the source CSV to accelerate subsequent
// loads (§6.2).
type cachePayload struct {
	StartTime                                          float64
	Times, Stations                                    []float64
	GHI, WindNS, WindEW, AirTemp, Pressure, AirDensity []float64 // row-major, rows=len(Times)
}

// LoadCSV loads one or more weather CSV files into a Weather
// collection. Each file becomes one grid, sorted by its earliest
// timestamp. A ".cache" sidecar is read if present and newer than
// nothing is assumed stale-checked (mirrors the reference's
// unconditional cache trust); otherwise the CSV is parsed and the
// sidecar is written.
func LoadCSV(paths ...string) (*Weather, error) {
	grids := make([]*grid, 0, len(paths))
	for _, path := range paths {
		g, err := loadOneFile(path)
		if err != nil {
			return nil, err
		}
		grids = append(grids, g)
	}
	sort.Slice(grids, func(i, j int) bool { return grids[i].startTime < grids[j].startTime })
	return &Weather{grids: grids}, nil
}

func loadOneFile(path string) (*grid, error) {
	cachePath := path + ".cache"
	if cached, err := loadCache(cachePath); err == nil {
		return cached, nil
	}

	g, err := parseCSVFile(path)
	if err != nil {
		return nil, err
	}

	if err := writeCache(cachePath, g); err != nil {
		return nil, fmt.Errorf("weather: writing cache %s: %w", cachePath, err)
	}

	return g, nil
}

func parseCSVFile(path string) (*grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("weather: opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("weather: reading header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	for _, required := range weatherColumns {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("weather: missing required column %q", required)
		}
	}

	var stationCol, timeCol, dhiCol, dniCol, ghiCol, windNSCol, windEWCol, airTempCol, pressureCol, airDensityCol []float64

	num := func(record []string, name string) (float64, error) {
		s := record[colIndex[name]]
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("weather: column %q: %w", name, err)
		}
		return v, nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("weather: reading row: %w", err)
		}

		station, err := num(record, "weather_station")
		if err != nil {
			return nil, err
		}
		t, err := num(record, "unix_period")
		if err != nil {
			return nil, err
		}
		dhi, err := num(record, "dhi")
		if err != nil {
			return nil, err
		}
		dni, err := num(record, "dni")
		if err != nil {
			return nil, err
		}
		ghi, err := num(record, "ghi")
		if err != nil {
			return nil, err
		}
		windNS, err := num(record, "wind_velocity_ns")
		if err != nil {
			return nil, err
		}
		windEW, err := num(record, "wind_velocity_ew")
		if err != nil {
			return nil, err
		}
		airTemp, err := num(record, "air_temperature_2m")
		if err != nil {
			return nil, err
		}
		pressure, err := num(record, "surface_pressure")
		if err != nil {
			return nil, err
		}
		airDensity, err := num(record, "air_density")
		if err != nil {
			return nil, err
		}

		stationCol = append(stationCol, station)
		timeCol = append(timeCol, t)
		dhiCol = append(dhiCol, dhi)
		dniCol = append(dniCol, dni)
		ghiCol = append(ghiCol, ghi)
		windNSCol = append(windNSCol, windNS)
		windEWCol = append(windEWCol, windEW)
		airTempCol = append(airTempCol, airTemp)
		pressureCol = append(pressureCol, pressure)
		airDensityCol = append(airDensityCol, airDensity)
	}

	stations := distinctSorted(stationCol)
	if err := validateRegularGrid(len(stations), len(stationCol)); err != nil {
		return nil, err
	}
	rowsPerStation := len(stationCol) / len(stations)
	times := append([]float64(nil), timeCol[:rowsPerStation]...)

	g := &grid{
		startTime:  times[0],
		times:      times,
		stations:   stations,
		ghi:        mat.NewDense(rowsPerStation, len(stations), nil),
		windNS:     mat.NewDense(rowsPerStation, len(stations), nil),
		windEW:     mat.NewDense(rowsPerStation, len(stations), nil),
		airTemp:    mat.NewDense(rowsPerStation, len(stations), nil),
		pressure:   mat.NewDense(rowsPerStation, len(stations), nil),
		airDensity: mat.NewDense(rowsPerStation, len(stations), nil),
	}

	// Rows are grouped by station (§6.2): the k-th station occupies
	// [k*rowsPerStation, (k+1)*rowsPerStation) in file order.
	for col := range stations {
		for row := 0; row < rowsPerStation; row++ {
			idx := col*rowsPerStation + row
			g.ghi.Set(row, col, ghiCol[idx])
			g.windNS.Set(row, col, windNSCol[idx])
			g.windEW.Set(row, col, windEWCol[idx])
			g.airTemp.Set(row, col, airTempCol[idx])
			g.pressure.Set(row, col, pressureCol[idx])
			g.airDensity.Set(row, col, airDensityCol[idx])
		}
	}

	return g, nil
}

func distinctSorted(values []float64) []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func loadCache(path string) (*grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var payload cachePayload
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return nil, err
	}
	rows, cols := len(payload.Times), len(payload.Stations)
	return &grid{
		startTime:  payload.StartTime,
		times:      payload.Times,
		stations:   payload.Stations,
		ghi:        mat.NewDense(rows, cols, payload.GHI),
		windNS:     mat.NewDense(rows, cols, payload.WindNS),
		windEW:     mat.NewDense(rows, cols, payload.WindEW),
		airTemp:    mat.NewDense(rows, cols, payload.AirTemp),
		pressure:   mat.NewDense(rows, cols, payload.Pressure),
		airDensity: mat.NewDense(rows, cols, payload.AirDensity),
	}, nil
}

func writeCache(path string, g *grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	payload := cachePayload{
		StartTime: g.startTime,
		Times:     g.times,
		Stations:  g.stations,
		GHI:       denseData(g.ghi),
		WindNS:    denseData(g.windNS),
		WindEW:    denseData(g.windEW),
		AirTemp:   denseData(g.airTemp),
		Pressure:  denseData(g.pressure),
		AirDensity: denseData(g.airDensity),
	}
	return gob.NewEncoder(f).Encode(payload)
}

func denseData(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		out = append(out, m.RawRowView(r)...)
	}
	return out
}
