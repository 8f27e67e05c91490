package weather

import (
	"os"
	"path/filepath"
	"testing"
)

const testWeatherCSV = `weather_station,unix_period,dhi,dni,ghi,wind_velocity_ns,wind_velocity_ew,air_temperature_2m,surface_pressure,air_density
0,0,50,300,100,1.0,0.5,20,101325,1.2
0,100,55,310,110,1.1,0.6,21,101320,1.19
1,0,60,320,120,1.2,0.7,22,101315,1.18
1,100,65,330,130,1.3,0.8,23,101310,1.17
`

func TestParseCSVFileAndCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather.csv")
	if err := os.WriteFile(path, []byte(testWeatherCSV), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	g, err := parseCSVFile(path)
	if err != nil {
		t.Fatalf("parseCSVFile: %v", err)
	}
	if len(g.stations) != 2 {
		t.Fatalf("stations = %v, want 2", g.stations)
	}
	if len(g.times) != 2 {
		t.Fatalf("times = %v, want 2", g.times)
	}
	if got := g.ghi.At(0, 0); got != 100 {
		t.Errorf("ghi[0][station0] = %v, want 100", got)
	}
	if got := g.ghi.At(0, 1); got != 120 {
		t.Errorf("ghi[0][station1] = %v, want 120", got)
	}

	cachePath := path + ".cache"
	if err := writeCache(cachePath, g); err != nil {
		t.Fatalf("writeCache: %v", err)
	}
	cached, err := loadCache(cachePath)
	if err != nil {
		t.Fatalf("loadCache: %v", err)
	}
	if cached.startTime != g.startTime {
		t.Errorf("cached.startTime = %v, want %v", cached.startTime, g.startTime)
	}
	if cached.ghi.At(0, 1) != g.ghi.At(0, 1) {
		t.Errorf("round-tripped ghi mismatch")
	}
}

func TestLoadCSVUsesCacheOnSecondLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather.csv")
	if err := os.WriteFile(path, []byte(testWeatherCSV), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w1, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV (first, parses CSV): %v", err)
	}
	if _, err := os.Stat(path + ".cache"); err != nil {
		t.Fatalf("expected .cache sidecar to be written: %v", err)
	}

	w2, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV (second, reads cache): %v", err)
	}

	d1, err := w1.GetWeatherAt(0, 0)
	if err != nil {
		t.Fatalf("GetWeatherAt on first load: %v", err)
	}
	d2, err := w2.GetWeatherAt(0, 0)
	if err != nil {
		t.Fatalf("GetWeatherAt on cached load: %v", err)
	}
	if d1.Irradiance != d2.Irradiance {
		t.Errorf("cached load disagrees with parsed load: %v vs %v", d1.Irradiance, d2.Irradiance)
	}
}

func TestParseCSVFileMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("weather_station,unix_period\n0,0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := parseCSVFile(path); err == nil {
		t.Fatal("expected error for missing required columns")
	}
}
