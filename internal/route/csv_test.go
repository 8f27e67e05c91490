package route

import (
	"strings"
	"testing"
)

const testRouteCSV = `start_latitude,start_longitude,end_latitude,end_longitude,segment_end_condition,segment_type,speed_limit,weather_station_index,distance,heading,elevation,grade,road_incline_angle,sine_road_incline_angle,gravity,gravity_times_sine_road_angle
40.0,-105.0,40.01,-105.0,RACE_START,RACE,30,0,3000,0,1600,0,0,0,9.80449,0
40.01,-105.0,40.02,-105.0,CONTROL_STOP,RACE,30,0,3000,0,1600,0,0,0,9.80449,0
`

func TestDecodeCSV(t *testing.T) {
	r, err := decodeCSV(strings.NewReader(testRouteCSV))
	if err != nil {
		t.Fatalf("decodeCSV: %v", err)
	}
	if got := r.Len(); got != 2 {
		t.Fatalf("Len = %v, want 2", got)
	}
	if got := r.Segment(0).EndCondition; got != RaceStart {
		t.Errorf("segment 0 EndCondition = %v, want RaceStart", got)
	}
	if got := r.Segment(1).EndCondition; got != ControlStop {
		t.Errorf("segment 1 EndCondition = %v, want ControlStop", got)
	}
	if got := r.TotalDistance(); got != 6000 {
		t.Errorf("TotalDistance = %v, want 6000", got)
	}
}

func TestDecodeCSVMissingColumn(t *testing.T) {
	_, err := decodeCSV(strings.NewReader("start_latitude\n40.0\n"))
	if err == nil {
		t.Fatal("expected error for missing required columns")
	}
}

func TestDecodeCSVUnrecognizedToken(t *testing.T) {
	bad := strings.Replace(testRouteCSV, "RACE_START", "BOGUS_TOKEN", 1)
	_, err := decodeCSV(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for unrecognized segment_end_condition")
	}
}

func TestParseEndConditionAndSegmentType(t *testing.T) {
	if _, err := ParseEndCondition("NOT_A_TOKEN"); err == nil {
		t.Error("expected error for unrecognized end condition")
	}
	if _, err := ParseSegmentType("NOT_A_TOKEN"); err == nil {
		t.Error("expected error for unrecognized segment type")
	}
	ec, err := ParseEndCondition("END_OF_RACE")
	if err != nil || ec != EndOfRace {
		t.Errorf("ParseEndCondition(END_OF_RACE) = %v, %v", ec, err)
	}
}
