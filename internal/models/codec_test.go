package models

import (
	"encoding/json"
	"testing"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"native number", `75`, 75, false},
		{"zero", `0`, 0, false},
		{"string number", `"75"`, 75, false},
		{"string with spaces", `" 42 "`, 42, false},
		{"negative string", `"-3"`, -3, false},
		{"float", `7.5`, 0, true},
		{"non-numeric string", `"seventy"`, 0, true},
		{"boolean", `true`, 0, true},
		{"null", `null`, 0, true},
		{"object", `{}`, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tc.input), &f)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error for input %s, got value %d", tc.input, int(f))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for input %s: %v", tc.input, err)
			}
			if int(f) != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, int(f))
			}
		})
	}
}

func TestFlexBool_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{"native true", `true`, true, false},
		{"native false", `false`, false, false},
		{"string true", `"true"`, true, false},
		{"string false", `"false"`, false, false},
		{"capitalized string", `"True"`, false, true},
		{"numeric one", `1`, false, true},
		{"empty string", `""`, false, true},
		{"null", `null`, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexBool
			err := json.Unmarshal([]byte(tc.input), &f)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error for input %s, got value %v", tc.input, bool(f))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for input %s: %v", tc.input, err)
			}
			if bool(f) != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, bool(f))
			}
		})
	}
}

func TestFlexInt_InsideRequest(t *testing.T) {
	var req UpdateSessionRequest
	if err := json.Unmarshal([]byte(`{"progress":"80"}`), &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Progress == nil || int(*req.Progress) != 80 {
		t.Errorf("Expected progress 80, got %v", req.Progress)
	}

	if err := json.Unmarshal([]byte(`{"progress":"80%"}`), &req); err == nil {
		t.Error("Expected error for non-numeric progress string")
	}
}
