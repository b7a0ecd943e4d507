package pitstop

import (
	"encoding/json"
	"testing"
)

func TestTroubleCode_DecodesBothShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TroubleCode
	}{
		{"bare string", `"P0301"`, TroubleCode{Code: "P0301"}},
		{"object with desc", `{"code":"P0171","desc":"System Too Lean (Bank 1)"}`,
			TroubleCode{Code: "P0171", Description: "System Too Lean (Bank 1)"}},
		{"object with description", `{"code":"P0420","description":"Catalyst Below Threshold"}`,
			TroubleCode{Code: "P0420", Description: "Catalyst Below Threshold"}},
		{"description wins over desc", `{"code":"P0300","desc":"old","description":"new"}`,
			TroubleCode{Code: "P0300", Description: "new"}},
		{"object without description", `{"code":"P1234"}`, TroubleCode{Code: "P1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TroubleCode
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("decoded %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTroubleCode_DecodeInvalid(t *testing.T) {
	var got TroubleCode
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("unmarshal of number succeeded, want error")
	}
}

func TestStateResponse_DecodeToleratesMissingAndUnknownFields(t *testing.T) {
	payload := `{
		"adapter_ok": true,
		"supported_names": ["RPM", "SPEED"],
		"supported_count": 97,
		"selected_pids": ["RPM"],
		"dyn_values": {"RPM": 812.5},
		"dtcs_stored": ["P0301", {"code":"P0171","desc":"lean"}],
		"some_future_field": {"ignored": true}
	}`

	var state StateResponse
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}

	if !state.AdapterOK {
		t.Fatal("AdapterOK = false, want true")
	}
	if state.VIN != "" {
		t.Fatalf("VIN = %q, want empty", state.VIN)
	}
	if state.MIL != nil || state.DTCCountReported != nil {
		t.Fatalf("MIL/DTCCountReported = %v/%v, want nil/nil", state.MIL, state.DTCCountReported)
	}
	// supported_count is taken as given, not derived from the name list.
	if state.SupportedCount != 97 {
		t.Fatalf("SupportedCount = %d, want 97", state.SupportedCount)
	}
	if len(state.StoredCodes) != 2 {
		t.Fatalf("StoredCodes = %#v, want 2 entries", state.StoredCodes)
	}
	if state.StoredCodes[0].Code != "P0301" || state.StoredCodes[0].Description != "" {
		t.Fatalf("StoredCodes[0] = %#v, want bare P0301", state.StoredCodes[0])
	}
	if state.StoredCodes[1].Code != "P0171" || state.StoredCodes[1].Description != "lean" {
		t.Fatalf("StoredCodes[1] = %#v, want P0171/lean", state.StoredCodes[1])
	}
	if v, ok := state.DynValues["RPM"].(float64); !ok || v != 812.5 {
		t.Fatalf("DynValues[RPM] = %#v, want 812.5", state.DynValues["RPM"])
	}
}
