package pitstop

import (
	"encoding/json"
	"fmt"
)

// StateResponse mirrors the payload returned by /api/state. Every field is
// optional; the daemon omits what it does not know yet and the decoder
// ignores fields it does not recognize.
type StateResponse struct {
	VIN       string `json:"vin"`
	Vehicle   string `json:"vehicle"`
	Protocol  string `json:"protocol"`
	AdapterOK bool   `json:"adapter_ok"`
	LastError string `json:"last_error"`

	// DynValues maps a PID name to its latest reading. Values arrive as
	// JSON numbers or strings; a selected-but-unsupported PID is simply
	// absent.
	DynValues map[string]any `json:"dyn_values"`

	SupportedNames []string `json:"supported_names"`
	// SupportedCount is reported by the daemon and displayed as given,
	// even when it disagrees with len(SupportedNames).
	SupportedCount int      `json:"supported_count"`
	SelectedPIDs   []string `json:"selected_pids"`

	MIL              *bool `json:"mil"`
	DTCCountReported *int  `json:"dtc_count_reported"`

	StoredCodes    []TroubleCode `json:"dtcs_stored"`
	PendingCodes   []TroubleCode `json:"dtcs_pending"`
	PermanentCodes []TroubleCode `json:"dtcs_permanent"`

	LastFreezeFrame map[string]any `json:"last_freeze_frame"`
}

// TroubleCode is one diagnostic trouble code entry. The daemon emits either
// a bare code string or an object carrying a description; both shapes are
// normalized here so render code never branches on payload shape.
type TroubleCode struct {
	Code        string
	Description string
}

// UnmarshalJSON accepts "P0301" as well as {"code": "P0301", "desc": "..."}.
// Older daemons use "desc", newer ones "description"; "description" wins
// when both are present.
func (t *TroubleCode) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return fmt.Errorf("decode trouble code: %w", err)
		}
		*t = TroubleCode{Code: code}
		return nil
	}

	var raw struct {
		Code        string `json:"code"`
		Desc        string `json:"desc"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode trouble code: %w", err)
	}
	desc := raw.Description
	if desc == "" {
		desc = raw.Desc
	}
	*t = TroubleCode{Code: raw.Code, Description: desc}
	return nil
}

// MarshalJSON writes the object form so round-tripped payloads stay uniform.
func (t TroubleCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code string `json:"code"`
		Desc string `json:"desc,omitempty"`
	}{Code: t.Code, Desc: t.Description})
}

// SaveResponse mirrors the payload returned by the selection save endpoint.
type SaveResponse struct {
	OK           bool     `json:"ok"`
	SelectedPIDs []string `json:"selected_pids"`
	Error        string   `json:"error"`
}
