package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gauge/internal/pitstop"
	"github.com/five82/gauge/internal/state"
)

const cardWidth = 24

// renderReadingCards produces one card per tracked PID showing its latest
// reading. A PID with no reading this cycle gets a placeholder, never an
// error; the daemon simply does not report unsupported PIDs.
func renderReadingCards(vehicle pitstop.StateResponse, selected []string, st Styles, width int) string {
	if len(selected) == 0 {
		return st.MutedText.Render("No PIDs tracked. Press e to choose some.")
	}

	pids := make([]string, len(selected))
	copy(pids, selected)
	sort.Strings(pids)

	cards := make([]string, 0, len(pids))
	for _, pid := range pids {
		value := placeholder
		if v, ok := vehicle.DynValues[pid]; ok {
			value = formatValue(v)
		}
		body := st.CardTitle.Render(Titleize(pid)) + "\n" + st.CardValue.Render(value)
		cards = append(cards, st.Card.Render(body))
	}

	perRow := width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderVehicleCard shows the VIN alongside vehicle profile and protocol.
func renderVehicleCard(vehicle pitstop.StateResponse, st Styles) string {
	vin := strings.TrimSpace(vehicle.VIN)
	if vin == "" {
		vin = placeholder
	}
	lines := []string{
		st.CardTitle.Render("VIN") + " " + st.CardValue.Render(vin),
	}
	if profile := strings.TrimSpace(vehicle.Vehicle); profile != "" {
		lines = append(lines, st.CardTitle.Render("Vehicle")+" "+st.Text.Render(profile))
	}
	if proto := strings.TrimSpace(vehicle.Protocol); proto != "" {
		lines = append(lines, st.CardTitle.Render("Protocol")+" "+st.Text.Render(proto))
	}
	return strings.Join(lines, "\n")
}

// renderAdapterStatus reflects adapter connectivity and poll health.
func renderAdapterStatus(snap state.Snapshot, st Styles) string {
	if snap.IsOffline() {
		return st.DangerText.Render("● daemon unreachable")
	}
	if !snap.HasState {
		return st.MutedText.Render("● waiting for state…")
	}
	if snap.State.AdapterOK {
		return st.SuccessText.Render("● adapter connected")
	}
	msg := strings.TrimSpace(snap.State.LastError)
	if msg == "" {
		return st.WarningText.Render("● adapter disconnected")
	}
	return st.DangerText.Render("● adapter: " + msg)
}

// renderMILSummary renders the malfunction lamp and reported DTC count,
// tolerating missing values.
func renderMILSummary(vehicle pitstop.StateResponse, st Styles) string {
	mil := milLabel(vehicle.MIL)
	milStyled := st.MutedText.Render(mil)
	if vehicle.MIL != nil {
		if *vehicle.MIL {
			milStyled = st.DangerText.Render(mil)
		} else {
			milStyled = st.SuccessText.Render(mil)
		}
	}
	return st.CardTitle.Render("MIL") + " " + milStyled +
		st.MutedText.Render("  ·  ") +
		st.CardTitle.Render("DTCs reported") + " " + st.Text.Render(countLabel(vehicle.DTCCountReported))
}

// renderCodesPanel renders one trouble-code list with its heading.
// An empty list renders "None" rather than disappearing, so the operator
// can tell the difference between "no faults" and "panel missing".
func renderCodesPanel(title string, codes []pitstop.TroubleCode, st Styles) string {
	var b strings.Builder
	b.WriteString(st.PanelTitle.Render(title))
	b.WriteString("\n")
	if len(codes) == 0 {
		b.WriteString(st.MutedText.Render("  None"))
		return b.String()
	}
	for i, code := range codes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  " + st.WarningText.Render(code.Code))
		if desc := strings.TrimSpace(code.Description); desc != "" {
			b.WriteString("  " + st.Text.Render(desc))
		}
	}
	return b.String()
}

// renderFreezeFrame renders the captured fault-time values, or nothing at
// all when no freeze frame exists.
func renderFreezeFrame(frame map[string]any, st Styles) string {
	if len(frame) == 0 {
		return ""
	}

	keys := make([]string, 0, len(frame))
	for k := range frame {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(st.PanelTitle.Render("Freeze Frame"))
	for _, k := range keys {
		b.WriteString("\n  ")
		b.WriteString(st.CardTitle.Render(Titleize(k)))
		b.WriteString(" ")
		b.WriteString(st.Text.Render(formatValue(frame[k])))
	}
	return b.String()
}
