package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/optidiag/udstrace/internal/discovery"
	"github.com/optidiag/udstrace/internal/session"
	"github.com/optidiag/udstrace/internal/uds"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ecuNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

// WriteSummary renders a human-readable session summary.
func WriteSummary(w io.Writer, result *session.Result) {
	fmt.Fprintln(w, titleStyle.Render("Diagnostic Session Summary"))
	fmt.Fprintf(w, "  Window:   %s - %s", result.Meta.StartTimestamp, result.Meta.EndTimestamp)
	if result.Meta.Duration != "" {
		fmt.Fprintf(w, " (%s)", result.Meta.Duration)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Lines:    %d matched / %d total\n", result.Meta.LinesMatched, result.Meta.LinesTotal)
	fmt.Fprintf(w, "  Messages: %d\n", result.Meta.MessageCount)
	if result.Meta.TesterAddress != "" {
		fmt.Fprintf(w, "  Tester:   %s\n", result.Meta.TesterAddress)
	}
	if result.Meta.Voltage != "" {
		fmt.Fprintf(w, "  Voltage:  %s\n", result.Meta.Voltage)
	}

	writeErrors(w, result.Errors)
	writeECUs(w, result.ECUs())
}

func writeErrors(w io.Writer, errs session.ErrorCounts) {
	if errs.Total() == 0 {
		fmt.Fprintln(w, dimStyle.Render("  No recoverable errors"))
		return
	}
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("  Recoverable errors: %d", errs.Total())))
	rows := []struct {
		label string
		count int
	}{
		{"line grammar mismatches", errs.GrammarMismatch},
		{"address layout mismatches", errs.AddressLayoutMismatch},
		{"reassembly sequence errors", errs.ReassemblySequence},
		{"incomplete reassemblies", errs.IncompleteReassembly},
		{"unknown service ids", errs.UnknownService},
		{"unknown payload shapes", errs.UnknownPayloadShape},
	}
	for _, r := range rows {
		if r.count > 0 {
			fmt.Fprintf(w, "    %-28s %d\n", r.label, r.count)
		}
	}
}

func writeECUs(w io.Writer, ecus map[string]*discovery.ECUKnowledge) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Discovered ECUs (%d)", len(ecus))))

	addrs := make([]string, 0, len(ecus))
	for addr := range ecus {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	for _, addr := range addrs {
		k := ecus[addr]
		fmt.Fprintf(w, "  %s  %s  %s\n",
			headerStyle.Render(addr), ecuNameStyle.Render(k.Name), dimStyle.Render(k.Protocol))
		fmt.Fprintf(w, "    messages: %d sent / %d received, seen %s - %s\n",
			k.MessagesSent, k.MessagesRecv, k.FirstSeen, k.LastSeen)
		if len(k.Services) > 0 {
			fmt.Fprintf(w, "    services: %s\n", serviceList(k.Services))
		}
		if len(k.SessionTypes) > 0 {
			fmt.Fprintf(w, "    sessions: %s\n", hexList(k.SessionTypes))
		}
		if len(k.SecurityLevels) > 0 {
			fmt.Fprintf(w, "    security levels: %s\n", hexList(k.SecurityLevels))
		}
		writeDTCs(w, k)
		writeDIDs(w, k)
		writeRoutines(w, k)
	}
}

func writeDTCs(w io.Writer, k *discovery.ECUKnowledge) {
	if len(k.DTCs) == 0 {
		return
	}
	codes := sortedKeys(k.DTCs)
	fmt.Fprintf(w, "    DTCs (%d):\n", len(codes))
	for _, code := range codes {
		rec := k.DTCs[code]
		fmt.Fprintf(w, "      %s status=0x%02X x%d\n", rec.Code, rec.Status, rec.Occurrences)
	}
}

func writeDIDs(w io.Writer, k *discovery.ECUKnowledge) {
	if len(k.DIDs) == 0 {
		return
	}
	ids := sortedKeys(k.DIDs)
	fmt.Fprintf(w, "    DIDs (%d):\n", len(ids))
	for _, id := range ids {
		rec := k.DIDs[id]
		fmt.Fprintf(w, "      %s %s len=%d reads=%d writes=%d\n",
			rec.DID, rec.DataTypeHint, rec.Length, rec.Reads, rec.Writes)
	}
}

func writeRoutines(w io.Writer, k *discovery.ECUKnowledge) {
	if len(k.Routines) == 0 {
		return
	}
	ids := sortedKeys(k.Routines)
	fmt.Fprintf(w, "    Routines (%d):\n", len(ids))
	for _, id := range ids {
		rec := k.Routines[id]
		fmt.Fprintf(w, "      %s %s input=%t output=%t x%d\n",
			rec.ID, uds.RoutineControlName(rec.ControlType), rec.HasInput, rec.HasOutput, rec.Invocations)
	}
}

func serviceList(set discovery.ByteSet) string {
	out := ""
	for i, sid := range set {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s(0x%02X)", uds.ServiceName(sid), sid)
	}
	return out
}

func hexList(set discovery.ByteSet) string {
	out := ""
	for i, v := range set {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("0x%02X", v)
	}
	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
