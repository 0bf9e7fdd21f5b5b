package uds

import "fmt"

// Failure-mode indicator meanings for the 2-digit suffix carried by 3-byte
// trouble codes (Ford/JLR style).
var fmiMeanings = map[byte]string{
	0x00: "General failure / no sub-type",
	0x11: "Circuit short to ground",
	0x12: "Circuit short to battery/positive",
	0x13: "Circuit open",
	0x14: "Circuit short to ground or open",
	0x15: "Circuit short to battery or open",
	0x16: "Circuit voltage below threshold",
	0x17: "Circuit voltage above threshold",
	0x18: "Circuit current below threshold",
	0x19: "Circuit current above threshold",
	0x21: "Signal stuck low",
	0x22: "Signal stuck high",
	0x23: "Signal intermittent/erratic",
	0x28: "Signal implausible",
	0x29: "Signal invalid",
	0x62: "Actuator stuck",
	0x63: "Actuator stuck open",
	0x64: "Actuator stuck closed",
	0x71: "Mechanical failure",
	0x72: "Calibration/parameter not learned",
	0x73: "Performance/range issue",
	0x7A: "Module not configured / software incompatible",
	0x7F: "Security/component protection fault",
}

// FMIMeaning returns the meaning of a failure-mode indicator byte, or "" for
// unknown values.
func FMIMeaning(fmi byte) string {
	return fmiMeanings[fmi]
}

// FMILabel renders the indicator as a 2-hex-digit label.
func FMILabel(fmi byte) string {
	return fmt.Sprintf("%02X", fmi)
}
