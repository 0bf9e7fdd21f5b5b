package uds

import "fmt"

// Negative response codes (ISO 14229-1 table A.1, commonly observed subset).
var nrcNames = map[byte]string{
	0x10: "GeneralReject",
	0x11: "ServiceNotSupported",
	0x12: "SubFunctionNotSupported",
	0x13: "IncorrectMessageLengthOrInvalidFormat",
	0x14: "ResponseTooLong",
	0x21: "BusyRepeatRequest",
	0x22: "ConditionsNotCorrect",
	0x24: "RequestSequenceError",
	0x25: "NoResponseFromSubnetComponent",
	0x26: "FailurePreventsExecutionOfRequestedAction",
	0x31: "RequestOutOfRange",
	0x33: "SecurityAccessDenied",
	0x35: "InvalidKey",
	0x36: "ExceedNumberOfAttempts",
	0x37: "RequiredTimeDelayNotExpired",
	0x70: "UploadDownloadNotAccepted",
	0x71: "TransferDataSuspended",
	0x72: "GeneralProgrammingFailure",
	0x73: "WrongBlockSequenceCounter",
	0x78: "RequestCorrectlyReceivedResponsePending",
	0x7E: "SubFunctionNotSupportedInActiveSession",
	0x7F: "ServiceNotSupportedInActiveSession",
	0x81: "RpmTooHigh",
	0x82: "RpmTooLow",
	0x83: "EngineIsRunning",
	0x84: "EngineIsNotRunning",
	0x85: "EngineRunTimeTooLow",
	0x86: "TemperatureTooHigh",
	0x87: "TemperatureTooLow",
	0x88: "VehicleSpeedTooHigh",
	0x89: "VehicleSpeedTooLow",
	0x92: "VoltageTooHigh",
	0x93: "VoltageTooLow",
}

// NRCName returns a display name for a negative response code.
func NRCName(nrc byte) string {
	if name, ok := nrcNames[nrc]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", nrc)
}
