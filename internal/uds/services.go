// Package uds classifies reassembled diagnostic payloads against the
// UDS (ISO 14229) and OBD-II service model and extracts DTC, DID and
// routine facts.
package uds

import "fmt"

// UDS service identifiers (request plane).
const (
	ServiceDiagnosticSessionControl   byte = 0x10
	ServiceECUReset                   byte = 0x11
	ServiceClearDiagnosticInformation byte = 0x14
	ServiceReadDTCInformation         byte = 0x19
	ServiceReadDataByIdentifier       byte = 0x22
	ServiceReadMemoryByAddress        byte = 0x23
	ServiceReadScalingDataByID        byte = 0x24
	ServiceSecurityAccess             byte = 0x27
	ServiceCommunicationControl       byte = 0x28
	ServiceReadDataByPeriodicID       byte = 0x2A
	ServiceDynamicallyDefineDataID    byte = 0x2C
	ServiceWriteDataByIdentifier      byte = 0x2E
	ServiceInputOutputControlByID     byte = 0x2F
	ServiceRoutineControl             byte = 0x31
	ServiceRequestDownload            byte = 0x34
	ServiceRequestUpload              byte = 0x35
	ServiceTransferData               byte = 0x36
	ServiceRequestTransferExit        byte = 0x37
	ServiceRequestFileTransfer        byte = 0x38
	ServiceWriteMemoryByAddress       byte = 0x3D
	ServiceTesterPresent              byte = 0x3E
	ServiceAccessTimingParameter      byte = 0x83
	ServiceSecuredDataTransmission    byte = 0x84
	ServiceControlDTCSetting          byte = 0x85
	ServiceResponseOnEvent            byte = 0x86
	ServiceLinkControl                byte = 0x87
)

// NegativeResponseID introduces a negative response; the following bytes are
// the original requested service and the negative response code.
const NegativeResponseID byte = 0x7F

// PositiveResponseOffset separates a request service id from its positive
// response id.
const PositiveResponseOffset byte = 0x40

var serviceNames = map[byte]string{
	0x01: "OBD_CurrentData",
	0x02: "OBD_FreezeFrameData",
	0x03: "OBD_StoredDTCs",
	0x04: "OBD_ClearDTCs",
	0x05: "OBD_O2SensorResults",
	0x06: "OBD_OnBoardMonitoring",
	0x07: "OBD_PendingDTCs",
	0x08: "OBD_ControlOperation",
	0x09: "OBD_VehicleInformation",
	0x0A: "OBD_PermanentDTCs",
	0x10: "DiagnosticSessionControl",
	0x11: "ECUReset",
	0x14: "ClearDiagnosticInformation",
	0x19: "ReadDTCInformation",
	0x22: "ReadDataByIdentifier",
	0x23: "ReadMemoryByAddress",
	0x24: "ReadScalingDataByIdentifier",
	0x27: "SecurityAccess",
	0x28: "CommunicationControl",
	0x2A: "ReadDataByPeriodicIdentifier",
	0x2C: "DynamicallyDefineDataIdentifier",
	0x2E: "WriteDataByIdentifier",
	0x2F: "InputOutputControlByIdentifier",
	0x31: "RoutineControl",
	0x34: "RequestDownload",
	0x35: "RequestUpload",
	0x36: "TransferData",
	0x37: "RequestTransferExit",
	0x38: "RequestFileTransfer",
	0x3D: "WriteMemoryByAddress",
	0x3E: "TesterPresent",
	0x83: "AccessTimingParameter",
	0x84: "SecuredDataTransmission",
	0x85: "ControlDTCSetting",
	0x86: "ResponseOnEvent",
	0x87: "LinkControl",
}

// ServiceName returns a display name for a request-plane service id.
func ServiceName(sid byte) string {
	if name, ok := serviceNames[sid]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", sid)
}

// IsRequestService reports whether sid belongs to the request plane: the UDS
// 0x10-0x3E block, the 0x83-0x87 extended block, or the generic OBD-II modes
// 0x01-0x0A.
func IsRequestService(sid byte) bool {
	switch {
	case sid >= 0x10 && sid <= 0x3E:
		return true
	case sid >= 0x83 && sid <= 0x87:
		return true
	case sid >= 0x01 && sid <= 0x0A:
		return true
	default:
		return false
	}
}
