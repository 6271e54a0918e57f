package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToOpenInput        = "failed to open input file"
	ErrFailedToCreateOutputFile = "failed to create output file"
	ErrFailedToCloseOutputFile  = "failed to close output file"
	ErrFailedToStatInput        = "failed to get input file info"
	ErrFailedToDecodeECM        = "failed to decode ECM stream"
	ErrFailedToWriteReport      = "failed to write inspection report"
	ErrFailedToLoadConfig       = "failed to load configuration file"
	ErrFailedToOpenLogFile      = "failed to prepare log file directory"
	ErrFailedToVerifyImage      = "failed to verify sector image"
	ErrInvalidInputName         = "input file name must end in .ecm"
	ErrOutputExists             = "output file already exists (use --force to overwrite)"
)

// Info messages
const (
	InfoDecoding        = "Decoding %s to %s"
	InfoDecoded         = "Decoded %s -> %s"
	InfoFileOK          = "Done; file is OK"
	InfoReportWritten   = "Inspection report written to %s"
	InfoImageSummary    = "Image: %d sectors (mode1 %d, mode2form1 %d, mode2form2 %d, other %d)"
	InfoImageOK         = "All sectors passed EDC/ECC verification"
	InfoConfigLoaded    = "Loaded configuration from %s"
	InfoProgressPercent = "Decoding (%02d%%)\r"
)

// Debug messages
const (
	DebugInputCompression = "Input %s: %s compression"
	DebugChunk            = "Chunk at offset %d: type=%s count=%d"
	DebugChecksumOK       = "Checksum OK: %08X"
	DebugOutputReplaced   = "Replacing existing output %s"
	DebugLogFile          = "Logging to %s"
)

// Warning messages
const (
	WarnCorruptECM     = "Corrupt ECM file!"
	WarnPartialOutput  = "Partial output left in %s"
	WarnTrailingBytes  = "Image has %d trailing bytes that do not form a full sector"
	WarnSectorFault    = "LBA %d (%s) %s: EDC ok=%t ECC ok=%t"
	WarnImageFaults    = "%d sectors failed verification"
	WarnConfigNotFound = "Configuration file %s not found, using defaults"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
