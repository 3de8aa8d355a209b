package helpers

// OutputFormat represents the --format values
type OutputFormat string

const (
	OutputFormatAuto OutputFormat = "auto"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatTUI  OutputFormat = "tui"
)

// Error codes shared by every command.
const (
	CodeFetchFailed      = "FETCH_FAILED"
	CodeInvalidFlag      = "INVALID_FLAG"
	CodeOperationTimeout = "OPERATION_TIMEOUT"
	CodeOperationCancel  = "OPERATION_CANCELED"
	CodeNetworkError     = "NETWORK_ERROR"
	CodeClipboard        = "CLIPBOARD_ERROR"
)
