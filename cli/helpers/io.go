package helpers

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputWriter writes command results as indented JSON.
type OutputWriter struct {
	writer io.Writer
	format OutputFormat
}

func NewOutputWriter(writer io.Writer, format OutputFormat) *OutputWriter {
	return &OutputWriter{writer: writer, format: format}
}

// WriteData writes data in the configured format
func (ow *OutputWriter) WriteData(data any) error {
	switch ow.format {
	case OutputFormatJSON, OutputFormatAuto:
		encoder := json.NewEncoder(ow.writer)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(data)
	default:
		return fmt.Errorf("unsupported output format: %s", ow.format)
	}
}
