package frame

import "lake-demo/internal/domain"

// Serialization formats understood by Encode and Decode.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// ContentType returns the MIME type for a format, or the generic
// octet-stream type for anything else.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/octet-stream"
}

// ValidateFormat fails with a ValidationError for formats Encode and
// Decode do not understand.
func ValidateFormat(format string) error {
	switch format {
	case FormatCSV, FormatParquet:
		return nil
	default:
		return domain.ErrValidation("unsupported format: %s", format)
	}
}

// Encode serializes the frame in the given format. An unsupported format
// fails synchronously with a ValidationError.
func Encode(f *Frame, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return encodeCSV(f)
	case FormatParquet:
		return encodeParquet(f)
	default:
		return nil, domain.ErrValidation("unsupported format: %s", format)
	}
}

// Decode deserializes a frame from the given format.
func Decode(data []byte, format string) (*Frame, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(data)
	case FormatParquet:
		return decodeParquet(data)
	default:
		return nil, domain.ErrValidation("unsupported format: %s", format)
	}
}
