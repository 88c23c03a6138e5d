package logs

// Span identifies one logical operation across log records. It travels
// in the context under SpanKey and is attached to records by Handler.
type Span string

type spanKeyType struct{}

var SpanKey spanKeyType
