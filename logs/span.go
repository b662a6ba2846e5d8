package logs

// Span identifies one unit of work, such as a single program run, across log
// records and errors.
type Span string

type spanKey struct{}

var SpanKey spanKey

// SpanOf returns the span carried by ctx, or an empty Span.
func SpanOf(ctx interface{ Value(any) any }) Span {
	if v := ctx.Value(SpanKey); v != nil {
		return v.(Span)
	}
	return ""
}
