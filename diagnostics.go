package raygun

import "context"

type ctxKey int

const diagnosticsKey ctxKey = iota + 1

// WithDiagnostic attaches the given key and value to a copy of ctx. Log
// entries carrying the returned context (see logrus.WithContext) report it as
// "mdc:<key>" in the custom data of the error.
func WithDiagnostic(ctx context.Context, key string, value interface{}) context.Context {
	return WithDiagnostics(ctx, map[string]interface{}{key: value})
}

// WithDiagnostics attaches all the given key/value pairs to a copy of ctx,
// replacing any existing values for the same keys.
func WithDiagnostics(ctx context.Context, data map[string]interface{}) context.Context {
	if ctx == nil {
		return nil
	}
	existing := Diagnostics(ctx)
	merged := make(map[string]interface{}, len(existing)+len(data))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	return context.WithValue(ctx, diagnosticsKey, merged)
}

// Diagnostics returns the key/value pairs attached to ctx. The returned map
// must not be modified.
func Diagnostics(ctx context.Context) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	if m, ok := ctx.Value(diagnosticsKey).(map[string]interface{}); ok {
		return m
	}
	return nil
}
