package logging

import (
	"context"

	"go.uber.org/zap"
)

type runCtxKey struct{}
type caseCtxKey struct{}

// WithRunID tags every entry logged with ctx by the ingestion run id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runCtxKey{}, id)
}

// RunIDFromContext returns the run id, or "".
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runCtxKey{}).(string)
	return id
}

// WithCase tags every entry logged with ctx by the case folder.
func WithCase(ctx context.Context, folder string) context.Context {
	return context.WithValue(ctx, caseCtxKey{}, folder)
}

// CaseFromContext returns the case folder, or "".
func CaseFromContext(ctx context.Context) string {
	folder, _ := ctx.Value(caseCtxKey{}).(string)
	return folder
}

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	var fields []zap.Field
	if id := RunIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("run.id", id))
	}
	if folder := CaseFromContext(ctx); folder != "" {
		fields = append(fields, zap.String("case.folder", folder))
	}
	return fields
}
