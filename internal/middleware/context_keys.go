package middleware

import "context"

// contextKey is the type of values stored by this package in a request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	subjectKey   = contextKey("subject")
)

// GetSubjectFromCtx returns the authenticated token subject, if auth is enabled and passed.
func GetSubjectFromCtx(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
