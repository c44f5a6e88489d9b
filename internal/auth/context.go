package auth

import "context"

type contextKey string

const subjectContextKey contextKey = "auth_subject"

// ContextWithSubject stores the authenticated subject (account email).
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

// SubjectFromContext returns the authenticated subject, or "" and false if
// the request was not authenticated.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectContextKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}
