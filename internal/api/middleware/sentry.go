package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
)

// SentryMiddleware wraps each request in a Sentry transaction on a cloned hub.
// Without an initialized client the transaction is a no-op.
func SentryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}

		opts := []sentry.SpanOption{
			sentry.WithOpName("http.server"),
			sentry.WithTransactionSource(sentry.SourceURL),
		}
		if trace := r.Header.Get(sentry.SentryTraceHeader); trace != "" {
			opts = append(opts, sentry.ContinueFromHeaders(trace, r.Header.Get(sentry.SentryBaggageHeader)))
		}

		tx := sentry.StartTransaction(sentry.SetHubOnContext(r.Context(), hub), r.Method+" "+r.URL.Path, opts...)
		defer tx.Finish()
		r = r.WithContext(tx.Context())

		hub.Scope().SetRequest(r)
		if id := GetRequestID(r.Context()); id != "" {
			hub.Scope().SetTag("request_id", id)
			tx.SetTag("request_id", id)
		}

		defer func() {
			if v := recover(); v != nil {
				tx.Status = sentry.SpanStatusInternalError
				hub.RecoverWithContext(r.Context(), v)
				panic(v)
			}
		}()

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		// Name by route once chi has matched it: /documents, /search.
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			tx.Name = r.Method + " " + rc.RoutePattern()
			tx.Source = sentry.SourceRoute
		}

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		tx.Status = spanStatus(status)
		tx.SetData("http.response.status_code", status)

		// Handlers log the cause; this only flags that a request failed.
		if status >= http.StatusInternalServerError {
			hub.CaptureMessage(fmt.Sprintf("%s: HTTP %d", tx.Name, status))
		}
	})
}

func spanStatus(status int) sentry.SpanStatus {
	switch status {
	case http.StatusBadRequest:
		return sentry.SpanStatusInvalidArgument
	case http.StatusNotFound:
		return sentry.SpanStatusNotFound
	case http.StatusConflict:
		return sentry.SpanStatusAlreadyExists
	case http.StatusRequestEntityTooLarge:
		return sentry.SpanStatusResourceExhausted
	case http.StatusServiceUnavailable:
		return sentry.SpanStatusUnavailable
	case http.StatusGatewayTimeout:
		return sentry.SpanStatusDeadlineExceeded
	}
	switch {
	case status < 400:
		return sentry.SpanStatusOK
	case status < 500:
		return sentry.SpanStatusInvalidArgument
	default:
		return sentry.SpanStatusInternalError
	}
}
