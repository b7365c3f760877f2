package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/log"
)

const (
	correlationHeader    = "X-Correlation-ID"
	slowRequestThreshold = 500 * time.Millisecond
)

// LoggingMiddleware registra início e fim de cada requisição HTTP
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(correlationHeader, correlationID)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			if log.IsDevelopment() {
				log.L.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}).Info("→ Iniciando requisição")
			} else {
				log.L.WithFields(log.Fields{
					"correlation_id": correlationID,
					"remote_addr":    r.RemoteAddr,
					"method":         r.Method,
					"path":           r.URL.Path,
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
				}).Info("Requisição iniciada")
			}

			next.ServeHTTP(lrw, r)

			logCompletion(r, correlationID, lrw.statusCode, time.Since(startTime))
		})
	}
}

func logCompletion(r *http.Request, correlationID string, status int, elapsed time.Duration) {
	fields := log.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"status_code": status,
	}

	var msg string
	if log.IsDevelopment() {
		symbol := "✓"
		if status >= 400 {
			symbol = "✗"
		}
		msg = fmt.Sprintf("%s Completada em %s", symbol, formatDuration(elapsed))
	} else {
		fields["correlation_id"] = correlationID
		fields["duration_ms"] = elapsed.Milliseconds()
		msg = "Requisição finalizada"
	}

	logger := log.L.WithFields(fields)
	switch {
	case status >= 500:
		logger.Error(msg)
	case status >= 400:
		logger.Warn(msg)
	default:
		logger.Info(msg)
	}

	if elapsed > slowRequestThreshold {
		logger.Warnf("Requisição lenta: %s", formatDuration(elapsed))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status code da resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware recupera panics dos handlers e responde 500
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackTrace := string(stack[:runtime.Stack(stack, false)])

					logger := log.L.WithFields(log.Fields{
						"correlation_id": log.GetCorrelationID(r.Context()),
						"panic_error":    err,
						"method":         r.Method,
						"path":           r.URL.Path,
					})
					logger.Error("Erro não tratado na aplicação")

					if log.IsDevelopment() {
						fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
					} else {
						logger.WithField("stack_trace", stackTrace).Error("Stack trace do erro")
					}

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
