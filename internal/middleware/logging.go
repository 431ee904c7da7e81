// Package middleware holds the HTTP middleware of the shortener: request
// logging, gzip, metrics and the trusted subnet check.
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type (
	// responseData holds what the handler wrote so middleware can report it.
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter captures the status code and body size.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func wrapResponseWriter(w http.ResponseWriter) (*loggingResponseWriter, *responseData) {
	data := &responseData{}
	return &loggingResponseWriter{ResponseWriter: w, responseData: data}, data
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	if r.responseData.status == 0 {
		r.responseData.status = statusCode
	}
}

// statusCode returns the written status, 200 if the handler never set one.
func (d *responseData) statusCode() int {
	if d.status == 0 {
		return http.StatusOK
	}
	return d.status
}

// WithRequestLogging logs method, URL, status, size and duration of every
// request. Server errors are logged at error level.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			lw, data := wrapResponseWriter(w)
			next.ServeHTTP(lw, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", data.statusCode()),
				zap.Int("size", data.size),
			}

			if data.statusCode() >= http.StatusInternalServerError {
				log.Error("HTTP Request", fields...)
				return
			}
			log.Info("HTTP Request", fields...)
		})
	}
}
