package httpx

import (
	"log/slog"
	"net/http"
)

// RespondLogged logs err and writes the matching failure envelope. Client
// errors are logged at warn level, everything else at error level.
func RespondLogged(w http.ResponseWriter, logger *slog.Logger, msg string, err error, args ...any) {
	status := StatusFor(err)
	if logger != nil {
		args = append(args, slog.Any("error", err), slog.Int("status", status))
		if status >= http.StatusInternalServerError {
			logger.Error(msg, args...)
		} else {
			logger.Warn(msg, args...)
		}
	}
	Fail(w, status)
}
