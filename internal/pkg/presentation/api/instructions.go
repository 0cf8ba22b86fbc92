package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/handshake"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
)

type instructionRequest struct {
	Instruction string `json:"instruction"`
}

func queueInstructionHandler(log *slog.Logger, coordinator handshake.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "queue-instruction")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req instructionRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		deviceID := chi.URLParam(r, "deviceID")

		token, issued, err := coordinator.QueueInstruction(ctx, deviceID, req.Instruction)
		if err != nil {
			if errors.Is(err, handshake.ErrInvalidInstruction) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			if errors.Is(err, handshake.ErrDeviceNotFound) {
				writeError(w, http.StatusNotFound, "device not found")
				return
			}
			requestLogger.Error("unable to queue instruction", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		code := http.StatusCreated
		if !issued {
			// an instruction was already pending, hand back its token
			code = http.StatusOK
		}

		writeJSON(w, code, map[string]any{
			"instruction": token.Kind,
			"token":       token.Token,
			"expires_at":  token.ExpiresAt,
		})
	}
}

func pendingInstructionHandler(log *slog.Logger, coordinator handshake.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "pending-instruction")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")

		token, err := coordinator.PendingInstruction(ctx, deviceID)
		if err != nil {
			if errors.Is(err, handshake.ErrStaleToken) {
				writeError(w, http.StatusNotFound, "no instruction pending")
				return
			}
			requestLogger.Error("unable to read pending instruction", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"instruction": token.Kind,
			"token":       token.Token,
			"expires_at":  token.ExpiresAt,
		})
	}
}
