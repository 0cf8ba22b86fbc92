package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"log/slog"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/handshake"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/ingest"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/registry"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/presentation/api/auth"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("gps-device-mgmt/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, accounts *auth.AccountStore, devices registry.DeviceRegistry, coordinator handshake.Coordinator, locations ingest.LocationService) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	authorizer, err := auth.NewAuthorizer(ctx, policies)
	if err != nil {
		return nil, fmt.Errorf("failed to create api authorizer: %w", err)
	}

	// device facing endpoints, the tracker hardware talks to these
	router.Post("/device_input", submitHandler(log, coordinator, locations))
	router.Get("/device_settings", getSettingsHandler(log, devices))
	router.Post("/device_settings", updateSettingsHandler(log, devices))
	router.Get("/device_settings/{deviceID}", getSettingsHandler(log, devices))
	router.Post("/device_settings/{deviceID}", updateSettingsHandler(log, devices))
	router.Get("/current_coordinates", currentCoordinatesHandler(log, locations))
	router.Get("/device_data", historyHandler(log, locations))

	router.Route("/api/hw", func(r chi.Router) {
		r.Post("/register-device", legacyRegisterHandler(log, accounts, devices))
		r.Post("/handshake", handshakeHandler(log, coordinator))
	})

	router.Route("/api/devices", func(r chi.Router) {
		r.Post("/handshake", handshakeHandler(log, coordinator))
		r.Post("/input", submitHandler(log, coordinator, locations))
		r.Post("/ack", acknowledgeHandler(log, coordinator))

		r.Group(func(r chi.Router) {
			r.Use(accounts.BasicAuth)

			r.Post("/register", registerHandler(log, devices))
			r.Get("/", queryDevicesHandler(log, devices))
		})
	})

	// fleet operator endpoints
	router.Route("/api/v0", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authorizer.RequireScope(auth.ScopeOperator))

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", queryAllDevicesHandler(log, devices))
				r.Get("/coordinates", currentCoordinatesHandler(log, locations))
				r.Get("/{deviceID}", getDeviceHandler(log, devices))
				r.Get("/{deviceID}/locations", deviceHistoryHandler(log, locations))
				r.Get("/{deviceID}/settings", getSettingsHandler(log, devices))
				r.Patch("/{deviceID}/settings", updateSettingsHandler(log, devices))
				r.Post("/{deviceID}/instructions", queueInstructionHandler(log, coordinator))
				r.Get("/{deviceID}/instructions", pendingInstructionHandler(log, coordinator))
			})
		})
	})

	return router, nil
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

type registerRequest struct {
	DeviceID   string `json:"device_id"`
	Name       string `json:"name,omitempty"`
	ClientType string `json:"client_type,omitempty"`

	// legacy aliases used by older firmware
	LegacyDeviceID  string `json:"deviceId,omitempty"`
	LegacyDevice    string `json:"device,omitempty"`
	LegacyUser      string `json:"user,omitempty"`
	LegacyPassword  string `json:"password,omitempty"`
	LegacyTrackerID string `json:"tracker_id,omitempty"`
}

func (r registerRequest) deviceID() string {
	for _, id := range []string{r.DeviceID, r.LegacyDeviceID, r.LegacyDevice, r.LegacyTrackerID} {
		if id != "" {
			return id
		}
	}
	return ""
}

func registerHandler(log *slog.Logger, devices registry.DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "register-device")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req registerRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		owner := auth.OwnerFromContext(ctx)

		respondToRegister(w, requestLogger, devices, ctx, owner, req)
	}
}

// legacyRegisterHandler serves trackers that carry owner credentials in the
// request body instead of an Authorization header.
func legacyRegisterHandler(log *slog.Logger, accounts *auth.AccountStore, devices registry.DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "register-device-legacy")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req registerRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		if !accounts.Verify(req.LegacyUser, req.LegacyPassword) {
			requestLogger.Info("rejected owner credentials", "username", req.LegacyUser)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		respondToRegister(w, requestLogger, devices, ctx, req.LegacyUser, req)
	}
}

func respondToRegister(w http.ResponseWriter, log *slog.Logger, devices registry.DeviceRegistry, ctx context.Context, owner string, req registerRequest) {
	result, err := devices.Register(ctx, owner, req.deviceID(), req.Name, req.ClientType)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidDeviceID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("unable to register device", "err", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	body := map[string]any{
		"status": string(result.Status),
		"device": result.Device,
	}

	switch result.Status {
	case registry.RegistrationCreated:
		writeJSON(w, http.StatusCreated, body)
	case registry.RegistrationAlreadyOwned:
		writeJSON(w, http.StatusOK, body)
	default:
		writeError(w, http.StatusConflict, "device is registered to another owner")
	}
}

func queryDevicesHandler(log *slog.Logger, devices registry.DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-devices")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := devices.QueryDevices(ctx, auth.OwnerFromContext(ctx))
		if err != nil {
			requestLogger.Error("unable to query devices", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data":       collection.Data,
			"totalItems": collection.TotalCount,
		})
	}
}

func queryAllDevicesHandler(log *slog.Logger, devices registry.DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-all-devices")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := devices.QueryDevices(ctx, r.URL.Query().Get("owner"))
		if err != nil {
			requestLogger.Error("unable to query devices", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data":       collection.Data,
			"totalItems": collection.TotalCount,
		})
	}
}

func getDeviceHandler(log *slog.Logger, devices registry.DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-device")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		device, err := devices.GetDevice(ctx, chi.URLParam(r, "deviceID"))
		if err != nil {
			if errors.Is(err, registry.ErrDeviceNotFound) {
				writeError(w, http.StatusNotFound, "device not found")
				return
			}
			requestLogger.Error("unable to get device", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, device)
	}
}

// deviceIDFromRequest finds the device id wherever a client may have put it,
// the legacy endpoints use query parameters while the unified ones use the
// url path.
func deviceIDFromRequest(r *http.Request) string {
	if id := chi.URLParam(r, "deviceID"); id != "" {
		return id
	}
	for _, param := range []string{"device_id", "device", "deviceId", "name"} {
		if id := r.URL.Query().Get(param); id != "" {
			return id
		}
	}
	return ""
}

func getSettingsHandler(log *slog.Logger, devices registry.DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-settings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := deviceIDFromRequest(r)

		settings, err := devices.GetSettings(ctx, deviceID)
		if err != nil {
			if errors.Is(err, registry.ErrInvalidDeviceID) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			requestLogger.Error("unable to get settings", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}

type settingsRequest struct {
	DeviceID string `json:"device_id,omitempty"`

	// legacy aliases
	LegacyDevice   string `json:"device,omitempty"`
	LegacyDeviceID string `json:"deviceId,omitempty"`

	SleepInterval *int `json:"sleep_interval,omitempty"`
	SendInterval  *int `json:"send_interval,omitempty"`
	Satellites    *int `json:"satellites,omitempty"`
}

func updateSettingsHandler(log *slog.Logger, devices registry.DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "update-settings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req settingsRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		deviceID := deviceIDFromRequest(r)
		if deviceID == "" {
			for _, id := range []string{req.DeviceID, req.LegacyDevice, req.LegacyDeviceID} {
				if id != "" {
					deviceID = id
					break
				}
			}
		}

		current, err := devices.GetSettings(ctx, deviceID)
		if err != nil {
			if errors.Is(err, registry.ErrInvalidDeviceID) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			requestLogger.Error("unable to get settings", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if req.SleepInterval != nil {
			current.SleepInterval = *req.SleepInterval
		}
		if req.SendInterval != nil {
			current.SendInterval = *req.SendInterval
		}
		if req.Satellites != nil {
			current.Satellites = *req.Satellites
		}

		updated, err := devices.UpdateSettings(ctx, deviceID, current)
		if err != nil {
			if errors.Is(err, registry.ErrInvalidSettings) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			requestLogger.Error("unable to update settings", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}
