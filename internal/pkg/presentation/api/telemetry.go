package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/handshake"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/ingest"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/registry"
	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
)

// inputPoint is the wire form of a telemetry reading. Older firmware uses
// different key names for the device id and coordinates, everything is
// normalized here before the services see it.
type inputPoint struct {
	DeviceID       string `json:"device_id,omitempty"`
	LegacyDevice   string `json:"device,omitempty"`
	LegacyDeviceID string `json:"deviceId,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`

	Speed      *float64 `json:"speed,omitempty"`
	Altitude   *float64 `json:"altitude,omitempty"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
	Satellites *int     `json:"satellites,omitempty"`

	PowerStatus string `json:"power_status,omitempty"`
	Token       string `json:"token,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

func (p inputPoint) deviceID() string {
	for _, id := range []string{p.DeviceID, p.LegacyDevice, p.LegacyDeviceID} {
		if id != "" {
			return id
		}
	}
	return ""
}

func (p inputPoint) toLocationPoint() (types.LocationPoint, error) {
	point := types.LocationPoint{
		Speed:       p.Speed,
		Altitude:    p.Altitude,
		Accuracy:    p.Accuracy,
		Satellites:  p.Satellites,
		PowerStatus: p.PowerStatus,
	}

	lat, lon := p.Latitude, p.Longitude
	if lat == nil {
		lat = p.Lat
	}
	if lon == nil {
		lon = p.Lon
	}
	if lat == nil || lon == nil {
		return types.LocationPoint{}, errors.New("latitude and longitude are required")
	}
	point.Latitude = *lat
	point.Longitude = *lon

	if p.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return types.LocationPoint{}, errors.New("timestamp is not valid ISO-8601")
		}
		point.Timestamp = ts.UTC()
	}

	return point, nil
}

// decodeInput accepts a single reading or a batch of them.
func decodeInput(body io.Reader) ([]inputPoint, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []inputPoint
		err = json.Unmarshal(trimmed, &batch)
		return batch, err
	}

	var single inputPoint
	err = json.Unmarshal(trimmed, &single)
	if err != nil {
		return nil, err
	}

	return []inputPoint{single}, nil
}

func submitHandler(log *slog.Logger, coordinator handshake.Coordinator, locations ingest.LocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "submit-locations")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		input, err := decodeInput(r.Body)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		if len(input) == 0 {
			writeError(w, http.StatusBadRequest, "empty batch")
			return
		}

		deviceID := input[0].deviceID()
		if deviceID == "" {
			deviceID = deviceIDFromRequest(r)
		}

		points := make([]types.LocationPoint, 0, len(input))
		ackToken := ""

		for _, in := range input {
			point, err := in.toLocationPoint()
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			points = append(points, point)

			if in.Token != "" {
				ackToken = in.Token
			}
		}

		result, err := locations.Submit(ctx, deviceID, points)
		if err != nil {
			var fieldErr *types.FieldError
			if errors.As(err, &fieldErr) {
				writeError(w, http.StatusBadRequest, fieldErr.Error())
				return
			}
			if errors.Is(err, registry.ErrInvalidDeviceID) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			requestLogger.Error("unable to store batch", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// an ack riding in the batch is honored only once the batch itself
		// has been accepted, a rejected batch leaves the token untouched
		if ackToken != "" {
			_, err = coordinator.Acknowledge(ctx, deviceID, ackToken)
			if err != nil && !errors.Is(err, handshake.ErrStaleToken) {
				requestLogger.Error("unable to acknowledge instruction", "device_id", deviceID, "err", err.Error())
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			// a stale ack is simply ignored
			err = nil
		}

		hs, err := coordinator.Handshake(ctx, deviceID, points[len(points)-1].PowerStatus)
		if err != nil {
			requestLogger.Error("handshake after submit failed", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		body := map[string]any{
			"status":   "ok",
			"accepted": result.Accepted,
			"config":   configPayload(hs.Settings),
		}
		if hs.Instruction != types.InstructionNone {
			body["instruction"] = hs.Instruction
			body["token"] = hs.Token
		}

		writeJSON(w, http.StatusOK, body)
	}
}

type handshakeRequest struct {
	DeviceID       string `json:"device_id,omitempty"`
	LegacyDevice   string `json:"device,omitempty"`
	LegacyDeviceID string `json:"deviceId,omitempty"`
	PowerStatus    string `json:"power_status,omitempty"`
}

func (h handshakeRequest) deviceID() string {
	for _, id := range []string{h.DeviceID, h.LegacyDevice, h.LegacyDeviceID} {
		if id != "" {
			return id
		}
	}
	return ""
}

func configPayload(settings types.DeviceSettings) map[string]any {
	return map[string]any{
		"interval_gps":  settings.SleepInterval,
		"interval_send": settings.SendInterval,
		"satellites":    settings.Satellites,
	}
}

func handshakeHandler(log *slog.Logger, coordinator handshake.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "handshake")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req handshakeRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		result, err := coordinator.Handshake(ctx, req.deviceID(), req.PowerStatus)
		if err != nil {
			if errors.Is(err, registry.ErrInvalidDeviceID) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			requestLogger.Error("handshake failed", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		body := map[string]any{
			"registered":  result.Registered,
			"instruction": result.Instruction,
			"config":      configPayload(result.Settings),
		}
		if result.Token != "" {
			body["token"] = result.Token
		}

		writeJSON(w, http.StatusOK, body)
	}
}

type ackRequest struct {
	DeviceID       string `json:"device_id,omitempty"`
	LegacyDevice   string `json:"device,omitempty"`
	LegacyDeviceID string `json:"deviceId,omitempty"`
	Token          string `json:"token"`
}

func acknowledgeHandler(log *slog.Logger, coordinator handshake.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "acknowledge-instruction")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req ackRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		deviceID := req.DeviceID
		if deviceID == "" {
			deviceID = req.LegacyDevice
		}
		if deviceID == "" {
			deviceID = req.LegacyDeviceID
		}

		consumed, err := coordinator.Acknowledge(ctx, deviceID, req.Token)
		if err != nil {
			if errors.Is(err, handshake.ErrStaleToken) {
				err = nil
				writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
				return
			}
			requestLogger.Error("unable to acknowledge instruction", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":      "ok",
			"instruction": consumed.Kind,
		})
	}
}

func currentCoordinatesHandler(log *slog.Logger, locations ingest.LocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "current-coordinates")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		positions, err := locations.CurrentPositions(ctx)
		if err != nil {
			requestLogger.Error("unable to read current positions", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"data": positions})
	}
}

func historyQuery(r *http.Request) (clustered bool, since time.Time, limit uint64) {
	clustered = r.URL.Query().Get("clustered") == "true"

	if s := r.URL.Query().Get("since"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err == nil {
			since = ts
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.ParseUint(l, 10, 64)
		if err == nil {
			limit = n
		}
	}

	return
}

func historyHandler(log *slog.Logger, locations ingest.LocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "device-history")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := deviceIDFromRequest(r)
		clustered, since, limit := historyQuery(r)

		collection, err := locations.History(ctx, deviceID, clustered, since, limit)
		if err != nil {
			if errors.Is(err, registry.ErrDeviceNotFound) {
				writeError(w, http.StatusNotFound, "device not found")
				return
			}
			requestLogger.Error("unable to read history", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data":       collection.Data,
			"count":      collection.Count,
			"totalItems": collection.TotalCount,
		})
	}
}

func deviceHistoryHandler(log *slog.Logger, locations ingest.LocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "device-history")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		clustered, since, limit := historyQuery(r)

		collection, err := locations.History(ctx, deviceID, clustered, since, limit)
		if err != nil {
			if errors.Is(err, registry.ErrDeviceNotFound) {
				writeError(w, http.StatusNotFound, "device not found")
				return
			}
			requestLogger.Error("unable to read history", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data":       collection.Data,
			"count":      collection.Count,
			"totalItems": collection.TotalCount,
		})
	}
}
