package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/registry"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/metrics"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("gps-device-mgmt/ingest")

// DefaultClusterWindow is how long the cached current position may go
// without a refresh even when the tracker has not moved.
const DefaultClusterWindow = 30 * time.Second

type Config struct {
	ClusterDistance float64       `yaml:"cluster_distance"`
	ClusterWindow   time.Duration `yaml:"cluster_window"`
}

type SubmitResult struct {
	Accepted int
	Device   types.Device
}

//go:generate moq -rm -out ingest_mock.go . LocationService
type LocationService interface {
	Submit(ctx context.Context, deviceID string, points []types.LocationPoint) (SubmitResult, error)
	History(ctx context.Context, deviceID string, clustered bool, since time.Time, limit uint64) (types.Collection[types.LocationPoint], error)
	CurrentPositions(ctx context.Context) ([]types.DevicePosition, error)
}

type service struct {
	storage   storage.Store
	devices   registry.DeviceRegistry
	messenger messaging.MsgContext
	config    Config
}

func New(s storage.Store, devices registry.DeviceRegistry, messenger messaging.MsgContext, config Config) LocationService {
	if config.ClusterDistance <= 0 {
		config.ClusterDistance = DefaultClusterDistance
	}
	if config.ClusterWindow <= 0 {
		config.ClusterWindow = DefaultClusterWindow
	}

	return service{
		storage:   s,
		devices:   devices,
		messenger: messenger,
		config:    config,
	}
}

// Submit validates and stores a batch of location points for a device. The
// batch is all or nothing, one out of range reading rejects every point in
// it and the store is left untouched. Points are expected oldest first and
// are stored in the order they arrive.
func (s service) Submit(ctx context.Context, deviceID string, points []types.LocationPoint) (SubmitResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "submit-locations")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	metrics.LocationBatchesTotal.Inc()
	timer := prometheus.NewTimer(metrics.BatchProcessingDuration)
	defer timer.ObserveDuration()

	for i := range points {
		if err = points[i].Validate(); err != nil {
			metrics.LocationBatchesRejectedTotal.Inc()
			return SubmitResult{}, err
		}
	}

	device, err := s.devices.EnsureDevice(ctx, deviceID)
	if err != nil {
		return SubmitResult{}, err
	}

	if len(points) == 0 {
		return SubmitResult{Device: device}, nil
	}

	now := time.Now().UTC()

	for i := range points {
		points[i].DeviceID = device.DeviceID
		if points[i].Timestamp.IsZero() {
			points[i].Timestamp = now
		}
	}

	newest := points[len(points)-1]

	var current *types.LocationPoint
	if s.positionMoved(device.Position, newest) {
		current = &newest
	}

	powerStatus := ""
	if newest.PowerStatus != "" && newest.PowerStatus != device.PowerStatus {
		powerStatus = newest.PowerStatus
	}

	err = s.storage.AppendLocations(ctx, device.DeviceID, points, current, powerStatus)
	if err != nil {
		return SubmitResult{}, err
	}

	metrics.LocationPointsTotal.Add(float64(len(points)))

	if powerStatus != "" {
		device.PowerStatus = powerStatus
	}

	if current != nil {
		metrics.PositionUpdatesTotal.Inc()
		s.publishPositionUpdated(ctx, device, newest)
	}

	return SubmitResult{Accepted: len(points), Device: device}, nil
}

// positionMoved decides whether the cached current position should follow
// the newest point. Stationary jitter below the cluster distance is ignored
// until the cluster window has passed, then the cache is refreshed anyway so
// its timestamp stays honest.
func (s service) positionMoved(cached *types.DevicePosition, newest types.LocationPoint) bool {
	if cached == nil {
		return true
	}

	if Distance(cached.Latitude, cached.Longitude, newest.Latitude, newest.Longitude) >= s.config.ClusterDistance {
		return true
	}

	return newest.Timestamp.Sub(cached.Timestamp) >= s.config.ClusterWindow
}

// History returns stored points for a device, most recent first. With
// clustered set, runs of points closer together than the history cluster
// distance collapse into their first representative.
func (s service) History(ctx context.Context, deviceID string, clustered bool, since time.Time, limit uint64) (types.Collection[types.LocationPoint], error) {
	_, err := s.devices.GetDevice(ctx, deviceID)
	if err != nil {
		if errors.Is(err, registry.ErrDeviceNotFound) {
			return types.Collection[types.LocationPoint]{}, registry.ErrDeviceNotFound
		}
		return types.Collection[types.LocationPoint]{}, err
	}

	conditions := []storage.ConditionFunc{
		storage.WithDeviceID(deviceID),
		storage.WithSortDesc(),
	}
	if !since.IsZero() {
		conditions = append(conditions, storage.WithSince(since))
	}
	if limit > 0 {
		conditions = append(conditions, storage.WithLimit(int(limit)))
	}

	collection, err := s.storage.QueryLocations(ctx, conditions...)
	if err != nil {
		return types.Collection[types.LocationPoint]{}, err
	}

	if clustered {
		collection.Data = Cluster(collection.Data, HistoryClusterDistance)
		collection.Count = uint64(len(collection.Data))
	}

	return collection, nil
}

func (s service) CurrentPositions(ctx context.Context) ([]types.DevicePosition, error) {
	return s.storage.CurrentPositions(ctx)
}

func (s service) publishPositionUpdated(ctx context.Context, device types.Device, point types.LocationPoint) {
	err := s.messenger.PublishOnTopic(ctx, &PositionUpdated{
		DeviceID:  device.DeviceID,
		Name:      device.Name,
		Latitude:  point.Latitude,
		Longitude: point.Longitude,
		Timestamp: point.Timestamp,
	})
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Error("could not publish position update", "device_id", device.DeviceID, "err", err.Error())
	}
}
