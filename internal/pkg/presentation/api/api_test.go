package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/handshake"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/ingest"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/registry"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/presentation/api/auth"
	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterDevice(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, body := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusCreated, code)

	response := struct {
		Status string       `json:"status"`
		Device types.Device `json:"device"`
	}{}
	is.NoErr(json.Unmarshal(body, &response))

	is.Equal("created", response.Status)
	is.Equal("alice", response.Device.Owner)
	is.Equal("Device trk000", response.Device.Name)
}

func TestRegisterDeviceIsIdempotentForTheSameOwner(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusCreated, code)

	code, body := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusOK, code)
	is.True(strings.Contains(string(body), "already_owned"))
}

func TestRegisterDeviceConflictsForAnotherOwner(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusCreated, code)

	code, _ = doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asBob, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusConflict, code)
}

func TestRegisterDeviceRequiresCredentials(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		nil, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusUnauthorized, code)
}

func TestRegisterDeviceRejectsOverlongID(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"this-id-is-way-too-long-for-a-tracker"}`)
	is.Equal(http.StatusBadRequest, code)
}

func TestLegacyRegisterCarriesCredentialsInBody(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, body := doRequest(is, mux, http.MethodPost, "/api/hw/register-device",
		nil, `{"deviceId":"trk0000002","user":"alice","password":"tr4cker"}`)
	is.Equal(http.StatusCreated, code)
	is.True(strings.Contains(string(body), `"owner":"alice"`))

	code, _ = doRequest(is, mux, http.MethodPost, "/api/hw/register-device",
		nil, `{"deviceId":"trk0000002","user":"alice","password":"wrong"}`)
	is.Equal(http.StatusUnauthorized, code)
}

func TestRegisterClaimsAutoProvisionedDevice(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	// bare telemetry provisions the device without an owner
	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/input",
		nil, `{"device":"trk0000003","lat":57.7,"lon":11.97}`)
	is.Equal(http.StatusOK, code)

	code, body := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000003"}`)
	is.Equal(http.StatusCreated, code)
	is.True(strings.Contains(string(body), `"owner":"alice"`))
}

func TestHandshakeReturnsConfig(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, body := doRequest(is, mux, http.MethodPost, "/api/devices/handshake",
		nil, `{"device_id":"trk0000001","power_status":"ON"}`)
	is.Equal(http.StatusOK, code)

	response := struct {
		Registered  bool           `json:"registered"`
		Instruction string         `json:"instruction"`
		Config      map[string]int `json:"config"`
	}{}
	is.NoErr(json.Unmarshal(body, &response))

	is.Equal(false, response.Registered)
	is.Equal(types.InstructionNone, response.Instruction)
	is.Equal(60, response.Config["interval_gps"])
	is.Equal(1, response.Config["interval_send"])
	is.Equal(5, response.Config["satellites"])
}

func TestInstructionRoundTrip(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusCreated, code)

	code, body := doRequest(is, mux, http.MethodPost, "/api/v0/devices/trk0000001/instructions",
		asOperator, `{"instruction":"TURN_OFF"}`)
	is.Equal(http.StatusCreated, code)

	issued := struct {
		Instruction string `json:"instruction"`
		Token       string `json:"token"`
	}{}
	is.NoErr(json.Unmarshal(body, &issued))
	is.Equal(types.InstructionTurnOff, issued.Instruction)
	is.True(issued.Token != "")

	// queueing again returns the pending token instead of minting a new one
	code, body = doRequest(is, mux, http.MethodPost, "/api/v0/devices/trk0000001/instructions",
		asOperator, `{"instruction":"TURN_OFF"}`)
	is.Equal(http.StatusOK, code)
	is.True(strings.Contains(string(body), issued.Token))

	// the device wakes up still on and is handed the instruction
	code, body = doRequest(is, mux, http.MethodPost, "/api/devices/handshake",
		nil, `{"device_id":"trk0000001","power_status":"ON"}`)
	is.Equal(http.StatusOK, code)
	is.True(strings.Contains(string(body), types.InstructionTurnOff))
	is.True(strings.Contains(string(body), issued.Token))

	code, body = doRequest(is, mux, http.MethodPost, "/api/devices/ack",
		nil, fmt.Sprintf(`{"device_id":"trk0000001","token":"%s"}`, issued.Token))
	is.Equal(http.StatusOK, code)
	is.True(strings.Contains(string(body), `"status":"ok"`))

	// a second ack with the consumed token is ignored
	code, body = doRequest(is, mux, http.MethodPost, "/api/devices/ack",
		nil, fmt.Sprintf(`{"device_id":"trk0000001","token":"%s"}`, issued.Token))
	is.Equal(http.StatusOK, code)
	is.True(strings.Contains(string(body), `"status":"ignored"`))

	// nothing is pending anymore
	code, _ = doRequest(is, mux, http.MethodGet, "/api/v0/devices/trk0000001/instructions",
		asOperator, "")
	is.Equal(http.StatusNotFound, code)

	code, body = doRequest(is, mux, http.MethodGet, "/api/v0/devices/trk0000001",
		asOperator, "")
	is.Equal(http.StatusOK, code)
	is.True(strings.Contains(string(body), `"power_status":"OFF"`))
}

func TestHandshakeRetiresHonoredInstruction(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusCreated, code)

	code, _ = doRequest(is, mux, http.MethodPost, "/api/v0/devices/trk0000001/instructions",
		asOperator, `{"instruction":"TURN_ON"}`)
	is.Equal(http.StatusCreated, code)

	// the device already reports the desired end state
	code, body := doRequest(is, mux, http.MethodPost, "/api/devices/handshake",
		nil, `{"device_id":"trk0000001","power_status":"ON"}`)
	is.Equal(http.StatusOK, code)
	is.True(strings.Contains(string(body), types.InstructionNone))

	code, _ = doRequest(is, mux, http.MethodGet, "/api/v0/devices/trk0000001/instructions",
		asOperator, "")
	is.Equal(http.StatusNotFound, code)
}

func TestQueueInstructionValidation(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/v0/devices/trk0000001/instructions",
		asOperator, `{"instruction":"SELF_DESTRUCT"}`)
	is.Equal(http.StatusBadRequest, code)

	code, _ = doRequest(is, mux, http.MethodPost, "/api/v0/devices/trk0000001/instructions",
		asOperator, `{"instruction":"TURN_OFF"}`)
	is.Equal(http.StatusNotFound, code)
}

func TestSubmitBatchAndReadHistory(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	// three jittering points and one a kilometre away
	batch := `[
		{"device":"trk0000001","lat":57.70000,"lon":11.97000,"timestamp":"2026-08-28T12:00:00Z"},
		{"device":"trk0000001","lat":57.70001,"lon":11.97000,"timestamp":"2026-08-28T12:01:00Z"},
		{"device":"trk0000001","lat":57.70000,"lon":11.97001,"timestamp":"2026-08-28T12:02:00Z"},
		{"device":"trk0000001","lat":57.70900,"lon":11.97000,"timestamp":"2026-08-28T12:03:00Z","power_status":"ON"}
	]`

	code, body := doRequest(is, mux, http.MethodPost, "/device_input", nil, batch)
	is.Equal(http.StatusOK, code)

	response := struct {
		Status   string         `json:"status"`
		Accepted int            `json:"accepted"`
		Config   map[string]int `json:"config"`
	}{}
	is.NoErr(json.Unmarshal(body, &response))
	is.Equal("ok", response.Status)
	is.Equal(4, response.Accepted)
	is.Equal(60, response.Config["interval_gps"])

	code, body = doRequest(is, mux, http.MethodGet, "/device_data?device=trk0000001", nil, "")
	is.Equal(http.StatusOK, code)

	history := struct {
		Data  []types.LocationPoint `json:"data"`
		Count uint64                `json:"count"`
	}{}
	is.NoErr(json.Unmarshal(body, &history))
	is.Equal(uint64(4), history.Count)

	// the jitter run collapses into its representative
	code, body = doRequest(is, mux, http.MethodGet,
		"/api/v0/devices/trk0000001/locations?clustered=true", asOperator, "")
	is.Equal(http.StatusOK, code)
	is.NoErr(json.Unmarshal(body, &history))
	is.Equal(uint64(2), history.Count)

	code, body = doRequest(is, mux, http.MethodGet, "/current_coordinates", nil, "")
	is.Equal(http.StatusOK, code)

	positions := struct {
		Data []types.DevicePosition `json:"data"`
	}{}
	is.NoErr(json.Unmarshal(body, &positions))
	is.Equal(1, len(positions.Data))
	is.Equal("trk0000001", positions.Data[0].DeviceID)
	is.Equal(57.709, positions.Data[0].Latitude)
}

func TestSubmitRejectsOutOfRangePoint(t *testing.T) {
	is, mux, store := setupTestAPI(t)

	batch := `[
		{"device":"trk0000001","lat":57.7,"lon":11.97},
		{"device":"trk0000001","lat":95.0,"lon":11.97}
	]`

	code, body := doRequest(is, mux, http.MethodPost, "/device_input", nil, batch)
	is.Equal(http.StatusBadRequest, code)
	is.True(strings.Contains(string(body), "latitude"))

	// the whole batch was rejected, nothing was stored
	is.Equal(0, len(store.locations["trk0000001"]))
}

func TestRejectedBatchLeavesAckTokenLive(t *testing.T) {
	is, mux, store := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusCreated, code)

	code, body := doRequest(is, mux, http.MethodPost, "/api/v0/devices/trk0000001/instructions",
		asOperator, `{"instruction":"TURN_OFF"}`)
	is.Equal(http.StatusCreated, code)

	issued := struct {
		Token string `json:"token"`
	}{}
	is.NoErr(json.Unmarshal(body, &issued))

	// one out of range point rejects the batch, so the ack riding in it
	// must not be honored
	batch := fmt.Sprintf(`[
		{"device":"trk0000001","lat":57.7,"lon":11.97},
		{"device":"trk0000001","lat":95.0,"lon":11.97,"token":"%s","power_status":"OFF"}
	]`, issued.Token)

	code, _ = doRequest(is, mux, http.MethodPost, "/device_input", nil, batch)
	is.Equal(http.StatusBadRequest, code)

	token, ok := store.tokens["trk0000001"]
	is.True(ok)
	is.True(!token.Consumed) // the instruction is still deliverable

	is.Equal(types.PowerStatusOn, store.devices["trk0000001"].PowerStatus)

	code, _ = doRequest(is, mux, http.MethodGet, "/api/v0/devices/trk0000001/instructions",
		asOperator, "")
	is.Equal(http.StatusOK, code)
}

func TestHistoryForUnknownDevice(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodGet, "/device_data?device=ghost", nil, "")
	is.Equal(http.StatusNotFound, code)
}

func TestUpdateSettingsOnLegacyEndpoint(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, body := doRequest(is, mux, http.MethodPost, "/device_settings?device_id=trk0000001",
		nil, `{"sleep_interval":120}`)
	is.Equal(http.StatusOK, code)

	settings := types.DeviceSettings{}
	is.NoErr(json.Unmarshal(body, &settings))
	is.Equal(120, settings.SleepInterval)
	is.Equal(1, settings.SendInterval)

	code, body = doRequest(is, mux, http.MethodGet, "/device_settings?device=trk0000001", nil, "")
	is.Equal(http.StatusOK, code)
	is.NoErr(json.Unmarshal(body, &settings))
	is.Equal(120, settings.SleepInterval)
}

func TestUpdateSettingsRejectsOutOfRange(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/device_settings?device_id=trk0000001",
		nil, `{"sleep_interval":5000}`)
	is.Equal(http.StatusBadRequest, code)
}

func TestOperatorEndpointsRequireScope(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodGet, "/api/v0/devices/", nil, "")
	is.Equal(http.StatusUnauthorized, code)

	code, _ = doRequest(is, mux, http.MethodGet, "/api/v0/devices/",
		withHeaders("Authorization", "Bearer not-an-operator"), "")
	is.Equal(http.StatusUnauthorized, code)

	code, _ = doRequest(is, mux, http.MethodGet, "/api/v0/devices/", asOperator, "")
	is.Equal(http.StatusOK, code)
}

func TestQueryDevicesIsScopedToTheOwner(t *testing.T) {
	is, mux, _ := setupTestAPI(t)

	code, _ := doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asAlice, `{"device_id":"trk0000001"}`)
	is.Equal(http.StatusCreated, code)

	code, _ = doRequest(is, mux, http.MethodPost, "/api/devices/register",
		asBob, `{"device_id":"trk0000002"}`)
	is.Equal(http.StatusCreated, code)

	code, body := doRequest(is, mux, http.MethodGet, "/api/devices/", asAlice, "")
	is.Equal(http.StatusOK, code)

	devices := struct {
		Data []types.Device `json:"data"`
	}{}
	is.NoErr(json.Unmarshal(body, &devices))
	is.Equal(1, len(devices.Data))
	is.Equal("trk0000001", devices.Data[0].DeviceID)
}

func setupTestAPI(t *testing.T) (*is.I, *chi.Mux, *inMemStore) {
	is := is.New(t)
	ctx := context.Background()

	store := newInMemStore()
	msgCtx := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	devices := registry.New(store, msgCtx, nil)
	coordinator := handshake.New(store, devices, msgCtx, time.Hour)
	locations := ingest.New(store, devices, msgCtx, ingest.Config{})

	accounts, err := auth.NewAccountStore(io.NopCloser(strings.NewReader(accountsYaml(is))))
	is.NoErr(err)

	mux, err := RegisterHandlers(ctx, chi.NewRouter(), bytes.NewBufferString(policiesMock), accounts, devices, coordinator, locations)
	is.NoErr(err)

	return is, mux, store
}

func doRequest(is *is.I, mux http.Handler, method, target string, headers map[string]string, body string) (int, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	mux.ServeHTTP(res, req)

	b, err := io.ReadAll(res.Body)
	is.NoErr(err)

	return res.Code, b
}

var asAlice = withHeaders("Authorization", "Basic "+basicCredentials("alice", "tr4cker"))
var asBob = withHeaders("Authorization", "Basic "+basicCredentials("bob", "tr4cker"))
var asOperator = withHeaders("Authorization", "Bearer operator-token")

func withHeaders(kv ...string) map[string]string {
	headers := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		headers[kv[i]] = kv[i+1]
	}
	return headers
}

func basicCredentials(username, password string) string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth(username, password)
	return strings.TrimPrefix(req.Header.Get("Authorization"), "Basic ")
}

func accountsYaml(is *is.I) string {
	hash, err := bcrypt.GenerateFromPassword([]byte("tr4cker"), bcrypt.MinCost)
	is.NoErr(err)

	return fmt.Sprintf(
		"accounts:\n  - username: alice\n    password_hash: %[1]s\n  - username: bob\n    password_hash: %[1]s\n",
		string(hash),
	)
}

const policiesMock string = `
package opentracker.authz

default allow := false

allow := response if {
	input.token == "operator-token"

	response := {
		"scopes": ["operator"],
	}
}
`

// inMemStore is a storage.Store that keeps everything in maps, letting the
// handler tests run the real services end to end without a database.
type inMemStore struct {
	mu sync.Mutex

	devices   map[string]types.Device
	locations map[string][]types.LocationPoint
	tokens    map[string]types.InstructionToken
}

func newInMemStore() *inMemStore {
	return &inMemStore{
		devices:   map[string]types.Device{},
		locations: map[string][]types.LocationPoint{},
		tokens:    map[string]types.InstructionToken{},
	}
}

func conditionsFrom(conditions []storage.ConditionFunc) *storage.Condition {
	c := &storage.Condition{}
	for _, f := range conditions {
		c = f(c)
	}
	return c
}

func (s *inMemStore) Initialize(ctx context.Context) error { return nil }
func (s *inMemStore) Close()                               {}

func (s *inMemStore) AddDevice(ctx context.Context, device types.Device) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.devices[device.DeviceID]; exists {
		return false, nil
	}

	if device.PowerStatus == "" {
		device.PowerStatus = types.PowerStatusOn
	}

	now := time.Now().UTC()
	device.CreatedOn = now
	device.ModifiedOn = now

	s.devices[device.DeviceID] = device
	return true, nil
}

func (s *inMemStore) ClaimDevice(ctx context.Context, deviceID, owner string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, exists := s.devices[deviceID]
	if !exists || device.Owner != "" {
		return false, nil
	}

	device.Owner = owner
	device.ModifiedOn = time.Now().UTC()
	s.devices[deviceID] = device
	return true, nil
}

func (s *inMemStore) GetDevice(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := conditionsFrom(conditions)

	device, exists := s.devices[c.DeviceID]
	if !exists {
		return types.Device{}, storage.ErrNoRows
	}

	return device, nil
}

func (s *inMemStore) QueryDevices(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Device], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := conditionsFrom(conditions)

	matches := []types.Device{}
	for _, device := range s.devices {
		if c.Owner != "" && device.Owner != c.Owner {
			continue
		}
		matches = append(matches, device)
	}

	return types.Collection[types.Device]{
		Data:       matches,
		Count:      uint64(len(matches)),
		TotalCount: uint64(len(matches)),
	}, nil
}

func (s *inMemStore) SetPowerStatus(ctx context.Context, deviceID, powerStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, exists := s.devices[deviceID]
	if !exists {
		return storage.ErrNoRows
	}

	device.PowerStatus = powerStatus
	device.ModifiedOn = time.Now().UTC()
	s.devices[deviceID] = device
	return nil
}

func (s *inMemStore) UpdateSettings(ctx context.Context, deviceID string, settings types.DeviceSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, exists := s.devices[deviceID]
	if !exists {
		return storage.ErrNoRows
	}

	device.Settings = settings
	device.ModifiedOn = time.Now().UTC()
	s.devices[deviceID] = device
	return nil
}

func (s *inMemStore) AppendLocations(ctx context.Context, deviceID string, points []types.LocationPoint, current *types.LocationPoint, powerStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, exists := s.devices[deviceID]
	if !exists {
		return storage.ErrNoRows
	}

	s.locations[deviceID] = append(s.locations[deviceID], points...)

	newest := points[len(points)-1]
	device.LastSeen = newest.Timestamp

	if powerStatus != "" {
		device.PowerStatus = powerStatus
	}

	if current != nil {
		device.Position = &types.DevicePosition{
			DeviceID:  deviceID,
			Name:      device.Name,
			Latitude:  current.Latitude,
			Longitude: current.Longitude,
			Timestamp: current.Timestamp,
		}
	}

	s.devices[deviceID] = device
	return nil
}

func (s *inMemStore) QueryLocations(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.LocationPoint], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := conditionsFrom(conditions)

	stored := s.locations[c.DeviceID]

	// most recent first
	matches := []types.LocationPoint{}
	for i := len(stored) - 1; i >= 0; i-- {
		if !c.Since.IsZero() && stored[i].Timestamp.Before(c.Since) {
			continue
		}
		matches = append(matches, stored[i])
	}

	total := uint64(len(matches))
	if limit := c.Limit(); limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	return types.Collection[types.LocationPoint]{
		Data:       matches,
		Count:      uint64(len(matches)),
		TotalCount: total,
	}, nil
}

func (s *inMemStore) CurrentPositions(ctx context.Context) ([]types.DevicePosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := []types.DevicePosition{}
	for _, device := range s.devices {
		if device.Position != nil {
			positions = append(positions, *device.Position)
		}
	}

	return positions, nil
}

func (s *inMemStore) IssueToken(ctx context.Context, token types.InstructionToken) (types.InstructionToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.tokens[token.DeviceID]; ok && existing.Live(time.Now().UTC()) {
		return existing, nil
	}

	s.tokens[token.DeviceID] = token
	return token, nil
}

func (s *inMemStore) GetLiveToken(ctx context.Context, deviceID string) (types.InstructionToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[deviceID]
	if !ok || token.Consumed {
		return types.InstructionToken{}, storage.ErrNoRows
	}

	return token, nil
}

func (s *inMemStore) ConsumeToken(ctx context.Context, deviceID, token string) (types.InstructionToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tokens[deviceID]
	if !ok || stored.Token != token || stored.Consumed || !stored.Live(time.Now().UTC()) {
		return types.InstructionToken{}, storage.ErrNoRows
	}

	stored.Consumed = true
	s.tokens[deviceID] = stored
	return stored, nil
}

func (s *inMemStore) ExpireTokens(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := int64(0)
	for deviceID, token := range s.tokens {
		if !token.Consumed && token.ExpiresAt.Before(before) {
			delete(s.tokens, deviceID)
			expired++
		}
	}

	return expired, nil
}
