package client

import (
	"context"
	"testing"

	test "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

func TestGetDevice(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/trk0000001"),
			expects.RequestMethod("GET"),
			expects.RequestHeaderContains("Authorization", "Bearer testtoken"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(deviceResponse)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	c := newTestClient(ctx, is, mockedService.URL())
	defer c.Close(ctx)

	device, err := c.Device(ctx, "trk0000001")
	is.NoErr(err)
	is.Equal("trk0000001", device.DeviceID)
	is.Equal("alice", device.Owner)
	is.Equal(60, device.Settings.SleepInterval)
}

func TestQueueInstruction(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/trk0000001/instructions"),
			expects.RequestMethod("POST"),
			expects.RequestHeaderContains("Content-Type", "application/json"),
			expects.RequestBodyContaining(`"instruction":"TURN_OFF"`),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(201),
			response.Body([]byte(`{"device_id":"trk0000001","kind":"TURN_OFF","token":"tok-1"}`)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	c := newTestClient(ctx, is, mockedService.URL())
	defer c.Close(ctx)

	token, err := c.QueueInstruction(ctx, "trk0000001", "TURN_OFF")
	is.NoErr(err)
	is.Equal("tok-1", token.Token)
}

func TestCurrentPositions(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/coordinates"),
			expects.RequestMethod("GET"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(`{"data":[{"device_id":"trk0000001","latitude":57.7,"longitude":11.97}]}`)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	c := newTestClient(ctx, is, mockedService.URL())
	defer c.Close(ctx)

	positions, err := c.CurrentPositions(ctx)
	is.NoErr(err)
	is.Equal(1, len(positions))
	is.Equal(57.7, positions[0].Latitude)
}

func TestWorksWithoutTokenEndpoint(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/trk0000001"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(deviceResponse)),
		),
	)
	defer mockedService.Close()

	ctx := context.Background()

	c, err := New(ctx, mockedService.URL(), "", "", "")
	is.NoErr(err)
	defer c.Close(ctx)

	_, err = c.Device(ctx, "trk0000001")
	is.NoErr(err)
}

func newTestClient(ctx context.Context, is *is.I, serviceURL string) DeviceManagementClient {
	mockOAuth := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/token"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(tokenResponse)),
		),
	)

	c, err := New(ctx, serviceURL, mockOAuth.URL()+"/token", "gps-device-mgmt", "")
	is.NoErr(err)

	return c
}

const deviceResponse string = `{"device_id":"trk0000001","owner":"alice","name":"Device trk000","power_status":"ON","settings":{"sleep_interval":60,"send_interval":1,"satellites":5}}`

const tokenResponse string = `{"access_token":"testtoken","expires_in":300,"refresh_expires_in":0,"token_type":"Bearer","not-before-policy":0,"scope":"email profile"}`
