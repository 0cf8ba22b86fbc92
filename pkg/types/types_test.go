package types

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestValidatePoint(t *testing.T) {
	is := is.New(t)

	p := LocationPoint{DeviceID: "0123855789", Latitude: 50.08804, Longitude: 14.42076, Speed: f(0), Altitude: f(200), Accuracy: f(1.0), Satellites: i(10)}
	is.NoErr(p.Validate())

	bad := []LocationPoint{
		{Latitude: 181, Longitude: 0},
		{Latitude: -90.5, Longitude: 0},
		{Latitude: 0, Longitude: 180.1},
		{Latitude: 0, Longitude: 0, Speed: f(-1)},
		{Latitude: 0, Longitude: 0, Altitude: f(10001)},
		{Latitude: 0, Longitude: 0, Accuracy: f(100.5)},
		{Latitude: 0, Longitude: 0, Satellites: i(51)},
	}

	for _, p := range bad {
		is.True(p.Validate() != nil)
	}
}

func TestSettingsBounds(t *testing.T) {
	is := is.New(t)

	is.True(DeviceSettings{SleepInterval: 120, SendInterval: 1, Satellites: 5}.Valid())
	is.True(!DeviceSettings{SleepInterval: 0, SendInterval: 1}.Valid())
	is.True(!DeviceSettings{SleepInterval: 3601, SendInterval: 1}.Valid())
	is.True(!DeviceSettings{SleepInterval: -1, SendInterval: 1}.Valid())
	is.True(!DeviceSettings{SleepInterval: 60, SendInterval: 0}.Valid())
	is.True(!DeviceSettings{SleepInterval: 60, SendInterval: 1, Satellites: 51}.Valid())
}

func TestTokenLiveness(t *testing.T) {
	is := is.New(t)

	now := time.Now()
	tok := InstructionToken{Token: "t", Kind: InstructionTurnOff, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}

	is.True(tok.Live(now))
	is.True(!tok.Live(now.Add(2 * time.Hour)))

	tok.Consumed = true
	is.True(!tok.Live(now))
}
