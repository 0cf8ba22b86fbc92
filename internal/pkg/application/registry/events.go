package registry

import (
	"encoding/json"
	"time"
)

type DeviceRegistered struct {
	DeviceID  string    `json:"device_id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func (d *DeviceRegistered) ContentType() string {
	return "application/json"
}
func (d *DeviceRegistered) TopicName() string {
	return "device.registered"
}
func (d *DeviceRegistered) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}
