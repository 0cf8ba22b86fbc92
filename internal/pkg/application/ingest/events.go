package ingest

import (
	"encoding/json"
	"time"
)

type PositionUpdated struct {
	DeviceID  string    `json:"device_id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

func (p *PositionUpdated) ContentType() string {
	return "application/json"
}
func (p *PositionUpdated) TopicName() string {
	return "device.positionUpdated"
}
func (p *PositionUpdated) Body() []byte {
	b, _ := json.Marshal(p)
	return b
}
