package handshake

import (
	"encoding/json"
	"time"
)

type InstructionIssued struct {
	DeviceID    string    `json:"device_id"`
	Instruction string    `json:"instruction"`
	Token       string    `json:"token"`
	Timestamp   time.Time `json:"timestamp"`
}

func (i *InstructionIssued) ContentType() string {
	return "application/json"
}
func (i *InstructionIssued) TopicName() string {
	return "device.instructionIssued"
}
func (i *InstructionIssued) Body() []byte {
	b, _ := json.Marshal(i)
	return b
}

type InstructionAcknowledged struct {
	DeviceID    string    `json:"device_id"`
	Instruction string    `json:"instruction"`
	Token       string    `json:"token"`
	Timestamp   time.Time `json:"timestamp"`
}

func (i *InstructionAcknowledged) ContentType() string {
	return "application/json"
}
func (i *InstructionAcknowledged) TopicName() string {
	return "device.instructionAcknowledged"
}
func (i *InstructionAcknowledged) Body() []byte {
	b, _ := json.Marshal(i)
	return b
}
