package session

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the wire form of a command: {"type": "...", "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var commandDecoders = map[string]func(json.RawMessage) (Command, error){
	CmdStartWorkout:          decodeInto[StartWorkout],
	CmdEndWorkout:            decodeInto[EndWorkout],
	CmdClearWorkout:          decodeInto[ClearWorkout],
	CmdAddExercise:           decodeInto[AddExercise],
	CmdAddSet:                decodeInto[AddSet],
	CmdAddCardioSet:          decodeInto[AddCardioSet],
	CmdUpdateSet:             decodeInto[UpdateSet],
	CmdUpdateCardioSet:       decodeInto[UpdateCardioSet],
	CmdDeleteSet:             decodeInto[DeleteSet],
	CmdCompleteSet:           decodeInto[CompleteSet],
	CmdUpdateEquipment:       decodeInto[UpdateEquipment],
	CmdUpdateVariation:       decodeInto[UpdateVariation],
	CmdDeleteWorkoutExercise: decodeInto[DeleteWorkoutExercise],
	CmdUpdateSessionFocus:    decodeInto[UpdateSessionFocus],
	CmdUpdateNotes:           decodeInto[UpdateNotes],
}

func DecodeCommand(data []byte) (Command, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal command envelope: %w", err)
	}
	return env.Command()
}

func (e Envelope) Command() (Command, error) {
	decode, ok := commandDecoders[e.Type]
	if !ok {
		return nil, fmt.Errorf("unknown command type [%s]: %w", e.Type, ErrInvalidCommand)
	}
	return decode(e.Payload)
}

func EncodeCommand(cmd Command) ([]byte, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", cmd.Name(), err)
	}
	return json.Marshal(Envelope{Type: cmd.Name(), Payload: payload})
}

func decodeInto[C Command](payload json.RawMessage) (Command, error) {
	var cmd C
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return cmd, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		return nil, fmt.Errorf("decode %s payload: %v: %w", cmd.Name(), err, ErrInvalidCommand)
	}
	return cmd, nil
}
