package posefeed

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/automoto/handbeat/gesture"
	"github.com/automoto/handbeat/shared/messages"
)

// Decode parses one tracking message. Hands that do not carry exactly 21
// landmarks are dropped.
func Decode(data []byte) ([]gesture.HandFrame, error) {
	var msg messages.PoseFrame
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode pose frame: %w", err)
	}
	return Convert(msg), nil
}

// Convert turns a wire frame into hand frames
func Convert(msg messages.PoseFrame) []gesture.HandFrame {
	if len(msg.Hands) == 0 {
		return nil
	}
	at := time.Duration(msg.T) * time.Millisecond
	out := make([]gesture.HandFrame, 0, len(msg.Hands))
	for i, hand := range msg.Hands {
		if len(hand.Landmarks) != gesture.LandmarkCount {
			log.Printf("Pose feed: dropping hand %d with %d landmarks", i, len(hand.Landmarks))
			continue
		}
		f := gesture.HandFrame{Handedness: hand.Handedness, Timestamp: at}
		for j, lm := range hand.Landmarks {
			f.Landmarks[j] = gesture.Landmark{X: lm.X, Y: lm.Y, Z: lm.Z}
		}
		out = append(out, f)
	}
	return out
}
