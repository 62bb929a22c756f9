package messages

// PoseFrame is one tracking frame as sent by a pose bridge over a websocket.
// T is the capture time in milliseconds.
type PoseFrame struct {
	T     int64         `json:"t"`
	Hands []HandMessage `json:"hands"`
}

// HandMessage is one detected hand. Landmarks holds 21 points.
type HandMessage struct {
	Handedness string            `json:"handedness,omitempty"`
	Landmarks  []LandmarkMessage `json:"landmarks"`
}

type LandmarkMessage struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
