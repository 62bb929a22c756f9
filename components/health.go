package components

import "github.com/yohamta/donburi"

type HealthData struct {
	Current int
	Max     int
}

// Alive reports whether there is health left
func (h *HealthData) Alive() bool {
	return h.Current > 0
}

// Take subtracts amount, never going below zero, and returns what is left
func (h *HealthData) Take(amount int) int {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current
}

var Health = donburi.NewComponentType[HealthData]()
