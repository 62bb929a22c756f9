package beat

// RollingWindow is a fixed-capacity ring of recent amplitudes
type RollingWindow struct {
	samples []float64
	next    int
	count   int
	sum     float64
}

// NewRollingWindow creates a window holding at most size samples
func NewRollingWindow(size int) *RollingWindow {
	if size < 1 {
		size = 1
	}
	return &RollingWindow{samples: make([]float64, size)}
}

// Push adds a sample, evicting the oldest once the window is full
func (w *RollingWindow) Push(v float64) {
	if w.count == len(w.samples) {
		w.sum -= w.samples[w.next]
	} else {
		w.count++
	}
	w.samples[w.next] = v
	w.sum += v
	w.next = (w.next + 1) % len(w.samples)
}

// Mean averages whatever samples the window holds. An empty window is 0.
func (w *RollingWindow) Mean() float64 {
	if w.count == 0 {
		return 0
	}
	return w.sum / float64(w.count)
}

func (w *RollingWindow) Len() int {
	return w.count
}

func (w *RollingWindow) Cap() int {
	return len(w.samples)
}

func (w *RollingWindow) Reset() {
	for i := range w.samples {
		w.samples[i] = 0
	}
	w.next, w.count, w.sum = 0, 0, 0
}
