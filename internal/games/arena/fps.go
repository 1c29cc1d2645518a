package arena

// fpsSamples is how many frame times the meter averages over.
const fpsSamples = 30

// fpsMeter averages the frame rate over the most recent frames.
type fpsMeter struct {
	samples [fpsSamples]float64
	n, next int
}

func (m *fpsMeter) add(dt float64) {
	if dt <= 0 {
		return
	}
	m.samples[m.next] = dt
	m.next = (m.next + 1) % fpsSamples
	if m.n < fpsSamples {
		m.n++
	}
}

// rate returns frames per second, or 0 before the first sample.
func (m *fpsMeter) rate() float64 {
	var sum float64
	for i := 0; i < m.n; i++ {
		sum += m.samples[i]
	}
	if sum <= 0 {
		return 0
	}
	return float64(m.n) / sum
}
