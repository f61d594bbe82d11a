package forecast

// Dates returns the forecast dates as ISO strings.
func (r *Result) Dates() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Date.Format("2006-01-02")
	}
	return out
}

// Points returns the point estimates in order.
func (r *Result) Points() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Point
	}
	return out
}

// Lowers returns the lower bounds in order.
func (r *Result) Lowers() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Lower
	}
	return out
}

// Uppers returns the upper bounds in order.
func (r *Result) Uppers() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Upper
	}
	return out
}

// Total sums the point estimates over the horizon.
func (r *Result) Total() float64 {
	var sum float64
	for _, e := range r.Entries {
		sum += e.Point
	}
	return sum
}

// Mean averages the point estimates; zero for an empty result.
func (r *Result) Mean() float64 {
	if len(r.Entries) == 0 {
		return 0
	}
	return r.Total() / float64(len(r.Entries))
}

// TailMean averages the trailing n point estimates.
func (r *Result) TailMean(n int) float64 {
	if len(r.Entries) == 0 || n <= 0 {
		return 0
	}
	if n > len(r.Entries) {
		n = len(r.Entries)
	}
	tail := r.Entries[len(r.Entries)-n:]
	var sum float64
	for _, e := range tail {
		sum += e.Point
	}
	return sum / float64(len(tail))
}
