package rng

// Recorder wraps a Source and keeps every draw until Take is called.
// The combat engine uses it to attach the raw draws behind each log entry.
type Recorder struct {
	src   *Source
	draws []float64
}

// NewRecorder wraps src.
//
// Precondition: src must be non-nil.
func NewRecorder(src *Source) *Recorder {
	return &Recorder{src: src}
}

// Next draws from the underlying Source and records the value.
func (r *Recorder) Next() float64 {
	v := r.src.Next()
	r.draws = append(r.draws, v)
	return v
}

// Take returns the draws recorded since the previous Take and clears them.
//
// Postcondition: returns nil when nothing was drawn.
func (r *Recorder) Take() []float64 {
	d := r.draws
	r.draws = nil
	return d
}

// Seed returns the seed of the underlying Source.
func (r *Recorder) Seed() uint32 { return r.src.Seed() }
