package params

// Reader wraps a View for build code: the first failed read is kept and
// later reads return zero values, so a build can read all of its parameters
// and check Err once.
type Reader struct {
	v   *View
	err error
}

// Reader returns a sticky-error reader over v.
func (v *View) Reader() *Reader { return &Reader{v: v} }

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

func (r *Reader) Float(path string) float64 {
	if r.err != nil {
		return 0
	}
	f, err := r.v.Float(path)
	r.err = err
	return f
}

func (r *Reader) Int(path string) int {
	if r.err != nil {
		return 0
	}
	i, err := r.v.Int(path)
	r.err = err
	return i
}

func (r *Reader) String(path string) string {
	if r.err != nil {
		return ""
	}
	s, err := r.v.String(path)
	r.err = err
	return s
}

func (r *Reader) Bool(path string) bool {
	if r.err != nil {
		return false
	}
	b, err := r.v.Bool(path)
	r.err = err
	return b
}

func (r *Reader) Number(path string) float64 {
	if r.err != nil {
		return 0
	}
	f, err := r.v.Number(path)
	r.err = err
	return f
}
