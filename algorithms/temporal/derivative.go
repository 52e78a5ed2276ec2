package temporal

// Difference stores the channel to channel difference of in into out. The
// first output keeps in[0], which carries the offset of the signal. out may
// be in. Returns len(in).
func Difference(in, out []float64) int {
	last := 0.0
	for i, next := range in {
		out[i] = next - last
		last = next
	}
	return len(in)
}

// Integral stores the running sum of in into out. It undoes Difference.
// out may be in.
func Integral(in, out []float64) int {
	sum := 0.0
	for i, v := range in {
		sum += v
		out[i] = sum
	}
	return len(in)
}
