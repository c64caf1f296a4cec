package common

// WipeByteArray zeroes a byte slice in place. Used to scrub passwords
// after they have been handed off.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
