package pesel

import (
	"crypto/rand"
	"math/big"
)

// Random returns one random identifier with a birth date inside span.
// The serial is drawn from the full [0, 9999] space and Encode applies
// the usual parity rules, so with Sex Both either sex can come out.
func Random(span Span) (string, error) {
	if err := span.Validate(); err != nil {
		return "", err
	}
	day := span.Start.AddDays(randIntn(span.Days()))
	return Encode(day, randIntn(serialsPerDay), span.Sex), nil
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
