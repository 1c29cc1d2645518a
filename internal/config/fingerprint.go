package config

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the collision-relevant layout of the level: every
// body's kind, position, shape and ghost flag, in spawn order. Names and the
// title are excluded so renaming a level keeps its stored runs comparable.
func (l Level) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}

	for _, b := range l.Bodies {
		_, _ = d.WriteString(b.Kind)
		_, _ = d.Write([]byte{0})
		writeFloat(b.Position.X)
		writeFloat(b.Position.Y)
		writeFloat(b.Box.X)
		writeFloat(b.Box.Y)
		writeFloat(b.Radius)
		if b.Ghost {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
	}
	return d.Sum64()
}

// FingerprintHex returns Fingerprint as 16 hex digits.
func (l Level) FingerprintHex() string {
	return fmt.Sprintf("%016x", l.Fingerprint())
}
