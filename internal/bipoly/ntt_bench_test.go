package bipoly

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// randGrid fills a xSize*ySize row-major grid with small deterministic
// values, standing in for the original benchmark suite's
// ScalarCfg::generate_random (original_source/.../benches/benchmarks.rs).
func randGrid(xSize, ySize int) []fr.Element {
	out := make([]fr.Element, xSize*ySize)
	for i := range out {
		out[i].SetInt64(int64(i%97 + 1))
	}
	return out
}

func benchmarkROURoundTrip(b *testing.B, xSize, ySize int) {
	evals := randGrid(xSize, ySize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := FromROUEvals(evals, xSize, ySize, nil, nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = p.ToROUEvals(nil, nil)
	}
}

func BenchmarkROURoundTrip64(b *testing.B)  { benchmarkROURoundTrip(b, 64, 64) }
func BenchmarkROURoundTrip128(b *testing.B) { benchmarkROURoundTrip(b, 128, 128) }
func BenchmarkROURoundTrip256(b *testing.B) { benchmarkROURoundTrip(b, 256, 256) }
