package mathx

import "testing"

func TestRoundDiv(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{10, 4, 3},
		{9, 4, 2},
		{16_000_000, 800_000, 20},
		{7, 0, 0},
	}
	for _, c := range cases {
		if got := RoundDiv(c.a, c.b); got != c.want {
			t.Fatalf("RoundDiv(%d,%d)=%d want %d", c.a, c.b, got, c.want)
		}
	}
}
