// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package support

import "testing"

func TestNextPowerOfTwo(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1023, 1024},
		{1024, 1024},
		{1025, 2048},
	}

	for _, c := range cases {
		if got := NextPowerOfTwo(c.in); got != c.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNextPowerOfTwoSaturatesOnOverflow(t *testing.T) {
	const huge = uint64(1) << 63
	if got := NextPowerOfTwo(huge + 1); got != huge {
		t.Errorf("NextPowerOfTwo(2^63+1) = %d, want saturated %d", got, huge)
	}
}
