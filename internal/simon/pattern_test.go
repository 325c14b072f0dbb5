package simon

import (
	"testing"
	"time"
)

func TestGeneratePatternSeed42(t *testing.T) {
	got := GeneratePattern(42, 5)
	expected := []int{2, 4, 5, 1, 4}

	if len(got) != len(expected) {
		t.Fatalf("len = %d, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("GeneratePattern(42, 5) = %v, expected %v", got, expected)
			break
		}
	}
}

func TestGeneratePatternDeterministic(t *testing.T) {
	seeds := []int64{0, 1, 42, 99, -3, 1349823412345, time.Now().UnixMilli()}

	for _, seed := range seeds {
		for _, levelMax := range []int{1, 5, 100, 700} {
			a := GeneratePattern(seed, levelMax)
			b := GeneratePattern(seed, levelMax)
			if len(a) != levelMax || len(b) != levelMax {
				t.Fatalf("GeneratePattern(%d, %d) length %d/%d", seed, levelMax, len(a), len(b))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("GeneratePattern(%d, %d) differs at %d", seed, levelMax, i)
				}
				if a[i] < 0 || a[i] > 5 {
					t.Fatalf("GeneratePattern(%d, %d)[%d] = %d out of range", seed, levelMax, i, a[i])
				}
			}
		}
	}
}

func TestGeneratePatternPrefixStable(t *testing.T) {
	// A longer cap only appends moves; the shared prefix is identical.
	short := GeneratePattern(99, 10)
	long := GeneratePattern(99, 100)
	for i := range short {
		if short[i] != long[i] {
			t.Fatalf("prefix differs at %d", i)
		}
	}
}

func TestGeneratePatternEmpty(t *testing.T) {
	if got := GeneratePattern(42, 0); len(got) != 0 {
		t.Errorf("GeneratePattern(42, 0) = %v, expected empty", got)
	}
	if got := GeneratePattern(42, -1); len(got) != 0 {
		t.Errorf("GeneratePattern(42, -1) = %v, expected empty", got)
	}
}
