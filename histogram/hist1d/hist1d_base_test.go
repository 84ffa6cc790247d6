package hist1d

import (
	"math"
	"testing"

	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
)

func TestCalculateAndCount(t *testing.T) {
	h, err := NewHistogram1D(4, 0.0, 4.0)
	if err != nil {
		t.Fatal(err)
	}

	h.Calculate([]float64{0.5, 1.5, 2.5, 3.5, 4.0, -1.0, 5.0})
	// 越界的 -1.0 和 5.0 被丢弃, 4.0 == max 归入末箱
	if h.Count() != 5 {
		t.Fatalf("count = %d, want 5", h.Count())
	}

	counts := h.Counts()
	want := []float64{1, 1, 1, 2}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %v, want %v", i, counts[i], want[i])
		}
	}
}

// 均匀分布的熵 = ln(bins)
func TestEntropyUniform(t *testing.T) {
	h, err := NewHistogram1D(4, 0.0, 4.0)
	if err != nil {
		t.Fatal(err)
	}
	h.Calculate([]float64{0.5, 1.5, 2.5, 3.5})

	if got, want := h.Entropy(), math.Log(4); math.Abs(got-want) > 1e-12 {
		t.Errorf("entropy = %v, want %v", got, want)
	}
}

func TestEntropyEmpty(t *testing.T) {
	h, err := NewHistogram1D(4, 0.0, 4.0)
	if err != nil {
		t.Fatal(err)
	}
	if h.Entropy() != 0 {
		t.Errorf("empty entropy = %v, want 0", h.Entropy())
	}
}

func TestFromCounts(t *testing.T) {
	h := FromCounts(0.0, 1.0, []float64{2, 2})
	if h == nil {
		t.Fatal("FromCounts returned nil for valid input")
	}
	if h.Count() != 4 || h.Bins() != 2 {
		t.Fatalf("count=%d bins=%d, want 4, 2", h.Count(), h.Bins())
	}
	if got, want := h.Entropy(), math.Log(2); math.Abs(got-want) > 1e-12 {
		t.Errorf("entropy = %v, want %v", got, want)
	}

	if FromCounts(1.0, 0.0, []float64{1}) != nil {
		t.Error("FromCounts should return nil for min >= max")
	}
	if FromCounts(0.0, 1.0, nil) != nil {
		t.Error("FromCounts should return nil for empty counts")
	}
}

func TestConstructorErrors(t *testing.T) {
	if _, err := NewHistogram1D(0, 0.0, 1.0); !errorx.IsCode(err, errCode.INVALID_VALUE) {
		t.Errorf("bins<1: want INVALID_VALUE, got %v", err)
	}
	if _, err := NewHistogram1D(4, 1.0, 1.0); !errorx.IsCode(err, errCode.LOGIC_ERROR) {
		t.Errorf("min>=max: want LOGIC_ERROR, got %v", err)
	}
}
