package shiftedmi

import (
	"math"
	"testing"

	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
)

// 正弦测试数据: 1000 个点, 步进 0.01 rad
func sinData() []float64 {
	data := make([]float64, 1000)
	value := 0.0
	for i := range data {
		data[i] = math.Sin(value)
		value += 0.01
	}
	return data
}

func argmax(xs []float64) int {
	best := 0
	for i, v := range xs {
		if v > xs[best] {
			best = i
		}
	}
	return best
}

// 自相关信号: lag 0 处最大, 轮廓关于 lag 0 对称
func TestShiftedMISinusoid(t *testing.T) {
	data := sinData()

	result, err := ShiftedMI(-100, 101, 10, 10, -1.0, 1.0, -1.0, 1.0, data, data, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 201 {
		t.Fatalf("len(result) = %d, want 201", len(result))
	}
	if got := argmax(result); got != 100 {
		t.Fatalf("argmax = %d, want 100", got)
	}
	for k := 1; k <= 100; k++ {
		if diff := math.Abs(result[100-k] - result[100+k]); diff > 1e-9 {
			t.Errorf("asymmetry at k=%d: %v vs %v", k, result[100-k], result[100+k])
		}
	}
	for i, v := range result {
		if v < 0 || math.IsNaN(v) {
			t.Errorf("result[%d] = %v, MI must be finite and non-negative", i, v)
		}
	}
}

// 步长 3: 67 个结果, 峰值在下标 33
func TestShiftedMISinusoidStep3(t *testing.T) {
	data := sinData()

	result, err := ShiftedMI(-100, 101, 10, 10, -1.0, 1.0, -1.0, 1.0, data, data, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 67 {
		t.Fatalf("len(result) = %d, want 67", len(result))
	}
	if got := argmax(result); got != 33 {
		t.Fatalf("argmax = %d, want 33", got)
	}
}

func TestShiftedMIValidation(t *testing.T) {
	data := sinData()

	if _, err := ShiftedMI(-100, 101, 10, 10, -1.0, 1.0, -1.0, 1.0, data, data[:999], 1); !errorx.IsCode(err, errCode.LOGIC_ERROR) {
		t.Errorf("size mismatch: want LOGIC_ERROR, got %v", err)
	}
	if _, err := ShiftedMI(100, -100, 10, 10, -1.0, 1.0, -1.0, 1.0, data, data, 1); !errorx.IsCode(err, errCode.LOGIC_ERROR) {
		t.Errorf("shiftFrom>=shiftTo: want LOGIC_ERROR, got %v", err)
	}
	if _, err := ShiftedMI(-100, 1001, 10, 10, -1.0, 1.0, -1.0, 1.0, data, data, 1); !errorx.IsCode(err, errCode.LOGIC_ERROR) {
		t.Errorf("shift exceeds size: want LOGIC_ERROR, got %v", err)
	}
	if _, err := ShiftedMI(-1000, 101, 10, 10, -1.0, 1.0, -1.0, 1.0, data, data, 1); !errorx.IsCode(err, errCode.LOGIC_ERROR) {
		t.Errorf("negative shift exceeds size: want LOGIC_ERROR, got %v", err)
	}
	if _, err := ShiftedMI(-100, 101, 0, 10, -1.0, 1.0, -1.0, 1.0, data, data, 1); !errorx.IsCode(err, errCode.INVALID_VALUE) {
		t.Errorf("binsX<1: want INVALID_VALUE, got %v", err)
	}
	if _, err := ShiftedMI(-100, 101, 10, 10, 1.0, -1.0, -1.0, 1.0, data, data, 1); !errorx.IsCode(err, errCode.LOGIC_ERROR) {
		t.Errorf("minX>=maxX: want LOGIC_ERROR, got %v", err)
	}
	if _, err := ShiftedMI(-100, 101, 10, 10, -1.0, 1.0, -1.0, 1.0, data, data, 0); !errorx.IsCode(err, errCode.INVALID_VALUE) {
		t.Errorf("shiftStep<1: want INVALID_VALUE, got %v", err)
	}
}

func TestSliceByShift(t *testing.T) {
	xs := []int{0, 1, 2, 3, 4}
	ys := []int{5, 6, 7, 8, 9}

	gotX, gotY := sliceByShift(xs, ys, 2)
	if len(gotX) != 3 || gotX[0] != 2 || gotY[0] != 5 || gotY[2] != 7 {
		t.Errorf("s=2: got %v, %v", gotX, gotY)
	}

	gotX, gotY = sliceByShift(xs, ys, -2)
	if len(gotX) != 3 || gotX[0] != 0 || gotX[2] != 2 || gotY[0] != 7 {
		t.Errorf("s=-2: got %v, %v", gotX, gotY)
	}

	gotX, gotY = sliceByShift(xs, ys, 0)
	if len(gotX) != 5 || len(gotY) != 5 {
		t.Errorf("s=0: got %v, %v", gotX, gotY)
	}
}
