// 滞后互信息扫描
// 把 Y 序列相对 X 平移, 每个 lag 重建直方图并计算 MI
// 单轴索引只预计算一次, 各 lag 之间共享只读
package shiftedmi

import (
	"math"
	"runtime"
	"sync"

	"mutualinfo/histogram/hist2d"
	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
	"mutualinfo/numpy/npDigitize"
)

// checkShiftedMI 前置校验, 任何可观察状态改变之前全部完成
func checkShiftedMI[T npDigitize.Value](sizeX, sizeY, shiftFrom, shiftTo, binsX, binsY int, minX, maxX, minY, maxY T, shiftStep int) error {
	if sizeX != sizeY {
		return errorx.New(errCode.LOGIC_ERROR, "dataX and dataY must have the same size")
	}
	if shiftFrom >= shiftTo {
		return errorx.New(errCode.LOGIC_ERROR, "shiftFrom has to be smaller than shiftTo")
	}
	if minX >= maxX {
		return errorx.New(errCode.LOGIC_ERROR, "minX has to be smaller than maxX")
	}
	if minY >= maxY {
		return errorx.New(errCode.LOGIC_ERROR, "minY has to be smaller than maxY")
	}
	if binsX < 1 {
		return errorx.New(errCode.INVALID_VALUE, "there must be at least one binX")
	}
	if binsY < 1 {
		return errorx.New(errCode.INVALID_VALUE, "there must be at least one binY")
	}
	if abs(shiftTo) >= sizeX {
		return errorx.New(errCode.LOGIC_ERROR, "maximum shift does not fit data size")
	}
	if abs(shiftFrom) >= sizeX {
		return errorx.New(errCode.LOGIC_ERROR, "minimum shift does not fit data size")
	}
	if shiftStep < 1 {
		return errorx.New(errCode.INVALID_VALUE, "shiftStep must be greater or equal 1")
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// sliceByShift 按 lag 对齐两条索引序列
// s>0: 去掉 X 前 s 个、Y 后 s 个; s<0 反之; 两侧长度始终相等
func sliceByShift(indicesX, indicesY []int, s int) ([]int, []int) {
	switch {
	case s > 0:
		return indicesX[s:], indicesY[:len(indicesY)-s]
	case s < 0:
		return indicesX[:len(indicesX)+s], indicesY[-s:]
	default:
		return indicesX, indicesY
	}
}

// numShifts lag 区间 [shiftFrom, shiftTo) 按步长覆盖的个数
func numShifts(shiftFrom, shiftTo, shiftStep int) int {
	return (shiftTo - shiftFrom + shiftStep - 1) / shiftStep
}

// ShiftedMI 对每个 lag 计算互信息, 结果下标 = (lag - shiftFrom) / shiftStep
// lag 之间相互独立, 用 worker 池并行, 每个 worker 只写自己的结果槽
func ShiftedMI[T npDigitize.Value](shiftFrom, shiftTo, binsX, binsY int, minX, maxX, minY, maxY T, dataX, dataY []T, shiftStep int) ([]float64, error) {
	if err := checkShiftedMI(len(dataX), len(dataY), shiftFrom, shiftTo, binsX, binsY, minX, maxX, minY, maxY, shiftStep); err != nil {
		return nil, err
	}

	indicesX, err := npDigitize.CalcIndices1DParallel(binsX, minX, maxX, dataX)
	if err != nil {
		return nil, err
	}
	indicesY, err := npDigitize.CalcIndices1DParallel(binsY, minY, maxY, dataY)
	if err != nil {
		return nil, err
	}

	result := make([]float64, numShifts(shiftFrom, shiftTo, shiftStep))

	numWorkers := runtime.NumCPU()
	wg := sync.WaitGroup{}
	tasks := make(chan int, len(result))

	worker := func() {
		defer wg.Done()
		for s := range tasks {
			pos := (s - shiftFrom) / shiftStep
			h, err := hist2d.NewHistogram2D(binsX, binsY, minX, maxX, minY, maxY)
			if err != nil {
				result[pos] = math.NaN()
				continue
			}
			xs, ys := sliceByShift(indicesX, indicesY, s)
			if err := h.IncrementIndicesXY(xs, ys); err != nil {
				result[pos] = math.NaN()
				continue
			}
			result[pos] = h.MutualInformation(false)
		}
	}

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go worker()
	}

	for s := shiftFrom; s < shiftTo; s += shiftStep {
		tasks <- s
	}
	close(tasks)
	wg.Wait()

	return result, nil
}
