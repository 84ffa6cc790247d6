// 仿 np.digitize 的线性分箱索引计算
// 单轴: [min,max) 半开区间, v == max 归入最后一个箱
// 双轴: 两轴同时按闭区间 [min,max] 判定, 任一越界则整对标记哨兵
// 注意两条路径的边界约定不同, 是刻意保留的
package npDigitize

import (
	"math"
	"runtime"
	"sync"

	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
)

// OUT_OF_RANGE 越界哨兵值
const OUT_OF_RANGE = math.MaxInt

// Value 可分箱的数值类型
type Value interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

type IndexPair struct {
	First  int
	Second int
}

// IndexOf 单值单轴索引, 调用方保证 bins >= 1 且 min < max
func IndexOf[T Value](bins int, min, max, v T) int {
	if v >= min && v < max {
		index := int(float64(v-min) / float64(max-min) * float64(bins))
		if index == bins { // 浮点舍入可能顶到上界
			index = bins - 1
		}
		return index
	}
	if v == max {
		return bins - 1
	}
	return OUT_OF_RANGE
}

func CalcIndices1D[T Value](bins int, min, max T, data []T) ([]int, error) {
	if min >= max {
		return nil, errorx.New(errCode.LOGIC_ERROR, "min has to be smaller than max")
	}
	if bins < 1 {
		return nil, errorx.New(errCode.INVALID_VALUE, "there must be at least one bin")
	}

	result := make([]int, len(data))
	for i, v := range data {
		result[i] = IndexOf(bins, min, max, v)
	}
	return result, nil
}

// CalcIndices1DParallel 与串行版结果一致, 逐元素无依赖, 按块并行
func CalcIndices1DParallel[T Value](bins int, min, max T, data []T) ([]int, error) {
	if min >= max {
		return nil, errorx.New(errCode.LOGIC_ERROR, "min has to be smaller than max")
	}
	if bins < 1 {
		return nil, errorx.New(errCode.INVALID_VALUE, "there must be at least one bin")
	}

	result := make([]int, len(data))
	numWorkers := runtime.NumCPU()
	chunk := (len(data) + numWorkers - 1) / numWorkers

	wg := sync.WaitGroup{}
	for w := 0; w < numWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(data) {
			hi = len(data)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				result[i] = IndexOf(bins, min, max, data[i])
			}
		}(lo, hi)
	}
	wg.Wait()
	return result, nil
}

func CalcIndices2D[T Value](binsX, binsY int, minX, maxX, minY, maxY T, dataX, dataY []T) ([]IndexPair, error) {
	if minX >= maxX {
		return nil, errorx.New(errCode.LOGIC_ERROR, "minX has to be smaller than maxX")
	}
	if minY >= maxY {
		return nil, errorx.New(errCode.LOGIC_ERROR, "minY has to be smaller than maxY")
	}
	if binsX < 1 {
		return nil, errorx.New(errCode.INVALID_VALUE, "there must be at least one binX")
	}
	if binsY < 1 {
		return nil, errorx.New(errCode.INVALID_VALUE, "there must be at least one binY")
	}
	if len(dataX) != len(dataY) {
		return nil, errorx.New(errCode.LOGIC_ERROR, "dataX and dataY must have the same size")
	}

	result := make([]IndexPair, len(dataX))
	for i := range dataX {
		x := dataX[i]
		y := dataY[i]
		if x >= minX && x <= maxX && y >= minY && y <= maxY {
			result[i] = IndexPair{
				First:  axisIndex(binsX, minX, maxX, x),
				Second: axisIndex(binsY, minY, maxY, y),
			}
		} else {
			result[i] = IndexPair{First: OUT_OF_RANGE, Second: OUT_OF_RANGE}
		}
	}
	return result, nil
}

// axisIndex 闭区间内的单轴索引, v 已确认落在 [min,max] 内
func axisIndex[T Value](bins int, min, max, v T) int {
	if v == max {
		return bins - 1
	}
	index := int(float64(v-min) / float64(max-min) * float64(bins))
	if index == bins {
		index = bins - 1
	}
	return index
}
