// 自助法(bootstrap)互信息估计
// 先从索引序列随机抽样构建一组直方图, 再对这组直方图有放回重采样合并
package shiftedmi

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mutualinfo/histogram/hist2d"
	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
	"mutualinfo/numpy/npDigitize"
)

// BootstrappedMI 输入为已做过单轴映射的索引序列
// 每个直方图抽 n/nrSamples 个样本 (整除, 余数丢弃), rng 为 nil 时用时钟种子
func BootstrappedMI[T npDigitize.Value](indicesX, indicesY []int, binsX, binsY int, minX, maxX, minY, maxY T, nrSamples int, rng *rand.Rand) (float64, error) {
	if len(indicesX) != len(indicesY) {
		return 0, errorx.New(errCode.LOGIC_ERROR, "index sequences must have the same size")
	}
	if len(indicesX) == 0 {
		return 0, errorx.New(errCode.EMPTY_VALUE, "index sequences are empty")
	}
	if nrSamples < 1 {
		return 0, errorx.New(errCode.INVALID_VALUE, "nrSamples must be greater or equal 1")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	n := len(indicesX)
	perHistogram := n / nrSamples
	if rem := n % nrSamples; rem != 0 {
		logrus.Debugf("bootstrapped mi: 尾部 %d 个样本被丢弃 (n=%d, nrSamples=%d)", rem, n, nrSamples)
	}

	// 第一步: 随机抽样构建直方图组
	ensemble := make([]*hist2d.Histogram2D[T], nrSamples)
	for s := 0; s < nrSamples; s++ {
		h, err := hist2d.NewHistogram2D(binsX, binsY, minX, maxX, minY, maxY)
		if err != nil {
			return 0, err
		}
		for i := 0; i < perHistogram; i++ {
			ridx := rng.Intn(n)
			h.IncrementAt(indicesX[ridx], indicesY[ridx])
		}
		ensemble[s] = h
	}

	// 第二步: 对直方图组有放回重采样, 合并到最终直方图
	final, err := hist2d.NewHistogram2D(binsX, binsY, minX, maxX, minY, maxY)
	if err != nil {
		return 0, err
	}
	for i := 0; i < nrSamples; i++ {
		if err := final.Add(ensemble[rng.Intn(nrSamples)]); err != nil {
			return 0, err
		}
	}
	return final.MutualInformation(false), nil
}

// ShiftedMIWithBootstrap 每个 lag 产出一个 bootstrap MI 估计, 时钟种子
func ShiftedMIWithBootstrap[T npDigitize.Value](shiftFrom, shiftTo, binsX, binsY int, minX, maxX, minY, maxY T, dataX, dataY []T, nrSamples, shiftStep int) ([]float64, error) {
	return ShiftedMIWithBootstrapSeed(shiftFrom, shiftTo, binsX, binsY, minX, maxX, minY, maxY, dataX, dataY, nrSamples, shiftStep, -1)
}

// ShiftedMIWithBootstrapSeed 显式注入种子以便复现, seed < 0 时退回时钟种子
// 并行 lag 各自持有独立的 rand 流, 避免共享生成器的数据竞争
func ShiftedMIWithBootstrapSeed[T npDigitize.Value](shiftFrom, shiftTo, binsX, binsY int, minX, maxX, minY, maxY T, dataX, dataY []T, nrSamples, shiftStep int, seed int64) ([]float64, error) {
	if err := checkShiftedMI(len(dataX), len(dataY), shiftFrom, shiftTo, binsX, binsY, minX, maxX, minY, maxY, shiftStep); err != nil {
		return nil, err
	}
	if nrSamples < 1 {
		return nil, errorx.New(errCode.INVALID_VALUE, "nrSamples must be greater or equal 1")
	}
	if seed < 0 {
		seed = time.Now().UnixNano()
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
			xs, ys := sliceByShift(indicesX, indicesY, s)
			rng := rand.New(rand.NewSource(seed + int64(pos)))
			mi, err := BootstrappedMI(xs, ys, binsX, binsY, minX, maxX, minY, maxY, nrSamples, rng)
			if err != nil {
				result[pos] = math.NaN()
				continue
			}
			result[pos] = mi
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
