// 固定分箱边界的一维直方图, 提供总计数与香农熵
package hist1d

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
	"mutualinfo/numpy/npDigitize"
)

type Histogram1D[T npDigitize.Value] struct {
	bins   int
	min    T
	max    T
	counts []float64
	count  int
}

func NewHistogram1D[T npDigitize.Value](bins int, min, max T) (*Histogram1D[T], error) {
	if min >= max {
		return nil, errorx.New(errCode.LOGIC_ERROR, "min has to be smaller than max")
	}
	if bins < 1 {
		return nil, errorx.New(errCode.INVALID_VALUE, "there must be at least one bin")
	}
	return &Histogram1D[T]{
		bins:   bins,
		min:    min,
		max:    max,
		counts: make([]float64, bins),
	}, nil
}

// FromCounts 从已有的计数行构建, 供边际归约使用; 入参非法时返回 nil
func FromCounts[T npDigitize.Value](min, max T, counts []float64) *Histogram1D[T] {
	if len(counts) == 0 || min >= max {
		return nil
	}
	c := make([]float64, len(counts))
	copy(c, counts)
	return &Histogram1D[T]{
		bins:   len(counts),
		min:    min,
		max:    max,
		counts: c,
		count:  int(floats.Sum(c)),
	}
}

// Calculate 逐值插入整个序列
func (h *Histogram1D[T]) Calculate(data []T) {
	for _, v := range data {
		h.Increment(v)
	}
}

// Increment 越界值直接忽略, 不算错误
func (h *Histogram1D[T]) Increment(v T) {
	index := npDigitize.IndexOf(h.bins, h.min, h.max, v)
	if index == npDigitize.OUT_OF_RANGE {
		return
	}
	h.counts[index]++
	h.count++
}

func (h *Histogram1D[T]) Bins() int {
	return h.bins
}

func (h *Histogram1D[T]) Min() T {
	return h.min
}

func (h *Histogram1D[T]) Max() T {
	return h.max
}

// Counts 返回各箱计数的拷贝
func (h *Histogram1D[T]) Counts() []float64 {
	c := make([]float64, len(h.counts))
	copy(c, h.counts)
	return c
}

func (h *Histogram1D[T]) Count() int {
	return h.count
}

// Entropy 归一化分布的香农熵 (自然对数), 空直方图为 0
func (h *Histogram1D[T]) Entropy() float64 {
	if h.count == 0 {
		return 0
	}
	p := make([]float64, len(h.counts))
	total := float64(h.count)
	for i, c := range h.counts {
		p[i] = c / total
	}
	return stat.Entropy(p)
}
