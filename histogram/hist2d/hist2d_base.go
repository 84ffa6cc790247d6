// 二维联合直方图累加器
// 懒计算并缓存边际直方图与互信息, 仅在 force 时重算
// 单一持有者语义: 并发场景下每个 worker 持有自己的实例, 内部不加锁
package hist2d

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"mutualinfo/histogram/hist1d"
	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
	"mutualinfo/numpy/npDigitize"
)

type Histogram2D[T npDigitize.Value] struct {
	binsX int
	binsY int
	minX  T
	maxX  T
	minY  T
	maxY  T
	grid  *mat.Dense // binsX x binsY 计数网格
	count int        // 成功插入的样本对总数

	// 懒计算缓存
	margX      *hist1d.Histogram1D[T]
	margY      *hist1d.Histogram1D[T]
	mi         float64
	miComputed bool
}

func NewHistogram2D[T npDigitize.Value](binsX, binsY int, minX, maxX, minY, maxY T) (*Histogram2D[T], error) {
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
	return &Histogram2D[T]{
		binsX: binsX,
		binsY: binsY,
		minX:  minX,
		maxX:  maxX,
		minY:  minY,
		maxY:  maxY,
		grid:  mat.NewDense(binsX, binsY, nil),
	}, nil
}

// Increment 按原始值插入, 两轴同时按闭区间 [min,max] 判定, 越界静默丢弃
func (h *Histogram2D[T]) Increment(x, y T) {
	if x < h.minX || x > h.maxX || y < h.minY || y > h.maxY {
		return
	}
	ix := npDigitize.IndexOf(h.binsX, h.minX, h.maxX, x)
	iy := npDigitize.IndexOf(h.binsY, h.minY, h.maxY, y)
	h.grid.Set(ix, iy, h.grid.At(ix, iy)+1)
	h.count++
}

// IncrementAt 按索引直接插入, 越界(含哨兵)跳过
func (h *Histogram2D[T]) IncrementAt(ix, iy int) {
	if ix < 0 || ix >= h.binsX || iy < 0 || iy >= h.binsY {
		return
	}
	h.grid.Set(ix, iy, h.grid.At(ix, iy)+1)
	h.count++
}

// IncrementIndices 批量插入联合索引对
func (h *Histogram2D[T]) IncrementIndices(pairs []npDigitize.IndexPair) {
	for _, p := range pairs {
		h.IncrementAt(p.First, p.Second)
	}
}

// IncrementIndicesXY 批量插入两条独立映射的单轴索引序列
func (h *Histogram2D[T]) IncrementIndicesXY(indicesX, indicesY []int) error {
	if len(indicesX) != len(indicesY) {
		return errorx.New(errCode.LOGIC_ERROR, "index sequences must have the same size")
	}
	for i := range indicesX {
		h.IncrementAt(indicesX[i], indicesY[i])
	}
	return nil
}

// Add 合并另一个同形状直方图, 只校验 bins, 不要求边界一致
func (h *Histogram2D[T]) Add(other *Histogram2D[T]) error {
	if h.binsX != other.binsX || h.binsY != other.binsY {
		return errorx.Newf(errCode.SHAPE_MISMATCH,
			"histograms have different shapes: %dx%d vs %dx%d", h.binsX, h.binsY, other.binsX, other.binsY)
	}
	h.grid.Add(h.grid, other.grid)
	h.count += other.count
	return nil
}

func (h *Histogram2D[T]) BinsX() int { return h.binsX }
func (h *Histogram2D[T]) BinsY() int { return h.binsY }
func (h *Histogram2D[T]) MinX() T    { return h.minX }
func (h *Histogram2D[T]) MaxX() T    { return h.maxX }
func (h *Histogram2D[T]) MinY() T    { return h.minY }
func (h *Histogram2D[T]) MaxY() T    { return h.maxY }
func (h *Histogram2D[T]) Count() int { return h.count }

// At 返回 (ix, iy) 处的计数
func (h *Histogram2D[T]) At(ix, iy int) float64 {
	return h.grid.At(ix, iy)
}

// Reduce1D 行/列求和得到两个边际直方图, 懒计算并缓存
func (h *Histogram2D[T]) Reduce1D(force bool) (*hist1d.Histogram1D[T], *hist1d.Histogram1D[T]) {
	if h.margX == nil || h.margY == nil || force {
		rows := make([]float64, h.binsX)
		for i := 0; i < h.binsX; i++ {
			rows[i] = floats.Sum(h.grid.RawRowView(i))
		}
		cols := make([]float64, h.binsY)
		for j := 0; j < h.binsY; j++ {
			cols[j] = floats.Sum(mat.Col(nil, j, h.grid))
		}
		h.margX = hist1d.FromCounts(h.minX, h.maxX, rows)
		h.margY = hist1d.FromCounts(h.minY, h.maxY, cols)
	}
	return h.margX, h.margY
}

// MutualInformation MI = H(X) + H(Y) - H(X,Y), 懒计算并缓存
// 空直方图约定为 0; 浮点舍入产生的微小负值截断到 0
func (h *Histogram2D[T]) MutualInformation(force bool) float64 {
	if h.miComputed && !force {
		return h.mi
	}
	h.miComputed = true
	if h.count == 0 {
		h.mi = 0
		return h.mi
	}

	margX, margY := h.Reduce1D(force)

	joint := make([]float64, 0, h.binsX*h.binsY)
	total := float64(h.count)
	for i := 0; i < h.binsX; i++ {
		for j := 0; j < h.binsY; j++ {
			joint = append(joint, h.grid.At(i, j)/total)
		}
	}
	hxy := stat.Entropy(joint)

	mi := margX.Entropy() + margY.Entropy() - hxy
	if mi < 0 {
		mi = 0
	}
	h.mi = mi
	return h.mi
}
