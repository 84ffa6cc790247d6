// 端到端滞后互信息分析任务
// 输入两条对齐的信号, 输出 lag 轮廓与峰值摘要
package miJob

import (
	"github.com/gonum/stat"
	"github.com/sirupsen/logrus"

	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
	"mutualinfo/mutualInfo/shiftedmi"
)

type Result struct {
	Lags    []int     // 每个结果槽对应的 lag
	MI      []float64 // 各 lag 的互信息
	PeakLag int       // MI 最大的 lag
	PeakMI  float64
	MeanMI  float64
}

// Run cfg 为 nil 时退回 Init 装载的默认配置
func Run(cfg *Config, dataX, dataY []float64) (*Result, error) {
	if cfg == nil {
		cfg = Defaults()
		if cfg == nil {
			return nil, errorx.New(errCode.EMPTY_VALUE, "no config given and no defaults initialized")
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Infof("mi job: n=%d lags=[%d,%d) step=%d bootstrap=%v",
		len(dataX), cfg.ShiftFrom, cfg.ShiftTo, cfg.ShiftStep, cfg.Bootstrap)

	var profile []float64
	var err error
	if cfg.Bootstrap {
		if len(dataX) > 0 && len(dataX)%cfg.NrSamples != 0 {
			// n 不被 nrSamples 整除时尾部样本不会参与估计
			logrus.Warnf("mi job: n=%d 不能被 nrsamples=%d 整除, bootstrap 将丢弃尾部样本",
				len(dataX), cfg.NrSamples)
		}
		profile, err = shiftedmi.ShiftedMIWithBootstrapSeed(
			cfg.ShiftFrom, cfg.ShiftTo, cfg.BinsX, cfg.BinsY,
			cfg.MinX, cfg.MaxX, cfg.MinY, cfg.MaxY,
			dataX, dataY, cfg.NrSamples, cfg.ShiftStep, cfg.Seed)
	} else {
		profile, err = shiftedmi.ShiftedMI(
			cfg.ShiftFrom, cfg.ShiftTo, cfg.BinsX, cfg.BinsY,
			cfg.MinX, cfg.MaxX, cfg.MinY, cfg.MaxY,
			dataX, dataY, cfg.ShiftStep)
	}
	if err != nil {
		return nil, err
	}

	lags := make([]int, len(profile))
	peak := 0
	for i := range profile {
		lags[i] = cfg.ShiftFrom + i*cfg.ShiftStep
		if profile[i] > profile[peak] {
			peak = i
		}
	}

	res := &Result{
		Lags:    lags,
		MI:      profile,
		PeakLag: lags[peak],
		PeakMI:  profile[peak],
		MeanMI:  stat.Mean(profile, nil),
	}
	logrus.Infof("mi job: peak lag=%d mi=%.6f mean=%.6f", res.PeakLag, res.PeakMI, res.MeanMI)
	return res, nil
}
