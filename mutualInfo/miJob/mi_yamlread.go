package miJob

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"mutualinfo/infra/errorx"
	"mutualinfo/infra/errorx/errCode"
)

// Config 分析任务参数
type Config struct {
	BinsX     int     `yaml:"binsx"`
	BinsY     int     `yaml:"binsy"`
	MinX      float64 `yaml:"minx"`
	MaxX      float64 `yaml:"maxx"`
	MinY      float64 `yaml:"miny"`
	MaxY      float64 `yaml:"maxy"`
	ShiftFrom int     `yaml:"shiftfrom"`
	ShiftTo   int     `yaml:"shiftto"`
	ShiftStep int     `yaml:"shiftstep"`
	Bootstrap bool    `yaml:"bootstrap"`
	NrSamples int     `yaml:"nrsamples"`
	Seed      int64   `yaml:"seed"`
}

// 用 atomic.Value 存当前配置, 支持热更新时无锁读取
var cfgValue atomic.Value // stores *Config

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if c.ShiftStep == 0 {
		c.ShiftStep = 1
	}
	if c.Seed == 0 {
		c.Seed = -1 // 默认时钟种子
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Init(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	cfgValue.Store(c)
	return nil
}

// Defaults 返回 Init 装载的配置, 未初始化时为 nil
func Defaults() *Config {
	cAny := cfgValue.Load()
	if cAny == nil {
		return nil
	}
	return cAny.(*Config)
}

func (c *Config) Validate() error {
	if c.BinsX < 1 || c.BinsY < 1 {
		return errorx.New(errCode.INVALID_VALUE, "there must be at least one bin per axis")
	}
	if c.MinX >= c.MaxX {
		return errorx.New(errCode.LOGIC_ERROR, "minx has to be smaller than maxx")
	}
	if c.MinY >= c.MaxY {
		return errorx.New(errCode.LOGIC_ERROR, "miny has to be smaller than maxy")
	}
	if c.ShiftFrom >= c.ShiftTo {
		return errorx.New(errCode.LOGIC_ERROR, "shiftfrom has to be smaller than shiftto")
	}
	if c.ShiftStep < 1 {
		return errorx.New(errCode.INVALID_VALUE, "shiftstep must be greater or equal 1")
	}
	if c.Bootstrap && c.NrSamples < 1 {
		return errorx.New(errCode.INVALID_VALUE, "nrsamples must be greater or equal 1")
	}
	return nil
}
