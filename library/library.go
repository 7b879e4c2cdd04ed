// Package library 提供内置的参数化组件。
package library

import (
	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/geometry"
	"github.com/ByLCY/lithos/options"
	"github.com/ByLCY/lithos/params"
)

// Default 返回注册了全部内置组件的类型表。
func Default() *component.Registry {
	r := component.NewRegistry()
	mustRegister(r, "NSquareSpiral", func() component.Component { return NSquareSpiral{} })
	mustRegister(r, "Rectangle", func() component.Component { return Rectangle{} })
	return r
}

func mustRegister(r *component.Registry, name string, f component.Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// placementDefaults 是所有内置组件共享的放置与制造参数。chip 留空时由宿主的
// 默认芯片决定。
func placementDefaults() []options.Pair {
	return []options.Pair{
		options.P("pos_x", "0um"),
		options.P("pos_y", "0um"),
		options.P("rotation", "0"),
		options.P("subtract", "False"),
		options.P("helper", "False"),
		options.P("chip", ""),
		options.P("layer", "1"),
	}
}

// readPlacement 读取放置变换与元数据。rotation 是角度（度），不接受长度单位。
func readPlacement(ctx *component.BuildContext, r *params.Reader) (geometry.Transform, geometry.Metadata, error) {
	t := geometry.Placement(r.Number("rotation"), r.Float("pos_x"), r.Float("pos_y"))
	meta := geometry.Metadata{
		Layer:    r.Int("layer"),
		Subtract: r.Bool("subtract"),
		Helper:   r.Bool("helper"),
	}
	if err := r.Err(); err != nil {
		return t, meta, err
	}
	chip, err := ctx.Chip()
	if err != nil {
		return t, meta, err
	}
	meta.Chip = chip
	return t, meta, nil
}
