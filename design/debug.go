package design

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/geometry"
	"github.com/ByLCY/lithos/options"
	"github.com/ByLCY/lithos/pin"
)

type instanceDump struct {
	Name     string           `json:"name"`
	Type     string           `json:"type"`
	State    State            `json:"state"`
	Options  *options.Options `json:"options"`
	Geometry []geometry.Entry `json:"geometry"`
	Pins     []pin.Pin        `json:"pins"`
}

type designDump struct {
	BaseUnit   string         `json:"base_unit"`
	Components []instanceDump `json:"components"`
}

// DebugDump 输出设计的确定性 JSON：实例按名称排序，几何与引脚按键排序，
// 选项保持声明顺序。
func (d *Design) DebugDump() ([]byte, error) {
	out := designDump{BaseUnit: d.units.Base(), Components: []instanceDump{}}
	for _, name := range d.Names() {
		inst, err := d.Instance(name)
		if err != nil {
			continue
		}
		dump := instanceDump{
			Name:     name,
			Type:     component.TypeName(inst.Component()),
			State:    inst.State(),
			Options:  inst.Options(),
			Geometry: []geometry.Entry{},
			Pins:     []pin.Pin{},
		}
		if snap, ok := d.store.Snapshot(name); ok {
			for _, entry := range snap.GeometryNames() {
				dump.Geometry = append(dump.Geometry, snap.Geometry[entry])
			}
			for _, p := range snap.PinNames() {
				dump.Pins = append(dump.Pins, snap.Pins[p])
			}
		}
		out.Components = append(out.Components, dump)
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteDebugJSON 将设计快照写入 path，便于调试或可视化。
func WriteDebugJSON(d *Design, path string) error {
	if d == nil {
		return nil
	}
	data, err := d.DebugDump()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
