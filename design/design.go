// Package design 是组件契约的参考宿主：负责实例命名、选项合并、构建调度，
// 以及按组件整体替换的几何/引脚存储。
package design

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/options"
	"github.com/ByLCY/lithos/params"
	"github.com/ByLCY/lithos/units"
)

var (
	ErrDuplicateName   = errors.New("design: component name already in use")
	ErrNoSuchComponent = errors.New("design: no such component")
	ErrRemoved         = errors.New("design: component was removed")
)

// State 是实例在宿主中的生命周期状态。
type State int

const (
	Created State = iota // 选项已合并，尚未构建（或选项已修改，等待重建）
	Built                // 最近一次构建成功，存储中有其几何与引脚
	Removed              // 已从设计中移除，存储条目已撤销
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Built:
		return "built"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText 以名称输出状态。
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Option 配置 Design。
type Option func(*Design)

// WithUnits 指定单位换算表（基准单位与词表）。
func WithUnits(t *units.Table) Option {
	return func(d *Design) {
		if t != nil {
			d.units = t
		}
	}
}

// WithDefaultChip 指定选项中未声明 chip 时使用的芯片名。
func WithDefaultChip(chip string) Option {
	return func(d *Design) {
		if chip != "" {
			d.defaultChip = chip
		}
	}
}

// Design 持有组件实例与共享存储。
type Design struct {
	mu        sync.Mutex
	instances map[string]*Instance
	counters  map[string]int

	units       *units.Table
	defaultChip string
	store       *Store
}

// New 创建空设计。
func New(opts ...Option) *Design {
	d := &Design{
		instances:   map[string]*Instance{},
		counters:    map[string]int{},
		units:       units.DefaultTable(),
		defaultChip: component.DefaultChip,
		store:       NewStore(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Units 返回设计使用的单位换算表。
func (d *Design) Units() *units.Table { return d.units }

// Store 返回设计级几何/引脚存储。
func (d *Design) Store() *Store { return d.store }

// Add 以类默认选项的深拷贝合并 overrides，创建处于 Created 状态的实例。
// name 为空时自动生成 "<类型名>_<序号>"。
func (d *Design) Add(name string, c component.Component, overrides *options.Options) (*Instance, error) {
	if c == nil {
		return nil, fmt.Errorf("design: nil component")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if name == "" {
		name = d.nextNameLocked(component.TypeName(c))
	}
	if _, ok := d.instances[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	opts := c.DefaultOptions().Instantiate(overrides)
	inst := &Instance{
		design: d,
		name:   name,
		comp:   c,
		opts:   opts,
		view:   params.New(opts, d.units),
		state:  Created,
	}
	d.instances[name] = inst
	Logger().Info("component added", "name", name, "type", component.TypeName(c))
	return inst, nil
}

func (d *Design) nextNameLocked(prefix string) string {
	for {
		d.counters[prefix]++
		name := fmt.Sprintf("%s_%d", prefix, d.counters[prefix])
		if _, taken := d.instances[name]; !taken {
			return name
		}
	}
}

// Instance 按名称查找实例。
func (d *Design) Instance(name string) (*Instance, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	inst, ok := d.instances[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchComponent, name)
	}
	return inst, nil
}

// Names 返回全部实例名（已排序）。
func (d *Design) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.instances))
	for name := range d.instances {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Remove 移除实例并撤销其在存储中的全部条目。
// 正在进行的构建先完成，名称在撤销之后才释放，因此同名新实例不会被误撤销。
func (d *Design) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	inst, ok := d.instances[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchComponent, name)
	}

	inst.mu.Lock()
	inst.state = Removed
	d.store.Revoke(name)
	inst.mu.Unlock()
	delete(d.instances, name)
	Logger().Info("component removed", "name", name)
	return nil
}

// BuildAll 按名称顺序构建全部实例，返回所有失败的合并错误。
func (d *Design) BuildAll() error {
	var errs []error
	for _, name := range d.Names() {
		inst, err := d.Instance(name)
		if err != nil {
			continue
		}
		if err := inst.Build(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Instance 是设计中的一个组件实例。
type Instance struct {
	design *Design
	name   string
	comp   component.Component

	mu    sync.Mutex // 保护 opts、view 与 state
	opts  *options.Options
	view  *params.View // 仅在持有 mu 时读取
	state State
}

// Name 返回实例名。
func (i *Instance) Name() string { return i.name }

// Component 返回实例的组件类型值。
func (i *Instance) Component() component.Component { return i.comp }

// State 返回当前生命周期状态。
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Options 返回合并后选项的副本。
func (i *Instance) Options() *options.Options {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.opts.Clone()
}

// Params 返回当前选项快照上的解析视图，可与 SetOption 并发使用；
// 之后的修改需要重新调用 Params 才能看到。
func (i *Instance) Params() *params.View {
	i.mu.Lock()
	defer i.mu.Unlock()
	return params.New(i.opts.Clone(), i.view.Units())
}

// SetOption 修改一个（可嵌套的）选项，实例回到 Created 状态，等待重建。
func (i *Instance) SetOption(path string, value any) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.state == Removed {
		return fmt.Errorf("%w: %q", ErrRemoved, i.name)
	}
	if err := i.opts.SetPath(path, value); err != nil {
		return err
	}
	i.state = Created
	return nil
}

// Build 在暂存区执行组件构建，成功后整体替换存储中的条目。
// 失败时保留上一次成功的几何与引脚，状态不变。
func (i *Instance) Build() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.state == Removed {
		return fmt.Errorf("%w: %q", ErrRemoved, i.name)
	}

	log := Logger().With("name", i.name)
	ctx := component.NewBuildContext(i.name, i.view, i.design.defaultChip)
	if err := i.comp.Build(ctx); err != nil {
		log.Warn("build failed, keeping previous geometry", "err", err)
		return fmt.Errorf("design: build %q: %w", i.name, err)
	}

	snap := ctx.Snapshot()
	i.design.store.Commit(i.name, snap)
	i.state = Built
	log.Debug("build committed", "geometry", len(snap.Geometry), "pins", len(snap.Pins))
	log.Info("component built")
	return nil
}

// Rebuild 在修改选项后重新构建；与 Build 等价。
func (i *Instance) Rebuild() error { return i.Build() }
