package library

import (
	"fmt"

	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/geometry"
	"github.com/ByLCY/lithos/options"
	"github.com/ByLCY/lithos/pin"
)

// MaxSpiralTurns bounds n so a typo cannot request an unbounded point list.
const MaxSpiralTurns = 10000

var spiralDefaults = options.NewTemplate(append([]options.Pair{
	options.P("n", "3"),
	options.P("width", "1um"),
	options.P("radius", "40um"),
	options.P("gap", "4um"),
}, placementDefaults()...)...)

// NSquareSpiral 是 n 圈的方形螺旋线，外端带一个引脚 spiralPin。
//
// 几何以原点为中心：第 k 圈的半边长为 radius/2 + k*(width+gap)，
// 每圈依次经过左下、右下、右上，再向左越过一个节距，为下一圈留出间隔。
// 最后一个点落在第 n 圈的左下角。
type NSquareSpiral struct{}

func (NSquareSpiral) DefaultOptions() *options.Template { return spiralDefaults }

func (NSquareSpiral) Description() string {
	return "n-turn square spiral path with a pin at its outer end"
}

func (NSquareSpiral) Build(ctx *component.BuildContext) error {
	r := ctx.Reader()
	n := r.Int("n")
	width := r.Float("width")
	radius := r.Float("radius")
	gap := r.Float("gap")
	place, meta, err := readPlacement(ctx, r)
	if err != nil {
		return err
	}
	if n < 1 || n > MaxSpiralTurns {
		return &geometry.GeometryError{
			Component: ctx.Name(),
			Entry:     "n_spiral",
			Kind:      geometry.KindPath,
			Detail:    fmt.Sprintf("n = %d, want 1..%d turns", n, MaxSpiralTurns),
			Err:       geometry.ErrDegenerate,
		}
	}

	pts := place.Apply(spiralPoints(n, width, gap, radius))
	meta.Width = width
	if err := ctx.AddGeometry(geometry.KindPath, map[string]geometry.Payload{
		"n_spiral": geometry.NewPath(pts...),
	}, meta); err != nil {
		return err
	}
	return ctx.AddPin("spiralPin", pts[len(pts)-2:], width, pin.FromTangent)
}

func spiralPoints(n int, width, gap, radius float64) []geometry.Point {
	pitch := width + gap
	pts := make([]geometry.Point, 0, 4*n+1)
	for step := 0; step < n; step++ {
		v := radius/2 + float64(step)*pitch
		pts = append(pts,
			geometry.Pt(-v, -v),
			geometry.Pt(v, -v),
			geometry.Pt(v, v),
			geometry.Pt(-v-pitch, v),
		)
	}
	v := radius/2 + float64(n)*pitch
	return append(pts, geometry.Pt(-v, -v))
}
