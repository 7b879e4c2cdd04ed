package library

import (
	"github.com/ByLCY/lithos/component"
	"github.com/ByLCY/lithos/geometry"
	"github.com/ByLCY/lithos/options"
)

var rectangleDefaults = options.NewTemplate(append([]options.Pair{
	options.P("width", "500um"),
	options.P("height", "300um"),
}, placementDefaults()...)...)

// Rectangle 是以 (pos_x, pos_y) 为中心的实心矩形，没有引脚。
type Rectangle struct{}

func (Rectangle) DefaultOptions() *options.Template { return rectangleDefaults }

func (Rectangle) Description() string { return "filled rectangle centred on pos_x, pos_y" }

func (Rectangle) Build(ctx *component.BuildContext) error {
	r := ctx.Reader()
	w, h := r.Float("width"), r.Float("height")
	place, meta, err := readPlacement(ctx, r)
	if err != nil {
		return err
	}
	return ctx.AddGeometry(geometry.KindPolygon, map[string]geometry.Payload{
		"rectangle": place.ApplyPayload(geometry.Rectangle(w, h, 0, 0)),
	}, meta)
}
