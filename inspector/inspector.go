package inspector

import (
	"reflect"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/game"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
	SectionGap   = 6
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// PickRadius is how far from a body origin a click still selects it, in
// world units.
const PickRadius = 8.0

// Section is a titled group of fields.
type Section struct {
	Title  string
	Fields []Field
}

// bodyView is the inspectable snapshot of a rigid body.
type bodyView struct {
	Type            string
	Position        r2.Vec  `inspect:"vec,fmt:%.1f"`
	Angle           float64 `inspect:"angle"`
	Velocity        r2.Vec  `inspect:"vec,fmt:%.1f"`
	AngularVelocity float64 `inspect:"label,fmt:%.2f"`
	Mass            float64 `inspect:"label,fmt:%.1f"`
}

// Inspector tracks the selected entity and draws its panel.
type Inspector struct {
	selected    game.EntityID
	hasSelected bool
	panelX      int32
	panelY      int32
}

// New creates an inspector whose panel hugs the right screen edge.
func New(screenWidth int32) *Inspector {
	return &Inspector{panelX: screenWidth - PanelWidth - 10, panelY: 10}
}

// Resize keeps the panel on the right edge.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Select makes id the inspected entity.
func (ins *Inspector) Select(id game.EntityID) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.selected = game.EntityID{}
	ins.hasSelected = false
}

// Selected returns the inspected entity.
func (ins *Inspector) Selected() (game.EntityID, bool) {
	return ins.selected, ins.hasSelected
}

// Pick returns the entity whose body origin is nearest to p within radius.
func Pick(app *game.App, p r2.Vec, radius float64) (game.EntityID, bool) {
	var best game.EntityID
	bestDist := radius
	found := false
	for _, id := range app.Entities() {
		body, ok := app.RigidBody(id)
		if !ok {
			continue
		}
		if d := r2.Norm(r2.Sub(body.Position(), p)); d <= bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// Sections builds the inspectable view of an entity: its tag, sprite, body
// and each component. Returns nil if the entity is gone.
func Sections(app *game.App, id game.EntityID) []Section {
	tag, ok := app.Tag(id)
	if !ok {
		return nil
	}
	sections := []Section{
		{Title: "Entity", Fields: ExtractFields(tag)},
		{Title: "Sprite", Fields: ExtractFields(app.Sprite(id))},
	}
	if body, ok := app.RigidBody(id); ok {
		sections = append(sections, Section{Title: "Body", Fields: ExtractFields(bodyView{
			Type:            body.Type().String(),
			Position:        body.Position(),
			Angle:           body.Angle(),
			Velocity:        body.LinearVelocity(),
			AngularVelocity: body.AngularVelocity(),
			Mass:            body.Mass(),
		})})
	}
	for _, c := range app.Components(id) {
		sections = append(sections, Section{Title: typeName(c), Fields: ExtractFields(c)})
	}
	return sections
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// HandleInput selects the entity under a left click and deselects on a
// right click. Clicks on the open panel are ignored.
func (ins *Inspector) HandleInput(app *game.App) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if ins.hasSelected && int32(mouse.X) >= ins.panelX && int32(mouse.Y) >= ins.panelY {
		return
	}
	if id, ok := Pick(app, app.PointerWorld(), PickRadius); ok {
		ins.Select(id)
	}
}

// Draw renders the panel for the selected entity.
func (ins *Inspector) Draw(app *game.App) {
	if !ins.hasSelected {
		return
	}
	sections := Sections(app, ins.selected)
	if sections == nil {
		ins.Deselect()
		return
	}

	height := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		height += 18 + SectionGap
		for _, f := range s.Fields {
			height += FieldHeight(f)
		}
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("Inspector "+ins.selected.String(), ins.panelX+PanelPadding, ins.panelY+8, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding/2
	for _, s := range sections {
		rl.DrawText(s.Title, x, y, 14, ColorSectionText)
		y += 18
		for _, f := range s.Fields {
			y += DrawField(x+8, y, f)
		}
		y += SectionGap
	}
}
