package inspector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/config"
	"github.com/pthm-cable/spacemadness/game"
	"github.com/pthm-cable/spacemadness/physics"
)

func TestParseTag(t *testing.T) {
	w, opts := ParseTag("bar,max:200,fmt:%.1f")
	assert.Equal(t, WidgetBar, w)
	assert.Equal(t, map[string]string{"max": "200", "fmt": "%.1f"}, opts)

	w, opts = ParseTag("")
	assert.Equal(t, WidgetAuto, w)
	assert.Empty(t, opts)

	w, _ = ParseTag("mystery")
	assert.Equal(t, WidgetAuto, w)
}

type sample struct {
	Speed   float64 `inspect:"bar,max:10"`
	Heading float64 `inspect:"angle"`
	Where   r2.Vec
	On      bool
	Hidden  int `inspect:"skip"`
	private int
}

func TestExtractFields(t *testing.T) {
	fields := ExtractFields(&sample{Speed: 5, Heading: math.Pi, Where: r2.Vec{X: 1, Y: 2}, On: true})
	require.Len(t, fields, 4)

	assert.Equal(t, "Speed", fields[0].Name)
	assert.Equal(t, WidgetBar, fields[0].Widget)
	assert.InDelta(t, 0.5, fields[0].Fraction(), 1e-12)

	assert.Equal(t, "180.0°", fields[1].Format())
	assert.Equal(t, WidgetVec, fields[2].Widget)
	assert.Equal(t, "(1.00, 2.00)", fields[2].Format())
	assert.Equal(t, "yes", fields[3].Format())

	assert.Nil(t, ExtractFields(42))
	assert.Nil(t, ExtractFields((*sample)(nil)))
}

func TestFractionClamps(t *testing.T) {
	f := Field{Value: 50.0, Widget: WidgetBar, Options: map[string]string{"max": "10"}}
	assert.Equal(t, 1.0, f.Fraction())
	f.Value = -3
	assert.Equal(t, 0.0, f.Fraction())
	f.Value = "text"
	assert.Equal(t, 0.0, f.Fraction())
}

func newApp(t *testing.T) *game.App {
	t.Helper()
	cfg := config.Default()
	cfg.Telemetry.LogInterval = 0
	app, err := game.New(cfg)
	require.NoError(t, err)
	return app
}

func spawnAt(app *game.App, name string, p r2.Vec, comps ...game.Component) game.EntityID {
	return app.Spawn(game.EntityDef{
		Name: name,
		Body: physics.BodyDef{Type: physics.Dynamic, Position: p},
		Collider: physics.DefaultColliderDef(physics.Single(
			physics.Rect(r2.Vec{X: -1, Y: -1}, r2.Vec{X: 1, Y: 1}),
		)),
		Components: comps,
	})
}

func TestPickNearest(t *testing.T) {
	app := newApp(t)
	a := spawnAt(app, "a", r2.Vec{})
	b := spawnAt(app, "b", r2.Vec{X: 10})

	got, ok := Pick(app, r2.Vec{X: 7}, PickRadius)
	require.True(t, ok)
	assert.Equal(t, b, got)

	got, ok = Pick(app, r2.Vec{X: 1}, PickRadius)
	require.True(t, ok)
	assert.Equal(t, a, got)

	_, ok = Pick(app, r2.Vec{X: 100}, PickRadius)
	assert.False(t, ok)
}

func TestSections(t *testing.T) {
	app := newApp(t)
	id := spawnAt(app, "ship", r2.Vec{X: 3}, &game.Motion{Power: 100, Brake: 0.9}, &game.CameraFollow{})

	sections := Sections(app, id)
	require.Len(t, sections, 5)

	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Entity", "Sprite", "Body", "Motion", "CameraFollow"}, titles)
	assert.Equal(t, "ship", sections[0].Fields[0].Value)
	assert.Equal(t, "(3.0, 0.0)", sections[2].Fields[1].Format())
	assert.Equal(t, "100", sections[3].Fields[0].Format())
	assert.Empty(t, sections[4].Fields)

	app.Despawn(id)
	assert.Nil(t, Sections(app, id))
}

func TestSelection(t *testing.T) {
	app := newApp(t)
	id := spawnAt(app, "ship", r2.Vec{})
	ins := New(1280)

	_, ok := ins.Selected()
	assert.False(t, ok)

	ins.Select(id)
	got, ok := ins.Selected()
	require.True(t, ok)
	assert.Equal(t, id, got)

	ins.Deselect()
	_, ok = ins.Selected()
	assert.False(t, ok)
}
