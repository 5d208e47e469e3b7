// Package inspector shows the components of a selected entity in a side
// panel. Field layout comes from `inspect` struct tags on the components.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/vec"
)

// Panel dimensions
const (
	PanelWidth   = 280
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector manages entity selection and panel rendering.
type Inspector struct {
	selected    entity.Index
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize keeps the panel anchored to the right edge.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Select makes idx the inspected entity.
func (ins *Inspector) Select(idx entity.Index) {
	ins.selected = idx
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (entity.Index, bool) {
	return ins.selected, ins.hasSelected
}

// Pick returns the entity whose sprite contains the world point p. When
// sprites overlap the one whose center is closest wins.
func Pick(views []entity.View, p vec.Vec2) (entity.Index, bool) {
	var (
		closest entity.Index
		best    = math.Inf(1)
		found   bool
	)
	for _, v := range views {
		hit := math.Max(v.Sprite.Width, v.Sprite.Height)/2 + 5
		dist := p.Sub(v.Transform.Position).Magnitude()
		if dist <= hit && dist < best {
			closest, best, found = v.Index, dist, true
		}
	}
	return closest, found
}

// HandleInput processes clicks for entity selection.
func (ins *Inspector) HandleInput(views []entity.View, cam *camera.Camera) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	mx, my := int32(mouse.X), int32(mouse.Y)

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return
		}
		if mx >= ins.panelX && mx <= ins.panelX+PanelWidth && my >= ins.panelY {
			return
		}
	}

	if idx, ok := Pick(views, cam.ScreenToWorld(float64(mouse.X), float64(mouse.Y))); ok {
		ins.Select(idx)
	}
}

// Draw renders the inspector panel if an entity is selected.
// maxVelocity is the current speed ceiling used to scale the speed bar.
func (ins *Inspector) Draw(reg *entity.Registry, maxVelocity float64) {
	if !ins.hasSelected {
		return
	}
	if int(ins.selected) >= reg.Len() {
		ins.Deselect()
		return
	}

	e := reg.At(ins.selected)
	sections := Sections(e, maxVelocity)
	panelHeight := calculatePanelHeight(sections)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("ENTITY %d", ins.selected), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	for _, s := range sections {
		ins.drawSectionHeader(x, y, s.Title)
		y += 20
		for _, f := range s.Fields {
			y += DrawField(x, y, f)
		}
		y += 4
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight matches the row heights DrawField returns.
func calculatePanelHeight(sections []Section) int32 {
	height := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		height += 20 + 4
		for _, f := range s.Fields {
			switch f.Widget {
			case WidgetAngle:
				height += 44
			case WidgetBar, WidgetBool:
				height += 18
			default:
				height += 20
			}
		}
	}
	return height + PanelPadding
}

// DrawSelectionHighlight circles the selected entity and draws its velocity.
func (ins *Inspector) DrawSelectionHighlight(views []entity.View, cam *camera.Camera) {
	if !ins.hasSelected {
		return
	}
	for _, v := range views {
		if v.Index != ins.selected {
			continue
		}
		sx, sy := cam.WorldToScreen(v.Transform.Position)
		radius := math.Max(v.Sprite.Width, v.Sprite.Height) * 0.6 * cam.Zoom
		rl.DrawCircleLines(int32(sx), int32(sy), float32(radius), rl.Yellow)

		tip := v.Transform.Position.Add(v.Velocity.Scale(10))
		tx, ty := cam.WorldToScreen(tip)
		rl.DrawLineV(rl.NewVector2(float32(sx), float32(sy)), rl.NewVector2(float32(tx), float32(ty)), rl.Orange)
		return
	}
}
