package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/picking"
	"github.com/litescript/ls-starfield/internal/pointing"
	"github.com/litescript/ls-starfield/internal/session"
	"github.com/litescript/ls-starfield/internal/star"
)

const (
	// Default field of view in degrees (horizontal; vertical is half)
	defaultFov = 90.0
	minFov     = 20.0
	maxFov     = 120.0

	// Animation
	animFrameRate = 30 * time.Millisecond

	// Pan step per keypress in degrees
	panStep = 5.0

	// Star glyphs by rendered size hint
	glyphStarLarge  = '✶' // size > 6
	glyphStarMedium = '✸' // size > 4
	glyphStarSmall  = '·'

	// Star colors by opacity hint (grayscale)
	colorStarBright = "255"
	colorStarMedium = "250"
	colorStarDim    = "244"
	colorStarFaint  = "240"

	// Constellation segment glyph and color
	glyphSegment = '·'
	colorSegment = "60" // muted purple

	colorCardinal = "252"
	colorCursor   = "229" // bright gold
	colorLabel    = "#d0c8ff"
)

// LabelMode controls how star labels are displayed.
type LabelMode int

const (
	LabelNone     LabelMode = iota // No labels
	LabelSelected                  // Only the star under the crosshair
	LabelAll                       // All named stars in view
)

// SkyViewModel renders the star field around a quaternion camera. The
// crosshair sits at the center of the view; panning aims it.
type SkyViewModel struct {
	width  int
	height int

	// Camera center in equatorial coordinates
	camRA  astro.Degree
	camDec astro.Degree

	// Eased transitions for target jumps
	anim      *pointing.Animator
	animating bool

	// Label display mode
	labelMode LabelMode

	// Data snapshot
	snapshot session.Snapshot
	depth    float64
	now      time.Time
}

// NewSkyViewModel creates a new sky view model aimed at the vernal equinox.
func NewSkyViewModel(depth float64) SkyViewModel {
	return SkyViewModel{
		anim:      pointing.NewAnimator(pointing.CameraFromRaDec(0, 0), defaultFov),
		labelMode: LabelSelected,
		depth:     depth,
		now:       time.Now(),
	}
}

// AimAt points the camera at an equatorial position with no transition.
func (m SkyViewModel) AimAt(ra, dec astro.Degree) SkyViewModel {
	m.animating = false
	m.camRA = astro.NormalizeDeg(ra)
	m.camDec = dec
	m.anim.Snap(pointing.CameraFromRaDec(astro.DegToRad(m.camRA), astro.DegToRad(m.camDec)), m.fov())
	return m
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new session snapshot.
func (m SkyViewModel) UpdateData(snapshot session.Snapshot, depth float64) SkyViewModel {
	m.snapshot = snapshot
	m.depth = depth
	if !m.animating {
		m.now = snapshot.Frame.Now()
	}
	return m
}

// camera returns the current camera pose, eased if a transition is running.
func (m SkyViewModel) camera() (astro.Quat, float64) {
	if m.animating {
		return m.anim.At(m.now)
	}
	return pointing.CameraFromRaDec(astro.DegToRad(m.camRA), astro.DegToRad(m.camDec)),
		m.fov()
}

func (m SkyViewModel) fov() float64 {
	_, fov := m.anim.At(m.now)
	return fov
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return m.pan(-panStep, 0), nil
		case "right", "l":
			return m.pan(panStep, 0), nil
		case "up", "k":
			return m.pan(0, panStep), nil
		case "down", "j":
			return m.pan(0, -panStep), nil
		case "z":
			return m.zoom(1 / 1.25), nil
		case "x":
			return m.zoom(1.25), nil
		case "n":
			m.labelMode = (m.labelMode + 1) % 3
		case "g":
			return m.jumpToSelected()
		}

	case animTickMsg:
		m.now = time.Time(msg)
		if m.animating {
			if !m.anim.Moving() {
				m.animating = false
				return m, nil
			}
			return m, animTick()
		}
	}

	return m, nil
}

func (m SkyViewModel) pan(dRA, dDec float64) SkyViewModel {
	m.animating = false
	m.camRA = astro.NormalizeDeg(m.camRA + astro.Degree(dRA))
	m.camDec += astro.Degree(dDec)
	if m.camDec > 89 {
		m.camDec = 89
	}
	if m.camDec < -89 {
		m.camDec = -89
	}
	m.anim.Snap(pointing.CameraFromRaDec(astro.DegToRad(m.camRA), astro.DegToRad(m.camDec)), m.fov())
	return m
}

func (m SkyViewModel) zoom(factor float64) SkyViewModel {
	fov := m.fov() * factor
	if fov < minFov {
		fov = minFov
	}
	if fov > maxFov {
		fov = maxFov
	}
	q, _ := m.camera()
	m.anim.Snap(q, fov)
	return m
}

// jumpToSelected eases the camera onto the star under the crosshair.
func (m SkyViewModel) jumpToSelected() (SkyViewModel, tea.Cmd) {
	sel := m.selection()
	if sel.Star == nil {
		return m, nil
	}

	m.now = time.Now()
	ra, dec := sel.Star.RaDecAt(m.now)
	m.camRA = astro.NormalizeDeg(astro.RadToDeg(ra))
	m.camDec = astro.RadToDeg(dec)
	m.anim.Retarget(pointing.CameraFromRaDec(ra, dec), m.fov(), m.now)
	m.animating = true
	return m, animTick()
}

// crosshair returns the equatorial position at the center of the view.
func (m SkyViewModel) crosshair() picking.Point {
	q, _ := m.camera()
	v := q.Rotate(astro.Vec3{Z: -1})

	dec := math.Asin(clamp(v.Z))
	ra := math.Atan2(v.Y, v.X)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	return picking.Point{RA: astro.Radian(ra), Dec: astro.Radian(dec)}
}

func (m SkyViewModel) selection() picking.Selection {
	return picking.Select(m.snapshot.Stars, star.Constellations, m.crosshair(), m.depth, m.now)
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	// Reserve lines for header and status
	viewHeight := m.height - 4
	canvas := m.renderCanvas(m.width, viewHeight)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := titleStyle.Render("Star Field")

	depth := fmt.Sprintf("depth %.1f", m.depth)
	if m.snapshot.LoadedVmag != nil {
		depth += fmt.Sprintf(" (loaded %.1f)", *m.snapshot.LoadedVmag)
	} else {
		depth += " (loading)"
	}

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = "Labels: off"
	case LabelSelected:
		labelStr = "Labels: selected"
	case LabelAll:
		labelStr = "Labels: all"
	}

	compass := fmt.Sprintf("RA:%.1f° Dec:%.1f° FOV:%.0f°", float64(m.camRA), float64(m.camDec), m.fov())

	return fmt.Sprintf("%s | %s | %s | %s",
		title,
		dimStyle.Render(depth),
		dimStyle.Render(labelStr),
		dimStyle.Render(compass),
	)
}

func (m SkyViewModel) renderStatus() string {
	sel := m.selection()
	if sel.Star == nil {
		return "No stars in catalog yet"
	}

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorCursor))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))

	s := sel.Star
	ra, dec := s.RaDecAt(m.now)
	name := star.NameOf(s.HIP)
	if name == "" {
		name = fmt.Sprintf("HIP %d", s.HIP)
	}

	line1 := fmt.Sprintf(">>> %s | RA:%.2f° Dec:%.2f° | mag %.2f",
		name,
		float64(astro.RadToDeg(ra)),
		float64(astro.RadToDeg(dec)),
		s.Vmag,
	)
	status := accentStyle.Render(line1)

	var extra []string
	if sel.Named != nil && sel.Named.HIP != s.HIP {
		extra = append(extra, "near "+star.NameOf(sel.Named.HIP))
	}
	if sel.Constellation != nil {
		extra = append(extra, sel.Constellation.Name)
	}
	if len(extra) > 0 {
		status += "\n" + dimStyle.Render("    "+strings.Join(extra, " | "))
	}
	return status
}

// starPos tracks a plotted star for label rendering
type starPos struct {
	x, y       int
	name       string
	isSelected bool
	labelStart int
	labelEnd   int
}

func (m SkyViewModel) renderCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	q, fov := m.camera()
	inv := q.Conjugate()

	// Constellation segments go down first so stars draw over them.
	m.drawSegments(canvas, colors, inv, fov, width, height)

	sel := m.selection()
	var positions []starPos

	for _, s := range m.snapshot.Stars.Visible(m.depth) {
		x, y, visible := m.project(inv, fov, s.Position(m.now, 1), width, height)
		if !visible {
			continue
		}

		glyph, color := starGlyph(s)
		canvas[y][x] = glyph
		colors[y][x] = color

		if name := star.NameOf(s.HIP); name != "" {
			positions = append(positions, starPos{
				x: x, y: y,
				name:       name,
				isSelected: sel.Star != nil && sel.Star.HIP == s.HIP,
			})
		}
	}

	m.drawCardinals(canvas, colors, inv, fov, width, height)
	m.renderLabels(canvas, colors, width, height, positions)

	// Crosshair at view center
	cx, cy := width/2, height/2
	canvas[cy][cx] = '+'
	colors[cy][cx] = colorCursor

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// drawSegments plots constellation figures by sampling along each segment.
func (m SkyViewModel) drawSegments(canvas [][]rune, colors [][]lipgloss.Color, inv astro.Quat, fov float64, width, height int) {
	for _, figure := range star.Constellations {
		for _, seg := range figure.Segments {
			s0, ok0 := m.snapshot.Stars[seg[0]]
			s1, ok1 := m.snapshot.Stars[seg[1]]
			if !ok0 || !ok1 {
				continue
			}

			v0 := s0.Position(m.now, 1)
			v1 := s1.Position(m.now, 1)

			// Sample the chord; the projection maps it close enough to the
			// great circle at segment scale.
			const steps = 24
			for i := 1; i < steps; i++ {
				t := float64(i) / steps
				v := v0.Scale(1 - t).Add(v1.Scale(t)).Normalized()
				x, y, visible := m.project(inv, fov, v, width, height)
				if !visible || canvas[y][x] != ' ' {
					continue
				}
				canvas[y][x] = glyphSegment
				colors[y][x] = colorSegment
			}
		}
	}
}

// drawCardinals marks the horizon's cardinal points for the observing site.
func (m SkyViewModel) drawCardinals(canvas [][]rune, colors [][]lipgloss.Color, inv astro.Quat, fov float64, width, height int) {
	horizon := pointing.HorizonFrame(m.snapshot.Frame, m.now)

	for _, c := range []struct {
		label string
		az    astro.Degree
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		// Direction of the cardinal point on the horizon, in equatorial space.
		v := horizon.
			Mul(astro.RotationZ(c.az - 180)).
			Mul(astro.RotationX(-90)).
			Rotate(astro.Vec3{Z: -1})

		x, y, visible := m.project(inv, fov, v, width, height)
		if !visible {
			continue
		}
		canvas[y][x] = rune(c.label[0])
		colors[y][x] = colorCardinal
	}
}

// renderLabels draws named-star labels. Selected labels claim their cells
// first and win overlaps.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, height int, positions []starPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for i := range positions {
		pos := &positions[i]
		pos.labelStart = pos.x + 2
		labelLen := len(pos.name)
		if pos.isSelected {
			labelLen += 2
		}
		pos.labelEnd = pos.labelStart + labelLen
	}

	selectedClaims := make(map[int]map[int]bool)
	for _, pos := range positions {
		if !pos.isSelected {
			continue
		}
		if selectedClaims[pos.y] == nil {
			selectedClaims[pos.y] = make(map[int]bool)
		}
		for x := pos.labelStart; x < pos.labelEnd; x++ {
			selectedClaims[pos.y][x] = true
		}
	}

	for _, pos := range positions {
		show := false
		switch m.labelMode {
		case LabelSelected:
			show = pos.isSelected
		case LabelAll:
			show = true
		}
		if !show {
			continue
		}

		labelColor := lipgloss.Color(colorLabel)
		labelText := pos.name
		if pos.isSelected {
			labelColor = colorCursor
			labelText = "◄ " + pos.name
		}

		for i, r := range []rune(labelText) {
			x := pos.labelStart + i
			if x < 0 || x >= width || pos.y < 0 || pos.y >= height {
				continue
			}
			if !pos.isSelected && selectedClaims[pos.y][x] {
				continue
			}
			canvas[pos.y][x] = r
			colors[pos.y][x] = labelColor
		}
	}
}

// starGlyph maps the star's rendering hints onto a glyph and color.
func starGlyph(s star.Star) (rune, lipgloss.Color) {
	var glyph rune
	switch size := s.Size(); {
	case size > 6:
		glyph = glyphStarLarge
	case size > 4:
		glyph = glyphStarMedium
	default:
		glyph = glyphStarSmall
	}

	var color lipgloss.Color
	switch op := s.Opacity(); {
	case op >= 1.0:
		color = colorStarBright
	case op >= 0.3:
		color = colorStarMedium
	case op >= 0.1:
		color = colorStarDim
	default:
		color = colorStarFaint
	}
	return glyph, color
}

// project maps a unit direction in equatorial space to screen coordinates.
// inv is the inverse camera rotation; the camera looks along -Z with +Y up.
func (m SkyViewModel) project(inv astro.Quat, fov float64, v astro.Vec3, width, height int) (int, int, bool) {
	vc := inv.Rotate(v)
	if vc.Z >= 0 {
		return 0, 0, false // behind the camera
	}

	dAz := math.Atan2(vc.X, -vc.Z) * 180 / math.Pi
	dAlt := math.Asin(clamp(vc.Y)) * 180 / math.Pi

	fovV := fov / 2
	if dAz < -fov/2 || dAz > fov/2 || dAlt < -fovV/2 || dAlt > fovV/2 {
		return 0, 0, false
	}

	x := int((dAz + fov/2) / fov * float64(width))
	y := int((fovV/2 - dAlt) / fovV * float64(height))
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0, 0, false
	}
	return x, y, true
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
