package layout

import (
	"errors"
	"strings"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/section"
)

var ErrNoFonts = errors.New("layout: fonts not loaded")

// OpKind is the type of a drawing operation.
type OpKind string

const (
	OpText  OpKind = "text"
	OpRect  OpKind = "rect"
	OpImage OpKind = "image"
)

// Op is one drawing operation in CSS pixels relative to the top-left corner
// of its box. Text ops are positioned at their baseline.
type Op struct {
	Kind     OpKind
	X        float64
	Y        float64
	W        float64
	H        float64
	Text     string
	Style    RunStyle
	Fill     string
	ImageKey string
}

// Box is the laid-out form of one section.
type Box struct {
	SectionID   string
	Fingerprint string
	Kind        section.Kind
	Height      float64
	Ops         []Op
}

// Measurement is the result of one layout pass over a section snapshot.
type Measurement struct {
	Template section.Template
	Geometry Geometry
	Boxes    []Box
}

// Engine lays sections out on the page geometry. It is safe for concurrent use.
type Engine struct {
	geometry Geometry
	fonts    *Fonts
}

func NewEngine(g Geometry, f *Fonts) *Engine {
	return &Engine{geometry: g, fonts: f}
}

func (e *Engine) Geometry() Geometry { return e.geometry }

func (e *Engine) Fonts() *Fonts { return e.fonts }

// Layout lays out every section at the page content width. Heights must
// only be trusted for the exact snapshot passed in; each box records the
// fingerprint of the section it was produced from.
func (e *Engine) Layout(sections []section.Section, t section.Template) (Measurement, error) {
	if e.fonts == nil {
		return Measurement{}, ErrNoFonts
	}
	faces := e.fonts.Faces(1)
	defer faces.Close()

	theme := ThemeFor(t)
	width := e.geometry.ContentWidth()
	m := Measurement{Template: t, Geometry: e.geometry, Boxes: make([]Box, 0, len(sections))}
	for _, s := range sections {
		p := &pass{faces: faces, theme: theme, dir: s.Direction}
		ops, h, err := p.node(s.Root, 0, 0, width, section.AlignStart)
		if err != nil {
			return Measurement{}, err
		}
		if s.Kind == section.KindHeader && theme.HeaderRule > 0 {
			h += 16
			ops = append(ops, Op{Kind: OpRect, X: 0, Y: h, W: width, H: theme.HeaderRule, Fill: theme.HeaderColor})
			h += theme.HeaderRule
		}
		m.Boxes = append(m.Boxes, Box{
			SectionID:   s.ID,
			Fingerprint: s.Fingerprint(),
			Kind:        s.Kind,
			Height:      h,
			Ops:         ops,
		})
	}
	return m, nil
}

const (
	blockSpacing = 4
	headingGap   = 8
	rowGap       = 16
	chipPadX     = 12
	chipPadY     = 4
	chipGap      = 8
	inlineGap    = 16
)

type pass struct {
	faces *FaceSet
	theme Theme
	dir   i18n.Direction
}

func (p *pass) node(n section.Node, x, y, width float64, align section.Align) ([]Op, float64, error) {
	if n.Align != "" {
		align = n.Align
	}
	switch n.Role {
	case section.RoleBlock:
		return p.block(n, x, y, width, align)
	case section.RoleRow:
		return p.row(n, x, y, width, align)
	case section.RoleInline, section.RoleChips:
		return p.flow(n, x, y, width, align)
	case section.RoleImage:
		return p.image(n, x, y, width, align)
	}
	return p.text(display(n), p.theme.Style(n.Role), x, y, width, align)
}

func (p *pass) block(n section.Node, x, y, width float64, align section.Align) ([]Op, float64, error) {
	var ops []Op
	h := 0.0
	if n.Title != "" {
		tops, th, err := p.text(n.Title, p.theme.Heading, x, y, width, align)
		if err != nil {
			return nil, 0, err
		}
		ops = append(ops, tops...)
		h += th
		if p.theme.HeadingRule != "" {
			h += 2
			ops = append(ops, Op{Kind: OpRect, X: x, Y: y + h, W: width, H: 1, Fill: p.theme.HeadingRule})
			h++
		}
		h += headingGap
	}
	cops, ch, err := p.stack(n.Children, x, y+h, width, align)
	if err != nil {
		return nil, 0, err
	}
	if ch == 0 && n.Title != "" {
		h -= headingGap
	}
	return append(ops, cops...), h + ch, nil
}

func (p *pass) stack(children []section.Node, x, y, width float64, align section.Align) ([]Op, float64, error) {
	var ops []Op
	h := 0.0
	placed := 0
	for _, child := range children {
		offset := 0.0
		if placed > 0 {
			offset = blockSpacing
		}
		cops, ch, err := p.node(child, x, y+h+offset, width, align)
		if err != nil {
			return nil, 0, err
		}
		if ch == 0 {
			continue
		}
		ops = append(ops, cops...)
		h += offset + ch
		placed++
	}
	return ops, h, nil
}

// row lays out every child but the last in a main column and the last one as
// a single-line aside on the trailing edge.
func (p *pass) row(n section.Node, x, y, width float64, align section.Align) ([]Op, float64, error) {
	if len(n.Children) < 2 {
		return p.stack(n.Children, x, y, width, align)
	}
	aside := n.Children[len(n.Children)-1]
	asideText := display(aside)
	asideStyle := p.theme.Style(aside.Role)
	asideW := 0.0
	if asideText != "" {
		w, err := p.faces.Width(asideStyle, asideText)
		if err != nil {
			return nil, 0, err
		}
		asideW = w
	}
	gap := 0.0
	if asideW > 0 {
		gap = rowGap
	}
	if asideW > width/2 {
		asideW = width / 2
	}
	mainW := width - asideW - gap

	mainX, asideX := x, x+width-asideW
	if p.dir == i18n.RTL {
		mainX, asideX = x+asideW+gap, x
	}
	ops, mh, err := p.stack(n.Children[:len(n.Children)-1], mainX, y, mainW, section.AlignStart)
	if err != nil {
		return nil, 0, err
	}
	h := mh
	if asideW > 0 {
		aops, ah, err := p.text(asideText, asideStyle, asideX, y, asideW, section.AlignStart)
		if err != nil {
			return nil, 0, err
		}
		ops = append(ops, aops...)
		if ah > h {
			h = ah
		}
	}
	return ops, h, nil
}

type flowItem struct {
	text  string
	style RunStyle
	w     float64
}

// flow places children left to right (right to left for rtl), wrapping onto
// new lines when the width is exhausted.
func (p *pass) flow(n section.Node, x, y, width float64, align section.Align) ([]Op, float64, error) {
	chips := n.Role == section.RoleChips
	padX, padY, gap := 0.0, 0.0, float64(inlineGap)
	if chips {
		padX, padY, gap = chipPadX, chipPadY, chipGap
	}

	var lines [][]flowItem
	var line []flowItem
	lineW := 0.0
	itemH := 0.0
	for _, child := range n.Children {
		text := display(child)
		if text == "" {
			continue
		}
		style := p.theme.Style(child.Role)
		tw, err := p.faces.Width(style, text)
		if err != nil {
			return nil, 0, err
		}
		item := flowItem{text: text, style: style, w: tw + 2*padX}
		if ih := style.LineHeight() + 2*padY; ih > itemH {
			itemH = ih
		}
		next := lineW + item.w
		if len(line) > 0 {
			next += gap
		}
		if len(line) > 0 && next > width {
			lines = append(lines, line)
			line, lineW = nil, item.w
		} else {
			lineW = next
		}
		line = append(line, item)
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, 0, nil
	}

	var ops []Op
	for i, items := range lines {
		total := 0.0
		for j, it := range items {
			if j > 0 {
				total += gap
			}
			total += it.w
		}
		cx := p.startX(x, width, total, align)
		top := y + float64(i)*(itemH+chipGap)
		order := items
		if p.dir == i18n.RTL {
			order = reversed(items)
		}
		for _, it := range order {
			if chips {
				ops = append(ops, Op{Kind: OpRect, X: cx, Y: top, W: it.w, H: itemH, Fill: p.theme.ChipFill})
			}
			ascent, err := p.faces.Ascent(it.style)
			if err != nil {
				return nil, 0, err
			}
			ops = append(ops, Op{Kind: OpText, X: cx + padX, Y: top + padY + ascent, W: it.w - 2*padX, Text: it.text, Style: it.style})
			cx += it.w + gap
		}
	}
	return ops, float64(len(lines))*itemH + float64(len(lines)-1)*chipGap, nil
}

func (p *pass) image(n section.Node, x, y, width float64, align section.Align) ([]Op, float64, error) {
	if n.ImageKey == "" {
		return nil, 0, nil
	}
	size := p.theme.PhotoSize
	return []Op{{Kind: OpImage, X: p.startX(x, width, size, align), Y: y, W: size, H: size, ImageKey: n.ImageKey}}, size, nil
}

func (p *pass) text(text string, style RunStyle, x, y, width float64, align section.Align) ([]Op, float64, error) {
	lines, err := p.wrap(text, style, width)
	if err != nil || len(lines) == 0 {
		return nil, 0, err
	}
	ascent, err := p.faces.Ascent(style)
	if err != nil {
		return nil, 0, err
	}
	lh := style.LineHeight()
	ops := make([]Op, 0, len(lines))
	for i, ln := range lines {
		w, err := p.faces.Width(style, ln)
		if err != nil {
			return nil, 0, err
		}
		ops = append(ops, Op{
			Kind:  OpText,
			X:     p.startX(x, width, w, align),
			Y:     y + float64(i)*lh + ascent,
			W:     w,
			Text:  ln,
			Style: style,
		})
	}
	return ops, float64(len(lines)) * lh, nil
}

// wrap breaks text greedily on whitespace. Words wider than the line are
// kept whole on a line of their own.
func (p *pass) wrap(text string, style RunStyle, width float64) ([]string, error) {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			cw, err := p.faces.Width(style, candidate)
			if err != nil {
				return nil, err
			}
			if cw <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (p *pass) startX(x, width, w float64, align section.Align) float64 {
	switch {
	case align == section.AlignCenter:
		return x + (width-w)/2
	case p.dir == i18n.RTL:
		return x + width - w
	}
	return x
}

func display(n section.Node) string {
	text := n.Display()
	if text != "" && n.Label != "" {
		return n.Label + ": " + text
	}
	return text
}

func reversed(items []flowItem) []flowItem {
	out := make([]flowItem, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return out
}
