package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/geometry"
)

type cellClass int

const (
	classBlank cellClass = iota
	classPage
	classBox
	classActive
)

type cell struct {
	ch    rune
	class cellClass
}

// cellRect is an inclusive range of terminal cells.
type cellRect struct {
	col0, row0 int
	col1, row1 int
}

// toCells maps a page-relative screen box onto the visible cell grid.
func toCells(box geometry.ScreenBox, offset domain.Point, cellW, cellH float64) cellRect {
	r := cellRect{
		col0: int(math.Floor((box.X - offset.X) / cellW)),
		row0: int(math.Floor((box.Y - offset.Y) / cellH)),
		col1: int(math.Ceil((box.Right()-offset.X)/cellW)) - 1,
		row1: int(math.Ceil((box.Bottom()-offset.Y)/cellH)) - 1,
	}
	if r.col1 < r.col0 {
		r.col1 = r.col0
	}
	if r.row1 < r.row0 {
		r.row1 = r.row0
	}
	return r
}

// View renders the canvas.
func (v *View) View() string {
	var b strings.Builder

	if v.session == nil {
		b.WriteString(v.styles.Title.Render("Placement"))
		b.WriteString("\n\n")
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading session..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render("sigplace "))
	b.WriteString(v.styles.Muted.Render(v.session.Name()))
	b.WriteString("\n")
	b.WriteString(v.renderPage())
	b.WriteString("\n")
	b.WriteString(v.statusBar.View())
	return b.String()
}

// renderPage draws the visible part of the current page with its boxes.
func (v *View) renderPage() string {
	cols, rows := max(v.width, 1), v.canvasRows()
	page, ok := v.currentPageDims()
	if !ok {
		return v.styles.Muted.Render("Page size unknown")
	}

	grid := v.pageGrid(page, cols, rows)

	var b strings.Builder
	for r, row := range grid {
		if r > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.renderRow(row))
	}
	return b.String()
}

// pageGrid lays out page cells and placeholder boxes. The selected box and
// any gesture frame are drawn last so they stay on top.
func (v *View) pageGrid(page domain.PageDims, cols, rows int) [][]cell {
	scale := v.viewport.Scale()
	offset := v.viewport.Offset()
	cellW, cellH := v.cellWidth(), v.cellHeight()
	rendered := geometry.ScreenPageSize(page, scale)

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			x := offset.X + (float64(c)+0.5)*cellW
			y := offset.Y + (float64(r)+0.5)*cellH
			if x < rendered.Width && y < rendered.Height {
				grid[r][c] = cell{ch: '·', class: classPage}
			} else {
				grid[r][c] = cell{ch: ' ', class: classBlank}
			}
		}
	}

	var active *domain.SignaturePlaceholder
	for _, p := range v.placeholdersOnPage() {
		if v.gesture != nil && v.gesture.id == p.ID {
			continue
		}
		if p.ID == v.selectedID {
			selected := p
			active = &selected
			continue
		}
		box := geometry.ToScreen(p, page, scale)
		drawBox(grid, toCells(box, offset, cellW, cellH), label(p), classBox)
	}

	switch {
	case v.gesture != nil:
		p, _ := v.session.Placeholder(v.gesture.id)
		drawBox(grid, toCells(v.gesture.frame, offset, cellW, cellH), label(p), classActive)
	case active != nil:
		box := geometry.ToScreen(*active, page, scale)
		drawBox(grid, toCells(box, offset, cellW, cellH), label(*active), classActive)
	}

	return grid
}

func label(p domain.SignaturePlaceholder) string {
	return fmt.Sprintf("%d %s", p.Order, p.RecipientName)
}

// drawBox draws a bordered box clipped to the grid with the label on its
// first inner row. A one-row box is drawn as [label].
func drawBox(grid [][]cell, r cellRect, text string, class cellClass) {
	set := func(row, col int, ch rune) {
		if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
			return
		}
		grid[row][col] = cell{ch: ch, class: class}
	}

	for row := r.row0; row <= r.row1; row++ {
		for col := r.col0; col <= r.col1; col++ {
			ch := ' '
			switch {
			case r.row0 == r.row1 && col == r.col0:
				ch = '['
			case r.row0 == r.row1 && col == r.col1:
				ch = ']'
			case r.row0 == r.row1:
			case row == r.row0 && col == r.col0:
				ch = '┌'
			case row == r.row0 && col == r.col1:
				ch = '┐'
			case row == r.row1 && col == r.col0:
				ch = '└'
			case row == r.row1 && col == r.col1:
				ch = '┘'
			case row == r.row0 || row == r.row1:
				ch = '─'
			case col == r.col0 || col == r.col1:
				ch = '│'
			}
			set(row, col, ch)
		}
	}

	textRow := r.row0
	if r.row1-r.row0 >= 2 {
		textRow = r.row0 + 1
	}
	inner := r.col1 - r.col0 - 1
	runes := []rune(text)
	if len(runes) > inner {
		runes = runes[:max(inner, 0)]
	}
	for i, ch := range runes {
		set(textRow, r.col0+1+i, ch)
	}
}

// renderRow renders one grid row, styling runs of equal class together.
func (v *View) renderRow(row []cell) string {
	var b strings.Builder
	var run strings.Builder
	current := classBlank

	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(v.styleFor(current).Render(run.String()))
		run.Reset()
	}

	for _, c := range row {
		if c.class != current {
			flush()
			current = c.class
		}
		run.WriteRune(c.ch)
	}
	flush()
	return b.String()
}

func (v *View) styleFor(class cellClass) lipgloss.Style {
	switch class {
	case classPage:
		return v.styles.Page
	case classBox:
		return v.styles.Placeholder
	case classActive:
		return v.styles.ActivePlaceholder
	default:
		return lipgloss.NewStyle()
	}
}
