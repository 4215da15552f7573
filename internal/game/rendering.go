package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
)

// This file contains all board rendering functionality for the game manager.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var playerColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan}

const (
	playerSymbols  = "ABCDEF"
	cloisterSymbol = '+'
	cellWidth      = 3
)

// BoardString draws the board with every tile as a 3x3 cell: edge types on the sides,
// and the piecen owner or a cloister in the middle. North is up.
func (m *Manager) BoardString(color bool) string {
	return RenderBoard(m.board, color)
}

// RenderBoard draws any set of placements the way BoardString does
func RenderBoard(b *board.Placements, color bool) string {
	if b.Len() == 0 {
		return ""
	}
	lo, hi := b.Bounds()
	width := hi.X - lo.X + 1

	var sb strings.Builder
	sb.Grow((width*cellWidth*4 + 8) * (hi.Y - lo.Y + 1) * cellWidth)

	// Header row
	sb.WriteString("     ")
	for x := lo.X; x <= hi.X; x++ {
		fmt.Fprintf(&sb, "%*d", cellWidth, x)
	}
	sb.WriteString("\n")

	for y := lo.Y; y <= hi.Y; y++ {
		for line := 0; line < cellWidth; line++ {
			if line == 1 {
				fmt.Fprintf(&sb, "%4d ", y)
			} else {
				sb.WriteString("     ")
			}
			for x := lo.X; x <= hi.X; x++ {
				writeCellLine(&sb, b.At(core.NewLocation(x, y)), line, color)
			}
			sb.WriteString("\n")
		}
	}

	// Legend
	sb.WriteString("\nC=city R=road .=grass +=cloister A-F=piecens\n")
	return sb.String()
}

func writeCellLine(sb *strings.Builder, p *board.Placement, line int, color bool) {
	if p == nil {
		sb.WriteString(strings.Repeat(" ", cellWidth))
		return
	}

	switch line {
	case 0:
		sb.WriteByte(' ')
		sb.WriteByte(edgeSymbol(p.Edge(core.North)))
		sb.WriteByte(' ')
	case 1:
		sb.WriteByte(edgeSymbol(p.Edge(core.West)))
		writeCentre(sb, p, color)
		sb.WriteByte(edgeSymbol(p.Edge(core.East)))
	default:
		sb.WriteByte(' ')
		sb.WriteByte(edgeSymbol(p.Edge(core.South)))
		sb.WriteByte(' ')
	}
}

func writeCentre(sb *strings.Builder, p *board.Placement, color bool) {
	if p.Piecen != nil {
		owner := p.Piecen.Owner
		if color {
			sb.WriteString(getPlayerColor(owner))
		}
		sb.WriteByte(playerSymbols[owner%len(playerSymbols)])
		if color {
			sb.WriteString(ColorReset)
		}
		return
	}
	for _, f := range p.Features() {
		if f.Type == tiles.Cloister {
			sb.WriteByte(cloisterSymbol)
			return
		}
	}
	sb.WriteByte(' ')
}

func edgeSymbol(e core.Edge) byte {
	switch e {
	case core.EdgeCity:
		return 'C'
	case core.EdgeRoad:
		return 'R'
	case core.EdgeGrass:
		return '.'
	default:
		return '?'
	}
}

// getPlayerColor returns the color for the given player ID
func getPlayerColor(playerID int) string {
	if playerID < 0 || playerID >= len(playerColors) {
		return ColorWhite
	}
	return playerColors[playerID]
}
