package formatter

import (
	"strings"

	"github.com/alexanderramin/okrtree/internal/shape"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// TreeItem is a single flattened row of an objective tree display.
type TreeItem struct {
	Title    string
	Badge    string // level badge, already styled
	Progress int    // 0-100
	Depth    int
	IsLast   bool
}

// FlattenTree turns a shaped tree into display rows in depth-first order.
func FlattenTree(root *shape.Node) []TreeItem {
	var items []TreeItem
	var walk func(n *shape.Node, depth int, isLast bool)
	walk = func(n *shape.Node, depth int, isLast bool) {
		items = append(items, TreeItem{
			Title:    n.Title,
			Badge:    LevelBadge(n.Level),
			Progress: n.ProgressPercentage,
			Depth:    depth,
			IsLast:   isLast,
		})
		for i, c := range n.Children {
			walk(c, depth+1, i == len(n.Children)-1)
		}
	}
	if root != nil {
		walk(root, 0, true)
	}
	return items
}

// RenderTree renders tree rows with box-drawing connectors, a level badge,
// and a right-aligned progress bar per row.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		bar     string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Depth > 0 {
			for i := 1; i < item.Depth; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		content := prefix + item.Title + " " + item.Badge
		lines[idx].content = content
		lines[idx].bar = RenderProgress(item.Progress, 10)

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		pad := maxContentWidth - lipgloss.Width(li.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.bar + "\n")
	}
	return b.String()
}
