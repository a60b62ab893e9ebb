package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/okrtree/internal/cli/formatter"
	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/shape"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// fallbackRootID is tried when the root listing endpoint fails. Backends
// seeded by the default fixtures always have an objective with this ID.
const fallbackRootID = "1"

// selectMode controls which root is selected after a roots reload.
type selectMode int

const (
	selKeep selectMode = iota // keep current selection when still present
	selFirst
	selLast
)

// rootsLoadedMsg carries the result of a root objectives fetch.
type rootsLoadedMsg struct {
	gen      int
	roots    []*domain.Objective
	sel      selectMode
	degraded bool // single tree fetched via the fallback root
	err      error
}

// treeLoadedMsg carries one shaped objective tree.
type treeLoadedMsg struct {
	gen    int
	rootID string
	root   *shape.Node
	err    error
}

// usersLoadedMsg carries the employee ID to name map.
type usersLoadedMsg struct {
	users domain.UsersMap
	err   error
}

// rootCreatedMsg, subCreatedMsg, objectiveSavedMsg and objectiveDeletedMsg
// are emitted by mutation wizards after the backend accepted the change.
type rootCreatedMsg struct{}

type subCreatedMsg struct{}

type objectiveSavedMsg struct{}

type objectiveDeletedMsg struct {
	objectiveID string
}

// isBroadcastMsg reports whether a message carries data results or mutation
// notifications that must reach every view on the stack, not just the top.
func isBroadcastMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case rootsLoadedMsg, treeLoadedMsg, usersLoadedMsg,
		tasksLoadedMsg, taskCreatedMsg, taskSavedMsg, taskDeletedMsg,
		taskProgressMsg,
		rootCreatedMsg, subCreatedMsg, objectiveSavedMsg, objectiveDeletedMsg:
		return true
	}
	return false
}

// treeRow is a flattened display row: either an objective node or a task
// belonging to an expanded objective's panel.
type treeRow struct {
	isTask      bool
	objectiveID string // owning objective for tasks, node ID otherwise
	depth       int
	isLast      bool

	node *shape.Node
	task *domain.Task

	// Panel state copied onto the objective row at flatten time.
	expanded    bool
	panelStatus string // non-empty when loading or errored
}

// treeView is the home view: the selected objective tree with expandable
// per-objective task panels.
type treeView struct {
	state *SharedState

	roots          []*domain.Objective
	selectedRootID string
	tree           *shape.Node
	degraded       bool

	// Generation counters for in-flight fetches. A response whose
	// generation is not current is stale and silently dropped.
	rootsGen int
	treeGen  int

	// Task panels registered per expanded objective ID. Collapsing an
	// objective unregisters its panel.
	panels map[string]*taskPanel

	cursor       int
	loadingRoots bool
	loadingTree  bool
	err          error
}

func newTreeView(state *SharedState) *treeView {
	return &treeView{
		state:        state,
		panels:       make(map[string]*taskPanel),
		loadingRoots: true,
	}
}

func (v *treeView) ID() ViewID { return ViewTree }

func (v *treeView) Title() string {
	for _, r := range v.roots {
		if r.ID == v.selectedRootID {
			return r.ShortTitle(24)
		}
	}
	return "Objectives"
}

func (v *treeView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "tasks")),
		key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "switch tree")),
		key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "new tree")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "new sub-objective")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new task")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "edit")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "progress")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my tasks")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *treeView) Init() tea.Cmd {
	return tea.Batch(v.loadRoots(selFirst), v.loadUsers())
}

// loadRoots fetches the root objective list. When the listing endpoint
// fails, it degrades to fetching the fallback root's tree so the view
// still shows something useful.
func (v *treeView) loadRoots(sel selectMode) tea.Cmd {
	v.rootsGen++
	v.loadingRoots = true
	gen := v.rootsGen
	client := v.state.App.Remote
	return func() tea.Msg {
		ctx := context.Background()
		roots, err := client.RootObjectives(ctx)
		if err == nil {
			return rootsLoadedMsg{gen: gen, roots: roots, sel: sel}
		}

		tree, ferr := client.ObjectiveTree(ctx, fallbackRootID)
		if ferr != nil {
			return rootsLoadedMsg{gen: gen, err: err}
		}
		return rootsLoadedMsg{gen: gen, roots: []*domain.Objective{tree}, sel: sel, degraded: true}
	}
}

// loadTree fetches and shapes the selected root's full tree.
func (v *treeView) loadTree(rootID string) tea.Cmd {
	v.treeGen++
	v.loadingTree = true
	gen := v.treeGen
	client := v.state.App.Remote
	return func() tea.Msg {
		raw, err := client.ObjectiveTree(context.Background(), rootID)
		if err != nil {
			return treeLoadedMsg{gen: gen, rootID: rootID, err: err}
		}
		root, err := shape.Build(raw)
		return treeLoadedMsg{gen: gen, rootID: rootID, root: root, err: err}
	}
}

func (v *treeView) loadUsers() tea.Cmd {
	client := v.state.App.Remote
	return func() tea.Msg {
		users, err := client.UsersMap(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

func (v *treeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case rootsLoadedMsg:
		if msg.gen != v.rootsGen {
			return v, nil // stale fetch
		}
		v.loadingRoots = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.roots = msg.roots
		v.degraded = msg.degraded
		if len(v.roots) == 0 {
			v.selectedRootID = ""
			v.tree = nil
			v.panels = make(map[string]*taskPanel)
			v.cursor = 0
			return v, nil
		}
		v.applySelection(msg.sel)
		return v, v.loadTree(v.selectedRootID)

	case treeLoadedMsg:
		if msg.gen != v.treeGen || msg.rootID != v.selectedRootID {
			return v, nil // stale fetch or selection moved on
		}
		v.loadingTree = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.tree = msg.root
		v.prunePanels()
		v.clampCursor()
		return v, nil

	case usersLoadedMsg:
		if msg.err == nil {
			v.state.Users = msg.users
		}
		return v, nil

	case tasksLoadedMsg:
		if p, ok := v.panels[msg.objectiveID]; ok {
			p.apply(msg)
		}
		return v, nil

	case taskCreatedMsg:
		// Scoped append: only the owning panel changes. The tree is
		// refetched because task mutations roll up into progress.
		if p, ok := v.panels[msg.objectiveID]; ok {
			p.apply(msg)
		}
		return v, v.loadTree(v.selectedRootID)

	case taskSavedMsg:
		if p, ok := v.panels[msg.objectiveID]; ok {
			p.apply(msg)
		}
		return v, v.loadTree(v.selectedRootID)

	case taskDeletedMsg:
		if p, ok := v.panels[msg.objectiveID]; ok {
			p.apply(msg)
		}
		return v, v.loadTree(v.selectedRootID)

	case taskProgressMsg:
		if p, ok := v.panels[msg.objectiveID]; ok {
			p.apply(msg)
		}
		return v, v.loadTree(v.selectedRootID)

	case rootCreatedMsg:
		// A brand new tree: keep the current selection when one exists,
		// otherwise select the newest (last) root.
		sel := selKeep
		if v.selectedRootID == "" {
			sel = selLast
		}
		return v, v.loadRoots(sel)

	case subCreatedMsg:
		// Stay on the same root; reload both the list (titles, progress)
		// and the expanded tree.
		return v, tea.Batch(v.loadRoots(selKeep), v.loadTree(v.selectedRootID))

	case objectiveSavedMsg:
		return v, tea.Batch(v.loadRoots(selKeep), v.loadTree(v.selectedRootID))

	case objectiveDeletedMsg:
		delete(v.panels, msg.objectiveID)
		if msg.objectiveID == v.selectedRootID {
			// The selected tree is gone; fall back to the first root.
			return v, v.loadRoots(selFirst)
		}
		return v, tea.Batch(v.loadRoots(selKeep), v.loadTree(v.selectedRootID))

	case refreshViewMsg:
		cmds := []tea.Cmd{v.loadRoots(selKeep), v.loadUsers()}
		if v.selectedRootID != "" {
			cmds = append(cmds, v.loadTree(v.selectedRootID))
		}
		for _, p := range v.panels {
			cmds = append(cmds, p.load(v.state.App.Remote))
		}
		return v, tea.Batch(cmds...)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *treeView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.flatten()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}

	case "[", "]":
		if len(v.roots) < 2 {
			return v, nil
		}
		idx := v.selectedIndex()
		if msg.String() == "[" {
			idx--
		} else {
			idx++
		}
		idx = (idx + len(v.roots)) % len(v.roots)
		v.selectedRootID = v.roots[idx].ID
		v.tree = nil
		v.panels = make(map[string]*taskPanel)
		v.cursor = 0
		return v, v.loadTree(v.selectedRootID)

	case "enter":
		// Toggle the task panel under the cursor's objective.
		row, ok := v.rowAt(rows, v.cursor)
		if !ok {
			return v, nil
		}
		id := row.objectiveID
		if _, expanded := v.panels[id]; expanded {
			delete(v.panels, id)
			v.clampCursor()
			return v, nil
		}
		p := newTaskPanel(id)
		v.panels[id] = p
		return v, p.load(v.state.App.Remote)

	case "O":
		return v, pushView(newRootObjectiveFormView(v.state))

	case "o":
		row, ok := v.rowAt(rows, v.cursor)
		if !ok || row.isTask {
			return v, nil
		}
		return v, pushView(newSubObjectiveFormView(v.state, row.node, v.selectedRootID))

	case "t":
		row, ok := v.rowAt(rows, v.cursor)
		if !ok {
			return v, nil
		}
		return v, pushView(newTaskFormView(v.state, row.objectiveID, nil))

	case "u", "e":
		row, ok := v.rowAt(rows, v.cursor)
		if !ok {
			return v, nil
		}
		if row.isTask {
			return v, pushView(newTaskFormView(v.state, row.objectiveID, row.task))
		}
		return v, v.openEditObjective(row.node.ID)

	case "p":
		row, ok := v.rowAt(rows, v.cursor)
		if !ok || !row.isTask {
			return v, nil
		}
		return v, pushView(newTaskProgressFormView(v.state, row.objectiveID, row.task))

	case "x":
		row, ok := v.rowAt(rows, v.cursor)
		if !ok {
			return v, nil
		}
		if row.isTask {
			return v, v.deleteTask(row)
		}
		return v, v.deleteObjective(row)

	case "m":
		return v, pushView(newMyTasksView(v.state))

	case "r":
		return v.Update(refreshViewMsg{})
	}

	return v, nil
}

// openEditObjective hydrates the edit wizard off the event loop: the fetch
// runs as a command and the wizard is pushed only once the objective arrives.
func (v *treeView) openEditObjective(id string) tea.Cmd {
	state := v.state
	client := v.state.App.Remote
	return func() tea.Msg {
		obj, err := client.Objective(context.Background(), id)
		if err != nil {
			return noticeMsg{text: errorText(err)}
		}
		return pushViewMsg{view: newEditObjectiveFormView(state, obj)}
	}
}

func (v *treeView) deleteObjective(row treeRow) tea.Cmd {
	id := row.node.ID
	title := row.node.Title
	descendants := shape.Count(row.node) - 1
	prompt := fmt.Sprintf("Delete %q", title)
	if descendants > 0 {
		prompt += fmt.Sprintf(" and %d descendant objective(s)", descendants)
	}
	prompt += "? Tasks under them are removed too."
	client := v.state.App.Remote
	return execConfirmDelete(v.state, prompt, func(ctx context.Context) error {
		return client.DeleteObjective(ctx, id)
	}, func() tea.Msg {
		return objectiveDeletedMsg{objectiveID: id}
	})
}

func (v *treeView) deleteTask(row treeRow) tea.Cmd {
	objectiveID := row.objectiveID
	taskID := row.task.ID
	prompt := fmt.Sprintf("Delete task %q?", row.task.Title)
	client := v.state.App.Remote
	return execConfirmDelete(v.state, prompt, func(ctx context.Context) error {
		return client.DeleteTask(ctx, taskID)
	}, func() tea.Msg {
		return taskDeletedMsg{objectiveID: objectiveID, taskID: taskID}
	})
}

// applySelection repositions selectedRootID after a roots reload.
func (v *treeView) applySelection(sel selectMode) {
	switch sel {
	case selFirst:
		v.selectedRootID = v.roots[0].ID
	case selLast:
		v.selectedRootID = v.roots[len(v.roots)-1].ID
	case selKeep:
		for _, r := range v.roots {
			if r.ID == v.selectedRootID {
				return
			}
		}
		v.selectedRootID = v.roots[0].ID
	}
}

func (v *treeView) selectedIndex() int {
	for i, r := range v.roots {
		if r.ID == v.selectedRootID {
			return i
		}
	}
	return 0
}

// prunePanels drops panels whose objective no longer exists in the tree.
func (v *treeView) prunePanels() {
	for id := range v.panels {
		if shape.Find(v.tree, id) == nil {
			delete(v.panels, id)
		}
	}
}

func (v *treeView) clampCursor() {
	n := len(v.flatten())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *treeView) rowAt(rows []treeRow, i int) (treeRow, bool) {
	if i < 0 || i >= len(rows) {
		return treeRow{}, false
	}
	return rows[i], true
}

// flatten walks the shaped tree depth-first, interleaving each expanded
// objective's task rows directly beneath its objective row.
func (v *treeView) flatten() []treeRow {
	var rows []treeRow
	var walk func(n *shape.Node, depth int, isLast bool)
	walk = func(n *shape.Node, depth int, isLast bool) {
		row := treeRow{
			objectiveID: n.ID,
			depth:       depth,
			isLast:      isLast,
			node:        n,
		}
		if p, ok := v.panels[n.ID]; ok {
			row.expanded = true
			switch {
			case p.loading:
				row.panelStatus = "loading"
			case p.err != nil:
				row.panelStatus = "error"
			}
		}
		rows = append(rows, row)

		if p, ok := v.panels[n.ID]; ok && !p.loading && p.err == nil {
			for i := range p.tasks {
				rows = append(rows, treeRow{
					isTask:      true,
					objectiveID: n.ID,
					depth:       depth + 1,
					task:        &p.tasks[i],
				})
			}
		}
		for i, c := range n.Children {
			walk(c, depth+1, i == len(n.Children)-1)
		}
	}
	if v.tree != nil {
		walk(v.tree, 0, true)
	}
	return rows
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *treeView) View() string {
	if v.loadingRoots && len(v.roots) == 0 {
		return "\n  " + formatter.Dim("Loading objectives...")
	}
	if v.err != nil && len(v.roots) == 0 {
		return "\n  " + errorText(v.err)
	}
	if len(v.roots) == 0 {
		return "\n  " + formatter.Dim("No objective trees yet. Press O to create one.")
	}

	var b strings.Builder
	b.WriteString("\n" + v.renderRootsBar() + "\n\n")

	if v.err != nil {
		b.WriteString("  " + errorText(v.err) + "\n\n")
	}

	if v.tree == nil {
		if v.loadingTree {
			b.WriteString("  " + formatter.Dim("Loading tree..."))
		}
		return b.String()
	}

	rows := v.flatten()
	for i, row := range rows {
		b.WriteString(v.renderRow(row, i == v.cursor))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderRootsBar shows every tree root as a tab, the selected one highlighted.
func (v *treeView) renderRootsBar() string {
	var tabs []string
	for _, r := range v.roots {
		label := " " + r.ShortTitle(20) + " "
		if r.ID == v.selectedRootID {
			tabs = append(tabs, formatter.StyleHeader.Render(label))
		} else {
			tabs = append(tabs, formatter.Dim(label))
		}
	}
	bar := "  " + strings.Join(tabs, formatter.Dim("│"))
	if v.degraded {
		bar += "  " + formatter.StyleYellow.Render("(offline listing, showing default tree)")
	}
	return bar
}

func (v *treeView) renderRow(row treeRow, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}
	indent := strings.Repeat("  ", row.depth)

	if row.isTask {
		t := row.task
		line := fmt.Sprintf("%s%s%s %s  %s",
			cursor, indent,
			formatter.StatusPill(t.Status),
			t.Title,
			formatter.RenderProgress(t.ProgressPercentage, 6),
		)
		if t.DueDate != "" {
			line += "  " + formatter.DueDateStyled(t.DueDate)
		}
		if len(t.AssignedTo) > 0 {
			line += "  " + formatter.Dim(formatter.AssigneeNames(t.AssignedTo, v.state.Users))
		}
		return line
	}

	n := row.node
	indicator := "▸ "
	if row.expanded {
		indicator = "▾ "
	}
	line := fmt.Sprintf("%s%s%s%s %s  %s",
		cursor, indent,
		formatter.Dim(indicator),
		formatter.StyleBold.Render(n.Title),
		formatter.LevelBadge(n.Level),
		formatter.RenderProgress(n.ProgressPercentage, 8),
	)
	switch row.panelStatus {
	case "loading":
		line += "  " + formatter.Dim("loading tasks...")
	case "error":
		line += "  " + formatter.StyleRed.Render("tasks failed to load")
	}
	return line
}
