package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	zone "github.com/lrstanley/bubblezone"

	"draglist/internal/config"
	"draglist/internal/store"
	"draglist/internal/watch"
)

// Toolbar zone ids for clickable buttons.
const (
	zoneSave   = "toolbar-save"
	zoneReload = "toolbar-reload"
	zoneHelp   = "toolbar-help"
)

// Rows above the list body: header, toolbar, one blank line.
const chromeTop = 3

// Rows below the list body: flash line and the help footer.
const chromeBottom = 2

// Options configure the demo app.
type Options struct {
	// ListID names the list in the saved-orders database.
	ListID string
	// ItemsPath is the JSON items file; empty uses a built-in sample set.
	ItemsPath string
	// DBPath is the saved-orders database; empty disables persistence.
	DBPath string
	// VariableHeight swaps the built-in samples for a mixed-height set.
	VariableHeight bool
	Config         config.Config
}

// fileItem is one entry of the items JSON file.
type fileItem struct {
	ItemKey   string `json:"key"`
	ItemTitle string `json:"title"`
	// Rows is the row height, for exercising variable-extent mode. Omitted
	// or zero means a single row.
	Rows int `json:"rows,omitempty"`
}

func (f fileItem) Key() string   { return f.ItemKey }
func (f fileItem) Title() string { return f.ItemTitle }

// fileDelegate renders fileItem rows, honoring their declared height.
type fileDelegate struct {
	inner DefaultDelegate
}

func (d fileDelegate) Height(item Item, width int) int {
	if fi, ok := item.(fileItem); ok && fi.Rows > 1 {
		return fi.Rows
	}
	return 1
}

func (d fileDelegate) Render(item Item, index int, dragging bool, width int) string {
	first := d.inner.Render(item, index, dragging, width)
	h := d.Height(item, width)
	if h <= 1 {
		return first
	}
	// Continuation rows are blank filler so taller items read as one block.
	filler := strings.Repeat(" ", width)
	if dragging {
		filler = styleDragging.Render(filler)
	}
	lines := make([]string, h)
	lines[0] = first
	for i := 1; i < h; i++ {
		lines[i] = filler
	}
	return strings.Join(lines, "\n")
}

type fileChangedMsg struct{}
type flashClearMsg struct{ seq int }

// App is the demo program: a reorderable list with a clickable toolbar,
// saved orders and live reload of the items file.
type App struct {
	opts Options
	keys KeyMap
	help help.Model
	list *List

	orders  *store.Orders
	watcher *watch.Watcher

	width    int
	height   int
	showHelp bool

	flash    string
	flashSeq int
}

// Run starts the demo app and blocks until it exits.
func Run(opts Options) error {
	zone.NewGlobal()
	defer zone.Close()

	if opts.ListID == "" {
		opts.ListID = "demo"
	}
	estimate := opts.Config.RowEstimate
	if estimate <= 0 {
		estimate = 1
	}

	items, err := loadItems(opts.ItemsPath)
	if err != nil {
		return err
	}
	if opts.VariableHeight && opts.ItemsPath == "" {
		items = sampleVariableItems()
	}

	a := &App{
		opts: opts,
		keys: DefaultKeyMap(),
		help: help.New(),
		list: NewList(opts.Config.Drag(), fileDelegate{inner: NewDefaultDelegate()}, estimate),
	}

	if opts.DBPath != "" {
		orders, err := store.Open(context.Background(), opts.DBPath)
		if err != nil {
			return err
		}
		defer orders.Close()
		a.orders = orders
		if saved, err := orders.LoadOrder(context.Background(), opts.ListID); err == nil {
			items = orderItems(items, store.ApplyOrder(itemKeys(items), saved))
		}
	}
	a.list.SetItems(items)

	if opts.ItemsPath != "" {
		w, err := watch.New(opts.ItemsPath)
		if err != nil {
			// Reload stays available via the keybinding.
			debugLogf("watch %s: %v", opts.ItemsPath, err)
		} else {
			defer w.Close()
			a.watcher = w
		}
	}

	_, err = tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.watchCmd()
}

func (a *App) watchCmd() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	c := a.watcher.C
	return func() tea.Msg {
		<-c
		return fileChangedMsg{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetScreenTop(chromeTop)
		a.list.SetSize(msg.Width, max(msg.Height-chromeTop-chromeBottom, 1))
		return a, nil

	case tea.KeyMsg:
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Save):
			return a, a.saveOrder()
		case key.Matches(msg, a.keys.Reload):
			return a, a.reloadItems("items reloaded")
		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp {
			if msg.Action == tea.MouseActionPress {
				a.showHelp = false
			}
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			switch {
			case zone.Get(zoneSave).InBounds(msg):
				return a, a.saveOrder()
			case zone.Get(zoneReload).InBounds(msg):
				return a, a.reloadItems("items reloaded")
			case zone.Get(zoneHelp).InBounds(msg):
				a.showHelp = true
				return a, nil
			}
		}
		return a, a.list.Update(msg)

	case ReorderedMsg:
		debugLogf("reordered list=%s keys=%v", a.opts.ListID, msg.Keys)
		return a, a.persist(msg.Keys, "order saved")

	case fileChangedMsg:
		return a, tea.Batch(a.reloadItems("items file changed, reloaded"), a.watchCmd())

	case flashClearMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
		}
		return a, nil
	}

	// Everything else (long-press timers, frame ticks) belongs to the list.
	return a, a.list.Update(msg)
}

func (a *App) saveOrder() tea.Cmd {
	return a.persist(a.list.Keys(), "order saved")
}

func (a *App) persist(keys []string, note string) tea.Cmd {
	if a.orders == nil {
		return a.setFlash("no database, order not saved")
	}
	if err := a.orders.SaveOrder(context.Background(), a.opts.ListID, keys); err != nil {
		debugLogf("save order: %v", err)
		return a.setFlash(fmt.Sprintf("save failed: %v", err))
	}
	return a.setFlash(note)
}

func (a *App) reloadItems(note string) tea.Cmd {
	items, err := loadItems(a.opts.ItemsPath)
	if err != nil {
		debugLogf("reload items: %v", err)
		return a.setFlash(fmt.Sprintf("reload failed: %v", err))
	}
	// Keep the current on-screen order for keys that survive the reload.
	items = orderItems(items, store.ApplyOrder(itemKeys(items), a.list.Keys()))
	a.list.SetItems(items)
	return a.setFlash(note)
}

func (a *App) setFlash(s string) tea.Cmd {
	a.flash = s
	a.flashSeq++
	seq := a.flashSeq
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}

	header := styleHeader.Render("draglist") + styleChrome.Render("  long-press a row to drag it")
	toolbar := strings.Join([]string{
		zone.Mark(zoneSave, styleButton.Render("Save")),
		zone.Mark(zoneReload, styleButton.Render("Reload")),
		zone.Mark(zoneHelp, styleButton.Render("Help")),
	}, " ")

	var body string
	if a.showHelp {
		body = renderHelp(a.width)
	} else {
		body = a.list.View()
	}

	footer := styleFlash.Render(a.flash) + "\n" + a.help.View(a.keys)

	return zone.Scan(header + "\n" + toolbar + "\n\n" + body + "\n" + footer)
}

// loadItems reads the items JSON file; an empty path yields the sample set.
func loadItems(path string) ([]Item, error) {
	if path == "" {
		return sampleItems(), nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return sampleItems(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var raw []fileItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse items %s: %w", path, err)
	}
	items := make([]Item, 0, len(raw))
	for _, fi := range raw {
		if fi.ItemKey == "" {
			return nil, fmt.Errorf("parse items %s: entry without a key", path)
		}
		items = append(items, fi)
	}
	return items, nil
}

func sampleItems() []Item {
	titles := []string{
		"Buy groceries",
		"Water the plants",
		"Reply to Sam",
		"Book dentist appointment",
		"Fix the bike tire",
		"Plan the weekend trip",
		"Renew library books",
		"Clean the garage",
		"Back up the laptop",
		"Call the landlord",
	}
	items := make([]Item, len(titles))
	for i, title := range titles {
		items[i] = fileItem{ItemKey: fmt.Sprintf("sample-%d", i+1), ItemTitle: title}
	}
	return items
}

func sampleVariableItems() []Item {
	items := sampleItems()
	// Every third row gets extra height so the measured-extent math has
	// something to chew on.
	for i := range items {
		fi := items[i].(fileItem)
		fi.Rows = 1 + i%3
		items[i] = fi
	}
	return items
}

func itemKeys(items []Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	return keys
}

func orderItems(items []Item, keys []string) []Item {
	byKey := make(map[string]Item, len(items))
	for _, it := range items {
		byKey[it.Key()] = it
	}
	out := make([]Item, 0, len(items))
	for _, k := range keys {
		if it, ok := byKey[k]; ok {
			out = append(out, it)
		}
	}
	return out
}
