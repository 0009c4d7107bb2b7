package nav

// Direction is a vertical navigation step.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}

// FocusController moves the selection through the active page's navigable
// elements. It keeps only the selection index between calls; the element
// list is collected again for every action.
type FocusController struct {
	host      Host
	collector Collector

	index     int
	lastCount int
	page      any
	hasPage   bool
}

// NewFocusController creates a controller for host. host may be nil until
// the window is ready.
func NewFocusController(host Host, collector Collector) *FocusController {
	return &FocusController{host: host, collector: collector}
}

// SetHost replaces the host and forgets the current selection.
func (f *FocusController) SetHost(host Host) {
	f.host = host
	f.Reset()
}

// Index returns the selection index.
func (f *FocusController) Index() int {
	return f.index
}

// Reset forgets the selection so the next action starts from the first
// element.
func (f *FocusController) Reset() {
	f.index = 0
	f.lastCount = 0
	f.page = nil
	f.hasPage = false
}

// Navigate moves the selection one element up or down, clamped at both ends,
// and focuses the element it lands on. On a freshly populated list or a new
// page the move starts from the first element. It reports whether focus was
// requested.
func (f *FocusController) Navigate(dir Direction) bool {
	elements, _ := f.collect()
	if len(elements) == 0 {
		return false
	}

	switch dir {
	case DirectionUp:
		f.index = max(0, f.index-1)
	case DirectionDown:
		f.index = min(len(elements)-1, f.index+1)
	}

	f.host.RequestFocus(elements[f.index].Node)
	return true
}

// ActivateSelected runs the default action of the selected element. An empty
// page or an out of range selection is a no-op. On a freshly populated list
// or a new page the first element is focused instead of run. It reports
// whether an action ran.
func (f *FocusController) ActivateSelected() bool {
	elements, fresh := f.collect()
	if f.index < 0 || f.index >= len(elements) {
		return false
	}
	if fresh {
		f.host.RequestFocus(elements[f.index].Node)
		return false
	}
	return elements[f.index].Activate()
}

// collect gathers the active page's elements. fresh is true when the
// selection was reset because the list went from empty to populated or the
// page changed.
func (f *FocusController) collect() (elements []Element, fresh bool) {
	if f.host == nil {
		return nil, false
	}
	page := f.host.ActivePage()
	if page == nil {
		f.lastCount = 0
		return nil, false
	}

	key, keyed := nodeKey(page)
	if keyed && f.hasPage && key != f.page {
		fresh = true
	}
	f.page, f.hasPage = key, keyed

	elements = f.collector.Collect(page)
	if len(elements) > 0 && f.lastCount == 0 {
		fresh = true
	}
	f.lastCount = len(elements)

	switch {
	case len(elements) == 0:
		f.index = 0
		fresh = false
	case fresh:
		f.index = 0
	case f.index >= len(elements):
		// The page shrank since the last action
		f.index = len(elements) - 1
	}
	return elements, fresh
}
