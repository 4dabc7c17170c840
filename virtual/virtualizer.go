package virtual

import "log/slog"

// ScrollElement is the hosting scroll container. The engine only needs its
// two readings; how they are obtained is the host's business.
type ScrollElement interface {
	ScrollOffset() float64
	ViewportExtent() float64
}

// Options configures a Virtualizer.
type Options struct {
	// Count is the number of rows. Negative values are treated as 0.
	Count int
	// Estimate sizes rows that have not been measured. Defaults to
	// Fixed(DefaultEstimate).
	Estimate Estimator
	// Overscan is the number of extra rows materialised on each side of the
	// viewport.
	Overscan int
	// GetItemKey binds positions to record identities. Defaults to IndexKey.
	// Keys of simultaneously visible rows must be unique; this is not checked.
	GetItemKey KeyFunc
	// ScrollElement, when set, is read by Sync.
	ScrollElement ScrollElement

	// OnChange is called after an event moved the range or the total size.
	OnChange func(v *Virtualizer)
	// OnDiagnostic receives clamped inputs.
	OnDiagnostic func(Diagnostic)
	// Logger, when set, also receives diagnostics at warn level.
	Logger *slog.Logger
}

// Item is one materialised row.
type Item struct {
	Index int
	Key   string
	Start float64
	End   float64
	Size  float64
}

// Padding is the empty space that stands in for the rows before the first
// and after the last materialised item.
type Padding struct {
	Top    float64
	Bottom float64
}

// Virtualizer tracks scroll state for one list and answers which rows to
// render. The zero value is not usable; construct with New.
type Virtualizer struct {
	opts    Options
	offsets Offsets

	// measured sizes keyed by item key, so they follow records on reorder.
	measured map[string]float64

	scroll   float64
	viewport float64

	lastRange Range
	lastTotal float64
}

// New constructs a Virtualizer from opts.
func New(opts Options) *Virtualizer {
	v := &Virtualizer{
		measured:  make(map[string]float64),
		lastRange: EmptyRange,
	}
	v.offsets.report = v.diagnose
	v.SetOptions(opts)
	return v
}

// SetOptions replaces the configuration. Offsets are rebuilt from scratch
// because a new estimator or key function can change any row.
func (v *Virtualizer) SetOptions(opts Options) {
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Overscan < 0 {
		opts.Overscan = 0
	}
	if opts.Estimate == nil {
		opts.Estimate = Fixed(DefaultEstimate)
	}
	if opts.GetItemKey == nil {
		opts.GetItemKey = IndexKey
	}
	v.opts = opts
	v.pruneMeasurements()
	v.offsets.Reset(opts.Count, v.extent)
	if opts.ScrollElement != nil {
		v.scroll = opts.ScrollElement.ScrollOffset()
		v.viewport = max(0, opts.ScrollElement.ViewportExtent())
	}
	v.update()
}

// Options returns the active configuration.
func (v *Virtualizer) Options() Options {
	return v.opts
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// SetScrollOffset records a new scroll position.
func (v *Virtualizer) SetScrollOffset(offset float64) {
	v.scroll = offset
	v.update()
}

// ScrollBy moves the scroll position by delta, keeping the last row at or
// above the bottom of the viewport.
func (v *Virtualizer) ScrollBy(delta float64) {
	next := v.scroll + delta
	if next > v.MaxScrollOffset() {
		next = v.MaxScrollOffset()
	}
	if next < 0 {
		next = 0
	}
	v.SetScrollOffset(next)
}

// SetViewportExtent records a resize of the scroll container.
func (v *Virtualizer) SetViewportExtent(extent float64) {
	if extent < 0 {
		extent = 0
	}
	v.viewport = extent
	v.update()
}

// SetCount records a change in the number of rows. Offsets of rows below
// the smaller of the two counts are kept.
func (v *Virtualizer) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	if count == v.opts.Count {
		return
	}
	v.opts.Count = count
	v.offsets.Resize(count)
	v.update()
}

// Reset records that rows changed order or content without necessarily
// changing count (a sort, a filter swap). Every offset is rebuilt.
func (v *Virtualizer) Reset() {
	v.offsets.Invalidate(0)
	v.update()
}

// Sync pulls both readings from the configured ScrollElement.
func (v *Virtualizer) Sync() {
	el := v.opts.ScrollElement
	if el == nil {
		return
	}
	v.scroll = el.ScrollOffset()
	v.viewport = max(0, el.ViewportExtent())
	v.update()
}

// Measure overrides the estimate for the row at index with a measured size.
func (v *Virtualizer) Measure(index int, size float64) {
	if index < 0 || index >= v.opts.Count {
		return
	}
	v.measured[v.opts.GetItemKey(index)] = size
	v.offsets.Invalidate(index)
	v.update()
}

// pruneMeasurements drops sizes measured for keys the current options no
// longer produce. SetCount and Reset keep them: a row that scrolls out of a
// shrunk count or a filter may come back.
func (v *Virtualizer) pruneMeasurements() {
	if len(v.measured) == 0 {
		return
	}
	live := make(map[string]struct{}, len(v.measured))
	for i := 0; i < v.opts.Count && len(live) < len(v.measured); i++ {
		k := v.opts.GetItemKey(i)
		if _, ok := v.measured[k]; ok {
			live[k] = struct{}{}
		}
	}
	for k := range v.measured {
		if _, ok := live[k]; !ok {
			delete(v.measured, k)
		}
	}
}

// ClearMeasurements drops every measured size.
func (v *Virtualizer) ClearMeasurements() {
	if len(v.measured) == 0 {
		return
	}
	clear(v.measured)
	v.offsets.Invalidate(0)
	v.update()
}

// update clamps the stored scroll offset and notifies listeners when the
// derived state moved.
func (v *Virtualizer) update() {
	total := v.offsets.Total()
	v.scroll = clampScroll(v.scroll, total)

	r := ComputeRange(&v.offsets, v.scroll, v.viewport, v.opts.Overscan)
	if r == v.lastRange && total == v.lastTotal {
		return
	}
	v.lastRange = r
	v.lastTotal = total
	if v.opts.OnChange != nil {
		v.opts.OnChange(v)
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Count returns the current number of rows.
func (v *Virtualizer) Count() int { return v.opts.Count }

// ScrollOffset returns the clamped scroll position.
func (v *Virtualizer) ScrollOffset() float64 { return v.scroll }

// ViewportExtent returns the last known viewport size.
func (v *Virtualizer) ViewportExtent() float64 { return v.viewport }

// TotalSize returns the extent of every row together.
func (v *Virtualizer) TotalSize() float64 {
	return v.offsets.Total()
}

// MaxScrollOffset is the scroll position that puts the end of the last row
// at the bottom of the viewport.
func (v *Virtualizer) MaxScrollOffset() float64 {
	return max(0, v.offsets.Total()-v.viewport)
}

// Range returns the overscanned range for the current state. It is computed
// once per event by update.
func (v *Virtualizer) Range() Range {
	return v.lastRange
}

// VirtualItems returns the rows to materialise, in ascending index order.
// It has no side effects; repeated calls with unchanged inputs return equal
// slices.
func (v *Virtualizer) VirtualItems() []Item {
	r := v.Range()
	if r.Empty() {
		return nil
	}
	items := make([]Item, 0, r.Len())
	for i := r.Start; i <= r.End; i++ {
		items = append(items, v.item(i))
	}
	return items
}

// Item returns the virtual item for index whether or not it is in range.
func (v *Virtualizer) Item(index int) (Item, bool) {
	if index < 0 || index >= v.opts.Count {
		return Item{}, false
	}
	return v.item(index), true
}

func (v *Virtualizer) item(i int) Item {
	start := v.offsets.Offset(i)
	end := v.offsets.Offset(i + 1)
	return Item{
		Index: i,
		Key:   v.opts.GetItemKey(i),
		Start: start,
		End:   end,
		Size:  end - start,
	}
}

// Padding returns the spacer sizes for the current items.
func (v *Virtualizer) Padding() Padding {
	return Paddings(v.VirtualItems(), v.TotalSize())
}

// Paddings computes the spacers bracketing items inside a list of the given
// total size. Both values are clamped at zero: while a shrinking count and a
// stale scroll offset briefly disagree, the raw difference can go negative.
func Paddings(items []Item, total float64) Padding {
	if len(items) == 0 {
		return Padding{}
	}
	return Padding{
		Top:    max(0, items[0].Start),
		Bottom: max(0, total-items[len(items)-1].End),
	}
}

// IndexAtOffset returns the row containing offset, or -1 with no rows.
func (v *Virtualizer) IndexAtOffset(offset float64) int {
	if v.opts.Count == 0 {
		return -1
	}
	return v.offsets.IndexAt(clampScroll(offset, v.offsets.Total()))
}

func (v *Virtualizer) extent(i int) float64 {
	if len(v.measured) > 0 {
		if size, ok := v.measured[v.opts.GetItemKey(i)]; ok {
			return size
		}
	}
	return v.opts.Estimate(i)
}

func (v *Virtualizer) diagnose(index int, value float64) {
	d := Diagnostic{Kind: NonPositiveExtent, Index: index, Value: value}
	if v.opts.OnDiagnostic != nil {
		v.opts.OnDiagnostic(d)
	}
	if v.opts.Logger != nil {
		v.opts.Logger.Warn("clamped row size", "kind", d.Kind.String(), "index", index, "value", value)
	}
}
