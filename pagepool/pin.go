package pagepool

// PinnedPage is a scoped, exclusive-use handle over one page frame.
// Callers must call Release once done; a released handle is inert
// against a second Release.
type PinnedPage struct {
	mgr    *Manager
	pageID PageID
	data   []byte
	dirty  bool
}

func newPinnedPage(mgr *Manager, pid PageID, data []byte) *PinnedPage {
	return &PinnedPage{mgr: mgr, pageID: pid, data: data}
}

// ID returns the page this handle is pinning.
func (p *PinnedPage) ID() PageID { return p.pageID }

// Data returns the raw frame bytes, including the trailing footer.
func (p *PinnedPage) Data() []byte { return p.data }

// Size returns the length of Data().
func (p *PinnedPage) Size() int { return len(p.data) }

// Dirty reports whether this handle has been marked dirty since it was
// acquired.
func (p *PinnedPage) Dirty() bool { return p.dirty }

// MarkDirty records that this handle's view of the frame has been
// written to; the owning directory entry is marked dirty on Release.
func (p *PinnedPage) MarkDirty() { p.dirty = true }

// Release decrements the owning directory entry's pin count and, if
// this handle was marked dirty, marks the entry dirty. Safe to call
// more than once.
func (p *PinnedPage) Release() {
	if p.pageID == 0 {
		return
	}
	p.mgr.unpinPage(p.pageID, p.dirty)
	p.pageID = 0
}
