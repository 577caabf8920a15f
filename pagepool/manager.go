package pagepool

import (
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
)

// directoryEntry tracks one frame of the backing pool. poolIndex is
// assigned at construction and never changes for the life of the entry;
// only its position within Manager.directory moves, as entries are
// rotated to the end on touch.
type directoryEntry struct {
	dirty     bool
	page      PageID
	poolIndex int
	pinCount  int
}

// Manager is a fixed-size pool of page frames with pin/unpin tracking,
// left-to-right eviction scanning, and write-back on flush and Close.
// Not safe for concurrent use — see SPEC_FULL.md §5.
type Manager struct {
	pageSize  int
	pool      []byte
	directory []directoryEntry
	iface     BlockInterface
}

// NewManager allocates a pool of poolSize frames of pageSize bytes each,
// backed by iface. Fails if pageSize cannot hold even a footer and one
// slot.
func NewManager(poolSize int, pageSize int, iface BlockInterface) (*Manager, error) {
	if pageSize <= footerSize+sizeOfSize {
		return nil, fmt.Errorf("pagepool: page size %d too small: %w", pageSize, ErrPageTooSmall)
	}
	directory := make([]directoryEntry, poolSize)
	for i := range directory {
		directory[i].poolIndex = i
	}
	return &Manager{
		pageSize:  pageSize,
		pool:      make([]byte, poolSize*pageSize),
		directory: directory,
		iface:     iface,
	}, nil
}

// PageSize returns the fixed page size this manager was constructed with.
func (m *Manager) PageSize() int { return m.pageSize }

// PageDataSize returns the usable span of a page once the footer is
// excluded.
func (m *Manager) PageDataSize() int { return m.pageSize - footerSize }

func (m *Manager) frame(poolIndex int) []byte {
	start := poolIndex * m.pageSize
	return m.pool[start : start+m.pageSize]
}

// PinPage returns a handle over pid's frame, loading it via the block
// interface on a cache miss.
func (m *Manager) PinPage(pid PageID) (*PinnedPage, error) {
	for i := range m.directory {
		if m.directory[i].page == pid {
			m.directory[i].pinCount++
			return newPinnedPage(m, pid, m.frame(m.directory[i].poolIndex)), nil
		}
	}
	poolIndex, err := m.loadPage(pid)
	if err != nil {
		return nil, err
	}
	return newPinnedPage(m, pid, m.frame(poolIndex)), nil
}

// NewPinnedPage allocates a fresh page via the block interface, zeroes
// its frame, and writes an empty footer.
func (m *Manager) NewPinnedPage() (*PinnedPage, error) {
	i, err := m.makeDirEntry()
	if err != nil {
		return nil, err
	}
	poolIndex := m.directory[i].poolIndex

	pid, err := m.iface.AllocPage(Size(m.pageSize))
	if err != nil {
		// The directory-entry reservation made by makeDirEntry above is
		// deliberately not released here; see DESIGN.md.
		return nil, err
	}

	m.directory[i].page = pid
	m.directory[i].pinCount = 1
	m.directory[i].dirty = true

	frame := m.frame(poolIndex)
	for j := range frame {
		frame[j] = 0
	}
	m.rotateToEnd(i)

	writeFooter(frame[m.pageSize-footerSize:], footer{
		Records:   0,
		FreeSpace: Size(m.PageDataSize()),
		PrevPage:  0,
		NextPage:  0,
	})

	pin := newPinnedPage(m, pid, frame)
	pin.dirty = true
	return pin, nil
}

// makeDirEntry finds any unpinned directory entry, writing it back first
// if dirty, and reserves it by setting pinCount to 1. Returns the index
// into m.directory, not the poolIndex.
func (m *Manager) makeDirEntry() (int, error) {
	for i := range m.directory {
		e := &m.directory[i]
		if e.pinCount != 0 {
			continue
		}
		if e.dirty {
			if err := m.iface.WritePage(e.page, m.frame(e.poolIndex)); err != nil {
				return 0, err
			}
			e.dirty = false
		}
		e.pinCount = 1
		return i, nil
	}
	log.Printf("[pagepool] pool exhausted: all %d frames pinned (%s each)", len(m.directory), humanize.Bytes(uint64(m.pageSize)))
	return 0, ErrPoolExhausted
}

func (m *Manager) loadPage(pid PageID) (int, error) {
	i, err := m.makeDirEntry()
	if err != nil {
		return 0, err
	}
	m.directory[i].page = pid
	m.directory[i].pinCount = 1
	poolIndex := m.directory[i].poolIndex

	if err := m.iface.ReadPage(pid, m.frame(poolIndex)); err != nil {
		return 0, err
	}
	m.rotateToEnd(i)
	return poolIndex, nil
}

// rotateToEnd moves the entry at index i to the end of the directory,
// the only recency signal this manager keeps: the leftmost entry is
// always the oldest eviction candidate.
func (m *Manager) rotateToEnd(i int) {
	e := m.directory[i]
	m.directory = append(m.directory[:i], m.directory[i+1:]...)
	m.directory = append(m.directory, e)
}

func (m *Manager) unpinPage(pid PageID, dirty bool) {
	for i := range m.directory {
		e := &m.directory[i]
		if e.page != pid {
			continue
		}
		if dirty {
			e.dirty = true
		}
		if e.pinCount != 0 {
			e.pinCount--
		}
		return
	}
}

// FlushPage writes back pid's frame iff there is exactly one directory
// entry for it, it is unpinned, and it is dirty. Clears the dirty flag
// on a successful write.
func (m *Manager) FlushPage(pid PageID) error {
	for i := range m.directory {
		e := &m.directory[i]
		if e.page != pid || e.pinCount != 0 || !e.dirty {
			continue
		}
		if err := m.iface.WritePage(e.page, m.frame(e.poolIndex)); err != nil {
			return err
		}
		e.dirty = false
		return nil
	}
	return fmt.Errorf("pagepool: flush %d: %w", pid, ErrSome)
}

// FlushFreePages writes back every unpinned dirty entry, stopping at the
// first write error.
func (m *Manager) FlushFreePages() error {
	var written int
	for i := range m.directory {
		e := &m.directory[i]
		if e.pinCount != 0 || !e.dirty {
			continue
		}
		if err := m.iface.WritePage(e.page, m.frame(e.poolIndex)); err != nil {
			return err
		}
		e.dirty = false
		written++
	}
	if written > 0 {
		log.Printf("[pagepool] flushed %d dirty frame(s)", written)
	}
	return nil
}

// Close writes back every still-dirty entry on a best-effort basis,
// ignoring write errors since there is no channel left to report them.
func (m *Manager) Close() {
	for i := range m.directory {
		e := &m.directory[i]
		if e.dirty {
			_ = m.iface.WritePage(e.page, m.frame(e.poolIndex))
			e.dirty = false
		}
	}
}
