package pagepool

import (
	"fmt"
	"os"
)

// FileBlocks is a single-file, fixed-page-size BlockInterface. Grounded
// on storage_engine/disk_manager's file/next-page bookkeeping and
// bplustree's os.File-backed pager, both reworked to address pages by a
// flat, contiguous page number within one file rather than a
// multi-file/fileID scheme (there is exactly one block store per
// Manager in this module).
type FileBlocks struct {
	file     *os.File
	pageSize int64
	nextID   PageID
}

// OpenFileBlocks opens (creating if necessary) a single-file block
// store of the given page size.
func OpenFileBlocks(path string, pageSize int) (*FileBlocks, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("pagepool: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pagepool: stat %s: %w", path, err)
	}
	return &FileBlocks{
		file:     f,
		pageSize: int64(pageSize),
		nextID:   PageID(info.Size() / int64(pageSize)),
	}, nil
}

func (b *FileBlocks) offset(pid PageID) int64 {
	return int64(pid-1) * b.pageSize
}

func (b *FileBlocks) ReadPage(pid PageID, dst []byte) error {
	if _, err := b.file.ReadAt(dst, b.offset(pid)); err != nil {
		return fmt.Errorf("pagepool: read page %d: %w", pid, err)
	}
	return nil
}

func (b *FileBlocks) WritePage(pid PageID, src []byte) error {
	if _, err := b.file.WriteAt(src, b.offset(pid)); err != nil {
		return fmt.Errorf("pagepool: write page %d: %w", pid, err)
	}
	return nil
}

func (b *FileBlocks) AllocPage(size Size) (PageID, error) {
	b.nextID++
	pid := b.nextID
	zero := make([]byte, size)
	if _, err := b.file.WriteAt(zero, b.offset(pid)); err != nil {
		return 0, fmt.Errorf("pagepool: alloc page %d: %w", pid, err)
	}
	return pid, nil
}

func (b *FileBlocks) FreePage(pid PageID, size Size) error {
	return nil
}

// Close closes the backing file.
func (b *FileBlocks) Close() error {
	return b.file.Close()
}
