package pagepool

import "fmt"

// RecordIndex locates a variable-length record within a page's slotted
// layout. Comparable with ==.
type RecordIndex struct {
	PageID    PageID
	SlotIndex Size
	Offset    Size
	Size      Size
}

// FieldIndex locates a sub-field within a record whose payload begins
// with an array of Size-width field lengths.
type FieldIndex struct {
	PageID     PageID
	SlotIndex  Size
	FieldIndex Size
	Offset     Size
	Size       Size
}

func slotPos(footerStart int, slot Size) int {
	return footerStart - int(slot+1)*sizeOfSize
}

// AddRecord appends data as a new record, starting on pageid and
// spilling onto newly allocated, linked pages when the current page
// lacks room. Fails before any I/O if data could never fit on a fresh
// page.
func AddRecord(mgr *Manager, pageid PageID, data []byte) (RecordIndex, error) {
	recordSize := Size(len(data))
	if Size(mgr.PageDataSize())-sizeOfSize < recordSize {
		return RecordIndex{}, fmt.Errorf("pagepool: record of %d bytes: %w", len(data), ErrRecordTooLarge)
	}

	page, err := mgr.PinPage(pageid)
	if err != nil {
		return RecordIndex{}, err
	}

	for {
		footerStart := len(page.Data()) - footerSize
		ft := readFooter(page.Data()[footerStart:])

		if ft.FreeSpace < recordSize+sizeOfSize {
			if ft.NextPage == 0 {
				newPage, err := mgr.NewPinnedPage()
				if err != nil {
					page.Release()
					return RecordIndex{}, err
				}
				ft.NextPage = newPage.ID()
				writeFooter(page.Data()[footerStart:], ft)
				page.MarkDirty()
				page.Release()
				page = newPage
				pageid = newPage.ID()
			} else {
				next := ft.NextPage
				page.Release()
				nextPage, err := mgr.PinPage(next)
				if err != nil {
					return RecordIndex{}, err
				}
				page = nextPage
				pageid = next
			}
			continue
		}

		slotArrayBytes := int(ft.Records) * sizeOfSize
		dataStart := footerStart - slotArrayBytes - int(ft.FreeSpace)
		copy(page.Data()[dataStart:dataStart+int(recordSize)], data)

		putSize(page.Data()[slotPos(footerStart, ft.Records):], recordSize)

		idx := RecordIndex{
			PageID:    pageid,
			SlotIndex: ft.Records,
			Offset:    Size(dataStart),
			Size:      recordSize,
		}

		ft.Records++
		ft.FreeSpace -= recordSize + sizeOfSize
		writeFooter(page.Data()[footerStart:], ft)
		page.MarkDirty()

		page.Release()
		return idx, nil
	}
}

// GetRecord recovers the record index for slotIndex without copying any
// payload bytes. See DESIGN.md for why this follows the forward,
// described semantics rather than the original source's unused and
// internally-inconsistent helper of the same name.
func GetRecord(page *PinnedPage, slotIndex Size) (RecordIndex, error) {
	footerStart := len(page.Data()) - footerSize
	ft := readFooter(page.Data()[footerStart:])
	if slotIndex >= ft.Records {
		return RecordIndex{}, fmt.Errorf("pagepool: slot %d of %d: %w", slotIndex, ft.Records, ErrBadSlotIndex)
	}

	var offset Size
	for i := Size(0); i < slotIndex; i++ {
		offset += readSize(page.Data()[slotPos(footerStart, i):])
	}
	size := readSize(page.Data()[slotPos(footerStart, slotIndex):])

	return RecordIndex{PageID: page.ID(), SlotIndex: slotIndex, Offset: offset, Size: size}, nil
}

// ReadRecord copies min(len(buf), record.Size) bytes from record's
// location on page into buf. Fails if record does not belong to page.
func ReadRecord(page *PinnedPage, record RecordIndex, buf []byte) error {
	if record.PageID != page.ID() {
		return fmt.Errorf("pagepool: record page %d != handle page %d: %w", record.PageID, page.ID(), ErrWrongPage)
	}
	size := record.Size
	if Size(len(buf)) < size {
		size = Size(len(buf))
	}
	copy(buf, page.Data()[record.Offset:record.Offset+size])
	return nil
}

// ReadRecordAt recovers the record index for slotIndex and copies its
// (possibly truncated) payload into buf in one step.
func ReadRecordAt(page *PinnedPage, slotIndex Size, buf []byte) (RecordIndex, error) {
	record, err := GetRecord(page, slotIndex)
	if err != nil {
		return RecordIndex{}, err
	}
	size := record.Size
	if Size(len(buf)) < size {
		size = Size(len(buf))
	}
	copy(buf, page.Data()[record.Offset:record.Offset+size])
	return record, nil
}

// GetField treats record's leading bytes as fieldCount Size-width
// lengths followed by the concatenated field bytes, and locates
// fieldIndex within that layout.
func GetField(page *PinnedPage, record RecordIndex, fieldIndex Size, fieldCount Size) (FieldIndex, error) {
	if fieldIndex >= fieldCount {
		return FieldIndex{}, fmt.Errorf("pagepool: field %d of %d: %w", fieldIndex, fieldCount, ErrBadFieldIndex)
	}

	base := int(record.Offset)
	var offset Size
	for i := Size(0); i < fieldIndex; i++ {
		offset += readSize(page.Data()[base+int(i)*sizeOfSize:])
	}
	size := readSize(page.Data()[base+int(fieldIndex)*sizeOfSize:])

	return FieldIndex{
		PageID:     page.ID(),
		SlotIndex:  record.SlotIndex,
		FieldIndex: fieldIndex,
		Offset:     offset,
		Size:       size,
	}, nil
}
