package pagepool

import "encoding/binary"

// footer is the fixed-layout trailer written at the end of every page:
// record count, free byte span, and the previous/next links of the
// record-spanning page chain (AddRecord writes only NextPage). Encoded
// packed and always little-endian, whatever the host's byte order.
type footer struct {
	Records   Size
	FreeSpace Size
	PrevPage  PageID
	NextPage  PageID
}

const (
	sizeOfSize   = 4 // Size is always encoded as a uint32
	sizeOfPageID = 8 // PageID is always encoded as a uint64
	footerSize   = sizeOfSize + sizeOfSize + sizeOfPageID + sizeOfPageID
)

func readFooter(b []byte) footer {
	return footer{
		Records:   Size(binary.LittleEndian.Uint32(b[0:4])),
		FreeSpace: Size(binary.LittleEndian.Uint32(b[4:8])),
		PrevPage:  PageID(binary.LittleEndian.Uint64(b[8:16])),
		NextPage:  PageID(binary.LittleEndian.Uint64(b[16:24])),
	}
}

func writeFooter(b []byte, f footer) {
	binary.LittleEndian.PutUint32(b[0:4], uint32(f.Records))
	binary.LittleEndian.PutUint32(b[4:8], uint32(f.FreeSpace))
	binary.LittleEndian.PutUint64(b[8:16], uint64(f.PrevPage))
	binary.LittleEndian.PutUint64(b[16:24], uint64(f.NextPage))
}

func readSize(b []byte) Size {
	return Size(binary.LittleEndian.Uint32(b[0:4]))
}

func putSize(b []byte, v Size) {
	binary.LittleEndian.PutUint32(b[0:4], uint32(v))
}
