// Package we32k decodes WE32100-family bit-packed register formats: the
// processor status word, MMU segment descriptors, and paged virtual
// addresses. These are standalone mask-and-shift decoders with no shared
// state; the filesystem packages never depend on them.
package we32k

import "fmt"

// ExecLevel is a processor execution privilege level, as found in the PM and
// CM fields of the status word.
type ExecLevel uint8

const (
	LevelKernel ExecLevel = iota
	LevelExecutive
	LevelSupervisor
	LevelUser
)

func (level ExecLevel) String() string {
	switch level {
	case LevelKernel:
		return "Kernel"
	case LevelExecutive:
		return "Executive"
	case LevelSupervisor:
		return "Supervisor"
	case LevelUser:
		return "User"
	default:
		return fmt.Sprintf("ExecLevel(%d)", uint8(level))
	}
}

// ExceptionType is the ET field of the status word.
type ExceptionType uint8

const (
	ExceptionReset ExceptionType = iota
	ExceptionProcess
	ExceptionStack
	ExceptionNormal
)

func (et ExceptionType) String() string {
	switch et {
	case ExceptionReset:
		return "On Reset Exception"
	case ExceptionProcess:
		return "On Process Exception"
	case ExceptionStack:
		return "On Stack Exception"
	case ExceptionNormal:
		return "On Normal Exception"
	default:
		return fmt.Sprintf("ExceptionType(%d)", uint8(et))
	}
}

// StatusWord is a decoded processor status word. Field names follow the
// hardware mnemonics.
type StatusWord struct {
	ET  ExceptionType // exception type, bits 0-1
	TM  bool          // trace mask
	ISC uint8         // internal state code, bits 3-6
	I   bool          // interrupt pending
	R   bool          // register set restore
	PM  ExecLevel     // previous execution level
	CM  ExecLevel     // current execution level
	IPL uint8         // interrupt priority level, bits 13-16
	TE  bool          // trace enable
	C   bool          // carry
	V   bool          // overflow
	Z   bool          // zero
	N   bool          // negative
	OE  bool          // enable overflow trap
	CD  bool          // cache disable
	QIE bool          // quick interrupt enable
	CFD bool          // cache flush disable
}

// DecodeStatusWord splits a raw PSW value into its fields.
func DecodeStatusWord(psw uint32) StatusWord {
	return StatusWord{
		ET:  ExceptionType(psw & 0x03),
		TM:  psw>>2&1 != 0,
		ISC: uint8(psw >> 3 & 0x0f),
		I:   psw>>7&1 != 0,
		R:   psw>>8&1 != 0,
		PM:  ExecLevel(psw >> 9 & 0x03),
		CM:  ExecLevel(psw >> 11 & 0x03),
		IPL: uint8(psw >> 13 & 0x0f),
		TE:  psw>>17&1 != 0,
		C:   psw>>18&1 != 0,
		V:   psw>>19&1 != 0,
		Z:   psw>>20&1 != 0,
		N:   psw>>21&1 != 0,
		OE:  psw>>22&1 != 0,
		CD:  psw>>23&1 != 0,
		QIE: psw>>24&1 != 0,
		CFD: psw>>25&1 != 0,
	}
}

// SegmentDescriptor is a decoded MMU segment descriptor.
type SegmentDescriptor struct {
	Present    bool
	Modified   bool
	Contiguous bool
	Cacheable  bool
	ObjectTrap bool
	Referenced bool
	Valid      bool
	Indirect   bool

	// MaxOffset is the segment's limit field plus one, i.e. the number of
	// addressable units.
	MaxOffset uint32
	Access    uint8
}

// DecodeSegmentDescriptor splits a raw segment descriptor into its fields.
func DecodeSegmentDescriptor(sd uint32) SegmentDescriptor {
	return SegmentDescriptor{
		Present:    sd&1 != 0,
		Modified:   sd>>1&1 != 0,
		Contiguous: sd>>2&1 != 0,
		Cacheable:  sd>>3&1 != 0,
		ObjectTrap: sd>>4&1 != 0,
		Referenced: sd>>5&1 != 0,
		Valid:      sd>>6&1 != 0,
		Indirect:   sd>>7&1 != 0,
		MaxOffset:  (sd>>10)&0x1fff + 1,
		Access:     uint8(sd >> 24),
	}
}

// PagedAddress is the page-descriptor cache tag and index extracted from a
// paged virtual address.
type PagedAddress struct {
	Tag   uint32
	Index uint32
}

// DecodePagedAddress extracts the non-contiguous TAG and IDX bit groups from
// a paged virtual address. The bit scatter must be reproduced exactly; it is
// not a plain field extraction.
func DecodePagedAddress(vaddr uint32) PagedAddress {
	return PagedAddress{
		Tag:   (vaddr >> 13 & 0x0f) | (vaddr >> 14 & 0xfff0),
		Index: (vaddr >> 11 & 0x03) | (vaddr >> 15 & 0x04),
	}
}
