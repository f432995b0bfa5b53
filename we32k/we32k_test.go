package we32k_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/svtools/sysvfs/we32k"
)

func TestDecodeStatusWord(t *testing.T) {
	psw := uint32(3) | // ET = normal exception
		1<<2 | // TM
		0xa<<3 | // ISC
		1<<7 | // I
		2<<9 | // PM = supervisor
		3<<11 | // CM = user
		0xf<<13 | // IPL
		1<<17 | // TE
		1<<18 | // C
		1<<20 | // Z
		1<<22 | // OE
		1<<24 | // QIE
		1<<25 // CFD

	decoded := we32k.DecodeStatusWord(psw)
	assert.Equal(t, we32k.ExceptionNormal, decoded.ET)
	assert.True(t, decoded.TM)
	assert.EqualValues(t, 0xa, decoded.ISC)
	assert.True(t, decoded.I)
	assert.False(t, decoded.R)
	assert.Equal(t, we32k.LevelSupervisor, decoded.PM)
	assert.Equal(t, we32k.LevelUser, decoded.CM)
	assert.EqualValues(t, 0xf, decoded.IPL)
	assert.True(t, decoded.TE)
	assert.True(t, decoded.C)
	assert.False(t, decoded.V)
	assert.True(t, decoded.Z)
	assert.False(t, decoded.N)
	assert.True(t, decoded.OE)
	assert.False(t, decoded.CD)
	assert.True(t, decoded.QIE)
	assert.True(t, decoded.CFD)
}

func TestDecodeStatusWordZero(t *testing.T) {
	decoded := we32k.DecodeStatusWord(0)
	assert.Equal(t, we32k.ExceptionReset, decoded.ET)
	assert.Equal(t, we32k.LevelKernel, decoded.PM)
	assert.Equal(t, we32k.LevelKernel, decoded.CM)
	assert.False(t, decoded.TE)
}

func TestExecLevelString(t *testing.T) {
	assert.Equal(t, "Kernel", we32k.LevelKernel.String())
	assert.Equal(t, "Executive", we32k.LevelExecutive.String())
	assert.Equal(t, "Supervisor", we32k.LevelSupervisor.String())
	assert.Equal(t, "User", we32k.LevelUser.String())
}

func TestDecodeSegmentDescriptor(t *testing.T) {
	// Flag byte 0xa5: present, contiguous, referenced, and indirect.
	sd := uint32(0xa5) | 0x0123<<10 | 0xcd<<24

	decoded := we32k.DecodeSegmentDescriptor(sd)
	assert.True(t, decoded.Present)
	assert.False(t, decoded.Modified)
	assert.True(t, decoded.Contiguous)
	assert.False(t, decoded.Cacheable)
	assert.False(t, decoded.ObjectTrap)
	assert.True(t, decoded.Referenced)
	assert.False(t, decoded.Valid)
	assert.True(t, decoded.Indirect)
	assert.EqualValues(t, 0x0124, decoded.MaxOffset, "max offset is the limit field plus one")
	assert.EqualValues(t, 0xcd, decoded.Access)
}

func TestDecodePagedAddress(t *testing.T) {
	// Tag bits 0-3 come from vaddr bits 13-16.
	assert.EqualValues(t, 1, we32k.DecodePagedAddress(1<<13).Tag)
	assert.EqualValues(t, 8, we32k.DecodePagedAddress(1<<16).Tag)

	// Tag bits 4+ come from vaddr bits 18 and up.
	assert.EqualValues(t, 0x10, we32k.DecodePagedAddress(1<<18).Tag)

	// Index bits come from vaddr bits 11, 12, and 17.
	assert.EqualValues(t, 1, we32k.DecodePagedAddress(1<<11).Index)
	assert.EqualValues(t, 2, we32k.DecodePagedAddress(1<<12).Index)
	assert.EqualValues(t, 4, we32k.DecodePagedAddress(1<<17).Index)
}
