// Package flash models the serial NOR flash device that backs the block
// cache. The device owns the authoritative copy of the flash contents.
package flash

import (
	"errors"
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
)

// ErrOutOfRange is returned when an access falls outside the device.
var ErrOutOfRange = errors.New("flash access beyond device capacity")

// A MismatchError describes the first byte where a cached copy differs from
// the device.
type MismatchError struct {
	Address  uint32
	Offset   uint32
	Expected byte
	Actual   byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"flash mismatch at 0x%06x (+0x%x): device has 0x%02x, copy has 0x%02x",
		e.Address+e.Offset, e.Offset, e.Expected, e.Actual)
}

// An Image is a flash device whose contents live in host memory.
type Image struct {
	data []byte
}

// NewImage creates an erased image. Erased NOR flash reads back as 0xff.
func NewImage(capacity datasize.ByteSize) *Image {
	mustFitAddressSpace(capacity)

	data := make([]byte, capacity.Bytes())
	for i := range data {
		data[i] = 0xff
	}

	return &Image{data: data}
}

// NewImageFromBytes creates an image of the given capacity that starts with
// the given contents. The remaining bytes are erased.
func NewImageFromBytes(
	contents []byte,
	capacity datasize.ByteSize,
) (*Image, error) {
	if uint64(len(contents)) > capacity.Bytes() {
		return nil, fmt.Errorf("image of %s does not fit a %s device: %w",
			datasize.ByteSize(len(contents)).HumanReadable(),
			capacity.HumanReadable(),
			ErrOutOfRange)
	}

	img := NewImage(capacity)
	copy(img.data, contents)

	return img, nil
}

// LoadImage reads a raw flash dump from a file.
func LoadImage(path string, capacity datasize.ByteSize) (*Image, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading flash image: %w", err)
	}

	return NewImageFromBytes(contents, capacity)
}

func mustFitAddressSpace(capacity datasize.ByteSize) {
	if capacity.Bytes() == 0 || capacity.Bytes() > 1<<32 {
		panic(fmt.Sprintf("unsupported flash capacity %s",
			capacity.HumanReadable()))
	}
}

// Capacity returns the number of bytes of the device.
func (i *Image) Capacity() uint64 {
	return uint64(len(i.data))
}

func (i *Image) String() string {
	return "flash image " + datasize.ByteSize(len(i.data)).HumanReadable()
}

func (i *Image) checkRange(address uint32, length int) error {
	if uint64(address)+uint64(length) > uint64(len(i.data)) {
		return fmt.Errorf("[0x%06x, +%d): %w", address, length, ErrOutOfRange)
	}

	return nil
}

// Read copies len(buf) bytes starting at address into buf.
func (i *Image) Read(address uint32, buf []byte) error {
	if err := i.checkRange(address, len(buf)); err != nil {
		return err
	}

	copy(buf, i.data[address:])

	return nil
}

// Write replaces the bytes starting at address. This is how the host loads
// content into the device; it does not model program/erase timing.
func (i *Image) Write(address uint32, data []byte) error {
	if err := i.checkRange(address, len(data)); err != nil {
		return err
	}

	copy(i.data[address:], data)

	return nil
}

// Verify compares data against the device contents starting at address. It
// returns nil when they are identical and a *MismatchError for the first
// differing byte otherwise.
func (i *Image) Verify(address uint32, data []byte) error {
	if err := i.checkRange(address, len(data)); err != nil {
		return err
	}

	stored := i.data[address : int(address)+len(data)]
	for off := range data {
		if stored[off] != data[off] {
			return &MismatchError{
				Address:  address,
				Offset:   uint32(off),
				Expected: stored[off],
				Actual:   data[off],
			}
		}
	}

	return nil
}
