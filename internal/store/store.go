// Package store implements the byte-addressed persistent catalog (spec.md
// §4.4): a signature-guarded region followed by an append-only sequence of
// profile records. Engine operates on a plain []byte so it can be tested
// in isolation from any backing persistence; SQLiteBacked (sqlite.go) is the
// durable wrapper used in production, grounded on the teacher's
// internal/repository sqlite style.
package store

import (
	"errors"
	"fmt"

	"ovencontroller/internal/models"
)

// Errors returned by catalog operations. These map onto the wire error
// codes in dispatcher (ARGOUTOFRANGE, NOMEMORY) rather than duplicating
// them here.
var (
	ErrBadSignature   = errors.New("store: signature invalid, call Format first")
	ErrIndexOutOfRange = errors.New("store: profile index out of range")
	ErrCatalogFull    = errors.New("store: no free offset for another profile")
	ErrCorruptRecord  = errors.New("store: record not NUL-terminated within its field")
)

// Engine is the byte-addressed catalog: Signature, followed by profile
// records packed back to back until the buffer is exhausted.
type Engine struct {
	buf []byte
}

// New allocates a zeroed Engine of the given total size and formats it.
func New(size int) *Engine {
	e := &Engine{buf: make([]byte, size)}
	e.Format()
	return e
}

// Wrap adapts an existing byte slice (e.g. loaded from a sqlite BLOB column)
// into an Engine without copying or reformatting it.
func Wrap(buf []byte) *Engine {
	return &Engine{buf: buf}
}

// Bytes exposes the raw buffer for persistence.
func (e *Engine) Bytes() []byte {
	return e.buf
}

// ValidateSignature reports whether the buffer starts with the expected
// signature.
func (e *Engine) ValidateSignature() bool {
	if len(e.buf) < SigLen {
		return false
	}
	return string(e.buf[:SigLen]) == Signature
}

// Format writes the signature and zeroes the catalog region, discarding any
// existing profiles.
func (e *Engine) Format() {
	for i := range e.buf {
		e.buf[i] = 0
	}
	copy(e.buf, Signature)
}

// recordLen returns the total on-disk size of a header with n phases.
func recordLen(n int16) int {
	return HeaderLen + int(n)*PhaseRecordLen
}

// walk scans catalog records starting at SigLen, invoking visit for each
// header found. Stops and returns the offset of the first all-zero header
// (the end of the catalog) or an error on a corrupt record. visit returning
// false stops the walk early without error (used by LoadHeader and
// LoadProfile).
func (e *Engine) walk(visit func(idx, off int, h Header) (keepGoing bool, err error)) error {
	off := SigLen
	idx := 0
	for off+HeaderLen <= len(e.buf) {
		h, terminated := decodeHeader(e.buf, off)
		if h.Name == "" && h.PhasesCount == 0 {
			return nil // reached the free region
		}
		if !terminated {
			return fmt.Errorf("header at offset %d: %w", off, ErrCorruptRecord)
		}
		if h.PhasesCount < 0 {
			return fmt.Errorf("header at offset %d: %w", off, ErrCorruptRecord)
		}
		size := recordLen(h.PhasesCount)
		if off+size > len(e.buf) {
			return fmt.Errorf("header at offset %d: %w", off, ErrCorruptRecord)
		}
		cont, err := visit(idx, off, h)
		if err != nil || !cont {
			return err
		}
		off += size
		idx++
	}
	return nil
}

// Count returns the number of profiles currently stored.
func (e *Engine) Count() (int, error) {
	n := 0
	err := e.walk(func(idx, off int, h Header) (bool, error) {
		n++
		return true, nil
	})
	return n, err
}

// FindFreeOffset returns the byte offset immediately following the last
// stored profile, i.e. where the next Append would write.
func (e *Engine) FindFreeOffset() (int, error) {
	free := SigLen
	err := e.walk(func(idx, off int, h Header) (bool, error) {
		free = off + recordLen(h.PhasesCount)
		return true, nil
	})
	return free, err
}

// LoadHeader returns the header of the profile at the given index (0-based,
// in storage order).
func (e *Engine) LoadHeader(index int) (Header, error) {
	var found Header
	ok := false
	err := e.walk(func(idx, off int, h Header) (bool, error) {
		if idx == index {
			found = h
			ok = true
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return Header{}, err
	}
	if !ok {
		return Header{}, ErrIndexOutOfRange
	}
	return found, nil
}

// LoadProfile decodes the full profile (header + phases) at the given index.
func (e *Engine) LoadProfile(index int) (models.Profile, error) {
	var result models.Profile
	ok := false
	err := e.walk(func(idx, off int, h Header) (bool, error) {
		if idx != index {
			return true, nil
		}
		ok = true
		phases := make([]models.Phase, 0, h.PhasesCount)
		po := off + HeaderLen
		for i := int16(0); i < h.PhasesCount; i++ {
			ph, terminated := decodePhase(e.buf, po)
			if !terminated {
				return false, fmt.Errorf("profile %d phase %d: %w", index, i, ErrCorruptRecord)
			}
			phases = append(phases, ph)
			po += PhaseRecordLen
		}
		result = models.Profile{Name: h.Name, Phases: phases}
		return false, nil
	})
	if err != nil {
		return models.Profile{}, err
	}
	if !ok {
		return models.Profile{}, ErrIndexOutOfRange
	}
	return result, nil
}

// Append writes a new profile record at the first free offset. Returns
// ErrCatalogFull if there is not enough room left in the buffer (resolves
// spec.md's open question on EEPROMAppendProfile: callers get an explicit
// error rather than a silently truncated write).
func (e *Engine) Append(p models.Profile) error {
	free, err := e.FindFreeOffset()
	if err != nil {
		return err
	}
	size := recordLen(int16(len(p.Phases)))
	if free+size > len(e.buf) {
		return ErrCatalogFull
	}
	if err := encodeHeader(e.buf, free, Header{Name: p.Name, PhasesCount: int16(len(p.Phases))}); err != nil {
		return err
	}
	po := free + HeaderLen
	for _, ph := range p.Phases {
		if err := encodePhase(e.buf, po, ph); err != nil {
			return err
		}
		po += PhaseRecordLen
	}
	return nil
}

// Dump returns a copy of length bytes starting at offset, for the serial
// "e d <off>" diagnostic command. Clamps length to the buffer bound.
func (e *Engine) Dump(offset, length int) ([]byte, error) {
	if offset < 0 || offset > len(e.buf) {
		return nil, ErrIndexOutOfRange
	}
	end := offset + length
	if end > len(e.buf) {
		end = len(e.buf)
	}
	out := make([]byte, end-offset)
	copy(out, e.buf[offset:end])
	return out, nil
}

// Size returns the total capacity of the underlying buffer.
func (e *Engine) Size() int {
	return len(e.buf)
}
