package pack

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrhapile/respack/pkg/types"
)

// recordReader decodes index records one at a time.
type recordReader struct {
	r     *bufio.Reader
	fixed [recordFixedSize]byte
	n     int
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{r: bufio.NewReader(r)}
}

// next returns the following record, or io.EOF once the index is exhausted.
func (rr *recordReader) next() (types.IndexRecord, error) {
	var rec types.IndexRecord
	key, err := rr.r.ReadBytes(0)
	if err == io.EOF && len(key) == 0 {
		return rec, io.EOF
	}
	if err != nil {
		return rec, rr.corrupt("key is not terminated")
	}
	rec.Key = string(key[:len(key)-1])

	if _, err := io.ReadFull(rr.r, rr.fixed[:]); err != nil {
		return rec, rr.corrupt("truncated offset and length")
	}
	rec.Offset = binary.LittleEndian.Uint64(rr.fixed[0:8])
	rec.Length = binary.LittleEndian.Uint64(rr.fixed[8:16])

	typ := make([]byte, binary.LittleEndian.Uint16(rr.fixed[16:18]))
	if _, err := io.ReadFull(rr.r, typ); err != nil {
		return rec, rr.corrupt("truncated type")
	}
	rec.Type = string(typ)

	if b, err := rr.r.ReadByte(); err != nil || b != '\n' {
		return rec, rr.corrupt("missing record terminator")
	}
	rr.n++
	return rec, nil
}

func (rr *recordReader) corrupt(msg string) error {
	return fmt.Errorf("%w: record %d: %s", ErrCorruptIndex, rr.n, msg)
}

// scan calls fn for each index record in order until fn returns false.
func (s *Store) scan(fn func(types.IndexRecord) bool) error {
	f, err := os.Open(s.IndexPath)
	if err != nil {
		return ioError(err)
	}
	defer f.Close()

	rr := newRecordReader(f)
	for {
		rec, err := rr.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !fn(rec) {
			return nil
		}
	}
}

// Lookup scans the index for key and returns its record.
func (s *Store) Lookup(key string) (types.IndexRecord, error) {
	var (
		found types.IndexRecord
		ok    bool
	)
	err := s.scan(func(rec types.IndexRecord) bool {
		if rec.Key == key {
			found, ok = rec, true
			return false
		}
		return true
	})
	if err != nil {
		return found, err
	}
	if !ok {
		return found, fmt.Errorf("%w: %q", ErrResourceNotFound, key)
	}
	return found, nil
}

// Load returns a fresh copy of the bytes packed under key.
func (s *Store) Load(key string) ([]byte, error) {
	rec, err := s.Lookup(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.DataPath)
	if err != nil {
		return nil, ioError(err)
	}
	defer f.Close()

	data, err := readRecord(f, rec)
	if err != nil {
		return nil, err
	}
	s.readLog.Debug("loaded resource", "key", key, "offset", rec.Offset, "length", rec.Length)
	return data, nil
}

// Records returns every index record in the order it was packed.
func (s *Store) Records() ([]types.IndexRecord, error) {
	var recs []types.IndexRecord
	err := s.scan(func(rec types.IndexRecord) bool {
		recs = append(recs, rec)
		return true
	})
	return recs, err
}

func readRecord(r io.ReaderAt, rec types.IndexRecord) ([]byte, error) {
	var buf bytes.Buffer
	sr := io.NewSectionReader(r, int64(rec.Offset), int64(rec.Length))
	n, err := buf.ReadFrom(sr)
	if err != nil {
		return nil, ioError(err)
	}
	if uint64(n) != rec.Length {
		return nil, fmt.Errorf("%w: %q wants %d bytes at offset %d, blob holds %d", ErrCorruptIndex, rec.Key, rec.Length, rec.Offset, n)
	}
	return buf.Bytes(), nil
}
