package pack

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mrhapile/respack/pkg/types"
)

// An index record is laid out as
//
//	key bytes, 0x00, offset uint64, length uint64, type length uint16, type bytes, '\n'
//
// with all integers little-endian.
const recordFixedSize = 8 + 8 + 2

func checkRecord(key, typ string) error {
	if strings.IndexByte(key, 0) >= 0 {
		return fmt.Errorf("key %q contains a NUL byte", key)
	}
	if len(typ) > math.MaxUint16 {
		return fmt.Errorf("type of %q is %d bytes, limit is %d", key, len(typ), math.MaxUint16)
	}
	return nil
}

// encodeRecord appends the on-disk form of rec to dst. The record must have
// passed checkRecord.
func encodeRecord(dst []byte, rec types.IndexRecord) []byte {
	dst = append(dst, rec.Key...)
	dst = append(dst, 0)
	dst = binary.LittleEndian.AppendUint64(dst, rec.Offset)
	dst = binary.LittleEndian.AppendUint64(dst, rec.Length)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(rec.Type)))
	dst = append(dst, rec.Type...)
	return append(dst, '\n')
}

// Add reads the declared asset and appends it to the blob and index.
func (s *Store) Add(decl types.Declaration) (types.IndexRecord, error) {
	data, err := s.readSource(decl.Path)
	if err != nil {
		return types.IndexRecord{}, err
	}
	return s.AddBytes(decl.Key, decl.Type, data)
}

// AddBytes appends data to the end of the blob and a record locating it to
// the index. Both files are opened and closed on every call; a failure
// between the two writes leaves the blob longer than the index describes.
func (s *Store) AddBytes(key, typ string, data []byte) (types.IndexRecord, error) {
	if err := checkRecord(key, typ); err != nil {
		return types.IndexRecord{}, err
	}

	offset, err := s.appendData(data)
	if err != nil {
		return types.IndexRecord{}, err
	}
	rec := types.IndexRecord{
		Key:    key,
		Offset: uint64(offset),
		Length: uint64(len(data)),
		Type:   typ,
	}
	if err := s.appendIndex(encodeRecord(nil, rec)); err != nil {
		return rec, err
	}

	s.packLog.Debug("added resource", "key", key, "type", typ, "offset", rec.Offset, "length", rec.Length)
	return rec, nil
}

func (s *Store) readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return nil, ioError(err)
	}
	return data, nil
}

// appendData writes data at the end of the blob and returns where it starts.
func (s *Store) appendData(data []byte) (int64, error) {
	f, err := os.OpenFile(s.DataPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return 0, ioError(err)
	}
	defer f.Close()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, ioError(err)
	}
	if _, err := f.Write(data); err != nil {
		return 0, ioError(err)
	}
	if err := f.Close(); err != nil {
		return 0, ioError(err)
	}
	return offset, nil
}

func (s *Store) appendIndex(line []byte) error {
	f, err := os.OpenFile(s.IndexPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return ioError(err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return ioError(err)
	}
	if err := f.Close(); err != nil {
		return ioError(err)
	}
	return nil
}
