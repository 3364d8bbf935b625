package rawdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/types"
)

const (
	txRecordVersion = uint8(1)
	metadataVersion = uint8(1)
)

var (
	errTruncatedRecord   = errors.New("rawdb: truncated tx record")
	errTruncatedMetadata = errors.New("rawdb: truncated metadata")
)

// encodeTxRecord serializes a transaction record into its storage form:
//
//	version(1) index(8) op(1) status(1) from(52) to(52) caller(52)
//	amount(16) fee(16) timestamp(8) memoFlag(1) [memo(32)]
func encodeTxRecord(rec *types.TxRecord) []byte {
	var buf bytes.Buffer
	buf.WriteByte(txRecordVersion)

	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], rec.Index)
	buf.Write(idx[:])

	buf.WriteByte(byte(rec.Operation))
	buf.WriteByte(byte(rec.Status))
	buf.Write(rec.From.Bytes())
	buf.Write(rec.To.Bytes())
	buf.Write(rec.Caller.Bytes())

	amount := rec.Amount.Bytes16()
	buf.Write(amount[:])
	fee := rec.Fee.Bytes16()
	buf.Write(fee[:])

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], rec.Timestamp)
	buf.Write(ts[:])

	if rec.Memo != nil {
		buf.WriteByte(1)
		buf.Write(rec.Memo[:])
	} else {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// decodeTxRecord parses the storage form produced by encodeTxRecord.
func decodeTxRecord(data []byte) (*types.TxRecord, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil {
		return nil, errTruncatedRecord
	}
	if version != txRecordVersion {
		return nil, fmt.Errorf("rawdb: unknown tx record version %d", version)
	}

	var rec types.TxRecord
	var u64 [8]byte
	if _, err := io.ReadFull(r, u64[:]); err != nil {
		return nil, errTruncatedRecord
	}
	rec.Index = binary.BigEndian.Uint64(u64[:])

	op, err := r.ReadByte()
	if err != nil {
		return nil, errTruncatedRecord
	}
	rec.Operation = types.Operation(op)

	status, err := r.ReadByte()
	if err != nil {
		return nil, errTruncatedRecord
	}
	rec.Status = types.TxStatus(status)

	for _, acc := range []*types.Account{&rec.From, &rec.To, &rec.Caller} {
		raw := make([]byte, common.AddressLength+types.SubaccountLength)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, errTruncatedRecord
		}
		decoded, err := types.AccountFromBytes(raw)
		if err != nil {
			return nil, err
		}
		*acc = decoded
	}

	var amt [16]byte
	if _, err := io.ReadFull(r, amt[:]); err != nil {
		return nil, errTruncatedRecord
	}
	rec.Amount = types.AmountFromBytes16(amt)
	if _, err := io.ReadFull(r, amt[:]); err != nil {
		return nil, errTruncatedRecord
	}
	rec.Fee = types.AmountFromBytes16(amt)

	if _, err := io.ReadFull(r, u64[:]); err != nil {
		return nil, errTruncatedRecord
	}
	rec.Timestamp = binary.BigEndian.Uint64(u64[:])

	memoFlag, err := r.ReadByte()
	if err != nil {
		return nil, errTruncatedRecord
	}
	if memoFlag == 1 {
		var memo types.Memo
		if _, err := io.ReadFull(r, memo[:]); err != nil {
			return nil, errTruncatedRecord
		}
		rec.Memo = &memo
	}
	return &rec, nil
}

// encodeMetadata serializes the token metadata.
func encodeMetadata(meta *types.Metadata) []byte {
	var buf bytes.Buffer
	buf.WriteByte(metadataVersion)
	writeString(&buf, meta.Name)
	writeString(&buf, meta.Symbol)
	buf.WriteByte(meta.Decimals)
	buf.Write(meta.Owner.Bytes())

	fee := meta.Fee.Bytes16()
	buf.Write(fee[:])
	buf.Write(meta.FeeTo.Bytes())

	var bps [2]byte
	binary.BigEndian.PutUint16(bps[:], meta.FeeRatioBPS)
	buf.Write(bps[:])

	if meta.TestMode {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// decodeMetadata parses the storage form produced by encodeMetadata.
func decodeMetadata(data []byte) (*types.Metadata, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil {
		return nil, errTruncatedMetadata
	}
	if version != metadataVersion {
		return nil, fmt.Errorf("rawdb: unknown metadata version %d", version)
	}

	var meta types.Metadata
	if meta.Name, err = readString(r); err != nil {
		return nil, err
	}
	if meta.Symbol, err = readString(r); err != nil {
		return nil, err
	}
	if meta.Decimals, err = r.ReadByte(); err != nil {
		return nil, errTruncatedMetadata
	}

	owner := make([]byte, common.AddressLength)
	if _, err := io.ReadFull(r, owner); err != nil {
		return nil, errTruncatedMetadata
	}
	meta.Owner = common.BytesToAddress(owner)

	var fee [16]byte
	if _, err := io.ReadFull(r, fee[:]); err != nil {
		return nil, errTruncatedMetadata
	}
	meta.Fee = types.AmountFromBytes16(fee)

	feeTo := make([]byte, common.AddressLength+types.SubaccountLength)
	if _, err := io.ReadFull(r, feeTo); err != nil {
		return nil, errTruncatedMetadata
	}
	if meta.FeeTo, err = types.AccountFromBytes(feeTo); err != nil {
		return nil, err
	}

	var bps [2]byte
	if _, err := io.ReadFull(r, bps[:]); err != nil {
		return nil, errTruncatedMetadata
	}
	meta.FeeRatioBPS = binary.BigEndian.Uint16(bps[:])

	testMode, err := r.ReadByte()
	if err != nil {
		return nil, errTruncatedMetadata
	}
	meta.TestMode = testMode == 1
	return &meta, nil
}

func writeString(buf *bytes.Buffer, s string) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(s)))
	buf.Write(l[:])
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var l [4]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return "", errTruncatedMetadata
	}
	n := binary.BigEndian.Uint32(l[:])
	if uint32(r.Len()) < n {
		return "", errTruncatedMetadata
	}
	out := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, out); err != nil {
			return "", errTruncatedMetadata
		}
	}
	return string(out), nil
}
