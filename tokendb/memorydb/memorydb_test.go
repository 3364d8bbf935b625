package memorydb

import (
	"bytes"
	"testing"
)

func TestPutGetDelete(t *testing.T) {
	db := New()
	defer db.Close()

	if err := db.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err := db.Get([]byte("k1"))
	if err != nil || !bytes.Equal(got, []byte("v1")) {
		t.Fatalf("get mismatch: %x err=%v", got, err)
	}
	has, _ := db.Has([]byte("k1"))
	if !has {
		t.Fatalf("expected key to exist")
	}
	if err := db.Delete([]byte("k1")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if has, _ := db.Has([]byte("k1")); has {
		t.Fatalf("key survived deletion")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	db := New()
	defer db.Close()

	db.Put([]byte("k"), []byte{1, 2, 3})
	got, _ := db.Get([]byte("k"))
	got[0] = 9
	again, _ := db.Get([]byte("k"))
	if again[0] != 1 {
		t.Fatalf("stored value was mutated through returned slice")
	}
}

func TestIteratorPrefixAndStart(t *testing.T) {
	db := New()
	defer db.Close()

	for _, k := range []string{"a1", "a2", "a3", "b1"} {
		db.Put([]byte(k), []byte("v-"+k))
	}

	it := db.NewIterator([]byte("a"), []byte("2"))
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	if len(keys) != 2 || keys[0] != "a2" || keys[1] != "a3" {
		t.Fatalf("unexpected iterator keys: %v", keys)
	}
}

func TestBatchWriteAndReset(t *testing.T) {
	db := New()
	defer db.Close()

	db.Put([]byte("stale"), []byte("x"))

	b := db.NewBatch()
	b.Put([]byte("k1"), []byte("v1"))
	b.Put([]byte("k2"), []byte("v2"))
	b.Delete([]byte("stale"))

	// Nothing visible until Write.
	if has, _ := db.Has([]byte("k1")); has {
		t.Fatalf("batch leaked before write")
	}
	if err := b.Write(); err != nil {
		t.Fatalf("batch write failed: %v", err)
	}
	if has, _ := db.Has([]byte("stale")); has {
		t.Fatalf("batched delete not applied")
	}
	if got, _ := db.Get([]byte("k2")); !bytes.Equal(got, []byte("v2")) {
		t.Fatalf("batched put not applied")
	}

	b.Reset()
	if b.ValueSize() != 0 {
		t.Fatalf("reset did not clear batch size")
	}
}

func TestClosedDatabaseFails(t *testing.T) {
	db := New()
	db.Close()

	if err := db.Put([]byte("k"), []byte("v")); err == nil {
		t.Fatalf("expected error on closed database")
	}
	if _, err := db.Get([]byte("k")); err == nil {
		t.Fatalf("expected error on closed database")
	}
}
