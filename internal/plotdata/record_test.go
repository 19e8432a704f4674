package plotdata

import (
	"encoding/json"
	"testing"
)

func TestRecordMarshalInsertionOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("z", 1)
	rec.Set("a", "two")
	rec.Set("m", json.Number("3.5"))

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"z":1,"a":"two","m":3.5}`
	if string(out) != want {
		t.Errorf("expected %s, got %s", want, out)
	}

	// marshaling twice is byte-identical
	again, _ := json.Marshal(rec)
	if string(again) != string(out) {
		t.Errorf("expected identical output, got %s and %s", out, again)
	}
}

func TestRecordSetOverwriteKeepsPosition(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", 1)
	rec.Set("b", 2)
	rec.Set("a", 3)

	out, _ := json.Marshal(rec)
	if string(out) != `{"a":3,"b":2}` {
		t.Errorf("unexpected marshal output: %s", out)
	}
}

func TestRecordDelete(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", 1)
	rec.Set("b", 2)
	rec.Set("c", 3)
	rec.Delete("b")

	if rec.Has("b") {
		t.Error("expected b to be removed")
	}
	if rec.Len() != 2 {
		t.Errorf("expected 2 fields, got %d", rec.Len())
	}
	out, _ := json.Marshal(rec)
	if string(out) != `{"a":1,"c":3}` {
		t.Errorf("unexpected marshal output: %s", out)
	}

	// deleting a missing key is a no-op
	rec.Delete("nope")
	if rec.Len() != 2 {
		t.Errorf("expected 2 fields, got %d", rec.Len())
	}
}
