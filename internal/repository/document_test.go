package repository

import (
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUUIDBinary_RoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	bin := uuidToBinary(id)

	if bin.Subtype != subtypeUUID {
		t.Errorf("subtype = %#x, want %#x", bin.Subtype, subtypeUUID)
	}

	got, ok := binaryToUUID(bin)
	if !ok {
		t.Fatal("binaryToUUID rejected its own output")
	}
	if got != id {
		t.Errorf("round trip mismatch: got %s, want %s", got, id)
	}
}

func TestBinaryToUUID_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bin  primitive.Binary
	}{
		{"generic subtype", primitive.Binary{Subtype: 0x00, Data: make([]byte, 16)}},
		{"short data", primitive.Binary{Subtype: subtypeUUID, Data: []byte{1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := binaryToUUID(tt.bin); ok {
				t.Error("expected rejection")
			}
		})
	}
}

func TestStoredUser_ToModel(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	typ, data, err := bson.MarshalValue(uuidToBinary(id))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	u := storedUser{ID: bson.RawValue{Type: typ, Value: data}, User: "Alice", Email: "alice@example.com"}.toModel()
	if u.ID != id {
		t.Errorf("ID = %s, want %s", u.ID, id)
	}
	if u.User != "Alice" || u.Email != "alice@example.com" {
		t.Errorf("unexpected fields: %+v", u)
	}
}

func TestStoredUser_ToModel_ObjectID(t *testing.T) {
	t.Parallel()

	typ, data, err := bson.MarshalValue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	u := storedUser{ID: bson.RawValue{Type: typ, Value: data}, User: "Eve"}.toModel()
	if u.ID != uuid.Nil {
		t.Errorf("ObjectID key should map to uuid.Nil, got %s", u.ID)
	}
}
