package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestKVDocument_BSONShape(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	doc := newKVDocument("users", `[{"id":"1"}]`, now)

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["_id"] != "users" {
		t.Fatalf("expected key stored as _id, got %v", m["_id"])
	}
	if m["value"] != `[{"id":"1"}]` {
		t.Fatalf("unexpected value: %v", m["value"])
	}
	if m["updated_at"] != now.Unix() {
		t.Fatalf("unexpected updated_at: %v", m["updated_at"])
	}
}
