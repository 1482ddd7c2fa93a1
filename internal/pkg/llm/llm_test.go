package llm

import (
	"context"
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	var out struct {
		Description string `json:"description"`
	}
	for _, raw := range [][]byte{nil, []byte(""), []byte(" null ")} {
		ok, err := Decode(raw, &out)
		if ok || err != nil {
			t.Errorf("Decode(%q) = %v, %v; want false, nil", raw, ok, err)
		}
	}

	ok, err := Decode([]byte(`{"description":"hello"}`), &out)
	if !ok || err != nil || out.Description != "hello" {
		t.Fatalf("Decode valid: ok=%v err=%v out=%+v", ok, err, out)
	}

	if _, err := Decode([]byte(`{"description":`), &out); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	uri := DataURI("image/png", []byte{0x89, 'P', 'N', 'G'})
	mimeType, data, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI: %v", err)
	}
	if mimeType != "image/png" || string(data) != "\x89PNG" {
		t.Errorf("got %q %q", mimeType, data)
	}

	for _, bad := range []string{"image/png;base64,AAAA", "data:image/png;base64", "data:text/plain,hello", "data:image/png;base64,!!"} {
		if _, _, err := ParseDataURI(bad); err == nil {
			t.Errorf("ParseDataURI(%q): expected error", bad)
		}
	}
}

func TestMockModel(t *testing.T) {
	m := NewMockModel()
	m.Objects["greeting"] = []byte(`{"text":"hi"}`)
	ctx := context.Background()

	raw, err := m.GenerateObject(ctx, Request{Prompt: "p", Schema: &Schema{Name: "greeting"}})
	if err != nil || string(raw) != `{"text":"hi"}` {
		t.Fatalf("got %s, %v", raw, err)
	}
	raw, err = m.GenerateObject(ctx, Request{Prompt: "p", Schema: &Schema{Name: "other"}})
	if err != nil || raw != nil {
		t.Fatalf("unknown schema: got %s, %v", raw, err)
	}
	if _, err := m.GenerateImage(ctx, "a cat"); err == nil {
		t.Fatal("expected error without canned image")
	}

	m.ObjectErr = errors.New("boom")
	if _, err := m.GenerateObject(ctx, Request{}); err == nil {
		t.Fatal("expected canned error")
	}
	if m.Calls() != 4 || len(m.Requests()) != 3 || m.ImagePrompts()[0] != "a cat" {
		t.Errorf("call accounting: calls=%d requests=%d", m.Calls(), len(m.Requests()))
	}
}

func TestObjectSchema(t *testing.T) {
	s := Object(map[string]any{"a": String("x"), "b": Array(Number(""), "")}, "a")
	if s["type"] != "object" || s["additionalProperties"] != false {
		t.Fatalf("unexpected schema %v", s)
	}
	if req := s["required"].([]string); len(req) != 1 || req[0] != "a" {
		t.Errorf("required = %v", req)
	}
	if _, ok := s["properties"].(map[string]any)["b"].(map[string]any)["description"]; ok {
		t.Error("empty description should be omitted")
	}
	if empty := Object(map[string]any{}); empty["required"] == nil {
		t.Error("required must be an empty list, not nil")
	}
}
