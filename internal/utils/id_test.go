package util_test

import (
	"encoding/json"
	"errors"
	"testing"

	util "github.com/saulo-duarte/codecourse-api/internal/utils"
)

func TestFlexibleIDUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  util.FlexibleID
	}{
		{"Number", `{"id": 42}`, "42"},
		{"String", `{"id": "42"}`, "42"},
		{"PaddedString", `{"id": " 7 "}`, "7"},
		{"Null", `{"id": null}`, ""},
		{"Missing", `{}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				ID util.FlexibleID `json:"id"`
			}
			if err := json.Unmarshal([]byte(tc.input), &payload); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if payload.ID != tc.want {
				t.Errorf("expected %q, got %q", tc.want, payload.ID)
			}
		})
	}

	t.Run("Object", func(t *testing.T) {
		var payload struct {
			ID util.FlexibleID `json:"id"`
		}
		if err := json.Unmarshal([]byte(`{"id": {"x": 1}}`), &payload); err == nil {
			t.Fatal("expected an error for an object id")
		}
	})
}

func TestFlexibleIDUint(t *testing.T) {
	if n, err := util.FlexibleID("42").Uint(); err != nil || n != 42 {
		t.Fatalf("expected 42, got %d (%v)", n, err)
	}

	for _, bad := range []util.FlexibleID{"", "0", "-1", "abc", "4.2"} {
		if _, err := bad.Uint(); !errors.Is(err, util.ErrInvalidID) {
			t.Errorf("%q: expected ErrInvalidID, got %v", bad, err)
		}
	}
}

func TestFlexibleIDMarshal(t *testing.T) {
	b, _ := json.Marshal(util.FlexibleID("42"))
	if string(b) != "42" {
		t.Errorf("expected numeric output, got %s", b)
	}
	b, _ = json.Marshal(util.FlexibleID("abc"))
	if string(b) != `"abc"` {
		t.Errorf("expected string output, got %s", b)
	}
}
