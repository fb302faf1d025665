package objectpath_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tailored-agentic-units/formkit/objectpath"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []objectpath.Segment
	}{
		{name: "empty", expr: "", want: nil},
		{name: "single key", expr: "name", want: []objectpath.Segment{{Key: "name", Index: -1}}},
		{
			name: "dotted",
			expr: "address.city",
			want: []objectpath.Segment{{Key: "address", Index: -1}, {Key: "city", Index: -1}},
		},
		{
			name: "numeric dotted",
			expr: "items.2.sku",
			want: []objectpath.Segment{
				{Key: "items", Index: -1},
				{Key: "2", Index: 2},
				{Key: "sku", Index: -1},
			},
		},
		{
			name: "bracket index",
			expr: "lines[0].text",
			want: []objectpath.Segment{
				{Key: "lines", Index: -1},
				{Key: "0", Index: 0},
				{Key: "text", Index: -1},
			},
		},
		{
			name: "quoted bracket",
			expr: `meta["content.type"]`,
			want: []objectpath.Segment{{Key: "meta", Index: -1}, {Key: "content.type", Index: -1}},
		},
		{
			name: "chained brackets",
			expr: "grid[1][2]",
			want: []objectpath.Segment{{Key: "grid", Index: -1}, {Key: "1", Index: 1}, {Key: "2", Index: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := objectpath.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.expr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, expr := range []string{".name", "a..b", "a.", "lines[0", "lines[x]", "lines[-1]", "lines[0]."} {
		t.Run(expr, func(t *testing.T) {
			if _, err := objectpath.Parse(expr); !errors.Is(err, objectpath.ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", expr, err)
			}
		})
	}
}

func TestGet(t *testing.T) {
	root := map[string]any{
		"name": "Alice",
		"address": map[string]any{
			"lines": []any{"1 Main St", "Apt 2"},
		},
		"items": []any{
			map[string]any{"sku": "A1"},
		},
		"empty": nil,
	}

	tests := []struct {
		name   string
		expr   string
		want   any
		exists bool
	}{
		{name: "root", expr: "", want: root, exists: true},
		{name: "top level", expr: "name", want: "Alice", exists: true},
		{name: "bracket index", expr: "address.lines[1]", want: "Apt 2", exists: true},
		{name: "dotted index", expr: "items.0.sku", want: "A1", exists: true},
		{name: "explicit nil", expr: "empty", want: nil, exists: true},
		{name: "missing key", expr: "email", want: nil, exists: false},
		{name: "out of range", expr: "address.lines[5]", want: nil, exists: false},
		{name: "through scalar", expr: "name.first", want: nil, exists: false},
		{name: "malformed", expr: "a..b", want: nil, exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := objectpath.Get(root, tt.expr)
			if ok != tt.exists {
				t.Fatalf("Get(%q) exists = %v, want %v", tt.expr, ok, tt.exists)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Get(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestSet_CopyOnWrite(t *testing.T) {
	original := map[string]any{
		"name":    "",
		"address": map[string]any{"city": "Berlin"},
	}

	updated, err := objectpath.Set(original, "address.city", "Paris")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	want := map[string]any{
		"name":    "",
		"address": map[string]any{"city": "Paris"},
	}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}
	if city := original["address"].(map[string]any)["city"]; city != "Berlin" {
		t.Errorf("original mutated: city = %v, want Berlin", city)
	}
}

func TestSet_CreatesContainers(t *testing.T) {
	got, err := objectpath.Set(nil, "items[1].sku", "B2")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	want := map[string]any{
		"items": []any{nil, map[string]any{"sku": "B2"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_Errors(t *testing.T) {
	root := map[string]any{"name": "Alice", "tags": []any{"a"}}

	if _, err := objectpath.Set(root, "name.first", "A"); !errors.Is(err, objectpath.ErrNotContainer) {
		t.Errorf("Set through scalar error = %v, want ErrNotContainer", err)
	}
	if _, err := objectpath.Set(root, "tags.label", "x"); !errors.Is(err, objectpath.ErrNotIndex) {
		t.Errorf("Set key on slice error = %v, want ErrNotIndex", err)
	}
	if _, err := objectpath.Set(root, "a..b", "x"); !errors.Is(err, objectpath.ErrSyntax) {
		t.Errorf("Set malformed error = %v, want ErrSyntax", err)
	}
}

func TestSet_GrowthLimit(t *testing.T) {
	root := map[string]any{"tags": []any{"a"}}

	for _, expr := range []string{
		"tags[9223372036854775807]",
		"tags[10000000000]",
		fmt.Sprintf("tags[%d]", 1+objectpath.MaxGrowth),
		fmt.Sprintf("items[%d]", objectpath.MaxGrowth),
	} {
		got, err := objectpath.Set(root, expr, "x")
		if !errors.Is(err, objectpath.ErrOutOfRange) {
			t.Errorf("Set(%q) error = %v, want ErrOutOfRange", expr, err)
		}
		if diff := cmp.Diff(root, got); diff != "" {
			t.Errorf("Set(%q) changed root (-want +got):\n%s", expr, diff)
		}
	}

	got, err := objectpath.Set(root, fmt.Sprintf("tags[%d]", objectpath.MaxGrowth), "x")
	if err != nil {
		t.Fatalf("Set() at the growth limit error = %v", err)
	}
	if n := len(got.(map[string]any)["tags"].([]any)); n != 1+objectpath.MaxGrowth {
		t.Errorf("len(tags) = %d, want %d", n, 1+objectpath.MaxGrowth)
	}
}

func TestDelete(t *testing.T) {
	original := map[string]any{
		"name": "Alice",
		"tags": []any{"a", "b", "c"},
	}

	got := objectpath.Delete(original, "tags[1]")
	want := map[string]any{"name": "Alice", "tags": []any{"a", "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Delete() mismatch (-want +got):\n%s", diff)
	}

	got = objectpath.Delete(got, "name")
	want = map[string]any{"tags": []any{"a", "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Delete() mismatch (-want +got):\n%s", diff)
	}

	if len(original["tags"].([]any)) != 3 || original["name"] != "Alice" {
		t.Errorf("original mutated: %v", original)
	}

	missing := objectpath.Delete(original, "address.city")
	if diff := cmp.Diff(original, missing); diff != "" {
		t.Errorf("Delete(missing) changed root (-want +got):\n%s", diff)
	}
}
