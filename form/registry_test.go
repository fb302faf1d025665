package form_test

import (
	"context"
	"testing"

	"github.com/tailored-agentic-units/formkit/form"
	"github.com/tailored-agentic-units/formkit/store"
)

func validatorPaths(f *form.Form) []string {
	var paths []string
	for _, e := range f.Validators() {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestAddValidator_UnregisterRemovesOnlyItsEntry(t *testing.T) {
	f, _ := newTestForm(t, store.State{})
	v := required("required")

	first := f.AddValidator("name", v)
	f.AddValidator("name", v)
	f.AddValidator("email", v)

	first()
	first()

	entries := f.Validators()
	if len(entries) != 2 {
		t.Fatalf("len(Validators()) = %d, want 2", len(entries))
	}
	if entries[0].Path != "name" || entries[1].Path != "email" {
		t.Errorf("remaining paths = %v, want [name email]", validatorPaths(f))
	}
	if entries[0].ID == entries[1].ID {
		t.Errorf("registration ids collide: %s", entries[0].ID)
	}
}

func TestRemoveValidator_MatchesPathAndValidator(t *testing.T) {
	f, _ := newTestForm(t, store.State{})
	a := required("a")
	b := required("b")

	f.AddValidator("name", a)
	f.AddValidator("name", b)
	f.AddValidator("email", a)
	f.AddValidator("name", a)

	f.RemoveValidator("name", a)

	entries := f.Validators()
	if len(entries) != 2 {
		t.Fatalf("len(Validators()) = %d, want 2 (%v)", len(entries), validatorPaths(f))
	}
	if entries[0].Path != "name" || entries[0].Validator != b {
		t.Errorf("entries[0] = %+v, want name with validator b", entries[0])
	}
	if entries[1].Path != "email" || entries[1].Validator != a {
		t.Errorf("entries[1] = %+v, want email with validator a", entries[1])
	}

	f.RemoveValidator("missing", a)
	if len(f.Validators()) != 2 {
		t.Errorf("removing an unknown path changed the registry")
	}
}

func TestRemoveValidator_IncomparableValidator(t *testing.T) {
	f, _ := newTestForm(t, store.State{})
	v := sliceValidator{"x"}
	f.AddValidator("name", v)

	f.RemoveValidator("name", sliceValidator{"x"})

	if len(f.Validators()) != 1 {
		t.Errorf("incomparable validator was removed")
	}
}

// sliceValidator has an incomparable dynamic type.
type sliceValidator []string

func (sliceValidator) Validate(context.Context, any) form.Outcome { return form.Success() }

// boxedValidator is a comparable type whose values may hold incomparable
// dynamic values.
type boxedValidator struct {
	limit any
}

func (boxedValidator) Validate(context.Context, any) form.Outcome { return form.Success() }

func TestRemoveValidator_InterfaceField(t *testing.T) {
	f, _ := newTestForm(t, store.State{})
	f.AddValidator("tags", boxedValidator{limit: []int{3}})
	f.AddValidator("name", boxedValidator{limit: "short"})

	f.RemoveValidator("tags", boxedValidator{limit: []int{3}})
	if len(f.Validators()) != 2 {
		t.Errorf("validator holding a slice was removed")
	}

	f.RemoveValidator("name", boxedValidator{limit: "short"})
	entries := f.Validators()
	if len(entries) != 1 || entries[0].Path != "tags" {
		t.Errorf("Validators() = %+v, want only the tags entry", entries)
	}
}

func TestAddSubmitListener_UnregisterRemovesEveryRegistration(t *testing.T) {
	f, _ := newTestForm(t, store.State{})
	l := &collector{}
	other := &collector{}

	unregister := f.AddSubmitListener(l, false)
	f.AddSubmitListener(other, false)
	f.AddSubmitListener(l, true)

	unregister()

	entries := f.SubmitListeners()
	if len(entries) != 1 {
		t.Fatalf("len(SubmitListeners()) = %d, want 1", len(entries))
	}
	if entries[0].Listener != other {
		t.Errorf("remaining listener is not the other collector")
	}
}

func TestRemoveSubmitListener(t *testing.T) {
	f, _ := newTestForm(t, store.State{"name": "Alice"})
	l := &collector{}
	kept := &collector{}

	f.AddSubmitListener(l, true)
	f.AddSubmitListener(kept, false)
	f.AddSubmitListener(l, false)

	f.RemoveSubmitListener(l)
	f.RemoveSubmitListener(&collector{})

	entries := f.SubmitListeners()
	if len(entries) != 1 || entries[0].Listener != kept || entries[0].SubmitOnValue {
		t.Fatalf("SubmitListeners() = %+v, want only the kept manual listener", entries)
	}

	if ok, _ := f.Submit(context.Background()); !ok {
		t.Fatal("Submit() = false")
	}
	if l.calls() != 0 || kept.calls() != 1 {
		t.Errorf("calls: removed=%d kept=%d, want 0 and 1", l.calls(), kept.calls())
	}
}

func TestRegistry_ChangesDuringSubmit(t *testing.T) {
	f, _ := newTestForm(t, store.State{"name": "Alice"})
	late := &collector{}

	f.AddSubmitListener(form.Notify(func(store.State) {
		f.AddSubmitListener(late, false)
	}), false)

	if ok, _ := f.Submit(context.Background()); !ok {
		t.Fatal("Submit() = false")
	}
	if late.calls() != 0 {
		t.Errorf("listener added mid-submission ran %d times, want 0", late.calls())
	}
	if len(f.SubmitListeners()) != 2 {
		t.Errorf("len(SubmitListeners()) = %d, want 2", len(f.SubmitListeners()))
	}
}
