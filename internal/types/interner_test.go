package types

import "testing"

func TestInternDedupsStructuralTypes(t *testing.T) {
	in := NewInterner()
	a := in.Intern(MakeInt(Width32))
	b := in.Intern(MakeInt(Width32))
	if a != b {
		t.Fatalf("identical descriptors interned to %d and %d", a, b)
	}
	c := in.Intern(MakeInt(Width64))
	if c == a {
		t.Fatalf("different widths shared TypeID %d", c)
	}
}

func TestNominalTypesAreNeverDeduped(t *testing.T) {
	in := NewInterner()
	a := in.RegisterNamed([]string{"game", "Position"}, nil)
	b := in.RegisterNamed([]string{"game", "Position"}, nil)
	if a == b {
		t.Fatalf("two registrations of the same path shared TypeID %d", a)
	}
}

func TestInvalidKindInternsToNoTypeID(t *testing.T) {
	in := NewInterner()
	if got := in.Intern(Type{Kind: KindInvalid}); got != NoTypeID {
		t.Fatalf("Intern(invalid) = %d, want %d", got, NoTypeID)
	}
	if _, ok := in.Lookup(NoTypeID); ok {
		t.Fatalf("Lookup(NoTypeID) reported success")
	}
}

func TestGenericParamName(t *testing.T) {
	in := NewInterner()
	p := in.RegisterGenericParam("T")
	name, ok := in.GenericParamName(p)
	if !ok || name != "T" {
		t.Fatalf("GenericParamName = (%q, %v), want (\"T\", true)", name, ok)
	}
	if _, ok := in.GenericParamName(in.Builtins().Bool); ok {
		t.Fatalf("GenericParamName answered for a non-param type")
	}
}

func TestStringRendersSourceForm(t *testing.T) {
	in := NewInterner()
	event := in.RegisterNamed([]string{"game", "MoveEvent"}, nil)
	buf := in.RegisterNamed([]string{"tempest", "event", "EventBuffer"}, []TypeID{event})
	ref := in.Intern(MakeRef(event, true))
	tup := in.RegisterTuple([]TypeID{ref, event})

	cases := []struct {
		id   TypeID
		want string
	}{
		{in.Builtins().Unit, "()"},
		{in.Builtins().Bool, "bool"},
		{in.Intern(MakeInt(Width32)), "int32"},
		{event, "MoveEvent"},
		{buf, "EventBuffer<MoveEvent>"},
		{ref, "&mut MoveEvent"},
		{tup, "(&mut MoveEvent, MoveEvent)"},
	}
	for _, tc := range cases {
		if got := in.String(tc.id); got != tc.want {
			t.Fatalf("String(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestAliasTarget(t *testing.T) {
	in := NewInterner()
	app := in.RegisterNamed([]string{"tempest", "app", "App"}, nil)
	alias := in.RegisterAlias("MyApp", app)

	target, ok := in.AliasTarget(alias)
	if !ok || target != app {
		t.Fatalf("AliasTarget = (%d, %v), want (%d, true)", target, ok, app)
	}
	if got := in.String(alias); got != "MyApp" {
		t.Fatalf("String(alias) = %q, want %q", got, "MyApp")
	}
}
