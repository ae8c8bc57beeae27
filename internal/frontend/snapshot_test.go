package frontend

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"tempestlint/internal/source"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

// roundTripProgram builds a program exercising every payload shape: all
// type kinds, all expression and statement kinds, and a function with
// parameters, a declared result and a nested block.
func roundTripProgram() *Program {
	p := NewProgram()
	src := "fn main() -> AppExit {\n    let ev = make();\n    app.add_event::<MoveEvent>();\n    return ev;\n}\n"
	file := p.Files.AddVirtual("main.tp", []byte(src))

	in := p.Types
	f32 := in.Intern(types.MakeFloat(types.Width32))
	position := in.RegisterNamed([]string{"game", "Position"}, nil)
	in.SetNamedFields(position, []types.TypeID{f32, f32})
	event := in.RegisterNamed([]string{"game", "MoveEvent"}, nil)
	buf := in.RegisterNamed([]string{"tempest", "event", "EventBuffer"}, []types.TypeID{event})
	in.RegisterAlias("Events", buf)
	in.RegisterGenericParam("T")
	posRef := in.Intern(types.MakeRef(position, true))
	in.RegisterTuple([]types.TypeID{posRef, event})
	exit := in.RegisterNamed([]string{"tempest", "app", "AppExit"}, nil)
	app := in.RegisterNamed([]string{"tempest", "app", "App"}, nil)

	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}

	evVar := &tree.Expr{Kind: tree.ExprVarRef, Type: event, Data: &tree.VarRefData{Name: "ev"}}
	makeCall := &tree.Expr{
		Kind: tree.ExprCall,
		Type: event,
		Data: &tree.CallData{
			Callee: &tree.Expr{Kind: tree.ExprVarRef, Data: &tree.VarRefData{Name: "make"}},
			Args: []*tree.Expr{{
				Kind: tree.ExprUnary,
				Data: &tree.UnaryData{
					Op:      "-",
					Operand: &tree.Expr{Kind: tree.ExprLiteral, Type: f32, Data: &tree.LiteralData{Text: "1.0"}},
				},
			}},
		},
	}
	addEvent := &tree.Expr{
		Kind: tree.ExprMethodCall,
		Span: span(48, 76),
		Data: &tree.MethodCallData{
			Recv:       &tree.Expr{Kind: tree.ExprVarRef, Type: app, Data: &tree.VarRefData{Name: "app"}},
			Method:     "add_event",
			NameSpan:   span(52, 61),
			MethodSpan: span(52, 76),
			TypeArgs: []*tree.TypeRef{{
				Span:     span(64, 73),
				Segments: []string{"MoveEvent"},
				Type:     event,
			}},
		},
	}
	fieldAndTuple := &tree.Expr{
		Kind: tree.ExprTuple,
		Data: &tree.TupleData{Elems: []*tree.Expr{
			{Kind: tree.ExprField, Data: &tree.FieldData{Recv: evVar, Name: "x"}},
		}},
	}

	body := &tree.Block{Stmts: []*tree.Stmt{
		{Kind: tree.StmtLet, Data: &tree.LetData{
			Name:  "ev",
			Type:  &tree.TypeRef{Segments: []string{"MoveEvent"}, Type: event},
			Value: makeCall,
		}},
		{Kind: tree.StmtExpr, Data: &tree.ExprStmtData{Expr: addEvent, Semi: span(76, 77)}},
		{Kind: tree.StmtBlock, Data: &tree.BlockStmtData{Block: &tree.Block{Stmts: []*tree.Stmt{
			{Kind: tree.StmtExpr, Data: &tree.ExprStmtData{Expr: fieldAndTuple}},
		}}}},
		{Kind: tree.StmtReturn, Data: &tree.ReturnData{Value: evVar}},
	}}

	p.Units = append(p.Units, &tree.Unit{
		Name: "main.tp",
		File: file,
		Funcs: []*tree.Func{{
			Name:       "main",
			Flags:      tree.FuncEntrypoint,
			Params:     []tree.Param{{Name: "app", Type: &tree.TypeRef{Segments: []string{"App"}, Type: app}}},
			Result:     &tree.TypeRef{Span: span(13, 20), Segments: []string{"AppExit"}, Type: exit},
			ResultSpan: span(13, 20),
			Body:       body,
		}},
	})
	return p
}

func TestSnapshotRoundTrip(t *testing.T) {
	orig := roundTripProgram()

	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got.Files.Len() != 1 {
		t.Fatalf("got %d files, want 1", got.Files.Len())
	}
	f := got.Files.Get(0)
	if f.Path != "main.tp" || f.Flags&source.FileVirtual == 0 {
		t.Fatalf("file did not round trip: path=%q flags=%v", f.Path, f.Flags)
	}

	if len(got.Units) != 1 || len(got.Units[0].Funcs) != 1 {
		t.Fatalf("unit shape did not round trip")
	}
	fn := got.Units[0].Funcs[0]
	if fn.Name != "main" || fn.Flags&tree.FuncEntrypoint == 0 {
		t.Fatalf("func = %q flags=%v", fn.Name, fn.Flags)
	}
	if fn.Result == nil || !got.Types.MatchPath(fn.Result.Type, []string{"tempest", "app", "AppExit"}) {
		t.Fatalf("result type did not survive")
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "app" {
		t.Fatalf("params did not round trip: %+v", fn.Params)
	}
	if len(fn.Body.Stmts) != 4 {
		t.Fatalf("got %d body statements, want 4", len(fn.Body.Stmts))
	}

	let, ok := fn.Body.Stmts[0].Data.(*tree.LetData)
	if !ok || let.Name != "ev" {
		t.Fatalf("let statement did not round trip: %+v", fn.Body.Stmts[0].Data)
	}
	call, ok := let.Value.Data.(*tree.CallData)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("call payload did not round trip")
	}
	unary, ok := call.Args[0].Data.(*tree.UnaryData)
	if !ok || unary.Op != "-" {
		t.Fatalf("unary payload did not round trip")
	}
	lit, ok := unary.Operand.Data.(*tree.LiteralData)
	if !ok || lit.Text != "1.0" {
		t.Fatalf("literal payload did not round trip")
	}

	es, ok := fn.Body.Stmts[1].Data.(*tree.ExprStmtData)
	if !ok || es.Semi.Empty() {
		t.Fatalf("terminator span did not round trip")
	}
	mc := es.Expr.MethodCall()
	if mc == nil || mc.Method != "add_event" {
		t.Fatalf("method call did not round trip")
	}
	if len(mc.TypeArgs) != 1 || !got.Types.MatchPath(mc.TypeArgs[0].Type, []string{"game", "MoveEvent"}) {
		t.Fatalf("type arguments did not round trip")
	}
	if mc.NameSpan != (source.Span{File: 0, Start: 52, End: 61}) {
		t.Fatalf("name span = %v", mc.NameSpan)
	}

	nested, ok := fn.Body.Stmts[2].Data.(*tree.BlockStmtData)
	if !ok || len(nested.Block.Stmts) != 1 {
		t.Fatalf("nested block did not round trip")
	}
	inner := nested.Block.Stmts[0].Data.(*tree.ExprStmtData)
	tup, ok := inner.Expr.Data.(*tree.TupleData)
	if !ok || len(tup.Elems) != 1 {
		t.Fatalf("tuple payload did not round trip")
	}
	field, ok := tup.Elems[0].Data.(*tree.FieldData)
	if !ok || field.Name != "x" {
		t.Fatalf("field payload did not round trip")
	}

	ret, ok := fn.Body.Stmts[3].Data.(*tree.ReturnData)
	if !ok {
		t.Fatalf("return statement did not round trip")
	}
	vr, ok := ret.Value.Data.(*tree.VarRefData)
	if !ok || vr.Name != "ev" {
		t.Fatalf("var ref payload did not round trip")
	}
}

func TestSnapshotRestoresSemanticQueries(t *testing.T) {
	orig := roundTripProgram()
	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	fn := got.Units[0].Funcs[0]
	mc := fn.Body.Stmts[1].Data.(*tree.ExprStmtData).Expr.MethodCall()
	event := mc.TypeArgs[0].Type

	var buf types.TypeID
	for id := types.TypeID(1); int(id) < got.Types.Len(); id++ {
		if got.Types.MatchPath(id, []string{"tempest", "event", "EventBuffer"}) {
			buf = id
		}
	}
	if buf == types.NoTypeID {
		t.Fatalf("event buffer type missing after decode")
	}
	arg, ok := got.Types.GenericArgAt(buf, 0)
	if !ok || arg != event {
		t.Fatalf("GenericArgAt = (%v, %v), want the event type %v", arg, ok, event)
	}

	target, ok := got.Types.AliasTarget(aliasID(t, got.Types, "Events"))
	if !ok || target != buf {
		t.Fatalf("alias target = (%v, %v), want the event buffer %v", target, ok, buf)
	}

	fe := got.Frontend()
	var position types.TypeID
	for id := types.TypeID(1); int(id) < got.Types.Len(); id++ {
		// MatchPath strips reference layers, so the &mut Position slot also
		// matches; keep only the named type itself.
		tt, ok := got.Types.Lookup(id)
		if ok && tt.Kind == types.KindNamed && got.Types.MatchPath(id, []string{"game", "Position"}) {
			position = id
		}
	}
	lay, err := fe.LayoutOf(position)
	if err != nil {
		t.Fatalf("LayoutOf failed after decode: %v", err)
	}
	if lay.Size != 8 || lay.Align != 4 {
		t.Fatalf("layout = %d/%d, want 8/4", lay.Size, lay.Align)
	}

	if text, ok := fe.Snippet(mc.NameSpan); !ok || text != "add_event" {
		t.Fatalf("snippet = (%q, %v), want add_event", text, ok)
	}
}

func aliasID(t *testing.T, in *types.Interner, name string) types.TypeID {
	t.Helper()
	for id := types.TypeID(1); int(id) < in.Len(); id++ {
		if info, ok := in.AliasInfo(id); ok && info.Name == name {
			return id
		}
	}
	t.Fatalf("alias %q not found", name)
	return types.NoTypeID
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.snapshot")
	orig := roundTripProgram()

	if err := WriteSnapshot(path, orig); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if got.Files.Len() != 1 || len(got.Units) != 1 {
		t.Fatalf("snapshot file did not round trip")
	}
}

func TestDecodeRejectsSchemaMismatch(t *testing.T) {
	data, err := msgpack.Marshal(&Payload{Schema: SnapshotSchema + 1})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := Decode(data); err == nil || !strings.Contains(err.Error(), "schema mismatch") {
		t.Fatalf("Decode err = %v, want schema mismatch", err)
	}
}

func TestDecodeRejectsForwardTypeLink(t *testing.T) {
	data, err := msgpack.Marshal(&Payload{
		Schema: SnapshotSchema,
		Types: []TypePayload{{
			Kind: uint8(types.KindRef),
			Elem: 3,
		}},
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := Decode(data); err == nil || !strings.Contains(err.Error(), "links forward") {
		t.Fatalf("Decode err = %v, want forward link error", err)
	}
}
