package frontend

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"tempestlint/internal/source"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

// SnapshotSchema is bumped on any payload shape change. Decoders reject
// mismatched schemas instead of guessing.
const SnapshotSchema = 1

// Payload is the on-disk form of a Program. Node graphs are flattened into
// index-linked arrays because the in-memory tree uses interface payloads
// that do not survive generic serialization. Index 0 means "absent"
// everywhere, mirroring types.NoTypeID.
type Payload struct {
	Schema int           `msgpack:"schema"`
	Files  []FilePayload `msgpack:"files"`
	Types  []TypePayload `msgpack:"types"`
	Units  []UnitPayload `msgpack:"units"`
}

// FilePayload carries one normalized source file.
type FilePayload struct {
	Path    string `msgpack:"path"`
	Content []byte `msgpack:"content"`
	Flags   uint32 `msgpack:"flags"`
}

// TypePayload is one interner slot. Entries start at TypeID 1; the invalid
// sentinel at slot 0 is never serialized.
type TypePayload struct {
	Kind    uint8  `msgpack:"kind"`
	Elem    uint32 `msgpack:"elem,omitempty"`
	Width   uint8  `msgpack:"width,omitempty"`
	Mutable bool   `msgpack:"mut,omitempty"`

	Path        []string `msgpack:"path,omitempty"`
	Args        []uint32 `msgpack:"args,omitempty"`
	Fields      []uint32 `msgpack:"fields,omitempty"`
	FieldsKnown bool     `msgpack:"fields_known,omitempty"`

	Elems []uint32 `msgpack:"elems,omitempty"`

	Alias  string `msgpack:"alias,omitempty"`
	Target uint32 `msgpack:"target,omitempty"`

	Param string `msgpack:"param,omitempty"`
}

// UnitPayload flattens one unit. Exprs, Stmts, Blocks and Refs are arenas
// addressed by 1-based indices from the payloads that link to them.
type UnitPayload struct {
	Name   string           `msgpack:"name"`
	File   uint32           `msgpack:"file"`
	Funcs  []FuncPayload    `msgpack:"funcs"`
	Exprs  []ExprPayload    `msgpack:"exprs,omitempty"`
	Stmts  []StmtPayload    `msgpack:"stmts,omitempty"`
	Blocks []BlockPayload   `msgpack:"blocks,omitempty"`
	Refs   []TypeRefPayload `msgpack:"refs,omitempty"`
}

// FuncPayload is one function declaration.
type FuncPayload struct {
	Name       string         `msgpack:"name"`
	Span       source.Span    `msgpack:"span"`
	Flags      uint32         `msgpack:"flags,omitempty"`
	Params     []ParamPayload `msgpack:"params,omitempty"`
	Result     uint32         `msgpack:"result,omitempty"`
	ResultSpan source.Span    `msgpack:"result_span"`
	Body       uint32         `msgpack:"body,omitempty"`
}

// ParamPayload is one function parameter.
type ParamPayload struct {
	Name string      `msgpack:"name"`
	Span source.Span `msgpack:"span"`
	Type uint32      `msgpack:"type,omitempty"`
}

// ExprPayload is one expression arena slot. X holds the single child link
// (operand, callee or receiver); Args holds the child list (call arguments
// or tuple elements).
type ExprPayload struct {
	Kind uint8       `msgpack:"kind"`
	Type uint32      `msgpack:"type,omitempty"`
	Span source.Span `msgpack:"span"`

	Text string   `msgpack:"text,omitempty"`
	Name string   `msgpack:"name,omitempty"`
	X    uint32   `msgpack:"x,omitempty"`
	Args []uint32 `msgpack:"args,omitempty"`

	NameSpan   source.Span `msgpack:"name_span,omitempty"`
	MethodSpan source.Span `msgpack:"method_span,omitempty"`
	TypeArgs   []uint32    `msgpack:"type_args,omitempty"`
}

// StmtPayload is one statement arena slot.
type StmtPayload struct {
	Kind uint8       `msgpack:"kind"`
	Span source.Span `msgpack:"span"`

	Expr  uint32      `msgpack:"expr,omitempty"`
	Semi  source.Span `msgpack:"semi,omitempty"`
	Name  string      `msgpack:"name,omitempty"`
	Ref   uint32      `msgpack:"ref,omitempty"`
	Value uint32      `msgpack:"value,omitempty"`
	Block uint32      `msgpack:"block,omitempty"`
}

// BlockPayload is one block arena slot.
type BlockPayload struct {
	Span  source.Span `msgpack:"span"`
	Stmts []uint32    `msgpack:"stmts,omitempty"`
}

// TypeRefPayload is one type-reference arena slot.
type TypeRefPayload struct {
	Span     source.Span `msgpack:"span"`
	Segments []string    `msgpack:"segments,omitempty"`
	Args     []uint32    `msgpack:"args,omitempty"`
	Type     uint32      `msgpack:"type,omitempty"`
}

// Encode serializes a program into msgpack bytes.
func Encode(p *Program) ([]byte, error) {
	payload, err := buildPayload(p)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(payload)
}

// Decode rebuilds a program from msgpack bytes produced by Encode.
func Decode(data []byte) (*Program, error) {
	var payload Payload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if payload.Schema != SnapshotSchema {
		return nil, fmt.Errorf("snapshot schema mismatch: got %d, want %d", payload.Schema, SnapshotSchema)
	}
	return restoreProgram(&payload)
}

// WriteSnapshot atomically writes the encoded program to path.
func WriteSnapshot(path string, p *Program) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads and decodes a snapshot file.
func ReadSnapshot(path string) (*Program, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

func buildPayload(p *Program) (*Payload, error) {
	payload := &Payload{Schema: SnapshotSchema}

	if p.Files != nil {
		for i := 0; i < p.Files.Len(); i++ {
			f := p.Files.Get(source.FileID(uint32(i)))
			payload.Files = append(payload.Files, FilePayload{
				Path:    f.Path,
				Content: f.Content,
				Flags:   uint32(f.Flags),
			})
		}
	}

	if p.Types != nil {
		payload.Types = encodeTypes(p.Types)
	}

	for _, unit := range p.Units {
		up, err := encodeUnit(unit)
		if err != nil {
			return nil, err
		}
		payload.Units = append(payload.Units, *up)
	}
	return payload, nil
}

func encodeTypes(in *types.Interner) []TypePayload {
	out := make([]TypePayload, 0, in.Len()-1)
	for id := types.TypeID(1); int(id) < in.Len(); id++ {
		tt := in.MustLookup(id)
		tp := TypePayload{
			Kind:    uint8(tt.Kind),
			Elem:    uint32(tt.Elem),
			Width:   uint8(tt.Width),
			Mutable: tt.Mutable,
		}
		switch tt.Kind {
		case types.KindNamed:
			if info, ok := in.NamedInfo(id); ok {
				tp.Path = info.Path
				tp.Args = idsToWire(info.Args)
				tp.Fields = idsToWire(info.Fields)
				tp.FieldsKnown = info.FieldsKnown
			}
		case types.KindTuple:
			if info, ok := in.TupleInfo(id); ok {
				tp.Elems = idsToWire(info.Elems)
			}
		case types.KindAlias:
			if info, ok := in.AliasInfo(id); ok {
				tp.Alias = info.Name
				tp.Target = uint32(info.Target)
			}
		case types.KindGenericParam:
			if name, ok := in.GenericParamName(id); ok {
				tp.Param = name
			}
		}
		out = append(out, tp)
	}
	return out
}

// restoreTypes replays payload slots into a fresh interner. Structural slots
// only ever link to earlier slots, so a single ordered pass resolves them;
// nominal argument lists and alias targets may link forward and are patched
// in a second pass.
func restoreTypes(in *types.Interner, payload []TypePayload) ([]types.TypeID, error) {
	remap := make([]types.TypeID, len(payload)+1)

	for i, tp := range payload {
		old := i + 1
		kind := types.Kind(tp.Kind)
		switch kind {
		case types.KindNamed:
			remap[old] = in.RegisterNamed(tp.Path, nil)
		case types.KindAlias:
			remap[old] = in.RegisterAlias(tp.Alias, types.NoTypeID)
		case types.KindGenericParam:
			remap[old] = in.RegisterGenericParam(tp.Param)
		case types.KindTuple:
			elems, err := wireToIDs(remap, tp.Elems, old)
			if err != nil {
				return nil, err
			}
			remap[old] = in.RegisterTuple(elems)
		case types.KindInvalid:
			remap[old] = types.NoTypeID
		default:
			elem := types.NoTypeID
			if tp.Elem != 0 {
				if int(tp.Elem) >= old {
					return nil, fmt.Errorf("snapshot type %d links forward to %d", old, tp.Elem)
				}
				elem = remap[tp.Elem]
			}
			remap[old] = in.Intern(types.Type{
				Kind:    kind,
				Elem:    elem,
				Width:   types.Width(tp.Width),
				Mutable: tp.Mutable,
			})
		}
	}

	for i, tp := range payload {
		id := remap[i+1]
		switch types.Kind(tp.Kind) {
		case types.KindNamed:
			if len(tp.Args) > 0 {
				in.SetNamedArgs(id, remapWire(remap, tp.Args))
			}
			if tp.FieldsKnown {
				in.SetNamedFields(id, remapWire(remap, tp.Fields))
			}
		case types.KindAlias:
			if tp.Target != 0 && int(tp.Target) < len(remap) {
				in.SetAliasTarget(id, remap[tp.Target])
			}
		}
	}
	return remap, nil
}

func restoreProgram(payload *Payload) (*Program, error) {
	p := NewProgram()
	for _, fp := range payload.Files {
		p.Files.Add(fp.Path, fp.Content, source.FileFlags(fp.Flags))
	}
	if _, err := restoreTypes(p.Types, payload.Types); err != nil {
		return nil, err
	}
	for i := range payload.Units {
		unit, err := decodeUnit(&payload.Units[i])
		if err != nil {
			return nil, err
		}
		p.Units = append(p.Units, unit)
	}
	return p, nil
}

func idsToWire(ids []types.TypeID) []uint32 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}

func remapWire(remap []types.TypeID, wire []uint32) []types.TypeID {
	out := make([]types.TypeID, len(wire))
	for i, w := range wire {
		if int(w) < len(remap) {
			out[i] = remap[w]
		}
	}
	return out
}

func wireToIDs(remap []types.TypeID, wire []uint32, slot int) ([]types.TypeID, error) {
	out := make([]types.TypeID, len(wire))
	for i, w := range wire {
		if int(w) >= slot {
			return nil, fmt.Errorf("snapshot type %d links forward to %d", slot, w)
		}
		out[i] = remap[w]
	}
	return out, nil
}

// unitEncoder assigns arena indices while walking a unit.
type unitEncoder struct {
	payload  *UnitPayload
	exprIdx  map[*tree.Expr]uint32
	stmtIdx  map[*tree.Stmt]uint32
	blockIdx map[*tree.Block]uint32
	refIdx   map[*tree.TypeRef]uint32
}

func encodeUnit(u *tree.Unit) (*UnitPayload, error) {
	enc := &unitEncoder{
		payload: &UnitPayload{
			Name: u.Name,
			File: uint32(u.File),
		},
		exprIdx:  make(map[*tree.Expr]uint32),
		stmtIdx:  make(map[*tree.Stmt]uint32),
		blockIdx: make(map[*tree.Block]uint32),
		refIdx:   make(map[*tree.TypeRef]uint32),
	}
	for _, fn := range u.Funcs {
		fp := FuncPayload{
			Name:       fn.Name,
			Span:       fn.Span,
			Flags:      uint32(fn.Flags),
			Result:     enc.ref(fn.Result),
			ResultSpan: fn.ResultSpan,
			Body:       enc.block(fn.Body),
		}
		for _, param := range fn.Params {
			fp.Params = append(fp.Params, ParamPayload{
				Name: param.Name,
				Span: param.Span,
				Type: enc.ref(param.Type),
			})
		}
		enc.payload.Funcs = append(enc.payload.Funcs, fp)
	}
	return enc.payload, nil
}

func (enc *unitEncoder) expr(e *tree.Expr) uint32 {
	if e == nil {
		return 0
	}
	if idx, ok := enc.exprIdx[e]; ok {
		return idx
	}
	enc.payload.Exprs = append(enc.payload.Exprs, ExprPayload{})
	idx := wireIndex(len(enc.payload.Exprs))
	enc.exprIdx[e] = idx

	ep := ExprPayload{
		Kind: uint8(e.Kind),
		Type: uint32(e.Type),
		Span: e.Span,
	}
	switch d := e.Data.(type) {
	case *tree.LiteralData:
		ep.Text = d.Text
	case *tree.VarRefData:
		ep.Name = d.Name
	case *tree.UnaryData:
		ep.Name = d.Op
		ep.X = enc.expr(d.Operand)
	case *tree.CallData:
		ep.X = enc.expr(d.Callee)
		for _, arg := range d.Args {
			ep.Args = append(ep.Args, enc.expr(arg))
		}
	case *tree.MethodCallData:
		ep.Name = d.Method
		ep.X = enc.expr(d.Recv)
		ep.NameSpan = d.NameSpan
		ep.MethodSpan = d.MethodSpan
		for _, arg := range d.Args {
			ep.Args = append(ep.Args, enc.expr(arg))
		}
		for _, ta := range d.TypeArgs {
			ep.TypeArgs = append(ep.TypeArgs, enc.ref(ta))
		}
	case *tree.FieldData:
		ep.Name = d.Name
		ep.X = enc.expr(d.Recv)
	case *tree.TupleData:
		for _, elem := range d.Elems {
			ep.Args = append(ep.Args, enc.expr(elem))
		}
	}
	enc.payload.Exprs[idx-1] = ep
	return idx
}

func (enc *unitEncoder) stmt(s *tree.Stmt) uint32 {
	if s == nil {
		return 0
	}
	if idx, ok := enc.stmtIdx[s]; ok {
		return idx
	}
	enc.payload.Stmts = append(enc.payload.Stmts, StmtPayload{})
	idx := wireIndex(len(enc.payload.Stmts))
	enc.stmtIdx[s] = idx

	sp := StmtPayload{Kind: uint8(s.Kind), Span: s.Span}
	switch d := s.Data.(type) {
	case *tree.ExprStmtData:
		sp.Expr = enc.expr(d.Expr)
		sp.Semi = d.Semi
	case *tree.LetData:
		sp.Name = d.Name
		sp.Ref = enc.ref(d.Type)
		sp.Value = enc.expr(d.Value)
	case *tree.ReturnData:
		sp.Value = enc.expr(d.Value)
	case *tree.BlockStmtData:
		sp.Block = enc.block(d.Block)
	}
	enc.payload.Stmts[idx-1] = sp
	return idx
}

func (enc *unitEncoder) block(b *tree.Block) uint32 {
	if b == nil {
		return 0
	}
	if idx, ok := enc.blockIdx[b]; ok {
		return idx
	}
	enc.payload.Blocks = append(enc.payload.Blocks, BlockPayload{})
	idx := wireIndex(len(enc.payload.Blocks))
	enc.blockIdx[b] = idx

	bp := BlockPayload{Span: b.Span}
	for _, s := range b.Stmts {
		bp.Stmts = append(bp.Stmts, enc.stmt(s))
	}
	enc.payload.Blocks[idx-1] = bp
	return idx
}

func (enc *unitEncoder) ref(t *tree.TypeRef) uint32 {
	if t == nil {
		return 0
	}
	if idx, ok := enc.refIdx[t]; ok {
		return idx
	}
	enc.payload.Refs = append(enc.payload.Refs, TypeRefPayload{})
	idx := wireIndex(len(enc.payload.Refs))
	enc.refIdx[t] = idx

	rp := TypeRefPayload{
		Span:     t.Span,
		Segments: t.Segments,
		Type:     uint32(t.Type),
	}
	for _, arg := range t.Args {
		rp.Args = append(rp.Args, enc.ref(arg))
	}
	enc.payload.Refs[idx-1] = rp
	return idx
}

func wireIndex(n int) uint32 {
	idx, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("snapshot arena overflow: %w", err))
	}
	return idx
}

// unitDecoder allocates every arena node up front so forward links resolve,
// then fills the payloads.
type unitDecoder struct {
	payload *UnitPayload
	exprs   []*tree.Expr
	stmts   []*tree.Stmt
	blocks  []*tree.Block
	refs    []*tree.TypeRef
}

func decodeUnit(up *UnitPayload) (*tree.Unit, error) {
	dec := &unitDecoder{
		payload: up,
		exprs:   make([]*tree.Expr, len(up.Exprs)),
		stmts:   make([]*tree.Stmt, len(up.Stmts)),
		blocks:  make([]*tree.Block, len(up.Blocks)),
		refs:    make([]*tree.TypeRef, len(up.Refs)),
	}
	for i := range dec.exprs {
		dec.exprs[i] = &tree.Expr{}
	}
	for i := range dec.stmts {
		dec.stmts[i] = &tree.Stmt{}
	}
	for i := range dec.blocks {
		dec.blocks[i] = &tree.Block{}
	}
	for i := range dec.refs {
		dec.refs[i] = &tree.TypeRef{}
	}

	if err := dec.fill(); err != nil {
		return nil, err
	}

	unit := &tree.Unit{
		Name: up.Name,
		File: source.FileID(up.File),
	}
	for _, fp := range up.Funcs {
		fn := &tree.Func{
			Name:       fp.Name,
			Span:       fp.Span,
			Flags:      tree.FuncFlags(fp.Flags),
			ResultSpan: fp.ResultSpan,
		}
		var err error
		if fn.Result, err = dec.ref(fp.Result); err != nil {
			return nil, err
		}
		if fn.Body, err = dec.block(fp.Body); err != nil {
			return nil, err
		}
		for _, pp := range fp.Params {
			ref, err := dec.ref(pp.Type)
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, tree.Param{Name: pp.Name, Span: pp.Span, Type: ref})
		}
		unit.Funcs = append(unit.Funcs, fn)
	}
	return unit, nil
}

func (dec *unitDecoder) fill() error {
	for i, rp := range dec.payload.Refs {
		ref := dec.refs[i]
		ref.Span = rp.Span
		ref.Segments = rp.Segments
		ref.Type = types.TypeID(rp.Type)
		for _, arg := range rp.Args {
			child, err := dec.ref(arg)
			if err != nil {
				return err
			}
			ref.Args = append(ref.Args, child)
		}
	}
	for i, ep := range dec.payload.Exprs {
		if err := dec.fillExpr(dec.exprs[i], &ep); err != nil {
			return err
		}
	}
	for i, sp := range dec.payload.Stmts {
		if err := dec.fillStmt(dec.stmts[i], &sp); err != nil {
			return err
		}
	}
	for i, bp := range dec.payload.Blocks {
		block := dec.blocks[i]
		block.Span = bp.Span
		for _, s := range bp.Stmts {
			child, err := dec.stmt(s)
			if err != nil {
				return err
			}
			block.Stmts = append(block.Stmts, child)
		}
	}
	return nil
}

func (dec *unitDecoder) fillExpr(e *tree.Expr, ep *ExprPayload) error {
	e.Kind = tree.ExprKind(ep.Kind)
	e.Type = types.TypeID(ep.Type)
	e.Span = ep.Span

	switch e.Kind {
	case tree.ExprLiteral:
		e.Data = &tree.LiteralData{Text: ep.Text}
	case tree.ExprVarRef:
		e.Data = &tree.VarRefData{Name: ep.Name}
	case tree.ExprUnary:
		operand, err := dec.expr(ep.X)
		if err != nil {
			return err
		}
		e.Data = &tree.UnaryData{Op: ep.Name, Operand: operand}
	case tree.ExprCall:
		callee, err := dec.expr(ep.X)
		if err != nil {
			return err
		}
		d := &tree.CallData{Callee: callee}
		for _, arg := range ep.Args {
			child, err := dec.expr(arg)
			if err != nil {
				return err
			}
			d.Args = append(d.Args, child)
		}
		e.Data = d
	case tree.ExprMethodCall:
		recv, err := dec.expr(ep.X)
		if err != nil {
			return err
		}
		d := &tree.MethodCallData{
			Recv:       recv,
			Method:     ep.Name,
			NameSpan:   ep.NameSpan,
			MethodSpan: ep.MethodSpan,
		}
		for _, arg := range ep.Args {
			child, err := dec.expr(arg)
			if err != nil {
				return err
			}
			d.Args = append(d.Args, child)
		}
		for _, ta := range ep.TypeArgs {
			ref, err := dec.ref(ta)
			if err != nil {
				return err
			}
			d.TypeArgs = append(d.TypeArgs, ref)
		}
		e.Data = d
	case tree.ExprField:
		recv, err := dec.expr(ep.X)
		if err != nil {
			return err
		}
		e.Data = &tree.FieldData{Recv: recv, Name: ep.Name}
	case tree.ExprTuple:
		d := &tree.TupleData{}
		for _, elem := range ep.Args {
			child, err := dec.expr(elem)
			if err != nil {
				return err
			}
			d.Elems = append(d.Elems, child)
		}
		e.Data = d
	default:
		return fmt.Errorf("snapshot has unknown expr kind %d", ep.Kind)
	}
	return nil
}

func (dec *unitDecoder) fillStmt(s *tree.Stmt, sp *StmtPayload) error {
	s.Kind = tree.StmtKind(sp.Kind)
	s.Span = sp.Span

	switch s.Kind {
	case tree.StmtExpr:
		e, err := dec.expr(sp.Expr)
		if err != nil {
			return err
		}
		s.Data = &tree.ExprStmtData{Expr: e, Semi: sp.Semi}
	case tree.StmtLet:
		ref, err := dec.ref(sp.Ref)
		if err != nil {
			return err
		}
		value, err := dec.expr(sp.Value)
		if err != nil {
			return err
		}
		s.Data = &tree.LetData{Name: sp.Name, Type: ref, Value: value}
	case tree.StmtReturn:
		value, err := dec.expr(sp.Value)
		if err != nil {
			return err
		}
		s.Data = &tree.ReturnData{Value: value}
	case tree.StmtBlock:
		block, err := dec.block(sp.Block)
		if err != nil {
			return err
		}
		s.Data = &tree.BlockStmtData{Block: block}
	default:
		return fmt.Errorf("snapshot has unknown stmt kind %d", sp.Kind)
	}
	return nil
}

func (dec *unitDecoder) expr(idx uint32) (*tree.Expr, error) {
	if idx == 0 {
		return nil, nil
	}
	if int(idx) > len(dec.exprs) {
		return nil, fmt.Errorf("snapshot expr index %d out of range", idx)
	}
	return dec.exprs[idx-1], nil
}

func (dec *unitDecoder) stmt(idx uint32) (*tree.Stmt, error) {
	if idx == 0 {
		return nil, nil
	}
	if int(idx) > len(dec.stmts) {
		return nil, fmt.Errorf("snapshot stmt index %d out of range", idx)
	}
	return dec.stmts[idx-1], nil
}

func (dec *unitDecoder) block(idx uint32) (*tree.Block, error) {
	if idx == 0 {
		return nil, nil
	}
	if int(idx) > len(dec.blocks) {
		return nil, fmt.Errorf("snapshot block index %d out of range", idx)
	}
	return dec.blocks[idx-1], nil
}

func (dec *unitDecoder) ref(idx uint32) (*tree.TypeRef, error) {
	if idx == 0 {
		return nil, nil
	}
	if int(idx) > len(dec.refs) {
		return nil, fmt.Errorf("snapshot ref index %d out of range", idx)
	}
	return dec.refs[idx-1], nil
}
