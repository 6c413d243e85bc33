package fortran

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/token"
	"github.com/leapstack-labs/stylist/pkg/tree"
)

// rawStmt is one logical statement with its label and construct name split off.
type rawStmt struct {
	toks      []token.Token
	label     string
	construct string
	line      int
	text      string
}

// scan lexes input into a flat list of comments and classified statements.
func scan(input string) ([]tree.Node, error) {
	l := NewLexer(input)
	var (
		out      []tree.Node
		cur      []token.Token
		trailing []tree.Node
	)
	flush := func() error {
		if len(cur) > 0 {
			st, err := classify(newRawStmt(cur))
			if err != nil {
				return err
			}
			out = append(out, st)
			cur = nil
		}
		out = append(out, trailing...)
		trailing = nil
		return nil
	}
	for {
		tok := l.NextToken()
		switch tok.Type {
		case token.ILLEGAL:
			msg := tok.Literal
			if msg != ErrUnterminatedString {
				msg = fmt.Sprintf(ErrUnexpectedCharacter, tok.Literal)
			}
			return nil, &ParseError{Line: tok.Pos.Line, Message: msg}
		case token.COMMENT:
			c := &Comment{node: node{kind: KindComment}, text: tok.Literal, line: tok.Pos.Line}
			if len(cur) > 0 {
				c.trailing = true
				trailing = append(trailing, c)
			} else {
				out = append(out, c)
			}
		case token.EOS:
			if err := flush(); err != nil {
				return nil, err
			}
		case token.EOF:
			if err := flush(); err != nil {
				return nil, err
			}
			return out, nil
		default:
			cur = append(cur, tok)
		}
	}
}

func newRawStmt(toks []token.Token) rawStmt {
	raw := rawStmt{line: toks[0].Pos.Line, text: render(toks)}
	if toks[0].Type == token.INT && len(toks) > 1 {
		raw.label = toks[0].Literal
		toks = toks[1:]
	}
	if len(toks) > 2 && toks[0].Type == token.NAME && toks[1].Type == token.COLON {
		raw.construct = toks[0].Literal
		toks = toks[2:]
	}
	raw.toks = toks
	return raw
}

func (r rawStmt) base(kind string) Stmt {
	return Stmt{node: node{kind: kind}, line: r.line, label: r.label, construct: r.construct, text: r.text}
}

func (r rawStmt) errorf(format string, args ...any) error {
	return &ParseError{Line: r.line, Message: fmt.Sprintf(format, args...)}
}

func (r rawStmt) unrecognised() error {
	return r.errorf(ErrUnrecognised, r.text)
}

// simpleKinds maps leading keywords to statements without structured parts.
var simpleKinds = map[string]string{
	"contains":   KindContainsStmt,
	"implicit":   KindImplicitStmt,
	"parameter":  KindParameterStmt,
	"format":     KindFormatStmt,
	"entry":      KindEntryStmt,
	"sequence":   KindSequenceStmt,
	"call":       KindCallStmt,
	"continue":   KindContinueStmt,
	"return":     KindReturnStmt,
	"stop":       KindStopStmt,
	"goto":       KindGotoStmt,
	"allocate":   KindAllocateStmt,
	"deallocate": KindDeallocateStmt,
	"nullify":    KindNullifyStmt,
	"print":      KindPrintStmt,
	"read":       KindReadStmt,
	"write":      KindWriteStmt,
	"open":       KindOpenStmt,
	"close":      KindCloseStmt,
	"inquire":    KindInquireStmt,
	"rewind":     KindRewindStmt,
	"backspace":  KindBackspaceStmt,
	"endfile":    KindEndfileStmt,
	"flush":      KindFlushStmt,
	"wait":       KindWaitStmt,
	"pause":      KindPauseStmt,
	"associate":  KindAssociateStmt,
	"errorstop":  KindErrorStopStmt,
}

// attributeKinds maps attribute keywords to the statement form applying
// them to a list of names.
var attributeKinds = map[string]string{
	"public":       KindAccessStmt,
	"private":      KindAccessStmt,
	"allocatable":  "Allocatable_Stmt",
	"asynchronous": "Asynchronous_Stmt",
	"bind":         "Bind_Stmt",
	"common":       "Common_Stmt",
	"data":         "Data_Stmt",
	"dimension":    "Dimension_Stmt",
	"equivalence":  "Equivalence_Stmt",
	"external":     "External_Stmt",
	"intent":       KindIntentStmt,
	"intrinsic":    "Intrinsic_Stmt",
	"namelist":     "Namelist_Stmt",
	"optional":     "Optional_Stmt",
	"pointer":      "Pointer_Stmt",
	"protected":    "Protected_Stmt",
	"save":         "Save_Stmt",
	"target":       "Target_Stmt",
	"value":        "Value_Stmt",
	"volatile":     "Volatile_Stmt",
	"import":       KindImportStmt,
	"generic":      KindGenericBinding,
	"final":        KindFinalBinding,
}

var intrinsicTypes = map[string]bool{
	"integer": true, "real": true, "complex": true, "logical": true,
	"character": true, "double": true, "doubleprecision": true, "doublecomplex": true,
}

var procedurePrefixes = map[string]bool{
	"recursive": true, "pure": true, "elemental": true, "impure": true,
	"non_recursive": true, "module": true,
}

// endKinds maps the word after END to the statement kind it produces.
var endKinds = map[string]string{
	"program":    KindEndProgramStmt,
	"module":     KindEndModuleStmt,
	"function":   KindEndFunctionStmt,
	"subroutine": KindEndSubroutineStmt,
	"type":       KindEndTypeStmt,
	"interface":  KindEndInterfaceStmt,
	"do":         KindEndDoStmt,
	"if":         KindEndIfStmt,
	"select":     KindEndSelectStmt,
	"where":      KindEndWhereStmt,
	"forall":     KindEndForallStmt,
	"block":      KindEndBlockStmt,
	"associate":  KindEndAssociateStmt,
}

// classify turns a logical statement into a typed statement node.
func classify(r rawStmt) (Statement, error) {
	toks := r.toks
	if len(toks) == 0 || toks[0].Type != token.NAME {
		return nil, r.unrecognised()
	}
	if kind, ok := assignmentKind(toks); ok {
		s := r.base(kind)
		return &s, nil
	}

	word := strings.ToLower(toks[0].Literal)
	second := token.Token{Type: token.EOF}
	if len(toks) > 1 {
		second = toks[1]
	}

	switch {
	case word == "program":
		return unitStmt(r, KindProgramStmt)
	case word == "module" && second.Is("procedure"):
		return namesStmt(r, KindProcedureStmt, 2)
	case word == "module" && (second.Is("function") || second.Is("subroutine")):
		return procedureStmt(r)
	case word == "module":
		return unitStmt(r, KindModuleStmt)
	case word == "function" || word == "subroutine" || procedurePrefixes[word]:
		return procedureStmt(r)
	case intrinsicTypes[word]:
		if hasTopWord(toks, "function") {
			return procedureStmt(r)
		}
		return declStmt(r, KindTypeDeclarationStmt)
	case word == "type" || word == "class":
		return typeStmt(r, word)
	case word == "procedure":
		return declStmt(r, KindProcedureDeclStmt)
	case word == "use":
		return useStmt(r)
	case word == "interface":
		return interfaceStmt(r, nil)
	case word == "abstract" && second.Is("interface"):
		r.toks = toks[1:]
		return interfaceStmt(r, []string{"abstract"})
	case word == "do":
		return doStmt(r)
	case word == "if":
		return ifStmt(r)
	case word == "else" || word == "elseif" || word == "elsewhere":
		return elseStmt(r, word)
	case word == "select" || word == "selectcase" || word == "selecttype":
		return selectStmt(r, word)
	case word == "case":
		s := r.base(KindCaseStmt)
		return &s, nil
	case word == "where":
		return maskedStmt(r, KindWhereConstructStmt, KindWhereStmt)
	case word == "forall":
		return maskedStmt(r, KindForallConstructStmt, KindForallStmt)
	case word == "block" && len(toks) == 1:
		s := r.base(KindBlockStmt)
		return &s, nil
	case word == "exit":
		return branchStmt(r, KindExitStmt)
	case word == "cycle":
		return branchStmt(r, KindCycleStmt)
	case word == "go" && second.Is("to"):
		s := r.base(KindGotoStmt)
		return &s, nil
	case word == "error" && second.Is("stop"):
		s := r.base(KindErrorStopStmt)
		return &s, nil
	case word == "end" || strings.HasPrefix(word, "end") && endKinds[word[3:]] != "":
		return endStmt(r, word)
	}
	if kind, ok := attributeKinds[word]; ok {
		return namesStmt(r, kind, 1)
	}
	if kind, ok := simpleKinds[word]; ok {
		s := r.base(kind)
		return &s, nil
	}
	return nil, r.unrecognised()
}

// assignmentKind recognises "designator = expr" and "designator => target".
func assignmentKind(toks []token.Token) (string, bool) {
	i := 1
	for i < len(toks) {
		switch {
		case toks[i].Type == token.LPAREN:
			end := matchingParen(toks, i)
			if end < 0 {
				return "", false
			}
			i = end + 1
		case toks[i].Type == token.PERCENT && i+1 < len(toks) && toks[i+1].Type == token.NAME:
			i += 2
		case toks[i].Type == token.ASSIGN:
			return KindAssignmentStmt, true
		case toks[i].Type == token.ARROW:
			return KindPointerAssignmentStmt, true
		default:
			return "", false
		}
	}
	return "", false
}

func hasTopWord(toks []token.Token, word string) bool {
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			depth--
		}
		if depth == 0 && tok.Is(word) {
			return true
		}
	}
	return false
}

func unitStmt(r rawStmt, kind string) (Statement, error) {
	if len(r.toks) < 2 || r.toks[1].Type != token.NAME {
		return nil, r.errorf(ErrMalformed, kind)
	}
	return &UnitStmt{Stmt: r.base(kind), name: r.toks[1].Literal}, nil
}

// procedureStmt parses [prefix...] FUNCTION|SUBROUTINE name [(args)] [suffix].
func procedureStmt(r rawStmt) (Statement, error) {
	c := newCursor(r.toks)
	var prefix []string
	kind := ""
	for !c.done() && kind == "" {
		tok := c.next()
		switch {
		case tok.Is("function"):
			kind = KindFunctionStmt
		case tok.Is("subroutine"):
			kind = KindSubroutineStmt
		case tok.Type == token.NAME:
			word := strings.ToLower(tok.Literal)
			if inner, ok := c.group(); ok {
				word += "(" + canonical(inner) + ")"
			}
			prefix = append(prefix, word)
		default:
			return nil, r.unrecognised()
		}
	}
	if kind == "" || c.peek().Type != token.NAME {
		return nil, r.errorf(ErrMalformed, "procedure statement")
	}
	s := &UnitStmt{Stmt: r.base(kind), name: c.next().Literal, prefix: prefix}
	if inner, ok := c.group(); ok {
		for _, arg := range splitTop(inner) {
			if len(arg) > 0 {
				s.args = append(s.args, arg[0].Literal)
			}
		}
	}
	for !c.done() {
		tok := c.next()
		inner, ok := c.group()
		if !ok {
			return nil, r.errorf(ErrMalformed, "procedure statement")
		}
		if tok.Is("result") && len(inner) == 1 {
			s.result = inner[0].Literal
		}
	}
	return s, nil
}

// typeStmt separates TYPE/CLASS declarations, type definitions and type guards.
func typeStmt(r rawStmt, word string) (Statement, error) {
	c := newCursor(r.toks[1:])
	switch {
	case c.peek().Type == token.LPAREN:
		if hasTopWord(r.toks, "function") {
			return procedureStmt(r)
		}
		return declStmt(r, KindTypeDeclarationStmt)
	case c.peek().Is("is") || (word == "class" && c.peek().Is("default")):
		s := r.base(KindTypeGuardStmt)
		return &s, nil
	case word == "class":
		return nil, r.unrecognised()
	}
	if _, ok := c.until(token.DCOLON); ok {
		c.next()
	} else {
		c = newCursor(r.toks[1:])
	}
	if c.peek().Type != token.NAME {
		return nil, r.errorf(ErrMalformed, KindDerivedTypeStmt)
	}
	return &UnitStmt{Stmt: r.base(KindDerivedTypeStmt), name: c.next().Literal}, nil
}

func interfaceStmt(r rawStmt, prefix []string) (Statement, error) {
	return &UnitStmt{Stmt: r.base(KindInterfaceStmt), name: render(r.toks[1:]), prefix: prefix}, nil
}

func useStmt(r rawStmt) (Statement, error) {
	c := newCursor(r.toks[1:])
	s := &UseStmt{Stmt: r.base(KindUseStmt)}
	if c.accept(token.COMMA) {
		s.nature = strings.ToLower(c.next().Literal)
		if !c.accept(token.DCOLON) {
			return nil, r.errorf(ErrMalformed, KindUseStmt)
		}
	} else {
		c.accept(token.DCOLON)
	}
	if c.peek().Type != token.NAME {
		return nil, r.errorf(ErrMalformed, KindUseStmt)
	}
	s.module = c.next().Literal
	if !c.accept(token.COMMA) {
		if !c.done() {
			return nil, r.errorf(ErrMalformed, KindUseStmt)
		}
		return s, nil
	}
	if c.peek().Is("only") && c.peekAt(1).Type == token.COLON {
		c.next()
		c.next()
		s.only = newSequence(KindOnlyList)
		for _, part := range splitTop(c.rest()) {
			kind := KindName
			if hasTop(part, token.ARROW) {
				kind = KindRename
			}
			s.only.items = append(s.only.items, newItem(kind, render(part)))
		}
	}
	return s, nil
}

// declStmt parses a type or procedure declaration.
func declStmt(r rawStmt, kind string) (Statement, error) {
	c := newCursor(r.toks)
	spec := strings.ToLower(c.next().Literal)
	if spec == "double" && c.peek().Type == token.NAME {
		spec += strings.ToLower(c.next().Literal)
	}
	if inner, ok := c.group(); ok {
		spec += "(" + canonical(inner) + ")"
	}
	if c.accept(token.STAR) {
		if inner, ok := c.group(); ok {
			spec += "*(" + canonical(inner) + ")"
		} else {
			spec += "*" + c.next().Literal
		}
	}

	attrKind, listKind, entityKind := KindAttrSpecList, KindEntityDeclList, KindEntityDecl
	if kind == KindProcedureDeclStmt {
		attrKind, listKind, entityKind = KindProcAttrSpecList, KindProcDeclList, KindProcDecl
	}
	s := &DeclStmt{Stmt: r.base(kind), typeSpec: spec}
	if c.accept(token.COMMA) {
		attrs, ok := c.until(token.DCOLON)
		if !ok {
			return nil, r.errorf(ErrMalformed, kind)
		}
		s.attrs = newSequence(attrKind)
		for _, a := range splitTop(attrs) {
			s.attrs.items = append(s.attrs.items, newItem(KindAttrSpec, canonical(a)))
		}
	}
	c.accept(token.DCOLON)

	rest := c.rest()
	if len(rest) == 0 {
		return nil, r.errorf(ErrMalformed, kind)
	}
	s.entities = newSequence(listKind)
	for _, part := range splitTop(rest) {
		e, err := entity(r, entityKind, part)
		if err != nil {
			return nil, err
		}
		s.entities.items = append(s.entities.items, e)
	}
	return s, nil
}

func entity(r rawStmt, kind string, toks []token.Token) (*Entity, error) {
	if len(toks) == 0 || toks[0].Type != token.NAME {
		return nil, r.errorf(ErrMalformed, kind)
	}
	c := newCursor(toks[1:])
	e := &Entity{Sequence: Sequence{node: node{kind: kind}}, name: toks[0].Literal}
	e.items = []tree.Node{newItem(KindName, e.name), nil, nil, nil}
	if inner, ok := c.group(); ok {
		e.items[1] = newItem(KindArraySpec, render(inner))
	}
	if c.accept(token.STAR) {
		if inner, ok := c.group(); ok {
			e.items[2] = newItem(KindCharLength, "("+render(inner)+")")
		} else {
			e.items[2] = newItem(KindCharLength, c.next().Literal)
		}
	}
	if op := c.peek(); op.Type == token.ASSIGN || op.Type == token.ARROW {
		e.init = render(c.rest())
		e.items[3] = newItem(KindInitialization, e.init)
	}
	if !c.done() {
		return nil, r.errorf(ErrMalformed, kind)
	}
	return e, nil
}

// namesStmt parses "keyword[(spec)] [::] name, name...", skipping the first
// skip keyword tokens.
func namesStmt(r rawStmt, kind string, skip int) (Statement, error) {
	c := newCursor(r.toks[skip:])
	spec := canonical(r.toks[:skip])
	if inner, ok := c.group(); ok {
		spec += "(" + canonical(inner) + ")"
	}
	s := &NamesStmt{Stmt: r.base(kind), spec: spec}
	c.accept(token.DCOLON)
	for _, part := range splitTop(c.rest()) {
		for _, tok := range part {
			if tok.Type == token.NAME {
				s.names = append(s.names, tok.Literal)
				break
			}
		}
	}
	return s, nil
}

func doStmt(r rawStmt) (Statement, error) {
	if len(r.toks) > 1 && r.toks[1].Type == token.INT {
		return &DoStmt{Stmt: r.base(KindLabelDoStmt), endLabel: r.toks[1].Literal}, nil
	}
	return &DoStmt{Stmt: r.base(KindNonlabelDoStmt)}, nil
}

func ifStmt(r rawStmt) (Statement, error) {
	c := newCursor(r.toks[1:])
	if _, ok := c.group(); !ok {
		return nil, r.errorf(ErrMalformed, KindIfStmt)
	}
	rest := c.rest()
	if len(rest) == 1 && rest[0].Is("then") {
		s := r.base(KindIfThenStmt)
		return &s, nil
	}
	if len(rest) == 0 {
		return nil, r.errorf(ErrMalformed, KindIfStmt)
	}
	action, err := classify(rawStmt{toks: rest, line: r.line, text: render(rest)})
	if err != nil {
		return nil, err
	}
	if !isAction(action.Kind()) || action.Kind() == KindIfStmt {
		return nil, r.errorf(ErrMalformed, KindIfStmt)
	}
	return &IfStmt{Stmt: r.base(KindIfStmt), action: action}, nil
}

func elseStmt(r rawStmt, word string) (Statement, error) {
	c := newCursor(r.toks[1:])
	switch {
	case word == "elseif" || (word == "else" && c.acceptWord("if")):
		s := r.base(KindElseIfStmt)
		return &s, nil
	case word == "elsewhere" || (word == "else" && c.acceptWord("where")):
		kind := KindElsewhereStmt
		if c.peek().Type == token.LPAREN {
			kind = KindMaskedElsewhereStmt
		}
		s := r.base(kind)
		return &s, nil
	}
	s := r.base(KindElseStmt)
	return &s, nil
}

func selectStmt(r rawStmt, word string) (Statement, error) {
	c := newCursor(r.toks[1:])
	switch {
	case word == "selectcase" || (word == "select" && c.acceptWord("case")):
		s := r.base(KindSelectCaseStmt)
		return &s, nil
	case word == "selecttype" || (word == "select" && c.acceptWord("type")):
		s := r.base(KindSelectTypeStmt)
		return &s, nil
	}
	return nil, r.unrecognised()
}

// maskedStmt handles WHERE and FORALL, which are constructs when nothing
// follows the mask and single statements otherwise.
func maskedStmt(r rawStmt, construct, single string) (Statement, error) {
	c := newCursor(r.toks[1:])
	if _, ok := c.group(); !ok {
		return nil, r.errorf(ErrMalformed, single)
	}
	kind := single
	if c.done() {
		kind = construct
	}
	s := r.base(kind)
	return &s, nil
}

func branchStmt(r rawStmt, kind string) (Statement, error) {
	s := &BranchStmt{Stmt: r.base(kind)}
	if len(r.toks) > 1 {
		s.target = r.toks[1].Literal
	}
	return s, nil
}

func endStmt(r rawStmt, word string) (Statement, error) {
	c := newCursor(r.toks[1:])
	closes := strings.TrimPrefix(word, "end")
	if closes == "" && c.peek().Type == token.NAME {
		if w := strings.ToLower(c.peek().Literal); endKinds[w] != "" {
			closes = w
			c.next()
		}
	}
	kind := endKinds[closes]
	if closes == "" {
		kind = KindEndProgramStmt
	}
	s := &EndStmt{Stmt: r.base(kind), word: closes}
	if rest := c.rest(); len(rest) > 0 {
		s.name = render(rest)
	}
	return s, nil
}

var actionSet = func() map[string]bool {
	m := make(map[string]bool, len(actionStmts))
	for _, k := range actionStmts {
		m[k] = true
	}
	return m
}()

func isAction(kind string) bool { return actionSet[kind] }

// retarget changes the kind of a statement once its context is known.
func retarget(s Statement, kind string) {
	if b, ok := s.(interface{ stmt() *Stmt }); ok {
		b.stmt().kind = kind
	}
}
