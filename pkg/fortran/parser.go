package fortran

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/tree"
)

// Parser builds a tree from the flat statement list produced by the scanner.
type Parser struct {
	items []tree.Node
	pos   int
	err   error
}

// Parse parses free form Fortran source into a Program block. The first
// error encountered is returned along with a nil tree.
func Parse(text string) (*Block, error) {
	items, err := scan(text)
	if err != nil {
		return nil, err
	}
	p := &Parser{items: items}
	prog := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	link(prog)
	return prog, nil
}

func (p *Parser) errorf(line int, format string, args ...any) {
	if p.err == nil {
		p.err = &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
	}
}

func (p *Parser) unexpected(st Statement, where string) {
	p.errorf(st.Line(), ErrUnexpectedStatement, fmt.Sprintf("%q", st.String()), where)
}

// peek returns the next statement without consuming the comments before it.
// It returns nil at the end of input or once an error has been recorded.
func (p *Parser) peek() Statement {
	if p.err != nil {
		return nil
	}
	for i := p.pos; i < len(p.items); i++ {
		if st, ok := p.items[i].(Statement); ok {
			return st
		}
	}
	return nil
}

// takeComments moves pending comments into b.
func (p *Parser) takeComments(b *Block) {
	for p.pos < len(p.items) {
		c, ok := p.items[p.pos].(*Comment)
		if !ok {
			return
		}
		b.add(c)
		p.pos++
	}
}

// takeTrailing moves comments written on the line of the statement just
// consumed into b.
func (p *Parser) takeTrailing(b *Block) {
	for p.pos < len(p.items) {
		c, ok := p.items[p.pos].(*Comment)
		if !ok || !c.trailing {
			return
		}
		b.add(c)
		p.pos++
	}
}

// next consumes the statement at the cursor. Pending comments must already
// have been taken.
func (p *Parser) next() Statement {
	st := p.items[p.pos].(Statement)
	p.pos++
	return st
}

func (p *Parser) parseProgram() *Block {
	prog := newBlock(KindProgram)
	for {
		p.takeComments(prog)
		st := p.peek()
		if st == nil {
			return prog
		}
		switch st.Kind() {
		case KindProgramStmt:
			prog.add(p.parseUnit(KindMainProgram, "program"))
		case KindModuleStmt:
			prog.add(p.parseUnit(KindModule, "module"))
		case KindFunctionStmt:
			prog.add(p.parseUnit(KindFunctionSubprogram, "function"))
		case KindSubroutineStmt:
			prog.add(p.parseUnit(KindSubroutineSubprogram, "subroutine"))
		default:
			if !isSpecification(st) && !isExecutable(st) && !isUnitEnd(st) {
				p.unexpected(st, KindProgram)
				return prog
			}
			b := newBlock(KindMainProgram)
			p.parseUnitBody(b, nil, "program")
			prog.add(b)
		}
	}
}

func (p *Parser) parseUnit(kind, word string) *Block {
	open := p.next().(*UnitStmt)
	b := newBlock(kind, open)
	p.parseUnitBody(b, open, word)
	return b
}

func (p *Parser) parseUnitBody(b *Block, open *UnitStmt, word string) {
	p.parseSpecificationPart(b)
	if word != "module" {
		p.parseExecutionPart(b)
	}
	if st := p.peek(); st != nil && st.Kind() == KindContainsStmt {
		kind := KindInternalSubprogramPart
		if word == "module" {
			kind = KindModuleSubprogramPart
		}
		p.takeComments(b)
		part := newBlock(kind, p.next())
		p.parseSubprograms(part)
		b.add(part)
	}
	p.takeComments(b)
	p.closeUnit(b, open, word)
}

func (p *Parser) parseSubprograms(part *Block) {
	for {
		st := p.peek()
		if st == nil {
			return
		}
		switch st.Kind() {
		case KindFunctionStmt:
			p.takeComments(part)
			part.add(p.parseUnit(KindFunctionSubprogram, "function"))
		case KindSubroutineStmt:
			p.takeComments(part)
			part.add(p.parseUnit(KindSubroutineSubprogram, "subroutine"))
		default:
			return
		}
	}
}

// closeUnit consumes the END statement of a unit, giving a bare END the
// kind matching the unit.
func (p *Parser) closeUnit(b *Block, open *UnitStmt, word string) {
	st := p.peek()
	if st == nil {
		line := 0
		if open != nil {
			line = open.Line()
		}
		p.errorf(line, ErrMissingEnd, word)
		return
	}
	end, ok := st.(*EndStmt)
	if !ok {
		p.unexpected(st, b.Kind())
		return
	}
	if end.Closes() != "" && end.Closes() != word {
		p.errorf(end.Line(), ErrMismatchedEnd, end.String(), word)
		return
	}
	if open != nil && end.Name() != "" && !strings.EqualFold(end.Name(), open.Name()) {
		p.errorf(end.Line(), ErrMismatchedEnd, end.String(), open.String())
		return
	}
	retarget(end, endKinds[word])
	b.add(p.next())
}

func (p *Parser) parseSpecificationPart(parent *Block) {
	spec := newBlock(KindSpecificationPart)
	for {
		st := p.peek()
		if st == nil || !isSpecification(st) {
			break
		}
		p.takeComments(spec)
		switch st.Kind() {
		case KindDerivedTypeStmt:
			spec.add(p.parseDerivedType())
		case KindInterfaceStmt:
			spec.add(p.parseInterface())
		default:
			spec.add(p.next())
			p.takeTrailing(spec)
		}
	}
	if len(spec.content) > 0 {
		groupImplicitPart(spec)
		parent.add(spec)
	}
}

// groupImplicitPart wraps the run of implicit part statements following the
// USE and IMPORT statements, up to the last IMPLICIT statement.
func groupImplicitPart(spec *Block) {
	start := 0
	for i, n := range spec.content {
		if k := n.Kind(); k == KindUseStmt || k == KindImportStmt {
			start = i + 1
		}
	}
	last := -1
	for i := start; i < len(spec.content); i++ {
		k := spec.content[i].Kind()
		if k == KindImplicitStmt {
			last = i
			continue
		}
		if k != KindComment && k != KindParameterStmt && k != KindFormatStmt && k != KindEntryStmt {
			break
		}
	}
	if last < 0 {
		return
	}
	part := newBlock(KindImplicitPart, spec.content[start:last+1]...)
	content := make([]tree.Node, 0, len(spec.content)-(last-start))
	content = append(content, spec.content[:start]...)
	content = append(content, part)
	content = append(content, spec.content[last+1:]...)
	spec.content = content
}

func (p *Parser) parseExecutionPart(parent *Block) {
	exec := newBlock(KindExecutionPart)
	p.parseExecutables(exec, func(st Statement) bool {
		return isUnitEnd(st) || st.Kind() == KindContainsStmt
	})
	if len(exec.content) > 0 {
		parent.add(exec)
	}
}

// parseExecutables adds executable constructs to into until stop matches.
// Comments before the stopping statement are left for the caller.
func (p *Parser) parseExecutables(into *Block, stop func(Statement) bool) {
	for {
		st := p.peek()
		if st == nil || stop(st) {
			return
		}
		if !isExecutable(st) {
			p.unexpected(st, into.Kind())
			return
		}
		p.takeComments(into)
		into.add(p.parseExecutable())
		p.takeTrailing(into)
	}
}

type construct struct {
	kind    string
	end     string
	endKind string
	middle  []string
	spec    bool
}

var constructs = map[string]construct{
	KindNonlabelDoStmt:      {kind: KindBlockNonlabelDoConstruct, end: KindEndDoStmt},
	KindIfThenStmt:          {kind: KindIfConstruct, end: KindEndIfStmt, middle: []string{KindElseIfStmt, KindElseStmt}},
	KindSelectCaseStmt:      {kind: KindCaseConstruct, end: KindEndSelectStmt, middle: []string{KindCaseStmt}},
	KindSelectTypeStmt:      {kind: KindSelectTypeConstruct, end: KindEndSelectStmt, endKind: KindEndSelectTypeStmt, middle: []string{KindTypeGuardStmt}},
	KindWhereConstructStmt:  {kind: KindWhereConstruct, end: KindEndWhereStmt, middle: []string{KindMaskedElsewhereStmt, KindElsewhereStmt}},
	KindForallConstructStmt: {kind: KindForallConstruct, end: KindEndForallStmt},
	KindBlockStmt:           {kind: KindBlockConstruct, end: KindEndBlockStmt, spec: true},
	KindAssociateStmt:       {kind: KindAssociateConstruct, end: KindEndAssociateStmt},
}

func (c construct) isMiddle(kind string) bool {
	for _, m := range c.middle {
		if m == kind {
			return true
		}
	}
	return false
}

func (p *Parser) parseExecutable() tree.Node {
	st := p.next()
	if st.Kind() == KindLabelDoStmt {
		return p.parseLabelDo(st.(*DoStmt))
	}
	if def, ok := constructs[st.Kind()]; ok {
		return p.parseConstruct(st, def)
	}
	return st
}

func (p *Parser) parseConstruct(open Statement, def construct) *Block {
	b := newBlock(def.kind, open)
	if def.spec {
		p.parseSpecificationPart(b)
	}
	for {
		p.parseExecutables(b, func(st Statement) bool {
			return st.Kind() == def.end || def.isMiddle(st.Kind()) || isUnitEnd(st) || st.Kind() == KindContainsStmt
		})
		st := p.peek()
		if st == nil || isUnitEnd(st) || st.Kind() == KindContainsStmt {
			p.errorf(open.Line(), ErrMissingEnd, def.kind)
			return b
		}
		p.takeComments(b)
		switch {
		case st.Kind() == def.end:
			if def.endKind != "" {
				retarget(st, def.endKind)
			}
			b.add(p.next())
			return b
		case def.isMiddle(st.Kind()):
			b.add(p.next())
		default:
			p.errorf(st.Line(), ErrMismatchedEnd, st.String(), def.kind)
			return b
		}
	}
}

// parseLabelDo collects statements up to and including the one carrying the
// DO's terminating label.
func (p *Parser) parseLabelDo(open *DoStmt) *Block {
	b := newBlock(KindBlockLabelDoConstruct, open)
	for {
		st := p.peek()
		if st == nil || isUnitEnd(st) || st.Kind() == KindContainsStmt {
			p.errorf(open.Line(), ErrMissingEnd, KindBlockLabelDoConstruct)
			return b
		}
		p.takeComments(b)
		if st.Label() == open.EndLabel() {
			if st.Kind() == KindEndDoStmt {
				b.add(p.next())
			} else {
				b.add(p.parseExecutable())
			}
			return b
		}
		if !isExecutable(st) {
			p.unexpected(st, KindBlockLabelDoConstruct)
			return b
		}
		b.add(p.parseExecutable())
	}
}

func (p *Parser) parseDerivedType() *Block {
	open := p.next()
	b := newBlock(KindDerivedTypeDef, open)
	var comps *Block
	for {
		st := p.peek()
		if st == nil {
			p.errorf(open.Line(), ErrMissingEnd, KindDerivedTypeDef)
			return b
		}
		switch st.Kind() {
		case KindAccessStmt, KindSequenceStmt:
			p.takeComments(b)
			if st.Kind() == KindAccessStmt {
				retarget(st, KindPrivateComponentsStmt)
			}
			b.add(p.next())
		case KindTypeDeclarationStmt, KindProcedureDeclStmt:
			if comps == nil {
				comps = newBlock(KindComponentPart)
				b.add(comps)
			}
			p.takeComments(comps)
			asComponent(p.next().(*DeclStmt))
			comps.add(st)
		case KindContainsStmt:
			p.takeComments(b)
			b.add(p.parseTypeBound())
		case KindEndTypeStmt:
			p.takeComments(b)
			b.add(p.next())
			return b
		default:
			p.unexpected(st, KindDerivedTypeDef)
			return b
		}
	}
}

// asComponent turns a declaration found inside a type definition into its
// component form.
func asComponent(d *DeclStmt) {
	switch d.kind {
	case KindTypeDeclarationStmt:
		d.kind = KindDataComponentDefStmt
		if d.attrs != nil {
			d.attrs.kind = KindComponentAttrSpecList
		}
		d.entities.kind = KindComponentDeclList
		for _, e := range d.Entities() {
			e.kind = KindComponentDecl
		}
	case KindProcedureDeclStmt:
		d.kind = KindProcComponentDefStmt
		if d.attrs != nil {
			d.attrs.kind = KindProcComponentAttrList
		}
	}
}

func (p *Parser) parseTypeBound() *Block {
	tb := newBlock(KindTypeBoundProcedurePart, p.next())
	for {
		st := p.peek()
		if st == nil {
			return tb
		}
		switch st.Kind() {
		case KindAccessStmt:
			retarget(st, KindBindingPrivateStmt)
		case KindProcedureDeclStmt:
			retarget(st, KindSpecificBinding)
		case KindGenericBinding, KindFinalBinding:
		default:
			return tb
		}
		p.takeComments(tb)
		tb.add(p.next())
	}
}

func (p *Parser) parseInterface() *Block {
	open := p.next()
	b := newBlock(KindInterfaceBlock, open)
	for {
		st := p.peek()
		if st == nil {
			p.errorf(open.Line(), ErrMissingEnd, KindInterfaceBlock)
			return b
		}
		p.takeComments(b)
		switch st.Kind() {
		case KindFunctionStmt:
			b.add(p.parseInterfaceBody(KindFunctionBody, "function"))
		case KindSubroutineStmt:
			b.add(p.parseInterfaceBody(KindSubroutineBody, "subroutine"))
		case KindProcedureDeclStmt, KindProcedureStmt:
			retarget(st, KindProcedureStmt)
			b.add(p.next())
		case KindEndInterfaceStmt:
			b.add(p.next())
			return b
		default:
			p.unexpected(st, KindInterfaceBlock)
			return b
		}
	}
}

func (p *Parser) parseInterfaceBody(kind, word string) *Block {
	open := p.next().(*UnitStmt)
	b := newBlock(kind, open)
	p.parseSpecificationPart(b)
	p.takeComments(b)
	p.closeUnit(b, open, word)
	return b
}

var specificationSet = func() map[string]bool {
	m := map[string]bool{
		KindUseStmt: true, KindImportStmt: true, KindImplicitStmt: true,
		KindParameterStmt: true, KindFormatStmt: true, KindEntryStmt: true,
		KindTypeDeclarationStmt: true, KindProcedureDeclStmt: true,
		KindDerivedTypeStmt: true, KindInterfaceStmt: true,
	}
	for _, k := range specificationStmts {
		m[k] = true
	}
	return m
}()

func isSpecification(st Statement) bool { return specificationSet[st.Kind()] }

func isExecutable(st Statement) bool {
	switch k := st.Kind(); k {
	case KindLabelDoStmt, KindFormatStmt, KindEntryStmt, "Data_Stmt":
		return true
	default:
		_, opens := constructs[k]
		return opens || isAction(k)
	}
}

// isUnitEnd reports whether st can close a program unit or procedure.
func isUnitEnd(st Statement) bool {
	end, ok := st.(*EndStmt)
	if !ok {
		return false
	}
	switch end.Closes() {
	case "", "program", "module", "function", "subroutine":
		return true
	}
	return false
}
