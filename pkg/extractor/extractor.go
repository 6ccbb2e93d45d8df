package extractor

import (
	"log/slog"
	"strings"

	"github.com/sysml-tools/sysmlcore/pkg/astview"
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// ExtractionResult is C4's output: the flat symbol list for one file plus
// any scope-level filter expressions recorded for C6/C7 to consume later
// (§4.4, §4.5).
type ExtractionResult struct {
	File         symbol.FileHandle
	Symbols      []*symbol.Symbol
	ScopeFilters map[string][]string // scope qualified_name -> filter target qnames
}

// Extractor walks a parsed CST once per file. It holds no per-file state
// of its own — Context carries that — so one Extractor is reused across a
// workspace.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor builds an Extractor that logs through logger (or
// slog.Default() if nil).
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// ExtractFile walks tree once and returns every symbol declared in it.
// Extraction never fails: a malformed tree (one already carrying syntax
// diagnostics) still yields whatever symbols its well-formed portions
// describe (§4.4 determinism contract, §7's "Extraction invariant" row).
func (e *Extractor) ExtractFile(file symbol.FileHandle, tree *cst.Tree, src string) *ExtractionResult {
	ctx := NewContext(file, src)
	res := &ExtractionResult{File: file, ScopeFilters: map[string][]string{}}

	root := tree.RedRoot()
	e.walkMembers(ctx, res, astview.Members(root))

	e.logger.Debug("extracted file",
		"file", string(file), "symbols", len(res.Symbols), "diagnostics", len(tree.Diagnostics))
	return res
}

func (e *Extractor) walkMembers(ctx *Context, res *ExtractionResult, members []*cst.RedNode) {
	for _, m := range members {
		switch m.Kind() {
		case cst.NK_PACKAGE:
			e.extractPackage(ctx, res, m)
		case cst.NK_IMPORT:
			e.extractImport(ctx, res, m)
		case cst.NK_ALIAS:
			e.extractAlias(ctx, res, m)
		case cst.NK_COMMENT:
			e.extractComment(ctx, res, m)
		case cst.NK_METADATA_ANNOTATION:
			e.extractMetadataAnnotation(ctx, res, m)
		case cst.NK_DEFINITION, cst.NK_USAGE:
			e.extractDecl(ctx, res, m)
		}
	}
}

func (e *Extractor) extractPackage(ctx *Context, res *ExtractionResult, n *cst.RedNode) {
	name := ""
	if qn, ok := astview.AsQualifiedName(n.FirstChildOfKind(cst.NK_QUALIFIED_NAME)); ok {
		name = qn.Text()
	}
	if name == "" {
		name = ctx.NextAnonScope("", "package", ctx.Span(n).Start.Line)
	}
	qname := ctx.QualifiedName(name)
	res.Symbols = append(res.Symbols, &symbol.Symbol{
		Name: name, QualifiedName: qname, Kind: symbol.Package,
		File: ctx.File, Span: ctx.Span(n), Documentation: leadingDocComment(n),
	})

	if body := n.FirstChildOfKind(cst.NK_BODY); body != nil {
		ctx.PushScope(name)
		e.walkMembers(ctx, res, astview.Members(body))
		ctx.PopScope()
	}
}

func (e *Extractor) extractImport(ctx *Context, res *ExtractionResult, n *cst.RedNode) {
	imp, _ := astview.AsImport(n)
	var pathSegs []symbol.TypeRef
	var pathTexts []string
	for _, t := range imp.PathSegments() {
		pathSegs = append(pathSegs, symbol.TypeRef{Name: t.Text(), Span: ctx.TokenSpan(t), Kind: symbol.RefExpressionRef})
		pathTexts = append(pathTexts, t.Text())
	}
	var filters []symbol.TypeRef
	var filterTexts []string
	for _, f := range imp.Filters() {
		if qn, ok := astview.FilterTarget(f); ok {
			filters = append(filters, symbol.TypeRef{Name: qn.Text(), Span: ctx.Span(f), Kind: symbol.RefExpressionRef})
			filterTexts = append(filterTexts, qn.Text())
		}
	}

	pathJoined := strings.Join(pathTexts, "::")
	if imp.IsRecursive() {
		pathJoined += "::**"
	} else if imp.IsWildcard() {
		pathJoined += "::*"
	}
	qname := ctx.QualifiedName("import:" + pathJoined)

	res.Symbols = append(res.Symbols, &symbol.Symbol{
		QualifiedName: qname, Kind: symbol.Import, File: ctx.File, Span: ctx.Span(n),
		Import: &symbol.ImportDescriptor{
			PathSegments: pathSegs,
			IsPublic:     imp.IsPublic(),
			IsWildcard:   imp.IsWildcard(),
			IsRecursive:  imp.IsRecursive(),
			Filters:      filters,
		},
	})

	if len(filterTexts) > 0 {
		res.ScopeFilters[ctx.Prefix] = append(res.ScopeFilters[ctx.Prefix], filterTexts...)
	}
}

func (e *Extractor) extractAlias(ctx *Context, res *ExtractionResult, n *cst.RedNode) {
	name := ""
	if t := n.FirstTokenOfKind(token.IDENT); t != nil {
		name = t.Text()
	} else if t := n.FirstTokenOfKind(token.QUOTED_NAME); t != nil {
		name = t.Text()
	}
	var rels []symbol.Relationship
	var supertypes []symbol.TypeRef
	if qn, ok := astview.AsQualifiedName(n.FirstChildOfKind(cst.NK_QUALIFIED_NAME)); ok {
		rels = append(rels, symbol.Relationship{Kind: symbol.References, TargetName: qn.Text(), TargetSpan: ctx.Span(n)})
		supertypes = append(supertypes, symbol.TypeRef{Name: qn.Text(), Span: ctx.Span(n), Kind: symbol.RefTypedBy})
	}
	if name == "" {
		name = ctx.NextAnonScope("", "alias", ctx.Span(n).Start.Line)
	}
	res.Symbols = append(res.Symbols, &symbol.Symbol{
		Name: name, QualifiedName: ctx.QualifiedName(name), Kind: symbol.Alias,
		File: ctx.File, Span: ctx.Span(n), Relationships: rels, Supertypes: supertypes,
	})
}

func (e *Extractor) extractComment(ctx *Context, res *ExtractionResult, n *cst.RedNode) {
	name := ""
	if t := n.FirstTokenOfKind(token.IDENT); t != nil {
		name = t.Text()
	} else if t := n.FirstTokenOfKind(token.QUOTED_NAME); t != nil {
		name = t.Text()
	}
	var rels []symbol.Relationship
	if qn, ok := astview.AsQualifiedName(n.FirstChildOfKind(cst.NK_QUALIFIED_NAME)); ok {
		rels = append(rels, symbol.Relationship{Kind: symbol.Meta, TargetName: qn.Text(), TargetSpan: ctx.Span(n)})
	}
	if name == "" {
		name = ctx.NextAnonScope("", "comment", ctx.Span(n).Start.Line)
	}
	res.Symbols = append(res.Symbols, &symbol.Symbol{
		Name: name, QualifiedName: ctx.QualifiedName(name), Kind: symbol.Comment,
		File: ctx.File, Span: ctx.Span(n), Relationships: rels,
		Documentation: commentBodyText(n),
	})
}

func (e *Extractor) extractMetadataAnnotation(ctx *Context, res *ExtractionResult, n *cst.RedNode) {
	target := ""
	if qn, ok := astview.AsQualifiedName(n.FirstChildOfKind(cst.NK_QUALIFIED_NAME)); ok {
		target = qn.Text()
	}
	name := ctx.NextAnonScope("", target, ctx.Span(n).Start.Line)
	qname := ctx.QualifiedName(name)

	var typeRefs []symbol.TypeRefChain
	if body := n.FirstChildOfKind(cst.NK_BODY); body != nil {
		typeRefs = ctx.CollectTypeRefChains(body)
	}

	res.Symbols = append(res.Symbols, &symbol.Symbol{
		Name: name, QualifiedName: qname, Kind: symbol.MetadataUsage,
		File: ctx.File, Span: ctx.Span(n), TypeRefs: typeRefs,
		Relationships: []symbol.Relationship{{Kind: symbol.Meta, TargetName: target, TargetSpan: ctx.Span(n)}},
	})

	if body := n.FirstChildOfKind(cst.NK_BODY); body != nil {
		ctx.PushScope(name)
		e.walkMembers(ctx, res, astview.Members(body))
		ctx.PopScope()
	}
}

func (e *Extractor) extractDecl(ctx *Context, res *ExtractionResult, n *cst.RedNode) {
	d, _ := astview.AsDecl(n)
	primary, _ := d.PrimaryKeyword()
	keywordText := primary.String()

	nameTok, hasName := d.Name()
	name := ""
	if hasName {
		name = nameTok.Text()
	} else {
		name = ctx.NextAnonScope("", keywordText, ctx.Span(n).Start.Line)
	}
	qname := ctx.QualifiedName(name)

	shortName, shortSpan := "", cst.Span{}
	if t, ok := d.ShortName(); ok {
		shortName = t.Text()
		shortSpan = ctx.TokenSpan(t)
	}

	mods := collectModifiers(d)

	var supertypes []symbol.TypeRef
	var rels []symbol.Relationship
	currentKind := symbol.Specializes
	for _, c := range astview.Clauses(d.Specializations()) {
		sc, _ := astview.AsSpecialization(c)
		if op := sc.OperatorText(); op != "" {
			currentKind = symbol.RelationshipKindForOperator(op)
		}
		target, ok := sc.Target()
		if !ok {
			continue
		}
		tname := target.Text()
		tspan := ctx.Span(c)
		supertypes = append(supertypes, symbol.TypeRef{Name: tname, Span: tspan, Kind: refKindForRelationship(currentKind)})
		rels = append(rels, symbol.Relationship{Kind: currentKind, TargetName: tname, TargetSpan: tspan})
	}

	if mp, ok := d.MetadataPrefix(); ok {
		if qn, ok := astview.AsQualifiedName(mp.FirstChildOfKind(cst.NK_QUALIFIED_NAME)); ok {
			rels = append(rels, symbol.Relationship{Kind: symbol.Meta, TargetName: qn.Text(), TargetSpan: ctx.Span(mp)})
		}
	}
	multiplicityText := ""
	if m, ok := d.Multiplicity(); ok {
		multiplicityText = m.Text()
	}

	valueText := ""
	var typeRefs []symbol.TypeRefChain
	if vc, ok := d.ValueClause(); ok {
		valueText = strings.TrimSpace(strings.TrimPrefix(vc.Text(), "="))
		typeRefs = append(typeRefs, ctx.CollectTypeRefChains(vc)...)
	}

	// satisfy's requirement reference and perform/exhibit/include's
	// performed/exhibited/included chain carry their own relationship
	// kinds instead of going through the `:>`-family specialization list
	// (§3.4).
	switch keywordText {
	case "satisfy":
		if qn, ok := astview.AsQualifiedName(n.FirstChildOfKind(cst.NK_QUALIFIED_NAME)); ok {
			tname, tspan := qn.Text(), ctx.Span(n.FirstChildOfKind(cst.NK_QUALIFIED_NAME))
			rels = append(rels, symbol.Relationship{Kind: symbol.Satisfies, TargetName: tname, TargetSpan: tspan})
			supertypes = append(supertypes, symbol.TypeRef{Name: tname, Span: tspan, Kind: symbol.RefSpecializes})
		}
	case "perform", "exhibit", "include":
		if target := firstChildOfKinds(n, cst.NK_EXPR_CHAIN, cst.NK_EXPR_NAME); target != nil {
			chainKind := map[string]symbol.RelationshipKind{
				"perform": symbol.Performs, "exhibit": symbol.Exhibits, "include": symbol.Includes,
			}[keywordText]
			names, spans := ctx.flattenChain(target)
			if len(names) > 0 {
				tname := strings.Join(names, ".")
				tspan := ctx.Span(target)
				rels = append(rels, symbol.Relationship{Kind: chainKind, TargetName: tname, TargetSpan: tspan})
				typeRefs = append(typeRefs, symbol.NewFeatureChain(names, spans))
			}
		}
	case "bind", "connect":
		typeRefs = append(typeRefs, ctx.CollectTypeRefChains(n)...)
	}

	// via/from/to/by/first/then connector-end clauses (§4.4 point 6):
	// accept/send's payload port, flow's endpoints, satisfy's by-target,
	// and succession/transition's first/then endpoints. A transition's
	// accept clause is a nested NK_USAGE whose via clause is read here too.
	ends := n.ChildNodes()
	if keywordText == "transition" {
		if acc := n.FirstChildOfKind(cst.NK_USAGE); acc != nil {
			ends = append(ends, acc.ChildNodes()...)
		}
	}
	for _, c := range ends {
		if c.Kind() != cst.NK_CONNECTOR_ENDS {
			continue
		}
		kw, ok := connectorClauseKeyword(c)
		if !ok {
			continue
		}
		relKind := connectorRelationshipKind(kw, keywordText)
		target := firstChildOfKinds(c, cst.NK_EXPR_CHAIN, cst.NK_EXPR_NAME)
		if target == nil {
			continue
		}
		names, spans := ctx.flattenChain(target)
		if len(names) == 0 {
			continue
		}
		tname := strings.Join(names, ".")
		tspan := ctx.Span(c)
		rels = append(rels, symbol.Relationship{Kind: relKind, TargetName: tname, TargetSpan: tspan})
		typeRefs = append(typeRefs, symbol.NewFeatureChain(names, spans))
	}

	sym := &symbol.Symbol{
		Name: name, ShortName: shortName, ShortNameSpan: shortSpan,
		QualifiedName: qname, Kind: symbol.KindForKeyword(keywordText, d.IsDefinition()),
		File: ctx.File, Span: ctx.Span(n),
		Supertypes: supertypes, Relationships: rels, TypeRefs: typeRefs,
		Modifiers: mods, Multiplicity: multiplicityText, Value: valueText,
		Documentation: leadingDocComment(n),
	}
	res.Symbols = append(res.Symbols, sym)

	if body, ok := d.Body(); ok {
		ctx.PushScope(name)
		e.walkMembers(ctx, res, astview.Members(body))
		ctx.PopScope()
	}
}

func collectModifiers(d astview.Decl) symbol.Modifiers {
	var m symbol.Modifiers
	for _, k := range d.Modifiers() {
		switch k {
		case token.KW_PUBLIC:
			m.IsPublic = true
		case token.KW_ABSTRACT:
			m.IsAbstract = true
		case token.KW_VARIATION:
			m.IsVariation = true
		case token.KW_READONLY:
			m.IsReadonly = true
		case token.KW_DERIVED:
			m.IsDerived = true
		case token.KW_PARALLEL:
			m.IsParallel = true
		case token.KW_INDIVIDUAL:
			m.IsIndividual = true
		case token.KW_END:
			m.IsEnd = true
		case token.KW_DEFAULT:
			m.IsDefault = true
		case token.KW_ORDERED:
			m.IsOrdered = true
		case token.KW_NONUNIQUE:
			m.IsNonunique = true
		case token.KW_PORTION:
			m.IsPortion = true
		case token.KW_IN:
			m.Direction = symbol.DirIn
		case token.KW_OUT:
			m.Direction = symbol.DirOut
		case token.KW_INOUT:
			m.Direction = symbol.DirInout
		}
	}
	return m
}

// leadingDocComment returns the leading comment trivia attached to n's
// first token, joined, matching §4.9's documentation contract. Trailing
// trivia belongs to whatever follows, so only a contiguous comment run at
// the very start of n counts.
func leadingDocComment(n *cst.RedNode) string {
	var parts []string
leading:
	for _, t := range n.Tokens() {
		switch t.Kind() {
		case token.BLOCK_COMMENT, token.LINE_COMMENT:
			parts = append(parts, t.Text())
			continue
		case token.WHITESPACE:
			continue
		}
		break leading
	}
	return strings.Join(parts, "\n")
}

// commentBodyText extracts the block/line comment text carried by a
// `comment`/`doc` member — it ends up as trivia directly preceding the
// node's closing `;` rather than leading the node (§4.9 note in
// pkg/parser/member.go).
func commentBodyText(n *cst.RedNode) string {
	var parts []string
	for _, t := range n.Tokens() {
		if t.Kind() == token.BLOCK_COMMENT || t.Kind() == token.LINE_COMMENT {
			parts = append(parts, t.Text())
		}
	}
	return strings.Join(parts, "\n")
}
