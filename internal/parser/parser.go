package parser

import (
	"path/filepath"
	"strings"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/lexer"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
	// ModuleName overrides the dotted module name derived from the file path.
	ModuleName string
}

type Result struct {
	Module *ast.Module
	// Directives are the checker control comments seen while lexing.
	Directives []token.Trivia
	Errors     uint
}

// Parser holds per-file parse state.
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	file     *source.File
	opts     Options
	errs     uint
	tok      token.Token // current token
	lastSpan source.Span // span of the previously consumed token
	noIn     bool        // disables `in` as a comparison while reading for targets
}

// ParseFile parses one file into a Module. Lexer errors are reported
// through the same reporter; parsing continues past errors until MaxErrors.
func ParseFile(fs *source.FileSet, id source.FileID, opts Options) Result {
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{Reporter: lexer.DiagReporter{R: opts.Reporter}})

	p := Parser{
		lx:   lx,
		fs:   fs,
		file: file,
		opts: opts,
	}
	p.tok = lx.Next()

	name := opts.ModuleName
	if name == "" {
		name = moduleName(file.Path)
	}

	start := p.tok.Span
	body := p.parseModuleBody()

	return Result{
		Module: &ast.Module{
			Name: name,
			File: id,
			Body: body,
			Span: start.Cover(p.lastSpan),
		},
		Directives: lx.Directives(),
		Errors:     p.errs,
	}
}

// moduleName derives the dotted module name from a path:
// "pkg/sub/mod.py" -> "mod", "pkg/__init__.py" -> "pkg".
func moduleName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".py")
	base = strings.TrimSuffix(base, ".pyi")
	if base == "__init__" {
		return filepath.Base(filepath.Dir(path))
	}
	return base
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// advance consumes the current token and reads the next one.
func (p *Parser) advance() token.Token {
	tok := p.tok
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	p.tok = p.lx.Next()
	return tok
}

// eat consumes the current token when it matches.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or reports a parse failure.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errHere("expected " + what)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// diagSpan returns the best span for a diagnostic at the current position.
func (p *Parser) diagSpan() source.Span {
	if (p.tok.Kind == token.EOF || p.tok.Kind == token.Invalid) &&
		p.tok.Span.Start == p.tok.Span.End && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.tok.Span
}

func (p *Parser) errHere(msg string) {
	p.errAt(p.diagSpan(), msg)
}

func (p *Parser) errAt(sp source.Span, msg string) {
	p.errs++
	if p.opts.MaxErrors != 0 && p.errs > p.opts.MaxErrors {
		return
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(diag.ParseFailure{Message: msg}, diag.SevError, sp, nil)
	}
}

// resyncLine skips to after the next Newline, balancing nothing: the lexer
// already folds bracketed newlines away.
func (p *Parser) resyncLine() {
	for !p.at(token.EOF) {
		if p.advance().Kind == token.Newline {
			return
		}
	}
}

// resyncBlock skips to the Dedent closing the current block.
func (p *Parser) resyncBlock() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

func (p *Parser) parseModuleBody() []*ast.Stmt {
	var body []*ast.Stmt
	for !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		if p.at(token.Indent) {
			p.errHere("unexpected indent")
			p.advance()
			p.resyncBlock()
			p.eat(token.Dedent)
			continue
		}
		if p.at(token.Dedent) {
			p.advance()
			continue
		}
		p.parseStatement(&body)
	}
	return body
}
