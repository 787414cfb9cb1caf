// Package parser implements a hand-written recursive-descent parser for
// the bot DSL, in the style of a char-by-char scanner feeding a
// lookahead-one parser rather than a parser-generator grammar.
package parser

import (
	"fmt"

	"dsl-bot/internal/dsl/ast"
)

// Parser consumes tokens from a Lexer and builds the typed instruction
// tree directly; there is no separate untyped parse tree, since the
// grammar is simple enough that the parse step and the AST-building step
// (C1 and C2) collapse into one pass, same as the source this is grounded
// on does for its own S-expression grammar.
type Parser struct {
	lex  *Lexer
	tok  Token
	peek *Token
}

func NewParser(input string) (*Parser, error) {
	p := &Parser{lex: NewLexer(input)}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	if p.peek != nil {
		p.tok = *p.peek
		p.peek = nil
		return nil
	}
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *Parser) lookahead() (Token, error) {
	if p.peek == nil {
		t, err := p.lex.Next()
		if err != nil {
			return Token{}, err
		}
		p.peek = &t
	}
	return *p.peek, nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("parse error at line %d, column %d: %s", p.tok.Line, p.tok.Column, msg)
}

func (p *Parser) expect(kind TokenKind, what string) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, p.errorf("expected %s, found %q", what, p.tok.Text)
	}
	t := p.tok
	if err := p.next(); err != nil {
		return Token{}, err
	}
	return t, nil
}

func (p *Parser) expectKeyword(word string) error {
	if p.tok.Kind != TokIdent || p.tok.Text != word {
		return p.errorf("expected keyword %q, found %q", word, p.tok.Text)
	}
	return p.next()
}

func (p *Parser) isKeyword(word string) bool {
	return p.tok.Kind == TokIdent && p.tok.Text == word
}

func (p *Parser) skipSemis() error {
	for p.tok.Kind == TokSemi {
		if err := p.next(); err != nil {
			return err
		}
	}
	return nil
}

// Parse parses an entire script into a Program. Syntax errors abort the
// whole parse; there is no partial compilation.
func Parse(input string) (*ast.Program, error) {
	p, err := NewParser(input)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := ast.NewProgram()
	if err := p.skipSemis(); err != nil {
		return nil, err
	}
	for p.tok.Kind != TokEOF {
		bot, err := p.parseBot()
		if err != nil {
			return nil, err
		}
		prog.AddBot(bot)
		if err := p.skipSemis(); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func (p *Parser) parseBot() (*ast.Bot, error) {
	if err := p.expectKeyword("bot"); err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent, "bot name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace, "'{'"); err != nil {
		return nil, err
	}

	bot := &ast.Bot{Name: name.Text, States: map[string]*ast.State{}}
	if err := p.skipSemis(); err != nil {
		return nil, err
	}
	for p.tok.Kind != TokRBrace {
		if p.tok.Kind == TokEOF {
			return nil, p.errorf("unexpected end of input inside bot %q", name.Text)
		}
		state, err := p.parseState()
		if err != nil {
			return nil, err
		}
		if _, exists := bot.States[state.Name]; !exists {
			bot.StateOrder = append(bot.StateOrder, state.Name)
		}
		bot.States[state.Name] = state
		if err := p.skipSemis(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return bot, nil
}

func (p *Parser) parseState() (*ast.State, error) {
	if err := p.expectKeyword("state"); err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent, "state name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace, "'{'"); err != nil {
		return nil, err
	}

	state := &ast.State{Name: name.Text}
	if err := p.skipSemis(); err != nil {
		return nil, err
	}
	for p.tok.Kind != TokRBrace {
		if p.tok.Kind == TokEOF {
			return nil, p.errorf("unexpected end of input inside state %q", name.Text)
		}
		instr, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		state.Instructions = append(state.Instructions, instr)
		if err := p.skipSemis(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return state, nil
}

// parseInstruction parses one top-level or nested instruction. The same
// production is used for both contexts (no separate "action" rule), so
// a process case's action parses identically to a state's instruction.
func (p *Parser) parseInstruction() (ast.Instruction, error) {
	if p.tok.Kind != TokIdent {
		return nil, p.errorf("expected instruction, found %q", p.tok.Text)
	}
	switch p.tok.Text {
	case "say":
		return p.parseSay()
	case "listen":
		return p.parseListen()
	case "goto":
		return p.parseGoto()
	case "exit":
		return p.parseExit()
	case "set":
		return p.parseSet()
	case "call":
		return p.parseCall()
	case "if":
		return p.parseIf()
	case "sql":
		return p.parseSql()
	case "process":
		return p.parseProcess()
	default:
		return nil, p.errorf("unknown instruction %q", p.tok.Text)
	}
}

func (p *Parser) parseSay() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	str, err := p.expect(TokString, "string literal")
	if err != nil {
		return nil, err
	}
	return ast.Say{Content: str.Text}, nil
}

func (p *Parser) parseListen() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Kind == TokVar {
		v := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		return ast.Listen{Var: v}, nil
	}
	return ast.Listen{}, nil
}

func (p *Parser) parseGoto() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	target, err := p.expect(TokIdent, "state name")
	if err != nil {
		return nil, err
	}
	return ast.Goto{Target: target.Text}, nil
}

func (p *Parser) parseExit() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	return ast.Exit{}, nil
}

func (p *Parser) parseSet() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	v, err := p.expect(TokVar, "variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokEq, "'='"); err != nil {
		return nil, err
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return ast.Set{Var: v.Text, Value: val}, nil
}

func (p *Parser) parseCall() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	fn, err := p.expect(TokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Value
	for p.tok.Kind != TokRParen {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen, "')'"); err != nil {
		return nil, err
	}
	result := ""
	if p.tok.Kind == TokArrow {
		if err := p.next(); err != nil {
			return nil, err
		}
		v, err := p.expect(TokVar, "result variable")
		if err != nil {
			return nil, err
		}
		result = v.Text
	}
	return ast.Call{Func: fn.Text, Args: args, Result: result}, nil
}

func (p *Parser) parseIf() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	left, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	right, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("goto"); err != nil {
		return nil, err
	}
	target, err := p.expect(TokIdent, "state name")
	if err != nil {
		return nil, err
	}
	return ast.If{Left: left, Op: op, Right: right, Target: target.Text}, nil
}

func (p *Parser) parseOp() (string, error) {
	switch p.tok.Kind {
	case TokEqEq:
		if err := p.next(); err != nil {
			return "", err
		}
		return "==", nil
	case TokNotEq:
		if err := p.next(); err != nil {
			return "", err
		}
		return "!=", nil
	case TokLt:
		if err := p.next(); err != nil {
			return "", err
		}
		return "<", nil
	case TokGt:
		if err := p.next(); err != nil {
			return "", err
		}
		return ">", nil
	default:
		return "", p.errorf("expected comparison operator, found %q", p.tok.Text)
	}
}

func (p *Parser) parseSql() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	query, err := p.expect(TokString, "query string")
	if err != nil {
		return nil, err
	}
	result := ""
	if p.tok.Kind == TokArrow {
		if err := p.next(); err != nil {
			return nil, err
		}
		v, err := p.expect(TokVar, "result variable")
		if err != nil {
			return nil, err
		}
		result = v.Text
	}
	return ast.Sql{Query: query.Text, Result: result}, nil
}

func (p *Parser) parseProcess() (ast.Instruction, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace, "'{'"); err != nil {
		return nil, err
	}
	proc := ast.Process{}
	if err := p.skipSemis(); err != nil {
		return nil, err
	}
	for p.tok.Kind != TokRBrace {
		if p.tok.Kind == TokEOF {
			return nil, p.errorf("unexpected end of input inside process block")
		}
		if p.isKeyword("case") {
			if err := p.next(); err != nil {
				return nil, err
			}
			intent, err := p.expect(TokString, "intent string")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokArrow, "'->'"); err != nil {
				return nil, err
			}
			action, err := p.parseInstruction()
			if err != nil {
				return nil, err
			}
			proc.Cases = append(proc.Cases, ast.ProcessCase{Intent: intent.Text, Action: action})
		} else if p.isKeyword("default") {
			if err := p.next(); err != nil {
				return nil, err
			}
			if _, err := p.expect(TokArrow, "'->'"); err != nil {
				return nil, err
			}
			action, err := p.parseInstruction()
			if err != nil {
				return nil, err
			}
			proc.Default = action
		} else {
			return nil, p.errorf("expected 'case' or 'default', found %q", p.tok.Text)
		}
		if err := p.skipSemis(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return proc, nil
}

func (p *Parser) parseValue() (ast.Value, error) {
	switch p.tok.Kind {
	case TokString:
		v := ast.LiteralString(p.tok.Text)
		return v, p.next()
	case TokInt:
		v := ast.LiteralInt(p.tok.Int)
		return v, p.next()
	case TokVar:
		v := ast.VarRef(p.tok.Text)
		return v, p.next()
	default:
		return ast.Value{}, p.errorf("expected value, found %q", p.tok.Text)
	}
}
