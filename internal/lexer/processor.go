package lexer

import (
	"github.com/typewright/funxytc/internal/pipeline"
	"github.com/typewright/funxytc/internal/token"
)

// Processor runs the lexer over ctx.Source and buffers every token onto
// ctx.Tokens, handing the parser a fully-buffered token stream rather
// than pulling lazily.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)
	for {
		tok := l.NextToken()
		ctx.Tokens = append(ctx.Tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return ctx
}
