package parser

import "github.com/typewright/funxytc/internal/pipeline"

// Processor runs the parser over ctx.Tokens and sets ctx.AstRoot.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.Tokens, ctx.Diagnostics, ctx.FilePath)
	ctx.AstRoot = p.ParseProgram()
	return ctx
}
