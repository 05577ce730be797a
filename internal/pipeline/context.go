package pipeline

import (
	"github.com/typewright/funxytc/internal/ast"
	"github.com/typewright/funxytc/internal/diagnostics"
	"github.com/typewright/funxytc/internal/token"
)

// PipelineContext is threaded through every Processor in a Pipeline.
type PipelineContext struct {
	FilePath    string
	Source      string
	Tokens      []token.Token
	AstRoot     *ast.Program
	Diagnostics *diagnostics.Bag
}

func NewPipelineContext(filePath, source string) *PipelineContext {
	return &PipelineContext{
		FilePath:    filePath,
		Source:      source,
		Diagnostics: diagnostics.NewBag(),
	}
}

// Processor is one pipeline stage: lex, parse, check, ...
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}
