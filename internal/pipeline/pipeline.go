// Package pipeline threads a PipelineContext through an ordered list of
// Processors. The module loader runs it with the lexer and parser
// stages; symbol-table building and checking run outside it.
package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, continuing even after a stage adds
// diagnostics so later stages can still surface their own findings.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
