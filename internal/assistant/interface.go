package assistant

import "context"

// UseCase runs one classify → retrieve → dispatch → persist pipeline
// invocation per call.
type UseCase interface {
	Run(ctx context.Context, input RunInput) (RunOutput, error)
}
