package ports

import "context"

// StyleSource is the text handed to a style stage together with the entry it came from.
type StyleSource struct {
	Path string
	Text string
}

// StyleStage is one step of the stylesheet pipeline.
//
//go:generate go run go.uber.org/mock/mockgen -source=style.go -destination=mocks/mock_style.go -package=mocks
type StyleStage interface {
	// Name identifies the stage in errors and logs.
	Name() string
	// Apply transforms the source text. Rejected input is reported as a *domain.StyleCompileError.
	Apply(ctx context.Context, src StyleSource) (string, error)
}

// StyleTransformer turns a stylesheet entry into CSS text.
type StyleTransformer interface {
	Transform(ctx context.Context, stylePath string) (string, error)
}
