package picker

import "context"

// StaticPicker returns a fixed list of paths, filtered to the requested
// kind. It backs the command-line tool and tests.
type StaticPicker struct {
	Paths []string
	// Unfiltered returns every path regardless of the requested kind.
	Unfiltered bool
}

// Select implements PhotoPicker.
func (p StaticPicker) Select(_ context.Context, req SelectRequest) ([]string, error) {
	out := make([]string, 0, len(p.Paths))
	for _, path := range p.Paths {
		if p.Unfiltered || mediaKindMatches(path, req) {
			out = append(out, path)
		}
	}
	return out, nil
}

type pathsKey struct{}

// WithPaths attaches the paths a RequestPicker returns for this request.
func WithPaths(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, pathsKey{}, paths)
}

// RequestPicker returns the paths attached to the context with WithPaths,
// filtered to the requested kind. It backs the HTTP bridge when native
// dialogs are disabled.
type RequestPicker struct{}

// Select implements PhotoPicker.
func (RequestPicker) Select(ctx context.Context, req SelectRequest) ([]string, error) {
	paths, _ := ctx.Value(pathsKey{}).([]string)
	return StaticPicker{Paths: paths}.Select(ctx, req)
}
