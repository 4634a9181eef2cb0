package ports

import "context"

// Renderer fetches a URL through a full browser engine, for sites whose
// contact details only appear after client-side JavaScript runs. Used as
// a second-tier fallback when the plain HTTP fetch fails the name match;
// a page that matches but yields no contact link or phone is not
// re-rendered.
type Renderer interface {
	Render(ctx context.Context, url string) (html string, err error)
}
