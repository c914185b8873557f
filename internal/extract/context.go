package extract

import "github.com/rezonia/textlayout-invoice/internal/locale"

// Context carries the text a field extractor runs over plus the shared
// invoice-level hints (locale, sender, email envelope) that stay constant
// across text variants.
type Context struct {
	Text          string
	Lines         []string
	Locale        locale.Locale
	SenderHint    string
	EmailBodyHint string
	EmailSubject  string
}

// WithText returns a copy of ctx over a different text variant, keeping
// every other field (Lines included) unchanged.
func (ctx Context) WithText(text string) Context {
	ctx.Text = text
	return ctx
}

// Extractor is implemented by every field-specific extraction strategy.
type Extractor interface {
	Name() string
	Extract(ctx Context) Result
	ExtractAll(ctx Context) []Result
}
