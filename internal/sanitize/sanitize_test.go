package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRichTextStripsScripts(t *testing.T) {
	got := RichText(`hello <script>alert(1)</script><b>world</b>`)
	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "alert(1)")
	assert.Contains(t, got, "<b>world</b>")
}

func TestRichTextIdempotent(t *testing.T) {
	inputs := []string{
		`plain text`,
		`<b>bold</b> &amp; <i>italic</i>`,
		`<a href="https://example.com" onclick="evil()">link</a>`,
		`<img src="x" onerror="evil()">text`,
	}
	for _, in := range inputs {
		once := RichText(in)
		twice := RichText(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestPlainTextStripsAllMarkup(t *testing.T) {
	assert.Equal(t, "bold and plain", PlainText(`<b>bold</b> and <i>plain</i>`))
	assert.Equal(t, "", PlainText(`<script>x()</script>`))
}

func TestURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"https passes", "https://example.com/page", "https://example.com/page"},
		{"http passes", "http://example.com", "http://example.com"},
		{"whitespace trimmed", "  https://example.com  ", "https://example.com"},
		{"javascript rejected", "javascript:alert(1)", ""},
		{"ftp rejected", "ftp://example.com/f", ""},
		{"bare word rejected", "not-a-url", ""},
		{"schemeless host rejected", "example.com/page", ""},
		{"empty rejected", "", ""},
		{"data image accepted", "data:image/png;base64,iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo="},
		{"data non-image rejected", "data:text/html,<b>x</b>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	base := "https://app.example.com/events/"

	assert.Equal(t, "https://app.example.com/products/7", Resolve(base, "/products/7"))
	assert.Equal(t, "https://app.example.com/events/detail", Resolve(base, "detail"))
	assert.Equal(t, "https://other.example.com/x", Resolve(base, "https://other.example.com/x"))
	assert.Equal(t, "", Resolve(base, "javascript:alert(1)"))
	assert.Equal(t, "", Resolve(base, ""))
	assert.Equal(t, "", Resolve("not absolute", "/relative"))
}
