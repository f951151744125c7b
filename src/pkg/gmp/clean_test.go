package gmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect string
	}{
		{"named entities", "Tata &amp; Sons &lt;Ltd&gt;", "Tata & Sons <Ltd>"},
		{"numeric reference", "&#8377;500", "₹500"},
		{"apostrophe reference", "D&#39;Mart", "D'Mart"},
		{"nbsp becomes a space", "A&nbsp;B", "A B"},
		{"quote entity", "&quot;Hot&quot; issue", `"Hot" issue`},
		{"numeric then named cascades", "&#38;amp;", "&"},
		{"non-string input", 42.0, ""},
		{"nil input", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, DecodeEntities(tt.input))
		})
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect string
	}{
		{"bold tag with entity", "<b>ABC</b> &amp; Co", "ABC & Co"},
		{"styled span", `<span style="color:green">55 (7.3%)</span>`, "55 (7.3%)"},
		{"tags become separators", "<td>10-Apr</td><td>12-Apr</td>", "10-Apr 12-Apr"},
		{"whitespace collapses", "  Foo \n\t Bar  ", "Foo Bar"},
		{"nbsp runs collapse", "Foo&nbsp;&nbsp;&nbsp;Bar", "Foo Bar"},
		{"non-string input", []any{"x"}, ""},
		{"nil input", nil, ""},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, StripMarkup(tt.input))
		})
	}
}
