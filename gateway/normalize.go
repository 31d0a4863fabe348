package gateway

import (
	"strings"

	"github.com/tidwall/gjson"

	st "tripmate/store/store"
)

type resultKind int

const (
	resultSuccess resultKind = iota
	resultEmpty
	resultFailure
)

// normalized is the internal shape every response is reduced to before
// an operation decides between the real value and its fallback.
type normalized struct {
	kind    resultKind
	text    string
	sources []st.Source
}

// normalize reduces a raw generate-content body to text plus tagged
// grounding sources. Response shapes vary by model and tooling, so
// extraction is tolerant: missing fields yield an empty result rather
// than an error.
func normalize(body []byte) normalized {
	if !gjson.ValidBytes(body) {
		return normalized{kind: resultFailure}
	}
	root := gjson.ParseBytes(body)

	var sb strings.Builder
	root.Get("candidates.0.content.parts").ForEach(func(_, p gjson.Result) bool {
		sb.WriteString(p.Get("text").String())
		return true
	})
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return normalized{kind: resultEmpty}
	}

	var sources []st.Source
	root.Get("candidates.0.groundingMetadata.groundingChunks").ForEach(func(_, chunk gjson.Result) bool {
		if web := chunk.Get("web"); web.Exists() && web.Get("uri").String() != "" {
			sources = append(sources, st.Source{
				URI:   web.Get("uri").String(),
				Title: web.Get("title").String(),
				Type:  st.SourceWeb,
			})
			return true
		}
		if maps := chunk.Get("maps"); maps.Exists() && maps.Get("uri").String() != "" {
			sources = append(sources, st.Source{
				URI:   maps.Get("uri").String(),
				Title: maps.Get("title").String(),
				Type:  st.SourceMap,
			})
		}
		return true
	})

	return normalized{kind: resultSuccess, text: text, sources: sources}
}

// parseStringArray reads a schema-constrained JSON array reply. A reply
// that is not an array of strings yields nil.
func parseStringArray(text string) []string {
	parsed := gjson.Parse(strings.TrimSpace(text))
	if !parsed.IsArray() {
		return nil
	}
	var out []string
	for _, item := range parsed.Array() {
		if item.Type == gjson.String {
			out = append(out, item.String())
		}
	}
	return out
}

// cleanCaption strips wrapping quote characters and whitespace.
func cleanCaption(text string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"'`))
}
