package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	lru "github.com/hashicorp/golang-lru/v2"

	internalstrings "github.com/amonks/duchess/internal/strings"
)

type renderer interface {
	Render(string) (string, error)
}

type rendererKey struct {
	width int
	color bool
}

// maxRenderers bounds the cache; a resized terminal produces a new key.
const maxRenderers = 8

var (
	rendererMu sync.Mutex
	renderers  = mustRendererCache(maxRenderers)
)

func mustRendererCache(size int) *lru.Cache[rendererKey, renderer] {
	cache, err := lru.New[rendererKey, renderer](size)
	if err != nil {
		panic(err)
	}
	return cache
}

// Render formats markdown text for terminal output, wrapped at width.
// Color selects the dark style; otherwise plain ASCII is produced.
// If the renderer fails, the input is returned unchanged.
func Render(width int, color bool, input string) string {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	rendered := value
	if r := markdownRenderer(rendererKey{width: width, color: color}); r != nil {
		if formatted, ok := safeRender(r, value); ok {
			rendered = formatted
		}
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return value
	}
	return rendered
}

func safeRender(r renderer, value string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return "", false
	}
	return formatted, true
}

func markdownRenderer(key rendererKey) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers.Get(key); ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	if key.color {
		style = styles.DarkStyleConfig
	}
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(key.width),
	)
	if err != nil {
		return nil
	}
	renderers.Add(key, created)
	return created
}
