package typeface

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrUnknownFont is returned by Bundled for names not in BundledNames.
var ErrUnknownFont = errors.New("unknown bundled font")

var bundled = map[string][]byte{
	"go-regular":      goregular.TTF,
	"go-bold":         gobold.TTF,
	"lm-roman":        lmroman10regular.TTF,
	"lm-roman-bold":   lmroman10bold.TTF,
	"lm-roman-italic": lmroman10italic.TTF,
	"lm-mono":         lmmono10regular.TTF,
}

var (
	bundledMu    sync.Mutex
	bundledCache = map[string]*Font{}
)

// BundledNames lists the fonts compiled into the binary, sorted.
func BundledNames() []string {
	names := make([]string, 0, len(bundled))
	for name := range bundled {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsBundled reports whether name refers to a compiled-in font.
func IsBundled(name string) bool {
	_, ok := bundled[name]
	return ok
}

// Bundled returns the compiled-in font called name. Fonts are parsed once
// and shared.
func Bundled(name string) (*Font, error) {
	data, ok := bundled[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}

	bundledMu.Lock()
	defer bundledMu.Unlock()
	if f, ok := bundledCache[name]; ok {
		return f, nil
	}
	f, err := LoadSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("bundled font %s: %w", name, err)
	}
	if f.Family == "" {
		f.Family = name
	}
	bundledCache[name] = f
	return f, nil
}
