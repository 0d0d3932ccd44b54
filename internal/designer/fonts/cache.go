package fonts

import (
	"log"
	"math"
	"net/url"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ============================================================
// Font cache
// ============================================================

// Единственный общий на процесс реестр: какие семейства уже загружены и
// разобранные начертания для растра. Загрузка идемпотентна.

type variant int

const (
	regular variant = iota
	bold
	italic
	boldItalic
	mono
	monoBold
)

var sources = map[variant][]byte{
	regular:    goregular.TTF,
	bold:       gobold.TTF,
	italic:     goitalic.TTF,
	boldItalic: gobolditalic.TTF,
	mono:       gomono.TTF,
	monoBold:   gomonobold.TTF,
}

type faceKey struct {
	v    variant
	size float64
}

type Cache struct {
	mu     sync.Mutex
	loaded map[string]bool
	parsed map[variant]*opentype.Font
	faces  map[faceKey]font.Face
}

func NewCache() *Cache {
	return &Cache{
		loaded: make(map[string]bool),
		parsed: make(map[variant]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// Default: общий кэш процесса.
var Default = NewCache()

// Reset сбрасывает общий кэш (для тестов и при остановке сервиса).
func Reset() {
	Default.Reset()
}

// Load отмечает семейство загруженным. true: если это первая загрузка.
func (c *Cache) Load(family string) bool {
	key := normalize(family)
	if key == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded[key] {
		return false
	}
	c.loaded[key] = true
	return true
}

func (c *Cache) Loaded(family string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded[normalize(family)]
}

// Families: загруженные семейства в алфавитном порядке.
func (c *Cache) Families() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.loaded))
	for f := range c.loaded {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Use вызывает fn с начертанием для растра. Начертания opentype не
// потокобезопасны, поэтому fn выполняется под блокировкой кэша.
//
// Настоящих файлов шрифтов нет: моноширинные семейства отображаются на Go Mono,
// остальные на Go. При ошибке разбора: basicfont.
func (c *Cache) Use(family string, isBold, isItalic bool, size float64, fn func(font.Face)) {
	c.Load(family)

	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.face(pick(family, isBold, isItalic), size))
}

func (c *Cache) face(v variant, size float64) font.Face {
	key := faceKey{v: v, size: math.Round(size*2) / 2}
	if f, ok := c.faces[key]; ok {
		return f
	}

	parsed, ok := c.parsed[v]
	if !ok {
		var err error
		parsed, err = opentype.Parse(sources[v])
		if err != nil {
			log.Printf("[FONTS] Parse error for variant %d: %v", v, err)
			return basicfont.Face7x13
		}
		c.parsed[v] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    math.Max(1, key.size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("[FONTS] Face error: %v", err)
		return basicfont.Face7x13
	}
	c.faces[key] = face
	return face
}

func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.faces {
		_ = f.Close()
	}
	c.loaded = make(map[string]bool)
	c.parsed = make(map[variant]*opentype.Font)
	c.faces = make(map[faceKey]font.Face)
}

func pick(family string, isBold, isItalic bool) variant {
	if IsMonospace(family) {
		if isBold {
			return monoBold
		}
		return mono
	}
	switch {
	case isBold && isItalic:
		return boldItalic
	case isBold:
		return bold
	case isItalic:
		return italic
	}
	return regular
}

// ============================================================
// Stylesheet
// ============================================================

const stylesheetBase = "https://fonts.googleapis.com/css2"

var systemFamilies = map[string]bool{
	"arial":           true,
	"helvetica":       true,
	"georgia":         true,
	"times":           true,
	"times new roman": true,
	"courier":         true,
	"courier new":     true,
	"verdana":         true,
	"tahoma":          true,
	"serif":           true,
	"sans-serif":      true,
	"monospace":       true,
	"system-ui":       true,
}

func IsSystem(family string) bool {
	return systemFamilies[strings.ToLower(normalize(family))]
}

func IsMonospace(family string) bool {
	f := strings.ToLower(family)
	return strings.Contains(f, "mono") || strings.Contains(f, "courier") || strings.Contains(f, "code")
}

// WebFamilies: уникальные несистемные семейства, отсортированные.
func WebFamilies(families []string) []string {
	seen := make(map[string]bool, len(families))
	var out []string
	for _, f := range families {
		f = normalize(f)
		if f == "" || IsSystem(f) || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StylesheetURL собирает ссылку Google Fonts для набора семейств; пустой набор: "".
func StylesheetURL(families []string) string {
	families = WebFamilies(families)
	if len(families) == 0 {
		return ""
	}

	parts := make([]string, 0, len(families)+1)
	for _, f := range families {
		parts = append(parts, "family="+url.QueryEscape(f)+":ital,wght@0,400;0,700;1,400;1,700")
	}
	parts = append(parts, "display=swap")
	return stylesheetBase + "?" + strings.Join(parts, "&")
}

// normalize убирает кавычки и запасные семейства: "'Open Sans', sans-serif" -> "Open Sans".
func normalize(family string) string {
	if i := strings.IndexByte(family, ','); i >= 0 {
		family = family[:i]
	}
	return strings.Trim(strings.TrimSpace(family), `"'`)
}
