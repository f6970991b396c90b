package passkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/passforge/coupon-pass-service/internal/model"
)

// iconFiles is the fixed icon set every pass carries.
var iconFiles = []string{"icon.png", "icon@2x.png", "icon@3x.png"}

// Template is the immutable base pass loaded once at startup. Builds
// work on deep copies; a Template is never mutated after Load returns.
type Template struct {
	doc   model.Document
	icons map[string][]byte
}

// Load reads pass.json and the fixed icon set from dir. A missing or
// unparseable file is a startup error; no pass can be produced without
// the complete template.
func Load(dir string) (*Template, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "pass.json"))
	if err != nil {
		return nil, fmt.Errorf("read pass template: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse pass template: %w", err)
	}

	icons := make(map[string][]byte, len(iconFiles))
	for _, name := range iconFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read template icon %s: %w", name, err)
		}
		icons[name] = data
	}

	return &Template{doc: doc, icons: icons}, nil
}

// Document returns a deep copy of the template document.
func (t *Template) Document() model.Document {
	return t.doc.Clone()
}

// Icons returns a fresh map of the icon assets. Byte slices are shared;
// callers treat asset contents as read-only.
func (t *Template) Icons() map[string][]byte {
	out := make(map[string][]byte, len(t.icons))
	for name, data := range t.icons {
		out[name] = data
	}
	return out
}
