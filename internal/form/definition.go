// internal/form/definition.go
//
// PetManager – Forms subsystem: YAML definition loader.
//
// Context
//   Each console form is declared in a YAML file.  This file defines the
//   form’s identifier, title, and fields.  At application start, we parse
//   every “*.yaml” under each “components/<comp>/forms/” directory and store
//   the resulting FormDef in an in-memory registry.  Subsequent packages
//   (renderer, validators, submission controller) fetch definitions from
//   this registry by ID, guaranteeing a single source of truth.
//
//   Fields carry a semantic *kind* rather than free-form regex patterns:
//   “name”, “email”, “document”, “password”, and friends each bind a named
//   validator with a fixed user-facing failure message.  The declared field
//   order is the validation order the submission controller honours.
//
// Workflow
//   •  Structs mirror the YAML schema: FormDef → FieldDef.
//   •  LoadFormDef parses a single YAML file and validates structural rules.
//   •  RegisterForms walks a base directory, discovers YAMLs, loads them via
//      LoadFormDef, and adds them to the registry.
//   •  GetFormDef offers safe, read-only access to a parsed form by ID.
//
// Style
//   Comments use full sentences, two spaces after periods, and Oxford
//   commas.  Helper comments use short noun phrases.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
//
// The form is uniquely identified by ID which should be namespaced by
// component, e.g. “auth/register”.  Fields are validated in declaration
// order, and the first failure stops the submission.
type FormDef struct {
	ID          string     `yaml:"id"`           // Component-scoped identifier.
	Title       string     `yaml:"title"`        // Display title, optional.
	SubmitLabel string     `yaml:"submit_label"` // Button text, optional.
	SuccessMsg  string     `yaml:"success"`      // Success notification body, optional.
	Fields      []FieldDef `yaml:"fields"`       // Ordered list of fields.
}

// FieldDef describes a single input control on the form.  The semantic Kind
// selects both the validator and the rendered input type, so the server
// enforces exactly the rules the markup hints at.
type FieldDef struct {
	Name        string   `yaml:"name"`        // Submission key.  Required.
	Label       string   `yaml:"label"`       // Human-readable label.  Required.
	Kind        Kind     `yaml:"kind"`        // Semantic validator binding.  Required.
	Placeholder string   `yaml:"placeholder"` // Optional placeholder text.
	Required    bool     `yaml:"required"`    // True if input is mandatory.
	MinLength   int      `yaml:"minlength"`   // ≥ 0, 0 means unset.  Generic kinds only.
	MaxLength   int      `yaml:"maxlength"`   // ≥ 0, 0 means unset.  Generic kinds only.
	Match       string   `yaml:"match"`       // Peer field a confirmation must equal.
	Options     []string `yaml:"options"`     // For select.  Optional otherwise.
	Rows        int      `yaml:"rows"`        // Textarea rows, optional.
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// registry maps compositeID (“comp/form”) → *FormDef.  Guarded by mutex.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*FormDef)
)

// GetFormDef returns a parsed FormDef by composite ID (“component/form”).
// The boolean is false when the ID is unknown.
func GetFormDef(id string) (*FormDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fd, ok := registry[id]
	return fd, ok
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadFormDef parses one YAML file, validates its structure, and returns a
// populated FormDef.  It NEVER mutates the global registry.
func LoadFormDef(path string) (*FormDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}

	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	if err := validateFormDef(&fd, path); err != nil {
		return nil, err
	}

	return &fd, nil
}

// RegisterForms walks the base directory and loads every “*.yaml” under
// “components/*/forms/”.
//
// Example:
//
//	err := form.RegisterForms(cfg.Paths.Root)
func RegisterForms(baseDir string) error {
	if baseDir == "" {
		return errors.New("RegisterForms: no base directory provided")
	}

	formsRoot := filepath.Join(baseDir, "components")
	err := filepath.WalkDir(formsRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil // skip non-YAML
		}

		fd, err := LoadFormDef(path)
		if err != nil {
			return err // fail fast so issues surface loudly.
		}
		Register(fd)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err // propagate IO or parse errors.
	}

	return nil
}

// Register inserts or overrides the form in the global registry.  Caller
// must ensure the FormDef passed validation; tests use it to install
// fixtures without touching the filesystem.
func Register(fd *FormDef) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[fd.ID] = fd
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

// validateFormDef enforces structural rules that cannot be expressed via YAML
// tags alone.  It returns a descriptive error referencing the offending file.
func validateFormDef(fd *FormDef, path string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", path)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", path)
	}

	fieldNames := make(map[string]struct{})
	for i := range fd.Fields {
		if err := validateField(&fd.Fields[i], path); err != nil {
			return err
		}
		if _, dup := fieldNames[fd.Fields[i].Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", path, fd.Fields[i].Name)
		}
		fieldNames[fd.Fields[i].Name] = struct{}{}
	}

	// Confirmation fields must reference a peer declared earlier, so the
	// controller always has the target value by the time the check runs.
	seen := make(map[string]struct{})
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if f.Kind == KindPasswordConfirm {
			peer := f.MatchField()
			if _, ok := seen[peer]; !ok {
				return fmt.Errorf("form %s: field '%s' must follow its match field '%s'", path, f.Name, peer)
			}
		}
		seen[f.Name] = struct{}{}
	}

	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef, path string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", path)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", path, f.Name)
	}
	if !f.Kind.Known() {
		return fmt.Errorf("form %s: field '%s' has unknown kind %q", path, f.Name, f.Kind)
	}
	if f.Kind == KindSelect && len(f.Options) == 0 {
		return fmt.Errorf("form %s: select field '%s' needs 'options'", path, f.Name)
	}

	if f.MinLength < 0 || f.MaxLength < 0 {
		return fmt.Errorf("form %s: field '%s' minlength/maxlength cannot be negative", path, f.Name)
	}
	if f.MaxLength > 0 && f.MinLength > f.MaxLength {
		return fmt.Errorf("form %s: field '%s' minlength greater than maxlength", path, f.Name)
	}

	return nil
}

// MatchField returns the peer a confirmation compares against, defaulting
// to “password”.
func (f *FieldDef) MatchField() string {
	if f.Match != "" {
		return f.Match
	}
	return "password"
}
