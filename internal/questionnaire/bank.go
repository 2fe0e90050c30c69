package questionnaire

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

//go:embed bank.schema.json
var bankSchemaJSON []byte

// DefaultVariant is the bank used when nothing else is selected.
const DefaultVariant = "ms"

// ErrUnknownVariant is returned when a bank id is not loaded.
var ErrUnknownVariant = errors.New("unknown question bank")

// LoadBuiltin loads and validates a built-in bank by id.
func LoadBuiltin(id string) (*Engine, error) {
	data, err := builtinFS.ReadFile("builtin/" + id + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return Parse(data)
}

// BuiltinIDs returns the ids of all built-in banks, sorted.
func BuiltinIDs() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadFile loads and validates a bank document from disk.
func LoadFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	eng, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return eng, nil
}

// Parse checks a YAML bank document against the bank schema, decodes it,
// and builds an Engine. Shape errors and integrity errors both fail here.
func Parse(data []byte) (*Engine, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if err := checkShape(doc); err != nil {
		return nil, err
	}

	var v Variant
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return NewEngine(&v)
}

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(bankSchemaJSON, &def); err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://question-bank.json"
		if err := c.AddResource(url, def); err != nil {
			bankSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(url)
	})
	return bankSchema, bankSchemaErr
}

// checkShape validates a decoded YAML document against the bank schema.
func checkShape(doc any) error {
	schema, err := compiledBankSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("question bank is not representable as JSON: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return fmt.Errorf("question bank is not representable as JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("question bank schema validation failed: %w", err)
	}
	return nil
}

// Bank is a set of validated question banks keyed by id.
type Bank struct {
	engines map[string]*Engine
	order   []string
	def     string
}

// NewBank builds a bank from engines. The first engine whose id equals def
// becomes the default; otherwise the first engine is.
func NewBank(def string, engines ...*Engine) (*Bank, error) {
	if len(engines) == 0 {
		return nil, errors.New("no question banks loaded")
	}
	b := &Bank{engines: make(map[string]*Engine, len(engines))}
	for _, e := range engines {
		id := e.Variant().ID
		if _, dup := b.engines[id]; dup {
			return nil, fmt.Errorf("duplicate question bank %q", id)
		}
		b.engines[id] = e
		b.order = append(b.order, id)
	}
	b.def = b.order[0]
	if def != "" {
		if _, ok := b.engines[def]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownVariant, def)
		}
		b.def = def
	}
	return b, nil
}

// LoadBank loads every built-in bank plus any extra bank files.
// Any invalid bank fails the whole load.
func LoadBank(def string, extraFiles ...string) (*Bank, error) {
	engines, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, path := range extraFiles {
		if path == "" {
			continue
		}
		e, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	return NewBank(def, engines...)
}

// Get returns the engine for id.
func (b *Bank) Get(id string) (*Engine, error) {
	e, ok := b.engines[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return e, nil
}

// Default returns the default engine.
func (b *Bank) Default() *Engine {
	return b.engines[b.def]
}

// Engines returns all engines in load order.
func (b *Bank) Engines() []*Engine {
	out := make([]*Engine, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.engines[id])
	}
	return out
}

// Builtin loads every built-in bank, sorted by id.
func Builtin() ([]*Engine, error) {
	ids, err := BuiltinIDs()
	if err != nil {
		return nil, err
	}
	engines := make([]*Engine, 0, len(ids))
	for _, id := range ids {
		e, err := LoadBuiltin(id)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	return engines, nil
}
