package tung

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed default_aliases.yaml
var defaultAliasesYAML []byte

// KeywordDefinition is one entry of an alias file.
type KeywordDefinition struct {
	OriginalName string   `yaml:"original_name" json:"original_name"`
	KeywordType  string   `yaml:"keyword_type" json:"keyword_type"`
	Description  string   `yaml:"description" json:"description"`
	Aliases      []string `yaml:"aliases" json:"aliases"`
}

type aliasFile struct {
	Keywords []KeywordDefinition `yaml:"keywords"`
}

// AliasTable maps alternative spellings onto canonical keywords and builtin
// names. It is immutable once built and safe to share between engines.
type AliasTable struct {
	aliases     map[string]string
	definitions []KeywordDefinition
}

// canonicalNames lists every word an alias may point at.
var canonicalNames = func() map[string]struct{} {
	names := make(map[string]struct{})
	for word := range keywords {
		names[word] = struct{}{}
	}
	for _, name := range builtinNames {
		names[name] = struct{}{}
	}
	return names
}()

// DefaultAliases returns the built-in alias table.
func DefaultAliases() *AliasTable {
	table, err := ParseAliases(defaultAliasesYAML, "default_aliases.yaml")
	if err != nil {
		panic(err)
	}
	return table
}

// EmptyAliases returns a table with no aliases.
func EmptyAliases() *AliasTable {
	return &AliasTable{aliases: map[string]string{}}
}

// LoadAliases reads an alias file. JSON files load too, since JSON is a
// subset of YAML.
func LoadAliases(path string) (*AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading aliases %s: %w", path, err)
	}
	return ParseAliases(data, path)
}

// ParseAliases parses alias file content. The name is used only in error
// messages.
func ParseAliases(data []byte, name string) (*AliasTable, error) {
	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	table := &AliasTable{aliases: make(map[string]string)}
	for i, def := range file.Keywords {
		if def.OriginalName == "" {
			return nil, fmt.Errorf("%s: keywords[%d]: original_name is required", name, i)
		}
		if _, ok := canonicalNames[def.OriginalName]; !ok {
			return nil, fmt.Errorf("%s: keywords[%d]: unknown keyword or builtin %q", name, i, def.OriginalName)
		}
		for _, alias := range def.Aliases {
			if alias == def.OriginalName {
				continue
			}
			if !isIdentifierWord(alias) {
				return nil, fmt.Errorf("%s: keywords[%d]: alias %q is not an identifier", name, i, alias)
			}
			if _, ok := canonicalNames[alias]; ok {
				return nil, fmt.Errorf("%s: keywords[%d]: alias %q shadows a keyword or builtin", name, i, alias)
			}
			if prev, ok := table.aliases[alias]; ok && prev != def.OriginalName {
				return nil, fmt.Errorf("%s: keywords[%d]: alias %q already maps to %q", name, i, alias, prev)
			}
			table.aliases[alias] = def.OriginalName
		}
		table.definitions = append(table.definitions, def)
	}
	return table, nil
}

// Resolve returns the canonical spelling of word, or word itself when it is
// not an alias.
func (t *AliasTable) Resolve(word string) string {
	if t == nil {
		return word
	}
	if canonical, ok := t.aliases[word]; ok {
		return canonical
	}
	return word
}

// AliasesFor lists the aliases of a canonical name in sorted order.
func (t *AliasTable) AliasesFor(name string) []string {
	if t == nil {
		return nil
	}
	var out []string
	for alias, canonical := range t.aliases {
		if canonical == name {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// IsKeywordOrAlias reports whether word is an alias or the target of one.
func (t *AliasTable) IsKeywordOrAlias(word string) bool {
	if t == nil {
		return false
	}
	if _, ok := t.aliases[word]; ok {
		return true
	}
	for _, canonical := range t.aliases {
		if canonical == word {
			return true
		}
	}
	return false
}

// Aliases returns every alias in sorted order.
func (t *AliasTable) Aliases() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.aliases))
	for alias := range t.aliases {
		out = append(out, alias)
	}
	slices.Sort(out)
	return out
}

// Definitions returns the entries the table was built from.
func (t *AliasTable) Definitions() []KeywordDefinition {
	if t == nil {
		return nil
	}
	return slices.Clone(t.definitions)
}

func isIdentifierWord(word string) bool {
	if word == "" {
		return false
	}
	for i, r := range word {
		if i == 0 && !isIdentifierStart(r) {
			return false
		}
		if !isIdentifierRune(r) {
			return false
		}
	}
	return true
}
