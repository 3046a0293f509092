// Package config owns the configuration aggregate: the entry store, the
// category map and the global links, loaded once per run from a single YAML
// document. Loading validates referential integrity up front, so a dangling
// category reference can never surface mid-run.
package config

import (
	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/store"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// Config is the root object of a run. It owns exactly one Store, the
// category map, and the optional global link set. It is read-only after
// load except for the explicit AddRepo/AddLink editing surface.
type Config struct {
	// Store is the deduplicated entry registry
	Store *store.Store

	// Categories maps category name to its definition
	Categories map[string]types.Category

	// CategoryNames preserves the document's declaration order
	CategoryNames []string

	// Links is the global link set, not bound to any category
	Links []types.Link
}

// New creates an empty configuration
func New() *Config {
	return &Config{
		Store:      store.New(),
		Categories: make(map[string]types.Category),
	}
}

// fromDocument builds and validates the aggregate from a parsed document.
// Category-declared inline entries are merged into the canonical store,
// last write wins, then every reference is resolved once to fail fast on
// dangling keys.
func fromDocument(doc *document) (*Config, error) {
	cfg := New()

	// Canonical store section first, so category-level declarations of the
	// same name override it.
	for _, name := range doc.Repos.Keys() {
		rd, _ := doc.Repos.Get(name)
		if rd == nil {
			return nil, errors.Newf(errors.ErrConfigValid,
				"store entry %q has no body", name).WithDetail("key", name)
		}
		entry, err := buildEntry(name, rd)
		if err != nil {
			return nil, err
		}
		cfg.Store.Insert(entry)
	}

	for _, catName := range doc.Categories.Keys() {
		cd, _ := doc.Categories.Get(catName)
		if cd == nil {
			cd = &categoryDoc{}
		}

		flags, err := types.ParseFlags(cd.Flags)
		if err != nil {
			return nil, err
		}

		category := types.Category{
			Name:  catName,
			Flags: flags,
		}

		for _, repoName := range cd.Repos.Keys() {
			rd, _ := cd.Repos.Get(repoName)
			if rd != nil {
				entry, err := buildEntry(repoName, rd)
				if err != nil {
					return nil, err
				}
				cfg.Store.Insert(entry)
			}
			category.RepoKeys = append(category.RepoKeys, repoName)
		}

		links, err := buildLinks(&cd.Links)
		if err != nil {
			return nil, err
		}
		category.Links = links

		cfg.Categories[catName] = category
		cfg.CategoryNames = append(cfg.CategoryNames, catName)
	}

	globals, err := buildLinks(&doc.Links)
	if err != nil {
		return nil, err
	}
	cfg.Links = globals

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEntry(name string, rd *repoDoc) (types.RepoEntry, error) {
	flags, err := types.ParseFlags(rd.Flags)
	if err != nil {
		return types.RepoEntry{}, err
	}
	kind := types.RepoKind(rd.Kind)
	if kind == "" {
		kind = types.KindGit
	}
	return types.RepoEntry{
		Name:  name,
		Path:  rd.Path,
		URL:   rd.URL,
		Kind:  kind,
		Flags: flags,
	}, nil
}

func buildLinks(m *mapping[*linkDoc]) ([]types.Link, error) {
	var links []types.Link
	for _, name := range m.Keys() {
		ld, _ := m.Get(name)
		if ld == nil {
			return nil, errors.Newf(errors.ErrConfigValid,
				"link %q has no body", name).WithDetail("link", name)
		}
		if ld.Tx == "" || ld.Rx == "" {
			return nil, errors.Newf(errors.ErrConfigValid,
				"link %q must declare both tx and rx", name).WithDetail("link", name)
		}
		links = append(links, types.Link{Name: name, Source: ld.Tx, Target: ld.Rx})
	}
	return links, nil
}

// Validate resolves every category against the store, so a dangling
// reference is a load-time fatal error rather than a per-operation skip.
func (c *Config) Validate() error {
	for _, name := range c.CategoryNames {
		if _, err := c.Store.Resolve(c.Categories[name]); err != nil {
			return err
		}
	}
	return nil
}

// Category looks up a category by name
func (c *Config) Category(name string) (types.Category, bool) {
	cat, ok := c.Categories[name]
	return cat, ok
}

// AddRepo inserts an entry into the store and, when category is non-empty,
// appends its key to that category. The mutation lives on this Config only;
// callers persist it with Save.
func (c *Config) AddRepo(category string, entry types.RepoEntry) error {
	if entry.Name == "" {
		return errors.New(errors.ErrInvalidInput, "repo entry needs a name")
	}
	if entry.Kind == "" {
		entry.Kind = types.KindGit
	}
	c.Store.Insert(entry)
	if category == "" {
		return nil
	}
	cat, ok := c.Categories[category]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "unknown category %q", category).
			WithDetail("category", category)
	}
	for _, key := range cat.RepoKeys {
		if key == entry.Name {
			return nil
		}
	}
	cat.RepoKeys = append(cat.RepoKeys, entry.Name)
	c.Categories[category] = cat
	return nil
}

// AddLink appends a link to a category, or to the global set when category
// is empty.
func (c *Config) AddLink(category string, link types.Link) error {
	if link.Source == "" || link.Target == "" {
		return errors.New(errors.ErrInvalidInput, "link needs both source and target")
	}
	if category == "" {
		c.Links = append(c.Links, link)
		return nil
	}
	cat, ok := c.Categories[category]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "unknown category %q", category).
			WithDetail("category", category)
	}
	cat.Links = append(cat.Links, link)
	c.Categories[category] = cat
	return nil
}

// toDocument serializes the aggregate back into document form. The output is
// normalized to the indirection-store shape: every entry lives in the
// top-level repos section and categories carry bare references.
func (c *Config) toDocument() *document {
	doc := &document{}

	for _, entry := range c.Store.All() {
		doc.Repos.Set(entry.Name, &repoDoc{
			Path:  entry.Path,
			URL:   entry.URL,
			Kind:  string(entry.Kind),
			Flags: entry.Flags.Strings(),
		})
	}

	for _, name := range c.CategoryNames {
		cat := c.Categories[name]
		cd := &categoryDoc{Flags: cat.Flags.Strings()}
		for _, key := range cat.RepoKeys {
			cd.Repos.Set(key, nil)
		}
		for _, link := range cat.Links {
			cd.Links.Set(linkKey(link), &linkDoc{Tx: link.Source, Rx: link.Target})
		}
		doc.Categories.Set(name, cd)
	}

	for _, link := range c.Links {
		doc.Links.Set(linkKey(link), &linkDoc{Tx: link.Source, Rx: link.Target})
	}

	return doc
}

// linkKey picks the document key for a link; the name is informational and
// may be absent.
func linkKey(link types.Link) string {
	if link.Name != "" {
		return link.Name
	}
	return link.Target
}
