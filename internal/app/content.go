package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/resources"
)

// DefaultLoadTimeout bounds the initial resource fetch.
const DefaultLoadTimeout = 15 * time.Second

// ResourceNames names the resources that make up the content.
type ResourceNames struct {
	Catalog      string
	Groups       string
	Languages    string
	ListenerDocs string
}

// DefaultResourceNames returns the conventional resource names.
func DefaultResourceNames() ResourceNames {
	return ResourceNames{
		Catalog:      "catalog",
		Groups:       "groups",
		Languages:    "languages",
		ListenerDocs: "listener-docs",
	}
}

// Content is the immutable data a session renders from.
type Content struct {
	Catalog      *catalog.Catalog
	Groups       catalog.GroupTables
	Languages    []catalog.LanguageEntry
	ListenerDocs catalog.ListenerDocs
}

// LoadContent fetches every resource in parallel and validates them. The
// listener docs resource is optional. A positive timeout bounds the fetch.
func LoadContent(ctx context.Context, loader resources.Loader, names ResourceNames, timeout time.Duration) (*Content, error) {
	var (
		doc       catalog.Document
		groups    catalog.GroupsDocument
		languages []catalog.LanguageEntry
		docs      catalog.ListenerDocs
	)
	err := resources.LoadAll(ctx, loader, timeout,
		resources.Request{Name: names.Catalog, Dst: &doc},
		resources.Request{Name: names.Groups, Dst: &groups},
		resources.Request{Name: names.Languages, Dst: &languages},
		resources.Request{Name: names.ListenerDocs, Dst: &docs, Optional: true},
	)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	tables, err := catalog.BuildGroups(groups)
	if err != nil {
		return nil, fmt.Errorf("building groups: %w", err)
	}
	return &Content{
		Catalog:      cat,
		Groups:       tables,
		Languages:    languages,
		ListenerDocs: docs,
	}, nil
}
