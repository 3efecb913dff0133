package carmuseum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ContentStore holds the canonical, immutable content collections. It is
// built once at startup and never mutated; every accessor returns a copy.
type ContentStore struct {
	data    Dataset
	version string
}

// NewContentStore validates d and builds a store from a private copy of it.
// A missing category list falls back to NewsCategories.
func NewContentStore(d Dataset) (*ContentStore, error) {
	d = cloneDataset(d)
	if len(d.NewsCategories) == 0 {
		d.NewsCategories = slices.Clone(NewsCategories)
	}
	normalizeDataset(&d)
	if err := validateDataset(d); err != nil {
		return nil, err
	}
	version, err := datasetVersion(d)
	if err != nil {
		return nil, fmt.Errorf("hash dataset: %w", err)
	}
	return &ContentStore{data: d, version: version}, nil
}

// Version is a content hash of the loaded dataset, stable across restarts
// for identical content.
func (s *ContentStore) Version() string { return s.version }

func (s *ContentStore) NewsCategories() []NewsCategory { return slices.Clone(s.data.NewsCategories) }
func (s *ContentStore) NewsArticles() []NewsArticle    { return slices.Clone(s.data.NewsArticles) }
func (s *ContentStore) FeaturedModels() []CarModel     { return slices.Clone(s.data.FeaturedModels) }
func (s *ContentStore) EncyclopediaModels() []CarModel { return slices.Clone(s.data.EncyclopediaModels) }
func (s *ContentStore) Brands() []Brand                { return slices.Clone(s.data.Brands) }
func (s *ContentStore) QuickLinks() []QuickLink        { return slices.Clone(s.data.QuickLinks) }
func (s *ContentStore) TimelineEntries() []TimelineEntry {
	return slices.Clone(s.data.TimelineEntries)
}
func (s *ContentStore) RestorationProjects() []RestorationProject {
	return slices.Clone(s.data.RestorationProjects)
}
func (s *ContentStore) GarageVehicles() []GarageVehicle { return slices.Clone(s.data.GarageVehicles) }
func (s *ContentStore) Dealerships() []Dealership       { return slices.Clone(s.data.Dealerships) }

// Dataset returns a copy of every collection.
func (s *ContentStore) Dataset() Dataset { return cloneDataset(s.data) }

func cloneDataset(d Dataset) Dataset {
	return Dataset{
		NewsCategories:      slices.Clone(d.NewsCategories),
		NewsArticles:        slices.Clone(d.NewsArticles),
		FeaturedModels:      slices.Clone(d.FeaturedModels),
		QuickLinks:          slices.Clone(d.QuickLinks),
		TimelineEntries:     slices.Clone(d.TimelineEntries),
		RestorationProjects: slices.Clone(d.RestorationProjects),
		Brands:              slices.Clone(d.Brands),
		EncyclopediaModels:  slices.Clone(d.EncyclopediaModels),
		GarageVehicles:      slices.Clone(d.GarageVehicles),
		Dealerships:         slices.Clone(d.Dealerships),
	}
}

// normalizeDataset replaces nil collections with empty ones so they encode
// as [] rather than null.
func normalizeDataset(d *Dataset) {
	if d.NewsArticles == nil {
		d.NewsArticles = []NewsArticle{}
	}
	if d.FeaturedModels == nil {
		d.FeaturedModels = []CarModel{}
	}
	if d.QuickLinks == nil {
		d.QuickLinks = []QuickLink{}
	}
	if d.TimelineEntries == nil {
		d.TimelineEntries = []TimelineEntry{}
	}
	if d.RestorationProjects == nil {
		d.RestorationProjects = []RestorationProject{}
	}
	if d.Brands == nil {
		d.Brands = []Brand{}
	}
	if d.EncyclopediaModels == nil {
		d.EncyclopediaModels = []CarModel{}
	}
	if d.GarageVehicles == nil {
		d.GarageVehicles = []GarageVehicle{}
	}
	if d.Dealerships == nil {
		d.Dealerships = []Dealership{}
	}
}

func datasetVersion(d Dataset) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8]), nil
}

// ValidationError lists every problem found in a dataset.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid dataset: " + strings.Join(e.Problems, "; ")
}

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// ids records ids for one collection and reports blanks and duplicates.
func (v *validator) ids(collection string) func(id string) {
	seen := make(map[string]struct{})
	return func(id string) {
		if strings.TrimSpace(id) == "" {
			v.addf("%s: empty id", collection)
			return
		}
		if _, ok := seen[id]; ok {
			v.addf("%s: duplicate id %q", collection, id)
			return
		}
		seen[id] = struct{}{}
	}
}

func validateDataset(d Dataset) error {
	v := &validator{}

	categories := make(map[string]struct{}, len(d.NewsCategories))
	for _, c := range d.NewsCategories {
		if strings.TrimSpace(c) == "" {
			v.addf("newsCategories: empty category")
			continue
		}
		if _, ok := categories[c]; ok {
			v.addf("newsCategories: duplicate category %q", c)
		}
		categories[c] = struct{}{}
	}
	if _, ok := categories[CategoryAll]; !ok {
		v.addf("newsCategories: missing %q", CategoryAll)
	}

	articleID := v.ids("newsArticles")
	for _, a := range d.NewsArticles {
		articleID(a.ID)
		_, known := categories[a.Category]
		switch {
		case a.Category == CategoryAll:
			v.addf("newsArticles: %s uses the filter-only category %q", a.ID, CategoryAll)
		case !known:
			v.addf("newsArticles: %s has unknown category %q", a.ID, a.Category)
		}
	}

	// Featured and encyclopedia models are one entity type split by list.
	modelID := v.ids("models")
	for _, m := range d.FeaturedModels {
		modelID(m.ID)
	}
	for _, m := range d.EncyclopediaModels {
		modelID(m.ID)
	}

	brandID := v.ids("brands")
	for _, b := range d.Brands {
		brandID(b.ID)
	}

	linkID := v.ids("quickLinks")
	for _, l := range d.QuickLinks {
		linkID(l.ID)
		if !slices.Contains(QuickLinkRoutes, l.Route) {
			v.addf("quickLinks: %s has unknown route %q", l.ID, l.Route)
		}
	}

	timelineID := v.ids("timelineEntries")
	for _, e := range d.TimelineEntries {
		timelineID(e.ID)
	}

	projectID := v.ids("restorationProjects")
	for _, p := range d.RestorationProjects {
		projectID(p.ID)
	}

	vehicleID := v.ids("garageVehicles")
	for _, g := range d.GarageVehicles {
		vehicleID(g.ID)
	}

	dealerID := v.ids("dealerships")
	for _, dl := range d.Dealerships {
		dealerID(dl.ID)
		if math.IsNaN(dl.Latitude) || dl.Latitude < -90 || dl.Latitude > 90 {
			v.addf("dealerships: %s latitude %v out of range", dl.ID, dl.Latitude)
		}
		if math.IsNaN(dl.Longitude) || dl.Longitude < -180 || dl.Longitude > 180 {
			v.addf("dealerships: %s longitude %v out of range", dl.ID, dl.Longitude)
		}
	}

	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}
