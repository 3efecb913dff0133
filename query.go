package carmuseum

import "strings"

// NewsResult is the response shape of /api/news.
type NewsResult struct {
	Articles            []NewsArticle  `json:"data"`
	AvailableCategories []NewsCategory `json:"availableCategories"`
}

// ModelsResult is the response shape of /api/models.
type ModelsResult struct {
	Featured     []CarModel `json:"featured"`
	Encyclopedia []CarModel `json:"encyclopedia"`
}

// ProjectsResult is the response shape of /api/projects.
type ProjectsResult struct {
	Projects []RestorationProject `json:"data"`
	Timeline []TimelineEntry      `json:"timeline"`
}

// QueryService answers read queries against a ContentStore. It keeps no
// state of its own and is safe for concurrent use.
type QueryService struct {
	store *ContentStore
}

// NewQueryService creates a QueryService backed by the given store.
func NewQueryService(s *ContentStore) *QueryService {
	return &QueryService{store: s}
}

// Store returns the backing content store.
func (q *QueryService) Store() *ContentStore { return q.store }

// ListNews returns articles in store order. An empty category or "All"
// returns every article; any other value is matched exactly against the
// article category, and unknown values yield an empty list.
func (q *QueryService) ListNews(category string) NewsResult {
	articles := q.store.NewsArticles()
	if category != "" && category != CategoryAll {
		filtered := make([]NewsArticle, 0, len(articles))
		for _, a := range articles {
			if a.Category == category {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}
	return NewsResult{
		Articles:            articles,
		AvailableCategories: q.store.NewsCategories(),
	}
}

func (q *QueryService) ListModels() ModelsResult {
	return ModelsResult{
		Featured:     q.store.FeaturedModels(),
		Encyclopedia: q.store.EncyclopediaModels(),
	}
}

func (q *QueryService) ListBrands() []Brand { return q.store.Brands() }

func (q *QueryService) ListGarageVehicles() []GarageVehicle { return q.store.GarageVehicles() }

func (q *QueryService) ListDealerships() []Dealership { return q.store.Dealerships() }

func (q *QueryService) ListProjects() ProjectsResult {
	return ProjectsResult{
		Projects: q.store.RestorationProjects(),
		Timeline: q.store.TimelineEntries(),
	}
}

// GetSummary returns every collection in one snapshot.
func (q *QueryService) GetSummary() Dataset { return q.store.Dataset() }

// SearchEncyclopedia applies SearchModels to the encyclopedia models.
func (q *QueryService) SearchEncyclopedia(query string) []CarModel {
	return SearchModels(query, q.store.EncyclopediaModels())
}

// SearchModels returns the models whose name and description, joined by a
// space and lowercased, contain the lowercased query. An empty query returns
// models unchanged.
func SearchModels(query string, models []CarModel) []CarModel {
	if query == "" {
		return models
	}
	needle := strings.ToLower(query)
	matched := make([]CarModel, 0, len(models))
	for _, m := range models {
		if strings.Contains(strings.ToLower(m.Name+" "+m.Description), needle) {
			matched = append(matched, m)
		}
	}
	return matched
}
