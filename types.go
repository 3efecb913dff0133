package carmuseum

// NewsCategory labels a news article. CategoryAll is a filter value only and
// is never stored on an article.
type NewsCategory = string

const (
	CategoryAll      NewsCategory = "All"
	CategoryReviews  NewsCategory = "Reviews"
	CategoryIndustry NewsCategory = "Industry"
	CategoryElectric NewsCategory = "Electric"
	CategoryConcept  NewsCategory = "Concept"
)

// NewsCategories is the enumerated category set in display order.
var NewsCategories = []NewsCategory{
	CategoryAll,
	CategoryReviews,
	CategoryIndustry,
	CategoryElectric,
	CategoryConcept,
}

// Quick link destinations understood by the clients.
const (
	RouteDashboard       = "Dashboard"
	RouteNews            = "News"
	RouteEncyclopedia    = "Encyclopedia"
	RouteMyGarage        = "MyGarage"
	RouteFindDealerships = "FindDealerships"
	RouteSettings        = "Settings"
)

// QuickLinkRoutes lists every route a QuickLink may point at.
var QuickLinkRoutes = []string{
	RouteDashboard,
	RouteNews,
	RouteEncyclopedia,
	RouteMyGarage,
	RouteFindDealerships,
	RouteSettings,
}

// NewsArticle is a news item. PublishedAt is a relative time ("2h ago").
type NewsArticle struct {
	ID          string       `json:"id" yaml:"id"`
	Category    NewsCategory `json:"category" yaml:"category"`
	Title       string       `json:"title" yaml:"title"`
	Summary     string       `json:"summary" yaml:"summary"`
	Image       string       `json:"image" yaml:"image"`
	PublishedAt string       `json:"publishedAt" yaml:"publishedAt"`
}

type CarModel struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

type Brand struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

// QuickLink is a dashboard shortcut. Route must be one of QuickLinkRoutes.
type QuickLink struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
	Route string `json:"route" yaml:"route"`
}

// TimelineEntry describes an era of automotive history. Period is free text
// such as "1950s - 1960s".
type TimelineEntry struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Period      string `json:"period" yaml:"period"`
	Image       string `json:"image" yaml:"image"`
	Description string `json:"description" yaml:"description"`
}

type RestorationProject struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

type GarageVehicle struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Year  string `json:"year" yaml:"year"`
	Image string `json:"image" yaml:"image"`
}

// Dealership coordinates are WGS84 decimal degrees.
type Dealership struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Address   string  `json:"address" yaml:"address"`
	Image     string  `json:"image" yaml:"image"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Dataset is the full content snapshot. Its JSON form is the /api/summary
// response body.
type Dataset struct {
	NewsCategories      []NewsCategory       `json:"newsCategories" yaml:"newsCategories"`
	NewsArticles        []NewsArticle        `json:"newsArticles" yaml:"newsArticles"`
	FeaturedModels      []CarModel           `json:"featuredModels" yaml:"featuredModels"`
	QuickLinks          []QuickLink          `json:"quickLinks" yaml:"quickLinks"`
	TimelineEntries     []TimelineEntry      `json:"timelineEntries" yaml:"timelineEntries"`
	RestorationProjects []RestorationProject `json:"restorationProjects" yaml:"restorationProjects"`
	Brands              []Brand              `json:"brands" yaml:"brands"`
	EncyclopediaModels  []CarModel           `json:"encyclopediaModels" yaml:"encyclopediaModels"`
	GarageVehicles      []GarageVehicle      `json:"garageVehicles" yaml:"garageVehicles"`
	Dealerships         []Dealership         `json:"dealerships" yaml:"dealerships"`
}
