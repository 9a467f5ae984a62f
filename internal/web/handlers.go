package web

import (
	"net/http"
	"strconv"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/ops"
	"github.com/trailtools/trail/internal/store"
)

// detailEpisodes caps the episode timeline shown on a project page.
const detailEpisodes = 20

// Handlers contains HTTP route handlers for the trail viewer.
type Handlers struct {
	st       *store.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleProjects handles GET /projects: every tracked project with counts.
func (h *Handlers) HandleProjects(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Projects(r.Context(), h.st)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "projects", ProjectsPageData{
		PageData: PageData{
			Title:   "Projects",
			Version: h.renderer.version,
			Nav:     "projects",
		},
		Items: result.Items,
	})
}

// HandleDetail handles GET /projects/{hash}: episode timeline, recent
// fixes, and the rendered review digest for one project.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	if hash == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("project hash is required"))
		return
	}

	doc, err := h.st.Load()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	project, ok := doc.Project(hash)
	if !ok {
		h.renderer.renderError(w, r, errors.NewNotFound(hash))
		return
	}

	// Timeline: the project's episodes, most recent first.
	var episodes []memory.Episode
	for i := len(doc.Episodes) - 1; i >= 0 && len(episodes) < detailEpisodes; i-- {
		if doc.Episodes[i].ProjectHash == hash {
			episodes = append(episodes, doc.Episodes[i])
		}
	}

	fixes := memory.RecentFixes(doc.Episodes, hash, ops.DefaultFixesLimit)

	events := 0
	for _, ev := range doc.Events {
		if ev.ProjectHash == hash {
			events++
		}
	}

	review, err := ops.Review(r.Context(), h.st, h.cfg, ops.ReviewInput{Project: hash})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   project.Name,
			Version: h.renderer.version,
			Nav:     "projects",
		},
		Project:    project,
		Episodes:   episodes,
		Fixes:      fixes,
		ReviewHTML: renderMarkdown(review.Markdown),
		Events:     events,
	})
}

// HandleSearch handles GET /search: substring search over episodes.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Query:    query,
		HasQuery: query != "",
	}

	if query == "" {
		h.renderer.renderPage(w, r, "search", data)
		return
	}

	result, err := ops.Search(r.Context(), h.st, ops.SearchInput{Query: query})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Items = result.Items
	h.renderer.renderPage(w, r, "search", data)
}

// HandleEvents handles GET /events: the raw event log, newest last.
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request) {
	input := ops.LogInput{
		Project: r.URL.Query().Get("project"),
		Limit:   parseIntParam(r, "limit", ops.DefaultLogLimit),
	}

	result, err := ops.Log(r.Context(), h.st, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "events", EventsPageData{
		PageData: PageData{
			Title:   "Events",
			Version: h.renderer.version,
			Nav:     "events",
		},
		Items:   result.Items,
		Total:   result.Total,
		Project: input.Project,
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
