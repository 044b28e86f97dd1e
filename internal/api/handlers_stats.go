package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/headtree/internal/headfinder"
	"github.com/dgallion1/headtree/internal/lang"
)

func (s *Server) handleStageStats(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		jsonError(w, "stage stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"window": "1h",
		"stages": s.metrics.Stages.Snapshot(),
	})
}

// handleHeadRules writes a finder's table in the rules file format. The
// name "active" selects the finder this server annotates with.
func (s *Server) handleHeadRules(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "finder")
	var f *headfinder.Finder
	if name == "active" {
		f = s.orchestrator.Annotator().Finder()
	} else {
		var err error
		f, err = headfinder.ByName(name, lang.Penn{}, s.cfg.CopulaHead)
		if err != nil || name == "" {
			jsonError(w, "unknown head finder: "+name, http.StatusNotFound)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := f.Table().Format(w); err != nil {
		s.log.Error("write head rules", "finder", name, "error", err)
	}
}
