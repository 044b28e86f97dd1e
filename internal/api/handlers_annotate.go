package api

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dgallion1/headtree/internal/parser"
	"github.com/dgallion1/headtree/internal/pipeline"
)

// handleAnnotate annotates the bracketed trees in the request body. With
// ?format=deps the arcs are returned as plain text, one tree per block.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxTreeBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(body)) > s.cfg.MaxTreeBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxTreeBytes), http.StatusRequestEntityTooLarge)
		return
	}

	trees, err := parser.ReadTrees(string(body))
	if err != nil {
		var se *parser.SyntaxError
		if errors.As(err, &se) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": se.Msg, "line": se.Line, "col": se.Col})
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(trees) == 0 {
		jsonError(w, "no trees in request body", http.StatusBadRequest)
		return
	}

	ann := s.orchestrator.Annotator()
	results := make([]pipeline.TreeResult, len(trees))
	for i, t := range trees {
		results[i].Index = i
		res, err := ann.Annotate(r.Context(), t)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Result = res
	}

	if r.URL.Query().Get("format") == "deps" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		bw := bufio.NewWriter(w)
		for i, tr := range results {
			if i > 0 {
				bw.WriteString("\n")
			}
			if tr.Result == nil {
				fmt.Fprintf(bw, "# tree %d: %s\n", i+1, strings.ReplaceAll(tr.Error, "\n", " "))
				continue
			}
			for _, d := range tr.Result.Dependencies {
				fmt.Fprintln(bw, d.String())
			}
		}
		_ = bw.Flush()
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"finder":  ann.Finder().Name(),
		"results": results,
	})
}
