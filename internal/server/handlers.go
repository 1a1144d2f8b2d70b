package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/raphi011/btm/internal/actions"
	"github.com/raphi011/btm/internal/git"
	"github.com/raphi011/btm/internal/theme"
)

// studioURLWait bounds how long launch-studio waits for the studio URL.
const studioURLWait = 3 * time.Second

// themeWithGit is a theme as listed by /api/themes.
type themeWithGit struct {
	theme.Theme
	GitInfo git.RemoteInfo `json:"gitInfo"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"themes":    s.svc.Catalog.Len(),
		"scannedAt": s.svc.Catalog.ScannedAt(),
	})
}

func (s *Server) listThemes(w http.ResponseWriter, r *http.Request) {
	themes := s.svc.Catalog.List()
	infos := s.svc.LoadRemotes(r.Context(), themes)

	out := make([]themeWithGit, len(themes))
	for i, t := range themes {
		out[i] = themeWithGit{Theme: t, GitInfo: infos[i]}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	themes, err := s.svc.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to refresh themes", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"themes":  themes,
	})
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, "failed to load theme", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) logo(w http.ResponseWriter, r *http.Request) {
	logo, err := s.svc.Logo(chi.URLParam(r, "id"))
	if errors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, "logo not found", "")
		return
	}
	if err != nil {
		writeActionError(w, "failed to read logo", err)
		return
	}

	w.Header().Set("ETag", logo.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, theme.LogoFile, logo.ModTime, bytes.NewReader(logo.Data))
}

func (s *Server) readme(w http.ResponseWriter, r *http.Request) {
	html, err := s.svc.Readme(chi.URLParam(r, "id"))
	if errors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, "README not found", "")
		return
	}
	if err != nil {
		writeActionError(w, "failed to render README", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

func (s *Server) updateDID(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.UpdateDID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if output, ok := didErrorOutput(err); ok {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "could not extract DID from command output",
				"details": "check the command output",
				"output":  output,
			})
			return
		}
		writeActionError(w, "failed to update theme DID", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "theme": t})
}

type setDIDRequest struct {
	DID string `json:"did"`
}

func (s *Server) setDID(w http.ResponseWriter, r *http.Request) {
	var req setDIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := s.svc.SetDID(r.Context(), chi.URLParam(r, "id"), req.DID)
	if err != nil {
		writeActionError(w, "failed to set theme DID", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "theme": t})
}

// writeNotReady answers a launch request for a theme that is not ready.
func writeNotReady(w http.ResponseWriter, err error) bool {
	var nre *actions.NotReadyError
	if !errors.As(err, &nre) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error":         "theme is not ready",
		"details":       "only ready themes can be launched",
		"currentStatus": string(nre.Status),
	})
	return true
}

func (s *Server) launch(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Launch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !writeNotReady(w, err) {
			writeActionError(w, "failed to launch theme", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"theme":   res.Theme,
		"command": res.Command,
		"message": res.Message,
	})
}

func (s *Server) launchStudio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	studio, t, err := s.svc.LaunchStudio(s.base, id, s.log.Writer())
	if err != nil {
		if !writeNotReady(w, err) {
			writeActionError(w, "failed to start studio", err)
		}
		return
	}
	s.trackStudio(id, studio)

	ctx, cancel := context.WithTimeout(r.Context(), studioURLWait)
	defer cancel()
	url, _ := studio.WaitURL(ctx)

	resp := map[string]any{
		"success": true,
		"message": "Studio started, use it to update the theme logo, screenshots and metadata",
		"theme":   t,
		"pid":     studio.PID(),
	}
	if url != "" {
		resp["url"] = url
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) checkBundle(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.CheckBundle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, "failed to check bundle", err)
		return
	}

	resp := map[string]any{
		"success":       res.Success,
		"bundleSuccess": res.Success,
		"message":       res.Message,
		"stdout":        res.Stdout,
		"theme":         res.Theme,
	}
	if !res.Success {
		resp["stderr"] = res.Stderr
		resp["error"] = res.Error
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) gitRemote(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.Remotes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, "failed to list git remotes", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) submoduleStatus(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Submodules(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, "failed to read submodule status", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) createRepo(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.CreateRepo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if statusFor(err) != http.StatusInternalServerError {
			writeActionError(w, "failed to create GitHub repository", err)
			return
		}
		details := res.Output
		if details == "" {
			details = err.Error()
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create GitHub repository: %v", err), details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": res.Message,
		"repoUrl": res.URL,
		"output":  res.Output,
	})
}

func (s *Server) deleteTheme(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.Delete(r.Context(), id); err != nil {
		if statusFor(err) == http.StatusNotFound {
			writeActionError(w, "", err)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete theme: %v", err), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Theme %s deleted", id),
	})
}
