package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/greenweb/optimizer/internal/jobstore"
	"github.com/greenweb/optimizer/internal/optimize"
	"github.com/greenweb/optimizer/internal/refscan"
	"github.com/greenweb/optimizer/internal/source"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// projectRequest identifies the project to operate on. Exactly one of
// RepoURL and LocalPath must be set.
type projectRequest struct {
	RepoURL   string `json:"repo_url"`
	Branch    string `json:"branch"`
	LocalPath string `json:"local_path"`
}

// optimizeRequest starts an asynchronous optimization run.
type optimizeRequest struct {
	projectRequest
	Cleanup *optimizerun.CleanupOptions `json:"cleanup,omitempty"`
	Format  string                      `json:"format,omitempty"`
}

func (s *Server) buildProvider(req projectRequest) (source.Provider, string, error) {
	switch {
	case req.LocalPath != "" && req.RepoURL != "":
		return nil, "", errors.New("specify either repo_url or local_path, not both")
	case req.LocalPath != "":
		return source.NewLocalProvider(req.LocalPath), req.LocalPath, nil
	case req.RepoURL != "":
		branch := req.Branch
		if branch == "" {
			branch = "main"
		}
		provider, err := source.NewGitHubProvider(req.RepoURL, branch, s.cfg.Source.GitHubToken)
		if err != nil {
			return nil, "", err
		}
		return provider, req.RepoURL, nil
	default:
		return nil, "", errors.New("repo_url or local_path is required")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return false
	}
	return true
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "greenopt",
		"endpoints": []string{
			"POST /api/analyze",
			"GET /api/analysis/{id}",
			"POST /api/optimize",
			"GET /api/optimize/status/{id}",
			"GET /api/optimize/download/{id}",
			"DELETE /api/cleanup/{id}",
		},
	})
}

// handleAnalyze runs the non-destructive analysis synchronously and stores
// the result for later retrieval.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	provider, projectID, err := s.buildProvider(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}

	result, err := refscan.AnalyzeFull(r.Context(), provider)
	if err != nil {
		writeError(w, http.StatusBadGateway, "analysis failed: %v", err)
		return
	}

	id := s.storeAnalysis(result)
	slog.InfoContext(r.Context(), "analysis complete",
		"analysis_id", id, "project", projectID,
		"unused_css", result.Unused.UnusedCSS.Count,
		"unused_js", result.Unused.UnusedJS.Count,
		"unused_images", result.Unused.UnusedImages.Count)
	writeJSON(w, http.StatusOK, map[string]any{
		"analysis_id": id,
		"result":      result,
	})
}

func (s *Server) handleAnalysisResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.getAnalysis(id)
	if !ok {
		writeError(w, http.StatusNotFound, "analysis %s not found", id)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleOptimize registers a job and runs the destructive pipeline in the
// background. The response carries only the job ID; clients poll status.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	provider, projectID, err := s.buildProvider(req.projectRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}

	cleanup := s.cfg.Cleanup
	if req.Cleanup != nil {
		cleanup = *req.Cleanup
	}
	format := s.cfg.ArchiveFormat()
	if req.Format != "" {
		format = optimizerun.ArchiveFormat(req.Format)
		if format != optimizerun.ArchiveZip && format != optimizerun.ArchiveTarGz {
			writeError(w, http.StatusBadRequest, "unsupported format %q", req.Format)
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := s.jobs.Create(projectID, cancel)
	opts := optimize.Options{
		Cleanup: cleanup,
		Format:  format,
		Workers: s.cfg.Optimize.Workers,
	}
	go s.runJob(ctx, job.ID, provider, opts)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.ID,
		"status": string(optimizerun.StatusProcessing),
	})
}

// runJob drives one optimization run and mirrors its lifecycle into the
// job store.
func (s *Server) runJob(ctx context.Context, jobID string, provider source.Provider, opts optimize.Options) {
	setPhase := func(phase optimizerun.Phase) {
		s.jobs.Update(jobID, func(j *jobstore.Job) { j.Phase = phase })
	}

	setPhase(optimizerun.PhaseScanning)
	report, err := refscan.Analyze(ctx, provider)
	if err != nil {
		s.finishJob(ctx, jobID, err)
		return
	}

	progress := func(percent int) {
		s.jobs.Update(jobID, func(j *jobstore.Job) {
			j.Progress = percent
			switch {
			case percent >= 100:
				j.Phase = optimizerun.PhaseDone
			case percent >= 90:
				j.Phase = optimizerun.PhasePackaging
			case percent >= 30:
				j.Phase = optimizerun.PhaseTransforming
			}
		})
	}
	archivePath, stats, err := optimize.Run(ctx, provider, report, opts, progress)
	if err != nil {
		s.finishJob(ctx, jobID, err)
		return
	}

	s.jobs.Update(jobID, func(j *jobstore.Job) {
		j.Status = optimizerun.StatusCompleted
		j.Phase = optimizerun.PhaseDone
		j.Progress = 100
		j.Stats = stats
		j.ArchivePath = archivePath
		j.Cancel = nil
	})
	slog.InfoContext(ctx, "optimization job complete", "job_id", jobID, "archive", archivePath)
}

func (s *Server) finishJob(ctx context.Context, jobID string, runErr error) {
	status := optimizerun.StatusFailed
	if errors.Is(runErr, context.Canceled) {
		status = optimizerun.StatusCancelled
	}
	s.jobs.Update(jobID, func(j *jobstore.Job) {
		j.Status = status
		j.Error = runErr.Error()
		j.Cancel = nil
	})
	slog.WarnContext(ctx, "optimization job did not complete",
		"job_id", jobID, "status", status, "error", runErr)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "job %s not found", r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "job %s not found", r.PathValue("id"))
		return
	}
	if job.Status != optimizerun.StatusCompleted || job.ArchivePath == "" {
		writeError(w, http.StatusConflict, "job %s is %s, no archive available", job.ID, job.Status)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(job.ArchivePath)))
	http.ServeFile(w, r, job.ArchivePath)
}

// handleCleanup deletes a job and its archive, cancelling it first if it
// is still running.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Delete(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "job %s not found", r.PathValue("id"))
		return
	}
	if job.ArchivePath != "" {
		if err := os.Remove(job.ArchivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.WarnContext(r.Context(), "failed to remove archive",
				"job_id", job.ID, "path", job.ArchivePath, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": job.ID})
}
