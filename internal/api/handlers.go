package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gavtree/pkg/buildinfo"
	"github.com/matzehuels/gavtree/pkg/core/intel"
	"github.com/matzehuels/gavtree/pkg/errors"
	"github.com/matzehuels/gavtree/pkg/pipeline"
)

// maxIntelligenceVersions caps ?versions= on the intelligence endpoint.
const maxIntelligenceVersions = 50

// uploadOverhead is the multipart framing allowed on top of the manifest.
const uploadOverhead = 64 * 1024

// Disclaimer is returned by the limits endpoint.
const Disclaimer = "Uploaded POM files are processed in memory and not stored. " +
	"Custom repository URLs must use HTTPS. Resolved trees are cached for 24 hours. " +
	"Do not upload POMs containing credentials or private repository URLs."

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// =============================================================================
// Resolution
// =============================================================================

type advancedRequest struct {
	POMContent         string   `json:"pomContent"`
	CustomRepositories []string `json:"customRepositories"`
	DetectMultiModule  bool     `json:"detectMultiModule"`
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	parts := []string{q.Get("groupId"), q.Get("artifactId"), q.Get("version")}
	for i, name := range []string{"groupId", "artifactId", "version"} {
		if strings.TrimSpace(parts[i]) == "" {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "query parameter %q is required", name))
			return
		}
	}
	opts, err := treeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Coordinate = strings.Join(parts, ":")
	s.serveTree(w, r, opts)
}

func (s *Server) resolvePOM(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, errors.MaxManifestSize+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body is empty"))
		return
	}
	opts, err := treeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Manifest = body
	s.serveTree(w, r, opts)
}

func (s *Server) resolvePOMAdvanced(w http.ResponseWriter, r *http.Request) {
	var req advancedRequest
	// JSON escaping can grow a manifest, so the body gets twice the budget.
	dec := json.NewDecoder(io.LimitReader(r.Body, 2*errors.MaxManifestSize+uploadOverhead))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	if strings.TrimSpace(req.POMContent) == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "pomContent is required"))
		return
	}
	opts, err := treeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Manifest = []byte(req.POMContent)
	opts.Repositories = append(opts.Repositories, req.CustomRepositories...)
	opts.Modules = req.DetectMultiModule
	s.serveTree(w, r, opts)
}

func (s *Server) resolveUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > errors.MaxManifestSize+uploadOverhead {
		s.writeError(w, r, errors.ValidateManifestSize(int(r.ContentLength)))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, errors.MaxManifestSize+uploadOverhead)
	if err := r.ParseMultipartForm(errors.MaxManifestSize + uploadOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, errors.ValidateManifestSize(errors.MaxManifestSize+1))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "form field \"file\" is required"))
		return
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xml", ".pom":
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "only .xml and .pom files are accepted"))
		return
	}
	if err := errors.ValidateManifestSize(int(header.Size)); err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read uploaded file"))
		return
	}
	if len(data) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "uploaded file is empty"))
		return
	}

	opts, err := treeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Manifest = data
	opts.Modules = true
	if v := r.FormValue("detectMultiModule"); v != "" {
		opts.Modules, err = strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "detectMultiModule must be a boolean"))
			return
		}
	}
	s.serveTree(w, r, opts)
}

// treeOptions reads the options shared by every resolve endpoint:
// repos (repeated or comma-separated), maxDepth, maxNodes and refresh.
func treeOptions(r *http.Request) (pipeline.TreeOptions, error) {
	var opts pipeline.TreeOptions
	q := r.URL.Query()
	if r.MultipartForm != nil {
		q = r.Form
	}
	for _, v := range q["repos"] {
		for _, repo := range strings.Split(v, ",") {
			if repo = strings.TrimSpace(repo); repo != "" {
				opts.Repositories = append(opts.Repositories, repo)
			}
		}
	}
	var err error
	if opts.MaxDepth, err = intParam(q.Get("maxDepth"), "maxDepth", 0); err != nil {
		return opts, err
	}
	if opts.MaxNodes, err = intParam(q.Get("maxNodes"), "maxNodes", 0); err != nil {
		return opts, err
	}
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func (s *Server) serveTree(w http.ResponseWriter, r *http.Request, opts pipeline.TreeOptions) {
	res, err := s.svc.Resolve(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	if res.Modules != nil {
		writeJSON(w, http.StatusOK, res.Modules)
		return
	}
	writeJSON(w, http.StatusOK, res.Tree)
}

func (s *Server) limits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"maxPomSizeKB":       errors.MaxManifestSize / 1024,
		"maxCustomRepos":     errors.MaxCustomRepositories,
		"allowedRepoSchemes": []string{"https"},
		"defaultMaxDepth":    pipeline.DefaultMaxDepth,
		"defaultMaxNodes":    pipeline.DefaultMaxNodes,
		"disclaimer":         Disclaimer,
	})
}

// =============================================================================
// Registry
// =============================================================================

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), "page", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	size, err := intParam(q.Get("size"), "size", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.Search(r.Context(), q.Get("q"), page, size, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) artifact(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.Info(r.Context(),
		chi.URLParam(r, "groupId"),
		chi.URLParam(r, "artifactId"),
		chi.URLParam(r, "version"),
		r.URL.Query().Get("refresh") == "true")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// =============================================================================
// Security
// =============================================================================

func gav(r *http.Request) string {
	return chi.URLParam(r, "groupId") + ":" + chi.URLParam(r, "artifactId") + ":" + chi.URLParam(r, "version")
}

func (s *Server) vulnerabilities(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Vulnerabilities(r.Context(), gav(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) assessment(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Assess(r.Context(), gav(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) badge(w http.ResponseWriter, r *http.Request) {
	b, err := s.svc.Badge(r.Context(), gav(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) intelligence(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("versions"), "versions", intel.DefaultIntelligenceVersions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if limit < 1 || limit > maxIntelligenceVersions {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "versions must be between 1 and %d", maxIntelligenceVersions))
		return
	}
	res, err := s.svc.Intelligence(r.Context(), chi.URLParam(r, "groupId"), chi.URLParam(r, "artifactId"), limit, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func intParam(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer", name)
	}
	return n, nil
}
