package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"iwannacontrib/internal/bootstrap/logging"
	domain "iwannacontrib/internal/domain/triage"
	"iwannacontrib/internal/errs"
	"iwannacontrib/internal/usecase/triage"
)

const voterCookieName = "voter"

// Server is the HTML front of the application: a search page, a submission
// form and per-issue pages with a vote form.
type Server struct {
	svc       *triage.Service
	templates *template.Template
	router    chi.Router
}

func NewServer(svc *triage.Service) (*Server, error) {
	if svc == nil {
		return nil, errors.New("triage service is required")
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errs.Wrap(err, "parse templates")
	}

	s := &Server{
		svc:       svc,
		templates: templates,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/issues/create", s.handleCreateIssueForm)
	r.Post("/issues/create", s.handleCreateIssueSubmit)
	r.Get("/issues/{owner}/{repository}/{number}", s.handleShowIssue)
	r.Post("/issues/{owner}/{repository}/{number}/rate", s.handleRateIssue)

	s.router = r
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

type homePage struct {
	Languages        []string
	SelectedLanguage string
	SelectedRate     string
	RateChoices      []domain.RateChoice
	Results          []triage.IssueSummary
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	language := strings.TrimSpace(query.Get("language"))
	rate := query.Get("rate")
	if !validRateParam(rate) {
		http.Error(w, "invalid rate filter", http.StatusBadRequest)
		return
	}

	// Without a language the form counts as unsubmitted: default listing.
	input := triage.SearchInput{}
	selectedRate := "all"
	if language != "" {
		input = triage.SearchInput{Language: language, Rate: rate}
		selectedRate = rate
	}

	results, err := s.svc.SearchIssues(ctx, input)
	if err != nil {
		s.serverError(w, r, err, "search issues")
		return
	}

	languages, err := s.svc.ListLanguages(ctx)
	if err != nil {
		s.serverError(w, r, err, "list languages")
		return
	}

	s.render(w, "home.html", homePage{
		Languages:        languages,
		SelectedLanguage: language,
		SelectedRate:     selectedRate,
		RateChoices:      domain.RateChoices(),
		Results:          results,
	})
}

type createIssuePage struct {
	URL        string
	FieldError string
	FormError  string
}

func (s *Server) handleCreateIssueForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "create_issue.html", createIssuePage{})
}

func (s *Server) handleCreateIssueSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	rawURL := strings.TrimSpace(r.PostForm.Get("url"))
	page := createIssuePage{URL: rawURL}

	if rawURL == "" {
		page.FieldError = "This field is required."
		s.render(w, "create_issue.html", page)
		return
	}

	issue, err := s.svc.CreateIssue(r.Context(), rawURL)
	if err != nil {
		var invalid *domain.InvalidURLError
		var notFound *domain.IssueNotFoundError
		var exists *domain.IssueAlreadyExistsError

		switch {
		case errors.As(err, &invalid):
			page.FieldError = fmt.Sprintf("It must be a Github issue URL. Found: %s", invalid.URL)
		case errors.As(err, &notFound):
			page.FormError = fmt.Sprintf("No issue was found on Github for %s.", notFound.URL)
		case errors.As(err, &exists):
			page.FormError = fmt.Sprintf("This issue was already submitted: %s.", exists.URL)
		default:
			s.serverError(w, r, err, "create issue")
			return
		}

		s.render(w, "create_issue.html", page)
		return
	}

	http.Redirect(w, r, issuePath(issue.Owner, issue.Repository, issue.Number), http.StatusSeeOther)
}

type issuePage struct {
	Issue       triage.IssueDetail
	RateChoices []domain.RateChoice
}

func (s *Server) handleShowIssue(w http.ResponseWriter, r *http.Request) {
	owner, repository, number, ok := issueParams(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	issue, err := s.svc.GetIssue(r.Context(), owner, repository, number)
	if err != nil {
		var notFound *domain.IssueNotFoundError
		if errors.As(err, &notFound) {
			http.NotFound(w, r)
			return
		}
		s.serverError(w, r, err, "show issue")
		return
	}

	s.render(w, "issue.html", issuePage{
		Issue:       issue,
		RateChoices: domain.RateChoices(),
	})
}

func (s *Server) handleRateIssue(w http.ResponseWriter, r *http.Request) {
	owner, repository, number, ok := issueParams(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	score, err := strconv.Atoi(r.PostForm.Get("rate"))
	if err != nil || !domain.ValidRate(score) {
		http.Error(w, "rate must be between 1 and 5", http.StatusBadRequest)
		return
	}

	if err := s.svc.RateIssue(r.Context(), owner, repository, number, score, s.voterToken(w, r)); err != nil {
		var notFound *domain.IssueNotFoundError
		if errors.As(err, &notFound) {
			http.NotFound(w, r)
			return
		}
		s.serverError(w, r, err, "rate issue")
		return
	}

	http.Redirect(w, r, issuePath(owner, repository, number), http.StatusSeeOther)
}

// voterToken reads the anonymous voter cookie, minting one on first vote.
// The token is stored with each vote for audit only.
func (s *Server) voterToken(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(voterCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     voterCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func issueParams(r *http.Request) (owner, repository string, number int, ok bool) {
	owner = chi.URLParam(r, "owner")
	repository = chi.URLParam(r, "repository")
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if owner == "" || repository == "" || err != nil || number < 0 {
		return "", "", 0, false
	}
	return owner, repository, number, true
}

func issuePath(owner, repository string, number int) string {
	return fmt.Sprintf("/issues/%s/%s/%d", owner, repository, number)
}

func validRateParam(rate string) bool {
	switch rate {
	case "", "all":
		return true
	default:
		n, err := strconv.Atoi(rate)
		return err == nil && domain.ValidRate(n)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error, op string) {
	logging.Error(r.Context(), "request failed",
		slog.String("op", op),
		slog.String("path", r.URL.Path),
		slog.Any("err", errs.Loggable(err)),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Info(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
