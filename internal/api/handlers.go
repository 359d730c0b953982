package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"suicidestats/internal/engine"
	"suicidestats/internal/models"
	"suicidestats/internal/session"
)

type Handler struct {
	sessions *session.Manager
	topN     int
}

func NewHandler(sessions *session.Manager, topN int) *Handler {
	if topN <= 0 {
		topN = engine.DefaultTopN
	}
	return &Handler{sessions: sessions, topN: topN}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/sessions", h.CreateSession)
	api.POST("/sessions/sample", h.CreateSampleSession)

	s := api.Group("/sessions/:id")
	s.GET("", h.GetSession)
	s.DELETE("", h.CloseSession)
	s.PUT("/dataset", h.ReplaceDataset)
	s.PUT("/theme", h.SetTheme)
	s.GET("/dashboard", h.GetDashboard)
	s.GET("/preview", h.GetPreview)
	s.GET("/suicides/yearly", h.GetYearly)
	s.GET("/suicides/gender", h.GetByGender)
	s.GET("/suicides/countries/top", h.GetTopCountries)
	s.GET("/suicides/age", h.GetByAge)
	s.GET("/suicides/gdp", h.GetGDPCorrelation)
	s.GET("/suicides/map", h.GetCountryMap)
	s.GET("/filter", h.GetFilteredTrend)
	s.GET("/export", h.ExportFiltered)
}

// --- HELPERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// fail maps pipeline and session errors onto HTTP responses.
func fail(c echo.Context, err error) error {
	var le *engine.LoadError
	switch {
	case errors.As(err, &le):
		return errorJSON(c, http.StatusBadRequest, le.Error())
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrNoSample):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrUnknownTheme), errors.Is(err, engine.ErrInvalidKey), errors.Is(err, engine.ErrNegativeN):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrSampleNotReady):
		return errorJSON(c, http.StatusServiceUnavailable, err.Error())
	}
	c.Logger().Errorf("internal error: %v", err)
	return errorJSON(c, http.StatusInternalServerError, err.Error())
}

func (h *Handler) session(c echo.Context) (session.Session, error) {
	return h.sessions.Get(c.Param("id"))
}

func readUpload(c echo.Context) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, content, nil
}

func sessionInfo(s session.Session) models.SessionInfo {
	return models.SessionInfo{
		ID:           s.ID,
		FileName:     s.FileName,
		Theme:        string(s.Theme),
		Rows:         s.Dataset.Len(),
		Columns:      s.Dataset.Columns(),
		Capabilities: engine.CapabilitiesOf(s.Dataset),
		Filter:       engine.FilterOptionsOf(s.Dataset),
	}
}

// filterSpec reads ?country=A&country=B&from=1990&to=2000. Countries are
// repeated parameters because names may contain commas. Missing bounds
// default to the dataset's year range.
func filterSpec(c echo.Context, ds *engine.Dataset) (engine.FilterSpec, error) {
	spec := engine.FullRange(ds)
	spec.Countries = c.QueryParams()["country"]

	if v := c.QueryParam("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return spec, fmt.Errorf("from: not a year: %q", v)
		}
		spec.MinYear = n
	}
	if v := c.QueryParam("to"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return spec, fmt.Errorf("to: not a year: %q", v)
		}
		spec.MaxYear = n
	}
	if spec.MinYear > spec.MaxYear {
		return spec, fmt.Errorf("year range %d-%d is inverted", spec.MinYear, spec.MaxYear)
	}
	return spec, nil
}

// --- SESSIONS ---

func (h *Handler) CreateSession(c echo.Context) error {
	name, content, err := readUpload(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "expected a multipart CSV upload in field \"file\"")
	}
	s, err := h.sessions.Open(name, content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, sessionInfo(s))
}

func (h *Handler) CreateSampleSession(c echo.Context) error {
	s, err := h.sessions.OpenSample()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, sessionInfo(s))
}

func (h *Handler) GetSession(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sessionInfo(s))
}

func (h *Handler) CloseSession(c echo.Context) error {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ReplaceDataset(c echo.Context) error {
	name, content, err := readUpload(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "expected a multipart CSV upload in field \"file\"")
	}
	s, err := h.sessions.Replace(c.Param("id"), name, content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sessionInfo(s))
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handler) SetTheme(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "expected {\"theme\": \"light\"|\"dark\"}")
	}
	theme, err := session.ParseTheme(req.Theme)
	if err != nil {
		return fail(c, err)
	}
	s, err := h.sessions.SetTheme(c.Param("id"), theme)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sessionInfo(s))
}

// --- CHARTS ---

func (h *Handler) GetDashboard(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	data, err := engine.BuildDashboard(s.Dataset, s.DashboardOptions(h.topN))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

// returns the first rows of the dataset (default 5)
func (h *Handler) GetPreview(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	limit, _ := getPaginationParams(c, engine.DefaultPreviewRows)
	return c.JSON(http.StatusOK, engine.PreviewRows(engine.Head(s.Dataset, limit)))
}

func (h *Handler) sumBy(c echo.Context, key engine.Key) (engine.AggregateTable, error) {
	s, err := h.session(c)
	if err != nil {
		return nil, err
	}
	return engine.SumBy(s.Dataset, key)
}

func (h *Handler) GetYearly(c echo.Context) error {
	table, err := h.sumBy(c, engine.KeyYear)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, engine.TotalItems(engine.SortByKey(table)))
}

func (h *Handler) GetByGender(c echo.Context) error {
	table, err := h.sumBy(c, engine.KeySex)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, engine.TotalItems(table))
}

// returns Top N countries (default from config)
func (h *Handler) GetTopCountries(c echo.Context) error {
	table, err := h.sumBy(c, engine.KeyCountry)
	if err != nil {
		return fail(c, err)
	}
	limit, _ := getPaginationParams(c, h.topN)
	top, err := engine.TopN(table, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, engine.TotalItems(top))
}

func (h *Handler) GetByAge(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	if !engine.HasColumn(s.Dataset, engine.ColAge) {
		return errorJSON(c, http.StatusNotFound, fmt.Sprintf("column %q not present in dataset", engine.ColAge))
	}
	table, err := engine.SumBy(s.Dataset, engine.KeyAge)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, engine.TotalItems(table))
}

func (h *Handler) GetGDPCorrelation(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	if !engine.HasColumn(s.Dataset, engine.ColGDP) {
		return errorJSON(c, http.StatusNotFound, fmt.Sprintf("column %q not present in dataset", engine.ColGDP))
	}
	return c.JSON(http.StatusOK, engine.GDPCorrelation(s.Dataset))
}

func (h *Handler) GetCountryMap(c echo.Context) error {
	table, err := h.sumBy(c, engine.KeyCountry)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, engine.TotalItems(table))
}

// --- FILTER ---

func (h *Handler) GetFilteredTrend(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	spec, err := filterSpec(c, s.Dataset)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, engine.FilteredTrend(s.Dataset, spec))
}

func (h *Handler) ExportFiltered(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	spec, err := filterSpec(c, s.Dataset)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	out, err := engine.ToCSV(engine.Filter(s.Dataset, spec))
	if err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", engine.ExportFileName))
	return c.Blob(http.StatusOK, engine.ExportContentType, out)
}
