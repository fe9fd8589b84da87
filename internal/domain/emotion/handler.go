package emotion

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moodtrack/moodtrack/internal/platform/auth"
	"github.com/moodtrack/moodtrack/pkg/pagination"
)

const dateParamLayout = "2006-01-02"

// Handler exposes the emotion record HTTP surface.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the emotion record routes on the given group. Staff
// routes cover the roster; patient routes act on the caller's own records.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	staff := g.Group("/emotion-records", auth.RequireRole("admin", "therapist"))
	staff.GET("", h.GridAll)
	staff.GET("/patients/:id", h.GridByPatient)
	staff.GET("/patients/:id/statistic", h.GetStatistic)
	staff.GET("/patients/:id/records", h.ListPatientRecords)
	staff.GET("/:id", h.GetRecord)
	staff.POST("/patients/:id", h.CreateRecord)
	staff.PUT("/:id", h.UpdateRecord)
	staff.DELETE("/:id", h.DeleteRecord)

	own := g.Group("/emotion-records", auth.RequireRole("patient"))
	own.GET("/today", h.TodayRecords)
	own.POST("", h.CreateRecordByPatient)
	own.PUT("", h.UpdateRecordByPatient)
}

// filterFromQuery reads start_date and end_date query params, defaulting both
// to today. Dates are interpreted in UTC, matching stored timestamps, so a
// partially bounded range never mixes locations.
func filterFromQuery(c echo.Context) (Filter, error) {
	f := NewFilter(time.Now().UTC())
	if raw := c.QueryParam("start_date"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return Filter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		}
		f.StartDate = t
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return Filter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		}
		f.EndDate = t
	}
	return f, nil
}

func currentPatientID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient identity in token")
	}
	return id, nil
}

type createRecordRequest struct {
	Emotion   string  `json:"emotion"`
	Intensity int     `json:"intensity"`
	Note      *string `json:"note,omitempty"`
	Date      string  `json:"date"`
	Period    string  `json:"period"`
}

func (h *Handler) GridAll(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	grid, err := h.svc.GridAll(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, grid)
}

func (h *Handler) GridByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	grid, err := h.svc.GridByPatient(c.Request().Context(), patientID, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, grid)
}

func (h *Handler) GetStatistic(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	stat, err := h.svc.Statistic(c.Request().Context(), patientID, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, stat)
}

func (h *Handler) ListPatientRecords(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	records, err := h.svc.ListRecords(c.Request().Context(), &patientID, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	page := pagination.FromContext(c)
	total := len(records)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records[start:end], total, page.Limit, page.Offset))
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var req createRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	date, err := time.Parse(dateParamLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	rec, err := h.svc.CreateRecord(c.Request().Context(), CreateInput{
		PatientID: patientID,
		Emotion:   req.Emotion,
		Intensity: req.Intensity,
		Note:      req.Note,
		Date:      date,
		Period:    req.Period,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) CreateRecordByPatient(c echo.Context) error {
	patientID, err := currentPatientID(c)
	if err != nil {
		return err
	}
	var req SelfReportInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rec, err := h.svc.CreateRecordByPatient(c.Request().Context(), patientID, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	var req UpdateInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rec, err := h.svc.UpdateRecord(c.Request().Context(), id, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) UpdateRecordByPatient(c echo.Context) error {
	patientID, err := currentPatientID(c)
	if err != nil {
		return err
	}
	var req SelfReportInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rec, err := h.svc.UpdateRecordByPatient(c.Request().Context(), patientID, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	if err := h.svc.DeleteRecord(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) TodayRecords(c echo.Context) error {
	patientID, err := currentPatientID(c)
	if err != nil {
		return err
	}
	slots, err := h.svc.TodayForPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, slots)
}
