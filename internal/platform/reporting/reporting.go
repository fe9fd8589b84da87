package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/moodtrack/moodtrack/internal/platform/auth"
)

// MeasureDefinition defines a reporting measure with its SQL query.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"sql"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "patient-count",
		Name:        "Patient Count",
		Description: "Total number of patients in the roster, split by disabled status",
		SQL:         `SELECT COUNT(*) AS total, COALESCE(SUM(CASE WHEN disabled THEN 1 ELSE 0 END), 0) AS disabled_count FROM patient`,
		Parameters:  []string{},
	},
	{
		ID:          "records-by-emotion",
		Name:        "Records by Emotion",
		Description: "Number of emotion records grouped by emotion",
		SQL:         `SELECT emotion, COUNT(*) AS total FROM emotion_record GROUP BY emotion ORDER BY total DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "records-by-period",
		Name:        "Records by Period",
		Description: "Number of emotion records grouped by day period",
		SQL:         `SELECT period, COUNT(*) AS total FROM emotion_record GROUP BY period ORDER BY total DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "average-intensity-by-patient",
		Name:        "Average Intensity by Patient",
		Description: "Mean reported intensity per patient, most intense first",
		SQL: `SELECT p.name AS patient_name, ROUND(AVG(r.intensity), 2) AS avg_intensity, COUNT(*) AS total
FROM emotion_record r JOIN patient p ON p.id = r.patient_id
GROUP BY p.name ORDER BY avg_intensity DESC`,
		Parameters: []string{},
	},
	{
		ID:          "reports-last-7-days",
		Name:        "Reports in the Last 7 Days",
		Description: "Daily record volume over the trailing week",
		SQL: `SELECT DATE(created_at) AS day, COUNT(*) AS total FROM emotion_record
WHERE created_at >= NOW() - INTERVAL '7 days' GROUP BY DATE(created_at) ORDER BY day DESC`,
		Parameters: []string{},
	},
}

// Handler provides HTTP handlers for the reporting API.
type Handler struct {
	pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// RegisterRoutes registers the reporting API routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	reportGroup := api.Group("/reports", auth.RequireRole("admin", "therapist"))
	reportGroup.GET("/measures", h.ListMeasures)
	reportGroup.GET("/measures/:id/evaluate", h.EvaluateMeasure)
}

// ListMeasures returns all available measure definitions.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure executes a measure's SQL and returns the results.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measureID := c.Param("id")

	var measure *MeasureDefinition
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == measureID {
			measure = &PredefinedMeasures[i]
			break
		}
	}
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	for _, p := range measure.Parameters {
		if v := c.QueryParam(p); v != "" {
			params[p] = v
		}
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}

	report := MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now(),
		Results:     results,
		Parameters:  params,
	}

	return c.JSON(http.StatusOK, report)
}

// executeSQL runs a SQL query and returns results as a slice of maps.
func (h *Handler) executeSQL(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
