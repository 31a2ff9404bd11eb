package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlink/tutorlink-api/internal/api/metrics"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
	"github.com/tutorlink/tutorlink-api/internal/core/service"
)

// TutorHandler serves the public tutor directory.
type TutorHandler struct {
	directory ports.TutorDirectory
}

func NewTutorHandler(directory ports.TutorDirectory) *TutorHandler {
	return &TutorHandler{directory: directory}
}

// Search handles GET /v1/tutors. Unparsable numeric parameters are ignored.
//
// @Summary      Search tutors
// @Tags         tutors
// @Produce      json
// @Param        skill       query     string  false  "Skill substring"
// @Param        min_price   query     number  false  "Minimum hourly rate"
// @Param        max_price   query     number  false  "Maximum hourly rate"
// @Param        min_rating  query     number  false  "Minimum average rating"
// @Param        sort        query     string  false  "rating, price_asc, price_desc or newest"
// @Success      200         {object}  searchResponse
// @Failure      500         {object}  errorResponse
// @Router       /v1/tutors [get]
func (h *TutorHandler) Search(c echo.Context) error {
	criteria := ports.SearchCriteria{
		Skill:     c.QueryParam("skill"),
		MinPrice:  queryFloat(c, "min_price"),
		MaxPrice:  queryFloat(c, "max_price"),
		MinRating: queryFloat(c, "min_rating"),
		SortBy:    c.QueryParam("sort"),
	}
	sortKey := string(service.ParseSortKey(criteria.SortBy))

	res, err := h.directory.Search(c.Request().Context(), criteria)
	if err != nil {
		return err
	}

	metrics.TutorSearchesTotal.WithLabelValues(sortKey).Inc()
	metrics.TutorSearchResults.Observe(float64(len(res.Tutors)))
	return c.JSON(http.StatusOK, searchResponse{
		Tutors:          res.Tutors,
		AvailableSkills: res.AvailableSkills,
		Sort:            sortKey,
	})
}

// Skills handles GET /v1/tutors/skills.
//
// @Summary      List every offered skill
// @Tags         tutors
// @Produce      json
// @Success      200  {object}  skillsResponse
// @Router       /v1/tutors/skills [get]
func (h *TutorHandler) Skills(c echo.Context) error {
	skills, err := h.directory.GetAllSkills(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, skillsResponse{Skills: skills})
}

// Details handles GET /v1/tutors/:id.
//
// @Summary      Tutor details
// @Tags         tutors
// @Produce      json
// @Param        id   path      int  true  "Tutor profile id"
// @Success      200  {object}  domain.TutorCard
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tutors/{id} [get]
func (h *TutorHandler) Details(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	card, err := h.directory.GetDetails(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if card == nil {
		return echo.NewHTTPError(http.StatusNotFound, "tutor not found")
	}
	return c.JSON(http.StatusOK, card)
}
