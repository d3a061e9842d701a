package teacher

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/service"
	"github.com/rs/zerolog/log"
)

type TeacherReportController struct {
	reportService *service.ReportService
}

func NewTeacherReportController(reportService *service.ReportService) *TeacherReportController {
	return &TeacherReportController{reportService: reportService}
}

func (c *TeacherReportController) RegisterRoutes(router *gin.RouterGroup) {
	teacher := router.Group("/teacher")
	{
		teacher.GET("/lectures/:lecture_id/report", c.GetLectureReport)
	}
}

// GetLectureReport godoc
// @Summary (Teacher) Attempt report for a lecture test
// @Description Returns every student attempt on the lecture's tests with fully disclosed per-question results and the question-weighted class average.
// @Tags Teacher - Reports
// @Produce json
// @Param lecture_id path int true "Lecture ID"
// @Success 200 {object} dto.LectureReportDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/lectures/{lecture_id}/report [get]
func (c *TeacherReportController) GetLectureReport(ctx *gin.Context) {
	lectureID, err := strconv.ParseUint(ctx.Param("lecture_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid lecture_id format"})
		return
	}

	report, err := c.reportService.LectureReport(uint(lectureID), engine.RoleTeacher)
	if err != nil {
		if errors.Is(err, service.ErrLectureNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint64("lectureID", lectureID).Msg("Failed to build lecture report")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, report)
}
