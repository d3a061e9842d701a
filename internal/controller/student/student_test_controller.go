package student

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

type StudentTestController struct {
	accessService     *service.AccessService
	submissionService *service.SubmissionService
	historyService    *service.HistoryService
	assignmentService *service.AssignmentService
	gradesService     *service.GradesService
}

func NewStudentTestController(
	accessService *service.AccessService,
	submissionService *service.SubmissionService,
	historyService *service.HistoryService,
	assignmentService *service.AssignmentService,
	gradesService *service.GradesService,
) *StudentTestController {
	return &StudentTestController{
		accessService:     accessService,
		submissionService: submissionService,
		historyService:    historyService,
		assignmentService: assignmentService,
		gradesService:     gradesService,
	}
}

func (c *StudentTestController) RegisterRoutes(router *gin.RouterGroup) {
	lectures := router.Group("/lectures")
	{
		lectures.GET("/:lecture_id/test/access", c.GetTestAccess)
		lectures.GET("/:lecture_id/test", c.GetLectureTest)
		lectures.POST("/:lecture_id/test/submit", c.SubmitTest)
		lectures.GET("/:lecture_id/test/attempts", c.GetAttemptHistory)
	}
	router.GET("/courses/:course_id/assignments", c.GetAssignments)
	router.GET("/grades", c.GetGrades)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func queryUserID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Query("user_id")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return 0, false
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format"})
		return 0, false
	}
	return uint(val), true
}

func queryRole(ctx *gin.Context) engine.ViewerRole {
	switch ctx.Query("role") {
	case "teacher":
		return engine.RoleTeacher
	case "admin":
		return engine.RoleAdmin
	default:
		return engine.RoleStudent
	}
}

// respondServiceError maps policy rejections onto client statuses;
// everything else is an internal fault.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLectureNotFound), errors.Is(err, service.ErrTestNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotPublished),
		errors.Is(err, service.ErrDeadlinePassed),
		errors.Is(err, service.ErrAttemptsExhausted):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// GetTestAccess godoc
// @Summary Evaluate a learner's standing for a lecture test
// @Description Returns the access state, attempt ledger and deadline info without creating anything.
// @Tags Student - Tests
// @Produce json
// @Param lecture_id path int true "Lecture ID"
// @Param user_id query int true "Learner ID"
// @Success 200 {object} dto.AccessDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{lecture_id}/test/access [get]
func (c *StudentTestController) GetTestAccess(ctx *gin.Context) {
	lectureID, ok := pathID(ctx, "lecture_id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	access, err := c.accessService.EvaluateAccess(lectureID, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, access)
}

// GetLectureTest godoc
// @Summary Get (and lazily create) the lecture test for a learner
// @Description First access by a student generates the test from the lecture materials. Correct answers appear only after the deadline when the lecture allows it; staff always see them.
// @Tags Student - Tests
// @Produce json
// @Param lecture_id path int true "Lecture ID"
// @Param user_id query int true "Learner ID"
// @Param role query string false "Viewer role (student, teacher, admin)" default(student)
// @Success 200 {object} dto.TestDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 403 {object} dto.ErrorResponse "Deadline passed or attempts exhausted"
// @Failure 404 {object} dto.ErrorResponse "Lecture or test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{lecture_id}/test [get]
func (c *StudentTestController) GetLectureTest(ctx *gin.Context) {
	lectureID, ok := pathID(ctx, "lecture_id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	test, err := c.accessService.GetLectureTest(ctx.Request.Context(), lectureID, userID, queryRole(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// SubmitTest godoc
// @Summary Submit answers for a lecture test
// @Description Grades the answers, records the attempt and returns per-question results. The deadline and attempt cap are re-checked server side.
// @Tags Student - Tests
// @Accept json
// @Produce json
// @Param lecture_id path int true "Lecture ID"
// @Param user_id query int true "Learner ID"
// @Param submission body dto.SubmitTestRequest true "Answers keyed by question ID"
// @Success 200 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Deadline passed or attempts exhausted"
// @Failure 404 {object} dto.ErrorResponse "Lecture or test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{lecture_id}/test/submit [post]
func (c *StudentTestController) SubmitTest(ctx *gin.Context) {
	lectureID, ok := pathID(ctx, "lecture_id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitTestRequest")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.Submit(ctx.Request.Context(), lectureID, userID, req.Answers)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAttemptHistory godoc
// @Summary List a learner's attempts for a lecture test
// @Description Returns every recorded attempt with per-question results, the attempt ledger and the disclosure flag.
// @Tags Student - Tests
// @Produce json
// @Param lecture_id path int true "Lecture ID"
// @Param user_id query int true "Learner ID"
// @Param role query string false "Viewer role (student, teacher, admin)" default(student)
// @Success 200 {object} dto.AttemptHistoryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Lecture or test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{lecture_id}/test/attempts [get]
func (c *StudentTestController) GetAttemptHistory(ctx *gin.Context) {
	lectureID, ok := pathID(ctx, "lecture_id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	history, err := c.historyService.ListAttempts(lectureID, userID, queryRole(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// GetAssignments godoc
// @Summary Ranked assignment list for a course
// @Description Returns the course's testable lectures ordered by urgency: live assignments by nearest deadline, then expired ones.
// @Tags Student - Assignments
// @Produce json
// @Param course_id path int true "Course ID"
// @Param user_id query int true "Learner ID"
// @Success 200 {object} dto.AssignmentListDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/assignments [get]
func (c *StudentTestController) GetAssignments(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "course_id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	assignments, err := c.assignmentService.ListAssignments(courseID, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// GetGrades godoc
// @Summary Aggregated grades for a learner
// @Description Returns best scores per lecture, question-weighted course averages and the overall grade.
// @Tags Student - Grades
// @Produce json
// @Param user_id query int true "Learner ID"
// @Success 200 {object} dto.GradesDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid user_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades [get]
func (c *StudentTestController) GetGrades(ctx *gin.Context) {
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	grades, err := c.gradesService.GetGrades(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grades)
}
