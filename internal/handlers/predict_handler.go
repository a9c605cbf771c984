package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/resilientlabs/credit-scoring-api/internal/services"
	"github.com/resilientlabs/credit-scoring-api/internal/views"
	"github.com/resilientlabs/credit-scoring-api/pkg"
	"github.com/resilientlabs/credit-scoring-api/pkg/utils"
	"go.uber.org/zap"
)

type PredictHandler struct {
	logger  *zap.Logger
	service services.PredictionService
}

func NewPredictHandler(logger *zap.Logger, svc services.PredictionService) *PredictHandler {
	return &PredictHandler{logger: logger, service: svc}
}

// RegisterRoutes registers scoring routes on the provided Gin group.
func (h *PredictHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/predict", h.Predict)
}

// Predict godoc
//
//	@Summary		Score a loan application
//	@Description	Scales the submitted features with the fitted scaler and returns the default prediction with its probability.
//	@Tags			predictions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		views.PredictionRequest	true	"Loan features"
//	@Success		200		{object}	views.PredictionResponse
//	@Failure		400		{object}	pkg.ErrorResponse
//	@Failure		422		{object}	pkg.ErrorResponse
//	@Failure		500		{object}	pkg.ErrorResponse
//	@Failure		503		{object}	pkg.ErrorResponse
//	@Router			/predict [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	var req views.PredictionRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, bindError(err))
		c.JSON(resp.Status, resp)
		return
	}

	out, err := h.service.Score(c.Request.Context(), traceID, req)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, out)
}

// bindError classifies a binding failure: validation failures and typed
// field errors report 422 naming the offending fields, anything else is a
// malformed body reported as 400.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return pkg.NewAppError(pkg.ErrValidationCode,
			fmt.Sprintf("invalid value for field(s): %s", strings.Join(fields, ", ")), err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return pkg.NewAppError(pkg.ErrValidationCode,
			fmt.Sprintf("invalid value for field(s): %s", typeErr.Field), err)
	}
	return pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err)
}
